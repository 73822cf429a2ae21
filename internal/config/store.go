package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dshills/texspell/internal/config/layer"
	"github.com/dshills/texspell/internal/config/loader"
	"github.com/dshills/texspell/internal/config/notify"
	"github.com/dshills/texspell/internal/config/watcher"
	"github.com/dshills/texspell/internal/logging"
)

// Layer names.
const (
	layerDefaults = "defaults"
	layerUser     = "user"
	layerEnv      = "environment"
)

// Store is the layered preference store.
type Store struct {
	// mu serializes writes and reloads so change notifications carry
	// consistent old and new values.
	mu sync.Mutex

	layers   *layer.Manager
	notifier *notify.Notifier
	watcher  *watcher.Watcher

	configDir    string
	settingsPath string
	envPrefix    string
	enableWatch  bool
	logger       *logging.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithConfigDir sets the directory holding the settings file and the
// personal dictionary.
func WithConfigDir(dir string) Option {
	return func(s *Store) {
		s.configDir = dir
	}
}

// WithSettingsPath sets the settings file explicitly. Its extension selects
// TOML or YAML.
func WithSettingsPath(path string) Option {
	return func(s *Store) {
		s.settingsPath = path
	}
}

// WithEnvPrefix changes the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(s *Store) {
		s.envPrefix = prefix
	}
}

// WithWatcher enables live reload of the settings file.
func WithWatcher(enable bool) Option {
	return func(s *Store) {
		s.enableWatch = enable
	}
}

// WithLogger sets the store logger.
func WithLogger(l *logging.Logger) Option {
	return func(s *Store) {
		s.logger = l
	}
}

// New creates a store holding only the defaults. Call Load to read the
// settings file and the environment.
func New(opts ...Option) *Store {
	s := &Store{
		layers:    layer.NewManager(),
		notifier:  notify.New(),
		envPrefix: EnvPrefix,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.configDir == "" {
		if s.settingsPath != "" {
			s.configDir = filepath.Dir(s.settingsPath)
		} else {
			s.configDir = DefaultConfigDir()
		}
	}
	if s.settingsPath == "" {
		s.settingsPath = filepath.Join(s.configDir, SettingsFile)
	}
	s.logger = logging.OrNull(s.logger).WithComponent("config")

	defaults := layer.NewWithData(layerDefaults, layer.SourceBuiltin, Defaults())
	defaults.ReadOnly = true
	s.layers.Add(defaults)

	user := layer.New(layerUser, layer.SourceUser)
	user.Path = s.settingsPath
	s.layers.Add(user)
	return s
}

// Load reads the settings file and the environment and starts the watcher
// when enabled. A missing settings file is not an error.
func (s *Store) Load(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := loader.ForPath(s.settingsPath).Load()
	if err != nil {
		return err
	}
	if err := s.layers.Update(layerUser, data); err != nil {
		return err
	}

	env, err := loader.NewEnvLoader(s.envPrefix).Load()
	if err != nil {
		return err
	}
	if len(env) > 0 {
		l := layer.NewWithData(layerEnv, layer.SourceEnv, env)
		l.ReadOnly = true
		s.layers.Add(l)
	}

	if s.enableWatch && s.watcher == nil {
		s.startWatcher()
	}
	s.logger.Debug("loaded settings from %s", s.settingsPath)
	return nil
}

func (s *Store) startWatcher() {
	w, err := watcher.New(watcher.WithLogger(s.logger))
	if err != nil {
		s.logger.Warn("live reload unavailable: %v", err)
		return
	}
	if err := w.Watch(s.settingsPath); err != nil {
		s.logger.Warn("not watching %s: %v", s.settingsPath, err)
		_ = w.Close()
		return
	}
	w.OnChange(s.handleFileChange)
	s.watcher = w
}

// Close stops the watcher and the notifier.
func (s *Store) Close() {
	s.mu.Lock()
	w := s.watcher
	s.watcher = nil
	s.mu.Unlock()

	if w != nil {
		_ = w.Close()
	}
	s.notifier.Close()
}

// ConfigDir returns the configuration directory.
func (s *Store) ConfigDir() string { return s.configDir }

// SettingsPath returns the settings file path.
func (s *Store) SettingsPath() string { return s.settingsPath }

// Get returns the effective value at path.
func (s *Store) Get(path string) (any, bool) {
	v, _, ok := s.layers.Get(path)
	return v, ok
}

// Source returns the name of the layer supplying path, or "".
func (s *Store) Source(path string) string {
	_, l, ok := s.layers.Get(path)
	if !ok {
		return ""
	}
	return l.Name
}

// Merged returns all settings merged.
func (s *Store) Merged() map[string]any {
	return s.layers.Merged()
}

// GetString returns a string setting.
func (s *Store) GetString(path string) (string, error) {
	v, ok := s.Get(path)
	if !ok {
		return "", ErrSettingNotFound
	}
	str, ok := v.(string)
	if !ok {
		return "", &TypeError{Path: path, Expected: "string", Actual: typeName(v)}
	}
	return str, nil
}

// GetInt returns an integer setting.
func (s *Store) GetInt(path string) (int, error) {
	v, ok := s.Get(path)
	if !ok {
		return 0, ErrSettingNotFound
	}
	i, ok := toInt(v)
	if !ok {
		return 0, &TypeError{Path: path, Expected: "int", Actual: typeName(v)}
	}
	return i, nil
}

// GetBool returns a boolean setting.
func (s *Store) GetBool(path string) (bool, error) {
	v, ok := s.Get(path)
	if !ok {
		return false, ErrSettingNotFound
	}
	b, ok := v.(bool)
	if !ok {
		return false, &TypeError{Path: path, Expected: "bool", Actual: typeName(v)}
	}
	return b, nil
}

// GetStringSlice returns a list setting.
func (s *Store) GetStringSlice(path string) ([]string, error) {
	v, ok := s.Get(path)
	if !ok {
		return nil, ErrSettingNotFound
	}
	list, ok := toStringSlice(v)
	if !ok {
		return nil, &TypeError{Path: path, Expected: "[]string", Actual: typeName(v)}
	}
	return list, nil
}

// Bool returns a boolean setting, or its default when missing or mistyped.
func (s *Store) Bool(key string) bool {
	if b, err := s.GetBool(key); err == nil {
		return b
	}
	b, _ := defaultValue(key).(bool)
	return b
}

// Int returns an integer setting, or its default when missing or mistyped.
func (s *Store) Int(key string) int {
	if i, err := s.GetInt(key); err == nil {
		return i
	}
	i, _ := toInt(defaultValue(key))
	return i
}

// String returns a string setting, or its default when missing or mistyped.
func (s *Store) String(key string) string {
	if str, err := s.GetString(key); err == nil {
		return str
	}
	str, _ := defaultValue(key).(string)
	return str
}

// StringSlice returns a list setting, or its default when missing or mistyped.
func (s *Store) StringSlice(key string) []string {
	if list, err := s.GetStringSlice(key); err == nil {
		return list
	}
	list, _ := toStringSlice(defaultValue(key))
	return list
}

// Set writes value to the user layer and notifies observers. Known settings
// must keep the type of their default.
func (s *Store) Set(path string, value any) error {
	if len(layer.SplitPath(path)) == 0 {
		return ErrInvalidPath
	}
	if err := checkType(path, value); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	old, _ := s.Get(path)
	if err := s.layers.Set(layerUser, path, value); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidPath, err)
	}
	current, _ := s.Get(path)
	s.notifier.NotifySet(path, old, current, layerUser)
	return nil
}

// SetBool writes a boolean setting and saves the settings file. The value
// stays set for this session even when saving fails.
func (s *Store) SetBool(key string, value bool) error {
	if err := s.Set(key, value); err != nil {
		return err
	}
	if err := s.Save(); err != nil {
		return fmt.Errorf("persisting %s: %w", key, err)
	}
	return nil
}

// SetInt writes an integer setting.
func (s *Store) SetInt(key string, value int) error {
	return s.Set(key, value)
}

// SetString writes a string setting.
func (s *Store) SetString(key, value string) error {
	return s.Set(key, value)
}

// Save writes the user layer to the settings file, replacing it atomically.
func (s *Store) Save() error {
	if s.settingsPath == "" {
		return ErrNoSettingsFile
	}
	data, _ := s.layers.Snapshot(layerUser)
	if data == nil {
		data = make(map[string]any)
	}

	if err := os.MkdirAll(filepath.Dir(s.settingsPath), 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(s.settingsPath), ".settings-*")
	if err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := loader.ForPath(s.settingsPath).Encode(tmp, data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.settingsPath); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	s.logger.Debug("saved settings to %s", s.settingsPath)
	return nil
}

// Reload re-reads the settings file. On a parse error the previous values
// are kept and the error returned.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reloadLocked()
}

func (s *Store) reloadLocked() error {
	data, err := loader.ForPath(s.settingsPath).Load()
	if err != nil {
		return err
	}
	old, _ := s.layers.Snapshot(layerUser)
	if err := s.layers.Update(layerUser, data); err != nil {
		return err
	}
	if changed := layer.Diff(old, data); len(changed) > 0 {
		s.logger.Info("settings reloaded, changed: %s", strings.Join(changed, ", "))
	}
	s.notifier.NotifyReload(s.settingsPath)
	return nil
}

func (s *Store) handleFileChange(ev watcher.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.reloadLocked(); err != nil {
		s.logger.Warn("reloading %s after %s: %v", ev.Path, ev.Op, err)
	}
}

// Subscribe observes every change.
func (s *Store) Subscribe(observer notify.Observer) *notify.Subscription {
	return s.notifier.Subscribe(observer)
}

// SubscribePath observes changes at or below path.
func (s *Store) SubscribePath(path string, observer notify.Observer) *notify.Subscription {
	return s.notifier.SubscribePath(path, observer)
}

// UserDictionaryPath returns the configured personal dictionary with a
// leading ~ expanded, or "" when none is set.
func (s *Store) UserDictionaryPath() string {
	return ExpandPath(s.String(KeyUserDictionary))
}

// DefaultUserDictionaryPath is where a newly configured personal dictionary
// is created.
func (s *Store) DefaultUserDictionaryPath() string {
	return filepath.Join(s.configDir, UserDictionaryFile)
}

// DefaultConfigDir returns $XDG_CONFIG_HOME/texspell or ~/.config/texspell.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appDirName)
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", appDirName)
}

// ExpandPath replaces a leading ~ with the home directory.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}

func defaultValue(key string) any {
	v, _ := layer.Lookup(Defaults(), key)
	return v
}

// checkType rejects values whose type differs from the setting's default.
// Settings without a default accept anything.
func checkType(path string, value any) error {
	def := defaultValue(path)
	if def == nil {
		return nil
	}
	var ok bool
	switch def.(type) {
	case bool:
		_, ok = value.(bool)
	case int:
		_, ok = toInt(value)
	case string:
		_, ok = value.(string)
	case []string:
		_, ok = toStringSlice(value)
	default:
		ok = true
	}
	if !ok {
		return &TypeError{Path: path, Expected: typeName(def), Actual: typeName(value)}
	}
	return nil
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

func toStringSlice(v any) ([]string, bool) {
	switch list := v.(type) {
	case []string:
		return append([]string(nil), list...), true
	case []any:
		out := make([]string, len(list))
		for i, item := range list {
			str, ok := item.(string)
			if !ok {
				return nil, false
			}
			out[i] = str
		}
		return out, true
	case string:
		if list == "" {
			return []string{}, true
		}
		return []string{list}, true
	}
	return nil, false
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float64"
	case bool:
		return "bool"
	case []string, []any:
		return "[]string"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
