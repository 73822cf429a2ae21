package spell

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/sajari/fuzzy"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/dshills/texspell/internal/strutil"
)

//go:embed dictionaries/en.txt
var embeddedWords string

// Ranking parameters for FuzzyChecker proposals.
const (
	DefaultDepth = 2
	RankStep     = 1000

	// trainedCount keeps every trained word above the model's threshold so
	// it is both known and indexed for suggestions.
	trainedCount = 2
)

// FuzzyChecker is a Checker backed by a sajari/fuzzy model. It optionally
// keeps a personal word list file; only then does it accept new words.
type FuzzyChecker struct {
	mu       sync.RWMutex
	model    *fuzzy.Model
	known    map[string]struct{}
	depth    int
	userPath string
	locale   language.Tag
}

// FuzzyOption configures a FuzzyChecker.
type FuzzyOption func(*fuzzyConfig)

type fuzzyConfig struct {
	depth    int
	sources  []io.Reader
	words    []string
	userPath string
	locale   language.Tag
	embedded bool
}

// WithDepth sets how many edits the model indexes.
func WithDepth(depth int) FuzzyOption {
	return func(c *fuzzyConfig) {
		if depth > 0 {
			c.depth = depth
		}
	}
}

// WithWordList trains the model from r: one word per line, optionally
// followed by a frequency count. Lines starting with '#' are comments.
// Supplying any word source disables the embedded dictionary.
func WithWordList(r io.Reader) FuzzyOption {
	return func(c *fuzzyConfig) {
		c.sources = append(c.sources, r)
		c.embedded = false
	}
}

// WithWords trains the model from the given words.
// Supplying any word source disables the embedded dictionary.
func WithWords(words ...string) FuzzyOption {
	return func(c *fuzzyConfig) {
		c.words = append(c.words, words...)
		c.embedded = false
	}
}

// WithUserDictionary sets the personal word list file. Existing entries are
// trained at construction and AddWord appends to it.
func WithUserDictionary(path string) FuzzyOption {
	return func(c *fuzzyConfig) {
		c.userPath = path
	}
}

// WithCheckerLocale sets the locale used to capitalize sentence-start proposals.
func WithCheckerLocale(tag language.Tag) FuzzyOption {
	return func(c *fuzzyConfig) {
		c.locale = tag
	}
}

// NewFuzzyChecker builds and trains a checker. Without a word source the
// embedded English word list is used.
func NewFuzzyChecker(opts ...FuzzyOption) (*FuzzyChecker, error) {
	cfg := fuzzyConfig{
		depth:    DefaultDepth,
		locale:   language.English,
		embedded: true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	model := fuzzy.NewModel()
	model.SetThreshold(1)
	model.SetDepth(cfg.depth)
	model.SetUseAutocomplete(false)

	fc := &FuzzyChecker{
		model:    model,
		known:    make(map[string]struct{}),
		depth:    cfg.depth,
		userPath: cfg.userPath,
		locale:   cfg.locale,
	}

	if cfg.embedded {
		cfg.sources = append(cfg.sources, strings.NewReader(embeddedWords))
	}
	for _, r := range cfg.sources {
		if err := fc.trainFrom(r); err != nil {
			return nil, err
		}
	}
	for _, w := range cfg.words {
		fc.train(w, trainedCount)
	}

	if fc.userPath != "" {
		f, err := os.Open(fc.userPath)
		switch {
		case err == nil:
			err = fc.trainFrom(f)
			f.Close()
			if err != nil {
				return nil, err
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("opening user dictionary %s: %w", fc.userPath, err)
		}
	}

	if len(fc.known) == 0 {
		return nil, ErrNoDictionary
	}
	return fc, nil
}

// NewFuzzyCheckerFromFile trains a checker from a word-list file.
func NewFuzzyCheckerFromFile(path string, opts ...FuzzyOption) (*FuzzyChecker, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dictionary %s: %w", path, err)
	}
	defer f.Close()
	return NewFuzzyChecker(append([]FuzzyOption{WithWordList(f)}, opts...)...)
}

func (fc *FuzzyChecker) trainFrom(r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		count := trainedCount
		if len(fields) > 1 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n > 0 {
				count = n + 1
			}
		}
		fc.train(fields[0], count)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading word list: %w", err)
	}
	return nil
}

func (fc *FuzzyChecker) train(word string, count int) {
	lower := strings.ToLower(strings.TrimSpace(word))
	if lower == "" {
		return
	}
	fc.mu.Lock()
	defer fc.mu.Unlock()
	fc.known[lower] = struct{}{}
	fc.model.SetCount(lower, count, true)
}

// AcceptsWords reports whether a personal word list is configured.
func (fc *FuzzyChecker) AcceptsWords() bool {
	return fc.userPath != ""
}

// UserDictionary returns the personal word list path, if any.
func (fc *FuzzyChecker) UserDictionary() string {
	return fc.userPath
}

// AddWord trains word and appends it to the personal word list.
// Words already known are left alone.
func (fc *FuzzyChecker) AddWord(word string) error {
	word = strings.TrimSpace(word)
	if word == "" {
		return ErrEmptyWord
	}
	if !fc.AcceptsWords() {
		return ErrWordsNotAccepted
	}
	if fc.IsCorrect(word) {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(fc.userPath), 0o755); err != nil {
		return fmt.Errorf("creating user dictionary directory: %w", err)
	}
	f, err := os.OpenFile(fc.userPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("opening user dictionary: %w", err)
	}
	if _, err := fmt.Fprintln(f, word); err != nil {
		f.Close()
		return fmt.Errorf("writing user dictionary: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing user dictionary: %w", err)
	}

	fc.train(word, trainedCount)
	return nil
}

// IsCorrect reports whether the lower-cased word is known.
func (fc *FuzzyChecker) IsCorrect(word string) bool {
	fc.mu.RLock()
	defer fc.mu.RUnlock()
	_, ok := fc.known[strings.ToLower(word)]
	return ok
}

// Proposals ranks the model's potentials by edit distance, then by corpus
// count, then alphabetically. The word itself is never proposed.
func (fc *FuzzyChecker) Proposals(word string, sentenceStart bool) []RankedCandidate {
	lower := strings.ToLower(word)
	if lower == "" {
		return nil
	}

	potentials := fc.model.Potentials(lower, true)
	maxDistance := fc.depth + 1

	out := make([]RankedCandidate, 0, len(potentials))
	for term, p := range potentials {
		if term == lower || p.Leven > maxDistance {
			continue
		}
		score := p.Score
		if score >= RankStep {
			score = RankStep - 1
		}
		out = append(out, RankedCandidate{
			Text: term,
			Rank: (maxDistance+1-p.Leven)*RankStep + score,
		})
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank > out[j].Rank
		}
		return out[i].Text < out[j].Text
	})

	if sentenceStart {
		upper := cases.Upper(fc.locale)
		for i := range out {
			out[i].Text = strutil.UpperFirst(out[i].Text, upper.String)
		}
	}
	return out
}
