package lsp

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/texspell/internal/spell"
	"github.com/dshills/texspell/internal/spell/quickfix"
)

// replacer is implemented by proposals that edit the document.
type replacer interface {
	Text() string
}

// CodeActions returns the quick fixes for the problems touching the
// requested range. Proposals that only act on the checker or the
// preferences become commands resolved through ExecuteCommand.
func (s *Server) CodeActions(p CodeActionParams) []CodeAction {
	actions := []CodeAction{}
	doc := s.Document(p.TextDocument.URI)
	if doc == nil {
		return actions
	}
	if !wantsQuickFix(p.Context.Only) {
		return actions
	}

	conv := doc.Converter()
	offset, length := conv.RangeToSpan(p.Range)

	offers := make(map[string]offer)
	for _, problem := range doc.ProblemsIn(offset, length) {
		diag := diagnosticFor(conv, problem)
		preferred := true
		for _, prop := range s.processor.Corrections([]spell.Problem{problem}) {
			action, ok := s.codeAction(doc, conv, prop, diag)
			if !ok {
				continue
			}
			if prop.Kind() == quickfix.KindCorrection || prop.Kind() == quickfix.KindChangeCase {
				action.IsPreferred = preferred
				preferred = false
			}
			if action.Command != nil {
				offers[prop.ID()] = offer{proposal: prop, uri: doc.URI()}
			}
			actions = append(actions, action)
		}
	}

	s.mu.Lock()
	s.offered = offers
	s.mu.Unlock()
	return actions
}

func wantsQuickFix(only []CodeActionKind) bool {
	if len(only) == 0 {
		return true
	}
	for _, k := range only {
		if k == CodeActionQuickFix || k == "" {
			return true
		}
	}
	return false
}

func (s *Server) codeAction(doc *Document, conv *PositionConverter, prop quickfix.Proposal, diag Diagnostic) (CodeAction, bool) {
	action := CodeAction{
		Title:       prop.DisplayString(),
		Kind:        CodeActionQuickFix,
		Diagnostics: []Diagnostic{diag},
	}

	switch prop.Kind() {
	case quickfix.KindCorrection, quickfix.KindChangeCase:
		r, ok := prop.(replacer)
		if !ok {
			return CodeAction{}, false
		}
		offset, length := prop.Selection()
		action.Edit = &WorkspaceEdit{
			Changes: map[DocumentURI][]TextEdit{
				doc.URI(): {{Range: conv.SpanToRange(offset, length), NewText: r.Text()}},
			},
		}
	default:
		cmd := commandFor(prop.Kind())
		if cmd == "" {
			return CodeAction{}, false
		}
		action.Command = &Command{
			Title:     prop.DisplayString(),
			Command:   cmd,
			Arguments: []any{prop.ID()},
		}
	}
	return action, true
}

func commandFor(kind quickfix.Kind) string {
	for cmd, k := range commandKinds {
		if k == kind {
			return cmd
		}
	}
	return ""
}

// ExecuteCommand applies a proposal offered by the last codeAction request.
func (s *Server) ExecuteCommand(p ExecuteCommandParams) error {
	kind, ok := commandKinds[p.Command]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, p.Command)
	}
	if len(p.Arguments) != 1 {
		return &RPCError{Code: CodeInvalidParams, Message: fmt.Sprintf("%s takes one argument", p.Command)}
	}
	var id string
	if err := json.Unmarshal(p.Arguments[0], &id); err != nil {
		return &RPCError{Code: CodeInvalidParams, Message: err.Error()}
	}

	s.mu.Lock()
	o, ok := s.offered[id]
	if ok {
		delete(s.offered, id)
	}
	s.mu.Unlock()
	if !ok || o.proposal.Kind() != kind {
		return fmt.Errorf("%w: %s", ErrStaleProposal, id)
	}

	var doc quickfix.Document
	if d := s.Document(o.uri); d != nil {
		doc = d
	}
	if err := o.proposal.Apply(doc); err != nil {
		return err
	}
	s.logger.Info("%s applied", o.proposal.Kind())

	if kind == quickfix.KindDisableChecking {
		s.Refresh()
	}
	return nil
}
