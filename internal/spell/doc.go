// Package spell holds the spell-checking collaborators behind texspell's
// quick fixes: the Checker capability, the Engine that hands it out, the
// session ignore set, a fuzzy-model Checker and the Scanner that turns text
// into flagged spans.
//
// The Engine is injected wherever a checker is needed. A nil Checker means
// spell checking is unavailable and callers produce no proposals.
package spell
