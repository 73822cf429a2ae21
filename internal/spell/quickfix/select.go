package quickfix

import "github.com/dshills/texspell/internal/spell"

// Options control proposal selection.
type Options struct {
	// Threshold limits the number of corrections. 0 means unlimited.
	Threshold int

	// AcceptsWords reports whether the checker can register new words.
	AcceptsWords bool

	// CanAskToConfigure reports whether the user may be asked to set up a
	// personal dictionary.
	CanAskToConfigure bool
}

// Select builds the ordered proposals for a flagged span.
//
// Markup tokens get the change-case proposal when they are a lower-case
// sentence start and otherwise only ignore and disable. Pure case errors get
// only the change-case proposal. Every other span gets one correction per
// kept candidate, the add-word proposal when a dictionary can take it, and
// finally ignore and disable.
//
// When the threshold is exceeded the candidates are sorted best first and
// the top threshold entries are kept.
func Select(sc Context, candidates []spell.RankedCandidate, opts Options, host *Host) []Proposal {
	if sc.IsTag() {
		if sc.IsCaseError() {
			return []Proposal{NewChangeCaseProposal(sc, host)}
		}
		return []Proposal{
			NewIgnoreWordProposal(sc, host),
			NewDisableSpellingProposal(sc, host),
		}
	}

	if sc.IsCaseError() {
		return []Proposal{NewChangeCaseProposal(sc, host)}
	}

	kept := Trim(candidates, opts.Threshold)

	proposals := make([]Proposal, 0, len(kept)+3)
	for _, c := range kept {
		proposals = append(proposals, NewWordCorrectionProposal(sc, c.Text, c.Rank, host))
	}
	if opts.AcceptsWords || opts.CanAskToConfigure {
		proposals = append(proposals, NewAddWordProposal(sc, host))
	}
	proposals = append(proposals,
		NewIgnoreWordProposal(sc, host),
		NewDisableSpellingProposal(sc, host),
	)
	return proposals
}

// Trim applies the proposal threshold to a copy of candidates. Lists within
// the threshold, or a threshold of 0, are returned in their original order.
func Trim(candidates []spell.RankedCandidate, threshold int) []spell.RankedCandidate {
	out := make([]spell.RankedCandidate, len(candidates))
	copy(out, candidates)

	n := len(out)
	if threshold <= 0 || n <= threshold {
		return out
	}
	spell.SortByRank(out)
	return out[:threshold]
}
