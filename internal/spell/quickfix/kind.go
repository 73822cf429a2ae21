package quickfix

// Kind identifies the action a proposal performs.
type Kind int

// Proposal kinds in display order.
const (
	KindCorrection Kind = iota
	KindChangeCase
	KindAddWord
	KindIgnoreWord
	KindDisableChecking
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindCorrection:
		return "correction"
	case KindChangeCase:
		return "change-case"
	case KindAddWord:
		return "add-word"
	case KindIgnoreWord:
		return "ignore-word"
	case KindDisableChecking:
		return "disable-checking"
	default:
		return "unknown"
	}
}

// Relevance weights used by hosts that re-sort proposals.
const (
	RelevanceCorrection      = 10
	RelevanceChangeCase      = 10
	RelevanceAddWord         = 5
	RelevanceIgnoreWord      = 1
	RelevanceDisableChecking = -999
)

// Relevance returns the fixed weight of proposals of this kind.
func (k Kind) Relevance() int {
	switch k {
	case KindCorrection:
		return RelevanceCorrection
	case KindChangeCase:
		return RelevanceChangeCase
	case KindAddWord:
		return RelevanceAddWord
	case KindIgnoreWord:
		return RelevanceIgnoreWord
	case KindDisableChecking:
		return RelevanceDisableChecking
	default:
		return 0
	}
}
