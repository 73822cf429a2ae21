package quickfix

import (
	"github.com/dshills/texspell/internal/spell"
)

// Processor computes quick fixes for spelling problems reported to a host.
type Processor struct {
	host *Host
}

// NewProcessor creates a processor acting on host.
func NewProcessor(host *Host) *Processor {
	if host == nil {
		host = &Host{}
	}
	return &Processor{host: host}
}

// Host returns the collaborators proposals act on.
func (p *Processor) Host() *Host {
	return p.host
}

// HasCorrections reports whether problems with this ID have quick fixes.
func (p *Processor) HasCorrections(id int) bool {
	return id == spell.ProblemID
}

// Corrections returns the proposals for the first well-formed spelling
// problem in locations. It returns nil when no checker is available or no
// location qualifies.
func (p *Processor) Corrections(locations []spell.Problem) []Proposal {
	checker := p.host.checker()
	if checker == nil {
		p.host.logger().Debug("no checker, no corrections")
		return nil
	}

	for _, loc := range locations {
		if !p.HasCorrections(loc.ID) {
			continue
		}
		sc, err := ContextFromProblem(loc)
		if err != nil {
			p.host.logger().Debug("skipping problem at %d: %v", loc.Offset, err)
			continue
		}

		var candidates []spell.RankedCandidate
		if !sc.IsTag() && !sc.IsCaseError() {
			candidates = checker.Proposals(sc.Word, sc.SentenceStart)
		}
		return Select(sc, candidates, Options{
			Threshold:         p.host.Threshold(),
			AcceptsWords:      checker.AcceptsWords(),
			CanAskToConfigure: p.host.CanAskToConfigure(),
		}, p.host)
	}
	return nil
}

// ProblemAt returns the first problem whose span covers offset.
func ProblemAt(problems []spell.Problem, offset int) (spell.Problem, bool) {
	for _, pr := range problems {
		if offset >= pr.Offset && offset < pr.Offset+pr.Length {
			return pr, true
		}
	}
	return spell.Problem{}, false
}
