package quickfix

import "fmt"

// AddWordProposal registers the word in the personal dictionary, offering to
// set one up first when the checker has none.
type AddWordProposal struct {
	base
}

// NewAddWordProposal creates an add-word proposal.
func NewAddWordProposal(ctx Context, host *Host) *AddWordProposal {
	return &AddWordProposal{base: newBase(KindAddWord, ctx, host)}
}

func (p *AddWordProposal) DisplayString() string {
	return fmt.Sprintf("Add '%s' to dictionary", p.ctx.Word)
}

func (p *AddWordProposal) AdditionalInfo() string {
	return fmt.Sprintf("Adds the word '%s' to the dictionary", htmlText(p.ctx.Word))
}

// Apply adds the word. If the checker rejects new words the user is asked
// once to configure a personal dictionary; declining, a suppressed question
// or a failed setup leave everything unchanged.
func (p *AddWordProposal) Apply(Document) error {
	if p.host == nil {
		return nil
	}
	log := p.host.logger().WithField("word", p.ctx.Word)

	checker := p.host.checker()
	if checker == nil {
		log.Debug("no checker, add word skipped")
		return nil
	}

	if !checker.AcceptsWords() {
		if !p.host.CanAskToConfigure() {
			log.Debug("no personal dictionary and asking is suppressed")
			return nil
		}
		accept, doNotAsk := p.host.Prompter.AskToConfigure()
		p.host.setBool(PrefDoNotAsk, doNotAsk)
		if !accept {
			log.Debug("personal dictionary setup declined")
			return nil
		}
		if p.host.Configurator == nil {
			log.Debug("no configurator available")
			return nil
		}
		if err := p.host.Configurator.ConfigureUserDictionary(); err != nil {
			log.Warn("configuring personal dictionary: %v", err)
			return nil
		}
		// Configuration may have installed a new checker.
		checker = p.host.checker()
	}

	if checker == nil || !checker.AcceptsWords() {
		log.Debug("checker still rejects new words")
		return nil
	}
	if err := checker.AddWord(p.ctx.Word); err != nil {
		log.Warn("adding word: %v", err)
		return nil
	}
	p.host.removeProblems(p.ctx.Word)
	return nil
}
