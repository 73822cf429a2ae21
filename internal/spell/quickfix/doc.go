// Package quickfix turns flagged spelling spans into ordered quick-fix
// proposals.
//
// Select is the decision table: markup tokens get only the ignore and
// disable actions, pure case errors get a single change-case proposal, and
// everything else gets the ranked corrections (optionally trimmed to the
// configured threshold) followed by add, ignore and disable.
//
// The Processor is what a host calls. It reads the active checker from the
// spell.Engine and the threshold from Preferences, and handles the first
// well-formed spelling problem among the locations it is given:
//
//	p := quickfix.NewProcessor(&quickfix.Host{Engine: engine, Preferences: store})
//	for _, proposal := range p.Corrections(problems) {
//		fmt.Println(proposal.DisplayString())
//	}
//
// Proposals are applied later and independently. Dismissed prompts and
// configuration failures are logged no-ops; only document edits report errors.
package quickfix
