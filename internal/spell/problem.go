package spell

import "strconv"

// ProblemID identifies spelling problems among the problems reported to a host.
const ProblemID = 0x80

// Positions in Problem.Arguments.
const (
	ArgWord = iota
	ArgLine
	ArgNormalized
	ArgSentenceStart
	ArgCaseMismatch

	// ArgCount is the number of arguments a well-formed spelling problem carries.
	ArgCount
)

// Problem is a flagged span as reported to the host: a byte offset and length
// into the document, a problem ID and string arguments.
type Problem struct {
	Offset    int
	Length    int
	ID        int
	Arguments []string
}

// NewProblem builds a spelling problem with arguments in the standard layout.
func NewProblem(offset int, word, line string, sentenceStart, caseMismatch bool) Problem {
	args := make([]string, ArgCount)
	args[ArgWord] = word
	args[ArgLine] = line
	args[ArgNormalized] = normalize(word)
	args[ArgSentenceStart] = strconv.FormatBool(sentenceStart)
	args[ArgCaseMismatch] = strconv.FormatBool(caseMismatch)
	return Problem{
		Offset:    offset,
		Length:    len(word),
		ID:        ProblemID,
		Arguments: args,
	}
}

// Word returns the flagged text, or "" when the arguments are missing.
func (p Problem) Word() string {
	if len(p.Arguments) == 0 {
		return ""
	}
	return p.Arguments[ArgWord]
}

// WellFormed reports whether p is a spelling problem with all arguments.
func (p Problem) WellFormed() bool {
	return p.ID == ProblemID && len(p.Arguments) >= ArgCount && p.Arguments[ArgWord] != ""
}

// RemoveWord returns problems without those flagging word.
func RemoveWord(problems []Problem, word string) []Problem {
	out := problems[:0:0]
	for _, p := range problems {
		if p.Word() != word {
			out = append(out, p)
		}
	}
	return out
}
