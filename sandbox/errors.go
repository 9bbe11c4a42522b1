package sandbox

import "github.com/pkg/errors"

var (
	ErrViewMutation   = errors.New("state mutation from view")
	ErrKeyTooLong     = errors.New("dict key too long")
	ErrInvalidDict    = errors.New("invalid dict encoding")
	ErrZeroRandomMax  = errors.New("random: max parameter should be non-zero")
	ErrImmutableDict  = errors.New("immutable dict")
	ErrMissingResults = errors.New("function has not been called")
)

// Abort unwinds a contract invocation. It is raised by ScSandbox.Panic and
// recovered by RunFunc and RunView.
type Abort struct {
	Message string
}

func (a *Abort) Error() string {
	return "contract aborted: " + a.Message
}
