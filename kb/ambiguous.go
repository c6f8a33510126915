package kb

import (
	"fmt"

	"github.com/bonnetkb/bonnet/errors"
)

// AmbiguousError reports a text search that matched more than one entity
// under a policy requiring an explicit choice. Candidates are ordered by
// creation time ascending, then identifier ascending. Truncated is set when
// the match count exceeded the search limit, so callers can tell a capped
// list from a complete one.
type AmbiguousError struct {
	Token      string
	Candidates []Candidate
	Truncated  bool
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("token %q matches %d entities", e.Token, len(e.Candidates))
}

// Is makes the error satisfy errors.Is(err, errors.ErrAmbiguous).
func (e *AmbiguousError) Is(target error) bool {
	return target == errors.ErrAmbiguous
}
