package building

import (
	"errors"
	"fmt"
)

// ErrWrongConfiguration marks a missing per-level table entry. Load-time
// validation is supposed to make this unreachable; it is surfaced rather than
// defaulted when it does happen.
var ErrWrongConfiguration = errors.New("wrong building configuration")

// MaxLevelError reports an upgrade attempt on a fully upgraded building.
type MaxLevelError struct {
	Name    string
	Current int
	Max     int
}

func (e *MaxLevelError) Error() string {
	return fmt.Sprintf("cannot upgrade %s: level %d is at max %d", e.Name, e.Current, e.Max)
}
