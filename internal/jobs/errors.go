package jobs

import "fmt"

// PanicError wraps a value recovered from a panicking job
type PanicError struct {
	Value any
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("job panicked: %v", e.Value)
}
