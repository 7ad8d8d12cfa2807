package corpus

import (
	"errors"
	"fmt"
)

var (
	// ErrLoad matches every error returned by Load and LoadReader.
	ErrLoad = errors.New("corpus load failed")
	// ErrLineTooLong is returned when a line exceeds the configured maximum.
	ErrLineTooLong = errors.New("line exceeds maximum length")
)

// LoadError reports a corpus source that could not be opened, read or
// extracted. No partial corpus accompanies it.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("load corpus: %v", e.Err)
	}
	return fmt.Sprintf("load corpus %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrLoad) true for any *LoadError.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}
