package fastx

import (
	"github.com/pkg/errors"
)

// ErrFormatMismatch is returned when the content does not match the
// resolved format, e.g. FASTQ without quality lines.
var ErrFormatMismatch = errors.New("format mismatch")

// IOError wraps failures to open, read or decompress one input.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error { return e.Err }

func ioError(op, path string, err error) error {
	if err == nil {
		return nil
	}
	var ioErr *IOError
	if errors.As(err, &ioErr) {
		return err
	}
	return &IOError{Op: op, Path: path, Err: err}
}

// IsIOError reports whether err came from the byte stream rather than
// from the record content.
func IsIOError(err error) bool {
	var ioErr *IOError
	return errors.As(err, &ioErr)
}
