package bytebuffer

import "github.com/pkg/errors"

var (
	// ErrOutOfRange is the cause of every error raised when a read or write
	// needs more bytes than the buffer has left
	ErrOutOfRange = errors.New("out of range")

	// ErrTypeMismatch is the cause of errors raised when a value passed as
	// a buffer or as a fixed size value isn't one
	ErrTypeMismatch = errors.New("type mismatch")

	// ErrUnknownEncoding is returned for string encodings that aren't supported
	ErrUnknownEncoding = errors.New("unknown encoding")
)

// IsOutOfRange reports whether err was caused by ErrOutOfRange
func IsOutOfRange(err error) bool { return errors.Cause(err) == ErrOutOfRange }

// IsTypeMismatch reports whether err was caused by ErrTypeMismatch
func IsTypeMismatch(err error) bool { return errors.Cause(err) == ErrTypeMismatch }

func outOfRange(pos, need, have int) error {
	return errors.Wrapf(ErrOutOfRange, "need %d bytes at offset %d, %d left", need, pos, have)
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
