package bytebuffer

import (
	"encoding/binary"
	"io"

	"github.com/pkg/errors"
)

// byte order used by WriteVal and ReadVal
var byteOrder = binary.LittleEndian

// StreamBuffer is a cursor over a fixed size byte slice that supports reading
// and writing anywhere inside it
type StreamBuffer struct {
	pos    int
	buffer []byte
}

// NewStreamBuffer creates a new StreamBuffer over the passed slice, the
// slice is not copied
func NewStreamBuffer(buffer []byte) *StreamBuffer {
	return &StreamBuffer{
		pos:    0,
		buffer: buffer,
	}
}

// NewStreamBufferSize creates a new StreamBuffer over n zeroed bytes
func NewStreamBufferSize(n int) *StreamBuffer {
	return NewStreamBuffer(make([]byte, n))
}

// Wrap creates a StreamBuffer from either a []byte or an existing Buffer.
// Wrapping a Buffer shares its storage, the new cursor starts at 0
func Wrap(src interface{}) (*StreamBuffer, error) {
	switch s := src.(type) {
	case []byte:
		return NewStreamBuffer(s), nil
	case *StreamBuffer:
		if s == nil {
			return nil, errors.Wrap(ErrTypeMismatch, "cannot wrap a nil StreamBuffer")
		}
		return NewStreamBuffer(s.buffer), nil
	case Buffer:
		return NewStreamBuffer(s.Bytes()), nil
	}

	return nil, errors.Wrapf(ErrTypeMismatch, "cannot wrap %T, not a valid []byte or Buffer", src)
}

// MustWrap is a Wrap that panics
func MustWrap(src interface{}) *StreamBuffer {
	b, err := Wrap(src)
	must(err)
	return b
}

// Pos returns the current position of the cursor
func (b *StreamBuffer) Pos() int { return b.pos }

// Tell is an alias for Pos
func (b *StreamBuffer) Tell() int { return b.pos }

// Len returns the fixed size of the StreamBuffer
func (b *StreamBuffer) Len() int { return len(b.buffer) }

// Remaining returns the number of bytes between the cursor and the end
func (b *StreamBuffer) Remaining() int { return len(b.buffer) - b.pos }

// Bytes returns the backing slice of the StreamBuffer, not a copy
func (b *StreamBuffer) Bytes() []byte { return b.buffer }

// IsEOF reports whether the cursor is at the end of the buffer
func (b *StreamBuffer) IsEOF() bool { return b.pos >= len(b.buffer) }

// SetPos moves the cursor to position, clamped to [0, Len()]
func (b *StreamBuffer) SetPos(position int) {
	switch {
	case position < 0:
		b.pos = 0
	case position > len(b.buffer):
		b.pos = len(b.buffer)
	default:
		b.pos = position
	}
}

// Skip moves the cursor n bytes, negative values move it back. The result is
// clamped to [0, Len()]
func (b *StreamBuffer) Skip(n int) {
	if n > b.Remaining() {
		b.pos = len(b.buffer)
		return
	}

	b.SetPos(b.pos + n)
}

// Rewind moves the cursor back to the start
func (b *StreamBuffer) Rewind() { b.pos = 0 }

// Seek implements io.Seeker. Targets outside the buffer are clamped rather
// than rejected, only an invalid whence is an error
func (b *StreamBuffer) Seek(offset int64, whence int) (int64, error) {
	var base int64
	switch whence {
	case io.SeekStart:
	case io.SeekCurrent:
		base = int64(b.pos)
	case io.SeekEnd:
		base = int64(len(b.buffer))
	default:
		return int64(b.pos), errors.Errorf("invalid whence %d", whence)
	}

	switch l := int64(len(b.buffer)); {
	case offset > l-base:
		b.pos = len(b.buffer)
	case offset < -base:
		b.pos = 0
	default:
		b.pos = int(base + offset)
	}

	return int64(b.pos), nil
}

// next returns the n bytes at the cursor and moves past them, the cursor
// stays put on failure
func (b *StreamBuffer) next(n int) ([]byte, error) {
	if n < 0 || n > b.Remaining() {
		return nil, outOfRange(b.pos, n, b.Remaining())
	}

	p := b.buffer[b.pos : b.pos+n]
	b.pos += n
	return p, nil
}

// ReadBuffer returns a StreamBuffer over the next n bytes sharing storage with
// b and moves the cursor n bytes. Reading past the end returns a shorter
// buffer instead of failing
func (b *StreamBuffer) ReadBuffer(n int) *StreamBuffer {
	end := b.pos
	if n > 0 {
		end += min(n, b.Remaining())
	}

	sub := b.buffer[b.pos:end:end]
	b.Skip(n)

	return NewStreamBuffer(sub)
}

// Read implements io.Reader over the bytes left after the cursor
func (b *StreamBuffer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if b.IsEOF() {
		return 0, io.EOF
	}

	n := copy(p, b.buffer[b.pos:])
	b.pos += n
	return n, nil
}

// WriteBytes copies as much of data as fits at the cursor and moves past it,
// returning the number of bytes copied
func (b *StreamBuffer) WriteBytes(data []byte) int {
	n := copy(b.buffer[b.pos:], data)
	b.pos += n
	return n
}

// Write implements io.Writer. Like WriteBytes the bytes that fit are always
// written, io.ErrShortWrite reports the ones that didn't
func (b *StreamBuffer) Write(data []byte) (int, error) {
	n := b.WriteBytes(data)
	if n < len(data) {
		return n, io.ErrShortWrite
	}

	return n, nil
}

// MustWrite is a write that will panic if Write returns an error or does not
// write all the bytes it is supposed to
func (b *StreamBuffer) MustWrite(data []byte) {
	if _, err := b.Write(data); err != nil {
		panic(errors.Wrap(err, "couldn't write all bytes to the buffer"))
	}
}

// WriteFrom copies the contents of src, a []byte or a Buffer, like WriteBytes
func (b *StreamBuffer) WriteFrom(src interface{}) (int, error) {
	switch s := src.(type) {
	case []byte:
		return b.WriteBytes(s), nil
	case *StreamBuffer:
		if s == nil {
			return 0, errors.Wrap(ErrTypeMismatch, "cannot write a nil StreamBuffer")
		}
		return b.WriteBytes(s.buffer), nil
	case Buffer:
		return b.WriteBytes(s.Bytes()), nil
	}

	return 0, errors.Wrapf(ErrTypeMismatch, "cannot write %T, not a valid []byte or Buffer", src)
}

// WriteVal writes an arbitrary fixed size value to the buffer in little
// endian order
func (b *StreamBuffer) WriteVal(val interface{}) error {
	n := binary.Size(val)
	if n < 0 {
		return errors.Wrapf(ErrTypeMismatch, "%T has no fixed size", val)
	}

	if n > b.Remaining() {
		return outOfRange(b.pos, n, b.Remaining())
	}

	return binary.Write(b, byteOrder, val)
}

// MustWriteVal panics if WriteVal fails
func (b *StreamBuffer) MustWriteVal(val interface{}) {
	must(b.WriteVal(val))
}

// ReadVal reads a fixed size value in little endian order into the value
// pointed to by ptr
func (b *StreamBuffer) ReadVal(ptr interface{}) error {
	n := binary.Size(ptr)
	if n < 0 {
		return errors.Wrapf(ErrTypeMismatch, "%T has no fixed size", ptr)
	}

	if n > b.Remaining() {
		return outOfRange(b.pos, n, b.Remaining())
	}

	return binary.Read(b, byteOrder, ptr)
}
