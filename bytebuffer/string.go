package bytebuffer

import (
	"bytes"

	"github.com/pkg/errors"
)

// stringOptions holds the optional arguments of the string methods
type stringOptions struct {
	length    int  // exact byte length to read
	hasLength bool // whether length was set, otherwise read up to a zero byte
	encoding  Encoding
}

// StringOption configures a string read or write
type StringOption func(*stringOptions)

// WithLength reads exactly n bytes instead of scanning for a zero byte
func WithLength(n int) StringOption {
	return func(o *stringOptions) {
		o.length = n
		o.hasLength = true
	}
}

// WithEncoding sets the string encoding, UTF8 if not given
func WithEncoding(e Encoding) StringOption {
	return func(o *stringOptions) {
		o.encoding = e
	}
}

func withoutLength(o *stringOptions) {
	o.length = 0
	o.hasLength = false
}

// newStringOptions applies opts and then overrides on top of the defaults
func newStringOptions(opts []StringOption, overrides ...StringOption) stringOptions {
	o := stringOptions{encoding: UTF8}
	for _, opt := range opts {
		opt(&o)
	}
	for _, opt := range overrides {
		opt(&o)
	}
	return o
}

// scan locates the next string at the cursor, returning its raw bytes and how
// far the cursor has to move to get past it
func (b *StreamBuffer) scan(o stringOptions) ([]byte, int, error) {
	if o.hasLength {
		if o.length < 0 || o.length > b.Remaining() {
			return nil, 0, outOfRange(b.pos, o.length, b.Remaining())
		}
		return b.buffer[b.pos : b.pos+o.length], o.length, nil
	}

	rest := b.buffer[b.pos:]
	n := bytes.IndexByte(rest, 0)
	if n < 0 {
		n = len(rest)
	}

	// the terminator is always accounted for, even when the end of the
	// buffer stood in for it
	return rest[:n], n + 1, nil
}

func (b *StreamBuffer) readString(o stringOptions, advance bool) (string, error) {
	raw, n, err := b.scan(o)
	if err != nil {
		return "", err
	}

	s, err := o.encoding.Decode(raw)
	if err != nil {
		return "", err
	}

	if advance {
		b.Skip(n)
	}
	return s, nil
}

// ReadString reads a string at the cursor. With WithLength exactly that many
// bytes are decoded, otherwise bytes are read up to the next zero byte or the
// end of the buffer and the cursor moves past the terminator
func (b *StreamBuffer) ReadString(opts ...StringOption) (string, error) {
	return b.readString(newStringOptions(opts), true)
}

// ReadString0 reads a zero terminated string, any WithLength is ignored
func (b *StreamBuffer) ReadString0(opts ...StringOption) (string, error) {
	return b.readString(newStringOptions(opts, withoutLength), true)
}

// PeekString decodes like ReadString without moving the cursor
func (b *StreamBuffer) PeekString(opts ...StringOption) (string, error) {
	return b.readString(newStringOptions(opts), false)
}

// ReadChar reads a single byte as a string. Characters longer than one byte
// in the chosen encoding are not reassembled
func (b *StreamBuffer) ReadChar(opts ...StringOption) (string, error) {
	return b.readString(newStringOptions(opts, WithLength(1)), true)
}

// ReadString7 reads a string prefixed with its byte length as a 7 bit encoded
// integer. The cursor doesn't move on failure
func (b *StreamBuffer) ReadString7(opts ...StringOption) (string, error) {
	start := b.pos

	l, err := b.Read7BitInt()
	if err != nil {
		b.pos = start
		return "", err
	}

	if l > uint64(b.Remaining()) {
		err = errors.Wrapf(ErrOutOfRange, "string of %d bytes at offset %d, %d left", l, b.pos, b.Remaining())
		b.pos = start
		return "", err
	}

	s, err := b.readString(newStringOptions(opts, WithLength(int(l))), true)
	if err != nil {
		b.pos = start
		return "", err
	}
	return s, nil
}

func (b *StreamBuffer) writeString(val string, room int, o stringOptions) (int, error) {
	p, err := o.encoding.Encode(val)
	if err != nil {
		return 0, err
	}

	n := o.encoding.fit(p, room)
	copy(b.buffer[b.pos:], p[:n])
	b.pos += n
	return n, nil
}

// WriteString writes val at the cursor and returns the number of bytes
// written. A string that doesn't fit is truncated to the whole characters
// that do, this is not an error. The error is for strings the encoding can't
// encode
func (b *StreamBuffer) WriteString(val string, opts ...StringOption) (int, error) {
	return b.writeString(val, b.Remaining(), newStringOptions(opts))
}

// MustWriteString panics if WriteString fails or truncates
func (b *StreamBuffer) MustWriteString(val string, opts ...StringOption) {
	o := newStringOptions(opts)

	l, err := o.encoding.ByteLength(val)
	must(err)
	if l > b.Remaining() {
		panic(outOfRange(b.pos, l, b.Remaining()))
	}

	_, err = b.writeString(val, l, o)
	must(err)
}

// WriteChar writes at most one byte of val
func (b *StreamBuffer) WriteChar(val string, opts ...StringOption) (int, error) {
	return b.writeString(val, min(1, b.Remaining()), newStringOptions(opts))
}

// WriteString0 writes val followed by a zero byte. The string itself
// truncates like WriteString, a missing terminator is ErrOutOfRange
func (b *StreamBuffer) WriteString0(val string, opts ...StringOption) error {
	if _, err := b.WriteString(val, opts...); err != nil {
		return err
	}
	return b.WriteByte(0)
}

// WriteString7 writes the byte length of val as a 7 bit encoded integer
// followed by val. The length always describes the full string, only the
// payload truncates
func (b *StreamBuffer) WriteString7(val string, opts ...StringOption) error {
	o := newStringOptions(opts)

	l, err := o.encoding.ByteLength(val)
	if err != nil {
		return err
	}

	if err = b.Write7BitInt(uint64(l)); err != nil {
		return err
	}

	_, err = b.writeString(val, b.Remaining(), o)
	return err
}
