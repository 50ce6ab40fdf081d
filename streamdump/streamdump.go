// Package streamdump walks a buffer of consecutive string records, as written
// by StreamBuffer's WriteString7 or WriteString0, and prints what it finds.
//
// The reading lives in this package while the cli is implemented in
// cmd/streamdump, to try it out on a stream file,
//
// ```
// go get github.com/performancecopilot/streambuf/streamdump/cmd/streamdump
// ```
package streamdump

import (
	"bytes"

	"github.com/codahale/hdrhistogram"
	"github.com/performancecopilot/streambuf/bytebuffer"
	"github.com/pkg/errors"
)

// Format is the record layout of a stream
type Format int

// Possible values for a Format
const (
	FormatString7 Format = iota // 7 bit encoded byte length, then the bytes
	FormatString0               // bytes followed by a zero byte
)

func (f Format) String() string {
	switch f {
	case FormatString7:
		return "string7"
	case FormatString0:
		return "string0"
	}
	return "Format(?)"
}

// ParseFormat returns the Format named s
func ParseFormat(s string) (Format, error) {
	switch s {
	case "string7":
		return FormatString7, nil
	case "string0":
		return FormatString0, nil
	}
	return 0, errors.Errorf("unknown format %q", s)
}

type options struct {
	format   Format
	encoding bytebuffer.Encoding
}

// Option configures Dump
type Option func(*options)

// WithFormat sets the record layout, FormatString7 if not given
func WithFormat(f Format) Option {
	return func(o *options) { o.format = f }
}

// WithEncoding sets the string encoding, UTF8 if not given
func WithEncoding(e bytebuffer.Encoding) Option {
	return func(o *options) { o.encoding = e }
}

// Record is a single string read from a stream
type Record struct {
	Offset int    // position of the record, including any length prefix
	Length int    // byte length of the payload
	Value  string // decoded payload
}

// Stream is the result of a Dump
type Stream struct {
	Format   Format
	Encoding bytebuffer.Encoding
	Records  []*Record
	Padding  int                     // trailing zero bytes after the last record
	Lengths  *hdrhistogram.Histogram // payload lengths of all records
}

// Dump reads all records from data. For string7 streams, once every byte
// left at a record boundary is zero the rest is counted as padding, so an
// empty record at the very end is not reported. For string0 streams the
// trailing zero bytes past the last terminator are padding
func Dump(data []byte, opts ...Option) (*Stream, error) {
	o := options{format: FormatString7, encoding: bytebuffer.UTF8}
	for _, opt := range opts {
		opt(&o)
	}

	end := len(data)
	if o.format == FormatString0 {
		end = len(bytes.TrimRight(data, "\x00"))
		if end > 0 && end < len(data) {
			// the last terminator belongs to the last record
			end++
		}
	}

	s := &Stream{
		Format:   o.format,
		Encoding: o.encoding,
		Lengths:  hdrhistogram.New(1, int64(max(len(data), 2)), 3),
	}

	b := bytebuffer.NewStreamBuffer(data[:end])
	for !b.IsEOF() {
		offset := b.Pos()
		if o.format == FormatString7 && zeroed(data[offset:end]) {
			break
		}

		r, err := readRecord(b, o)
		if err != nil {
			return nil, errors.Wrapf(err, "record %d at offset %d", len(s.Records), offset)
		}

		if err = s.Lengths.RecordValue(int64(r.Length)); err != nil {
			return nil, errors.Wrap(err, "recording length")
		}
		s.Records = append(s.Records, r)
	}
	s.Padding = len(data) - b.Pos()

	return s, nil
}

func zeroed(p []byte) bool {
	for _, c := range p {
		if c != 0 {
			return false
		}
	}
	return true
}

func readRecord(b *bytebuffer.StreamBuffer, o options) (*Record, error) {
	r := &Record{Offset: b.Pos()}
	enc := bytebuffer.WithEncoding(o.encoding)

	var err error
	switch o.format {
	case FormatString7:
		var l uint64
		if l, err = b.Read7BitInt(); err != nil {
			break
		}
		b.SetPos(r.Offset)

		r.Length = int(l)
		r.Value, err = b.ReadString7(enc)
	case FormatString0:
		rest := b.Bytes()[r.Offset:]
		if r.Length = bytes.IndexByte(rest, 0); r.Length < 0 {
			r.Length = len(rest)
		}
		r.Value, err = b.ReadString0(enc)
	default:
		err = errors.Errorf("unknown format %v", o.format)
	}

	if err != nil {
		return nil, err
	}
	return r, nil
}
