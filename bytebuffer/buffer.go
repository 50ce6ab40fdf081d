// Package bytebuffer implements a cursor based binary reader/writer over a
// fixed size byte slice
//
// bytes.Buffer and bytes.Reader were the obvious starting points but neither
// lets you read and write through the same position, and bytes.Buffer always
// appends at the end and grows
//
// passing the position around to every encode/decode call, like
//
//	pos = writeString(buffer, pos, "abc")
//
// doesn't scale past a handful of fields, so a StreamBuffer keeps the cursor
// for you and moves it on every read, write, skip or seek
//
// the slice passed in is never copied. writes land in the caller's memory and
// sub buffers returned by ReadBuffer share storage with their parent
//
// two failure policies coexist on purpose. fixed width reads and writes fail
// with ErrOutOfRange when the span doesn't fit, while cursor moves, sub buffer
// reads and string/byte writes saturate at the end of the buffer
package bytebuffer

import "io"

// Buffer defines an abstraction for an object that allows reading and writing
// of binary values anywhere within a fixed range
type Buffer interface {
	io.Reader
	io.Writer
	io.Seeker
	Bytes() []byte
	Pos() int
	SetPos(int)
	Len() int
}
