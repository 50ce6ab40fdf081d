package bytebuffer

import (
	"bytes"
	"io"
	"testing"
)

func TestWriteInt32LE(t *testing.T) {
	cases := []int32{0, 10, 100, 200, 1000, 10000, 10000000, 1000000000, 2147483647}

	for _, val := range cases {
		b := NewStreamBufferSize(4)

		err := b.WriteInt32LE(val)
		if err != nil {
			t.Error(err)
			return
		}

		if b.Pos() != 4 {
			t.Error("Not Writing 4 bytes for int32")
			return
		}

		e := []byte{
			byte(val & 0xFF),
			byte((val >> 8) & 0xFF),
			byte((val >> 16) & 0xFF),
			byte(val >> 24),
		}

		for i := 0; i < 4; i++ {
			if b.buffer[i] != e[i] {
				t.Errorf("pos: %v, expected: %v, got %v", i, e[i], b.buffer[i])
			}
		}
	}
}

func TestWriteInt64LE(t *testing.T) {
	cases := []int64{0, 10, 100, 200, 1000, 10000, 10000000, 1000000000, 2147483647,
		4294967295, 10000000000000, 100000000000000000, 9223372036854775807}

	for _, val := range cases {
		b := NewStreamBufferSize(8)

		err := b.WriteInt64LE(val)
		if err != nil {
			t.Error(err)
			return
		}

		if b.Pos() != 8 {
			t.Error("Not Writing 8 bytes for int64")
			return
		}

		e := []byte{
			byte(val & 0xFF),
			byte((val >> 8) & 0xFF),
			byte((val >> 16) & 0xFF),
			byte((val >> 24) & 0xFF),
			byte((val >> 32) & 0xFF),
			byte((val >> 40) & 0xFF),
			byte((val >> 48) & 0xFF),
			byte(val >> 56),
		}

		for i := 0; i < 8; i++ {
			if b.buffer[i] != e[i] {
				t.Errorf("pos: %v, expected: %v, got %v", i, e[i], b.buffer[i])
			}
		}
	}
}

func TestWriteString(t *testing.T) {
	cases := []string{"MMV", "Suyash", "This is a little long string"}
	for _, val := range cases {
		b := NewStreamBufferSize(len(val))

		n, err := b.WriteString(val)
		if err != nil {
			t.Error(err)
			return
		}

		if n != len(val) || b.Pos() != len(val) {
			t.Errorf("Expected to write %v bytes, writing %v bytes", len(val), b.Pos())
			return
		}

		e := []byte(val)
		for i := 0; i < len(val); i++ {
			if b.buffer[i] != e[i] {
				t.Errorf("pos: %v, expected: %v, got %v", i, e[i], b.buffer[i])
			}
		}
	}
}

func TestSetPos(t *testing.T) {
	b := NewStreamBufferSize(4)

	cases := []struct{ in, out int }{
		{0, 0}, {2, 2}, {4, 4}, {5, 4}, {1000, 4}, {-1, 0}, {3, 3},
	}
	for _, c := range cases {
		b.SetPos(c.in)
		if b.Pos() != c.out {
			t.Errorf("SetPos(%d): expected position %d, got %d", c.in, c.out, b.Pos())
		}
	}

	b.SetPos(2)
	b.WriteString("a")

	if b.Pos() != 3 {
		t.Error("Position not changing as expected")
		return
	}

	if b.Bytes()[2] != 'a' {
		t.Error("Value was not written at the expected position")
		return
	}

	b.SetPos(2)
	err := b.WriteInt32LE(10)

	if err == nil {
		t.Error("Expected error in writing a value guaranteed to overflow")
		return
	}

	if !IsOutOfRange(err) {
		t.Errorf("expected an out of range error, got %v", err)
	}

	if b.Pos() != 2 {
		t.Error("Position changing despite a write failure")
		return
	}
}

func TestSkip(t *testing.T) {
	b := NewStreamBufferSize(5)

	b.Skip(-1)
	if b.Pos() != 0 {
		t.Errorf("expected Skip(-1) at 0 to stay at 0, got %d", b.Pos())
	}

	b.Skip(1)
	b.Skip(2)
	if b.Pos() != 3 {
		t.Errorf("expected position 3, got %d", b.Pos())
	}

	b.Skip(int(^uint(0) >> 1))
	if b.Pos() != 5 || !b.IsEOF() {
		t.Errorf("expected Skip to clamp at the end, got %d", b.Pos())
	}

	b.Rewind()
	if b.Pos() != 0 || b.Tell() != 0 {
		t.Error("Rewind didn't move back to the start")
	}
}

func TestSeek(t *testing.T) {
	b := NewStreamBufferSize(5)

	cases := []struct {
		offset int64
		whence int
		out    int64
	}{
		{1000, io.SeekStart, 5},
		{2, io.SeekStart, 2},
		{1, io.SeekCurrent, 3},
		{-10, io.SeekCurrent, 0},
		{-1, io.SeekEnd, 4},
		{1, io.SeekEnd, 5},
		{-9223372036854775808, io.SeekEnd, 0},
		{9223372036854775807, io.SeekCurrent, 5},
	}

	for _, c := range cases {
		pos, err := b.Seek(c.offset, c.whence)
		if err != nil {
			t.Errorf("Seek(%d, %d): %v", c.offset, c.whence, err)
			continue
		}

		if pos != c.out || int64(b.Tell()) != c.out {
			t.Errorf("Seek(%d, %d): expected %d, got %d", c.offset, c.whence, c.out, pos)
		}
	}

	if !b.IsEOF() {
		t.Error("expected to be at the end after seeking past it")
	}

	if _, err := b.Seek(0, 42); err == nil {
		t.Error("expected an error for an invalid whence")
	}
}

func TestWrap(t *testing.T) {
	buffer := []byte{0, 1}

	a, err := Wrap(buffer)
	if err != nil {
		t.Fatal(err)
	}

	b, err := Wrap(a)
	if err != nil {
		t.Fatal(err)
	}

	if a == b {
		t.Error("expected Wrap to create a new StreamBuffer")
	}

	if &a.Bytes()[0] != &b.Bytes()[0] || &buffer[0] != &a.Bytes()[0] {
		t.Error("expected wrapped buffers to share storage")
	}

	a.Skip(1)
	if b.Pos() != 0 {
		t.Error("expected independent cursors")
	}

	if err = a.WriteByte(9); err != nil {
		t.Fatal(err)
	}

	if v, _ := b.ReadUint8(); v != 0 {
		t.Errorf("expected 0, got %d", v)
	}

	if v, _ := b.ReadUint8(); v != 9 {
		t.Errorf("write through one buffer not visible through the other, got %d", v)
	}
}

func TestWrapTypeMismatch(t *testing.T) {
	var nilbuffer *StreamBuffer

	for _, src := range []interface{}{nil, "abc", 42, []int{1, 2}, nilbuffer} {
		if _, err := Wrap(src); !IsTypeMismatch(err) {
			t.Errorf("Wrap(%#v): expected a type mismatch, got %v", src, err)
		}
	}
}

func TestReadBuffer(t *testing.T) {
	b := NewStreamBuffer([]byte{1, 2, 3, 4, 5, 6, 7, 8})

	sub := b.ReadBuffer(3)
	if sub.Len() != 3 || sub.Pos() != 0 {
		t.Fatalf("expected a 3 byte buffer at 0, got %d bytes at %d", sub.Len(), sub.Pos())
	}

	sub.SetPos(1)
	if v, _ := sub.ReadByte(); v != 2 {
		t.Errorf("expected 2, got %d", v)
	}

	if got := b.ReadBuffer(4).Bytes(); !bytes.Equal(got, []byte{4, 5, 6, 7}) {
		t.Errorf("expected [4 5 6 7], got %v", got)
	}

	// read beyond the length
	if got := b.ReadBuffer(2).Bytes(); !bytes.Equal(got, []byte{8}) {
		t.Errorf("expected [8], got %v", got)
	}

	if !b.IsEOF() {
		t.Error("expected the parent to be at its end")
	}

	if got := b.ReadBuffer(2); got.Len() != 0 {
		t.Errorf("expected an empty buffer at the end, got %d bytes", got.Len())
	}
}

func TestReadBufferPastEnd(t *testing.T) {
	b := NewStreamBufferSize(8)
	b.SetPos(6)

	sub := b.ReadBuffer(4)
	if sub.Len() != 2 {
		t.Errorf("expected a 2 byte view, got %d", sub.Len())
	}

	if b.Pos() != 8 {
		t.Errorf("expected the cursor to clamp at 8, got %d", b.Pos())
	}

	// the view shares storage but can't be extended past its range
	sub.MustWriteUint16BE(0xabcd)
	if b.Bytes()[6] != 0xab || b.Bytes()[7] != 0xcd {
		t.Error("write through the sub buffer not visible in the parent")
	}

	if cap(sub.Bytes()) != 2 {
		t.Errorf("expected the view capacity to be capped at 2, got %d", cap(sub.Bytes()))
	}
}

func TestWriteBytes(t *testing.T) {
	buffer := make([]byte, 4)
	b := NewStreamBuffer(buffer)

	b.MustWrite([]byte{1, 2})
	n, err := b.Write([]byte{3, 4})
	if err != nil || n != 2 {
		t.Fatalf("expected 2 bytes written, got %d, %v", n, err)
	}

	if !bytes.Equal(buffer, []byte{1, 2, 3, 4}) {
		t.Errorf("expected [1 2 3 4], got %v", buffer)
	}

	b.SetPos(3)
	n, err = b.Write([]byte{7, 8, 9})
	if n != 1 || err != io.ErrShortWrite {
		t.Errorf("expected a short write of 1 byte, got %d, %v", n, err)
	}

	if buffer[3] != 7 || !b.IsEOF() {
		t.Error("the bytes that fit were not written")
	}

	b.SetPos(2)
	if n = b.WriteBytes([]byte{5, 6, 7}); n != 2 {
		t.Errorf("expected WriteBytes to copy 2 bytes, got %d", n)
	}
}

func TestWriteFrom(t *testing.T) {
	b := NewStreamBufferSize(4)

	if n, err := b.WriteFrom([]byte{1}); n != 1 || err != nil {
		t.Errorf("expected 1 byte written, got %d, %v", n, err)
	}

	if n, err := b.WriteFrom(NewStreamBuffer([]byte{2, 3})); n != 2 || err != nil {
		t.Errorf("expected 2 bytes written, got %d, %v", n, err)
	}

	if _, err := b.WriteFrom("4"); !IsTypeMismatch(err) {
		t.Errorf("expected a type mismatch, got %v", err)
	}

	if b.Pos() != 3 || !bytes.Equal(b.Bytes(), []byte{1, 2, 3, 0}) {
		t.Errorf("unexpected state %v at %d", b.Bytes(), b.Pos())
	}
}

func TestWriteVal(t *testing.T) {
	b := NewStreamBufferSize(6)

	if err := b.WriteVal(uint32(0x01020304)); err != nil {
		t.Fatal(err)
	}

	if err := b.WriteVal(int(1)); !IsTypeMismatch(err) {
		t.Errorf("expected a type mismatch for int, got %v", err)
	}

	if err := b.WriteVal(uint32(1)); !IsOutOfRange(err) {
		t.Errorf("expected out of range, got %v", err)
	}

	b.Rewind()
	var v uint32
	if err := b.ReadVal(&v); err != nil || v != 0x01020304 {
		t.Errorf("expected 0x01020304, got %x, %v", v, err)
	}
}

func TestRead(t *testing.T) {
	b := NewStreamBuffer([]byte("hello"))
	p := make([]byte, 3)

	if n, err := b.Read(p); n != 3 || err != nil || string(p) != "hel" {
		t.Errorf("expected hel, got %q %d %v", p[:n], n, err)
	}

	if n, err := b.Read(p); n != 2 || err != nil || string(p[:n]) != "lo" {
		t.Errorf("expected lo, got %q %d %v", p[:n], n, err)
	}

	if _, err := b.Read(p); err != io.EOF {
		t.Errorf("expected io.EOF, got %v", err)
	}
}

func TestIsEOF(t *testing.T) {
	b := NewStreamBuffer([]byte{0, 1, 2})

	for i := 0; i < 3; i++ {
		if b.Tell() != i || b.IsEOF() {
			t.Fatalf("expected position %d before the end", i)
		}
		b.ReadByte()
	}

	if b.Tell() != 3 || !b.IsEOF() {
		t.Error("expected to be at the end")
	}
}
