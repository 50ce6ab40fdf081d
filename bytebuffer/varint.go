package bytebuffer

// 7 bit encoded integers, as written by .NET's BinaryWriter: 7 value bits per
// byte, least significant group first, high bit set on all but the last byte

// Len7BitInt returns the number of bytes Write7BitInt uses to encode val
func Len7BitInt(val uint64) int {
	n := 1
	for ; val >= 0x80; val >>= 7 {
		n++
	}
	return n
}

// Read7BitInt reads a 7 bit encoded integer. There is no length limit, a
// sequence that never terminates fails once the buffer runs out
func (b *StreamBuffer) Read7BitInt() (uint64, error) {
	var val uint64
	for shift := uint(0); ; shift += 7 {
		c, err := b.ReadByte()
		if err != nil {
			return 0, err
		}

		val |= uint64(c&0x7f) << shift
		if c&0x80 == 0 {
			return val, nil
		}
	}
}

// Write7BitInt writes val as a 7 bit encoded integer. Nothing is written if
// the whole encoding doesn't fit
func (b *StreamBuffer) Write7BitInt(val uint64) error {
	p, err := b.next(Len7BitInt(val))
	if err != nil {
		return err
	}

	i := 0
	for ; val >= 0x80; val >>= 7 {
		p[i] = byte(val | 0x80)
		i++
	}
	p[i] = byte(val)

	return nil
}

// MustWrite7BitInt panics if Write7BitInt fails
func (b *StreamBuffer) MustWrite7BitInt(val uint64) { must(b.Write7BitInt(val)) }
