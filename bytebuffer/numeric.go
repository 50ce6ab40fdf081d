package bytebuffer

import (
	"encoding/binary"
	"math"

	"github.com/pkg/errors"
)

var (
	le = binary.LittleEndian
	be = binary.BigEndian
)

func (b *StreamBuffer) read16(order binary.ByteOrder) (uint16, error) {
	p, err := b.next(2)
	if err != nil {
		return 0, err
	}
	return order.Uint16(p), nil
}

func (b *StreamBuffer) read32(order binary.ByteOrder) (uint32, error) {
	p, err := b.next(4)
	if err != nil {
		return 0, err
	}
	return order.Uint32(p), nil
}

func (b *StreamBuffer) read64(order binary.ByteOrder) (uint64, error) {
	p, err := b.next(8)
	if err != nil {
		return 0, err
	}
	return order.Uint64(p), nil
}

func (b *StreamBuffer) write16(order binary.ByteOrder, val uint16) error {
	p, err := b.next(2)
	if err != nil {
		return err
	}
	order.PutUint16(p, val)
	return nil
}

func (b *StreamBuffer) write32(order binary.ByteOrder, val uint32) error {
	p, err := b.next(4)
	if err != nil {
		return err
	}
	order.PutUint32(p, val)
	return nil
}

func (b *StreamBuffer) write64(order binary.ByteOrder, val uint64) error {
	p, err := b.next(8)
	if err != nil {
		return err
	}
	order.PutUint64(p, val)
	return nil
}

// 8 bit

// ReadUint8 reads an uint8 from the buffer
func (b *StreamBuffer) ReadUint8() (uint8, error) {
	p, err := b.next(1)
	if err != nil {
		return 0, err
	}
	return p[0], nil
}

// ReadInt8 reads an int8 from the buffer
func (b *StreamBuffer) ReadInt8() (int8, error) {
	v, err := b.ReadUint8()
	return int8(v), err
}

// ReadByte is an alias for ReadUint8, it makes a StreamBuffer an io.ByteReader
func (b *StreamBuffer) ReadByte() (byte, error) { return b.ReadUint8() }

// ReadSByte is an alias for ReadInt8
func (b *StreamBuffer) ReadSByte() (int8, error) { return b.ReadInt8() }

// WriteUint8 writes an uint8 to the buffer
func (b *StreamBuffer) WriteUint8(val uint8) error {
	p, err := b.next(1)
	if err != nil {
		return err
	}
	p[0] = val
	return nil
}

// MustWriteUint8 panics if WriteUint8 fails
func (b *StreamBuffer) MustWriteUint8(val uint8) { must(b.WriteUint8(val)) }

// WriteInt8 writes an int8 to the buffer
func (b *StreamBuffer) WriteInt8(val int8) error { return b.WriteUint8(uint8(val)) }

// MustWriteInt8 panics if WriteInt8 fails
func (b *StreamBuffer) MustWriteInt8(val int8) { must(b.WriteInt8(val)) }

// WriteByte is an alias for WriteUint8, it makes a StreamBuffer an io.ByteWriter
func (b *StreamBuffer) WriteByte(val byte) error { return b.WriteUint8(val) }

// WriteSByte is an alias for WriteInt8
func (b *StreamBuffer) WriteSByte(val int8) error { return b.WriteInt8(val) }

// 16 bit

// ReadUint16LE reads a little endian uint16
func (b *StreamBuffer) ReadUint16LE() (uint16, error) { return b.read16(le) }

// ReadUint16BE reads a big endian uint16
func (b *StreamBuffer) ReadUint16BE() (uint16, error) { return b.read16(be) }

// ReadInt16LE reads a little endian int16
func (b *StreamBuffer) ReadInt16LE() (int16, error) {
	v, err := b.read16(le)
	return int16(v), err
}

// ReadInt16BE reads a big endian int16
func (b *StreamBuffer) ReadInt16BE() (int16, error) {
	v, err := b.read16(be)
	return int16(v), err
}

// WriteUint16LE writes a little endian uint16
func (b *StreamBuffer) WriteUint16LE(val uint16) error { return b.write16(le, val) }

// MustWriteUint16LE panics if WriteUint16LE fails
func (b *StreamBuffer) MustWriteUint16LE(val uint16) { must(b.WriteUint16LE(val)) }

// WriteUint16BE writes a big endian uint16
func (b *StreamBuffer) WriteUint16BE(val uint16) error { return b.write16(be, val) }

// MustWriteUint16BE panics if WriteUint16BE fails
func (b *StreamBuffer) MustWriteUint16BE(val uint16) { must(b.WriteUint16BE(val)) }

// WriteInt16LE writes a little endian int16
func (b *StreamBuffer) WriteInt16LE(val int16) error { return b.write16(le, uint16(val)) }

// MustWriteInt16LE panics if WriteInt16LE fails
func (b *StreamBuffer) MustWriteInt16LE(val int16) { must(b.WriteInt16LE(val)) }

// WriteInt16BE writes a big endian int16
func (b *StreamBuffer) WriteInt16BE(val int16) error { return b.write16(be, uint16(val)) }

// MustWriteInt16BE panics if WriteInt16BE fails
func (b *StreamBuffer) MustWriteInt16BE(val int16) { must(b.WriteInt16BE(val)) }

// 32 bit

// ReadUint32LE reads a little endian uint32
func (b *StreamBuffer) ReadUint32LE() (uint32, error) { return b.read32(le) }

// ReadUint32BE reads a big endian uint32
func (b *StreamBuffer) ReadUint32BE() (uint32, error) { return b.read32(be) }

// ReadInt32LE reads a little endian int32
func (b *StreamBuffer) ReadInt32LE() (int32, error) {
	v, err := b.read32(le)
	return int32(v), err
}

// ReadInt32BE reads a big endian int32
func (b *StreamBuffer) ReadInt32BE() (int32, error) {
	v, err := b.read32(be)
	return int32(v), err
}

// WriteUint32LE writes a little endian uint32
func (b *StreamBuffer) WriteUint32LE(val uint32) error { return b.write32(le, val) }

// MustWriteUint32LE panics if WriteUint32LE fails
func (b *StreamBuffer) MustWriteUint32LE(val uint32) { must(b.WriteUint32LE(val)) }

// WriteUint32BE writes a big endian uint32
func (b *StreamBuffer) WriteUint32BE(val uint32) error { return b.write32(be, val) }

// MustWriteUint32BE panics if WriteUint32BE fails
func (b *StreamBuffer) MustWriteUint32BE(val uint32) { must(b.WriteUint32BE(val)) }

// WriteInt32LE writes a little endian int32
func (b *StreamBuffer) WriteInt32LE(val int32) error { return b.write32(le, uint32(val)) }

// MustWriteInt32LE panics if WriteInt32LE fails
func (b *StreamBuffer) MustWriteInt32LE(val int32) { must(b.WriteInt32LE(val)) }

// WriteInt32BE writes a big endian int32
func (b *StreamBuffer) WriteInt32BE(val int32) error { return b.write32(be, uint32(val)) }

// MustWriteInt32BE panics if WriteInt32BE fails
func (b *StreamBuffer) MustWriteInt32BE(val int32) { must(b.WriteInt32BE(val)) }

// 64 bit

// ReadUint64LE reads a little endian uint64
func (b *StreamBuffer) ReadUint64LE() (uint64, error) { return b.read64(le) }

// ReadUint64BE reads a big endian uint64
func (b *StreamBuffer) ReadUint64BE() (uint64, error) { return b.read64(be) }

// ReadInt64LE reads a little endian int64
func (b *StreamBuffer) ReadInt64LE() (int64, error) {
	v, err := b.read64(le)
	return int64(v), err
}

// ReadInt64BE reads a big endian int64
func (b *StreamBuffer) ReadInt64BE() (int64, error) {
	v, err := b.read64(be)
	return int64(v), err
}

// WriteUint64LE writes a little endian uint64
func (b *StreamBuffer) WriteUint64LE(val uint64) error { return b.write64(le, val) }

// MustWriteUint64LE panics if WriteUint64LE fails
func (b *StreamBuffer) MustWriteUint64LE(val uint64) { must(b.WriteUint64LE(val)) }

// WriteUint64BE writes a big endian uint64
func (b *StreamBuffer) WriteUint64BE(val uint64) error { return b.write64(be, val) }

// MustWriteUint64BE panics if WriteUint64BE fails
func (b *StreamBuffer) MustWriteUint64BE(val uint64) { must(b.WriteUint64BE(val)) }

// WriteInt64LE writes a little endian int64
func (b *StreamBuffer) WriteInt64LE(val int64) error { return b.write64(le, uint64(val)) }

// MustWriteInt64LE panics if WriteInt64LE fails
func (b *StreamBuffer) MustWriteInt64LE(val int64) { must(b.WriteInt64LE(val)) }

// WriteInt64BE writes a big endian int64
func (b *StreamBuffer) WriteInt64BE(val int64) error { return b.write64(be, uint64(val)) }

// MustWriteInt64BE panics if WriteInt64BE fails
func (b *StreamBuffer) MustWriteInt64BE(val int64) { must(b.WriteInt64BE(val)) }

// floating point

// ReadFloat32LE reads a little endian IEEE-754 float32
func (b *StreamBuffer) ReadFloat32LE() (float32, error) {
	v, err := b.read32(le)
	return math.Float32frombits(v), err
}

// ReadFloat32BE reads a big endian IEEE-754 float32
func (b *StreamBuffer) ReadFloat32BE() (float32, error) {
	v, err := b.read32(be)
	return math.Float32frombits(v), err
}

// ReadFloat64LE reads a little endian IEEE-754 float64
func (b *StreamBuffer) ReadFloat64LE() (float64, error) {
	v, err := b.read64(le)
	return math.Float64frombits(v), err
}

// ReadFloat64BE reads a big endian IEEE-754 float64
func (b *StreamBuffer) ReadFloat64BE() (float64, error) {
	v, err := b.read64(be)
	return math.Float64frombits(v), err
}

// WriteFloat32LE writes a little endian float32
func (b *StreamBuffer) WriteFloat32LE(val float32) error {
	return b.write32(le, math.Float32bits(val))
}

// MustWriteFloat32LE panics if WriteFloat32LE fails
func (b *StreamBuffer) MustWriteFloat32LE(val float32) { must(b.WriteFloat32LE(val)) }

// WriteFloat32BE writes a big endian float32
func (b *StreamBuffer) WriteFloat32BE(val float32) error {
	return b.write32(be, math.Float32bits(val))
}

// MustWriteFloat32BE panics if WriteFloat32BE fails
func (b *StreamBuffer) MustWriteFloat32BE(val float32) { must(b.WriteFloat32BE(val)) }

// WriteFloat64LE writes a little endian float64
func (b *StreamBuffer) WriteFloat64LE(val float64) error {
	return b.write64(le, math.Float64bits(val))
}

// MustWriteFloat64LE panics if WriteFloat64LE fails
func (b *StreamBuffer) MustWriteFloat64LE(val float64) { must(b.WriteFloat64LE(val)) }

// WriteFloat64BE writes a big endian float64
func (b *StreamBuffer) WriteFloat64BE(val float64) error {
	return b.write64(be, math.Float64bits(val))
}

// MustWriteFloat64BE panics if WriteFloat64BE fails
func (b *StreamBuffer) MustWriteFloat64BE(val float64) { must(b.WriteFloat64BE(val)) }

// variable byte length

// MaxByteLength is the widest integer ReadIntLE and friends will handle
const MaxByteLength = 6

func checkByteLength(byteLength int) error {
	if byteLength < 1 || byteLength > MaxByteLength {
		return errors.Wrapf(ErrOutOfRange, "byteLength must be between 1 and %d, got %d", MaxByteLength, byteLength)
	}
	return nil
}

func signExtend(v uint64, byteLength int) int64 {
	shift := uint(64 - 8*byteLength)
	return int64(v<<shift) >> shift
}

func (b *StreamBuffer) readUint(byteLength int, bigEndian bool) (uint64, error) {
	if err := checkByteLength(byteLength); err != nil {
		return 0, err
	}

	p, err := b.next(byteLength)
	if err != nil {
		return 0, err
	}

	var v uint64
	for i := 0; i < byteLength; i++ {
		if bigEndian {
			v = v<<8 | uint64(p[i])
		} else {
			v = v<<8 | uint64(p[byteLength-1-i])
		}
	}
	return v, nil
}

func (b *StreamBuffer) writeUint(val uint64, byteLength int, bigEndian bool) error {
	if err := checkByteLength(byteLength); err != nil {
		return err
	}

	if limit := uint64(1)<<(8*uint(byteLength)) - 1; val > limit {
		return errors.Wrapf(ErrOutOfRange, "%d doesn't fit in %d bytes", val, byteLength)
	}

	p, err := b.next(byteLength)
	if err != nil {
		return err
	}

	for i := 0; i < byteLength; i++ {
		if bigEndian {
			p[byteLength-1-i] = byte(val >> (8 * uint(i)))
		} else {
			p[i] = byte(val >> (8 * uint(i)))
		}
	}
	return nil
}

func (b *StreamBuffer) writeInt(val int64, byteLength int, bigEndian bool) error {
	if err := checkByteLength(byteLength); err != nil {
		return err
	}

	bits := 8 * uint(byteLength)
	if lo, hi := -int64(1)<<(bits-1), int64(1)<<(bits-1)-1; val < lo || val > hi {
		return errors.Wrapf(ErrOutOfRange, "%d doesn't fit in %d bytes", val, byteLength)
	}

	return b.writeUint(uint64(val)&(uint64(1)<<bits-1), byteLength, bigEndian)
}

// ReadUintLE reads an unsigned little endian integer byteLength bytes wide
func (b *StreamBuffer) ReadUintLE(byteLength int) (uint64, error) {
	return b.readUint(byteLength, false)
}

// ReadUintBE reads an unsigned big endian integer byteLength bytes wide
func (b *StreamBuffer) ReadUintBE(byteLength int) (uint64, error) {
	return b.readUint(byteLength, true)
}

// ReadIntLE reads a signed little endian integer byteLength bytes wide
func (b *StreamBuffer) ReadIntLE(byteLength int) (int64, error) {
	v, err := b.readUint(byteLength, false)
	if err != nil {
		return 0, err
	}
	return signExtend(v, byteLength), nil
}

// ReadIntBE reads a signed big endian integer byteLength bytes wide
func (b *StreamBuffer) ReadIntBE(byteLength int) (int64, error) {
	v, err := b.readUint(byteLength, true)
	if err != nil {
		return 0, err
	}
	return signExtend(v, byteLength), nil
}

// WriteUintLE writes val as an unsigned little endian integer byteLength bytes wide
func (b *StreamBuffer) WriteUintLE(val uint64, byteLength int) error {
	return b.writeUint(val, byteLength, false)
}

// WriteUintBE writes val as an unsigned big endian integer byteLength bytes wide
func (b *StreamBuffer) WriteUintBE(val uint64, byteLength int) error {
	return b.writeUint(val, byteLength, true)
}

// WriteIntLE writes val as a signed little endian integer byteLength bytes wide
func (b *StreamBuffer) WriteIntLE(val int64, byteLength int) error {
	return b.writeInt(val, byteLength, false)
}

// WriteIntBE writes val as a signed big endian integer byteLength bytes wide
func (b *StreamBuffer) WriteIntBE(val int64, byteLength int) error {
	return b.writeInt(val, byteLength, true)
}
