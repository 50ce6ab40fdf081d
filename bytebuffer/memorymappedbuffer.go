package bytebuffer

import (
	"os"
	"path/filepath"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// MemoryMappedBuffer is a StreamBuffer that is also mapped into memory
type MemoryMappedBuffer struct {
	*StreamBuffer
	loc  string    // location of the memory mapped file
	size int       // size in bytes
	m    mmap.MMap // nil for empty files, nothing gets mapped for them
}

// NewMemoryMappedBuffer will create a file of size zeroed bytes at loc,
// replacing any existing one, and map it read/write
func NewMemoryMappedBuffer(loc string, size int) (*MemoryMappedBuffer, error) {
	if _, err := os.Stat(loc); err == nil {
		if err = os.Remove(loc); err != nil {
			return nil, errors.Wrap(err, "removing existing file")
		}
	}

	// ensure destination directory exists
	if err := os.MkdirAll(filepath.Dir(loc), 0700); err != nil {
		return nil, errors.Wrap(err, "creating parent directory")
	}

	f, err := os.OpenFile(loc, os.O_CREATE|os.O_RDWR|os.O_EXCL, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "creating file")
	}
	defer f.Close()

	if err = f.Truncate(int64(size)); err != nil {
		return nil, errors.Wrapf(err, "could not initialize %d bytes", size)
	}

	return mapFile(f, loc, size, mmap.RDWR)
}

// OpenMemoryMappedBuffer maps an existing file. Writes through a read only
// mapping fault, so only pass writable = false for buffers that are read
func OpenMemoryMappedBuffer(loc string, writable bool) (*MemoryMappedBuffer, error) {
	flag, prot := os.O_RDONLY, mmap.RDONLY
	if writable {
		flag, prot = os.O_RDWR, mmap.RDWR
	}

	f, err := os.OpenFile(loc, flag, 0)
	if err != nil {
		return nil, errors.Wrap(err, "opening file")
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "reading file size")
	}

	return mapFile(f, loc, int(fi.Size()), prot)
}

func mapFile(f *os.File, loc string, size, prot int) (*MemoryMappedBuffer, error) {
	if size == 0 {
		return &MemoryMappedBuffer{NewStreamBuffer([]byte{}), loc, 0, nil}, nil
	}

	m, err := mmap.MapRegion(f, size, prot, 0, 0)
	if err != nil {
		return nil, errors.Wrapf(err, "mapping %s", loc)
	}

	return &MemoryMappedBuffer{NewStreamBuffer(m), loc, size, m}, nil
}

// Size returns the size of the mapping in bytes, fixed when it was created
// or opened
func (b *MemoryMappedBuffer) Size() int { return b.size }

// Location returns the path of the mapped file
func (b *MemoryMappedBuffer) Location() string { return b.loc }

// Flush writes any changes in the mapping back to the file
func (b *MemoryMappedBuffer) Flush() error {
	if b.m == nil {
		return nil
	}
	return b.m.Flush()
}

// Unmap will manually delete the memory mapping of a mapped buffer, the
// StreamBuffer must not be used afterwards
func (b *MemoryMappedBuffer) Unmap(removefile bool) error {
	if b.m != nil {
		if err := b.m.Unmap(); err != nil {
			return errors.Wrap(err, "unmapping")
		}
		b.m = nil
	}

	if removefile {
		if err := os.Remove(b.loc); err != nil {
			return errors.Wrap(err, "removing file")
		}
	}

	return nil
}
