package streambuf

import (
	"os"
	"path"
	"strings"
	"sync"

	"github.com/performancecopilot/streambuf/bytebuffer"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// EraseFileOnStop if set to true, will also delete the memory mapped file
var EraseFileOnStop = false

func fileLocation(name string) (string, error) {
	if name == "" || name == "." || name == ".." || strings.ContainsRune(name, os.PathSeparator) {
		return "", errors.Errorf("invalid name %q, it must be a file name without a path separator", name)
	}

	return path.Join(tmpDir(), "streambuf", name), nil
}

// File is a named, fixed size stream file mapped into memory, written and
// read through a StreamBuffer
type File struct {
	sync.Mutex
	loc    string                         // absolute location of the mapped file
	size   int                            // size in bytes
	buffer *bytebuffer.MemoryMappedBuffer // current mapping, nil when stopped
}

// NewFile initializes a new File object, nothing is created until Start
func NewFile(name string, size int) (*File, error) {
	if size <= 0 {
		return nil, errors.Errorf("invalid size %d", size)
	}

	loc, err := fileLocation(name)
	if err != nil {
		return nil, err
	}

	if logging {
		logger.Info("deduced location to write the stream file", zap.String("location", loc))
	}

	return &File{loc: loc, size: size}, nil
}

// Location returns the absolute location of the mapped file
func (f *File) Location() string { return f.loc }

// Size returns the size of the file in bytes
func (f *File) Size() int { return f.size }

// Buffer returns a StreamBuffer over the mapped file, nil if the file isn't
// started. Every call returns a new cursor over the same storage
func (f *File) Buffer() *bytebuffer.StreamBuffer {
	f.Lock()
	defer f.Unlock()

	if f.buffer == nil {
		return nil
	}
	return bytebuffer.MustWrap(f.buffer)
}

// Start creates the file and maps it into memory
func (f *File) Start() error {
	f.Lock()
	defer f.Unlock()

	if f.buffer != nil {
		return errors.New("trying to start an already started mapping")
	}

	if logging {
		logger.Info("initializing the stream file", zap.Int("length", f.size))
	}

	buffer, err := bytebuffer.NewMemoryMappedBuffer(f.loc, f.size)
	if err != nil {
		if logging {
			logger.Error("cannot create MemoryMappedBuffer", zap.Error(err))
		}
		return err
	}
	f.buffer = buffer

	if logging {
		logger.Info("created MemoryMappedBuffer", zap.String("location", f.loc))
	}

	return nil
}

// MustStart is a start that panics
func (f *File) MustStart() {
	if err := f.Start(); err != nil {
		panic(err)
	}
}

// Sync flushes the mapping to disk
func (f *File) Sync() error {
	f.Lock()
	defer f.Unlock()

	if f.buffer == nil {
		return errors.New("trying to sync a stopped mapping")
	}
	return f.buffer.Flush()
}

// Stop removes the mapping, and the file too if EraseFileOnStop is set.
// StreamBuffers handed out by Buffer must not be used afterwards
func (f *File) Stop() error {
	f.Lock()
	defer f.Unlock()

	if f.buffer == nil {
		return errors.New("trying to stop an already stopped mapping")
	}

	if logging {
		logger.Info("stopping the stream file")
	}

	err := f.buffer.Unmap(EraseFileOnStop)
	f.buffer = nil
	if err != nil {
		if logging {
			logger.Error("error unmapping MemoryMappedBuffer", zap.Error(err))
		}
		return err
	}

	if logging {
		logger.Info("unmapped the memory mapped file")
	}

	return nil
}

// MustStop is a stop that panics
func (f *File) MustStop() {
	if err := f.Stop(); err != nil {
		panic(err)
	}
}
