// Package fileinput acquires Incident program source, either from a named
// file or from a standard input stream.
package fileinput

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/edsrzf/mmap-go"
)

// StdinName is the program name that selects the stdin stream.
const StdinName = "-"

// Source is the acquired bytes of a program; Close releases them.
type Source struct {
	Name string

	data []byte
	mm   mmap.MMap
	file *os.File
}

// Bytes returns the program bytes; they remain valid until Close.
func (src *Source) Bytes() []byte { return src.data }

// Close releases any file mapping or handle held by the source.
func (src *Source) Close() (err error) {
	if src.mm != nil {
		err = src.mm.Unmap()
		src.mm = nil
	}
	if src.file != nil {
		if cerr := src.file.Close(); err == nil {
			err = cerr
		}
		src.file = nil
	}
	src.data = nil
	return err
}

// Error reports a program source that could not be acquired.
type Error struct {
	Name string
	Err  error
}

func (err Error) Error() string { return fmt.Sprintf("cannot read program %v: %v", err.Name, err.Err) }
func (err Error) Unwrap() error { return err.Err }

// IsError returns true if err was caused by source acquisition.
func IsError(err error) bool {
	var fe Error
	return errors.As(err, &fe)
}

// Open acquires the named program. Regular non-empty files are mapped read
// only; any other file, or the StdinName stream read from stdin, is read in
// full.
func Open(name string, stdin io.Reader) (*Source, error) {
	if name == "" || name == StdinName {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, Error{nameOf(stdin), err}
		}
		return &Source{Name: nameOf(stdin), data: data}, nil
	}

	f, err := os.Open(name)
	if err != nil {
		return nil, Error{name, err}
	}
	src := &Source{Name: name, file: f}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, Error{name, err}
	}
	if info.Mode().IsRegular() && info.Size() > 0 {
		if mm, err := mmap.Map(f, mmap.RDONLY, 0); err == nil {
			src.mm, src.data = mm, mm
			return src, nil
		}
	}

	// pipes, devices, empty files, and anything mmap refused
	data, err := io.ReadAll(f)
	if err != nil {
		f.Close()
		return nil, Error{name, err}
	}
	src.data = data
	return src, nil
}

func nameOf(obj interface{}) string {
	if nom, ok := obj.(interface{ Name() string }); ok {
		return nom.Name()
	}
	return "<stdin>"
}
