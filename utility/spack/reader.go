// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spack

import (
	"bytes"
	"io"
	"unsafe"

	"github.com/pierrec/lz4"
)

// Open opens the archive from r. It checks the magic up front and
// decodes the whole index, reads of individual entries come later.
func Open(r io.ReaderAt) (*Archive, error) {
	head := make([]byte, MagicLength+HeaderSizeLength)
	if num, err := r.ReadAt(head, 0); err != nil {
		return nil, err
	} else if num < len(head) || !bytes.Equal(head[:MagicLength], magic[:]) {
		return nil, ErrFileFormat
	}

	headerSize := binaryToInt64(head[MagicLength:])
	if headerSize <= 0 {
		return nil, ErrFileFormat
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, int64(len(head))); err != nil {
		return nil, err
	} else if int64(num) < headerSize {
		return nil, ErrFileFormat
	}

	var header Header
	if err := gobDecode(&header, headerBytes); err != nil {
		return nil, ErrFileFormat
	}

	return &Archive{
		reader: r,
		header: header,
		base:   int64(len(head)) + headerSize,
	}, nil
}

// Archive provides concurrent reads of a spack file, one decompressing
// Reader per entry.
type Archive struct {
	reader io.ReaderAt
	header Header
	base   int64
}

// Index returns a copy of the archive index.
func (a *Archive) Index() []IndexEntry {
	out := make([]IndexEntry, len(a.header.Index))
	copy(out, a.header.Index)
	return out
}

func (a *Archive) entry(name string) (IndexEntry, bool) {
	for _, e := range a.header.Index {
		if e.Name == name {
			return e, true
		}
	}
	return IndexEntry{}, false
}

// ReadAll returns the decompressed contents of the named entry.
func (a *Archive) ReadAll(name string) ([]byte, error) {
	reader, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != reader.Entry.Size {
		return nil, ErrSizeMismatch
	}
	return data, nil
}

// Open returns a Reader decompressing the named entry.
func (a *Archive) Open(name string) (*Reader, error) {
	e, ok := a.entry(name)
	if !ok {
		return nil, ErrNotFound
	}
	section := io.NewSectionReader(a.reader, a.base+e.Offset, e.CompressedSize)
	return &Reader{
		Entry: e,
		inner: lz4.NewReader(section),
	}, nil
}

// Words returns the named shader entry as the 32-bit words the shader
// module creation path expects.
func (a *Archive) Words(name string) ([]uint32, error) {
	data, err := a.ReadAll(name)
	if err != nil {
		return nil, err
	}
	if len(data)%4 != 0 {
		return nil, ErrSizeMismatch
	}
	if len(data) == 0 {
		return nil, nil
	}
	return unsafe.Slice((*uint32)(unsafe.Pointer(&data[0])), len(data)/4), nil
}

// Reader streams one decompressed entry out of an Archive.
type Reader struct {
	Entry IndexEntry

	inner io.Reader
}

// Read reads already decompressed data.
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.inner.Read(p)
}
