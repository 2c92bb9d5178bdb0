// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package spack

import (
	"bytes"
	"io"
	"sync"

	"github.com/pierrec/lz4"
)

// NewBuilder creates a new Builder. Do not fill the Index in the
// header, it is computed from the added entries on write.
func NewBuilder(header Header) *Builder {
	header.Index = nil
	return &Builder{header: header}
}

type pending struct {
	entry      IndexEntry
	compressed []byte
}

// Builder assembles an archive in memory. Archives are versioned and
// cannot be appended to, the Builder is the only way to create one.
// Every added entry is compressed immediately, WriteTo lays out the
// index and the payloads in one pass.
type Builder struct {
	io.WriterTo

	header Header

	mutex   sync.Mutex
	entries []pending
}

// Add compresses data and queues it under the given name. Blocks until
// lz4 finishes. Safe to use concurrently from different goroutines.
func (b *Builder) Add(name string, kind Kind, stage Stage, data []byte) error {
	var buf bytes.Buffer
	writer := lz4.NewWriter(&buf)
	if _, err := writer.Write(data); err != nil {
		return err
	}
	if err := writer.Close(); err != nil {
		return err
	}

	b.mutex.Lock()
	defer b.mutex.Unlock()
	b.entries = append(b.entries, pending{
		entry: IndexEntry{
			Name:           name,
			Kind:           kind,
			Stage:          stage,
			Size:           int64(len(data)),
			CompressedSize: int64(buf.Len()),
		},
		compressed: buf.Bytes(),
	})
	return nil
}

// WriteTo bundles everything added so far into a ready to use archive.
// Entry offsets are relative to the end of the header, so the header
// size never feeds back into the offsets it describes.
func (b *Builder) WriteTo(w io.Writer) (int64, error) {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	header := b.header
	var offset int64
	for _, p := range b.entries {
		e := p.entry
		e.Offset = offset
		offset += e.CompressedSize
		header.Index = append(header.Index, e)
	}

	rawHeader, err := gobEncode(header)
	if err != nil {
		return 0, err
	}

	var written int64
	for _, chunk := range [][]byte{magic[:], int64ToBinary(int64(len(rawHeader))), rawHeader} {
		n, err := w.Write(chunk)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	for _, p := range b.entries {
		n, err := w.Write(p.compressed)
		written += int64(n)
		if err != nil {
			return written, err
		}
	}
	return written, nil
}
