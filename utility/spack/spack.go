// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package spack is an lz4 backed archive format for compiled shader
// code and other renderer blobs. The archive itself is not compressed,
// every entry is compressed individually so it can be read straight
// from its offset and decompressed on the fly. The index is decoded
// up front, so readers know where every entry sits before touching it.
// An archive can be read from concurrently.
package spack

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
)

// package errors
var (
	ErrFileFormat   = errors.New("corrupted or not a spack archive")
	ErrNotFound     = errors.New("entry not found in archive")
	ErrSizeMismatch = errors.New("entry size does not match the index")
)

// Sizes relevant to the file header.
const (
	MagicLength      = 4
	HeaderSizeLength = 8
)

var magic = [MagicLength]byte{'S', 'P', 'K', '\x00'}

// Kind tells what an entry holds.
type Kind uint8

// Entry kinds.
const (
	KindBlob Kind = iota
	KindShader
	KindPipelineCache
)

// Stage is the pipeline stage a shader entry targets.
type Stage uint8

// Shader stages.
const (
	StageNone Stage = iota
	StageVertex
	StageFragment
	StageCompute
)

// IndexEntry is info for one entry in the archive index. Offset is
// relative to the end of the header block.
type IndexEntry struct {
	Name           string
	Kind           Kind
	Stage          Stage
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the archive header.
type Header struct {
	Engine  string
	Created int64
	Version int64
	Index   []IndexEntry
}

func gobEncode(data interface{}) ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(data); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func gobDecode(obj interface{}, bts []byte) error {
	return gob.NewDecoder(bytes.NewReader(bts)).Decode(obj)
}

func int64ToBinary(num int64) []byte {
	bts := make([]byte, HeaderSizeLength)
	binary.LittleEndian.PutUint64(bts, uint64(num))
	return bts
}

func binaryToInt64(bts []byte) int64 {
	return int64(binary.LittleEndian.Uint64(bts))
}
