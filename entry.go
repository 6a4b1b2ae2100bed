// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamzip

import (
	"errors"
	"io"
	"time"
	"unicode/utf8"
)

var (
	errLongName    = errors.New("zip: name too long")
	errDirWithSize = errors.New("zip: folder entry has a declared size")
)

const (
	defaultFileMode = 0o664
	defaultDirMode  = 0o775

	// Unix mode bits embedded in the external file attributes' high 16
	// bits. The ZIP spec doesn't define these, but every tool agrees on
	// them (see the archive/zip family's struct.go for the same table).
	unixIFDIR = 0o40000
	unixIFREG = 0o100000
)

// entry is the normalized, orchestrator-private view of one archive member.
// It is created lazily from an Item and discarded once its central-directory
// record has been appended.
type entry struct {
	encodedName  []byte
	nameIsBuffer bool // name came from Item.RawName; suppresses the UTF-8 flag
	utf8Required bool // name (from Item.Name) contains bytes CP-437/ASCII can't carry
	isFile       bool
	modDate      time.Time
	mode         uint32 // POSIX permission + type bits
	byteSource   io.Reader
	declaredSize int64 // -1 if unknown

	// Filled in once byteSource has been fully drained.
	drained           bool
	uncompressedSize  uint64
	crc               uint32
	localHeaderOffset uint64
}

// detectUTF8 reports whether s is valid UTF-8, and whether it must be
// treated as UTF-8 rather than ASCII/CP-437/some other common
// single-byte encoding. Officially ZIP names use CP-437, but most readers
// fall back to the local encoding; those are ASCII-compatible for the
// printable range, so plain ASCII names never need the UTF-8 flag. 0x7e
// and 0x5c are excluded from that range because EUC-KR and Shift-JIS
// remap them to localized currency and overline characters.
func detectUTF8(s string) (valid, required bool) {
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		i += size
		if r < 0x20 || r > 0x7d || r == 0x5c {
			if !utf8.ValidRune(r) || (r == utf8.RuneError && size == 1) {
				return false, false
			}
			required = true
		}
	}
	return true, required
}

// utf8Flag reports whether the general-purpose bit 11 (UTF-8 name) should
// be set for this entry: a text name sets it only when it actually
// contains bytes outside the portable ASCII-like range; a raw byte name
// only does when the caller opted every buffer into UTF-8.
func (e *entry) utf8Flag(buffersAreUTF8 bool) bool {
	if e.nameIsBuffer {
		return buffersAreUTF8
	}
	return e.utf8Required
}

// externalAttrs packs mode into the high 16 bits of the external file
// attributes field, OR'd with the MS-DOS directory bit low tools still
// check.
func (e *entry) externalAttrs() uint32 {
	attrs := e.mode << 16
	if !e.isFile {
		attrs |= 0x10
	}
	return attrs
}

// normalizeItem produces an entry from a caller-supplied Item, applying
// this package's defaults and encoding rules. now is used only when
// it.Modified is the zero time.
func normalizeItem(it Item, now time.Time) (*entry, error) {
	e := &entry{
		isFile:       it.Input != nil,
		byteSource:   it.Input,
		declaredSize: -1,
	}

	if it.RawName != nil {
		e.nameIsBuffer = true
		e.encodedName = it.RawName
	} else {
		_, e.utf8Required = detectUTF8(it.Name)
		e.encodedName = []byte(it.Name)
	}
	if len(e.encodedName) > uint16max {
		return nil, malformedInputErr(errLongName)
	}

	e.modDate = it.Modified
	if e.modDate.IsZero() {
		e.modDate = now
	}

	if it.Mode != 0 {
		e.mode = it.Mode & 0o7777
	} else if e.isFile {
		e.mode = defaultFileMode
	} else {
		e.mode = defaultDirMode
	}
	if e.isFile {
		e.mode |= unixIFREG
	} else {
		e.mode |= unixIFDIR
	}

	if it.Size >= 0 {
		e.declaredSize = it.Size
	}
	if !e.isFile && it.Size > 0 {
		return nil, malformedInputErr(errDirWithSize)
	}

	return e, nil
}

// isZip64 reports whether this entry needs ZIP64: its true size or local
// header offset does not fit the classic 32 bit fields. This single boolean
// governs both the data descriptor's field width and whether the central
// directory record carries sentinels plus a ZIP64 extra; predictor.go must
// derive the identical boolean from declared sizes.
func (e *entry) isZip64() bool {
	return overflows32(e.uncompressedSize) || overflows32(e.crc64Size()) || overflows32(e.localHeaderOffset)
}

// crc64Size returns the compressed size, which for STORE always equals the
// uncompressed size.
func (e *entry) crc64Size() uint64 {
	return e.uncompressedSize
}
