// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamzip

import "io"

// entryFlags computes the general-purpose bit flag shared by an entry's
// local and central header records: bit 3 (data descriptor follows) is set
// for every file entry (never for folders, which carry no payload or
// descriptor); bit 11 (UTF-8 name) follows entry.utf8Flag; extraFlags is
// OR'd in verbatim on top of both.
func entryFlags(e *entry, buffersAreUTF8 bool, extraFlags uint16) uint16 {
	var flags uint16
	if e.isFile {
		flags |= 0x8
	}
	if e.utf8Flag(buffersAreUTF8) {
		flags |= 0x800
	}
	return flags | extraFlags
}

// localFileHeaderBytes builds the local file header (signature
// 0x04034b50) for e. Sizes and CRC are always zero here; they are carried
// by the trailing data descriptor instead.
func localFileHeaderBytes(e *entry, buffersAreUTF8 bool, extraFlags uint16) []byte {
	buf := make([]byte, fileHeaderLen+len(e.encodedName))
	b := writeBuf(buf)
	date, dosTime := msDosDateTime(e.modDate)
	b.uint32(fileHeaderSignature)
	b.uint16(zipVersion45)
	b.uint16(entryFlags(e, buffersAreUTF8, extraFlags))
	b.uint16(Store)
	b.uint16(dosTime)
	b.uint16(date)
	b.uint32(0) // crc32
	b.uint32(0) // compressed size
	b.uint32(0) // uncompressed size
	b.uint16(uint16(len(e.encodedName)))
	b.uint16(0) // extra length: none in the local header
	copy(b, e.encodedName)
	return buf
}

// dataDescriptorBytes builds the trailing data descriptor (signature
// 0x08074b50) for a file entry that has finished draining. Width is 16 or
// 24 bytes depending on entry.isZip64.
func dataDescriptorBytes(e *entry) []byte {
	if e.isZip64() {
		buf := make([]byte, dataDescriptor64Len)
		b := writeBuf(buf)
		b.uint32(dataDescriptorSignature)
		b.uint32(e.crc)
		b.uint64(e.uncompressedSize)
		b.uint64(e.uncompressedSize)
		return buf
	}
	buf := make([]byte, dataDescriptorLen)
	b := writeBuf(buf)
	b.uint32(dataDescriptorSignature)
	b.uint32(e.crc)
	b.uint32(uint32(e.uncompressedSize))
	b.uint32(uint32(e.uncompressedSize))
	return buf
}

// zip64ExtraBytes builds the ZIP64 extended information extra field (tag
// 0x0001): all three 64 bit values are always written together, even when
// only one of them overflows.
func zip64ExtraBytes(e *entry) []byte {
	buf := make([]byte, zip64ExtraLen)
	b := writeBuf(buf)
	b.uint16(zip64ExtraID)
	b.uint16(24) // payload size: 3x uint64
	b.uint64(e.uncompressedSize)
	b.uint64(e.uncompressedSize)
	b.uint64(e.localHeaderOffset)
	return buf
}

// centralHeaderBytes builds the central directory header (signature
// 0x02014b50) for e.
func centralHeaderBytes(e *entry, buffersAreUTF8 bool, extraFlags uint16) []byte {
	zip64 := e.isZip64()
	var extra []byte
	if zip64 {
		extra = zip64ExtraBytes(e)
	}

	buf := make([]byte, centralHeaderLen+len(e.encodedName)+len(extra))
	b := writeBuf(buf)
	date, dosTime := msDosDateTime(e.modDate)
	b.uint32(centralHeaderSignature)
	b.uint16(creatorUnix<<8 | zipVersion45) // version made by
	b.uint16(zipVersion45)                  // version needed
	b.uint16(entryFlags(e, buffersAreUTF8, extraFlags))
	b.uint16(Store)
	b.uint16(dosTime)
	b.uint16(date)
	b.uint32(e.crc)
	if zip64 {
		b.uint32(uint32max)
		b.uint32(uint32max)
	} else {
		b.uint32(uint32(e.uncompressedSize))
		b.uint32(uint32(e.uncompressedSize))
	}
	b.uint16(uint16(len(e.encodedName)))
	b.uint16(uint16(len(extra)))
	b.uint16(0)                // comment length: always 0 (no per-entry comments)
	b = b[4:]                  // disk number start, internal file attrs: always 0
	b.uint32(e.externalAttrs())
	if e.localHeaderOffset > uint32max {
		b.uint32(uint32max)
	} else {
		b.uint32(uint32(e.localHeaderOffset))
	}
	copy(b, e.encodedName)
	copy(b[len(e.encodedName):], extra)
	return buf
}

// zip64EndAndLocatorBytes builds the ZIP64 end-of-central-directory record
// (0x06064b50) immediately followed by its locator (0x07064b50). cdStart is
// the offset at which the classic central directory bytes begin; zip64End
// is the offset this record will itself occupy (immediately after the
// central directory).
func zip64EndAndLocatorBytes(records, cdSize, cdStart, zip64End uint64) []byte {
	buf := make([]byte, directory64EndLen+directory64LocLen)
	b := writeBuf(buf)
	b.uint32(directory64EndSignature)
	b.uint64(directory64EndLen - 12) // record size, excluding signature and this field
	b.uint16(zipVersion45)           // version made by
	b.uint16(zipVersion45)           // version needed
	b.uint32(0)                      // number of this disk
	b.uint32(0)                      // disk with start of central directory
	b.uint64(records)                // entries on this disk
	b.uint64(records)                // entries total
	b.uint64(cdSize)
	b.uint64(cdStart)

	b.uint32(directory64LocSignature)
	b.uint32(0) // disk with start of the ZIP64 EOCD record
	b.uint64(zip64End)
	b.uint32(1) // total number of disks
	return buf
}

// endOfCentralDirectoryBytes builds the classic end-of-central-directory
// record (0x06054b50), substituting 0xFFFF/0xFFFFFFFF sentinels field by
// field wherever the true value overflows. The archive comment is always
// empty (out of scope for this encoder).
func endOfCentralDirectoryBytes(records, cdSize, cdStart uint64) []byte {
	buf := make([]byte, directoryEndLen)
	b := writeBuf(buf)
	b.uint32(directoryEndSignature)
	b = b[4:] // disk number, disk with start of central directory: always 0

	if countOverflows16(records) {
		b.uint16(uint16max)
		b.uint16(uint16max)
	} else {
		b.uint16(uint16(records))
		b.uint16(uint16(records))
	}
	if overflows32(cdSize) {
		b.uint32(uint32max)
	} else {
		b.uint32(uint32(cdSize))
	}
	if overflows32(cdStart) {
		b.uint32(uint32max)
	} else {
		b.uint32(uint32(cdStart))
	}
	b.uint16(0) // comment length
	return buf
}

// needsArchiveZip64 reports whether the archive-wide ZIP64 records must be
// emitted: any entry individually required ZIP64, or the aggregate counts
// themselves overflow their classic 16/32 bit fields.
func needsArchiveZip64(anyEntryZip64 bool, records, cdSize, cdStart uint64) bool {
	return anyEntryZip64 || countOverflows16(records) || overflows32(cdSize) || overflows32(cdStart)
}

// byteReader is the minimal shape the orchestrator needs from a fully
// materialized record: something it can copy out through io.Reader.Read.
func byteReader(b []byte) io.Reader {
	return &sliceReader{b: b}
}

// sliceReader is a tiny io.Reader over an in-memory record, avoiding a
// bytes.Reader allocation's extra bookkeeping for records that are read
// from exactly once, start to end.
type sliceReader struct {
	b   []byte
	pos int
}

func (s *sliceReader) Read(p []byte) (int, error) {
	if s.pos >= len(s.b) {
		return 0, io.EOF
	}
	n := copy(p, s.b[s.pos:])
	s.pos += n
	return n, nil
}
