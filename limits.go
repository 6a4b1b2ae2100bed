// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamzip

// Store is the only compression method this encoder emits. Exported so
// EntryMetadata.CompressionMethod is self-explanatory to callers.
const Store uint16 = 0

const (
	fileHeaderSignature     = 0x04034b50
	centralHeaderSignature  = 0x02014b50
	directoryEndSignature   = 0x06054b50
	directory64LocSignature = 0x07064b50
	directory64EndSignature = 0x06064b50
	dataDescriptorSignature = 0x08074b50 // de-facto standard; required by OS X Finder

	fileHeaderLen      = 30 // + name
	centralHeaderLen   = 46 // + name + extra
	directoryEndLen    = 22 // + comment (always empty here)
	dataDescriptorLen  = 16 // signature, crc32, compressed size, uncompressed size (uint32 each)
	dataDescriptor64Len = 24 // descriptor with 8 byte sizes
	directory64LocLen  = 20
	directory64EndLen  = 56
	zip64ExtraLen      = 28 // tag(2) + size(2) + 3x uint64, always written together

	zip64ExtraID = 0x0001

	// Version numbers. 4.5 is always used since ZIP64 may be required for
	// any entry and there is no benefit to a lower version for the ones
	// that don't need it.
	zipVersion45 = 45

	creatorUnix = 3

	uint16max = (1 << 16) - 1
	uint32max = (1 << 32) - 1
)

// countOverflows16 reports whether v cannot be represented in the 16 bit
// field it would otherwise occupy (entry/record counts), requiring a 0xFFFF
// sentinel and the true value elsewhere. The boundary is strictly
// greater-than: 65535 entries fit; 65536 do not.
func countOverflows16(v uint64) bool {
	return v > uint16max
}

// overflows32 reports whether v cannot be represented in the 32 bit field it
// would otherwise occupy (sizes and offsets), requiring a 0xFFFFFFFF
// sentinel and the true 64 bit value in a ZIP64 extra field. The boundary is
// strictly greater-than: 2^32-1 bytes fit; 2^32 bytes do not.
func overflows32(v uint64) bool {
	return v > uint32max
}
