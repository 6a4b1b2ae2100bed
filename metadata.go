package streamzip

// EntryMetadata describes one archive member after its central directory
// record has been assembled, delivered to Options.OnEntry and accumulated
// for Reader.Entries.
type EntryMetadata struct {
	Filename           string
	Offset             uint64
	DataOffset         uint64
	CompressedSize     uint64
	UncompressedSize   uint64
	CRC32              uint32
	CompressionMethod  uint16 // always Store (0): the core emits STORE only
	Flags              uint16
	HeaderSize         uint16
}

func entryMetadata(e *entry, flags uint16) EntryMetadata {
	headerSize := uint16(fileHeaderLen + len(e.encodedName))
	return EntryMetadata{
		Filename:          string(e.encodedName),
		Offset:            e.localHeaderOffset,
		DataOffset:        e.localHeaderOffset + uint64(headerSize),
		CompressedSize:    e.uncompressedSize,
		UncompressedSize:  e.uncompressedSize,
		CRC32:             e.crc,
		CompressionMethod: Store,
		Flags:             flags,
		HeaderSize:        headerSize,
	}
}
