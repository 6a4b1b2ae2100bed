package streamzip

// Predict computes the exact total size of the archive NewReader would
// produce for items and opts, without draining any Input. It returns
// (0, false) if any file item's (non-nil Input) Size is unknown (< 0);
// a folder's Size is not consulted. A streamed archive's
// total length can't be known ahead of time unless every member's length
// is declared up front.
//
// Predict mirrors the branch-for-branch ZIP64 logic in record.go and
// reader.go exactly, including the strictly-greater-than overflow
// thresholds in limits.go; the two must stay in lock step, since this is
// the one place the encoder's output length is derived a second time, for
// prediction rather than production.
func Predict(items []Item, opts *Options) (uint64, bool) {
	if opts == nil {
		opts = &Options{}
	}

	var offset uint64
	var fileCount uint64
	var anyZip64 bool
	if opts.Resume != nil {
		offset = opts.Resume.StartingOffset
		fileCount = opts.Resume.PreviousFileCount
		anyZip64 = opts.Resume.ArchiveNeedsZip64
	}

	var cdSize uint64
	if opts.Resume != nil {
		cdSize = uint64(len(opts.Resume.CentralRecord))
	}
	for _, it := range items {
		if it.Input != nil && it.Size < 0 {
			return 0, false
		}

		nameLen := predictNameLen(it)
		size := uint64(0)
		if it.Input != nil {
			size = uint64(it.Size)
		}

		localHeaderOffset := offset
		offset += uint64(fileHeaderLen) + nameLen

		isFile := it.Input != nil
		zip64 := isFile && (overflows32(size) || overflows32(localHeaderOffset))
		if !isFile {
			zip64 = overflows32(localHeaderOffset)
		}

		if isFile {
			offset += size
			if zip64 {
				offset += dataDescriptor64Len
			} else {
				offset += dataDescriptorLen
			}
		}

		extraLen := uint64(0)
		if zip64 {
			extraLen = zip64ExtraLen
			anyZip64 = true
		}
		cdSize += uint64(centralHeaderLen) + nameLen + extraLen
		fileCount++
	}

	cdStart := offset
	offset += cdSize

	if needsArchiveZip64(anyZip64, fileCount, cdSize, cdStart) {
		offset += directory64EndLen + directory64LocLen
	}
	offset += directoryEndLen

	return offset, true
}

func predictNameLen(it Item) uint64 {
	if it.RawName != nil {
		return uint64(len(it.RawName))
	}
	return uint64(len(it.Name))
}
