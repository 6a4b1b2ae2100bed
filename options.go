package streamzip

// Options controls how NewReader builds an archive. The zero value is
// valid: no UTF-8 override, no callbacks, no resume, no extra flag bits.
type Options struct {
	// BuffersAreUTF8, when true, tags raw-byte names (Item.RawName) as
	// UTF-8 in the general-purpose flag, the same way they would be if
	// supplied as a Go string in Item.Name.
	BuffersAreUTF8 bool

	// ExtraFlags is OR'd into every entry's general-purpose bit flag, on
	// top of the bits this package sets itself (bit 3, and bit 11 for
	// UTF-8 names).
	ExtraFlags uint16

	// OnEntry, if set, is called once per entry immediately after its
	// central directory record has been assembled and before the next
	// entry's local header is emitted.
	OnEntry func(EntryMetadata)

	// OnCentralRecordUpdate, if set, is called in the same interval as
	// OnEntry, with a defensively-copied snapshot of the central directory
	// bytes accumulated so far (including the entry OnEntry was just
	// called for). A caller pausing the archive persists the most recent
	// snapshot it saw, alongside the counters it wants to resume from.
	OnCentralRecordUpdate func(snapshot []byte)

	// Resume continues a previously paused archive. Nil starts a fresh
	// one.
	Resume *Resume
}

// Resume seeds a new Reader to continue an archive that was paused after a
// complete entry. Items passed to NewReader alongside a Resume must be
// exactly the items that had not yet been produced when the archive was
// paused; the resumed Reader never re-emits prior local headers or
// payloads.
type Resume struct {
	// CentralRecord is the central-directory snapshot observed from the
	// last OnCentralRecordUpdate call before pausing (the bytes for every
	// entry completed so far).
	CentralRecord []byte

	// PreviousFileCount is the number of entries already completed.
	PreviousFileCount uint64

	// StartingOffset is the number of archive bytes already produced.
	StartingOffset uint64

	// ArchiveNeedsZip64 carries forward whether any already-completed
	// entry required ZIP64, so the resumed Reader's finalization decision
	// accounts for it even though those entries aren't revisited.
	ArchiveNeedsZip64 bool
}
