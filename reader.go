package streamzip

import (
	"context"
	"io"
	"time"
)

// archive-level phases, in the order an archive moves through them: it
// streams entries, then the central directory, then (if needed) the ZIP64
// end records, then the classic end-of-central-directory record.
type archivePhase int

const (
	phaseStreaming archivePhase = iota
	phaseCentralDirectory
	phaseZip64
	phaseEOCD
	phaseDone
)

// per-entry phases, reached in order for every file entry; folders skip
// straight from entryNeedNext to entryReadyForCentral after their header.
type entryPhase int

const (
	entryNeedNext entryPhase = iota
	entryHeaderDone
	entryDataDone
	entryReadyForCentral
)

// Reader is a pull-driven producer of ZIP archive bytes: it does no work
// until Read is called, then advances just enough state to fill the
// caller's buffer and suspends again. At most one item's Input is open at
// a time; entries are requested from items lazily and discarded once their
// central directory record is appended.
//
// Reader is not safe for concurrent use; like io.Reader generally, calls to
// Read must not overlap.
type Reader struct {
	ctx   context.Context
	items ItemSource
	opts  Options
	now   func() time.Time

	pending io.Reader
	archPhase archivePhase
	entPhase  entryPhase
	cur       *entry
	pump      *dataPump

	bytesEmitted      uint64
	fileCount         uint64
	archiveNeedsZip64 bool
	central           []byte
	cdStart           uint64
	cdSize            uint64

	entries []EntryMetadata
	err     error
}

// NewReader creates a Reader that produces a ZIP archive from items. ctx is
// checked at every entry boundary and at every data-pump iteration;
// canceling it fails the stream with a KindAborted error whose Reason is
// context.Cause(ctx). opts may be nil for defaults.
func NewReader(ctx context.Context, items ItemSource, opts *Options) *Reader {
	if opts == nil {
		opts = &Options{}
	}
	r := &Reader{
		ctx:   ctx,
		items: items,
		opts:  *opts,
		now:   time.Now,
	}
	if opts.Resume != nil {
		r.bytesEmitted = opts.Resume.StartingOffset
		r.fileCount = opts.Resume.PreviousFileCount
		r.archiveNeedsZip64 = opts.Resume.ArchiveNeedsZip64
		if len(opts.Resume.CentralRecord) > 0 {
			r.central = append([]byte(nil), opts.Resume.CentralRecord...)
		}
	}
	return r
}

// Read implements io.Reader.
func (r *Reader) Read(p []byte) (int, error) {
	if r.err != nil {
		return 0, r.err
	}
	for {
		if r.pending != nil {
			n, err := r.pending.Read(p)
			if n > 0 {
				return n, nil
			}
			switch err {
			case nil:
				continue
			case io.EOF:
				r.pending = nil
				continue
			default:
				return 0, r.fail(err)
			}
		}

		rd, err := r.produceNext()
		if err == io.EOF {
			r.err = io.EOF
			r.closeCurrentSource()
			return 0, io.EOF
		}
		if err != nil {
			return 0, r.fail(err)
		}
		r.pending = rd
	}
}

// Entries returns the metadata recorded for every entry whose central
// directory record has been appended so far. After Read has returned
// io.EOF it holds every entry, resolved once the stream completes
// normally; if the stream aborted, it returns the entries completed
// before the failure alongside that failure.
func (r *Reader) Entries() ([]EntryMetadata, error) {
	if r.err != nil && r.err != io.EOF {
		return r.entries, r.err
	}
	return r.entries, nil
}

func (r *Reader) fail(err error) error {
	r.err = err
	r.closeCurrentSource()
	if c, ok := r.items.(Canceler); ok {
		c.Cancel(err)
	}
	return err
}

func (r *Reader) closeCurrentSource() {
	if r.cur == nil || r.cur.byteSource == nil {
		return
	}
	if cl, ok := r.cur.byteSource.(io.Closer); ok {
		cl.Close()
	}
}

func (r *Reader) checkAbort() error {
	if err := r.ctx.Err(); err != nil {
		return abortedErr(context.Cause(r.ctx))
	}
	return nil
}

// produceNext computes the next chunk of archive bytes, advancing the
// archive- and entry-level phases as far as it can without itself
// returning any bytes (e.g. across a folder entry, which produces a header
// but no payload or descriptor). It returns io.EOF once the terminal EOCD
// record has been handed out.
func (r *Reader) produceNext() (io.Reader, error) {
	for {
		switch r.archPhase {
		case phaseStreaming:
			rd, err := r.produceStreaming()
			if err != nil {
				return nil, err
			}
			if rd != nil {
				return rd, nil
			}
		case phaseCentralDirectory:
			return r.produceCentralDirectory(), nil
		case phaseZip64:
			return r.produceZip64(), nil
		case phaseEOCD:
			return r.produceEOCD(), nil
		case phaseDone:
			return nil, io.EOF
		default:
			panic("streamzip: invalid archive phase")
		}
	}
}

func (r *Reader) produceStreaming() (io.Reader, error) {
	switch r.entPhase {
	case entryNeedNext:
		if err := r.checkAbort(); err != nil {
			return nil, err
		}
		item, err := r.items.Next(r.ctx)
		if err == io.EOF {
			r.archPhase = phaseCentralDirectory
			return nil, nil
		}
		if err != nil {
			return nil, iteratorFailureErr(err)
		}

		ent, err := normalizeItem(item, r.now())
		if err != nil {
			return nil, err
		}
		ent.localHeaderOffset = r.bytesEmitted
		r.cur = ent

		header := localFileHeaderBytes(ent, r.opts.BuffersAreUTF8, r.opts.ExtraFlags)
		r.bytesEmitted += uint64(len(header))
		if ent.isFile {
			r.entPhase = entryHeaderDone
		} else {
			r.entPhase = entryReadyForCentral
		}
		return byteReader(header), nil

	case entryHeaderDone:
		if err := r.checkAbort(); err != nil {
			return nil, err
		}
		r.pump = newDataPump(r.ctx, r.cur.byteSource, 0, r.cur.declaredSize)
		r.entPhase = entryDataDone
		return r.pumpReader(), nil

	case entryDataDone:
		r.cur.uncompressedSize = r.pump.finalSize()
		r.cur.crc = r.pump.finalCRC()
		r.cur.drained = true
		r.pump = nil

		desc := dataDescriptorBytes(r.cur)
		r.bytesEmitted += uint64(len(desc))
		r.entPhase = entryReadyForCentral
		return byteReader(desc), nil

	case entryReadyForCentral:
		r.appendCentralRecord()
		r.entPhase = entryNeedNext
		return nil, nil

	default:
		panic("streamzip: invalid entry phase")
	}
}

// pumpReader wraps the current pump so its bytes flow through the normal
// "pending" path; tracking bytesEmitted here (rather than inside the pump)
// keeps the pump itself ignorant of archive-wide bookkeeping.
func (r *Reader) pumpReader() io.Reader {
	return countingReader{p: r.pump, r: r}
}

type countingReader struct {
	p *dataPump
	r *Reader
}

func (c countingReader) Read(p []byte) (int, error) {
	n, err := c.p.Read(p)
	c.r.bytesEmitted += uint64(n)
	return n, err
}

func (r *Reader) appendCentralRecord() {
	rec := centralHeaderBytes(r.cur, r.opts.BuffersAreUTF8, r.opts.ExtraFlags)
	r.central = append(r.central, rec...)
	r.fileCount++
	if r.cur.isZip64() {
		r.archiveNeedsZip64 = true
	}

	flags := entryFlags(r.cur, r.opts.BuffersAreUTF8, r.opts.ExtraFlags)
	meta := entryMetadata(r.cur, flags)
	r.entries = append(r.entries, meta)

	if r.opts.OnEntry != nil {
		r.opts.OnEntry(meta)
	}
	if r.opts.OnCentralRecordUpdate != nil {
		snapshot := make([]byte, len(r.central))
		copy(snapshot, r.central)
		r.opts.OnCentralRecordUpdate(snapshot)
	}
	r.cur = nil
}

func (r *Reader) produceCentralDirectory() io.Reader {
	r.cdStart = r.bytesEmitted
	r.cdSize = uint64(len(r.central))
	r.bytesEmitted += r.cdSize
	if needsArchiveZip64(r.archiveNeedsZip64, r.fileCount, r.cdSize, r.cdStart) {
		r.archPhase = phaseZip64
	} else {
		r.archPhase = phaseEOCD
	}
	return byteReader(r.central)
}

func (r *Reader) produceZip64() io.Reader {
	zip64Start := r.bytesEmitted
	buf := zip64EndAndLocatorBytes(r.fileCount, r.cdSize, r.cdStart, zip64Start)
	r.bytesEmitted += uint64(len(buf))
	r.archPhase = phaseEOCD
	return byteReader(buf)
}

func (r *Reader) produceEOCD() io.Reader {
	buf := endOfCentralDirectoryBytes(r.fileCount, r.cdSize, r.cdStart)
	r.archPhase = phaseDone
	return byteReader(buf)
}
