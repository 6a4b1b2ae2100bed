package streamzip

import (
	"context"
	"fmt"
	"io"
)

// dataPump drains an entry's byte source, accumulating a running CRC-32 and
// byte count as it goes.
//
// With no shaping configured (firstPartSize == 0), Read passes the source's
// own chunks through unchanged. With firstPartSize set, dataPump buffers
// internally and serves whole parts of exactly that size, concatenated from
// the source as needed, until the remainder falls below a full part; that
// remainder becomes the final part. If lastPartSize is also set (>= 0),
// the final part's length is checked against it once the source reaches
// EOF: drained total must equal firstPartSize*K + lastPartSize for some
// K >= 0, or Read fails with a MalformedInput "Invalid lastPartSize" error.
//
// When firstPartSize == 0 and lastPartSize >= 0, the formula degenerates to
// "drained total must equal lastPartSize exactly" — how the orchestrator
// uses this type to validate an entry's declared size against what was
// actually drained.
type dataPump struct {
	ctx context.Context
	src io.Reader

	firstPartSize int64
	lastPartSize  int64 // -1 disables the check

	buf    []byte // staging buffer, sized firstPartSize, used only when shaping
	held   []byte // bytes read but not yet handed to the caller (slice into buf)
	srcEOF bool

	lastChunk int64 // length of the most recent part completed (shaped mode)

	size uint64
	crc  uint32
	err  error
}

func newDataPump(ctx context.Context, src io.Reader, firstPartSize, lastPartSize int64) *dataPump {
	p := &dataPump{ctx: ctx, src: src, firstPartSize: firstPartSize, lastPartSize: lastPartSize}
	if firstPartSize > 0 {
		p.buf = make([]byte, firstPartSize)
	}
	return p
}

// Read implements io.Reader. It returns io.EOF once the source and any
// buffered remainder are exhausted; finalSize() and finalCRC() are valid only after
// that EOF has been observed.
func (p *dataPump) Read(out []byte) (int, error) {
	if p.err != nil {
		return 0, p.err
	}
	if ctxErr := p.ctx.Err(); ctxErr != nil {
		p.err = abortedErr(context.Cause(p.ctx))
		return 0, p.err
	}
	var n int
	var err error
	if p.firstPartSize <= 0 {
		n, err = p.readUnshaped(out)
	} else {
		n, err = p.readShaped(out)
	}
	if err == io.EOF {
		if verr := p.validateTotal(); verr != nil {
			p.err = verr
			return n, p.err
		}
	}
	return n, err
}

func (p *dataPump) readUnshaped(out []byte) (int, error) {
	n, err := readContext(p.ctx, p.src, out)
	if n > 0 {
		p.crc = crcUpdate(p.crc, out[:n])
		p.size += uint64(n)
	}
	switch {
	case err == io.EOF:
		p.srcEOF = true
		return n, io.EOF
	case err != nil:
		p.err = sourceFailureErr(err)
		return n, p.err
	}
	return n, nil
}

func (p *dataPump) readShaped(out []byte) (int, error) {
	for len(p.held) == 0 && !p.srcEOF {
		filled := 0
		for filled < len(p.buf) && !p.srcEOF {
			n, err := readContext(p.ctx, p.src, p.buf[filled:])
			if n > 0 {
				p.crc = crcUpdate(p.crc, p.buf[filled:filled+n])
				p.size += uint64(n)
				filled += n
			}
			if err == io.EOF {
				p.srcEOF = true
			} else if err != nil {
				p.err = sourceFailureErr(err)
				return 0, p.err
			}
		}
		p.held = p.buf[:filled]
		p.lastChunk = int64(filled)
	}
	if len(p.held) == 0 {
		return 0, io.EOF
	}
	n := copy(out, p.held)
	p.held = p.held[n:]
	return n, nil
}

func (p *dataPump) validateTotal() error {
	if p.lastPartSize < 0 {
		return nil
	}
	if p.firstPartSize <= 0 {
		if int64(p.size) != p.lastPartSize {
			return malformedInputErr(fmt.Errorf("invalid lastPartSize: drained %d bytes, want %d", p.size, p.lastPartSize))
		}
		return nil
	}
	total := int64(p.size)
	if total < p.lastPartSize || (total-p.lastPartSize)%p.firstPartSize != 0 {
		return malformedInputErr(fmt.Errorf("invalid lastPartSize: drained %d bytes is not firstPartSize*K + %d", p.size, p.lastPartSize))
	}
	return nil
}

func (p *dataPump) finalSize() uint64 { return p.size }
func (p *dataPump) finalCRC() uint32  { return p.crc }
