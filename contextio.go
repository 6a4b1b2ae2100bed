package streamzip

import (
	"context"
	"io"
)

// ContextReader is like io.Reader, but also takes a context, mirroring the
// ReaderAt/context split used for random-access sources, adapted here to
// the forward-only, pull-driven reads this package performs on an entry's
// byte source.
type ContextReader interface {
	// ReadContext has the same semantics as io.Reader.Read, but takes a
	// context that the source may use to abort a blocked read early.
	ReadContext(ctx context.Context, p []byte) (n int, err error)
}

// readContext reads from r, using r's ReadContext method if it implements
// ContextReader, and falling back to plain io.Reader.Read (ignoring ctx)
// otherwise.
func readContext(ctx context.Context, r io.Reader, p []byte) (int, error) {
	if cr, ok := r.(ContextReader); ok {
		return cr.ReadContext(ctx, p)
	}
	return r.Read(p)
}
