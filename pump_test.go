package streamzip

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"
)

func drainPump(t *testing.T, p *dataPump) ([]byte, error) {
	t.Helper()
	var out bytes.Buffer
	buf := make([]byte, 7) // deliberately not a multiple of most part sizes below
	for {
		n, err := p.Read(buf)
		out.Write(buf[:n])
		if err == io.EOF {
			return out.Bytes(), nil
		}
		if err != nil {
			return out.Bytes(), err
		}
	}
}

func TestDataPumpUnshapedPassthrough(t *testing.T) {
	src := bytes.NewReader([]byte("hello, streaming zip world"))
	p := newDataPump(context.Background(), src, 0, -1)

	got, err := drainPump(t, p)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if string(got) != "hello, streaming zip world" {
		t.Fatalf("got %q", got)
	}
	if p.finalSize() != uint64(len(got)) {
		t.Fatalf("finalSize() = %d, want %d", p.finalSize(), len(got))
	}
	if want := crcUpdate(0, got); p.finalCRC() != want {
		t.Fatalf("finalCRC() = %#x, want %#x", p.finalCRC(), want)
	}
}

func TestDataPumpDeclaredSizeMatches(t *testing.T) {
	data := []byte("exact-size-payload")
	p := newDataPump(context.Background(), bytes.NewReader(data), 0, int64(len(data)))
	if _, err := drainPump(t, p); err != nil {
		t.Fatalf("drain: %v", err)
	}
}

func TestDataPumpDeclaredSizeMismatch(t *testing.T) {
	data := []byte("this is not ten bytes")
	p := newDataPump(context.Background(), bytes.NewReader(data), 0, 10)
	_, err := drainPump(t, p)
	var zerr *Error
	if !errors.As(err, &zerr) || zerr.Kind != KindMalformedInput {
		t.Fatalf("err = %v, want a KindMalformedInput *Error", err)
	}
}

func TestDataPumpShapedExactMultiple(t *testing.T) {
	data := []byte("0123456789") // 10 bytes, two parts of 5 with lastPartSize 0
	p := newDataPump(context.Background(), bytes.NewReader(data), 5, 0)
	got, err := drainPump(t, p)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestDataPumpShapedWithRemainder(t *testing.T) {
	data := []byte("0123456789ab") // 12 bytes: one part of 5, remainder 2
	p := newDataPump(context.Background(), bytes.NewReader(data), 5, 2)
	got, err := drainPump(t, p)
	if err != nil {
		t.Fatalf("drain: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("got %q, want %q", got, data)
	}
}

func TestDataPumpShapedWrongRemainder(t *testing.T) {
	data := []byte("0123456789ab") // remainder is 2, not 3
	p := newDataPump(context.Background(), bytes.NewReader(data), 5, 3)
	_, err := drainPump(t, p)
	var zerr *Error
	if !errors.As(err, &zerr) || zerr.Kind != KindMalformedInput {
		t.Fatalf("err = %v, want a KindMalformedInput *Error", err)
	}
}

type errReader struct{ err error }

func (r errReader) Read(p []byte) (int, error) { return 0, r.err }

func TestDataPumpSourceFailure(t *testing.T) {
	boom := errors.New("disk on fire")
	p := newDataPump(context.Background(), errReader{boom}, 0, -1)
	_, err := drainPump(t, p)
	var zerr *Error
	if !errors.As(err, &zerr) || zerr.Kind != KindSourceFailure {
		t.Fatalf("err = %v, want a KindSourceFailure *Error", err)
	}
	if !errors.Is(err, boom) {
		t.Fatalf("err does not wrap the underlying source error")
	}
}

func TestDataPumpAbortedContext(t *testing.T) {
	ctx, cancel := context.WithCancelCause(context.Background())
	reason := errors.New("client disconnected")
	cancel(reason)

	p := newDataPump(ctx, bytes.NewReader([]byte("data")), 0, -1)
	_, err := p.Read(make([]byte, 4))
	var zerr *Error
	if !errors.As(err, &zerr) || zerr.Kind != KindAborted {
		t.Fatalf("err = %v, want a KindAborted *Error", err)
	}
	if !errors.Is(err, reason) {
		t.Fatalf("aborted error does not carry context.Cause as its Reason")
	}
}
