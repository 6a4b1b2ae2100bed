package streamzip

import (
	"context"
	"io"
	"strings"
	"testing"
)

func actualSize(t *testing.T, items []Item, opts *Options) int64 {
	t.Helper()
	r := NewReader(context.Background(), Items(items), opts)
	n, err := io.Copy(io.Discard, r)
	if err != nil {
		t.Fatalf("draining reader: %v", err)
	}
	return n
}

func TestPredictMatchesActualSize(t *testing.T) {
	cases := []struct {
		name  string
		items []Item
	}{
		{"empty archive", nil},
		{"single small file", []Item{
			{Name: "a.txt", Input: strings.NewReader("hello"), Size: 5},
		}},
		{"file and folder", []Item{
			{Name: "dir/"},
			{Name: "dir/a.txt", Input: strings.NewReader("hello"), Size: 5},
			{Name: "dir/b.txt", Input: strings.NewReader("world!!"), Size: 7},
		}},
		{"many small files", func() []Item {
			var items []Item
			for i := 0; i < 50; i++ {
				items = append(items, Item{Name: "f", Input: strings.NewReader("x"), Size: 1})
			}
			return items
		}()},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			predicted, ok := Predict(c.items, nil)
			if !ok {
				t.Fatal("Predict reported unknown size for fully-declared items")
			}
			got := actualSize(t, c.items, nil)
			if predicted != uint64(got) {
				t.Fatalf("Predict = %d, actual = %d", predicted, got)
			}
		})
	}
}

func TestPredictUnknownSize(t *testing.T) {
	items := []Item{
		{Name: "a.txt", Input: strings.NewReader("hello"), Size: -1},
	}
	_, ok := Predict(items, nil)
	if ok {
		t.Fatal("Predict should report unknown size when an item's Size is -1")
	}
}

func TestPredictWithResumeOffset(t *testing.T) {
	resume := &Resume{StartingOffset: 1000, PreviousFileCount: 2}
	items := []Item{
		{Name: "c.txt", Input: strings.NewReader("tail"), Size: 4},
	}
	withoutResume, _ := Predict(items, nil)
	withResume, ok := Predict(items, &Options{Resume: resume})
	if !ok {
		t.Fatal("Predict reported unknown size unexpectedly")
	}
	if withResume != withoutResume+1000 {
		t.Fatalf("Predict with resume = %d, want %d (unresumed total + starting offset)", withResume, withoutResume+1000)
	}
}
