package streamzip

import (
	"testing"
	"time"
)

func TestMsDosDateTime(t *testing.T) {
	cases := []struct {
		name     string
		t        time.Time
		wantDate uint16
		wantTime uint16
	}{
		{
			name:     "epoch of the DOS date range",
			t:        time.Date(1980, time.January, 1, 0, 0, 0, 0, time.UTC),
			wantDate: 1<<5 | 1,
			wantTime: 0,
		},
		{
			name:     "typical timestamp",
			t:        time.Date(2023, time.March, 15, 14, 30, 46, 0, time.UTC),
			wantDate: uint16((2023-1980)<<9 | 3<<5 | 15),
			wantTime: uint16(14<<11 | 30<<5 | 23),
		},
		{
			name: "sub-second precision is discarded",
			t:    time.Date(2023, time.March, 15, 14, 30, 46, 999_000_000, time.UTC),
			// same as above: truncation, not rounding.
			wantDate: uint16((2023-1980)<<9 | 3<<5 | 15),
			wantTime: uint16(14<<11 | 30<<5 | 23),
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			date, dosTime := msDosDateTime(c.t)
			if date != c.wantDate || dosTime != c.wantTime {
				t.Fatalf("msDosDateTime(%v) = (%#04x, %#04x), want (%#04x, %#04x)",
					c.t, date, dosTime, c.wantDate, c.wantTime)
			}
		})
	}
}

func TestMsDosDateTimeUsesLocalComponents(t *testing.T) {
	// A time.Time carries its own *time.Location; msDosDateTime must read
	// through whatever location the caller attached rather than converting
	// to any particular zone first.
	loc := time.FixedZone("test", 5*60*60)
	utc := time.Date(2024, time.June, 1, 23, 0, 0, 0, time.UTC)
	local := utc.In(loc)

	dateUTC, timeUTC := msDosDateTime(utc)
	dateLocal, timeLocal := msDosDateTime(local)

	if dateUTC == dateLocal && timeUTC == timeLocal {
		t.Fatalf("expected different packed fields for the same instant in different locations")
	}
}
