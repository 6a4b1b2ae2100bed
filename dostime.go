// Copyright 2010 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package streamzip

import "time"

// msDosDateTime converts a time.Time to the MS-DOS date and time fields used
// throughout a ZIP archive: the local wall-clock components of t, with
// sub-second precision discarded (resolution is 2s).
//
// See: https://learn.microsoft.com/en-us/windows/win32/api/winbase/nf-winbase-dosdatetimetofiletime
func msDosDateTime(t time.Time) (date uint16, dosTime uint16) {
	date = uint16(t.Day() + int(t.Month())<<5 + (t.Year()-1980)<<9)
	dosTime = uint16(t.Second()/2 + t.Minute()<<5 + t.Hour()<<11)
	return
}
