// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import "testing"

func TestFormatAbsentIsEmpty(t *testing.T) {
	if got := Format(0, false, Number, 0, "", false); got != "" {
		t.Fatalf("absent value should format empty, got %q", got)
	}
}

func TestFormatNumberPrecision(t *testing.T) {
	cases := []struct {
		precision int32
		want      string
	}{
		{0, "12346"},
		{1, "12345.7"},
		{2, "12345.68"},
	}
	for _, c := range cases {
		if got := Format(12345.6789, true, Number, c.precision, "", false); got != c.want {
			t.Fatalf("precision %d: got %q, want %q", c.precision, got, c.want)
		}
	}
}

func TestFormatNumberWithUnit(t *testing.T) {
	if got, want := Format(42, true, Number, 0, " Wh", true), "42 Wh"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatTime(t *testing.T) {
	if got, want := Format(721.0, true, Time, 0, "", false), "12:01"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatWeekTime(t *testing.T) {
	if got, want := Format(3*1440+721.0, true, WeekTime, 0, "", false), "Thu,12:01"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}

func TestFormatDateTime(t *testing.T) {
	if got, want := Format(409418262.0, true, DateTime, 0, "", false), "2013-12-22 15:17:42"; got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
