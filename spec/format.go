// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package spec

import (
	"fmt"
	"math"
	"time"
)

// weekTimeEpochOffset places day-0 on a Monday: it is added to a WeekTime
// value's seconds, so day-0 is Monday 1970-01-05, 4 days (4*86400s) after the
// Unix epoch (a Thursday).
const weekTimeEpochOffset = 4 * 86400

// dateTimeEpochOffset is 2001-01-01 00:00:00 UTC expressed in Unix seconds.
const dateTimeEpochOffset = 978307200

// Format renders value according to typ and precision, following §4.7. An
// absent value (ok=false) always renders as the empty string. withUnit
// appends unitText only for Type Number.
func Format(value float64, ok bool, typ Type, precision int32, unitText string, withUnit bool) string {
	if !ok {
		return ""
	}

	switch typ {
	case Number:
		p := int(precision)
		if p < 0 {
			p = 0
		}
		s := fmt.Sprintf("%.*f", p, value)
		if withUnit {
			s += unitText
		}
		return s

	case Time:
		minutes := int64(math.Round(value))
		hours := minutes / 60
		mins := minutes % 60
		if mins < 0 {
			mins += 60
		}
		return fmt.Sprintf("%02d:%02d", hours, mins)

	case WeekTime:
		minutes := int64(math.Round(value))
		t := time.Unix(minutes*60+weekTimeEpochOffset, 0).UTC()
		return t.Format("Mon,15:04")

	case DateTime:
		seconds := int64(math.Round(value))
		t := time.Unix(seconds+dateTimeEpochOffset, 0).UTC()
		return t.Format("2006-01-02 15:04:05")

	default:
		return ""
	}
}
