// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package vbus

import (
	"sort"
	"time"
)

// DataSet is a time-stamped, deduplicating, orderable collection of the most
// recent Data per logical identity (§4.2). Timestamp is a high-water mark of
// ingress: it only ever advances from Insert/Merge and is never lowered by
// RemoveOlderThan, even when that call empties the set.
type DataSet struct {
	timestamp time.Time
	members   []Data
}

// NewDataSet returns an empty DataSet.
func NewDataSet() *DataSet {
	return &DataSet{}
}

// Timestamp returns the high-water mark of ingress timestamps.
func (ds *DataSet) Timestamp() time.Time {
	return ds.timestamp
}

// AsSlice returns the ordered members. Callers must not mutate the returned
// slice's elements' identity-bearing fields while holding it.
func (ds *DataSet) AsSlice() []Data {
	return ds.members
}

// Len returns the number of members currently held.
func (ds *DataSet) Len() int {
	return len(ds.members)
}

// Insert finds the unique existing member logically equal to data (§4.2);
// if found, it is overwritten in place, otherwise data is appended. The
// set's Timestamp is then advanced to the max of itself and data's header
// timestamp.
func (ds *DataSet) Insert(data Data) {
	for i, existing := range ds.members {
		if Equal(existing, data) {
			ds.members[i] = data
			ds.bumpTimestamp(data.GetHeader().Timestamp)
			return
		}
	}
	ds.members = append(ds.members, data)
	ds.bumpTimestamp(data.GetHeader().Timestamp)
}

// Merge inserts each member of other in its existing order, then advances
// Timestamp to the max of itself and other's Timestamp. Order of non-equal
// inserts is preserved from other.
func (ds *DataSet) Merge(other *DataSet) {
	for _, data := range other.members {
		ds.Insert(data)
	}
	ds.bumpTimestamp(other.timestamp)
}

// RemoveOlderThan retains exactly those members whose header timestamp is
// not before tMin. The DataSet's own Timestamp is unaffected.
func (ds *DataSet) RemoveOlderThan(tMin time.Time) {
	kept := ds.members[:0]
	for _, data := range ds.members {
		if !data.GetHeader().Timestamp.Before(tMin) {
			kept = append(kept, data)
		}
	}
	ds.members = kept
}

// Sort totally orders members in place by Compare (§4.3). Stability is
// immaterial because the order is total.
func (ds *DataSet) Sort() {
	sort.Slice(ds.members, func(i, j int) bool {
		return Compare(ds.members[i], ds.members[j]) < 0
	})
}

func (ds *DataSet) bumpTimestamp(t time.Time) {
	if t.After(ds.timestamp) {
		ds.timestamp = t
	}
}
