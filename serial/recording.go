// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package serial

import (
	"encoding/binary"
	"io"
	"time"

	"github.com/resol-go/vbus"
)

// Decoder is the Decode boundary (§6) a RecordingReader hands validated
// frame bytes to, to reconstruct a vbus.Data.
type Decoder interface {
	Decode(timestamp time.Time, channel byte, validatedBytes []byte) (vbus.Data, error)
}

// recordHeader is the fixed part of one entry in a recording container. An
// entry is an 8-byte big-endian Unix-nanosecond timestamp, a channel byte,
// and a uint32 big-endian length-prefixed payload.
type recordHeader struct {
	NanosSinceEpoch int64
	Channel         byte
}

// RecordingReader plays back a recording container: a flat sequence of
// (timestamp, channel, length-prefixed bytes) records, as the dropped half
// of this corpus's original live-capture recorder would have written them.
// It groups consecutive records into per-cycle DataSets, closing a cycle
// once a record's timestamp departs from the first record of the current
// cycle by more than gap.
type RecordingReader struct {
	r       io.Reader
	decoder Decoder
	gap     time.Duration

	lookahead *pendingRecord
}

type pendingRecord struct {
	ts      time.Time
	channel byte
	payload []byte
}

// NewRecordingReader returns a RecordingReader over r, decoding frames with
// decoder and grouping records into cycles no wider than gap.
func NewRecordingReader(r io.Reader, decoder Decoder, gap time.Duration) *RecordingReader {
	return &RecordingReader{r: r, decoder: decoder, gap: gap}
}

func (rr *RecordingReader) readOne() (*pendingRecord, error) {
	var hdr recordHeader
	var buf [9]byte
	if _, err := io.ReadFull(rr.r, buf[:]); err != nil {
		return nil, err
	}
	hdr.NanosSinceEpoch = int64(binary.BigEndian.Uint64(buf[0:8]))
	hdr.Channel = buf[8]

	var lenBuf [4]byte
	if _, err := io.ReadFull(rr.r, lenBuf[:]); err != nil {
		return nil, err
	}
	n := binary.BigEndian.Uint32(lenBuf[:])

	payload := make([]byte, n)
	if n > 0 {
		if _, err := io.ReadFull(rr.r, payload); err != nil {
			return nil, err
		}
	}

	return &pendingRecord{
		ts:      time.Unix(0, hdr.NanosSinceEpoch).UTC(),
		channel: hdr.Channel,
		payload: payload,
	}, nil
}

// ReadDataSet reads and decodes one cycle's worth of records into a
// DataSet, returning io.EOF once the underlying stream is exhausted with no
// further records available.
func (rr *RecordingReader) ReadDataSet() (*vbus.DataSet, error) {
	ds := vbus.NewDataSet()

	first := rr.lookahead
	rr.lookahead = nil
	if first == nil {
		rec, err := rr.readOne()
		if err != nil {
			return nil, err
		}
		first = rec
	}

	if err := rr.decodeInto(ds, first); err != nil {
		return nil, err
	}

	for {
		rec, err := rr.readOne()
		if err != nil {
			if err == io.EOF {
				return ds, nil
			}
			return ds, err
		}
		if rec.ts.Sub(first.ts) > rr.gap {
			rr.lookahead = rec
			return ds, nil
		}
		if err := rr.decodeInto(ds, rec); err != nil {
			return ds, err
		}
	}
}

func (rr *RecordingReader) decodeInto(ds *vbus.DataSet, rec *pendingRecord) error {
	data, err := rr.decoder.Decode(rec.ts, rec.channel, rec.payload)
	if err != nil {
		return err
	}
	ds.Insert(data)
	return nil
}
