// Copyright 2020 thinkgos (thinkgo@aliyun.com).  All rights reserved.
// Use of this source code is governed by a version 3 of the GNU General
// Public License, license that can be found in the LICENSE file.

package serial

import (
	"io"
	"os"
)

// FileListReader chains multiple files together as a single io.Reader, only
// ever holding one of them open at a time. It is the Go port of this
// repository's file-list playback helper.
type FileListReader struct {
	paths []string
	index int
	file  *os.File
}

// NewFileListReader returns a FileListReader over paths, read in order.
func NewFileListReader(paths []string) *FileListReader {
	return &FileListReader{paths: paths}
}

// Read implements io.Reader, opening each path in turn as the previous one
// is exhausted, and returning io.EOF only once every path has been read.
func (r *FileListReader) Read(buf []byte) (int, error) {
	for {
		if r.file != nil {
			n, err := r.file.Read(buf)
			if n > 0 {
				return n, nil
			}
			_ = r.file.Close()
			r.file = nil
			if err != nil && err != io.EOF {
				return 0, err
			}
		}

		if r.index >= len(r.paths) {
			return 0, io.EOF
		}

		f, err := os.Open(r.paths[r.index])
		if err != nil {
			return 0, err
		}
		r.file = f
		r.index++
	}
}

// Close closes the currently open file, if any.
func (r *FileListReader) Close() error {
	if r.file == nil {
		return nil
	}
	err := r.file.Close()
	r.file = nil
	return err
}
