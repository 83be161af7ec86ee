// Copyright 2026 The Pospace Authors. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package sectorio provides the on-disk backing provider for a sector: a
// sized, writable, randomly-addressable byte region with cheap page
// faulting, viewed as a typed slice of fixed-width item.Item values. The
// sector builder reads backward into already-written positions while
// extending the file forward, which is exactly the access pattern a
// read-write memory mapping is built for.
package sectorio

import (
	"os"
	"unsafe"

	"github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"

	"github.com/proofofspace/sector/item"
)

// ErrSizeMismatch is returned by Open when an existing file's size does not
// match the expected item count.
var ErrSizeMismatch = errors.New("sectorio: file size does not match expected item count")

// Region is a memory-mapped file viewed as a slice of item.Item. It
// implements both item.Reader and item.Writer.
type Region struct {
	f        *os.File
	mm       mmap.MMap
	items    []item.Item
	readOnly bool
}

// Create truncates (or creates) the file at path to count*item.Size bytes
// and maps it read-write. The caller owns the returned Region exclusively
// until Close.
func Create(path string, count uint64) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return nil, errors.Wrap(err, "sectorio: create")
	}

	size := int64(count) * item.Size
	if err := f.Truncate(size); err != nil {
		f.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "sectorio: truncate")
	}

	mm, err := mmap.Map(f, mmap.RDWR, 0)
	if err != nil {
		f.Close()
		os.Remove(path)
		return nil, errors.Wrap(err, "sectorio: mmap rdwr")
	}

	return newRegion(f, mm, count, false), nil
}

// Open maps an existing file at path read-only and verifies its size
// matches count exactly.
func Open(path string, count uint64) (*Region, error) {
	f, err := os.OpenFile(path, os.O_RDONLY, 0)
	if err != nil {
		return nil, errors.Wrap(err, "sectorio: open")
	}

	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "sectorio: stat")
	}
	want := int64(count) * item.Size
	if info.Size() != want {
		f.Close()
		return nil, ErrSizeMismatch
	}

	mm, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "sectorio: mmap rdonly")
	}

	return newRegion(f, mm, count, true), nil
}

func newRegion(f *os.File, mm mmap.MMap, count uint64, readOnly bool) *Region {
	r := &Region{f: f, mm: mm, readOnly: readOnly}
	if count > 0 {
		r.items = unsafe.Slice((*item.Item)(unsafe.Pointer(&mm[0])), count)
	}
	return r
}

// At returns the item at index i.
func (r *Region) At(i uint64) item.Item { return r.items[i] }

// Len returns the number of items in the region.
func (r *Region) Len() uint64 { return uint64(len(r.items)) }

// Set writes v at index i. Panics if the region was opened read-only — a
// programmer error, since read-only regions are never exposed as a
// writable view.
func (r *Region) Set(i uint64, v item.Item) {
	if r.readOnly {
		panic("sectorio: Set on a read-only region")
	}
	r.items[i] = v
}

// Flush ensures previously written data is durable before a read-only view
// of the same file is opened.
func (r *Region) Flush() error {
	if r.mm == nil {
		return nil
	}
	return errors.Wrap(r.mm.Flush(), "sectorio: flush")
}

// Close unmaps and closes the backing file.
func (r *Region) Close() error {
	var err error
	if r.mm != nil {
		err = r.mm.Unmap()
		r.mm = nil
		r.items = nil
	}
	if cerr := r.f.Close(); cerr != nil && err == nil {
		err = cerr
	}
	return err
}
