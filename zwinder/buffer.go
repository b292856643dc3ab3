// This file is part of zwinder.
//
// zwinder is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// zwinder is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with zwinder.  If not, see <https://www.gnu.org/licenses/>.

package zwinder

import (
	"bytes"
	"encoding/binary"
	"io"
	"sort"

	"github.com/jetsetilly/zwinder/curated"
)

// Config describes a ring's admission policy and memory budget.
type Config struct {
	// ByteBudget is the maximum total size, in bytes, of all entries the
	// ring will hold at once. Zero means unbounded.
	ByteBudget uint64

	// RewindFrequency is the minimum frame delta required between the
	// ring's newest entry and a newly proposed one, unless the capture is
	// forced.
	RewindFrequency uint32
}

// Entry is one stored snapshot.
type Entry struct {
	Frame uint32
	Size  int
	data  []byte
}

// OpenReadStream returns a fresh reader over the entry's bytes. The stream
// remains valid even if the caller defers reading it, but it is not
// guaranteed to survive a subsequent mutation of the owning Buffer.
func (e Entry) OpenReadStream() io.Reader {
	return bytes.NewReader(e.data)
}

// EvictFunc is called once per entry dropped to make room for a new
// capture. It receives a read stream over the evicted entry's bytes; the
// stream is only valid for the duration of the call.
type EvictFunc func(frame uint32, r io.Reader)

// Buffer is a fixed-byte-budget FIFO of variably-sized snapshots, kept in
// non-decreasing frame order, per the package doc.
type Buffer struct {
	cfg       Config
	entries   []Entry
	totalSize uint64
	disposed  bool
}

// NewBuffer allocates an empty ring governed by cfg.
func NewBuffer(cfg Config) *Buffer {
	return &Buffer{cfg: cfg}
}

// RewindFrequency returns the ring's admission cadence.
func (b *Buffer) RewindFrequency() uint32 {
	return b.cfg.RewindFrequency
}

// MatchesSettings reports whether cfg is identical to the ring's current
// configuration.
func (b *Buffer) MatchesSettings(cfg Config) bool {
	return b.cfg == cfg
}

// Count returns the number of entries currently stored.
func (b *Buffer) Count() int {
	return len(b.entries)
}

// Get returns the entry at index, where index 0 is the oldest (smallest
// frame) entry.
func (b *Buffer) Get(index int) (Entry, bool) {
	if index < 0 || index >= len(b.entries) {
		return Entry{}, false
	}
	return b.entries[index], true
}

// Newest returns the frame number of the most recently admitted entry.
func (b *Buffer) Newest() (uint32, bool) {
	if len(b.entries) == 0 {
		return 0, false
	}
	return b.entries[len(b.entries)-1].Frame, true
}

// Capture proposes a new snapshot at frame. writeFn is called exactly once,
// and only if the cadence check (or force) admits the capture, to produce
// the entry's bytes. onEvict, if non-nil, is called once per entry dropped
// to make room. Capture reports whether the entry was admitted.
func (b *Buffer) Capture(frame uint32, writeFn func(io.Writer) error, onEvict EvictFunc, force bool) (bool, error) {
	if b.disposed {
		return false, curated.Errorf("zwinder: capture on disposed buffer")
	}

	if !force {
		if newest, ok := b.Newest(); ok {
			delta := int64(frame) - int64(newest)
			if delta < 0 {
				delta = -delta
			}
			if delta < int64(b.cfg.RewindFrequency) {
				return false, nil
			}
		}
	}

	var buf bytes.Buffer
	if err := writeFn(&buf); err != nil {
		return false, curated.Errorf("zwinder: capture: %v", err)
	}
	data := buf.Bytes()
	size := uint64(len(data))

	for b.cfg.ByteBudget > 0 && b.totalSize+size > b.cfg.ByteBudget && len(b.entries) > 0 {
		old := b.entries[0]
		b.entries = b.entries[1:]
		b.totalSize -= uint64(old.Size)
		if onEvict != nil {
			onEvict(old.Frame, old.OpenReadStream())
		}
	}

	e := Entry{Frame: frame, Size: len(data), data: data}
	pos := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Frame >= frame })
	b.entries = append(b.entries, Entry{})
	copy(b.entries[pos+1:], b.entries[pos:])
	b.entries[pos] = e
	b.totalSize += size

	return true, nil
}

// Find returns the entry stored at the exact given frame, if any.
func (b *Buffer) Find(frame uint32) (Entry, bool) {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Frame >= frame })
	if i < len(b.entries) && b.entries[i].Frame == frame {
		return b.entries[i], true
	}
	return Entry{}, false
}

// FirstIndexGreaterThan returns the index of the first entry whose frame
// exceeds f, or -1 if no such entry exists.
func (b *Buffer) FirstIndexGreaterThan(f uint32) int {
	i := sort.Search(len(b.entries), func(i int) bool { return b.entries[i].Frame > f })
	if i == len(b.entries) {
		return -1
	}
	return i
}

// InvalidateEnd removes every entry at or after index.
func (b *Buffer) InvalidateEnd(index int) {
	if index < 0 || index >= len(b.entries) {
		return
	}
	for _, e := range b.entries[index:] {
		b.totalSize -= uint64(e.Size)
	}
	b.entries = b.entries[:index]
}

// Dispose releases the ring's entries. Safe to call more than once.
func (b *Buffer) Dispose() {
	b.entries = nil
	b.totalSize = 0
	b.disposed = true
}

// Save writes a self-delimiting representation of the ring: an entry count
// followed, for each entry, by its frame, length, and bytes.
func (b *Buffer) Save(w io.Writer) error {
	if err := binary.Write(w, binary.LittleEndian, int32(len(b.entries))); err != nil {
		return curated.Errorf("zwinder: save: %v", err)
	}
	for _, e := range b.entries {
		if err := binary.Write(w, binary.LittleEndian, e.Frame); err != nil {
			return curated.Errorf("zwinder: save: %v", err)
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(e.data))); err != nil {
			return curated.Errorf("zwinder: save: %v", err)
		}
		if _, err := w.Write(e.data); err != nil {
			return curated.Errorf("zwinder: save: %v", err)
		}
	}
	return nil
}

// Load reconstructs a Buffer previously written with Save. cfg is supplied
// by the caller; it is not part of the persisted format.
func Load(r io.Reader, cfg Config) (*Buffer, error) {
	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, curated.Errorf("zwinder: load: %v", err)
	}

	b := NewBuffer(cfg)
	b.entries = make([]Entry, 0, count)
	for i := int32(0); i < count; i++ {
		var frame uint32
		var length int32
		if err := binary.Read(r, binary.LittleEndian, &frame); err != nil {
			return nil, curated.Errorf("zwinder: load: %v", err)
		}
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, curated.Errorf("zwinder: load: %v", err)
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, curated.Errorf("zwinder: load: %v", err)
		}
		e := Entry{Frame: frame, Size: len(data), data: data}
		b.entries = append(b.entries, e)
		b.totalSize += uint64(len(data))
	}
	return b, nil
}
