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

package rewind

import (
	"github.com/google/btree"
)

// frameIndexDegree is the B-tree branching factor. The index is tiny
// compared to the snapshot bytes it points at, so this is tuned for a
// shallow tree over raw allocation count.
const frameIndexDegree = 32

// FrameIndex is an ordered set of every frame currently addressable across
// the rings and the reserved map. It holds no bytes; it is a pure index
// rebuildable at any time from the authoritative stores.
type FrameIndex struct {
	t *btree.BTreeG[uint32]
}

func newFrameIndex() *FrameIndex {
	return &FrameIndex{
		t: btree.NewG(frameIndexDegree, func(a, b uint32) bool { return a < b }),
	}
}

// Insert adds frame to the index. A frame already present is left alone.
func (fi *FrameIndex) Insert(frame uint32) {
	fi.t.ReplaceOrInsert(frame)
}

// Remove drops frame from the index, if present.
func (fi *FrameIndex) Remove(frame uint32) {
	fi.t.Delete(frame)
}

// Contains reports index membership.
func (fi *FrameIndex) Contains(frame uint32) bool {
	return fi.t.Has(frame)
}

// Len returns the number of distinct frames in the index.
func (fi *FrameIndex) Len() int {
	return fi.t.Len()
}

// Max returns the greatest frame in the index.
func (fi *FrameIndex) Max() (uint32, bool) {
	return fi.t.Max()
}

// GreatestLE returns the largest indexed frame that is <= f.
func (fi *FrameIndex) GreatestLE(f uint32) (uint32, bool) {
	var result uint32
	found := false
	fi.t.DescendLessOrEqual(f, func(item uint32) bool {
		result = item
		found = true
		return false
	})
	return result, found
}

// HasAnyInRange reports whether any indexed frame lies in the open interval
// (loExclusive, hiExclusive).
func (fi *FrameIndex) HasAnyInRange(loExclusive, hiExclusive int64) bool {
	if hiExclusive <= 0 {
		return false
	}

	from := loExclusive + 1
	if from < 0 {
		from = 0
	}
	to := hiExclusive

	found := false
	fi.t.AscendRange(uint32(from), uint32(to), func(item uint32) bool {
		found = true
		return false
	})
	return found
}

// RemoveGreaterThan deletes every frame strictly greater than f and reports
// the frames it removed.
func (fi *FrameIndex) RemoveGreaterThan(f uint32) []uint32 {
	var doomed []uint32
	fi.t.Descend(func(item uint32) bool {
		if item <= f {
			return false
		}
		doomed = append(doomed, item)
		return true
	})
	for _, d := range doomed {
		fi.t.Delete(d)
	}
	return doomed
}
