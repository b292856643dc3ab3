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
	"testing"

	"github.com/jetsetilly/zwinder/test"
)

func TestFrameIndexBasics(t *testing.T) {
	fi := newFrameIndex()
	for _, f := range []uint32{5, 1, 9, 3} {
		fi.Insert(f)
	}
	test.Equate(t, fi.Len(), 4)
	test.Equate(t, fi.Contains(9), true)
	test.Equate(t, fi.Contains(7), false)

	max, ok := fi.Max()
	test.ExpectSuccess(t, ok)
	test.Equate(t, max, uint32(9))

	fi.Remove(9)
	test.Equate(t, fi.Contains(9), false)
	max, ok = fi.Max()
	test.ExpectSuccess(t, ok)
	test.Equate(t, max, uint32(5))
}

func TestFrameIndexGreatestLE(t *testing.T) {
	fi := newFrameIndex()
	for _, f := range []uint32{0, 5, 10, 20} {
		fi.Insert(f)
	}

	got, ok := fi.GreatestLE(15)
	test.ExpectSuccess(t, ok)
	test.Equate(t, got, uint32(10))

	got, ok = fi.GreatestLE(0)
	test.ExpectSuccess(t, ok)
	test.Equate(t, got, uint32(0))

	got, ok = fi.GreatestLE(20)
	test.ExpectSuccess(t, ok)
	test.Equate(t, got, uint32(20))
}

func TestFrameIndexHasAnyInRange(t *testing.T) {
	fi := newFrameIndex()
	for _, f := range []uint32{0, 10, 20} {
		fi.Insert(f)
	}

	test.Equate(t, fi.HasAnyInRange(5, 9), false)
	test.Equate(t, fi.HasAnyInRange(9, 11), true)
	test.Equate(t, fi.HasAnyInRange(11, 12), false)
	// an interval with no integers in it, open on both ends
	test.Equate(t, fi.HasAnyInRange(10, 11), false)
}

func TestFrameIndexRemoveGreaterThan(t *testing.T) {
	fi := newFrameIndex()
	for _, f := range []uint32{0, 1, 2, 3, 4} {
		fi.Insert(f)
	}

	removed := fi.RemoveGreaterThan(2)
	test.Equate(t, len(removed), 2)
	test.Equate(t, fi.Contains(3), false)
	test.Equate(t, fi.Contains(4), false)
	test.Equate(t, fi.Contains(2), true)
	test.Equate(t, fi.Len(), 3)
}
