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

import "sort"

// reservedMap is frame -> owned bytes. It never decays; entries leave only
// through explicit eviction, invalidation, or clear.
type reservedMap map[uint32][]byte

// descendingKeys returns the map's keys sorted newest-first, the iteration
// order the query surface promises for reserved frames.
func (r reservedMap) descendingKeys() []uint32 {
	keys := make([]uint32, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] > keys[j] })
	return keys
}

// ascendingKeys returns the map's keys sorted oldest-first.
func (r reservedMap) ascendingKeys() []uint32 {
	keys := make([]uint32, 0, len(r))
	for k := range r {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}
