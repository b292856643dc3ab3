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

// Summary reports the frame range currently addressable, and how it is
// distributed across the four stores. Useful for a host UI/editor that
// wants to show the span of history available without walking it frame by
// frame.
type Summary struct {
	Start, End uint32

	CurrentCount  int
	RecentCount   int
	GapCount      int
	ReservedCount int
}

// GetSummary reports the manager's current occupancy.
func (sm *StateManager) GetSummary() Summary {
	sm.assertOwner()

	last, _ := sm.index.Max()

	return Summary{
		Start:         0,
		End:           last,
		CurrentCount:  sm.current.Count(),
		RecentCount:   sm.recent.Count(),
		GapCount:      sm.gap.Count(),
		ReservedCount: len(sm.reserved),
	}
}

// ReservedFrames returns every pinned frame, descending newest-first.
func (sm *StateManager) ReservedFrames() []uint32 {
	sm.assertOwner()
	return sm.reserved.descendingKeys()
}
