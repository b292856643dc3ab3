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

// Package rewind implements StateManager, a frame-indexed cache of emulator
// state snapshots. The manager composes three decaying rings (current,
// recent, gap), built on package zwinder's Buffer, with a ReservedMap of
// pinned frames and a FrameIndex giving O(log n) "closest at-or-before"
// lookups.
//
// StateManager is driven by a single logical actor. It performs no locking;
// a goroutine-identity check on every public call panics on accidental
// concurrent use.
package rewind
