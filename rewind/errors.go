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

// Curated error patterns. Use curated.Is(err, rewind.OutOfRange) etc. to
// distinguish them from unexpected errors.
const (
	// OutOfRange is raised for a negative frame passed to GetClosest or
	// InvalidateAfter.
	OutOfRange = "rewind: out of range: %v"

	// InvalidOperation is raised by EvictReserved(0): frame 0 is pinned for
	// the lifetime of the manager.
	InvalidOperation = "rewind: invalid operation: %v"

	// ConcurrentAccess is raised when two goroutines drive the same
	// StateManager without external serialization.
	ConcurrentAccess = "rewind: concurrent access: %v"

	// Corrupt wraps an I/O error encountered while reading a persisted
	// cache file back in Load.
	Corrupt = "rewind: corrupt: %v"
)
