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

// Package zwinder implements Buffer, a fixed-byte-budget FIFO ring of
// variably-sized snapshot entries. It is the reusable primitive underneath
// package rewind's three rings (current, recent, gap): it knows nothing
// about frame semantics beyond "ordered by frame number" and nothing about
// promotion policy, which is entirely the caller's responsibility via the
// eviction callback passed to Capture.
package zwinder
