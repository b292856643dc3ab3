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
	"io"

	"github.com/jetsetilly/zwinder/zwinder"
)

// Settings is the manager's value-typed configuration: the three rings'
// admission policies plus the ancient-anchor spacing target. Settings are
// supplied by the caller at construction and at Load; they are never part
// of the persisted format.
type Settings struct {
	Current zwinder.Config
	Recent  zwinder.Config
	Gap     zwinder.Config

	// AncientInterval is the target minimum spacing between two
	// ReservedMap neighbours, neither of which is caller-reserved.
	AncientInterval uint32
}

// Snapshotter writes an opaque emulator-state blob to sink. It is the only
// thing the manager needs from the emulator producing the states.
type Snapshotter interface {
	Write(sink io.Writer) error
}

// ReserveCallback reports whether frame should be pinned into ReservedMap
// rather than stored in a decaying ring. It is consulted frequently and
// must be pure and cheap.
type ReserveCallback func(frame uint32) bool
