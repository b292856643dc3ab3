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

// UpdateSettings swaps in new, rebuilding any ring whose config changed. If
// keepOld is true, every entry of a replaced ring is re-admitted into its
// replacement (force=true); entries the reserve callback claims are diverted
// into ReservedMap instead. If keepOld is false, replaced rings are simply
// discarded.
func (sm *StateManager) UpdateSettings(newSettings Settings, keepOld bool) {
	sm.assertOwner()

	sm.current = sm.rebuildRing(sm.current, newSettings.Current, keepOld)
	sm.recent = sm.rebuildRing(sm.recent, newSettings.Recent, keepOld)
	sm.gap = sm.rebuildRing(sm.gap, newSettings.Gap, keepOld)

	if keepOld {
		if newSettings.AncientInterval > sm.settings.AncientInterval {
			sm.repackAncient(newSettings.AncientInterval)
		}
	} else {
		for f := range sm.reserved {
			if f == 0 {
				continue
			}
			if sm.reserveFn != nil && sm.reserveFn(f) {
				continue
			}
			delete(sm.reserved, f)
		}
	}

	sm.settings = newSettings
	sm.rebuildIndex()
}

// rebuildRing replaces old with a fresh ring under newCfg, unless old
// already matches newCfg. Overflow produced while re-admitting entries is
// handled by the same ancient-anchor rule used during ordinary cascading
// eviction (evictDuringRebuild).
func (sm *StateManager) rebuildRing(old *zwinder.Buffer, newCfg zwinder.Config, keepOld bool) *zwinder.Buffer {
	if old.MatchesSettings(newCfg) {
		return old
	}

	fresh := zwinder.NewBuffer(newCfg)
	if !keepOld {
		old.Dispose()
		return fresh
	}

	for i := 0; i < old.Count(); i++ {
		e, ok := old.Get(i)
		if !ok {
			continue
		}
		data, err := io.ReadAll(e.OpenReadStream())
		if err != nil {
			continue
		}
		if sm.reserveFn != nil && sm.reserveFn(e.Frame) {
			sm.reserved[e.Frame] = data
			continue
		}
		_, _ = fresh.Capture(e.Frame, writeBytes(data), sm.evictDuringRebuild, true)
	}
	old.Dispose()
	return fresh
}

// evictDuringRebuild handles overflow produced while re-admitting a ring's
// old entries under a shrunk byte budget: the ancient-anchor rule decides
// whether the entry survives as a reserved anchor or is simply lost.
func (sm *StateManager) evictDuringRebuild(frame uint32, r io.Reader) {
	data, err := io.ReadAll(r)
	if err != nil {
		return
	}
	if (sm.reserveFn != nil && sm.reserveFn(frame)) || !sm.hasNearbyReserved(frame) {
		sm.reserved[frame] = data
	}
}

// repackAncient re-establishes the ancient spacing target after
// ancient_interval has grown: it walks ReservedMap oldest-first and evicts
// any non-caller-reserved key too close to the last kept key.
func (sm *StateManager) repackAncient(newInterval uint32) {
	keys := sm.reserved.ascendingKeys()
	if len(keys) == 0 {
		return
	}

	lastKept := keys[0]
	for _, k := range keys[1:] {
		callerReserved := sm.reserveFn != nil && sm.reserveFn(k)
		if !callerReserved && int64(k)-int64(lastKept) < int64(newInterval) {
			delete(sm.reserved, k)
			continue
		}
		lastKept = k
	}
}

// rebuildIndex recomputes FrameIndex from the authoritative stores.
func (sm *StateManager) rebuildIndex() {
	idx := newFrameIndex()
	for k := range sm.reserved {
		idx.Insert(k)
	}
	for _, ring := range [...]*zwinder.Buffer{sm.current, sm.recent, sm.gap} {
		for i := 0; i < ring.Count(); i++ {
			if e, ok := ring.Get(i); ok {
				idx.Insert(e.Frame)
			}
		}
	}
	sm.index = idx
}
