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
	"encoding/binary"
	"io"

	"github.com/jetsetilly/zwinder/curated"
	"github.com/jetsetilly/zwinder/logger"
	"github.com/jetsetilly/zwinder/zwinder"
)

// Save writes the manager's entire state to w: the three ring blobs
// (self-delimiting via package zwinder), the ancient interval, and the
// reserved-map records, newest frame first. Settings are not included; Load
// requires the caller to supply them again.
func (sm *StateManager) Save(w io.Writer) error {
	sm.assertOwner()

	if err := sm.current.Save(w); err != nil {
		return err
	}
	if err := sm.recent.Save(w); err != nil {
		return err
	}
	if err := sm.gap.Save(w); err != nil {
		return err
	}

	if err := binary.Write(w, binary.LittleEndian, int32(sm.settings.AncientInterval)); err != nil {
		return curated.Errorf("rewind: save: %v", err)
	}

	keys := sm.reserved.descendingKeys()
	if err := binary.Write(w, binary.LittleEndian, int32(len(keys))); err != nil {
		return curated.Errorf("rewind: save: %v", err)
	}
	for _, f := range keys {
		data := sm.reserved[f]
		if err := binary.Write(w, binary.LittleEndian, f); err != nil {
			return curated.Errorf("rewind: save: %v", err)
		}
		if err := binary.Write(w, binary.LittleEndian, int32(len(data))); err != nil {
			return curated.Errorf("rewind: save: %v", err)
		}
		if _, err := w.Write(data); err != nil {
			return curated.Errorf("rewind: save: %v", err)
		}
	}

	return nil
}

// Load reconstructs a StateManager previously written with Save. settings
// supplies the three ring configs; its AncientInterval is overwritten with
// the value actually persisted in the stream.
func Load(r io.Reader, settings Settings, reserveFn ReserveCallback) (*StateManager, error) {
	current, err := zwinder.Load(r, settings.Current)
	if err != nil {
		return nil, curated.Errorf(Corrupt, err)
	}
	recent, err := zwinder.Load(r, settings.Recent)
	if err != nil {
		return nil, curated.Errorf(Corrupt, err)
	}
	gap, err := zwinder.Load(r, settings.Gap)
	if err != nil {
		return nil, curated.Errorf(Corrupt, err)
	}

	var ancientInterval int32
	if err := binary.Read(r, binary.LittleEndian, &ancientInterval); err != nil {
		return nil, curated.Errorf(Corrupt, err)
	}
	settings.AncientInterval = uint32(ancientInterval)

	var count int32
	if err := binary.Read(r, binary.LittleEndian, &count); err != nil {
		return nil, curated.Errorf(Corrupt, err)
	}

	sm := &StateManager{
		settings:  settings,
		current:   current,
		recent:    recent,
		gap:       gap,
		reserved:  make(reservedMap, count),
		index:     newFrameIndex(),
		reserveFn: reserveFn,
		log:       logger.NewLogger(256),
	}

	for i := int32(0); i < count; i++ {
		var frame uint32
		var length int32
		if err := binary.Read(r, binary.LittleEndian, &frame); err != nil {
			return nil, curated.Errorf(Corrupt, err)
		}
		if err := binary.Read(r, binary.LittleEndian, &length); err != nil {
			return nil, curated.Errorf(Corrupt, err)
		}
		data := make([]byte, length)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, curated.Errorf(Corrupt, err)
		}
		sm.reserved[frame] = data
	}

	sm.rebuildIndex()
	return sm, nil
}
