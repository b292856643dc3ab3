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
	"bytes"
	"io"
	"time"

	"github.com/jetsetilly/zwinder/assert"
	"github.com/jetsetilly/zwinder/curated"
	"github.com/jetsetilly/zwinder/logger"
	"github.com/jetsetilly/zwinder/metrics"
	"github.com/jetsetilly/zwinder/zwinder"
)

// logTag identifies rewind package entries in a logger.Logger.
const logTag = "rewind"

// StateManager is a frame-indexed cache of emulator snapshots: three
// decaying rings, a never-decaying reserved map, and an index tying the two
// together. It is driven by a single logical actor; see assertOwner.
type StateManager struct {
	settings Settings

	current *zwinder.Buffer
	recent  *zwinder.Buffer
	gap     *zwinder.Buffer

	reserved reservedMap
	index    *FrameIndex

	reserveFn ReserveCallback

	log     *logger.Logger
	metrics *metrics.Collector

	owner    uint64
	ownerSet bool
}

// New constructs a StateManager governed by settings. Callers must call
// Engage before any other operation to seed frame 0.
func New(settings Settings, reserveFn ReserveCallback) *StateManager {
	return &StateManager{
		settings:  settings,
		current:   zwinder.NewBuffer(settings.Current),
		recent:    zwinder.NewBuffer(settings.Recent),
		gap:       zwinder.NewBuffer(settings.Gap),
		reserved:  make(reservedMap),
		index:     newFrameIndex(),
		reserveFn: reserveFn,
		log:       logger.NewLogger(256),
	}
}

// SetMetrics wires a metrics.Collector into the manager. A nil collector (the
// default) disables instrumentation.
func (sm *StateManager) SetMetrics(c *metrics.Collector) {
	sm.metrics = c
}

// assertOwner binds the manager to the first goroutine that calls it and
// panics if a later call arrives from a different one. The cache is
// specified as single-threaded; this converts a silent race into a loud
// failure during development.
func (sm *StateManager) assertOwner() {
	id := assert.GetGoRoutineID()
	if !sm.ownerSet {
		sm.owner = id
		sm.ownerSet = true
		return
	}
	if sm.owner != id {
		panic(curated.Errorf(ConcurrentAccess, "goroutine"))
	}
}

func captureBytes(snap Snapshotter) ([]byte, error) {
	var buf bytes.Buffer
	if err := snap.Write(&buf); err != nil {
		return nil, curated.Errorf("rewind: snapshot: %v", err)
	}
	return buf.Bytes(), nil
}

func writeBytes(data []byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}
}

// Engage seeds frame 0 from snap. It must be called exactly once, before any
// other operation.
func (sm *StateManager) Engage(snap Snapshotter) error {
	sm.assertOwner()

	data, err := captureBytes(snap)
	if err != nil {
		return err
	}
	sm.reserved[0] = data
	sm.index.Insert(0)
	return nil
}

// headRing returns the newest frame across CurrentRing and RecentRing,
// without consulting ReservedMap (a reserved frame may lie in the future).
func (sm *StateManager) headRing() (uint32, bool) {
	cur, curOK := sm.current.Newest()
	rec, recOK := sm.recent.Newest()
	switch {
	case curOK && recOK:
		if cur >= rec {
			return cur, true
		}
		return rec, true
	case curOK:
		return cur, true
	case recOK:
		return rec, true
	default:
		return 0, false
	}
}

// needsGap reports whether frame falls in a genuine hole in coverage: no
// indexed frame lies in the open interval (frame-frequency, frame).
func (sm *StateManager) needsGap(frame uint32) bool {
	freq := sm.gap.RewindFrequency()
	if sm.gap.Count() == 0 {
		freq = sm.current.RewindFrequency()
	}
	return !sm.index.HasAnyInRange(int64(frame)-int64(freq), int64(frame))
}

// hasNearbyReserved implements the ancient-anchor policy: a demoted entry
// only needs to become a permanent anchor if nothing else already anchors
// that stretch of timeline.
func (sm *StateManager) hasNearbyReserved(frame uint32) bool {
	interval := int64(sm.settings.AncientInterval)
	if int64(frame) < interval {
		return true
	}
	lo := int64(frame) - interval
	hi := int64(frame) + interval
	for k := range sm.reserved {
		kk := int64(k)
		if kk > lo && kk < hi {
			return true
		}
	}
	return false
}

// Capture proposes a new snapshot at frame. snap is invoked at most once, and
// only if the frame is actually admitted somewhere.
func (sm *StateManager) Capture(frame uint32, snap Snapshotter, force bool) error {
	sm.assertOwner()

	if sm.index.Contains(frame) {
		return nil
	}

	if sm.reserveFn != nil && sm.reserveFn(frame) {
		data, err := captureBytes(snap)
		if err != nil {
			return err
		}
		sm.reserved[frame] = data
		sm.index.Insert(frame)
		sm.metrics.ObserveReserved()
		return nil
	}

	if head, ok := sm.headRing(); ok && frame <= head {
		if sm.needsGap(frame) {
			return sm.gapCapture(frame, snap, force)
		}
		return nil
	}

	return sm.currentCapture(frame, snap, force)
}

func (sm *StateManager) currentCapture(frame uint32, snap Snapshotter, force bool) error {
	admitted, err := sm.current.Capture(frame, snapshotWriteFn(snap), sm.onCurrentEvict, force)
	if err != nil {
		return err
	}
	if admitted {
		sm.index.Insert(frame)
		sm.metrics.ObserveCapture("current")
	}
	return nil
}

func (sm *StateManager) gapCapture(frame uint32, snap Snapshotter, force bool) error {
	admitted, err := sm.gap.Capture(frame, snapshotWriteFn(snap), sm.onGapEvict, force)
	if err != nil {
		return err
	}
	if admitted {
		sm.index.Insert(frame)
		sm.metrics.ObserveCapture("gap")
	}
	return nil
}

func snapshotWriteFn(snap Snapshotter) func(io.Writer) error {
	return func(w io.Writer) error { return snap.Write(w) }
}

// onCurrentEvict implements the promotion rule for an entry dropped from
// CurrentRing: straight to ReservedMap if caller-reserved, else forced into
// RecentRing.
func (sm *StateManager) onCurrentEvict(frame uint32, r io.Reader) {
	sm.index.Remove(frame)

	data, err := io.ReadAll(r)
	if err != nil {
		sm.log.Logf(logger.Allow, logTag, "reading evicted current entry %d: %v", frame, err)
		return
	}

	if sm.reserveFn != nil && sm.reserveFn(frame) {
		sm.reserved[frame] = data
		sm.index.Insert(frame)
		sm.metrics.ObservePromotion("reserved_callback")
		return
	}

	_, err = sm.recent.Capture(frame, writeBytes(data), sm.onRecentEvict, true)
	if err != nil {
		sm.log.Logf(logger.Allow, logTag, "demoting frame %d to recent: %v", frame, err)
		return
	}
	sm.index.Insert(frame)
	sm.metrics.ObserveCapture("recent")
}

// onRecentEvict implements the promotion rule for an entry dropped from
// RecentRing: becomes a permanent anchor if caller-reserved or if it is the
// only thing anchoring its stretch of timeline; otherwise it is lost.
func (sm *StateManager) onRecentEvict(frame uint32, r io.Reader) {
	sm.index.Remove(frame)

	data, err := io.ReadAll(r)
	if err != nil {
		sm.log.Logf(logger.Allow, logTag, "reading evicted recent entry %d: %v", frame, err)
		return
	}

	callerReserved := sm.reserveFn != nil && sm.reserveFn(frame)
	if callerReserved || !sm.hasNearbyReserved(frame) {
		sm.reserved[frame] = data
		sm.index.Insert(frame)
		sm.metrics.ObservePromotion("ancient")
		return
	}

	sm.metrics.ObserveEviction("recent")
}

func (sm *StateManager) onGapEvict(frame uint32, r io.Reader) {
	sm.index.Remove(frame)
	_, _ = io.ReadAll(r)
	sm.metrics.ObserveEviction("gap")
}

// CaptureReserved pins frame directly into ReservedMap, bypassing the
// decaying rings entirely. A no-op if the key is already present.
func (sm *StateManager) CaptureReserved(frame uint32, snap Snapshotter) error {
	sm.assertOwner()

	if _, ok := sm.reserved[frame]; ok {
		return nil
	}
	data, err := captureBytes(snap)
	if err != nil {
		return err
	}
	sm.reserved[frame] = data
	sm.index.Insert(frame)
	return nil
}

// EvictReserved removes frame from ReservedMap. Frame 0 can never be
// evicted. The key's absence is not an error.
func (sm *StateManager) EvictReserved(frame uint32) error {
	sm.assertOwner()

	if frame == 0 {
		return curated.Errorf(InvalidOperation, "evict_reserved(0)")
	}
	if _, ok := sm.reserved[frame]; !ok {
		return nil
	}
	delete(sm.reserved, frame)
	sm.index.Remove(frame)
	return nil
}

// HasState reports index membership.
func (sm *StateManager) HasState(frame uint32) bool {
	sm.assertOwner()
	return sm.index.Contains(frame)
}

// Last returns the greatest addressable frame, including reserved frames
// that lie ahead of the replay head.
func (sm *StateManager) Last() uint32 {
	sm.assertOwner()
	f, _ := sm.index.Max()
	return f
}

// Count returns the number of addressable snapshots across all four stores.
func (sm *StateManager) Count() int {
	sm.assertOwner()
	return sm.current.Count() + sm.recent.Count() + sm.gap.Count() + len(sm.reserved)
}

// GetClosest finds the largest indexed frame <= frame and returns it along
// with a fresh read stream over its bytes. Frame 0 is always addressable,
// so this never fails for a non-negative frame.
func (sm *StateManager) GetClosest(frame int) (uint32, io.Reader, error) {
	sm.assertOwner()

	start := time.Now()
	defer func() { sm.metrics.ObserveClosestLookup(time.Since(start)) }()

	if frame < 0 {
		return 0, nil, curated.Errorf(OutOfRange, frame)
	}

	found, ok := sm.index.GreatestLE(uint32(frame))
	if !ok {
		return 0, nil, curated.Errorf("rewind: no state at or before frame %d", frame)
	}

	r, err := sm.openReadStream(found)
	if err != nil {
		return 0, nil, err
	}
	return found, r, nil
}

// At returns the exact snapshot bytes stored at frame, or an empty slice if
// no state exists precisely there.
func (sm *StateManager) At(frame uint32) []byte {
	sm.assertOwner()

	if !sm.index.Contains(frame) {
		return []byte{}
	}
	r, err := sm.openReadStream(frame)
	if err != nil {
		return []byte{}
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return []byte{}
	}
	return b
}

func (sm *StateManager) openReadStream(frame uint32) (io.Reader, error) {
	if data, ok := sm.reserved[frame]; ok {
		cp := make([]byte, len(data))
		copy(cp, data)
		return bytes.NewReader(cp), nil
	}

	for _, ring := range [...]*zwinder.Buffer{sm.current, sm.recent, sm.gap} {
		if e, ok := ring.Find(frame); ok {
			b, err := io.ReadAll(e.OpenReadStream())
			if err != nil {
				return nil, curated.Errorf("rewind: read: %v", err)
			}
			return bytes.NewReader(b), nil
		}
	}

	return nil, curated.Errorf("rewind: no snapshot stored at frame %d", frame)
}

// InvalidateAfter removes every snapshot with frame strictly greater than f.
// It reports whether anything was actually removed.
func (sm *StateManager) InvalidateAfter(frame int) (bool, error) {
	sm.assertOwner()

	if frame < 0 {
		return false, curated.Errorf(OutOfRange, frame)
	}
	f := uint32(frame)
	changed := false

	if idx := sm.recent.FirstIndexGreaterThan(f); idx >= 0 {
		sm.recent.InvalidateEnd(idx)
		sm.current.InvalidateEnd(0)
		changed = true
	} else if idx := sm.current.FirstIndexGreaterThan(f); idx >= 0 {
		sm.current.InvalidateEnd(idx)
		changed = true
	}

	if idx := sm.gap.FirstIndexGreaterThan(f); idx >= 0 {
		sm.gap.InvalidateEnd(idx)
		changed = true
	}

	for k := range sm.reserved {
		if k > f {
			delete(sm.reserved, k)
			changed = true
		}
	}

	if removed := sm.index.RemoveGreaterThan(f); len(removed) > 0 {
		changed = true
	}

	return changed, nil
}

// Clear truncates all three rings and resets ReservedMap and FrameIndex down
// to frame 0 alone.
func (sm *StateManager) Clear() {
	sm.assertOwner()

	sm.current.InvalidateEnd(0)
	sm.recent.InvalidateEnd(0)
	sm.gap.InvalidateEnd(0)

	frame0, hadZero := sm.reserved[0]
	sm.reserved = make(reservedMap)
	if hadZero {
		sm.reserved[0] = frame0
	}

	sm.index = newFrameIndex()
	sm.index.Insert(0)
}

// Dispose releases every ring's byte arena. Safe to call more than once.
func (sm *StateManager) Dispose() {
	sm.assertOwner()
	sm.current.Dispose()
	sm.recent.Dispose()
	sm.gap.Dispose()
}
