package zwinder_test

import (
	"bytes"
	"fmt"
	"io"
	"testing"

	"github.com/jetsetilly/zwinder/digest"
	"github.com/jetsetilly/zwinder/test"
	"github.com/jetsetilly/zwinder/zwinder"
)

func writeByte(v byte) func(io.Writer) error {
	return func(w io.Writer) error {
		_, err := w.Write([]byte{v})
		return err
	}
}

func TestCaptureCadence(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 100, RewindFrequency: 5})

	ok, err := b.Capture(0, writeByte(0), nil, false)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, true)

	// too soon, refused
	ok, err = b.Capture(3, writeByte(3), nil, false)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, false)

	// far enough, admitted
	ok, err = b.Capture(5, writeByte(5), nil, false)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, true)

	// force bypasses cadence
	ok, err = b.Capture(6, writeByte(6), nil, true)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, true)

	test.Equate(t, b.Count(), 3)
}

func TestCaptureCadenceBackward(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 100, RewindFrequency: 10})

	ok, err := b.Capture(100, writeByte(100), nil, true)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, true)

	// backward and within cadence distance: refused, not wrongly admitted
	// via unsigned underflow of frame-newest
	ok, err = b.Capture(95, writeByte(95), nil, false)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, false)

	// backward but far enough away: admitted
	ok, err = b.Capture(85, writeByte(85), nil, false)
	test.ExpectSuccess(t, err)
	test.Equate(t, ok, true)

	test.Equate(t, b.Count(), 2)
}

func TestCaptureOrderedInsertion(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 0, RewindFrequency: 0})

	for _, f := range []uint32{10, 2, 7, 0} {
		_, err := b.Capture(f, writeByte(byte(f)), nil, true)
		test.ExpectSuccess(t, err)
	}

	var got []uint32
	for i := 0; i < b.Count(); i++ {
		e, ok := b.Get(i)
		test.Equate(t, ok, true)
		got = append(got, e.Frame)
	}
	test.Equate(t, fmt.Sprint(got), fmt.Sprint([]uint32{0, 2, 7, 10}))
}

func TestByteBudgetEviction(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 3, RewindFrequency: 0})

	var evicted []uint32
	onEvict := func(frame uint32, r io.Reader) {
		evicted = append(evicted, frame)
		_, _ = io.ReadAll(r)
	}

	for _, f := range []uint32{0, 1, 2, 3} {
		ok, err := b.Capture(f, writeByte(byte(f)), onEvict, true)
		test.ExpectSuccess(t, err)
		test.Equate(t, ok, true)
	}

	// budget of 3 one-byte entries means the first capture (frame 0) was
	// evicted to make room for the fourth
	test.Equate(t, fmt.Sprint(evicted), fmt.Sprint([]uint32{0}))
	test.Equate(t, b.Count(), 3)
}

func TestInvalidateEnd(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 0, RewindFrequency: 0})
	for _, f := range []uint32{0, 1, 2, 3, 4} {
		_, err := b.Capture(f, writeByte(byte(f)), nil, true)
		test.ExpectSuccess(t, err)
	}

	b.InvalidateEnd(2)
	test.Equate(t, b.Count(), 2)
	e, ok := b.Get(1)
	test.Equate(t, ok, true)
	test.Equate(t, e.Frame, uint32(1))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 0, RewindFrequency: 0})
	for _, f := range []uint32{0, 1, 2} {
		_, err := b.Capture(f, writeByte(byte(f*10)), nil, true)
		test.ExpectSuccess(t, err)
	}

	var buf bytes.Buffer
	test.ExpectSuccess(t, b.Save(&buf))

	loaded, err := zwinder.Load(&buf, zwinder.Config{ByteBudget: 0, RewindFrequency: 0})
	test.ExpectSuccess(t, err)
	test.Equate(t, loaded.Count(), 3)

	for i := 0; i < 3; i++ {
		want, _ := b.Get(i)
		got, ok := loaded.Get(i)
		test.Equate(t, ok, true)
		test.Equate(t, got.Frame, want.Frame)

		wantDigest, err := digest.Hash(want.OpenReadStream())
		test.ExpectSuccess(t, err)
		gotDigest, err := digest.Hash(got.OpenReadStream())
		test.ExpectSuccess(t, err)
		test.Equate(t, gotDigest, wantDigest)
	}
}

func TestFind(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 0, RewindFrequency: 0})
	for _, f := range []uint32{0, 2, 5, 9} {
		_, err := b.Capture(f, writeByte(byte(f)), nil, true)
		test.ExpectSuccess(t, err)
	}

	e, ok := b.Find(5)
	test.Equate(t, ok, true)
	test.Equate(t, e.Frame, uint32(5))

	_, ok = b.Find(6)
	test.Equate(t, ok, false)

	_, ok = b.Find(100)
	test.Equate(t, ok, false)
}

func TestFirstIndexGreaterThan(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{ByteBudget: 0, RewindFrequency: 0})
	for _, f := range []uint32{0, 2, 5, 9} {
		_, err := b.Capture(f, writeByte(byte(f)), nil, true)
		test.ExpectSuccess(t, err)
	}

	test.Equate(t, b.FirstIndexGreaterThan(1), 1)
	test.Equate(t, b.FirstIndexGreaterThan(2), 2)
	test.Equate(t, b.FirstIndexGreaterThan(9), -1)
	test.Equate(t, b.FirstIndexGreaterThan(100), -1)
}

func TestDisposeRejectsCapture(t *testing.T) {
	b := zwinder.NewBuffer(zwinder.Config{})
	b.Dispose()
	b.Dispose() // idempotent

	_, err := b.Capture(0, writeByte(0), nil, true)
	test.ExpectFailure(t, err)
}
