// Package test provides small assertion helpers shared by this repository's
// test suites, in place of ad-hoc comparisons scattered through _test.go
// files.
package test

import (
	"fmt"
	"reflect"
	"testing"
)

// Equate fails the test if got and want are not equal.
func Equate(t *testing.T, got, want interface{}) {
	t.Helper()
	if !reflect.DeepEqual(got, want) {
		t.Errorf("unexpected value: got %v (%T), wanted %v (%T)", got, got, want, want)
	}
}

// success reports whether v represents a "no error" / "ok" outcome. Accepts
// nil, a nil error, or the boolean true.
func success(v interface{}) bool {
	if v == nil {
		return true
	}
	switch x := v.(type) {
	case error:
		return x == nil
	case bool:
		return x
	default:
		return false
	}
}

// ExpectSuccess fails the test if v indicates failure. v may be an error
// (nil is success), a bool (true is success), or nil.
func ExpectSuccess(t *testing.T, v interface{}) {
	t.Helper()
	if !success(v) {
		t.Errorf("expected success, got %v", v)
	}
}

// ExpectFailure fails the test if v indicates success. v may be an error
// (non-nil is failure), a bool (false is failure), or nil.
func ExpectFailure(t *testing.T, v interface{}) {
	t.Helper()
	if success(v) {
		t.Errorf("expected failure, got %v", v)
	}
}

// ExpectEquality fails the test if got and want are not equal.
func ExpectEquality(t *testing.T, got, want interface{}) {
	t.Helper()
	Equate(t, got, want)
}

// ExpectInequality fails the test if got and want are equal.
func ExpectInequality(t *testing.T, got, want interface{}) {
	t.Helper()
	if reflect.DeepEqual(got, want) {
		t.Errorf("unexpected equality: %v and %v are equal", got, want)
	}
}

// ExpectApproximate fails the test if got and want differ by more than
// tolerance, expressed as a fraction of want (0.1 allows a 10% difference).
func ExpectApproximate(t *testing.T, got, want, tolerance float64) {
	t.Helper()
	diff := got - want
	if diff < 0 {
		diff = -diff
	}
	limit := want * tolerance
	if limit < 0 {
		limit = -limit
	}
	if diff > limit {
		t.Errorf("values not approximately equal: %v and %v (tolerance %v)", got, want, tolerance)
	}
}

// CappedWriter accumulates writes up to a fixed capacity and silently
// discards anything beyond it.
type CappedWriter struct {
	buf   []byte
	limit int
}

// NewCappedWriter creates a CappedWriter with the given byte limit.
func NewCappedWriter(limit int) (*CappedWriter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("capped writer: limit must be greater than zero")
	}
	return &CappedWriter{limit: limit}, nil
}

// Write implements io.Writer. Bytes beyond the configured limit are dropped.
func (c *CappedWriter) Write(p []byte) (int, error) {
	room := c.limit - len(c.buf)
	if room <= 0 {
		return len(p), nil
	}
	if room > len(p) {
		room = len(p)
	}
	c.buf = append(c.buf, p[:room]...)
	return len(p), nil
}

// String returns the bytes written so far.
func (c *CappedWriter) String() string {
	return string(c.buf)
}

// Reset empties the writer.
func (c *CappedWriter) Reset() {
	c.buf = c.buf[:0]
}

// RingWriter retains only the most recently written bytes, up to a fixed
// capacity, overwriting the oldest content first.
type RingWriter struct {
	buf   []byte
	limit int
}

// NewRingWriter creates a RingWriter with the given byte capacity.
func NewRingWriter(limit int) (*RingWriter, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("ring writer: limit must be greater than zero")
	}
	return &RingWriter{limit: limit}, nil
}

// Write implements io.Writer, always succeeding and retaining only the
// trailing limit bytes of everything ever written.
func (r *RingWriter) Write(p []byte) (int, error) {
	r.buf = append(r.buf, p...)
	if len(r.buf) > r.limit {
		r.buf = r.buf[len(r.buf)-r.limit:]
	}
	return len(p), nil
}

// String returns the most recently written window of bytes.
func (r *RingWriter) String() string {
	return string(r.buf)
}

// Reset empties the writer.
func (r *RingWriter) Reset() {
	r.buf = r.buf[:0]
}
