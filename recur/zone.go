package recur

import "time"

// AttachZone converts a naive (location-agnostic) date-time into a zoned
// occurrence in loc, applying the engine's DST policy: a wall clock inside
// a spring-forward gap is moved forward by the length of the gap (02:30 in
// a one-hour gap becomes 03:30 at the new offset), and a wall clock that
// occurs twice in a fall-back overlap resolves to the earlier instant.
// time.Date alone does not guarantee either choice (which side it picks
// depends on the zone), so AttachZone checks its result and corrects it.
func AttachZone(naive time.Time, loc *time.Location) time.Time {
	y, mo, d := naive.Date()
	h, mi, s := naive.Clock()
	t := time.Date(y, mo, d, h, mi, s, naive.Nanosecond(), loc)
	wall := time.Date(y, mo, d, h, mi, s, naive.Nanosecond(), time.UTC)
	if got := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC); got.Before(wall) {
		return t.Add(wall.Sub(got)) // gap: time.Date fell back before it
	}
	_, off := t.Zone()
	if _, prevOff := t.Add(-24 * time.Hour).Zone(); prevOff > off {
		// Possible overlap: the same wall clock at the earlier offset.
		if e := t.Add(-time.Duration(prevOff-off) * time.Second); e.Hour() == h && e.Minute() == mi && e.Second() == s {
			return e
		}
	}
	return t
}

// AttachZoneIterator wraps an Iterator, attaching loc to every emitted
// Actual/Observed instant. The underlying Iterator keeps advancing in naive
// time; zone attachment is applied only at the boundary, per the engine's
// naive/zoned separation.
type AttachZoneIterator struct {
	inner *Iterator
	loc   *time.Location
}

// InZone wraps it so every emitted NextResult is expressed in loc.
func InZone(it *Iterator, loc *time.Location) *AttachZoneIterator {
	return &AttachZoneIterator{inner: it, loc: loc}
}

// Next delegates to the wrapped Iterator and attaches the zone to the
// result.
func (z *AttachZoneIterator) Next() (*NextResult, error) {
	result, err := z.inner.Next()
	if err != nil || result == nil {
		return result, err
	}
	zoned := NextResult{
		Kind:     result.Kind,
		Actual:   AttachZone(result.Actual, z.loc),
		Observed: AttachZone(result.Observed, z.loc),
	}
	return &zoned, nil
}

// Take pulls up to n zoned occurrences.
func (z *AttachZoneIterator) Take(n int) ([]NextResult, error) {
	out := make([]NextResult, 0, n)
	for i := 0; i < n; i++ {
		r, err := z.Next()
		if err != nil {
			return out, err
		}
		if r == nil {
			break
		}
		out = append(out, *r)
	}
	return out, nil
}
