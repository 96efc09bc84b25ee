//go:build asn1_debug

package asn1rt

/*
loglevels implements the [EventType] bit mask consulted by the
[DefaultTracer].
*/
type loglevels struct {
	v *uint16
}

func newLoglevels() (bv loglevels) {
	bv.v = new(uint16)
	return
}

/*
enabled returns the names of the bits set within the receiver.
*/
func (r loglevels) enabled() (names []string) {
	if r.v == nil || *r.v == 0 {
		return []string{"none"}
	} else if *r.v == ^uint16(0) {
		return []string{"all"}
	}

	for i := 0; i < 16; i++ {
		if d := EventType(1 << i); r.positive(d) {
			names = append(names, d.String())
		}
	}
	return
}

/*
Shift enables each of x, given as an [EventType], an int or an event
name.
*/
func (r *loglevels) Shift(x ...any) loglevels {
	for _, xi := range x {
		if X, ok := toEventType(xi); ok && r.v != nil {
			*r.v |= uint16(X)
		}
	}
	return *r
}

/*
Unshift disables each of x.
*/
func (r *loglevels) Unshift(x ...any) loglevels {
	for _, xi := range x {
		if X, ok := toEventType(xi); ok && r.v != nil {
			*r.v &^= uint16(X)
		}
	}
	return *r
}

/*
Positive returns a Boolean value indicative of any bit of x being
enabled.
*/
func (r loglevels) Positive(x any) bool {
	X, ok := toEventType(x)
	return ok && r.positive(X)
}

func (r loglevels) positive(x EventType) bool {
	return r.v != nil && (*r.v)&uint16(x) != 0
}

func toEventType(x any) (EventType, bool) {
	var v int
	switch tv := x.(type) {
	case EventType:
		v = int(tv)
	case int:
		v = tv
	case string:
		for ev, name := range eventNames {
			if streq(name, trimS(tv)) {
				return ev, true
			}
		}
		return EventNone, false
	default:
		return EventNone, false
	}

	if v < 0 || v > int(EventAll) {
		return EventNone, false
	}
	return EventType(v), true
}
