package asn1rt

/*
evt.go contains EventType constants which are (only) used
for debugging when this package was built or run with the
"-tags asn1_debug" flag.
*/

/*
EventType describes a specific kind of [Tracer] event. see the
[EventType] constants for a full list and descriptions.

Note that this type and all of its constants are only meaningful
if/when this package was run or built with the "-tags asn1_debug"
flag. Otherwise, they can be ignored entirely.
*/
type EventType int

const (
	EventNone EventType = 0     // NO events
	EventAll  EventType = 65535 // ALL events (use with extreme caution)
)

const (
	EventEnter      EventType = 1 << iota //     1: Called-function begin
	EventInfo                             //     2: Interim function event
	EventExit                             //     4: Called function exit
	EventIO                               //     8: Called function inputs/outputs
	EventTLV                              //    16: TLV ops
	EventBER                              //    32: BER kind dispatch
	EventPER                              //    64: PER kind dispatch and bit offsets
	EventSchema                           //   128: Module definitions and index builds
	EventChoice                           //   256: ASN.1 CHOICE ops
	EventConstraint                       //   512: Value binding and constraint checks
	EventTrace                            //  1024: Low-level ops
	_                                     //  2048: unassigned
	_                                     //  4096: unassigned
	_                                     //  8192: unassigned
	_                                     // 16384: unassigned
	_                                     // 32768: unassigned
)

/*
eventNames maps single [EventType] bits to the names accepted in the
debug environment variable.
*/
var eventNames = map[EventType]string{
	EventAll:        "all",
	EventNone:       "none",
	EventEnter:      "enter",
	EventInfo:       "info",
	EventExit:       "exit",
	EventIO:         "io",
	EventTLV:        "tlv",
	EventBER:        "ber",
	EventPER:        "per",
	EventSchema:     "schema",
	EventChoice:     "choice",
	EventConstraint: "constraint",
	EventTrace:      "trace",
}

/*
String returns the name of a single-bit receiver, or its decimal form.
*/
func (r EventType) String() string {
	if s, ok := eventNames[r]; ok {
		return s
	}
	return itoa(int(r))
}
