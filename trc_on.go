//go:build asn1_debug

package asn1rt

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"sync"
	"time"
)

/*
EnvDebugVar defines the environment variable name which can
be leveraged to invoke or disable use of the [DefaultTracer]
[Tracer] qualifier. Its value is a comma-separated list of
event names or numbers, e.g. "enter,exit,per".

Use sparingly in high-volume/performance-sensitive scenarios.
*/
const EnvDebugVar = "ASN1RT_DEBUG"

/*
LevelTrace is the [slog.Level] at which the [DefaultTracer] writes
its records.
*/
const LevelTrace = slog.Level(-8)

const coreTracerMask = EventEnter | EventInfo | EventExit

/*
DefaultTracer is the package-level [Tracer] implementation. Records
are written as structured [slog] records.
*/
type DefaultTracer struct {
	mu     sync.Mutex
	logger *slog.Logger
	ll     loglevels
}

/*
NewDefaultTracer returns an instance of *[DefaultTracer]. The
input [io.Writer] value represents the writer interface type
to which text-formatted records shall be written.
*/
func NewDefaultTracer(writer io.Writer) *DefaultTracer {
	h := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: LevelTrace})
	return NewLoggerTracer(slog.New(h))
}

/*
NewLoggerTracer returns an instance of *[DefaultTracer] which writes
to logger.
*/
func NewLoggerTracer(logger *slog.Logger) *DefaultTracer {
	return &DefaultTracer{
		logger: logger.With(slog.String("component", "asn1rt")),
		ll:     newLoglevels(),
	}
}

/*
EnableLevel adds [EventType] ev to the collection of loglevels
to be used during debugging.

Note that this method can be used to override any such loglevels
activated via the [EnvDebugVar] environment variable at runtime.
*/
func (r *DefaultTracer) EnableLevel(ev EventType) { r.ll.Shift(ev) }

/*
DisableLevel removes [EventType] ev from the collection of loglevels
to be used during debugging.
*/
func (r *DefaultTracer) DisableLevel(ev EventType) { r.ll.Unshift(ev) }

/*
Enabled returns a Boolean value indicative of the specified
[EventType] being enabled within the receiver instance.
*/
func (r *DefaultTracer) Enabled(e EventType) bool {
	return r.ll.Positive(e)
}

/*
Trace writes [TraceRecord] rec to the logger handled by the
receiver instance. This method need not be executed by the end
user directly.
*/
func (r *DefaultTracer) Trace(rec TraceRecord) {
	if !r.ll.Positive(rec.Type) {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	attrs := []slog.Attr{
		slog.String("func", trimFuncName(rec.Func)),
		slog.String("event", (rec.Type &^ coreTracerMask).String()),
	}

	msg := "info"
	vals := rec.Args
	switch rec.Type & coreTracerMask {
	case EventEnter:
		msg = "enter"
	case EventExit:
		msg, vals = "exit", rec.Ret
	}
	for i, a := range vals {
		if li, ok := a.(labeledItem); ok && li.L != "" {
			attrs = append(attrs, slog.String(li.L, fmtArg(li.V)))
		} else {
			attrs = append(attrs, slog.String("arg"+itoa(i), fmtArg(a)))
		}
	}

	r.logger.LogAttrs(context.Background(), LevelTrace, msg, attrs...)
}

func trimFuncName(full string) string {
	if i := lidx(full, "/"); i >= 0 {
		return full[i+1:]
	}
	return full
}

/*
TraceRecord encapsulates metadata pertaining to a particular event
observed by a [Tracer]. This includes a [time.Time] timestamp, an
[EventType] as well as in/out arguments.
*/
type TraceRecord struct {
	Time time.Time // timestamp, i.e.: time.Now()
	Type EventType // event bits, including Enter, Info or Exit
	Func string    // FuncName -or- TypeName.MethodName
	Args []any     // On Enter and Info: parameters
	Ret  []any     // On Exit: return values
}

/*
Tracer implements an interface tracer type, which is implemented
by [DefaultTracer].
*/
type Tracer interface {
	Trace(TraceRecord)
}

type levelTracer interface {
	Tracer
	Enabled(EventType) bool
}

/*
EnableDebug registers and activates [Tracer] for debugging.

This function need not be called if an environment variable of
[EnvDebugVar] was read and successfully parsed at runtime.
*/
func EnableDebug(t Tracer) {
	tmu.Lock()
	defer tmu.Unlock()
	tracer = t
}

/*
DisableDebug disables [Tracer] debugging.
*/
func DisableDebug() {
	tmu.Lock()
	defer tmu.Unlock()
	tracer = &discardTracer{}
}

var (
	tmu    sync.RWMutex
	tracer Tracer = &discardTracer{} // default
)

type discardTracer struct{}

func (*discardTracer) Trace(_ TraceRecord)      {}
func (*discardTracer) Enabled(_ EventType) bool { return false }

func debugEvent(level EventType, args ...any) {
	tmu.RLock()
	t := tracer
	tmu.RUnlock()

	if lt, ok := t.(levelTracer); ok && !lt.Enabled(level) {
		return
	}

	fn := "unknown"
	if pc, _, _, ok := runtime.Caller(2); ok {
		fn = runtime.FuncForPC(pc).Name()
	}
	fn = replaceAll(fn, "go-asn1rt.", "")
	if cntns(fn, ".func") {
		fn = fn[:lidx(fn, ".")]
	}

	rec := TraceRecord{Time: time.Now(), Type: level, Func: fn}
	if level&EventExit != 0 {
		rec.Ret = args
	} else {
		rec.Args = args
	}
	t.Trace(rec)
}

func debugEnter(args ...any)      { debugEvent(EventEnter, args...) }
func debugExit(args ...any)       { debugEvent(EventExit, args...) }
func debugInfo(args ...any)       { debugEvent(EventInfo, args...) }
func debugTLV(args ...any)        { debugEvent(EventInfo|EventTLV, args...) }
func debugBER(args ...any)        { debugEvent(EventInfo|EventBER, args...) }
func debugPER(args ...any)        { debugEvent(EventInfo|EventPER, args...) }
func debugSchema(args ...any)     { debugEvent(EventInfo|EventSchema, args...) }
func debugChoice(args ...any)     { debugEvent(EventInfo|EventChoice, args...) }
func debugConstraint(args ...any) { debugEvent(EventInfo|EventConstraint, args...) }

// strictly for debugging.
type labeledItem struct {
	L string
	V any
}

func newLItem(value any, labels ...any) (li labeledItem) {
	li = labeledItem{V: value}
	var l []string
	for i := 0; i < len(labels); i++ {
		switch tv := labels[i].(type) {
		case EncodingRule:
			l = append(l, tv.String())
		case string:
			l = append(l, tv)
		}
	}

	li.L = join(l, ` `)

	return
}

func (r labeledItem) String() string {
	l := "<No label>"
	if r.L != "" {
		l = r.L
	}
	return l + ":" + fmtArg(r.V)
}

func fmtArg(x any) (s string) {
	switch v := x.(type) {
	case nil:
		s = "<nil>"
	case error:
		s = v.Error()
	case int:
		s = itoa(v)
	case string:
		s = v
	case bool:
		s = bool2str(v)
	case []byte:
		s = uc(hexstr(v))
	case labeledItem:
		s = v.String()
	case *Options:
		s = "<Empty Options>"
		if v != nil {
			s = v.String()
		}
	case Value:
		s = valueString(v)
	case TLV:
		s = "TLV: " + v.String()
	case interface{ String() string }:
		s = v.String()
	default:
		s = "<Unidentified>"
	}

	return
}

func init() {
	if evar := os.Getenv(EnvDebugVar); evar != "" {
		ll := newLoglevels()
		for _, name := range split(evar, ",") {
			if n, err := puint(trimS(name), 10, 16); err == nil {
				ll.Shift(int(n))
			} else {
				ll.Shift(name)
			}
		}

		dt := NewDefaultTracer(os.Stderr)
		dt.ll = ll
		EnableDebug(dt)
		debugInfo(newLItem(join(ll.enabled(), `,`), "loglevels"))
	}
}
