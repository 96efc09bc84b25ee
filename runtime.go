package asn1rt

/*
runtime.go contains the exported package-level encoding/decoding
functions and associated private helpers.
*/

/*
Encode returns the encoding of v as a value of n, alongside an error.

The variadic [EncodingOption] input value is used to further user control using
one or more of:

  - [EncodingRule] (e.g.: [BER], [APER])
  - [Options] (e.g.: to emit indefinite lengths, or to enable permissive mode)

If an encoding rule is not specified, [Options.Rule] is used, and [BER] when
that is unset as well.

v is bound to n with [Bind] before anything is written; a [ValueError] or
[ConstraintViolation] from binding is returned as-is, permissive mode or not.
A nil v encodes the value of a ModeValue node.

See also [Decode].
*/
func Encode(n *Node, v Value, options ...EncodingOption) (out []byte, err error) {
	cfg := newEncodingConfig(options)

	if n == nil {
		return nil, errorNilNode
	} else if n.Mode == ModeValueSet || n.Kind == KindClass {
		return nil, errorValueMode
	}

	debugEnter(newLItem(n, "encode"), newLItem(cfg.rule, "rule"))
	defer func() { debugExit(newLItem(len(out), "octets"), newLItem(err, "err")) }()

	var b Bound
	if b, err = Bind(n, v); err != nil {
		return nil, err
	}

	perm := &permissive{on: cfg.opts.Permissive}
	switch cfg.rule {
	case BER:
		out, err = newBERCodec(cfg.opts, perm).encode(n, b.Value)
	case APER, UPER:
		buf := NewBitBuffer()
		_, err = newPERCodec(cfg.rule, cfg.opts, perm).encode(buf, 0, n, b.Value)
		if out = buf.Bytes(); len(out) == 0 {
			// a complete encoding is never empty
			out = []byte{0x00}
		}
	default:
		err = errorNoRule
	}

	return perm.finish(out, err)
}

/*
Decode returns the value of n encoded at the head of data and the number of
octets consumed, alongside an error. Trailing octets are left to the caller.

The variadic [EncodingOption] input value behaves as described for [Encode].
In permissive mode, the partial value decoded before the first failure is
returned together with a [*PermissiveError].

See also [Encode].
*/
func Decode(n *Node, data []byte, options ...EncodingOption) (v Value, consumed int, err error) {
	cfg := newEncodingConfig(options)

	if n == nil {
		return nil, 0, errorNilNode
	} else if n.Mode == ModeValueSet || n.Kind == KindClass {
		return nil, 0, errorValueMode
	} else if len(data) == 0 {
		return nil, 0, errorTruncated
	}

	debugEnter(newLItem(n, "decode"), newLItem(cfg.rule, "rule"),
		newLItem(len(data), "octets"))
	defer func() { debugExit(newLItem(consumed, "consumed"), newLItem(err, "err")) }()

	perm := &permissive{on: cfg.opts.Permissive}
	switch cfg.rule {
	case BER:
		v, consumed, err = newBERCodec(cfg.opts, perm).decode(n, data)
	case APER, UPER:
		var off int
		v, off, err = newPERCodec(cfg.rule, cfg.opts, perm).decode(NewBitBuffer(data...), 0, n)
		if consumed = (off + 7) / 8; consumed == 0 {
			consumed = 1
		}
	default:
		return nil, 0, errorNoRule
	}

	if err != nil && !perm.on {
		return nil, 0, err
	}
	_, err = perm.finish(nil, err)
	return
}

/*
permissive collects the errors suppressed during a single codec call.
*/
type permissive struct {
	on   bool
	errs []error
}

/*
tolerate returns a Boolean value indicative of err having been
suppressed, which only happens in permissive mode.
*/
func (r *permissive) tolerate(err error) bool {
	if r == nil || !r.on || err == nil {
		return false
	}
	debugInfo(newLItem(err, "suppressed"))
	r.errs = append(r.errs, err)
	return true
}

/*
finish returns out alongside the outcome of the call: err as-is when
not in permissive mode, otherwise a [*PermissiveError] covering every
suppressed error, including err.
*/
func (r *permissive) finish(out []byte, err error) ([]byte, error) {
	if !r.on {
		if err != nil {
			return nil, err
		}
		return out, nil
	}

	r.tolerate(err)
	if len(r.errs) > 0 {
		return out, &PermissiveError{Suppressed: r.errs}
	}
	return out, nil
}
