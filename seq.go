package asn1rt

/*
seq.go contains the BER and PER handling of the ASN.1 SEQUENCE and SET
types, including OPTIONAL/DEFAULT presence, extension additions and
extension groups.
*/

/*
present returns the value of component comp within rec along with a
Boolean value indicative of it being encoded: absent components and
components equal to their DEFAULT are not.
*/
func present(comp *Node, rec Record) (Value, bool) {
	v, ok := rec[comp.Name]
	if !ok || v == nil || isDefault(comp, v) {
		return nil, false
	}
	return v, true
}

/*
finishRecord fills absent DEFAULT components of rec and reports the
first absent mandatory root component.
*/
func finishRecord(n *Node, ix *indices, rec Record) error {
	for _, name := range ix.rootComponents {
		if _, ok := rec[name]; ok {
			continue
		}
		comp := n.Components[ix.byName[name]]
		switch {
		case comp.Flag == FlagDefault:
			rec[name] = comp.Default
		case comp.Flag != FlagOptional:
			return errorMissingComponent(n.label(), name)
		}
	}

	for _, name := range ix.extensionFlat {
		if _, ok := rec[name]; !ok {
			if d := defaultOf(n.Components[ix.byName[name]]); d != nil {
				rec[name] = d
			}
		}
	}
	return nil
}

/*
isOpenComponent returns a Boolean value indicative of comp resolving
to an OPEN type.
*/
func isOpenComponent(comp *Node) bool {
	r, err := comp.resolve()
	return err == nil && r.Kind == KindOpen
}

/*
encodeRecord returns the BER content octets of a SEQUENCE or SET: the
TLVs of the present components, root components first, then extension
additions, each in declared order.
*/
func (c *berCodec) encodeRecord(n *Node, rec Record) (out []byte, err error) {
	debugEnter(newLItem(n, "record"))
	defer func() { debugExit(newLItem(len(out), "len"), newLItem(err, "err")) }()

	ix, err := n.index()
	if err != nil {
		return nil, err
	}

	for _, name := range ix.order() {
		comp := n.Components[ix.byName[name]]
		v, ok := present(comp, rec)
		if !ok {
			continue
		}

		var b []byte
		if b, err = c.encode(comp, v); err != nil {
			if c.perm.tolerate(err) {
				err = nil
				continue
			}
			return nil, err
		}
		out = append(out, b...)
	}
	return
}

/*
decodeMember decodes component comp from the head of data. OPEN
components are resolved against the components already decoded.
*/
func (c *berCodec) decodeMember(comp *Node, data []byte, rec Record) (Value, int, error) {
	if isOpenComponent(comp) {
		r, _ := comp.resolve()
		return c.decodeOpen(r, data, openTarget(comp, rec))
	}
	return c.decode(comp, data)
}

/*
decodeSequence walks the components of n in encoding order. An
OPTIONAL, DEFAULT or extension component whose tag does not match the
next TLV is taken as absent. Trailing unknown TLVs are skipped when n
is extensible.
*/
func (c *berCodec) decodeSequence(n *Node, content []byte) (Value, error) {
	ix, err := n.index()
	if err != nil {
		return nil, err
	}

	rec := make(Record)
	pos := 0
	for _, name := range ix.order() {
		if pos >= len(content) {
			break
		}
		comp := n.Components[ix.byName[name]]

		var t TLV
		if t, _, err = readTLV(content[pos:]); err != nil {
			return c.partial(rec, err)
		}
		optional := comp.Flag.absentable() || ix.isExtension(name)
		if optional && !c.matches(comp, t) {
			continue
		}

		var v Value
		var used int
		if v, used, err = c.decodeMember(comp, content[pos:], rec); err != nil {
			return c.partial(rec, err)
		}
		rec[name] = v
		pos += used
	}

	if err = c.skipUnknown(n, content[pos:]); err != nil {
		return c.partial(rec, err)
	}
	if err = finishRecord(n, ix, rec); err != nil {
		return c.partial(rec, err)
	}
	return rec, nil
}

/*
decodeSet matches each TLV of content to a component of n by tag,
in any order.
*/
func (c *berCodec) decodeSet(n *Node, content []byte) (Value, error) {
	ix, err := n.index()
	if err != nil {
		return nil, err
	}

	rec := make(Record)
	for pos := 0; pos < len(content); {
		t, total, err := readTLV(content[pos:])
		if err != nil {
			return c.partial(rec, err)
		}

		path, known := ix.tagLookup[tagKey{class: t.Class, number: t.Tag}]
		if !known {
			if !n.Extensible {
				return c.partial(rec, decodingErrorf(n.label(), ": unknown SET component tag ",
					tagKey{class: t.Class, number: t.Tag}))
			}
			pos += total
			continue
		}

		name := path[0]
		if _, dup := rec[name]; dup {
			return c.partial(rec, decodingErrorf(n.label(), ": duplicate SET component ", name))
		}

		v, used, err := c.decodeMember(n.Components[ix.byName[name]], content[pos:], rec)
		if err != nil {
			return c.partial(rec, err)
		}
		rec[name] = v
		pos += used
	}

	if err = finishRecord(n, ix, rec); err != nil {
		return c.partial(rec, err)
	}
	return rec, nil
}

/*
skipUnknown consumes the TLVs left over after the known components of
n. They are only permitted when n is extensible.
*/
func (c *berCodec) skipUnknown(n *Node, rest []byte) error {
	for pos := 0; pos < len(rest); {
		if !n.Extensible {
			return errorTrailingData
		}
		_, total, err := readTLV(rest[pos:])
		if err != nil {
			return err
		}
		debugBER(newLItem(total, "skipped unknown addition"))
		pos += total
	}
	return nil
}

/*
partial returns the components decoded so far. The error is
suppressed, and recorded, in permissive mode.
*/
func (c *berCodec) partial(rec Record, err error) (Value, error) {
	if c.perm.tolerate(err) {
		return rec, nil
	}
	return rec, err
}

/*
additionPresence returns, per extension addition of n, whether it is
encoded. A group is present when any of its members is.
*/
func additionPresence(n *Node, ix *indices, rec Record) (bits []bool, anyPresent bool, err error) {
	bits = make([]bool, len(n.Additions))
	lastPresent := -1
	for gi, a := range n.Additions {
		for _, name := range a.Names {
			if _, ok := present(n.Components[ix.byName[name]], rec); ok {
				bits[gi] = true
			}
		}
		if bits[gi] {
			lastPresent, anyPresent = gi, true
		}
	}

	for gi, a := range n.Additions {
		if gi >= lastPresent {
			break
		} else if bits[gi] || a.Group {
			continue
		}
		if comp := n.Components[ix.byName[a.Names[0]]]; !comp.Flag.absentable() {
			return nil, false, errorBadExtOrder
		}
	}
	return
}

/*
rootOrder returns the PER order of the root components of n: canonical
tag order for SET, declaration order otherwise.
*/
func rootOrder(n *Node, ix *indices) []string {
	if n.Kind == KindSet {
		return ix.perOrder
	}
	return ix.rootComponents
}

/*
encodeRecord appends a PER SEQUENCE or SET: the extension bit, the
presence bitmap of the OPTIONAL/DEFAULT root components, the present
root components, then, when any addition is present, the addition
count as a normally small length, the addition bitmap and each
present addition as an open type.
*/
func (c *perCodec) encodeRecord(buf *BitBuffer, off int, n *Node, rec Record) (_ int, err error) {
	debugEnter(newLItem(n, "record"), newLItem(off, "off"))
	defer func() { debugExit(newLItem(err, "err")) }()

	ix, err := n.index()
	if err != nil {
		return off, err
	}

	var extBits []bool
	var anyExt bool
	if n.Extensible {
		if extBits, anyExt, err = additionPresence(n, ix, rec); err != nil {
			return off, err
		}
		off = c.putBit(buf, off, anyExt)
	}

	order := rootOrder(n, ix)
	for _, name := range order {
		if comp := n.Components[ix.byName[name]]; comp.Flag.absentable() {
			_, ok := present(comp, rec)
			off = c.putBit(buf, off, ok)
		}
	}

	for _, name := range order {
		comp := n.Components[ix.byName[name]]
		v, ok := present(comp, rec)
		if !ok {
			if comp.Flag.absentable() {
				continue
			}
			return off, errorMissingComponent(n.label(), name)
		}
		if off, err = c.encode(buf, off, comp, v); err != nil {
			return off, err
		}
	}

	if !anyExt {
		return off, nil
	}

	if off, err = c.putNSLength(buf, off, len(n.Additions)); err != nil {
		return off, err
	}
	for _, set := range extBits {
		off = c.putBit(buf, off, set)
	}

	for gi, a := range n.Additions {
		if !extBits[gi] {
			continue
		}

		var content []byte
		if a.Group {
			content, err = c.encodeNested(ix.groupNodes[gi], groupRecord(a, rec))
		} else {
			comp := n.Components[ix.byName[a.Names[0]]]
			content, err = c.encodeNested(comp, rec[comp.Name])
		}
		if err != nil {
			return off, err
		}
		if off, err = c.putOpen(buf, off, content); err != nil {
			return off, err
		}
	}

	return off, nil
}

func groupRecord(a Addition, rec Record) Record {
	g := make(Record)
	for _, name := range a.Names {
		if v, ok := rec[name]; ok {
			g[name] = v
		}
	}
	return g
}

/*
decodeMember decodes component comp at off. OPEN components are
resolved against the components already decoded.
*/
func (c *perCodec) decodeMember(buf *BitBuffer, off int, comp *Node, rec Record) (Value, int, error) {
	if isOpenComponent(comp) {
		r, _ := comp.resolve()
		return c.decodeOpen(buf, off, r, openTarget(comp, rec))
	}
	return c.decode(buf, off, comp)
}

func (c *perCodec) decodeRecord(buf *BitBuffer, off int, n *Node) (_ Value, _ int, err error) {
	debugEnter(newLItem(n, "record"), newLItem(off, "off"))
	defer func() { debugExit(newLItem(err, "err")) }()

	ix, err := n.index()
	if err != nil {
		return nil, off, err
	}

	var hasExt bool
	if n.Extensible {
		if hasExt, off, err = c.getBit(buf, off); err != nil {
			return nil, off, err
		}
	}

	order := rootOrder(n, ix)
	presence := make(map[string]bool)
	for _, name := range order {
		if n.Components[ix.byName[name]].Flag.absentable() {
			var set bool
			if set, off, err = c.getBit(buf, off); err != nil {
				return nil, off, err
			}
			presence[name] = set
		}
	}

	rec := make(Record)
	for _, name := range order {
		comp := n.Components[ix.byName[name]]
		if set, optional := presence[name]; optional && !set {
			continue
		}
		var v Value
		if v, off, err = c.decodeMember(buf, off, comp, rec); err != nil {
			return rec, off, err
		}
		rec[name] = v
	}

	if hasExt {
		if off, err = c.decodeAdditions(buf, off, n, ix, rec); err != nil {
			return rec, off, err
		}
	}

	return rec, off, finishRecord(n, ix, rec)
}

/*
decodeAdditions consumes the extension addition bitmap and the present
additions. Additions beyond those known to n are skipped.
*/
func (c *perCodec) decodeAdditions(buf *BitBuffer, off int, n *Node, ix *indices, rec Record) (int, error) {
	count, off, err := c.getNSLength(buf, off)
	if err != nil {
		return off, err
	}

	bits := make([]bool, count)
	for i := range bits {
		if bits[i], off, err = c.getBit(buf, off); err != nil {
			return off, err
		}
	}

	for gi, set := range bits {
		if !set {
			continue
		}

		var content []byte
		if content, off, err = c.getOpen(buf, off); err != nil {
			return off, err
		}
		if gi >= len(n.Additions) {
			debugPER(newLItem(gi, "skipped unknown addition"))
			continue
		}

		a := n.Additions[gi]
		if a.Group {
			var g Value
			if g, err = c.decodeNested(ix.groupNodes[gi], content); err != nil {
				return off, err
			}
			for k, v := range g.(Record) {
				rec[k] = v
			}
			continue
		}

		comp := n.Components[ix.byName[a.Names[0]]]
		var v Value
		if v, _, err = c.decodeMember(NewBitBuffer(content...), 0, comp, rec); err != nil {
			return off, err
		}
		rec[comp.Name] = v
	}

	return off, nil
}
