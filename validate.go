package asn1rt

/*
validate.go implements value binding: the validation of a Value
against a Node prior to encoding.
*/

/*
Bound implements the pairing of a schema [Node] with a [Value] which
has been checked against it. The value is normalized: DEFAULT values
of absent components are filled in, absent mandatory NULL components
are supplied, empty lists are nil and open type values carry the type
selected through their information object set.
*/
type Bound struct {
	Node  *Node
	Value Value
}

/*
Bind checks v against n and returns the normalized pairing. A value
whose shape does not fit the kind of n yields a [ValueError]; a value
outside of a non-extensible constraint yields a [ConstraintViolation].
Extensible constraints are never enforced. A nil v is replaced by the
value of a ModeValue node.
*/
func Bind(n *Node, v Value) (Bound, error) {
	if n == nil {
		return Bound{}, errorNilNode
	}
	if v == nil && n.Mode == ModeValue {
		v = n.Value
	}

	debugConstraint(newLItem(n, "bind"), newLItem(valueString(v), "value"))

	out, err := bind(n, v)
	if err != nil {
		return Bound{}, err
	}
	return Bound{Node: n, Value: out}, nil
}

func bind(n *Node, v Value) (Value, error) {
	r, err := n.resolve()
	if err != nil {
		return nil, err
	} else if v == nil {
		return nil, valueErrorf(r.label(), ": ", errorNilValue.e)
	}

	if r.Mode == ModeValueSet {
		return bindSetMember(r, v)
	}

	out, err := bindShape(r, v)
	if err != nil {
		return nil, err
	}

	if err = r.constraintChecks().Constrain(out); err != nil {
		if cv, ok := err.(ConstraintViolation); ok {
			err = cv.e
		}
		return nil, constraintViolationf(r.label(), ": ", err)
	}
	return out, nil
}

/*
bindShape checks the Go type of v against the kind of n and descends
into composite values.
*/
func bindShape(n *Node, v Value) (Value, error) {
	switch n.Kind {
	case KindNull:
		if _, ok := v.(Null); ok {
			return v, nil
		}
	case KindBoolean:
		if _, ok := v.(Boolean); ok {
			return v, nil
		}
	case KindInteger:
		if _, ok := v.(Integer); ok {
			return v, nil
		}
	case KindEnumerated:
		if e, ok := v.(Enumerated); ok {
			return bindEnumerated(n, e)
		}
	case KindBitString:
		switch tv := v.(type) {
		case BitString:
			return tv, tv.validate()
		case Contained:
			return bindContained(n, tv)
		}
	case KindOctetString:
		switch tv := v.(type) {
		case OctetString:
			return tv, nil
		case Contained:
			return bindContained(n, tv)
		}
	case KindUTF8String, KindNumericString, KindPrintableString,
		KindIA5String, KindVisibleString, KindBMPString:
		if s, ok := v.(String); ok {
			return s, validateString(n.Kind, s)
		}
	case KindOID:
		if o, ok := v.(ObjectIdentifier); ok {
			return o, o.validate()
		}
	case KindChoice:
		return bindChoice(n, v)
	case KindSequence, KindSet:
		if rec, ok := v.(Record); ok {
			return bindRecord(n, rec)
		}
	case KindSequenceOf, KindSetOf:
		if list, ok := v.(List); ok {
			return bindList(n, list)
		}
	case KindOpen:
		if o, ok := v.(Open); ok {
			return bindOpen(n, o)
		}
	case KindClass:
		if obj, ok := v.(Object); ok {
			return bindObject(n, obj)
		}
	case KindSelfRef:
		return nil, errorUnresolved(n.TypeRef)
	}

	return nil, errorKindMismatch(n, v)
}

func bindEnumerated(n *Node, e Enumerated) (Value, error) {
	if _, ok := n.Number(string(e)); !ok {
		return nil, valueErrorf(n.label(), ": unknown ENUMERATED item ", string(e))
	}
	return e, nil
}

/*
sameType returns a Boolean value indicative of a and b denoting the
same type, either by identity or by reference name.
*/
func sameType(a, b *Node) bool {
	if a == b {
		return true
	} else if a == nil || b == nil {
		return false
	}

	names := func(x *Node) (out []string) {
		for _, s := range []string{x.Name, x.TypeRef} {
			if s != "" {
				out = append(out, s)
			}
		}
		return
	}
	for _, x := range names(a) {
		if strInSlice(x, names(b)) {
			return true
		}
	}
	return false
}

func bindContained(n *Node, cv Contained) (Value, error) {
	target := n.containing()
	if target == nil {
		return nil, errorKindMismatch(n, cv)
	} else if cv.Type != nil && !sameType(cv.Type, target) {
		return nil, constraintViolationf(n.label(), ": ", errorContainingType.e,
			" (", cv.Type.label(), " is not ", target.label(), ")")
	}

	inner, err := bind(target, cv.Value)
	if err != nil {
		return nil, err
	}
	return Contained{Type: target, Value: inner}, nil
}

func bindChoice(n *Node, v Value) (Value, error) {
	switch tv := v.(type) {
	case Choice:
		alt, err := choiceAlternative(n, tv)
		if err != nil {
			return nil, err
		}
		inner, err := bind(alt, tv.Value)
		if err != nil {
			return nil, err
		}
		return Choice{Name: tv.Name, Value: inner}, nil
	case UnknownAlternative:
		if !n.Extensible {
			return nil, valueErrorf(n.label(), ": unknown alternative for a non-extensible CHOICE")
		} else if len(tv.Raw) == 0 {
			return nil, valueErrorf(n.label(), ": unknown alternative without an encoding")
		}
		return tv, nil
	}
	return nil, errorKindMismatch(n, v)
}

func bindList(n *Node, list List) (Value, error) {
	if len(list) == 0 {
		return List(nil), nil
	}

	out := make(List, len(list))
	for i, elem := range list {
		bv, err := bind(n.Of, elem)
		if err != nil {
			return nil, err
		}
		out[i] = bv
	}
	return out, nil
}

/*
bindOpen validates an open type value. A value bearing a type is
bound to it; a raw value passes as-is.
*/
func bindOpen(n *Node, o Open) (Value, error) {
	if o.Value == nil {
		if len(o.Raw) == 0 {
			return nil, valueErrorf(n.label(), ": open type value without content")
		}
		return o, nil
	} else if o.Type == nil {
		return nil, valueErrorf(n.label(), ": open type value ",
			valueString(o.Value), " has no type")
	}

	inner, err := bind(o.Type, o.Value)
	if err != nil {
		return nil, err
	}
	return Open{Type: o.Type, Value: inner}, nil
}

/*
bindRecord checks the components of rec against SEQUENCE or SET n.
Open components are bound last, once the sibling selecting their
type is known.
*/
func bindRecord(n *Node, rec Record) (Value, error) {
	ix, err := n.index()
	if err != nil {
		return nil, err
	}

	out := make(Record, len(rec))
	var open []string
	for name, cv := range rec {
		comp, ok := n.Component(name)
		if !ok {
			return nil, errorUnknownComponent(n.label(), name)
		} else if cv == nil {
			continue
		} else if isOpenComponent(comp) {
			open = append(open, name)
			continue
		}

		if out[name], err = bind(comp, cv); err != nil {
			return nil, err
		}
	}

	for _, name := range open {
		comp, _ := n.Component(name)
		o, ok := rec[name].(Open)
		if !ok {
			o = Open{Value: rec[name]}
		}

		if target := openTarget(comp, out); target != nil {
			if o.Type != nil && !sameType(o.Type, target) {
				return nil, constraintViolationf(n.label(), ": component ", name,
					" holds ", o.Type.label(), " where the object set selects ",
					target.label())
			}
			o.Type = target
		}

		if out[name], err = bind(comp, o); err != nil {
			return nil, err
		}
	}

	if err = completeRoot(n, ix, out); err != nil {
		return nil, err
	}
	return out, completeAdditions(n, ix, out)
}

/*
completeRoot fills absent DEFAULT and NULL root components of rec and
reports the first other absent mandatory root component.
*/
func completeRoot(n *Node, ix *indices, rec Record) error {
	for _, name := range ix.rootComponents {
		if _, ok := rec[name]; ok {
			continue
		}
		if !fillAbsent(n.Components[ix.byName[name]], rec) {
			return errorAbsentComponent(n.label(), name)
		}
	}
	return nil
}

/*
completeAdditions applies the presence rules of extension additions:
absent DEFAULT values are filled and a group which is present at all
must carry all of its mandatory members.
*/
func completeAdditions(n *Node, ix *indices, rec Record) error {
	for _, a := range n.Additions {
		if !a.Group {
			comp := n.Components[ix.byName[a.Names[0]]]
			if _, ok := rec[comp.Name]; !ok && comp.Flag == FlagDefault {
				rec[comp.Name] = comp.Default
			}
			continue
		}

		var seen bool
		for _, name := range a.Names {
			if _, ok := rec[name]; ok {
				seen = true
				break
			}
		}

		for _, name := range a.Names {
			if _, ok := rec[name]; ok {
				continue
			}
			comp := n.Components[ix.byName[name]]
			if comp.Flag == FlagDefault {
				rec[name] = comp.Default
			} else if seen && !fillAbsent(comp, rec) {
				return errorAbsentComponent(n.label(), name)
			}
		}
	}
	return nil
}

/*
fillAbsent supplies the value of an absent component which needs no
caller input: its DEFAULT, or NULL. It returns false when comp is a
mandatory component of any other kind.
*/
func fillAbsent(comp *Node, rec Record) bool {
	switch comp.Flag {
	case FlagOptional:
		return true
	case FlagDefault:
		rec[comp.Name] = comp.Default
		return true
	}

	if r, err := comp.resolve(); err == nil && r.Kind == KindNull {
		rec[comp.Name] = Null{}
		return true
	}
	return false
}

/*
bindSetMember binds v against value set n. Information objects are
checked against the class fields; any other value must be a member of
the set.
*/
func bindSetMember(n *Node, v Value) (Value, error) {
	if vs, ok := v.(ValueSet); ok {
		var out ValueSet
		for _, grp := range []struct {
			in  []Value
			out *[]Value
		}{{vs.Root, &out.Root}, {vs.Extension, &out.Extension}} {
			for _, x := range grp.in {
				bx, err := bindSetMember(n, x)
				if err != nil {
					return nil, err
				}
				*grp.out = append(*grp.out, bx)
			}
		}
		return out, nil
	}

	if n.Kind == KindClass {
		obj, ok := v.(Object)
		if !ok {
			return nil, errorKindMismatch(n, v)
		}
		return bindObject(n, obj)
	}

	typ := n.Clone()
	typ.Mode = ModeType
	typ.Set = nil
	typ.parent = n.parent
	out, err := bind(typ, v)
	if err != nil {
		return nil, err
	}

	if n.Set != nil {
		for _, x := range append(append([]Value(nil), n.Set.Root...), n.Set.Extension...) {
			if Equal(x, out) {
				return out, nil
			}
		}
		return nil, constraintViolationf(n.label(), ": ", valueString(out),
			" is not a member of the value set")
	}
	return out, nil
}
