package asn1rt

/*
node.go contains the Node schema type and its helper constructors.
*/

/*
Node implements a single ASN.1 definition: a type, a single value or
a value set. Components own their children; the parent link is a
lookup aid only.

Only [RebuildIndices] writes to a Node. [Encode], [Decode] and [Bind]
read it, so one Node may serve any number of concurrent calls.
*/
type Node struct {
	Name        string        // identity, or the component name within a parent
	Mode        Mode          // type, single value or value set
	Kind        Kind          // basic kind
	Tag         *Tag          // explicit tagging; nil means the UNIVERSAL tag of Kind
	TypeRef     string        // name of the parent type, or the referenced name of a KindSelfRef marker
	Numbers     []NamedNumber // INTEGER named numbers, ENUMERATED items, BIT STRING named bits
	Components  []*Node       // CHOICE alternatives, SEQUENCE/SET components or CLASS fields
	Of          *Node         // inner type of SEQUENCE OF / SET OF
	Extensible  bool          // extension marker present
	Additions   []Addition    // ordered extension additions
	Constraints []Constraint  // PER-visible and validation-only constraints
	Flag        Flag          // OPTIONAL, DEFAULT or UNIQUE
	Default     Value         // default value when Flag is FlagDefault
	Value       Value         // value of a ModeValue node
	Set         *ValueSet     // values of a ModeValueSet node

	parent *Node
	module *Module
	idx    *indices
}

/*
NamedNumber associates an identifier with a number. It is used for
ENUMERATED items, named INTEGER values and named BIT STRING bits.
*/
type NamedNumber struct {
	Name   string
	Number int64
}

/*
Addition describes one extension addition. A group addition (the
[[ ... ]] notation) is present or absent as a unit.
*/
type Addition struct {
	Group bool
	Names []string
}

/*
SelfRef returns a self-reference marker bearing the component name
and the name of the referenced type. The marker is resolved through
the owning [Module] each time it is used.
*/
func SelfRef(name, ref string) *Node {
	return &Node{Name: name, Kind: KindSelfRef, TypeRef: ref}
}

/*
Field returns a component named name whose type is a copy of typ.
The original typ is left untouched, allowing a single type to be
shared by many parents.
*/
func Field(name string, typ *Node) *Node {
	f := typ.Clone()
	f.Name = name
	if typ.Name != "" && f.TypeRef == "" {
		f.TypeRef = typ.Name
	}
	return f
}

/*
Optional is a convenience wrapper around [Field] which flags the
result as OPTIONAL.
*/
func Optional(name string, typ *Node) *Node {
	f := Field(name, typ)
	f.Flag = FlagOptional
	return f
}

/*
Defaulted is a convenience wrapper around [Field] which flags the
result as DEFAULT def.
*/
func Defaulted(name string, typ *Node, def Value) *Node {
	f := Field(name, typ)
	f.Flag = FlagDefault
	f.Default = def
	return f
}

/*
Tagged returns a copy of n bearing tag t.
*/
func (r *Node) Tagged(t *Tag) *Node {
	c := r.Clone()
	c.Tag = t
	return c
}

/*
Clone returns a copy of the receiver instance. Components and the
inner type of a SEQUENCE OF or SET OF are cloned in turn and adopted
by the copy, so rebuilding a clone never re-parents a node of the
original. Nodes referenced by constraints are shared. Derived indices
are cleared.
*/
func (r *Node) Clone() *Node {
	if r == nil {
		return nil
	}
	c := *r
	c.parent = nil
	c.idx = nil
	c.Components = nil
	for _, k := range r.Components {
		k = k.Clone()
		if k != nil {
			k.parent = &c
		}
		c.Components = append(c.Components, k)
	}
	if c.Of = r.Of.Clone(); c.Of != nil {
		c.Of.parent = &c
	}
	c.Numbers = append([]NamedNumber(nil), r.Numbers...)
	c.Additions = append([]Addition(nil), r.Additions...)
	c.Constraints = append([]Constraint(nil), r.Constraints...)
	if r.Tag != nil {
		t := *r.Tag
		c.Tag = &t
	}
	return &c
}

/*
Parent returns the parent of the receiver instance, if any. The link
is set by [RebuildIndices] and [Node.Clone].
*/
func (r *Node) Parent() *Node { return r.parent }

/*
Component returns the named child of the receiver instance.
*/
func (r *Node) Component(name string) (*Node, bool) {
	if r == nil {
		return nil, false
	}
	if r.idx != nil {
		if i, ok := r.idx.byName[name]; ok {
			return r.Components[i], true
		}
		return nil, false
	}
	for _, c := range r.Components {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

/*
Number returns the number associated with the named item.
*/
func (r *Node) Number(name string) (int64, bool) {
	for _, nn := range r.Numbers {
		if nn.Name == name {
			return nn.Number, true
		}
	}
	return 0, false
}

/*
String returns a short description of the receiver, e.g. "Tree SEQUENCE".
*/
func (r *Node) String() string {
	if r == nil {
		return "<nil>"
	}
	s := r.Kind.String()
	if r.Tag != nil {
		s = r.Tag.String() + " " + s
	}
	if r.Name != "" {
		s = r.Name + " " + s
	}
	return s
}

func (r *Node) label() string {
	if r == nil {
		return "<nil>"
	} else if r.Name != "" {
		return r.Name
	}
	return r.Kind.String()
}

/*
owner returns the module that owns the receiver, walking the parent
chain when the receiver itself was never defined.
*/
func (r *Node) owner() *Module {
	for n := r; n != nil; n = n.parent {
		if n.module != nil {
			return n.module
		}
	}
	return nil
}

/*
resolve returns the node a KindSelfRef marker refers to. Any other
node is returned as-is. The returned node carries the marker's name,
tag and flag so it can stand in the marker's position.
*/
func (r *Node) resolve() (*Node, error) {
	if r == nil {
		return nil, errorNilNode
	}
	if r.Kind != KindSelfRef {
		return r, nil
	}

	m := r.owner()
	if m == nil {
		return nil, errorNoModule
	}

	target, err := m.Resolve(r)
	if err != nil {
		return nil, err
	}

	c := *target
	c.Name = r.Name
	c.Flag = r.Flag
	c.Default = r.Default
	c.parent = r.parent
	if r.Tag != nil {
		c.Tag = r.Tag
	}
	return &c, nil
}

/*
index returns the derived indices of the receiver. A receiver that was
never passed to [RebuildIndices] has its indices derived anew on each
call; they are not stored.
*/
func (r *Node) index() (*indices, error) {
	if r.idx != nil {
		return r.idx, nil
	}
	return buildIndices(r)
}

/*
defaultOf returns the DEFAULT value of component c, or nil.
*/
func defaultOf(c *Node) Value {
	if c.Flag == FlagDefault {
		return c.Default
	}
	return nil
}

/*
isDefault returns a Boolean value indicative of v equaling the DEFAULT
value of component c.
*/
func isDefault(c *Node, v Value) bool {
	d := defaultOf(c)
	return d != nil && Equal(d, v)
}
