package asn1rt

/*
module.go contains the Module definition table and the parser
interface through which textual definitions are loaded.
*/

/*
maxRefDepth bounds the length of a chain of self-reference markers.
*/
const maxRefDepth = 64

/*
Module implements a flat table of named definitions: types, single
values and value sets. Self-reference markers within its definitions
are resolved through it.
*/
type Module struct {
	Name  string
	defs  map[string]*Node
	order []string
}

/*
DefinitionParser is implemented by textual ASN.1 front ends. This
package consumes already parsed definitions only.

ParseDefinition returns the named node described by the leading
definition of text, and the text that follows it. ParseValue returns
the value of type governor described by the leading value notation of
text, and the text that follows it.
*/
type DefinitionParser interface {
	ParseDefinition(text string) (*Node, string, error)
	ParseValue(governor *Node, text string) (Value, string, error)
}

/*
NewModule returns an empty *[Module] named name.
*/
func NewModule(name string) *Module {
	return &Module{Name: name, defs: make(map[string]*Node)}
}

/*
Define adds n to the receiver under n.Name, replacing any definition
of the same name. The module's definitions are re-indexed, as n may
complete a reference made by an earlier definition; the first
[SchemaError] aborts the call and leaves the module as it was. The
value of a ModeValue node is bound to the node and normalized.
*/
func (r *Module) Define(n *Node) (err error) {
	if n == nil {
		return errorNilNode
	} else if n.Name == "" {
		return schemaErrorf("definition without a name in module ", r.Name)
	}

	debugSchema(newLItem(n, "define"), newLItem(r.Name, "module"))

	prev, had := r.defs[n.Name]
	n.module = r
	r.defs[n.Name] = n
	if !had {
		r.order = append(r.order, n.Name)
	}

	if err = r.reindex(); err == nil && n.Mode == ModeValue {
		var b Bound
		if b, err = Bind(n, n.Value); err == nil {
			n.Value = b.Value
		}
	}

	if err != nil {
		if had {
			r.defs[n.Name] = prev
		} else {
			delete(r.defs, n.Name)
			r.order = r.order[:len(r.order)-1]
		}
		n.module = nil
		r.reindex()
	}
	return
}

func (r *Module) reindex() error {
	for _, name := range r.order {
		if err := RebuildIndices(r.defs[name]); err != nil {
			return err
		}
	}
	return nil
}

/*
Lookup returns the definition named name.
*/
func (r *Module) Lookup(name string) (*Node, bool) {
	n, ok := r.defs[name]
	return n, ok
}

/*
Definitions returns the receiver's definitions in the order they were
first defined.
*/
func (r *Module) Definitions() []*Node {
	out := make([]*Node, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.defs[name])
	}
	return out
}

/*
Resolve follows the chain of self-reference markers starting at ref
and returns the first definition which is not a marker.
*/
func (r *Module) Resolve(ref *Node) (*Node, error) {
	if ref == nil {
		return nil, errorNilNode
	}

	cur := ref
	for depth := 0; cur.Kind == KindSelfRef; depth++ {
		if depth == maxRefDepth {
			return nil, schemaErrorf("self-reference chain starting at ",
				ref.TypeRef, " does not terminate")
		}
		next, ok := r.defs[cur.TypeRef]
		if !ok {
			return nil, errorUnresolved(cur.TypeRef)
		}
		cur = next
	}
	return cur, nil
}

/*
Load parses the definitions within text with p, one after another,
and defines each within the receiver in order. It returns the nodes
defined. Definitions preceding a failure stay defined.
*/
func (r *Module) Load(p DefinitionParser, text string) (defs []*Node, err error) {
	for rest := trimS(text); rest != ""; {
		var n *Node
		var next string
		if n, next, err = p.ParseDefinition(rest); err != nil {
			err = schemaErrorf("parse: ", err)
			break
		} else if n == nil {
			err = errorNilNode
			break
		} else if next = trimS(next); len(next) >= len(rest) {
			err = schemaErrorf("parse: no progress at ", rest)
			break
		}

		if err = r.Define(n); err != nil {
			break
		}
		defs = append(defs, n)
		rest = next
	}
	return
}

/*
ParseValue parses the leading value notation of text with p as a
value of the type named typeName, which must be defined within the
receiver. The bound value is returned with the text that follows it.
*/
func (r *Module) ParseValue(p DefinitionParser, typeName, text string) (Bound, string, error) {
	n, ok := r.Lookup(typeName)
	if !ok {
		return Bound{}, text, errorUnresolved(typeName)
	}

	v, rest, err := p.ParseValue(n, text)
	if err != nil {
		return Bound{}, text, valueErrorf("parse: ", err)
	}

	b, err := Bind(n, v)
	return b, rest, err
}
