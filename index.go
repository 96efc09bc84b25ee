package asn1rt

/*
index.go contains the derived lookup tables of a Node and the schema
invariant checks performed while building them.
*/

/*
indices holds the tables derived from a node's components, additions
and items. They are rebuilt as a whole by [RebuildIndices] and never
updated in place.
*/
type indices struct {
	rootComponents  []string            // root components in declared order
	rootOptional    []string            // OPTIONAL/DEFAULT root components
	extensionFlat   []string            // extension additions, groups flattened
	extensionGroups map[int][]string    // addition index -> group member names
	byName          map[string]int      // component name -> position in Components
	tagLookup       map[tagKey][]string // tag -> component path, through untagged CHOICEs
	perOrder        []string            // root components in canonical tag order (SET)
	enumRoot        []NamedNumber       // ENUMERATED root items, ascending
	enumExt         []NamedNumber       // ENUMERATED extension items, ascending
	groupNodes      []*Node             // addition index -> SEQUENCE of group members
}

/*
order returns the component encoding order: root components followed
by extension additions.
*/
func (r *indices) order() []string {
	return append(append([]string(nil), r.rootComponents...), r.extensionFlat...)
}

func (r *indices) isExtension(name string) bool {
	return strInSlice(name, r.extensionFlat)
}

/*
RebuildIndices recomputes the derived tables of n and of every node
below it, validating the schema invariants along the way: unique
sibling tags in SET and CHOICE, distinct tags within each optional
run of a SEQUENCE, tagged OPEN components in SET and CHOICE, known
and unique extension addition names, and present CONTAINING and
SET-REFERENCE targets. Any violation is returned as a [SchemaError].

RebuildIndices must be called whenever the components, additions or
constraints of a node change. It is the only operation that writes to
a schema: codecs handed a node that was never indexed derive its
tables per call and leave the node untouched.
*/
func RebuildIndices(n *Node) error {
	if n == nil {
		return errorNilNode
	}
	debugSchema(newLItem(n, "rebuild"))
	return rebuild(n)
}

/*
rebuild adopts and rebuilds the children of n, then stores the
indices of n.
*/
func rebuild(n *Node) error {
	if n.Kind == KindSelfRef {
		return nil
	}

	for _, c := range n.Components {
		if c == nil {
			return errorNilNode
		}
		c.parent = n
		if err := rebuild(c); err != nil {
			return err
		}
	}

	if (n.Kind == KindSequenceOf || n.Kind == KindSetOf) && n.Of != nil {
		n.Of.parent = n
		if err := rebuild(n.Of); err != nil {
			return err
		}
	}

	ix, err := buildIndices(n)
	if err == nil {
		n.idx = ix
	}
	return err
}

/*
buildIndices derives the tables of n without writing to n or to any
node below it.
*/
func buildIndices(n *Node) (ix *indices, err error) {
	ix = &indices{
		extensionGroups: make(map[int][]string),
		byName:          make(map[string]int),
		tagLookup:       make(map[tagKey][]string),
	}
	if n.Kind == KindSelfRef {
		return
	}

	for i, c := range n.Components {
		if c == nil {
			return nil, errorNilNode
		} else if _, dup := ix.byName[c.Name]; dup {
			return nil, schemaErrorf(n.label(), ": duplicate component name ", c.Name)
		}
		ix.byName[c.Name] = i
	}

	if (n.Kind == KindSequenceOf || n.Kind == KindSetOf) && n.Of == nil {
		return nil, errorNoInnerType
	}

	if err = ix.indexAdditions(n); err != nil {
		return nil, err
	}

	switch n.Kind {
	case KindEnumerated:
		err = ix.indexEnumeration(n)
	case KindChoice, KindSet:
		if err = ix.indexTags(n, true); err == nil && n.Kind == KindSet {
			ix.perOrder = canonicalOrder(n, ix.rootComponents)
		}
	case KindSequence:
		if err = ix.indexTags(n, false); err == nil {
			err = checkOptionalRuns(n, ix)
		}
	}

	if err == nil {
		err = checkTargets(n, ix)
	}
	if err == nil {
		err = ix.indexGroups(n)
	}
	if err != nil {
		return nil, err
	}
	return ix, nil
}

func (r *indices) indexAdditions(n *Node) error {
	if len(n.Additions) > 0 && !n.Extensible {
		return schemaErrorf(n.label(), ": extension additions without extension marker")
	}

	seen := make(map[string]bool)
	for gi, a := range n.Additions {
		for _, name := range a.Names {
			var known bool
			if n.Kind == KindEnumerated {
				_, known = n.Number(name)
			} else {
				_, known = r.byName[name]
			}
			if !known {
				return schemaErrorf(n.label(), ": unknown extension addition ", name)
			} else if seen[name] {
				return schemaErrorf(n.label(), ": extension addition listed twice: ", name)
			}
			seen[name] = true
			r.extensionFlat = append(r.extensionFlat, name)
		}
		if a.Group {
			r.extensionGroups[gi] = append([]string(nil), a.Names...)
		}
	}

	for _, c := range n.Components {
		if seen[c.Name] {
			continue
		}
		r.rootComponents = append(r.rootComponents, c.Name)
		if c.Flag.absentable() {
			r.rootOptional = append(r.rootOptional, c.Name)
		}
	}

	return nil
}

func (r *indices) indexEnumeration(n *Node) error {
	ext := make(map[string]bool)
	for _, name := range r.extensionFlat {
		ext[name] = true
	}

	for _, nn := range n.Numbers {
		if ext[nn.Name] {
			r.enumExt = insertSorted(r.enumExt, nn)
		} else {
			r.enumRoot = insertSorted(r.enumRoot, nn)
		}
	}

	if len(r.enumRoot) == 0 {
		return errorEmptyEnumeration
	} else if len(r.enumRoot) > 255 {
		return errorTooManyEnumeration
	}
	return nil
}

func insertSorted(list []NamedNumber, nn NamedNumber) []NamedNumber {
	i := len(list)
	for i > 0 && list[i-1].Number > nn.Number {
		i--
	}
	list = append(list, NamedNumber{})
	copy(list[i+1:], list[i:])
	list[i] = nn
	return list
}

/*
indexTags fills the tag lookup table of n. When unique is true (SET
and CHOICE), a tag reachable through two components is an error, as
is an untagged OPEN component.
*/
func (r *indices) indexTags(n *Node, unique bool) error {
	for _, c := range n.Components {
		paths, err := tagPaths(c)
		if err != nil {
			if unique {
				return err
			}
			continue
		}
		for k, p := range paths {
			if _, dup := r.tagLookup[k]; dup {
				if unique {
					return errorDuplicateTag(n.label(), Tag{Number: k.number, Class: k.class})
				}
				continue
			}
			r.tagLookup[k] = p
		}
	}
	return nil
}

/*
tagPaths returns every outermost tag by which component c may be
recognized, each with its path of component names. Untagged CHOICE
components contribute the tags of their alternatives.
*/
func tagPaths(c *Node) (map[tagKey][]string, error) {
	out := make(map[tagKey][]string)
	if t, ok := ResolveTag(c); ok {
		out[t.key()] = []string{c.Name}
		return out, nil
	}

	r, err := c.resolve()
	if err != nil {
		// unresolvable forward reference; matched lazily at decode time
		return out, nil
	}

	switch r.Kind {
	case KindChoice:
		ix, err := r.index()
		if err != nil {
			return nil, err
		}
		for k, p := range ix.tagLookup {
			out[k] = append([]string{c.Name}, p...)
		}
	case KindOpen:
		return nil, errorUntaggedOpen
	}

	return out, nil
}

/*
checkOptionalRuns rejects a SEQUENCE in which an OPTIONAL or DEFAULT
component shares a tag with a later component of the same run. A run
ends with, and includes, the next mandatory component.
*/
func checkOptionalRuns(n *Node, ix *indices) error {
	comps := n.Components
	for i, c := range comps {
		if !c.Flag.absentable() {
			continue
		}
		mine, err := tagPaths(c)
		if err != nil {
			continue
		}
		for j := i + 1; j < len(comps); j++ {
			theirs, err := tagPaths(comps[j])
			if err == nil {
				for k := range mine {
					if _, clash := theirs[k]; clash {
						return errorDuplicateTag(n.label(), Tag{Number: k.number, Class: k.class})
					}
				}
			}
			if !comps[j].Flag.absentable() {
				break
			}
		}
	}
	return nil
}

/*
canonicalOrder returns names sorted by the canonical order of their
tags: UNIVERSAL, APPLICATION, CONTEXT SPECIFIC then PRIVATE, each by
ascending number. An untagged CHOICE sorts by its smallest tag.
*/
func canonicalOrder(n *Node, names []string) []string {
	type entry struct {
		name string
		key  tagKey
	}

	var list []entry
	for _, name := range names {
		c, _ := n.Component(name)
		e := entry{name: name, key: tagKey{class: ClassPrivate + 1}}
		paths, _ := tagPaths(c)
		for k := range paths {
			if k.class < e.key.class || (k.class == e.key.class && k.number < e.key.number) {
				e.key = k
			}
		}
		// stable insertion keeps declared order for equal keys
		i := len(list)
		for i > 0 && (list[i-1].key.class > e.key.class ||
			(list[i-1].key.class == e.key.class && list[i-1].key.number > e.key.number)) {
			i--
		}
		list = append(list, entry{})
		copy(list[i+1:], list[i:])
		list[i] = e
	}

	out := make([]string, len(list))
	for i, e := range list {
		out[i] = e.name
	}
	return out
}

/*
checkTargets verifies the referenced nodes of CONTAINING and
SET-REFERENCE constraints.
*/
func checkTargets(n *Node, ix *indices) error {
	for _, c := range n.Constraints {
		switch tv := c.(type) {
		case Containing:
			if tv.Type == nil {
				return errorNilContaining
			}
		case SetReference:
			if tv.Set == nil {
				return errorNilSetReference
			} else if _, err := uniqueField(tv.Set); err != nil {
				return err
			}
		}
	}

	for _, c := range n.Components {
		if sr, ok := c.setReference(); ok && sr.At != "" {
			if _, known := ix.byName[sr.At]; !known {
				return schemaErrorf(n.label(), ": ", c.Name,
					" references unknown sibling @", sr.At)
			}
		}
	}
	return nil
}

/*
indexGroups prepares, for each group addition, a SEQUENCE holding the
group members; PER encodes a present group as a value of that type.
*/
func (r *indices) indexGroups(n *Node) error {
	if len(n.Additions) == 0 || (n.Kind != KindSequence && n.Kind != KindSet) {
		return nil
	}

	r.groupNodes = make([]*Node, len(n.Additions))
	for gi, a := range n.Additions {
		if !a.Group {
			continue
		}
		g := &Node{Name: n.Name + ".group" + itoa(gi), Kind: KindSequence}
		for _, name := range a.Names {
			g.Components = append(g.Components, n.Components[r.byName[name]])
		}
		ix, err := buildIndices(g)
		if err != nil {
			return err
		}
		g.idx = ix
		r.groupNodes[gi] = g
	}
	return nil
}
