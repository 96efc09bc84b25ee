package asn1rt

/*
class.go implements information object classes, information objects
and the object sets consulted by open types.
*/

/*
NewClass returns a CLASS definition named name bearing fields. Type
fields are created with [TypeFieldSpec]; value fields are ordinary
components, one of which is normally flagged [FlagUnique] through
[UniqueField].
*/
func NewClass(name string, fields ...*Node) *Node {
	return &Node{Name: name, Kind: KindClass, Components: fields}
}

/*
TypeFieldSpec returns a type field named name. Its setting in an
[Object] is a [TypeField].
*/
func TypeFieldSpec(name string) *Node {
	return &Node{Name: classFieldLabel(name), Kind: KindOpen}
}

/*
UniqueField returns a value field named name of type typ, flagged
UNIQUE.
*/
func UniqueField(name string, typ *Node) *Node {
	f := Field(classFieldLabel(name), typ)
	f.Flag = FlagUnique
	return f
}

/*
NewObjectSet returns a value set of objects of class. The set holds
the class fields as its components so it can be used on its own as
the target of a [SetReference].
*/
func NewObjectSet(name string, class *Node, objs ...Object) *Node {
	set := &Node{
		Name:       name,
		Mode:       ModeValueSet,
		Kind:       KindClass,
		TypeRef:    class.Name,
		Components: class.Components,
		Set:        &ValueSet{},
	}
	for _, o := range objs {
		norm := make(Object, len(o))
		for label, v := range o {
			norm[classFieldLabel(label)] = v
		}
		set.Set.Root = append(set.Set.Root, norm)
	}
	return set
}

/*
classFieldLabel strips the ampersand (&) prefix of a field reference;
field names are stored without it.
*/
func classFieldLabel(label string) string {
	if hasPfx(label, `&`) {
		label = label[1:]
	}
	return label
}

/*
uniqueField returns the name of the field of class flagged UNIQUE.
*/
func uniqueField(class *Node) (string, error) {
	for _, f := range class.Components {
		if f.Flag == FlagUnique {
			return f.Name, nil
		}
	}
	return "", errorNoUniqueField
}

/*
lookupObject returns the object of set whose UNIQUE field equals key.
Root objects are searched before extension objects.
*/
func lookupObject(set *Node, key Value) (Object, bool) {
	if set == nil || set.Set == nil {
		return nil, false
	}
	field, err := uniqueField(set)
	if err != nil {
		return nil, false
	}

	for _, vals := range [][]Value{set.Set.Root, set.Set.Extension} {
		for _, v := range vals {
			if obj, ok := v.(Object); ok && Equal(obj[field], key) {
				return obj, true
			}
		}
	}
	return nil, false
}

/*
bindObject validates obj against the fields of class, returning the
normalized object.
*/
func bindObject(class *Node, obj Object) (Object, error) {
	out := make(Object, len(obj))
	for label, v := range obj {
		name := classFieldLabel(label)
		f, ok := class.Component(name)
		if !ok {
			return nil, errorUnknownComponent(class.label(), label)
		}

		if f.Kind == KindOpen {
			tf, isType := v.(TypeField)
			if !isType || tf.Type == nil {
				return nil, valueErrorf(class.label(), ": field &", name, " requires a type")
			}
			out[name] = tf
			continue
		}

		b, err := Bind(f, v)
		if err != nil {
			return nil, err
		}
		out[name] = b.Value
	}

	for _, f := range class.Components {
		if _, ok := out[f.Name]; !ok && !f.Flag.absentable() {
			return nil, errorAbsentComponent(class.label(), f.Name)
		}
	}
	return out, nil
}
