package schema

/*
Static size computation. Every field type has a statically-known maximum
encoded size; bounded arrays additionally have a minimum of zero since the
element count is carried out-of-band rather than in the byte stream. Struct
sizes require the reference to have been resolved by the compiler first -
calling these on an unresolved reference panics.
*/

////////////////////////////////////////////////////////////////////////////////

// MaxSize returns the largest encoded size of the type in bytes.
func (t Type) MaxSize() int {
	switch {
	case t.Struct:
		if t.Message == nil {
			panic("unresolved struct reference: " + t.Ref)
		}
		return t.Message.MaxSize()
	case t.Array:
		return t.MaxLength * t.Primitive.ByteLen()
	default:
		return t.Primitive.ByteLen()
	}
}

// MinSize returns the smallest encoded size of the type in bytes. Bounded
// arrays contribute zero.
func (t Type) MinSize() int {
	switch {
	case t.Struct:
		if t.Message == nil {
			panic("unresolved struct reference: " + t.Ref)
		}
		return t.Message.MinSize()
	case t.Array:
		return 0
	default:
		return t.Primitive.ByteLen()
	}
}

// Fixed reports whether the type has exactly one legal encoded size.
func (t Type) Fixed() bool {
	return t.MinSize() == t.MaxSize()
}

// MaxSize returns the largest encoded size of the message payload.
func (m *Message) MaxSize() int {
	size := 0
	for _, f := range m.Fields {
		size += f.Type.MaxSize()
	}
	return size
}

// MinSize returns the smallest encoded size of the message payload.
func (m *Message) MinSize() int {
	size := 0
	for _, f := range m.Fields {
		size += f.Type.MinSize()
	}
	return size
}

// Fixed reports whether every legal encoding of the message has the same
// length. Messages referenced as struct fields must be fixed.
func (m *Message) Fixed() bool {
	return m.MinSize() == m.MaxSize()
}
