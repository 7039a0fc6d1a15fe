package codec

// Record is the in-memory instance of one message: exactly one value per
// field, in declared field order. Scalar fields hold their matching Go type
// (uint16, float32, bool, ...), char arrays hold []byte, scalar arrays hold a
// typed slice of their element type whose length is the field's current
// element count, and struct fields hold a nested *Record.
//
// Records are caller-owned. Encode reads one, Decode overwrites one, and the
// codec never retains a reference past the call.
type Record struct {
	Values []any
}

// Value returns the i-th field value, or nil if out of range.
func (r *Record) Value(i int) any {
	if r == nil || i < 0 || i >= len(r.Values) {
		return nil
	}
	return r.Values[i]
}
