package codec

import (
	"fmt"

	"github.com/h6xserial/seridl/schema"
)

/*
Message codec: serializes one message instance as its fields in declared
order, with no padding between fields and no packet id octet in the payload.
The packet id is an out-of-band dispatch tag.

Encode and Decode are stateless pure functions over the caller's record and
buffer - codecs are safe for concurrent use once built.
*/

////////////////////////////////////////////////////////////////////////////////

// MessageCodec encodes and decodes instances of a single message definition.
// Build one with NewMessageCodec, or via compiler.Compile for a whole schema.
type MessageCodec struct {
	msgName  string
	packetID int
	fields   []fieldCodec
	minSize  int
	maxSize  int

	// index of the trailing variable-length field, or -1 if fixed-size.
	variable int
}

// NewMessageCodec builds a codec for a resolved message definition. The
// message must obey the structural invariants the compiler enforces: resolved
// fixed-size struct references and at most one variable-length field, in
// trailing position.
func NewMessageCodec(msg *schema.Message) (*MessageCodec, error) {
	if msg == nil {
		return nil, fmt.Errorf("nil message definition")
	}
	if len(msg.Fields) == 0 {
		return nil, fmt.Errorf("message %s has no fields", msg.Name)
	}
	c := &MessageCodec{msgName: msg.Name, packetID: msg.PacketID, variable: -1}
	for i, f := range msg.Fields {
		fc, err := newFieldCodec(f)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.Name, err)
		}
		if fc.fixedSize() == 0 {
			if c.variable >= 0 {
				return nil, fmt.Errorf("message %s: multiple variable-length fields", msg.Name)
			}
			if i != len(msg.Fields)-1 {
				return nil, fmt.Errorf("message %s: variable-length field %s must be trailing",
					msg.Name, f.Name)
			}
			c.variable = i
		}
		c.fields = append(c.fields, fc)
		c.minSize += fc.fixedSize()
		c.maxSize += fc.maxSize()
	}
	return c, nil
}

// Name returns the message name.
func (c *MessageCodec) Name() string { return c.msgName }

// PacketID returns the message's out-of-band dispatch tag.
func (c *MessageCodec) PacketID() int { return c.packetID }

// MaxSize returns the largest legal encoding length.
func (c *MessageCodec) MaxSize() int { return c.maxSize }

// MinSize returns the smallest legal encoding length.
func (c *MessageCodec) MinSize() int { return c.minSize }

// NewRecord returns a zero-valued record shaped for this message.
func (c *MessageCodec) NewRecord() *Record {
	values := make([]any, len(c.fields))
	for i, fc := range c.fields {
		values[i] = fc.zero()
	}
	return &Record{Values: values}
}

// EncodedSize returns the exact encoding length of rec. It depends only on
// the record's variable-length field lengths, never on field values.
func (c *MessageCodec) EncodedSize(rec *Record) (int, error) {
	if rec == nil {
		return 0, ErrNilRecord
	}
	if len(rec.Values) != len(c.fields) {
		return 0, fmt.Errorf("message %s: record has %d values, message has %d fields",
			c.msgName, len(rec.Values), len(c.fields))
	}
	size := 0
	for i, fc := range c.fields {
		n, err := fc.encodedSize(rec.Values[i])
		if err != nil {
			return 0, fmt.Errorf("message %s: %w", c.msgName, err)
		}
		size += n
	}
	return size, nil
}

// Encode writes rec into buf and returns the number of bytes written. On
// failure it returns zero and writes nothing usable - callers must discard
// the buffer. Bytes beyond the returned count are untouched.
func (c *MessageCodec) Encode(rec *Record, buf []byte) (int, error) {
	if rec == nil {
		return 0, ErrNilRecord
	}
	if buf == nil {
		return 0, ErrNilBuffer
	}
	required, err := c.EncodedSize(rec)
	if err != nil {
		return 0, err
	}
	if len(buf) < required {
		return 0, fmt.Errorf("message %s: need %d bytes, have %d: %w",
			c.msgName, required, len(buf), ErrShortBuffer)
	}
	offset := 0
	for i, fc := range c.fields {
		n, err := fc.encode(buf[offset:], rec.Values[i])
		if err != nil {
			return 0, fmt.Errorf("message %s: %w", c.msgName, err)
		}
		offset += n
	}
	return offset, nil
}

// Decode populates rec from data. The supplied length must be a legal
// encoding length for the message shape: the exact fixed size for fixed
// messages, or a length whose remainder after the fixed fields divides the
// trailing array's element width. On failure the record contents are
// unspecified and must not be read.
func (c *MessageCodec) Decode(rec *Record, data []byte) error {
	if rec == nil {
		return ErrNilRecord
	}
	if data == nil {
		return ErrNilBuffer
	}
	if c.variable < 0 && len(data) != c.maxSize {
		return fmt.Errorf("message %s: %d bytes, need exactly %d: %w",
			c.msgName, len(data), c.maxSize, ErrBadLength)
	}
	if len(data) < c.minSize || len(data) > c.maxSize {
		return fmt.Errorf("message %s: %d bytes outside [%d, %d]: %w",
			c.msgName, len(data), c.minSize, c.maxSize, ErrBadLength)
	}
	values := make([]any, len(c.fields))
	offset := 0
	for i, fc := range c.fields {
		chunk := data[offset:]
		if size := fc.fixedSize(); size > 0 {
			chunk = data[offset : offset+size]
		}
		v, n, err := fc.decode(chunk)
		if err != nil {
			return fmt.Errorf("message %s: failed to decode field %s: %w", c.msgName, fc.name(), err)
		}
		values[i] = v
		offset += n
	}
	if offset != len(data) {
		return fmt.Errorf("message %s: %d trailing bytes: %w", c.msgName, len(data)-offset, ErrBadLength)
	}
	rec.Values = values
	return nil
}
