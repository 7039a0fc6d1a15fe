package compiler

import (
	"github.com/h6xserial/seridl/codec"
	"github.com/h6xserial/seridl/schema"
)

/*
Role projection. A compiled protocol serves two participant roles: the
originator (the side that publishes Pub messages) and the receiver. Each
message exposes exactly one operation per role - encode or decode, never both
- derived from its direction:

	direction | originator | receiver
	Pub       | encode     | decode
	Sub       | decode     | encode

The projection is static: a role's surface simply does not contain the other
operation, so calling it is a compile-time absence rather than a runtime
check. Any number of receivers share the identical decode surface for Pub
messages, and any number of originators share the encode surface for Sub
messages.
*/

////////////////////////////////////////////////////////////////////////////////

// Role identifies a protocol participant.
type Role int

const (
	Originator Role = iota + 1
	Receiver
)

func (r Role) String() string {
	if r == Receiver {
		return "receiver"
	}
	return "originator"
}

// Encoder is the encode-only projection of a message codec.
type Encoder interface {
	Name() string
	PacketID() int
	MaxSize() int
	NewRecord() *codec.Record
	EncodedSize(*codec.Record) (int, error)
	Encode(*codec.Record, []byte) (int, error)
}

// Decoder is the decode-only projection of a message codec.
type Decoder interface {
	Name() string
	PacketID() int
	MaxSize() int
	NewRecord() *codec.Record
	Decode(*codec.Record, []byte) error
}

// Surface is one role's view of a protocol. Every message appears in exactly
// one of the two maps, keyed by message name.
type Surface struct {
	Role     Role
	Encoders map[string]Encoder
	Decoders map[string]Decoder
}

// Project derives the operation surface for a role.
func (p *Protocol) Project(role Role) Surface {
	s := Surface{
		Role:     role,
		Encoders: make(map[string]Encoder),
		Decoders: make(map[string]Decoder),
	}
	for _, m := range p.messages {
		c := p.codecs[m.Name]
		if encodes(m.Direction, role) {
			s.Encoders[m.Name] = encodeSurface{c}
		} else {
			s.Decoders[m.Name] = decodeSurface{c}
		}
	}
	return s
}

func encodes(d schema.Direction, r Role) bool {
	if d == schema.Pub {
		return r == Originator
	}
	return r == Receiver
}

// encodeSurface wraps a codec so only the encode half is reachable.
type encodeSurface struct {
	c *codec.MessageCodec
}

func (e encodeSurface) Name() string             { return e.c.Name() }
func (e encodeSurface) PacketID() int            { return e.c.PacketID() }
func (e encodeSurface) MaxSize() int             { return e.c.MaxSize() }
func (e encodeSurface) NewRecord() *codec.Record { return e.c.NewRecord() }

func (e encodeSurface) EncodedSize(rec *codec.Record) (int, error) {
	return e.c.EncodedSize(rec)
}

func (e encodeSurface) Encode(rec *codec.Record, buf []byte) (int, error) {
	return e.c.Encode(rec, buf)
}

// decodeSurface wraps a codec so only the decode half is reachable.
type decodeSurface struct {
	c *codec.MessageCodec
}

func (d decodeSurface) Name() string             { return d.c.Name() }
func (d decodeSurface) PacketID() int            { return d.c.PacketID() }
func (d decodeSurface) MaxSize() int             { return d.c.MaxSize() }
func (d decodeSurface) NewRecord() *codec.Record { return d.c.NewRecord() }

func (d decodeSurface) Decode(rec *codec.Record, data []byte) error {
	return d.c.Decode(rec, data)
}
