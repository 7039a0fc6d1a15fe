package compiler

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/h6xserial/seridl/codec"
	"github.com/h6xserial/seridl/schema"
	"github.com/spaolacci/murmur3"
	"golang.org/x/exp/maps"
)

/*
The schema compiler ingests an ordered collection of message definitions,
validates the global invariants, resolves struct references, and builds one
message codec per definition. Resolution is topological by declaration order:
a struct field may only reference an already-compiled definition, which makes
the reference graph acyclic by construction.

Validation collects every diagnostic before failing, so a single compile
reports the complete set of problems with a schema.
*/

////////////////////////////////////////////////////////////////////////////////

// Protocol is a compiled schema: validated, resolved, and ready to project
// per-role codec surfaces. Protocols are immutable after compilation and safe
// for concurrent use.
type Protocol struct {
	version     string
	maxAddress  int
	messages    []*schema.Message
	codecs      map[string]*codec.MessageCodec
	fingerprint uint64
}

// Compile validates and resolves a schema, returning a *CompileError with the
// full diagnostic set if the schema is invalid. Input definitions are copied;
// the caller's schema is never mutated.
func Compile(s *schema.Schema) (*Protocol, error) {
	if s == nil {
		return nil, fmt.Errorf("nil schema")
	}
	if len(s.Messages) == 0 {
		return nil, fmt.Errorf("schema has no message definitions")
	}
	var diags []Diagnostic
	addf := func(msg, field, format string, args ...any) {
		diags = append(diags, Diagnostic{Message: msg, Field: field, Detail: fmt.Sprintf(format, args...)})
	}

	byName := make(map[string]*schema.Message, len(s.Messages))
	invalid := make(map[string]bool)
	byID := make(map[int]string, len(s.Messages))
	resolved := make([]*schema.Message, 0, len(s.Messages))

	for _, def := range s.Messages {
		msg := copyMessage(def)
		before := len(diags)

		if msg.Name == "" {
			addf(msg.Name, "", "message has no name")
		}
		if _, ok := byName[msg.Name]; ok {
			addf(msg.Name, "", "duplicate message name")
		}
		if msg.PacketID < 0 || msg.PacketID > schema.MaxPacketID {
			addf(msg.Name, "", "packet id %d out of range [0, %d]", msg.PacketID, schema.MaxPacketID)
		}
		if prev, ok := byID[msg.PacketID]; ok {
			addf(msg.Name, "", "duplicate packet id %d (also used by message %s)", msg.PacketID, prev)
		} else {
			byID[msg.PacketID] = msg.Name
		}
		if msg.Direction != schema.Pub && msg.Direction != schema.Sub {
			addf(msg.Name, "", "message has no direction")
		}
		if len(msg.Fields) == 0 {
			addf(msg.Name, "", "message must define at least one field")
		}

		seen := make(map[string]bool, len(msg.Fields))
		var variable []string
		for i := range msg.Fields {
			f := &msg.Fields[i]
			if f.Name == "" {
				addf(msg.Name, f.Name, "field has no name")
			}
			if seen[f.Name] {
				addf(msg.Name, f.Name, "duplicate field name")
			}
			seen[f.Name] = true
			switch {
			case f.Type.Struct:
				ref := f.Type.Message // inline definitions arrive pre-resolved
				if ref == nil {
					target, ok := byName[f.Type.Ref]
					if !ok {
						if invalid[f.Type.Ref] {
							addf(msg.Name, f.Name, "references invalid message %q", f.Type.Ref)
						} else {
							addf(msg.Name, f.Name,
								"references undefined message %q (struct fields may only reference previously-defined messages)",
								f.Type.Ref)
						}
						continue
					}
					ref = target
					f.Type.Message = target
				}
				if !ref.Fixed() {
					addf(msg.Name, f.Name, "referenced message %q does not have a fixed size", ref.Name)
				}
			case f.Type.Array:
				if !f.Type.Primitive.Numeric() && f.Type.Primitive != schema.CHAR {
					addf(msg.Name, f.Name, "%s is not a legal array element type", f.Type.Primitive)
				}
				switch {
				case f.Type.MaxLength < 1:
					addf(msg.Name, f.Name, "array fields require a positive max length")
				case f.Type.MaxLength > schema.MaxArrayLength:
					addf(msg.Name, f.Name, "max length %d exceeds limit of %d",
						f.Type.MaxLength, schema.MaxArrayLength)
				}
				variable = append(variable, f.Name)
			}
		}
		if len(variable) > 1 {
			addf(msg.Name, "", "multiple variable-length fields (%s): at most one is decodable from length alone",
				strings.Join(variable, ", "))
		}
		if len(variable) == 1 && msg.Fields[len(msg.Fields)-1].Name != variable[0] {
			addf(msg.Name, variable[0], "variable-length field must be the trailing field")
		}

		if len(diags) > before {
			invalid[msg.Name] = true
			continue
		}
		byName[msg.Name] = msg
		resolved = append(resolved, msg)
	}
	if len(diags) > 0 {
		return nil, &CompileError{Diagnostics: diags}
	}

	codecs := make(map[string]*codec.MessageCodec, len(resolved))
	for _, msg := range resolved {
		c, err := codec.NewMessageCodec(msg)
		if err != nil {
			return nil, fmt.Errorf("failed to build codec: %w", err)
		}
		codecs[msg.Name] = c
	}
	sort.Slice(resolved, func(i, j int) bool { return resolved[i].PacketID < resolved[j].PacketID })
	return &Protocol{
		version:     s.Version,
		maxAddress:  s.MaxAddress,
		messages:    resolved,
		codecs:      codecs,
		fingerprint: fingerprint(resolved),
	}, nil
}

// Version returns the schema's protocol version string, if any.
func (p *Protocol) Version() string { return p.version }

// MaxAddress returns the schema's declared maximum device address, if any.
func (p *Protocol) MaxAddress() int { return p.maxAddress }

// Messages returns the compiled definitions ordered by packet id.
func (p *Protocol) Messages() []*schema.Message { return p.messages }

// Names returns the compiled message names in sorted order.
func (p *Protocol) Names() []string {
	names := maps.Keys(p.codecs)
	sort.Strings(names)
	return names
}

// Codec returns the codec for the named message.
func (p *Protocol) Codec(name string) (*codec.MessageCodec, bool) {
	c, ok := p.codecs[name]
	return c, ok
}

// ByPacketID returns the codec whose message carries the given dispatch tag.
func (p *Protocol) ByPacketID(id int) (*codec.MessageCodec, bool) {
	for _, m := range p.messages {
		if m.PacketID == id {
			return p.codecs[m.Name], true
		}
	}
	return nil, false
}

// Fingerprint returns a stable hash of the compiled schema shape. Two schemas
// with identical messages, field order, types, byte orders, and packet ids
// share a fingerprint.
func (p *Protocol) Fingerprint() uint64 { return p.fingerprint }

func fingerprint(msgs []*schema.Message) uint64 {
	h := murmur3.New64()
	for _, m := range msgs {
		fmt.Fprintf(h, "%s:%d:%s;", m.Name, m.PacketID, m.Direction)
		fingerprintFields(h, m.Fields)
	}
	return h.Sum64()
}

func fingerprintFields(w io.Writer, fields []schema.Field) {
	for _, f := range fields {
		if f.Type.Struct {
			fmt.Fprintf(w, "%s:struct{", f.Name)
			fingerprintFields(w, f.Type.Message.Fields)
			fmt.Fprint(w, "},")
			continue
		}
		fmt.Fprintf(w, "%s:%s:%s,", f.Name, f.Type, f.Type.Order)
	}
}

func copyMessage(def schema.Message) *schema.Message {
	msg := def
	msg.Fields = copyFields(def.Fields)
	return &msg
}

func copyFields(fields []schema.Field) []schema.Field {
	out := make([]schema.Field, len(fields))
	copy(out, fields)
	for i := range out {
		if out[i].Type.Message != nil {
			out[i].Type.Message = copyMessage(*out[i].Type.Message)
		}
	}
	return out
}
