package jsonir

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/goccy/go-json"
	"github.com/h6xserial/seridl/schema"
	"github.com/h6xserial/seridl/util"
)

/*
Loader for the JSON intermediate representation produced by upstream schema
authoring tools. The top level is an object whose "version" and "max_address"
members are protocol metadata; every other member is a message definition:

	{
	  "version": "1.0.0",
	  "ping": {"packet_id": 0, "msg_type": "uint8", "array": false},
	  "temperatures": {
	    "packet_id": 20, "msg_type": "float32", "array": true,
	    "endianess": "big", "max_length": 8
	  },
	  "sensor_data": {
	    "packet_id": 30, "msg_type": "struct",
	    "fields": {"temperature": {"type": "float32", "endianess": "big"}}
	  }
	}

Member order is significant for struct fields (it is encoding order), so this
package walks the token stream rather than decoding into Go maps. Both the
"endianess" and "endianness" spellings are accepted, as are "direction" and
"request_type" for the pub/sub declaration.
*/

////////////////////////////////////////////////////////////////////////////////

type member struct {
	key   string
	value any
}

// object is a JSON object with member order preserved.
type object []member

func (o object) get(keys ...string) (any, bool) {
	for _, m := range o {
		for _, k := range keys {
			if m.key == k {
				return m.value, true
			}
		}
	}
	return nil, false
}

// Load parses a JSON intermediate representation document into a schema.
// Message and field names are normalized to snake case.
func Load(data []byte) (*schema.Schema, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	root, err := parseValue(dec)
	if err != nil {
		return nil, fmt.Errorf("failed to parse intermediate representation: %w", err)
	}
	obj, ok := root.(object)
	if !ok {
		return nil, errors.New("top-level JSON must be an object")
	}
	s := &schema.Schema{}
	for _, m := range obj {
		switch m.key {
		case "version":
			if v, ok := m.value.(string); ok {
				s.Version = v
			}
		case "max_address":
			n, err := asInt(m.value)
			if err != nil {
				return nil, fmt.Errorf("max_address: %w", err)
			}
			s.MaxAddress = n
		default:
			msg, err := parseMessage(m.key, m.value)
			if err != nil {
				return nil, err
			}
			s.Messages = append(s.Messages, *msg)
		}
	}
	return s, nil
}

func parseValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}
	switch delim {
	case '{':
		var obj object
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := keyTok.(string)
			if !ok {
				return nil, fmt.Errorf("expected object key, got %v", keyTok)
			}
			value, err := parseValue(dec)
			if err != nil {
				return nil, err
			}
			obj = append(obj, member{key: key, value: value})
		}
		// closing brace
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		return nil, errors.New("arrays are not part of the intermediate representation")
	default:
		return nil, fmt.Errorf("unexpected delimiter %v", delim)
	}
}

func parseMessage(name string, v any) (*schema.Message, error) {
	obj, ok := v.(object)
	if !ok {
		return nil, fmt.Errorf("message %q must be an object", name)
	}
	msg := &schema.Message{Name: util.SnakeCase(name), Direction: schema.Pub}

	id, ok := obj.get("packet_id")
	if !ok {
		return nil, fmt.Errorf("message %q is missing required member 'packet_id'", name)
	}
	packetID, err := asInt(id)
	if err != nil {
		return nil, fmt.Errorf("message %q: packet_id: %w", name, err)
	}
	msg.PacketID = packetID

	if desc, ok := obj.get("msg_desc"); ok {
		if s, ok := desc.(string); ok {
			msg.Description = s
		}
	}
	if dir, ok := obj.get("direction", "request_type"); ok {
		s, ok := dir.(string)
		if !ok {
			return nil, fmt.Errorf("message %q: direction must be a string", name)
		}
		parsed, err := schema.ParseDirection(s)
		if err != nil {
			return nil, fmt.Errorf("message %q: %w", name, err)
		}
		msg.Direction = parsed
	}

	msgType, ok := obj.get("msg_type")
	if !ok {
		return nil, fmt.Errorf("message %q is missing required member 'msg_type'", name)
	}
	typeName, ok := msgType.(string)
	if !ok {
		return nil, fmt.Errorf("message %q: msg_type must be a string", name)
	}

	if typeName == "struct" {
		fields, err := structFields(name, obj)
		if err != nil {
			return nil, err
		}
		msg.Fields = fields
		return msg, nil
	}

	fieldType, err := parseFieldType(name, typeName, obj)
	if err != nil {
		return nil, err
	}
	// Scalar messages carry a single "value" field; array messages a single
	// "data" field, matching the generated record shapes.
	fieldName := "value"
	if fieldType.Array {
		fieldName = "data"
	}
	msg.Fields = []schema.Field{{Name: fieldName, Type: fieldType}}
	return msg, nil
}

func structFields(name string, obj object) ([]schema.Field, error) {
	raw, ok := obj.get("fields")
	if !ok {
		return nil, fmt.Errorf("struct message %q requires a 'fields' object", name)
	}
	fieldsObj, ok := raw.(object)
	if !ok || len(fieldsObj) == 0 {
		return nil, fmt.Errorf("struct message %q must define at least one field", name)
	}
	fields := make([]schema.Field, 0, len(fieldsObj))
	for _, fm := range fieldsObj {
		fieldObj, ok := fm.value.(object)
		if !ok {
			return nil, fmt.Errorf("field %q in %q must be an object", fm.key, name)
		}
		typeRaw, ok := fieldObj.get("type", "msg_type")
		if !ok {
			return nil, fmt.Errorf("field %q in %q is missing 'type'", fm.key, name)
		}
		typeName, ok := typeRaw.(string)
		if !ok {
			return nil, fmt.Errorf("field %q in %q: type must be a string", fm.key, name)
		}
		if typeName == "struct" {
			// Inline nested struct: resolved here rather than by reference.
			path := name + "." + fm.key
			nested, err := structFields(path, fieldObj)
			if err != nil {
				return nil, err
			}
			fields = append(fields, schema.Field{
				Name: util.SnakeCase(fm.key),
				Type: schema.Type{
					Struct:  true,
					Ref:     path,
					Message: &schema.Message{Name: path, Fields: nested},
				},
			})
			continue
		}
		fieldType, err := parseFieldType(name+"."+fm.key, typeName, fieldObj)
		if err != nil {
			return nil, err
		}
		fields = append(fields, schema.Field{Name: util.SnakeCase(fm.key), Type: fieldType})
	}
	return fields, nil
}

func parseFieldType(path string, typeName string, obj object) (schema.Type, error) {
	primitive, ok := schema.ParsePrimitive(typeName)
	if !ok {
		return schema.Type{}, fmt.Errorf("%s: unsupported type %q", path, typeName)
	}
	order := schema.LittleEndian
	if raw, ok := obj.get("endianess", "endianness"); ok {
		s, ok := raw.(string)
		if !ok {
			return schema.Type{}, fmt.Errorf("%s: endianness must be a string", path)
		}
		parsed, err := schema.ParseByteOrder(s)
		if err != nil {
			return schema.Type{}, fmt.Errorf("%s: %w", path, err)
		}
		order = parsed
	}
	isArray := false
	if raw, ok := obj.get("array"); ok {
		b, ok := raw.(bool)
		if !ok {
			return schema.Type{}, fmt.Errorf("%s: 'array' must be a boolean", path)
		}
		isArray = b
	}
	if !isArray {
		return schema.Type{Primitive: primitive, Order: order}, nil
	}
	raw, ok := obj.get("max_length")
	if !ok {
		return schema.Type{}, fmt.Errorf("%s: array fields require 'max_length'", path)
	}
	maxLength, err := asInt(raw)
	if err != nil {
		return schema.Type{}, fmt.Errorf("%s: max_length: %w", path, err)
	}
	return schema.Type{Primitive: primitive, Order: order, Array: true, MaxLength: maxLength}, nil
}

func asInt(v any) (int, error) {
	n, ok := v.(json.Number)
	if !ok {
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
	x, err := n.Int64()
	if err != nil {
		return 0, fmt.Errorf("expected an integer: %w", err)
	}
	return int(x), nil
}
