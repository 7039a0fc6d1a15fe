package idl

import (
	"fmt"

	"github.com/h6xserial/seridl/schema"
)

/*
Transformation from the participle AST into a schema.Schema. The AST does not
leave the idl package; unknown type names become unresolved struct references
for the compiler to resolve against previously-defined messages.
*/

////////////////////////////////////////////////////////////////////////////////

// Parse parses a seridl schema definition document.
func Parse(input []byte) (*schema.Schema, error) {
	ast, err := DocumentParser.ParseBytes("", input)
	if err != nil {
		return nil, fmt.Errorf("failed to parse schema definition: %w", err)
	}
	return transformAST(*ast)
}

func transformAST(ast Document) (*schema.Schema, error) {
	s := &schema.Schema{}
	if ast.Version != nil {
		s.Version = *ast.Version
	}
	if ast.MaxAddress != nil {
		s.MaxAddress = *ast.MaxAddress
	}
	for _, def := range ast.Messages {
		direction, err := schema.ParseDirection(def.Direction)
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", def.Name, err)
		}
		msg := schema.Message{
			Name:      def.Name,
			PacketID:  def.PacketID,
			Direction: direction,
		}
		if def.Description != nil {
			msg.Description = *def.Description
		}
		for _, field := range def.Fields {
			resolved, err := resolveType(field)
			if err != nil {
				return nil, fmt.Errorf("message %s: field %s: %w", def.Name, field.Name, err)
			}
			msg.Fields = append(msg.Fields, schema.Field{Name: field.Name, Type: resolved})
		}
		s.Messages = append(s.Messages, msg)
	}
	return s, nil
}

func resolveType(field FieldDef) (schema.Type, error) {
	var order schema.ByteOrder
	if field.Order != nil {
		parsed, err := schema.ParseByteOrder(*field.Order)
		if err != nil {
			return schema.Type{}, err
		}
		order = parsed
	}
	primitive, ok := schema.ParsePrimitive(field.Type.Name)
	if !ok {
		if field.Type.Array {
			return schema.Type{}, fmt.Errorf("arrays of struct type %q are not supported", field.Type.Name)
		}
		return schema.Type{Struct: true, Ref: field.Type.Name}, nil
	}
	if field.Type.Array {
		return schema.Type{
			Primitive: primitive,
			Order:     order,
			Array:     true,
			MaxLength: field.Type.MaxLength,
		}, nil
	}
	return schema.Type{Primitive: primitive, Order: order}, nil
}
