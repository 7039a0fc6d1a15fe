package idl

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

/*
This file contains a participle grammar for the seridl schema definition
language. A document is optional protocol metadata followed by message
definitions in declaration order:

	version "1.2.0"
	max_address 255

	# Ping command
	pub ping 0 "Ping command" {
	    uint8 value
	}

	pub temperatures 20 {
	    float32[8] values be
	}

Field order inside a message is encoding order. Byte order annotations
("le"/"be"/"little"/"big") attach per field; little-endian is the default.
A field whose type names an earlier message declares a nested struct field.
*/

////////////////////////////////////////////////////////////////////////////////

// nolint:gochecknoglobals
var (
	Lexer = lexer.MustSimple([]lexer.SimpleRule{
		{Name: "Comment", Pattern: `#[^\n]*`},
		{Name: "String", Pattern: `"(?:\\.|[^"])*"`},
		{Name: "Integer", Pattern: `[0-9]+`},
		{Name: "Word", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
		{Name: "LBrace", Pattern: `\{`},
		{Name: "RBrace", Pattern: `\}`},
		{Name: "LBracket", Pattern: `\[`},
		{Name: "RBracket", Pattern: `\]`},
		{Name: "Whitespace", Pattern: `\s+`},
	})

	DocumentParser = participle.MustBuild[Document](
		participle.Lexer(Lexer),
		participle.Unquote("String"),
		participle.Elide("Whitespace", "Comment"),
		participle.UseLookahead(1000),
	)
)

type Document struct {
	Version    *string      `parser:"('version' @String)?"`
	MaxAddress *int         `parser:"('max_address' @Integer)?"`
	Messages   []MessageDef `parser:"@@*"`
}

type MessageDef struct {
	Direction   string     `parser:"@('pub' | 'sub')"`
	Name        string     `parser:"@Word"`
	PacketID    int        `parser:"@Integer"`
	Description *string    `parser:"@String?"`
	Fields      []FieldDef `parser:"LBrace @@* RBrace"`
}

type FieldDef struct {
	Type  TypeRef `parser:"@@"`
	Name  string  `parser:"@Word"`
	Order *string `parser:"@('le' | 'be' | 'little' | 'big')?"`
}

type TypeRef struct {
	Name      string `parser:"@Word"`
	Array     bool   `parser:"@LBracket?"`
	MaxLength int    `parser:"(@Integer RBracket)?"`
}
