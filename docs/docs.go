package docs

import (
	"fmt"
	"strings"

	"github.com/h6xserial/seridl/compiler"
	"github.com/h6xserial/seridl/schema"
	"github.com/h6xserial/seridl/util"
)

/*
Markdown documentation generator. Renders a compiled protocol as a command
reference: an overview with protocol metadata, followed by command tables
split into the base range (packet ids 0 through 19, reserved for common
commands every device understands) and the custom range (20 and up).
*/

////////////////////////////////////////////////////////////////////////////////

const customRangeStart = 20

// Render generates markdown documentation for a compiled protocol. The source
// argument names the schema document the protocol was compiled from.
func Render(p *compiler.Protocol, source string) string {
	var sb strings.Builder
	sb.WriteString("# Command Definitions\n\n")
	fmt.Fprintf(&sb, "Auto-generated from: `%s`\n", source)
	if v := p.Version(); v != "" {
		fmt.Fprintf(&sb, "Protocol version: %s\n", v)
	}
	if a := p.MaxAddress(); a > 0 {
		fmt.Fprintf(&sb, "Max address: %d\n", a)
	}
	sb.WriteString("\n")

	var base, custom []*schema.Message
	for _, m := range p.Messages() {
		if m.PacketID < customRangeStart {
			base = append(base, m)
		} else {
			custom = append(custom, m)
		}
	}
	if len(base) > 0 {
		section(&sb, "Base Commands (0~19)", base)
	}
	if len(custom) > 0 {
		section(&sb, "Custom Commands (20+)", custom)
	}
	return sb.String()
}

func section(sb *strings.Builder, title string, msgs []*schema.Message) {
	fmt.Fprintf(sb, "## %s\n\n", title)
	sb.WriteString("| Command | Value | Description |\n")
	sb.WriteString("|---------|-------|-------------|\n")
	for _, m := range msgs {
		description := m.Description
		if description == "" {
			description = "No description"
		}
		fmt.Fprintf(sb, "| `%s` | %d | %s |\n", commandName(m.Name), m.PacketID, description)
	}
	sb.WriteString("\n")
}

// commandName renders a message name as a macro-style command identifier with
// a CMD_ prefix. Names already carrying the prefix are left alone.
func commandName(name string) string {
	s := strings.TrimLeft(util.MacroCase(name), "_")
	if strings.HasPrefix(s, "CMD_") {
		return s
	}
	return "CMD_" + s
}
