package cmd

import (
	"fmt"

	"github.com/h6xserial/seridl/schema"
	"github.com/spf13/cobra"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show [schema]",
	Short: "Show the compiled field layout of every message",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		p, err := compileFile(args[0])
		checkErr(err)
		if v := p.Version(); v != "" {
			fmt.Printf("version: %s\n", v)
		}
		if a := p.MaxAddress(); a > 0 {
			fmt.Printf("max address: %d\n", a)
		}
		fmt.Printf("fingerprint: %016x\n\n", p.Fingerprint())
		for _, m := range p.Messages() {
			fmt.Printf("%s %s %d", m.Direction, m.Name, m.PacketID)
			if m.Description != "" {
				fmt.Printf(" %q", m.Description)
			}
			fmt.Println()
			printFields(m.Fields, "  ")
			fmt.Println()
		}
	},
}

func printFields(fields []schema.Field, indent string) {
	for _, f := range fields {
		fmt.Printf("%s%-20s %s", indent, f.Name, f.Type)
		if !f.Type.Struct && f.Type.Primitive.ByteLen() > 1 {
			fmt.Printf(" %s", f.Type.Order)
		}
		fmt.Println()
		if f.Type.Struct {
			printFields(f.Type.Message.Fields, indent+"  ")
		}
	}
}

func init() {
	rootCmd.AddCommand(showCmd)
}
