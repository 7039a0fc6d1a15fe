package cmd

import (
	"os"

	"github.com/h6xserial/seridl/docs"
	"github.com/spf13/cobra"
)

var docsOutput string

// docsCmd represents the docs command
var docsCmd = &cobra.Command{
	Use:   "docs [schema]",
	Short: "Generate markdown documentation for a schema",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		path := args[0]
		p, err := compileFile(path)
		checkErr(err)
		rendered := docs.Render(p, path)
		if docsOutput == "" {
			os.Stdout.WriteString(rendered)
			return
		}
		checkErr(os.WriteFile(docsOutput, []byte(rendered), 0644))
	},
}

func init() {
	rootCmd.AddCommand(docsCmd)

	docsCmd.PersistentFlags().StringVarP(&docsOutput, "output", "o", "", "Output file (default stdout)")
}
