package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/h6xserial/seridl/compiler"
	"github.com/h6xserial/seridl/idl"
	"github.com/h6xserial/seridl/jsonir"
	"github.com/h6xserial/seridl/schema"
	"github.com/h6xserial/seridl/util/log"
	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "seridl",
	Short: "seridl schema compiler",
	Long: `seridl compiles message schema definitions for embedded serial links,
validating the schema and reporting the compiled protocol surface.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		log.Configure(verbose)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func bailf(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}

func checkErr(err error) {
	if err != nil {
		bailf("error: %v", err)
	}
}

// loadSchema parses a schema document, dispatching on file extension. JSON
// files are treated as intermediate representation; anything else is parsed
// as the schema definition language.
func loadSchema(path string) (*schema.Schema, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if filepath.Ext(path) == ".json" {
		return jsonir.Load(data)
	}
	return idl.Parse(data)
}

func compileFile(path string) (*compiler.Protocol, error) {
	s, err := loadSchema(path)
	if err != nil {
		return nil, err
	}
	return compiler.Compile(s)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
