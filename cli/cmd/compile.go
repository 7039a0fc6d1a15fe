package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/fatih/color"
	"github.com/h6xserial/seridl/compiler"
	"github.com/h6xserial/seridl/util/log"
	"github.com/spf13/cobra"
)

var compileQuiet bool

// nolint:gochecknoglobals
var (
	errColor  = color.New(color.FgRed)
	pathColor = color.New(color.FgCyan)
	okColor   = color.New(color.FgGreen)
)

// compileCmd represents the compile command
var compileCmd = &cobra.Command{
	Use:   "compile [patterns]",
	Short: "Compile schema definitions and report the protocol surface",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		paths := expandPatterns(args)
		if len(paths) == 0 {
			bailf("no schema files matched")
		}
		failed := 0
		for _, path := range paths {
			if !compileOne(ctx, path) {
				failed++
			}
		}
		if failed > 0 {
			bailf("%d of %d schemas failed to compile", failed, len(paths))
		}
	},
}

func expandPatterns(patterns []string) []string {
	var paths []string
	for _, pattern := range patterns {
		matches, err := doublestar.FilepathGlob(pattern)
		checkErr(err)
		if len(matches) == 0 {
			// not a glob, let compileOne surface the read error
			paths = append(paths, pattern)
			continue
		}
		paths = append(paths, matches...)
	}
	return paths
}

func compileOne(ctx context.Context, path string) bool {
	log.Debugf(ctx, "compiling %s", path)
	p, err := compileFile(path)
	if err != nil {
		printFailure(path, err)
		return false
	}
	pathColor.Print(path)
	fmt.Print(": ")
	okColor.Print("ok")
	fmt.Printf(" (%d messages, fingerprint %016x)\n", len(p.Messages()), p.Fingerprint())
	if !compileQuiet {
		printSummary(p)
	}
	return true
}

func printFailure(path string, err error) {
	ce := &compiler.CompileError{}
	if !errors.As(err, &ce) {
		errColor.Fprintf(os.Stderr, "%s: %s\n", path, err)
		return
	}
	errColor.Fprintf(os.Stderr, "%s: %d errors\n", path, len(ce.Diagnostics))
	for _, d := range ce.Diagnostics {
		fmt.Fprintf(os.Stderr, "  %s\n", d.Error())
	}
}

func printSummary(p *compiler.Protocol) {
	for _, m := range p.Messages() {
		size := fmt.Sprintf("%d bytes", m.MaxSize())
		if !m.Fixed() {
			size = fmt.Sprintf("%d-%d bytes", m.MinSize(), m.MaxSize())
		}
		fmt.Printf("  %3d  %-4s %-24s %s\n", m.PacketID, m.Direction, m.Name, size)
	}
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.PersistentFlags().BoolVarP(&compileQuiet, "quiet", "q", false, "suppress the per-message summary")
}
