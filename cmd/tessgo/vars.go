package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ironsheep/tessgo/pkg/tesseract"
)

var varsSet []string

var varsCmd = &cobra.Command{
	Use:   "vars [NAME...]",
	Short: "Show Tesseract parameters",
	Long: `Without arguments, print every Tesseract parameter and its value. With
names, print those parameters as JSON. --set name=value is applied first.`,
	RunE: runVars,
}

func init() {
	varsCmd.Flags().StringArrayVar(&varsSet, "set", nil, "set a parameter before printing (name=value)")
	rootCmd.AddCommand(varsCmd)
}

func runVars(cmd *cobra.Command, args []string) error {
	oc, err := cfg.OCR()
	if err != nil {
		return err
	}
	engine, err := tesseract.NewEngine(oc.Datapath, oc.Language, oc.EngineOptions()...)
	if err != nil {
		return err
	}
	defer engine.Close()

	for _, kv := range varsSet {
		name, value, ok := strings.Cut(kv, "=")
		if !ok {
			return fmt.Errorf("invalid --set %q: want name=value", kv)
		}
		if err := engine.SetVariable(name, value); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if len(args) == 0 {
		return dumpVariables(engine, out)
	}

	values := make(map[string]any, len(args))
	for _, name := range args {
		v, ok := lookupVariable(engine, name)
		if !ok {
			return fmt.Errorf("unknown parameter %q", name)
		}
		values[name] = v
	}
	return writeJSON(out, values)
}

// lookupVariable tries each parameter type in turn; Tesseract keeps a
// separate table per type.
func lookupVariable(e *tesseract.Engine, name string) (any, bool) {
	if v, ok := e.IntVariable(name); ok {
		return v, true
	}
	if v, ok := e.BoolVariable(name); ok {
		return v, true
	}
	if v, ok := e.DoubleVariable(name); ok {
		return v, true
	}
	return e.StringVariable(name)
}

func dumpVariables(e *tesseract.Engine, w io.Writer) error {
	dir, err := os.MkdirTemp("", "tessgo-vars-*")
	if err != nil {
		return err
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "vars.txt")
	if err := e.PrintVariablesToFile(path); err != nil {
		return err
	}
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = io.Copy(w, f)
	return err
}
