package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/neuroradiology/qtdeclarative/errobj"
)

var (
	throwKind    string
	throwMessage string
)

var kindByName = map[string]errobj.Kind{
	"Error":          errobj.KindError,
	"EvalError":      errobj.KindEvalError,
	"RangeError":     errobj.KindRangeError,
	"ReferenceError": errobj.KindReferenceError,
	"SyntaxError":    errobj.KindSyntaxError,
	"TypeError":      errobj.KindTypeError,
	"URIError":       errobj.KindURIError,
}

var throwCmd = &cobra.Command{
	Use:   "throw",
	Short: "Construct an errobj.Error and print its toString() and stack",
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, ok := kindByName[throwKind]
		if !ok {
			return fmt.Errorf("qv4gc: unknown error kind %q", throwKind)
		}
		frames := []errobj.StackFrame{
			{Function: "main", File: "<cli>", Line: 1, Column: 1},
		}
		err := errobj.New(eng.Shapes, eng.Allocator, kind, throwMessage, frames)
		fmt.Println(err.String())
		fmt.Println(err.Stack())
		return nil
	},
}

func init() {
	throwCmd.Flags().StringVar(&throwKind, "kind", "Error", "error kind: Error, EvalError, RangeError, ReferenceError, SyntaxError, TypeError, URIError")
	throwCmd.Flags().StringVar(&throwMessage, "message", "", "error message")
	rootCmd.AddCommand(throwCmd)
}
