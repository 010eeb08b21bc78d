package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenboard/internal/fen"
)

func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [FEN...]",
		Short: "Validate positions",
		Long: `Validate positions and print one line per position.

A valid position is printed as "ok <layout>". For an invalid one, the error
kind and the message are printed instead. The exit status is non-zero if any
position is invalid.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := 0
			for _, in := range inputs {
				b, err := fen.Parse(in)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%v %v\n", fen.KindOf(err), err)
					continue
				}
				fmt.Fprintf(out, "ok %v\n", b.Layout())
			}
			if failed != 0 {
				return fmt.Errorf("%v of %v positions are invalid", failed, len(inputs))
			}
			return nil
		},
	}
}
