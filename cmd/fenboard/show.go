package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alex65536/fenboard/internal/boardview"
	"github.com/alex65536/fenboard/internal/fen"
	"github.com/alex65536/fenboard/internal/util/style"
)

func newShowCmd() *cobra.Command {
	var (
		aRotate   bool
		aASCII    bool
		aNoLabels bool
	)
	cmd := &cobra.Command{
		Use:   "show [FEN...]",
		Short: "Show positions in the terminal",
		Long: `Show positions in the terminal.

Positions are taken from the arguments, or from standard input, one per line,
if no arguments are given.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			o := boardview.DefaultTextOptions()
			o.Labels = !aNoLabels
			if aASCII {
				o.Unicode = false
				o.Color = false
			}
			view := boardview.View{Rotated: aRotate}
			out := cmd.OutOrStdout()
			failed := 0
			for i, in := range inputs {
				if i != 0 {
					fmt.Fprintln(out)
				}
				b, err := fen.Parse(in)
				if err != nil {
					failed++
					fmt.Fprintf(cmd.ErrOrStderr(), "%v %q: %v\n", style.WithSE("error:", 31, 1), in, err)
					continue
				}
				if err := view.RenderText(out, b, o); err != nil {
					return fmt.Errorf("render: %w", err)
				}
			}
			if failed != 0 {
				return fmt.Errorf("%v of %v positions could not be parsed", failed, len(inputs))
			}
			return nil
		},
	}
	cmd.Flags().BoolVarP(&aRotate, "rotate", "r", false, "show the board from Black's side")
	cmd.Flags().BoolVarP(&aASCII, "ascii", "a", false, "use plain letters and no colors")
	cmd.Flags().BoolVar(&aNoLabels, "no-labels", false, "do not show file and rank labels")
	return cmd
}
