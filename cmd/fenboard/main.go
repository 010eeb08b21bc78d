package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/spf13/cobra"

	"github.com/alex65536/fenboard/internal/util/style"
)

const version = "0.3.0"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:     "fenboard",
		Version: version,
		Short:   "Displays chess positions given in FEN",
		Long: `FEN Board reads the piece placement part of FEN strings and shows the
resulting positions in the terminal, as PNG diagrams, or in a web browser.
`,
		SilenceUsage: true,
	}
	root.AddCommand(newShowCmd())
	root.AddCommand(newCheckCmd())
	root.AddCommand(newRenderCmd())
	root.AddCommand(newServeCmd())
	return root
}

// readInputs returns the positions given as arguments, or reads them from in
// line by line if there are no arguments. Blank lines are skipped.
func readInputs(in io.Reader, args []string) ([]string, error) {
	if len(args) != 0 {
		return args, nil
	}
	var res []string
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		ln := strings.TrimSpace(sc.Text())
		if ln == "" {
			continue
		}
		res = append(res, ln)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return res, nil
}

func main() {
	root := newRootCmd()
	root.SetOut(colorable.NewColorableStdout())
	root.SetErr(colorable.NewColorableStderr())
	root.SetErrPrefix(style.WithSE("error:", 31, 1))
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
