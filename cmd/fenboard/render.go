package main

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/alex65536/fenboard/internal/diagram"
	"github.com/alex65536/fenboard/internal/fen"
)

type renderJob struct {
	board fen.Board
	path  string
}

// uniqueNames returns n distinct random names. Names get longer when short
// ones keep colliding.
func uniqueNames(n int) []string {
	names := make([]string, 0, n)
	seen := make(map[string]struct{}, n)
	words := 2
	for len(names) < n {
		added := false
		for range 8 {
			name := petname.Generate(words, "-")
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
			added = true
			break
		}
		if !added {
			words++
		}
	}
	return names
}

func renderFile(job renderJob, o diagram.Options) (err error) {
	f, err := os.Create(job.path)
	if err != nil {
		return fmt.Errorf("create: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close: %w", cerr)
		}
	}()
	if err := diagram.RenderPNG(f, job.board, o); err != nil {
		return err
	}
	return nil
}

func newRenderCmd() *cobra.Command {
	var (
		aOutDir string
		aName   string
		aJobs   int
		aSize   int
		aRotate bool
		aCoords bool
	)
	cmd := &cobra.Command{
		Use:   "render -o DIR [FEN...]",
		Short: "Render positions into PNG diagrams",
		Long: `Render positions into PNG diagrams.

Each position is written into its own file in the output directory. Files get
random names unless --name is given for a single position.
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if aJobs <= 0 {
				return fmt.Errorf("non-positive jobs")
			}
			o := diagram.Options{
				SquareSize: aSize,
				Rotated:    aRotate,
				Coords:     aCoords,
			}
			o.FillDefaults()
			if err := o.Validate(); err != nil {
				return err
			}
			inputs, err := readInputs(cmd.InOrStdin(), args)
			if err != nil {
				return err
			}
			if aName != "" && len(inputs) != 1 {
				return fmt.Errorf("--name requires exactly one position")
			}

			var names []string
			if aName != "" {
				names = []string{aName}
			} else {
				names = uniqueNames(len(inputs))
			}
			jobs := make([]renderJob, len(inputs))
			for i, in := range inputs {
				b, err := fen.Parse(in)
				if err != nil {
					return fmt.Errorf("position %q: %w", in, err)
				}
				jobs[i] = renderJob{
					board: b,
					path:  filepath.Join(aOutDir, names[i]+".png"),
				}
			}

			if err := os.MkdirAll(aOutDir, 0o755); err != nil {
				return fmt.Errorf("create output dir: %w", err)
			}
			var g errgroup.Group
			g.SetLimit(aJobs)
			for _, job := range jobs {
				g.Go(func() error {
					if err := renderFile(job, o); err != nil {
						return fmt.Errorf("render %v: %w", job.path, err)
					}
					return nil
				})
			}
			if err := g.Wait(); err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, job := range jobs {
				fmt.Fprintf(out, "%v %v\n", job.path, job.board.Layout())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&aOutDir, "output", "o", "", "output directory")
	if err := cmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
	cmd.Flags().StringVarP(&aName, "name", "n", "", "file name (without extension) for a single position")
	cmd.Flags().IntVarP(&aJobs, "jobs", "j", runtime.NumCPU(), "number of diagrams to render simultaneously")
	cmd.Flags().IntVarP(&aSize, "size", "s", 44, "square size in pixels")
	cmd.Flags().BoolVarP(&aRotate, "rotate", "r", false, "show the board from Black's side")
	cmd.Flags().BoolVarP(&aCoords, "coords", "c", false, "draw coordinates around the board")
	return cmd
}
