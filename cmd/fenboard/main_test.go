package main

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alex65536/fenboard/internal/fen"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := newRootCmd()
	var out, errOut bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), errOut.String(), err
}

func TestCheck(t *testing.T) {
	out, _, err := runCmd(t, "", "check", fen.InitialLayout+" w KQkq - 0 1", "8/8/8/8/8/8/8")
	if err == nil {
		t.Fatalf("invalid position must fail the command")
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected = 2 lines, got = %q", out)
	}
	if lines[0] != "ok "+fen.InitialLayout {
		t.Fatalf("expected = %q, got = %q", "ok "+fen.InitialLayout, lines[0])
	}
	want := "wrong-rank-count invalid layout: must have exactly 8 ranks, got 7"
	if lines[1] != want {
		t.Fatalf("expected = %q, got = %q", want, lines[1])
	}
}

func TestCheckStdin(t *testing.T) {
	out, _, err := runCmd(t, "\n4k3/8/8/8/8/8/8/4K3 w - - 0 1\n\n8/8/8/8/8/8/8/8\n", "check")
	if err != nil {
		t.Fatalf("check: %v", err)
	}
	want := "ok 4k3/8/8/8/8/8/8/4K3\nok 8/8/8/8/8/8/8/8\n"
	if out != want {
		t.Fatalf("expected = %q, got = %q", want, out)
	}
}

func TestShowASCII(t *testing.T) {
	out, _, err := runCmd(t, "", "show", "--ascii", "--no-labels", fen.InitialLayout)
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	want := "rnbqkbnr\npppppppp\n........\n........\n........\n........\nPPPPPPPP\nRNBQKBNR\n"
	if out != want {
		t.Fatalf("expected = %q, got = %q", want, out)
	}
}

func TestShowError(t *testing.T) {
	_, errOut, err := runCmd(t, "", "show", "--ascii", "nothing here")
	if err == nil {
		t.Fatalf("bad position must fail the command")
	}
	if !strings.Contains(errOut, "cannot find board layout") {
		t.Fatalf("unexpected error output: %q", errOut)
	}
}

func TestRender(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	out, _, err := runCmd(t, "", "render", "-o", dir, "-s", "20", "-n", "start", fen.InitialLayout)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	path := filepath.Join(dir, "start.png")
	if want := path + " " + fen.InitialLayout + "\n"; out != want {
		t.Fatalf("expected = %q, got = %q", want, out)
	}
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if cfg.Width != 160 || cfg.Height != 160 {
		t.Fatalf("expected = 160x160, got = %vx%v", cfg.Width, cfg.Height)
	}
}

func TestRenderManyNames(t *testing.T) {
	dir := t.TempDir()
	out, _, err := runCmd(t, "", "render", "-o", dir, "-s", "20", "-j", "2",
		fen.InitialLayout, fen.EmptyLayout, "4k3/8/8/8/8/8/8/4K3")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected = 3 lines, got = %q", out)
	}
	seen := make(map[string]bool)
	for _, ln := range lines {
		path, _, _ := strings.Cut(ln, " ")
		if seen[path] {
			t.Fatalf("duplicate path %q", path)
		}
		seen[path] = true
		if _, err := os.Stat(path); err != nil {
			t.Fatalf("stat: %v", err)
		}
	}
}

func TestRenderNameWithManyPositions(t *testing.T) {
	_, _, err := runCmd(t, "", "render", "-o", t.TempDir(), "-n", "x", fen.InitialLayout, fen.EmptyLayout)
	if err == nil {
		t.Fatalf("--name with many positions must be rejected")
	}
}
