package webui

import (
	"embed"
	"io/fs"
	"os"

	"github.com/alex65536/fenboard/internal/util/mergefs"
)

//go:embed static
var ourStaticData embed.FS

//go:embed template
var templates embed.FS

var embeddedStatic = func() fs.FS {
	our, err := fs.Sub(ourStaticData, "static")
	if err != nil {
		panic(err)
	}
	return our
}()

// staticFS returns the embedded static files. Files from overrideDir, if set,
// take precedence over the embedded ones.
func staticFS(overrideDir string) fs.FS {
	if overrideDir == "" {
		return embeddedStatic
	}
	return mergefs.New(os.DirFS(overrideDir), embeddedStatic)
}
