package plotv

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/renameio"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// A RenderFunc converts a stored plot payload into one output format,
// writing the result to w.
type RenderFunc func(w io.Writer, data []byte) error

// rawRender is the fallback for formats with no registered renderer:
// the payload was serialized by the caller's Plot, so it's already in
// its output form and we just copy it through.
func rawRender(w io.Writer, data []byte) (err error) {
	_, err = w.Write(data)
	return
}

var renderers = map[string]RenderFunc{}

// RegisterRenderer installs fn as the converter for format (a file
// extension like "png").  Unregistered formats fall back to a raw
// copy of the stored payload.
func RegisterRenderer(format string, fn RenderFunc) {
	renderers[format] = fn
}

func render(format string) RenderFunc {
	if fn, ok := renderers[format]; ok {
		return fn
	}
	return rawRender
}

// Placeholder is the token in an output directory template that gets
// replaced with the dir key, so one template yields per-dir output
// directories.  The default template is the bare placeholder.
const Placeholder = "{key}"

// OutDir expands an output directory template for key.  A template
// without the placeholder passes through as a literal directory.
func OutDir(template, key string) string {
	return strings.ReplaceAll(template, Placeholder, key)
}

// Export writes the latest cycle of every plot in dir to outdir, once
// per requested format, as <outdir>/<name>.<format>.  The directory
// is created if needed; each file lands atomically.
func (dir *Dir) Export(outdir string, formats []string) (err error) {
	defer Return(&err)

	err = os.MkdirAll(outdir, 0755)
	Ck(err)

	for _, name := range dir.Ls() {
		data, err := dir.Get(name)
		Ck(err)
		for _, format := range formats {
			path := filepath.Join(outdir, name+"."+format)
			log.Debugf("export %s", path)
			err = exportObj(path, format, data)
			Ck(err)
		}
	}
	return
}

func exportObj(path, format string, data []byte) (err error) {
	defer Return(&err)
	pf, err := renameio.TempFile("", path)
	Ck(err)
	defer pf.Cleanup()
	err = render(format)(pf, data)
	Ck(err)
	err = pf.CloseAtomicallyReplace()
	Ck(err)
	return
}
