package main

import (
	"flag"
	"path/filepath"
	"testing"

	"github.com/google/go-cmdtest"

	plotv "github.com/borlox/plotv"
)

var update = flag.Bool("update", false, "update test files with results")

func TestCLI(t *testing.T) {
	ts, err := cmdtest.Read("testdata")
	if err != nil {
		t.Fatal(err)
	}
	ts.KeepRootDirs = true
	// stage a container with fixed dir keys so the transcript stays
	// deterministic; the writer's own key comes from the wall clock
	ts.Setup = func(dir string) (err error) {
		f, err := plotv.OpenFile(filepath.Join(dir, plotv.DefaultFile), plotv.Update)
		if err != nil {
			return
		}
		d, err := f.Mkdir("2024-01-01_12-00-00")
		if err != nil {
			return
		}
		for _, put := range []struct{ name, data string }{
			{"h1", "old h1"},
			{"h1", "the h1 plot"},
			{plotv.CommentName, "with tags!"},
			{plotv.TagName, "yeah, a tag (-:"},
		} {
			err = d.Put(put.name, []byte(put.data))
			if err != nil {
				return
			}
		}
		d, err = f.Mkdir("2024-01-02_09-00-00")
		if err != nil {
			return
		}
		err = d.Put("h2", []byte("the h2 plot"))
		if err != nil {
			return
		}
		err = d.Put(plotv.CommentName, []byte("quieter day"))
		if err != nil {
			return
		}
		return f.Close()
	}
	ts.Commands["plotv"] = cmdtest.InProcessProgram("plotv", run)
	ts.Run(t, *update)
}
