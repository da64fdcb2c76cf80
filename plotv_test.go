package plotv

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"
)

const testDirPrefix = "plotv"

// test boolean condition
func tassert(t *testing.T, cond bool, txt string, args ...interface{}) {
	t.Helper() // cause file:line info to show caller
	if !cond {
		t.Fatalf(txt, args...)
	}
}

// setup returns a container path inside a fresh scratch dir
func setup(t *testing.T) (fn string) {
	var err error
	var dir string

	debug := os.Getenv("DEBUG")
	if debug == "1" {
		dir, err = ioutil.TempDir("", testDirPrefix)
		tassert(t, err == nil, "%#v", err)
		fmt.Println(dir)
		// manual cleanup
	} else {
		dir = t.TempDir()
		// automatic cleanup
	}
	return filepath.Join(dir, DefaultFile)
}

func mkbuf(s string) []byte {
	tmp := []byte(s)
	return tmp
}
