package main

import (
	"fmt"
	"os"
	"runtime"
	"strings"

	"github.com/sirupsen/logrus"
	log "github.com/sirupsen/logrus"

	plotv "github.com/borlox/plotv"

	"github.com/docopt/docopt-go"
)

func init() {
	var debug string
	debug = os.Getenv("DEBUG")
	if debug == "1" {
		log.SetLevel(log.DebugLevel)
	}
	logrus.SetReportCaller(true)
	formatter := &logrus.TextFormatter{
		CallerPrettyfier: caller(),
		FieldMap: logrus.FieldMap{
			logrus.FieldKeyFile: "caller",
		},
	}
	formatter.TimestampFormat = "15:04:05.999999999"
	logrus.SetFormatter(formatter)
}

// caller returns string presentation of log caller which is formatted as
// `/path/to/file.go:line_number`. e.g. `/internal/app/api.go:25`
func caller() func(*runtime.Frame) (function string, file string) {
	return func(f *runtime.Frame) (function string, file string) {
		p, _ := os.Getwd()
		return "", fmt.Sprintf("%s:%d", strings.TrimPrefix(f.File, p), f.Line)
	}
}

type Opts struct {
	List  bool
	Get   bool
	Id    string   `docopt:"<id>"`
	File  string   `docopt:"<file>"`
	Types []string `docopt:"--type"`
	Out   string   `docopt:"-o"`
}

func main() {
	// see https://github.com/google/go-cmdtest
	os.Exit(run())
}

func run() (rc int) {

	usage := `plotv

Usage:
  plotv list [<file>]
  plotv get [-t <type>]... [-o <dir>] <id> [<file>]

Options:
  -h --help         Show this screen.
  -t <type> --type <type>  Add an output file type (default: png).
  -o <dir>          Output directory template; {key} expands to the dir key [default: {key}].

File defaults to '` + plotv.DefaultFile + `'.
`
	parser := &docopt.Parser{OptionsFirst: false}
	o, _ := parser.ParseArgs(usage, os.Args[1:], "0.1")
	var opts Opts
	err := o.Bind(&opts)
	if err != nil {
		log.Error(err)
		return 22
	}
	log.Debug(opts)

	filename := opts.File
	if filename == "" {
		filename = plotv.DefaultFile
	}

	switch true {
	case opts.List:
		return list(filename)
	case opts.Get:
		return get(opts.Id, filename, opts.Out, addTypes(opts.Types))
	}
	return 0
}

// addTypes builds the export format list: png is always in, -t
// appends more, duplicates are ignored.
func addTypes(extra []string) (types []string) {
	types = []string{"png"}
	for _, tp := range extra {
		dup := false
		for _, have := range types {
			if have == tp {
				dup = true
				break
			}
		}
		if !dup {
			types = append(types, tp)
		}
	}
	return
}

func list(filename string) (rc int) {
	f, err := plotv.OpenFile(filename, plotv.ReadOnly)
	if err != nil {
		fmt.Println("Error:", err)
		return 42
	}
	defer f.Close()

	for i, dir := range f.Dirs() {
		mark := " "
		msg, tagged := dir.Tag()
		if tagged {
			mark = "*"
		}
		fmt.Printf("%2d %s %s - %s\n", i+1, mark, dir.Key, dir.Comment())
		if tagged {
			fmt.Printf("\t%s\n", msg)
		}
	}
	return 0
}

func get(id, filename, template string, types []string) (rc int) {
	f, err := plotv.OpenFile(filename, plotv.ReadOnly)
	if err != nil {
		fmt.Println("Error:", err)
		return 42
	}
	defer f.Close()

	dir, err := f.Resolve(id)
	if err != nil {
		fmt.Println("Error:", err)
		return 42
	}

	fmt.Printf("Loading plots for %s\n", dir.Key)
	fmt.Printf(" -> %s\n", dir.Comment())

	outdir := plotv.OutDir(template, dir.Key)
	if _, err := os.Stat(outdir); os.IsNotExist(err) {
		fmt.Println("Creating output directory:", outdir)
	}
	err = dir.Export(outdir, types)
	if err != nil {
		fmt.Println("Error:", err)
		return 43
	}
	return 0
}
