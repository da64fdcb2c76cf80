package plotv

import (
	"fmt"
	"strconv"

	. "github.com/stevegt/goadapt"
)

// reserved object names; metadata lives alongside the plots but is
// excluded from plot enumeration
const (
	CommentName = "comment"
	TagName     = "tag"
)

func reserved(name string) bool {
	return name == CommentName || name == TagName
}

// Dir is one dir (namespace) in a container: one writer session's
// plots plus metadata.  Objects map names to cycle lists; cycle
// numbers are 1-based and only ever grow.
type Dir struct {
	file *File
	Key  string

	names   []string // object names, first-write order
	objects map[string][][]byte
}

type NotExistError struct {
	Dir   string
	Name  string
	Cycle int
}

func (e *NotExistError) Error() string {
	if e.Cycle > 0 {
		return fmt.Sprintf("no such object: %s/%s;%d", e.Dir, e.Name, e.Cycle)
	}
	return fmt.Sprintf("no such object: %s/%s", e.Dir, e.Name)
}

type InvalidIdError struct {
	Id string
}

func (e *InvalidIdError) Error() string {
	return fmt.Sprintf("Invalid id %s", e.Id)
}

// Put appends a new cycle of name to the dir.  An existing name is
// not an error and nothing is merged or replaced.
func (dir *Dir) Put(name string, data []byte) (err error) {
	defer Return(&err)
	Assert(name != "", "empty object name")
	err = dir.file.append(&record{Dir: dir.Key, Name: name, Data: data})
	Ck(err)
	return
}

// Get returns the latest cycle of name.
func (dir *Dir) Get(name string) (data []byte, err error) {
	cycles := dir.objects[name]
	if len(cycles) == 0 {
		return nil, &NotExistError{Dir: dir.Key, Name: name}
	}
	return cycles[len(cycles)-1], nil
}

// GetCycle returns one explicit cycle of name, 1-based.  Bare-name
// reads via Get are the normal path; this is the older addressing
// axis, kept for callers that still want it.
func (dir *Dir) GetCycle(name string, cycle int) (data []byte, err error) {
	cycles := dir.objects[name]
	if cycle < 1 || cycle > len(cycles) {
		return nil, &NotExistError{Dir: dir.Key, Name: name, Cycle: cycle}
	}
	return cycles[cycle-1], nil
}

// Cycles returns how many cycles of name the dir holds.
func (dir *Dir) Cycles(name string) int {
	return len(dir.objects[name])
}

// Ls returns the dir's plot names in first-write order, excluding the
// reserved metadata names.
func (dir *Dir) Ls() (names []string) {
	for _, name := range dir.names {
		if reserved(name) {
			continue
		}
		names = append(names, name)
	}
	return
}

// Comment returns the dir's latest comment, or "" if the session was
// never commented.  Absence is a valid state, not an error.
func (dir *Dir) Comment() string {
	data, err := dir.Get(CommentName)
	if err != nil {
		return ""
	}
	return string(data)
}

// Tag returns the dir's latest tag message and whether the dir was
// tagged at all.  An empty message with tagged == true means someone
// ran tag("") -- still noteworthy, distinct from never tagged.
func (dir *Dir) Tag() (msg string, tagged bool) {
	data, err := dir.Get(TagName)
	if err != nil {
		return "", false
	}
	return string(data), true
}

// Resolve maps a get id to a dir.  An exact key match wins; otherwise
// the id is parsed as a 1-based index into Dirs() order.  A key that
// is purely numeric would shadow an index, but bucket keys never are;
// quote nothing, the precedence is fixed.
func (f *File) Resolve(id string) (dir *Dir, err error) {
	if dir, ok := f.byKey[id]; ok {
		return dir, nil
	}
	n, err := strconv.Atoi(id)
	if err != nil || n < 1 || n > len(f.dirs) {
		return nil, &InvalidIdError{Id: id}
	}
	return f.dirs[n-1], nil
}
