package plotv

import (
	"time"

	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
)

// Plot is anything the writer can save: it knows its own name and how
// to serialize itself.  Rendering to output formats happens later, on
// the reader side; the container only ever sees bytes.
type Plot interface {
	Name() string
	MarshalBinary() ([]byte, error)
}

// RawPlot is a trivial Plot for callers that already hold rendered
// bytes.
type RawPlot struct {
	PlotName string
	Data     []byte
}

func (p *RawPlot) Name() string {
	return p.PlotName
}

func (p *RawPlot) MarshalBinary() ([]byte, error) {
	return p.Data, nil
}

// BucketKey returns the dir key for a session starting at t: the hour
// bucket, formatted as a sortable string with ":" swapped out so the
// key doubles as a directory name.  Saves within the same hour land
// in the same dir; that grouping is the point, not a collision.
func BucketKey(t time.Time) string {
	t = time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), 0, 0, 0, t.Location())
	return t.Format("2006-01-02_15-04-05")
}

// PlotVersion is one writer session against a container.  Lifecycle
// is New -> any number of Save/Comment/Tag -> Close; calling anything
// after Close is a caller error.
type PlotVersion struct {
	file *File
	dir  *Dir

	commented bool
	tagged    bool
}

// New opens filename (DefaultFile when empty) for update and resolves
// or creates the dir for the current hour bucket.  Open failure is
// fatal to the session; there is no retry.
func New(filename string) (pv *PlotVersion, err error) {
	return open(filename, time.Now())
}

func open(filename string, now time.Time) (pv *PlotVersion, err error) {
	defer Return(&err)

	if filename == "" {
		filename = DefaultFile
	}

	pv = &PlotVersion{}
	pv.file, err = OpenFile(filename, Update)
	Ck(err)

	key := BucketKey(now)
	pv.dir = pv.file.Dir(key)
	if pv.dir == nil {
		pv.dir, err = pv.file.Mkdir(key)
		Ck(err)
	}
	log.Debugf("session dir %s in %s", key, filename)
	return
}

// Key returns the session's dir key.
func (pv *PlotVersion) Key() string {
	return pv.dir.Key
}

// Save writes plot into the session dir under name, or under the
// plot's own name when name is "".  Saving the same name again
// appends a new cycle.
func (pv *PlotVersion) Save(plot Plot, name string) (err error) {
	defer Return(&err)
	if name == "" {
		name = plot.Name()
	}
	data, err := plot.MarshalBinary()
	Ck(err)
	err = pv.dir.Put(name, data)
	Ck(err)
	return
}

// Comment writes or overwrites the session's comment.
func (pv *PlotVersion) Comment(text string) (err error) {
	defer Return(&err)
	err = pv.dir.Put(CommentName, []byte(text))
	Ck(err)
	pv.commented = true
	return
}

// Tag writes or overwrites the session's tag.  An empty msg still
// marks the session tagged.
func (pv *PlotVersion) Tag(msg string) (err error) {
	defer Return(&err)
	err = pv.dir.Put(TagName, []byte(msg))
	Ck(err)
	pv.tagged = true
	return
}

// Close releases the container.  A session with no saves, comment, or
// tag is fine; nothing is written on its behalf at close time.
func (pv *PlotVersion) Close() (err error) {
	return pv.file.Close()
}
