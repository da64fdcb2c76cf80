package plotv

import (
	"fmt"
	"io"
	"os"
	"syscall"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	. "github.com/stevegt/goadapt"
	"github.com/vmihailenco/msgpack"
)

// DefaultFile is the container name used when a caller gives no file
// name.
const DefaultFile = "_plots.pv"

// container magic; written on create, checked on every open
const header = "plotv\n"

// file modes
type Mode int

const (
	ReadOnly Mode = iota
	Update
)

// record is the container's unit of storage: one write of one named
// object into one dir.  A record with an empty Name is a dir-create
// marker, so a session that never saves anything still shows up in
// list order after a reopen.
type record struct {
	Dir  string
	Name string
	Data []byte
}

// File is an open container.  The on-disk layout is the magic header
// line followed by msgpack-encoded records in write order; all state
// is rebuilt in memory on open by replaying the log.  Cycles come for
// free: a repeated Dir/Name pair is simply a later record, the old
// one is never touched.
type File struct {
	Path string
	mode Mode
	fh   *os.File
	enc  *msgpack.Encoder

	dirs  []*Dir
	byKey map[string]*Dir
}

type NotPlotvError struct {
	Path string
}

func (e *NotPlotvError) Error() string {
	return fmt.Sprintf("not a plotv container: %s", e.Path)
}

// OpenFile opens the container at path.  Update mode creates the file
// if it's absent and appends all writes at the end; ReadOnly mode
// fails if the file is missing or malformed.  Either way the record
// log is replayed so the dir tables are complete after open.
func OpenFile(path string, mode Mode) (f *File, err error) {
	defer Return(&err)

	f = &File{Path: path, mode: mode, byKey: make(map[string]*Dir)}

	switch mode {
	case Update:
		f.fh, err = os.OpenFile(path, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0644)
		Ck(err)
	case ReadOnly:
		f.fh, err = os.Open(path)
		if err != nil {
			return nil, errors.Wrapf(err, "cannot open: %s", path)
		}
	default:
		Assert(false, "unhandled mode %d", mode)
	}

	info, err := f.fh.Stat()
	Ck(err)
	if info.Size() == 0 {
		if mode == ReadOnly {
			return nil, &NotPlotvError{Path: path}
		}
		// brand new container; stamp the magic
		n, err := f.fh.Write([]byte(header))
		Ck(err)
		Assert(n == len(header))
	} else {
		err = f.readHeader()
		if err != nil {
			return nil, err
		}
		err = f.replay()
		Ck(err)
	}

	if mode == Update {
		f.enc = msgpack.NewEncoder(f.fh)
	}
	log.Debugf("opened %s mode %d with %d dirs", path, mode, len(f.dirs))
	return
}

func (f *File) readHeader() (err error) {
	buf := make([]byte, len(header))
	_, err = io.ReadFull(f.fh, buf)
	if err != nil || string(buf) != header {
		return &NotPlotvError{Path: f.Path}
	}
	return
}

// replay decodes every record in the log, in write order.
func (f *File) replay() (err error) {
	defer Return(&err)
	dec := msgpack.NewDecoder(f.fh)
	for {
		var rec record
		err := dec.Decode(&rec)
		if errors.Cause(err) == io.EOF {
			break
		}
		Ck(err)
		f.load(&rec)
	}
	return
}

// load folds one record into the in-memory dir tables.
func (f *File) load(rec *record) (dir *Dir) {
	dir, ok := f.byKey[rec.Dir]
	if !ok {
		dir = &Dir{file: f, Key: rec.Dir, objects: make(map[string][][]byte)}
		f.byKey[rec.Dir] = dir
		f.dirs = append(f.dirs, dir)
	}
	if rec.Name == "" {
		// dir-create marker
		return
	}
	if len(dir.objects[rec.Name]) == 0 {
		dir.names = append(dir.names, rec.Name)
	}
	dir.objects[rec.Name] = append(dir.objects[rec.Name], rec.Data)
	return
}

// append encodes rec onto the log and folds it into the dir tables.
func (f *File) append(rec *record) (err error) {
	defer Return(&err)
	ErrnoIf(f.fh == nil, syscall.EBADF, "container is closed: %s", f.Path)
	ErrnoIf(f.mode != Update, syscall.EROFS, "not open for update: %s", f.Path)
	err = f.enc.Encode(rec)
	Ck(err)
	f.load(rec)
	return
}

// Mkdir returns the dir named key, creating it if absent.  Creation
// writes a marker record so an empty dir survives a reopen.
func (f *File) Mkdir(key string) (dir *Dir, err error) {
	defer Return(&err)
	// XXX sanitize key
	if dir, ok := f.byKey[key]; ok {
		return dir, nil
	}
	err = f.append(&record{Dir: key})
	Ck(err)
	return f.byKey[key], nil
}

// Dir returns the dir named key, or nil if there is none.
func (f *File) Dir(key string) *Dir {
	return f.byKey[key]
}

// Dirs returns every dir in the container, in first-write order.  The
// order is whatever the log yields -- stable across reopens, not
// necessarily chronological.
func (f *File) Dirs() []*Dir {
	return f.dirs
}

// Close releases the file handle.  Using the File afterwards is a
// caller error.
func (f *File) Close() (err error) {
	if f.fh == nil {
		return
	}
	err = f.fh.Close()
	f.fh = nil
	return
}
