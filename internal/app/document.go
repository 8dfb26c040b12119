package app

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/modal/internal/engine/text"
)

// Document is the file being edited and the text store that holds it.
type Document struct {
	// Path is the file path, empty for a scratch buffer.
	Path string

	// Name is the display name.
	Name string

	ReadOnly bool

	Store *text.Store

	// saved is the content last read from or written to Path.
	saved string
}

// NewScratchDocument creates an unnamed empty document.
func NewScratchDocument(opts ...text.Option) *Document {
	return &Document{Name: "[No Name]", Store: text.New("", opts...)}
}

// OpenDocument reads path into a new document. A file that does not exist
// yet opens empty and is created by the first write.
func OpenDocument(path string, readOnly bool, opts ...text.Option) (*Document, error) {
	if path == "" {
		doc := NewScratchDocument(append(opts, text.WithReadOnly(readOnly))...)
		doc.ReadOnly = readOnly
		return doc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, &FileError{Op: "open", Path: path, Err: err}
	}
	store := text.New(string(data), append(opts, text.WithReadOnly(readOnly))...)
	return &Document{
		Path:     path,
		Name:     filepath.Base(path),
		ReadOnly: readOnly,
		Store:    store,
		saved:    store.String(),
	}, nil
}

// IsScratch reports whether the document has no file.
func (d *Document) IsScratch() bool { return d.Path == "" }

// IsModified reports whether the text differs from the file.
func (d *Document) IsModified() bool { return d.Store.String() != d.saved }

// Save writes the document to its file.
func (d *Document) Save() (int, error) {
	if d.IsScratch() {
		return 0, ErrNoFilePath
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the document to path and makes path its file.
func (d *Document) SaveAs(path string) (int, error) {
	if d.ReadOnly {
		return 0, ErrReadOnly
	}
	content := d.Store.String()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return 0, &FileError{Op: "write", Path: path, Err: err}
	}
	d.Path = path
	d.Name = filepath.Base(path)
	d.saved = content
	return len(content), nil
}
