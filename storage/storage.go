package storage

import (
	"errors"
	"io"
)

// Slot identifies one of the two fixed upload targets.
type Slot string

const (
	Primary   Slot = "primary"
	Secondary Slot = "secondary"
)

// Slots lists the upload targets in display order.
var Slots = []Slot{Primary, Secondary}

var ErrUnknownSlot = errors.New("unknown template slot")

// Filename returns the fixed file name a slot is stored under.
func (s Slot) Filename() (string, error) {
	switch s {
	case Primary:
		return "uploaded_primary_template.html", nil
	case Secondary:
		return "uploaded_secondary_template.html", nil
	default:
		return "", ErrUnknownSlot
	}
}

// TemplateStore abstracts uploaded template persistence for dependency injection and testing.
type TemplateStore interface {
	// Save replaces the slot's file with the contents of src and returns its file name.
	Save(slot Slot, src io.Reader) (string, error)
	// Read returns the stored bytes, or ok=false if nothing was uploaded yet.
	Read(slot Slot) (content []byte, ok bool, err error)
}
