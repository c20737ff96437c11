package equivalence

import (
	"fmt"

	"github.com/souhailaS/apistic/document"
)

// DifferenceType tells how two fragments differ at a location.
type DifferenceType string

const (
	// DifferenceAdded means the keyword or entry exists only in the second fragment.
	DifferenceAdded DifferenceType = "added"
	// DifferenceRemoved means the keyword or entry exists only in the first fragment.
	DifferenceRemoved DifferenceType = "removed"
	// DifferenceModified means both fragments hold a different value.
	DifferenceModified DifferenceType = "modified"
)

// Difference is one structural difference between two fragments.
type Difference struct {
	// Path is the JSON Pointer of the difference inside the fragments.
	Path string `json:"path" yaml:"path"`
	// Type is added, removed or modified.
	Type DifferenceType `json:"type" yaml:"type"`
	// Left is the value in the first fragment (nil when added).
	Left document.Value `json:"left,omitempty" yaml:"left,omitempty"`
	// Right is the value in the second fragment (nil when removed).
	Right document.Value `json:"right,omitempty" yaml:"right,omitempty"`
	// Message describes the difference.
	Message string `json:"message" yaml:"message"`
}

// String renders the difference as "modified /properties/id/type: type differs".
func (d Difference) String() string {
	path := d.Path
	if path == "" {
		path = "/"
	}
	return fmt.Sprintf("%s %s: %s", d.Type, path, d.Message)
}

// Result is the outcome of comparing two fragments.
type Result struct {
	// Equivalent is true when no structural difference was found.
	Equivalent bool
	// Differences lists the differences found, in walk order. Unless the
	// comparator collects all differences, it stops at the first one.
	Differences []Difference
}
