package equivalence

import (
	"fmt"
	"strings"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/oaserrors"
)

// DefaultMaxDepth bounds how deep the comparison descends into nested
// sub-schemas.
const DefaultMaxDepth = 512

// Comparator decides structural equivalence of schema fragments.
// A Comparator is immutable and safe for concurrent use.
type Comparator struct {
	ignored        map[string]bool
	withExtensions bool
	maxDepth       int
	all            bool
}

var defaultComparator = &Comparator{
	ignored:  keywordSet(DefaultIgnoredKeywords),
	maxDepth: DefaultMaxDepth,
}

// Default returns the comparator used by the package-level functions.
func Default() *Comparator { return defaultComparator }

// Equivalent reports whether a and b are structurally equivalent using the
// default settings. Comparison errors count as not equivalent.
func Equivalent(a, b document.Value) bool {
	return defaultComparator.Equivalent(a, b)
}

// Compare compares a and b using the default settings.
func Compare(a, b document.Value) (*Result, error) {
	return defaultComparator.Compare(a, b)
}

// Equivalent reports whether a and b are structurally equivalent.
// Comparison errors count as not equivalent.
func (c *Comparator) Equivalent(a, b document.Value) bool {
	res, err := c.Compare(a, b)
	return err == nil && res.Equivalent
}

// Compare walks a and b side by side and reports their differences.
// Annotation keywords are skipped at every schema level. A keyword whose
// value has the wrong shape, such as "properties" holding an array,
// yields an *oaserrors.ComparisonError.
func (c *Comparator) Compare(a, b document.Value) (*Result, error) {
	w := &walk{c: c}
	if err := w.schema(a, b, "", 0); err != nil {
		return nil, err
	}
	return &Result{Equivalent: len(w.diffs) == 0, Differences: w.diffs}, nil
}

func (c *Comparator) isIgnored(keyword string) bool {
	if c.ignored[keyword] {
		return true
	}
	return !c.withExtensions && strings.HasPrefix(keyword, "x-")
}

type walk struct {
	c     *Comparator
	diffs []Difference
}

func (w *walk) done() bool {
	return !w.c.all && len(w.diffs) > 0
}

func (w *walk) add(typ DifferenceType, path string, left, right document.Value, format string, args ...any) {
	w.diffs = append(w.diffs, Difference{
		Path:    path,
		Type:    typ,
		Left:    left,
		Right:   right,
		Message: fmt.Sprintf(format, args...),
	})
}

func (w *walk) schema(a, b document.Value, path string, depth int) error {
	if depth > w.c.maxDepth {
		return &oaserrors.ComparisonError{
			Path:    path,
			Message: "schema nesting too deep",
			Cause: &oaserrors.ResourceLimitError{
				ResourceType: "comparison_depth",
				Limit:        int64(w.c.maxDepth),
			},
		}
	}

	ao, aok := document.AsObject(a)
	bo, bok := document.AsObject(b)
	if !aok || !bok {
		if !document.Equal(a, b) {
			w.add(DifferenceModified, path, a, b, "schema differs")
		}
		return nil
	}

	// The type keyword is checked first so unrelated shapes are rejected
	// without descending into them.
	at, aHas := ao.Get("type")
	bt, bHas := bo.Get("type")
	switch {
	case aHas && !bHas:
		w.add(DifferenceRemoved, document.JoinPointer(path, "type"), at, nil, "type removed")
		return nil
	case !aHas && bHas:
		w.add(DifferenceAdded, document.JoinPointer(path, "type"), nil, bt, "type added")
		return nil
	case aHas:
		same, err := typesEqual(at, bt, document.JoinPointer(path, "type"))
		if err != nil {
			return err
		}
		if !same {
			w.add(DifferenceModified, document.JoinPointer(path, "type"), at, bt, "type differs")
			return nil
		}
	}

	for k, av := range ao.All() {
		if k == "type" || w.c.isIgnored(k) {
			continue
		}
		kp := document.JoinPointer(path, k)
		bv, ok := bo.Get(k)
		if !ok {
			w.add(DifferenceRemoved, kp, av, nil, "keyword %q removed", k)
		} else if err := w.keyword(k, av, bv, kp, depth); err != nil {
			return err
		}
		if w.done() {
			return nil
		}
	}
	for k, bv := range bo.All() {
		if k == "type" || w.c.isIgnored(k) || ao.Has(k) {
			continue
		}
		w.add(DifferenceAdded, document.JoinPointer(path, k), nil, bv, "keyword %q added", k)
		if w.done() {
			return nil
		}
	}
	return nil
}

func (w *walk) keyword(k string, a, b document.Value, path string, depth int) error {
	switch kindOf(k) {
	case kindSchema:
		if err := checkSchema(k, path, a, b); err != nil {
			return err
		}
		return w.schema(a, b, path, depth+1)

	case kindSchemaMap:
		return w.schemaMap(k, a, b, path, depth)

	case kindSchemaArray:
		return w.schemaArray(k, a, b, path, depth)

	case kindItems:
		_, aArr := a.(document.Array)
		_, bArr := b.(document.Array)
		switch {
		case aArr && bArr:
			return w.schemaArray(k, a, b, path, depth)
		case aArr != bArr:
			w.add(DifferenceModified, path, a, b, "items form differs")
			return nil
		}
		if err := checkSchema(k, path, a, b); err != nil {
			return err
		}
		return w.schema(a, b, path, depth+1)

	case kindStringSet:
		as, err := stringSet(k, path, a)
		if err != nil {
			return err
		}
		bs, err := stringSet(k, path, b)
		if err != nil {
			return err
		}
		if !sameSet(as, bs) {
			w.add(DifferenceModified, path, a, b, "%s differs", k)
		}
		return nil

	case kindType:
		same, err := typesEqual(a, b, path)
		if err != nil {
			return err
		}
		if !same {
			w.add(DifferenceModified, path, a, b, "type differs")
		}
		return nil
	}

	if !document.Equal(a, b) {
		w.add(DifferenceModified, path, a, b, "%s differs", k)
	}
	return nil
}

func (w *walk) schemaMap(k string, a, b document.Value, path string, depth int) error {
	am, aok := document.AsObject(a)
	bm, bok := document.AsObject(b)
	if !aok || !bok {
		return malformed(k, path, "expected an object of schemas")
	}
	for name, av := range am.All() {
		np := document.JoinPointer(path, name)
		bv, ok := bm.Get(name)
		if !ok {
			w.add(DifferenceRemoved, np, av, nil, "%s entry %q removed", k, name)
		} else {
			if err := checkSchema(k, np, av, bv); err != nil {
				return err
			}
			if err := w.schema(av, bv, np, depth+1); err != nil {
				return err
			}
		}
		if w.done() {
			return nil
		}
	}
	for name, bv := range bm.All() {
		if am.Has(name) {
			continue
		}
		w.add(DifferenceAdded, document.JoinPointer(path, name), nil, bv, "%s entry %q added", k, name)
		if w.done() {
			return nil
		}
	}
	return nil
}

func (w *walk) schemaArray(k string, a, b document.Value, path string, depth int) error {
	aa, aok := document.AsArray(a)
	ba, bok := document.AsArray(b)
	if !aok || !bok {
		return malformed(k, path, "expected an array of schemas")
	}
	if len(aa) != len(ba) {
		w.add(DifferenceModified, path, a, b, "%s has %d schemas, want %d", k, len(ba), len(aa))
		return nil
	}
	for i := range aa {
		ip := document.JoinPointer(path, fmt.Sprint(i))
		if err := checkSchema(k, ip, aa[i], ba[i]); err != nil {
			return err
		}
		if err := w.schema(aa[i], ba[i], ip, depth+1); err != nil {
			return err
		}
		if w.done() {
			return nil
		}
	}
	return nil
}

// checkSchema rejects sub-schema values that are neither objects nor
// booleans.
func checkSchema(k, path string, values ...document.Value) error {
	for _, v := range values {
		switch v.(type) {
		case *document.Object, document.Bool:
		default:
			return malformed(k, path, fmt.Sprintf("expected a schema, got %s", document.KindOf(v)))
		}
	}
	return nil
}

func typesEqual(a, b document.Value, path string) (bool, error) {
	as, err := typeSet(a, path)
	if err != nil {
		return false, err
	}
	bs, err := typeSet(b, path)
	if err != nil {
		return false, err
	}
	return sameSet(as, bs), nil
}

func typeSet(v document.Value, path string) (map[string]bool, error) {
	if s, ok := v.(document.String); ok {
		return map[string]bool{string(s): true}, nil
	}
	return stringSet("type", path, v)
}

func stringSet(k, path string, v document.Value) (map[string]bool, error) {
	arr, ok := v.(document.Array)
	if !ok {
		return nil, malformed(k, path, "expected an array of strings")
	}
	set := make(map[string]bool, len(arr))
	for _, item := range arr {
		s, ok := item.(document.String)
		if !ok {
			return nil, malformed(k, path, "expected an array of strings")
		}
		set[string(s)] = true
	}
	return set, nil
}

func sameSet(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func malformed(k, path, msg string) error {
	return &oaserrors.ComparisonError{Path: path, Keyword: k, Message: msg}
}

func keywordSet(keywords []string) map[string]bool {
	set := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		set[k] = true
	}
	return set
}
