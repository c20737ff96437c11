package document

import (
	"strings"

	"github.com/souhailaS/apistic/oaserrors"
)

// MaxRefDepth is the maximum nesting of $ref chains followed while
// resolving a single reference.
const MaxRefDepth = 100

// ResolveLocalRefs replaces local "$ref" objects ("#/...") in root with the
// values they point to. The tree is modified in place and resolved targets
// are shared between all referencing sites, so callers must treat the
// result as read-only.
//
// References that cannot be inlined are left untouched and reported:
// circular chains, external documents and missing targets. When a $ref
// object carries sibling keywords they are kept on top of the target.
func ResolveLocalRefs(root *Object) []*oaserrors.ReferenceError {
	r := &refResolver{
		root:     root,
		memo:     make(map[string]Value),
		pending:  make(map[string]bool),
		circular: make(map[string]bool),
		walked:   make(map[*Object]bool),
		onStack:  make(map[*Object]bool),
		reported: make(map[string]bool),
	}
	r.walk(root, "", 0)
	return r.errs
}

type refResolver struct {
	root     *Object
	memo     map[string]Value
	pending  map[string]bool
	circular map[string]bool
	walked   map[*Object]bool
	onStack  map[*Object]bool
	reported map[string]bool
	errs     []*oaserrors.ReferenceError
}

func (r *refResolver) walk(v Value, path string, depth int) Value {
	switch tv := v.(type) {
	case *Object:
		if tv == nil {
			return v
		}
		if ref, ok := tv.GetString("$ref"); ok {
			return r.resolve(tv, ref, path, depth)
		}
		if r.walked[tv] {
			return tv
		}
		r.walked[tv] = true
		r.onStack[tv] = true
		for _, k := range tv.keys {
			tv.values[k] = r.walk(tv.values[k], JoinPointer(path, k), depth)
		}
		delete(r.onStack, tv)
	case Array:
		for i := range tv {
			tv[i] = r.walk(tv[i], JoinPointer(path, indexToken(i)), depth)
		}
	}
	return v
}

func (r *refResolver) resolve(refObj *Object, ref, path string, depth int) Value {
	if !strings.HasPrefix(ref, "#") {
		r.report(&oaserrors.ReferenceError{Ref: ref, Path: path, IsExternal: true})
		return refObj
	}
	if r.circular[ref] {
		return refObj
	}
	if resolved, ok := r.memo[ref]; ok {
		return withSiblings(resolved, refObj)
	}
	if r.pending[ref] {
		return r.markCircular(refObj, ref, path)
	}
	if depth >= MaxRefDepth {
		r.report(&oaserrors.ReferenceError{
			Ref:  ref,
			Path: path,
			Cause: &oaserrors.ResourceLimitError{
				ResourceType: "ref_depth",
				Limit:        MaxRefDepth,
				Actual:       int64(depth),
			},
			Message: "maximum reference depth exceeded",
		})
		return refObj
	}

	target, err := Lookup(r.root, ref)
	if err != nil {
		r.report(&oaserrors.ReferenceError{Ref: ref, Path: path, Message: "target not found", Cause: err})
		return refObj
	}
	if obj, ok := AsObject(target); ok && r.onStack[obj] {
		return r.markCircular(refObj, ref, path)
	}

	r.pending[ref] = true
	resolved := r.walk(target, strings.TrimPrefix(ref, "#"), depth+1)
	delete(r.pending, ref)

	if r.circular[ref] {
		return refObj
	}
	r.memo[ref] = resolved
	return withSiblings(resolved, refObj)
}

func (r *refResolver) markCircular(refObj *Object, ref, path string) Value {
	r.circular[ref] = true
	r.report(&oaserrors.ReferenceError{Ref: ref, Path: path, IsCircular: true})
	return refObj
}

func (r *refResolver) report(err *oaserrors.ReferenceError) {
	key := err.Ref
	if err.IsExternal {
		key += "@" + err.Path
	}
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.errs = append(r.errs, err)
}

// withSiblings overlays the non-$ref keys of refObj on a shallow copy of
// target. Without siblings target is returned as-is.
func withSiblings(target Value, refObj *Object) Value {
	if refObj.Len() <= 1 {
		return target
	}
	base, ok := AsObject(target)
	if !ok {
		return target
	}
	out := NewObjectWithCapacity(base.Len() + refObj.Len() - 1)
	for _, k := range base.keys {
		out.Set(k, base.values[k])
	}
	for _, k := range refObj.keys {
		if k != "$ref" {
			out.Set(k, refObj.values[k])
		}
	}
	return out
}
