package grouper

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/equivalence"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/parser"
)

// Comparator compares two schema fragments. *equivalence.Comparator
// implements it.
type Comparator interface {
	Compare(a, b document.Value) (*equivalence.Result, error)
}

// ComparatorFunc adapts a function to the Comparator interface.
type ComparatorFunc func(a, b document.Value) (*equivalence.Result, error)

// Compare implements Comparator.
func (f ComparatorFunc) Compare(a, b document.Value) (*equivalence.Result, error) {
	return f(a, b)
}

// Grouper clusters harvested occurrences by schema equivalence.
type Grouper struct {
	comparator  Comparator
	logger      parser.Logger
	concurrency int
}

// New creates a Grouper.
func New(opts ...Option) (*Grouper, error) {
	cfg, err := applyOptions(opts...)
	if err != nil {
		return nil, err
	}
	return &Grouper{
		comparator:  cfg.comparator,
		logger:      cfg.logger,
		concurrency: cfg.concurrency,
	}, nil
}

// Group clusters occurrences with the default settings.
func Group(occurrences []harvester.Occurrence) []*SchemaGroup {
	g, _ := New()
	return g.Group(occurrences)
}

// Group assigns every occurrence with a non-empty schema to exactly one
// group. Response occurrences are processed first, then request bodies,
// each in harvest order. An occurrence joins the first group, in creation
// order, whose representative is equivalent to its unwrapped schema;
// otherwise it starts a new group. Groups are never merged with each other.
func (g *Grouper) Group(occurrences []harvester.Occurrence) []*SchemaGroup {
	var groups []*SchemaGroup
	for _, pass := range [][]harvester.Occurrence{
		harvester.Responses(occurrences),
		harvester.Requests(occurrences),
	} {
		for _, occ := range pass {
			groups = g.assign(groups, occ)
		}
	}
	g.logger.Debug("grouper: grouping complete", "occurrences", len(occurrences), "groups", len(groups))
	return groups
}

func (g *Grouper) assign(groups []*SchemaGroup, occ harvester.Occurrence) []*SchemaGroup {
	fragment := Unwrap(occ.Schema)
	if idx := g.match(groups, fragment, occ); idx >= 0 {
		groups[idx].merge(occ)
		return groups
	}
	group := newGroup(len(groups)+1, occ, fragment)
	g.logger.Debug("grouper: new group", "group", group.ID, "endpoint", occ.Endpoint().String(), "direction", string(occ.Direction))
	return append(groups, group)
}

// match returns the index of the first group equivalent to fragment, or -1.
func (g *Grouper) match(groups []*SchemaGroup, fragment document.Value, occ harvester.Occurrence) int {
	if g.concurrency <= 1 || len(groups) < 2 {
		for i, group := range groups {
			if g.equivalent(group, fragment, occ) {
				return i
			}
		}
		return -1
	}

	// Comparisons run in parallel but the result is still the lowest
	// matching index. Groups after a known match are skipped.
	var first atomic.Int64
	first.Store(int64(len(groups)))
	var eg errgroup.Group
	eg.SetLimit(g.concurrency)
	for i, group := range groups {
		eg.Go(func() error {
			if int64(i) > first.Load() {
				return nil
			}
			if g.equivalent(group, fragment, occ) {
				for {
					cur := first.Load()
					if int64(i) >= cur || first.CompareAndSwap(cur, int64(i)) {
						break
					}
				}
			}
			return nil
		})
	}
	_ = eg.Wait()
	if idx := int(first.Load()); idx < len(groups) {
		return idx
	}
	return -1
}

// equivalent compares a group representative with fragment. Errors and
// panics are logged and count as "not equivalent".
func (g *Grouper) equivalent(group *SchemaGroup, fragment document.Value, occ harvester.Occurrence) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			g.logger.Warn("grouper: comparison panicked",
				"group", group.ID, "endpoint", occ.Endpoint().String(), "panic", fmt.Sprint(r))
			ok = false
		}
	}()
	res, err := g.comparator.Compare(group.Representative, fragment)
	if err != nil {
		g.logger.Warn("grouper: comparison failed",
			"group", group.ID, "endpoint", occ.Endpoint().String(), "error", err)
		return false
	}
	return res != nil && res.Equivalent
}
