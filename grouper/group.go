package grouper

import (
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/harvester"
)

// SchemaGroup is a cluster of structurally equivalent body schemas.
type SchemaGroup struct {
	// ID is the 1-based creation index of the group.
	ID int `json:"id" yaml:"id"`

	// Representative is the schema of the first occurrence that created the
	// group, after array unwrapping. It is never replaced.
	Representative document.Value `json:"representative" yaml:"representative"`

	// Pointer is the JSON Pointer the representative was harvested from.
	Pointer string `json:"pointer,omitempty" yaml:"pointer,omitempty"`

	// Endpoints lists every (path, method, status code) using the schema,
	// without duplicates, in the order they joined. Request endpoints have
	// an empty status code.
	Endpoints []harvester.Endpoint `json:"endpoints" yaml:"endpoints"`

	// Directions lists request and/or response, in the order they joined.
	Directions []harvester.Direction `json:"directions" yaml:"directions"`
}

func newGroup(id int, occ harvester.Occurrence, fragment document.Value) *SchemaGroup {
	return &SchemaGroup{
		ID:             id,
		Representative: fragment,
		Pointer:        occ.Pointer,
		Endpoints:      []harvester.Endpoint{occ.Endpoint()},
		Directions:     []harvester.Direction{occ.Direction},
	}
}

// HasEndpoint reports whether e already belongs to the group.
func (g *SchemaGroup) HasEndpoint(e harvester.Endpoint) bool {
	for _, have := range g.Endpoints {
		if have == e {
			return true
		}
	}
	return false
}

// HasDirection reports whether the group is used in direction d.
func (g *SchemaGroup) HasDirection(d harvester.Direction) bool {
	for _, have := range g.Directions {
		if have == d {
			return true
		}
	}
	return false
}

// EndpointsFor returns the endpoints that use the group in direction d.
func (g *SchemaGroup) EndpointsFor(d harvester.Direction) []harvester.Endpoint {
	var out []harvester.Endpoint
	for _, e := range g.Endpoints {
		if (e.StatusCode == "") == (d == harvester.DirectionRequest) {
			out = append(out, e)
		}
	}
	return out
}

func (g *SchemaGroup) merge(occ harvester.Occurrence) {
	if e := occ.Endpoint(); !g.HasEndpoint(e) {
		g.Endpoints = append(g.Endpoints, e)
	}
	if !g.HasDirection(occ.Direction) {
		g.Directions = append(g.Directions, occ.Direction)
	}
}

// Unwrap returns the fragment used for grouping: the "items" schema when
// schema has one, else schema itself. Only one level is unwrapped. A
// schema with "type": "array" but no "items" is not unwrapped: there is
// no element schema to group by, so it is grouped as written.
func Unwrap(schema document.Value) document.Value {
	obj, ok := document.AsObject(schema)
	if !ok {
		return schema
	}
	// "type: array" without items has nothing to unwrap.
	if items, ok := obj.Get("items"); ok {
		return items
	}
	return schema
}
