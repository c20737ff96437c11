package metrics

import (
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/harvester"
	"github.com/souhailaS/apistic/parser"
)

// maxSchemaDepth bounds the property walk on deeply nested schemas.
const maxSchemaDepth = 512

// Report holds structural counts for one analyzed document. Ratios are
// zero when their denominator is zero.
type Report struct {
	Paths        int `json:"paths" yaml:"paths"`
	Operations   int `json:"operations" yaml:"operations"`
	Parameters   int `json:"parameters" yaml:"parameters"`
	NamedSchemas int `json:"namedSchemas" yaml:"namedSchemas"`

	OperationsPerPath      float64 `json:"operationsPerPath" yaml:"operationsPerPath"`
	ParametersPerOperation float64 `json:"parametersPerOperation" yaml:"parametersPerOperation"`

	ResponseSchemas int `json:"responseSchemas" yaml:"responseSchemas"`
	RequestSchemas  int `json:"requestSchemas" yaml:"requestSchemas"`

	Groups         int `json:"groups" yaml:"groups"`
	ResponseGroups int `json:"responseGroups" yaml:"responseGroups"`
	RequestGroups  int `json:"requestGroups" yaml:"requestGroups"`
	SharedGroups   int `json:"sharedGroups" yaml:"sharedGroups"`
	ReusedGroups   int `json:"reusedGroups" yaml:"reusedGroups"`

	// ReuseRatio is 1 - groups/schemas: 0 when every schema is distinct,
	// approaching 1 when a few groups cover many schemas.
	ReuseRatio            float64 `json:"reuseRatio" yaml:"reuseRatio"`
	EndpointsPerGroup     float64 `json:"endpointsPerGroup" yaml:"endpointsPerGroup"`
	Properties            int     `json:"properties" yaml:"properties"`
	PropertiesPerGroup    float64 `json:"propertiesPerGroup" yaml:"propertiesPerGroup"`
	LargestGroup          int     `json:"largestGroup,omitempty" yaml:"largestGroup,omitempty"`
	LargestGroupEndpoints int     `json:"largestGroupEndpoints,omitempty" yaml:"largestGroupEndpoints,omitempty"`

	PerGroup []GroupMetrics `json:"perGroup,omitempty" yaml:"perGroup,omitempty"`
}

// GroupMetrics holds the counts of one schema group.
type GroupMetrics struct {
	ID         int `json:"id" yaml:"id"`
	Endpoints  int `json:"endpoints" yaml:"endpoints"`
	Requests   int `json:"requests" yaml:"requests"`
	Responses  int `json:"responses" yaml:"responses"`
	Properties int `json:"properties" yaml:"properties"`
}

// Compute derives the report from the normalized document, its harvested
// occurrences and the resulting groups. Any argument may be empty.
func Compute(doc *document.Object, occurrences []harvester.Occurrence, groups []*grouper.SchemaGroup) Report {
	stats := parser.GetDocumentStats(doc)
	r := Report{
		Paths:        stats.PathCount,
		Operations:   stats.OperationCount,
		NamedSchemas: stats.SchemaCount,
		Parameters:   countParameters(doc),
	}
	r.OperationsPerPath = ratio(r.Operations, r.Paths)
	r.ParametersPerOperation = ratio(r.Parameters, r.Operations)

	r.ResponseSchemas = len(harvester.Responses(occurrences))
	r.RequestSchemas = len(harvester.Requests(occurrences))

	endpoints := 0
	r.Groups = len(groups)
	for _, g := range groups {
		gm := GroupMetrics{
			ID:         g.ID,
			Endpoints:  len(g.Endpoints),
			Requests:   len(g.EndpointsFor(harvester.DirectionRequest)),
			Responses:  len(g.EndpointsFor(harvester.DirectionResponse)),
			Properties: CountProperties(g.Representative),
		}
		r.PerGroup = append(r.PerGroup, gm)

		endpoints += gm.Endpoints
		r.Properties += gm.Properties
		if gm.Endpoints > 1 {
			r.ReusedGroups++
		}
		req := g.HasDirection(harvester.DirectionRequest)
		resp := g.HasDirection(harvester.DirectionResponse)
		if req {
			r.RequestGroups++
		}
		if resp {
			r.ResponseGroups++
		}
		if req && resp {
			r.SharedGroups++
		}
		if gm.Endpoints > r.LargestGroupEndpoints {
			r.LargestGroup = g.ID
			r.LargestGroupEndpoints = gm.Endpoints
		}
	}

	if schemas := r.ResponseSchemas + r.RequestSchemas; schemas > 0 && r.Groups > 0 {
		r.ReuseRatio = 1 - ratio(r.Groups, schemas)
	}
	r.EndpointsPerGroup = ratio(endpoints, r.Groups)
	r.PropertiesPerGroup = ratio(r.Properties, r.Groups)
	return r
}

func ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// countParameters counts the effective parameters of every operation:
// path-level parameters are inherited unless the operation redeclares the
// same name and location.
func countParameters(doc *document.Object) int {
	if doc == nil {
		return 0
	}
	paths, ok := doc.GetObject("paths")
	if !ok {
		return 0
	}
	total := 0
	for _, raw := range paths.All() {
		item, ok := document.AsObject(raw)
		if !ok {
			continue
		}
		pathParams, _ := item.GetArray("parameters")
		for method, rawOp := range item.All() {
			op, ok := document.AsObject(rawOp)
			if !ok || !parser.IsHTTPMethod(method) {
				continue
			}
			opParams, _ := op.GetArray("parameters")
			seen := make(map[string]bool, len(opParams)+len(pathParams))
			for _, p := range opParams {
				if key, ok := parameterKey(p); ok {
					seen[key] = true
				}
			}
			total += len(opParams)
			for _, p := range pathParams {
				if key, ok := parameterKey(p); !ok || !seen[key] {
					total++
				}
			}
		}
	}
	return total
}

// parameterKey identifies a parameter by its $ref or by location and name.
// Entries that are not objects have no identity: they never override and
// are never overridden, so each one is counted on its own.
func parameterKey(p document.Value) (string, bool) {
	obj, ok := document.AsObject(p)
	if !ok {
		return "", false
	}
	if ref, ok := obj.GetString("$ref"); ok {
		return ref, true
	}
	name, _ := obj.GetString("name")
	in, _ := obj.GetString("in")
	return in + ":" + name, true
}

// CountProperties counts the properties declared anywhere in schema,
// including nested objects, array items and composed sub-schemas.
func CountProperties(schema document.Value) int {
	return countProperties(schema, 0)
}

func countProperties(v document.Value, depth int) int {
	obj, ok := document.AsObject(v)
	if !ok || depth > maxSchemaDepth {
		return 0
	}
	n := 0
	if props, ok := obj.GetObject("properties"); ok {
		n += props.Len()
		for _, p := range props.All() {
			n += countProperties(p, depth+1)
		}
	}
	for _, k := range []string{"items", "additionalProperties", "not"} {
		if sub, ok := obj.Get(k); ok {
			n += countProperties(sub, depth+1)
		}
	}
	for _, k := range []string{"allOf", "anyOf", "oneOf", "prefixItems"} {
		subs, _ := obj.GetArray(k)
		for _, sub := range subs {
			n += countProperties(sub, depth+1)
		}
	}
	return n
}
