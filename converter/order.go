package converter

import (
	"github.com/souhailaS/apistic/document"
	"github.com/souhailaS/apistic/parser"
)

// topLevelOrder is the conventional key order of an OpenAPI 3 root object.
var topLevelOrder = []string{
	"openapi", "info", "externalDocs", "servers", "tags", "paths", "components", "security",
}

// restoreOrder reorders the converted document dst to follow the key order
// of the Swagger 2.0 source src. kin-openapi models paths, responses and
// schema properties as Go maps, so without this step harvesting a
// converted document would visit them in sorted order.
func restoreOrder(src, dst *document.Object) {
	dst.Reorder(topLevelOrder)

	srcPaths, ok := src.GetObject("paths")
	if !ok {
		return
	}
	if dstPaths, ok := dst.GetObject("paths"); ok {
		dstPaths.Reorder(srcPaths.Keys())
		for path, srcItemVal := range srcPaths.All() {
			srcItem, ok := document.AsObject(srcItemVal)
			if !ok {
				continue
			}
			if dstItem, ok := dstPaths.GetObject(path); ok {
				restorePathItemOrder(srcItem, dstItem)
			}
		}
	}

	if defs, ok := src.GetObject("definitions"); ok {
		if comps, ok := dst.GetObject("components"); ok {
			if schemas, ok := comps.GetObject("schemas"); ok {
				reorderLike(defs, schemas)
			}
		}
	}
}

func restorePathItemOrder(src, dst *document.Object) {
	dst.Reorder(src.Keys())
	for method, srcOpVal := range src.All() {
		if !parser.IsHTTPMethod(method) {
			continue
		}
		srcOp, ok := document.AsObject(srcOpVal)
		if !ok {
			continue
		}
		dstOp, ok := dst.GetObject(method)
		if !ok {
			continue
		}
		dstOp.Reorder(src2OperationOrder(srcOp.Keys()))

		if params, ok := srcOp.GetArray("parameters"); ok {
			for _, pv := range params {
				p, ok := document.AsObject(pv)
				if !ok {
					continue
				}
				if in, _ := p.GetString("in"); in != "body" {
					continue
				}
				if schema, ok := p.Get("schema"); ok {
					if rb, ok := dstOp.GetObject("requestBody"); ok {
						reorderContentSchemas(schema, rb)
					}
				}
			}
		}

		srcResponses, ok := srcOp.GetObject("responses")
		if !ok {
			continue
		}
		dstResponses, ok := dstOp.GetObject("responses")
		if !ok {
			continue
		}
		dstResponses.Reorder(srcResponses.Keys())
		for code, srcRespVal := range srcResponses.All() {
			srcResp, ok := document.AsObject(srcRespVal)
			if !ok {
				continue
			}
			dstResp, ok := dstResponses.GetObject(code)
			if !ok {
				continue
			}
			if schema, ok := srcResp.Get("schema"); ok {
				reorderContentSchemas(schema, dstResp)
			}
		}
	}
}

// src2OperationOrder maps Swagger 2.0 operation keys to their OpenAPI 3
// positions: the body parameter becomes requestBody right after parameters.
func src2OperationOrder(keys []string) []string {
	out := make([]string, 0, len(keys)+1)
	for _, k := range keys {
		out = append(out, k)
		if k == "parameters" {
			out = append(out, "requestBody")
		}
	}
	return out
}

// reorderContentSchemas applies the key order of srcSchema to every
// content[*].schema under holder (a response or request body).
func reorderContentSchemas(srcSchema document.Value, holder *document.Object) {
	content, ok := holder.GetObject("content")
	if !ok {
		return
	}
	for _, mtVal := range content.All() {
		mt, ok := document.AsObject(mtVal)
		if !ok {
			continue
		}
		if schema, ok := mt.Get("schema"); ok {
			reorderLike(srcSchema, schema)
		}
	}
}

// reorderLike walks src and dst in parallel and reorders every object in
// dst after its counterpart in src. Keys present only in dst keep their
// relative order after the shared ones.
func reorderLike(src, dst document.Value) {
	switch s := src.(type) {
	case *document.Object:
		d, ok := document.AsObject(dst)
		if !ok || s == nil {
			return
		}
		d.Reorder(s.Keys())
		for k, sv := range s.All() {
			if dv, ok := d.Get(k); ok {
				reorderLike(sv, dv)
			}
		}
	case document.Array:
		d, ok := document.AsArray(dst)
		if !ok || len(d) != len(s) {
			return
		}
		for i := range s {
			reorderLike(s[i], d[i])
		}
	}
}
