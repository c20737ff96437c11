package parser

import "github.com/souhailaS/apistic/document"

// DocumentStats contains statistical information about a document
type DocumentStats struct {
	PathCount      int // Number of paths defined
	OperationCount int // Total number of operations across all paths
	SchemaCount    int // Number of named schemas (components.schemas or definitions)
}

// GetDocumentStats returns statistics for a decoded document of either
// major version.
func GetDocumentStats(root *document.Object) DocumentStats {
	stats := DocumentStats{}
	if root == nil {
		return stats
	}

	if paths, ok := root.GetObject("paths"); ok {
		stats.PathCount = paths.Len()
		for _, item := range paths.All() {
			stats.OperationCount += countPathItemOperations(item)
		}
	}

	if components, ok := root.GetObject("components"); ok {
		if schemas, ok := components.GetObject("schemas"); ok {
			stats.SchemaCount = schemas.Len()
		}
	} else if defs, ok := root.GetObject("definitions"); ok {
		stats.SchemaCount = defs.Len()
	}

	return stats
}

func countPathItemOperations(item document.Value) int {
	obj, ok := document.AsObject(item)
	if !ok {
		return 0
	}
	count := 0
	for key, op := range obj.All() {
		if _, isObj := document.AsObject(op); isObj && IsHTTPMethod(key) {
			count++
		}
	}
	return count
}
