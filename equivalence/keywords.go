package equivalence

// DefaultIgnoredKeywords are annotation keywords that do not change the
// shape a schema accepts. Extension keywords ("x-") are ignored as well
// unless WithExtensions(true) is set.
var DefaultIgnoredKeywords = []string{
	"description",
	"title",
	"example",
	"examples",
	"deprecated",
	"$comment",
	"externalDocs",
}

type keywordKind int

const (
	kindValue       keywordKind = iota // exact JSON value
	kindSchema                         // single sub-schema
	kindSchemaMap                      // map of name to sub-schema
	kindSchemaArray                    // list of sub-schemas, pairwise
	kindStringSet                      // list of strings, order-insensitive
	kindType                           // "type": string or set of strings
	kindItems                          // "items": sub-schema or tuple list
)

var keywordKinds = map[string]keywordKind{
	"properties":        kindSchemaMap,
	"patternProperties": kindSchemaMap,
	"definitions":       kindSchemaMap,
	"$defs":             kindSchemaMap,
	"dependentSchemas":  kindSchemaMap,

	"allOf":       kindSchemaArray,
	"anyOf":       kindSchemaArray,
	"oneOf":       kindSchemaArray,
	"prefixItems": kindSchemaArray,

	"not":                   kindSchema,
	"additionalProperties":  kindSchema,
	"if":                    kindSchema,
	"then":                  kindSchema,
	"else":                  kindSchema,
	"contains":              kindSchema,
	"propertyNames":         kindSchema,
	"additionalItems":       kindSchema,
	"unevaluatedItems":      kindSchema,
	"unevaluatedProperties": kindSchema,

	"items":    kindItems,
	"required": kindStringSet,
	"type":     kindType,
}

func kindOf(keyword string) keywordKind {
	if k, ok := keywordKinds[keyword]; ok {
		return k
	}
	return kindValue
}
