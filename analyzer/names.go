package analyzer

import (
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/souhailaS/apistic/grouper"
	"github.com/souhailaS/apistic/harvester"
)

// GroupNames suggests a display name per group from the first endpoint that
// uses it, e.g. "Products Response" for GET /products 200. Names are made
// unique by appending the group ID.
func GroupNames(groups []*grouper.SchemaGroup) []string {
	title := cases.Title(language.English)
	names := make([]string, len(groups))
	used := make(map[string]bool, len(groups))
	for i, g := range groups {
		name := suggestName(title, g)
		if used[name] {
			name = fmt.Sprintf("%s %d", name, g.ID)
		}
		used[name] = true
		names[i] = name
	}
	return names
}

func suggestName(title cases.Caser, g *grouper.SchemaGroup) string {
	if len(g.Endpoints) == 0 {
		return fmt.Sprintf("Group %d", g.ID)
	}
	first := g.Endpoints[0]
	resource := lastResource(first.Path)
	if resource == "" {
		resource = "root"
	}
	req := g.HasDirection(harvester.DirectionRequest)
	resp := g.HasDirection(harvester.DirectionResponse)
	suffix := "Response"
	switch {
	case req && resp:
		suffix = "Body"
	case req:
		suffix = "Request"
	}
	return title.String(resource) + " " + suffix
}

// lastResource returns the words of the last literal path segment.
func lastResource(path string) string {
	segments := strings.Split(strings.Trim(path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		seg := segments[i]
		if seg == "" || strings.HasPrefix(seg, "{") {
			continue
		}
		words := strings.FieldsFunc(seg, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		return strings.Join(words, " ")
	}
	return ""
}
