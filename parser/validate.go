package parser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// validateStructure runs the kin-openapi loader and validator over an
// OpenAPI 3.0 document. Findings are returned as warning strings; a
// document that fails validation is still analyzed.
func (p *Parser) validateStructure(data []byte, ver OASVersion) []string {
	if ver != OASVersion30 {
		p.log().Debug("structural validation skipped", "version", ver.String())
		return nil
	}

	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = false
	doc, err := loader.LoadFromData(data)
	if err != nil {
		return []string{fmt.Sprintf("validation: failed to load document: %v", err)}
	}

	err = doc.Validate(context.Background(),
		openapi3.DisableExamplesValidation(),
		openapi3.AllowExtraSiblingFields("description", "example"),
	)
	if err == nil {
		return nil
	}

	var multi openapi3.MultiError
	if errors.As(err, &multi) {
		warnings := make([]string, 0, len(multi))
		for _, e := range multi {
			warnings = append(warnings, "validation: "+e.Error())
		}
		return warnings
	}
	return []string{"validation: " + strings.TrimSpace(err.Error())}
}
