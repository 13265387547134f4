// internal/provider/schema.go
package provider

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// generatedContentSchema is the structural contract every adapter response
// must satisfy. A payload missing any required field is a provider failure,
// never a partially populated result.
const generatedContentSchema = `{
	"type": "object",
	"required": ["title", "body", "excerpt", "metaDescription", "keywords"],
	"properties": {
		"title":           {"type": "string", "minLength": 1},
		"body":            {"type": "string", "minLength": 1},
		"excerpt":         {"type": "string", "minLength": 1},
		"metaDescription": {"type": "string", "minLength": 1},
		"keywords":        {"type": "array", "items": {"type": "string"}, "minItems": 1},
		"facts": {
			"type": "object",
			"properties": {
				"price":        {"type": "number"},
				"roomCount":    {"type": "integer"},
				"areaSqm":      {"type": "integer"},
				"neighborhood": {"type": "string"},
				"intent":       {"type": "string", "enum": ["sale", "rent"]}
			}
		}
	}
}`

const qualityReportSchema = `{
	"type": "object",
	"required": ["humanLikeScore", "aiProbability"],
	"properties": {
		"humanLikeScore": {"type": "number", "minimum": 0, "maximum": 100},
		"aiProbability":  {"type": "number", "minimum": 0, "maximum": 1},
		"issues": {
			"type": "array",
			"items": {
				"type": "object",
				"required": ["type", "severity", "message"],
				"properties": {
					"type":     {"type": "string", "enum": ["generic-phrase", "repetition", "structure", "tone", "uniqueness"]},
					"severity": {"type": "string", "enum": ["low", "medium", "high"]},
					"message":  {"type": "string"}
				}
			}
		},
		"strengths":   {"type": "array", "items": {"type": "string"}},
		"suggestions": {"type": "array", "items": {"type": "string"}}
	}
}`

var (
	generatedContentLoader = gojsonschema.NewStringLoader(generatedContentSchema)
	qualityReportLoader    = gojsonschema.NewStringLoader(qualityReportSchema)
)

// ValidateGeneratedPayload checks a raw JSON payload against the generated
// content contract.
func ValidateGeneratedPayload(raw string) error {
	return validate(generatedContentLoader, raw)
}

// ValidateReportPayload checks a raw JSON payload against the quality
// report contract.
func ValidateReportPayload(raw string) error {
	return validate(qualityReportLoader, raw)
}

func validate(schema gojsonschema.JSONLoader, raw string) error {
	result, err := gojsonschema.Validate(schema, gojsonschema.NewStringLoader(raw))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if !result.Valid() {
		msgs := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			msgs = append(msgs, e.String())
		}
		return fmt.Errorf("%w: %s", ErrInvalidResponse, strings.Join(msgs, "; "))
	}
	return nil
}
