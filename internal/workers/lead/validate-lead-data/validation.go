// internal/workers/lead/validate-lead-data/validation.go
package validateleaddata

import "assessment-workers/internal/common/validation"

// GetInputSchema returns the JSON schema for lead submissions. The email
// check is deliberately permissive: non-empty and containing "@". The intake
// endpoint is the authority on deliverability; over-validating here only
// turns real leads away. The display name is optional.
func GetInputSchema() validation.JSONSchema {
	minLength := 1
	emailPattern := "@"

	return validation.JSONSchema{
		Type: "object",
		Properties: map[string]validation.Property{
			"name": {
				Type:        "string",
				Description: "Submitted contact name (optional)",
			},
			"email": {
				Type:        "string",
				Description: "Submitted contact email",
				MinLength:   &minLength,
				Pattern:     &emailPattern,
			},
		},
		Required:             []string{"email"},
		AdditionalProperties: true,
	}
}
