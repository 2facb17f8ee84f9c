// internal/workers/lead/validate-lead-data/models.go
package validateleaddata

type Input struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Output struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"validationErrors,omitempty"`
	Name   string   `json:"name"`
	Email  string   `json:"email"`
}
