package dto

type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

type BlastInput struct {
	Kind         string   `json:"kind"` // "text" or "template"
	Body         string   `json:"body,omitempty"`
	TemplateName string   `json:"template_name,omitempty"`
	Language     string   `json:"language,omitempty"`
	BodyParams   []string `json:"body_params,omitempty"`
}

type BlastResult struct {
	Total  int      `json:"total"`
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}
