package models

import "time"

// GlossaryResponse is the top-level response for the glossary endpoint.
type GlossaryResponse struct {
	GeneratedAt time.Time          `json:"generated_at"`
	Categories  []GlossaryCategory `json:"categories"`
}

// GlossaryCategory groups related glossary terms.
type GlossaryCategory struct {
	Name  string         `json:"name"`
	Terms []GlossaryTerm `json:"terms"`
}

// GlossaryTerm defines a single term with a worked example.
type GlossaryTerm struct {
	Term       string      `json:"term"`
	Label      string      `json:"label"`
	Definition string      `json:"definition"`
	Formula    string      `json:"formula,omitempty"`
	Value      interface{} `json:"value,omitempty"`
	Example    string      `json:"example,omitempty"`
	Calculator string      `json:"calculator,omitempty"`
}
