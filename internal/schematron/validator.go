// Package schematron defines the contract of the external rule-file
// validator this system delegates schema-level document validation to.
// Retrieval, compilation and caching of rule files are the collaborator's
// concern; this package only models the call and its report.
package schematron

// Severity is the role a finding carries in the rule file
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Finding is one rule failure reported by the external validator
type Finding struct {
	Level    string   `json:"level"`    // rule level the finding belongs to
	Severity Severity `json:"severity"` // role declared in the rule file
	Message  string   `json:"message"`  // human-readable description
	Location string   `json:"location"` // XPath-like document location
	Test     string   `json:"test"`     // the failed rule expression
}

// Report is the structured outcome of one validation run
type Report struct {
	Valid    bool      `json:"valid"`
	Errors   []Finding `json:"errors,omitempty"`
	Warnings []Finding `json:"warnings,omitempty"`
	Infos    []Finding `json:"infos,omitempty"`
}

// Validator checks a completed XML document against a set of rule levels.
// Implementations are expected to be synchronous; a production deployment
// may wrap one with a content-addressed compile cache.
type Validator interface {
	Validate(document []byte, levels []string) (*Report, error)
}
