package server

// ImportResponse is the response for the import endpoint
type ImportResponse struct {
	Status          string                 `json:"status"`
	Invoice         map[string]interface{} `json:"invoice"`
	TotalMismatches interface{}            `json:"totalMismatches,omitempty"`
	Anomalies       []string               `json:"anomalies,omitempty"`
}

// ValidationResponse is the response for the validate endpoint
type ValidationResponse struct {
	Valid    bool     `json:"valid"`
	Profile  string   `json:"profile"`
	Findings []string `json:"findings,omitempty"`
}

// ErrorResponse is the standard error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}
