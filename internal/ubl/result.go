package ubl

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rezonia/einvoice/internal/model"
)

// Status tags an import outcome. Hard failures never produce a result:
// they surface as an *model.ImportError with no aggregate attached.
type Status int

const (
	// StatusOK: the document imported cleanly
	StatusOK Status = iota

	// StatusOKWithWarnings: a usable aggregate was built, but anomalies
	// were recorded or declared totals disagree with the recompute
	StatusOKWithWarnings
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusOKWithWarnings:
		return "ok-with-warnings"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// TotalMismatch records one declared total that disagrees with the value
// recomputed from the imported lines
type TotalMismatch struct {
	Declared   decimal.Decimal `json:"declared"`
	Calculated decimal.Decimal `json:"calculated"`
	Diff       decimal.Decimal `json:"diff"`
}

// ImportResult is the outcome of a successful (possibly degraded) import.
// The aggregate is always fully usable; its totals are the recomputed
// ones, with declared disagreements listed in TotalMismatches.
type ImportResult struct {
	Invoice         *model.Invoice           `json:"-"`
	Status          Status                   `json:"status"`
	TotalMismatches map[string]TotalMismatch `json:"totalMismatches,omitempty"`
	Anomalies       []string                 `json:"anomalies,omitempty"`
}

// HasWarnings reports whether the import carries reconciliation
// diagnostics
func (r *ImportResult) HasWarnings() bool {
	return r.Status == StatusOKWithWarnings
}
