// Package processor orchestrates the import, recompute and validation
// chain behind the CLI and the HTTP API.
package processor

import (
	"github.com/rs/zerolog"

	"github.com/rezonia/einvoice/internal/model"
	"github.com/rezonia/einvoice/internal/rules"
	"github.com/rezonia/einvoice/internal/schematron"
	"github.com/rezonia/einvoice/internal/ubl"
)

// Result is the combined outcome of one document run
type Result struct {
	// Invoice is the imported aggregate with recomputed totals
	Invoice *model.Invoice

	// Import carries the codec-level status and diagnostics
	Import *ubl.ImportResult

	// Findings are the business-rule findings of the selected profile
	Findings []string

	// Schematron is the external validator's report, when one is wired
	Schematron *schematron.Report
}

// Valid reports whether the run produced no findings or diagnostics
func (r *Result) Valid() bool {
	if len(r.Findings) > 0 {
		return false
	}
	if r.Import != nil && r.Import.HasWarnings() {
		return false
	}
	if r.Schematron != nil && !r.Schematron.Valid {
		return false
	}
	return true
}

// Pipeline runs documents through import, profile validation and the
// optional external rule validator
type Pipeline struct {
	registry   *rules.Registry
	schematron schematron.Validator
	levels     []string
	logger     zerolog.Logger
}

// Option configures the pipeline
type Option func(*Pipeline)

// WithRegistry replaces the default profile registry
func WithRegistry(r *rules.Registry) Option {
	return func(p *Pipeline) {
		p.registry = r
	}
}

// WithSchematron wires the external rule-file validator and the rule
// levels it should apply
func WithSchematron(v schematron.Validator, levels ...string) Option {
	return func(p *Pipeline) {
		p.schematron = v
		p.levels = levels
	}
}

// WithLogger sets the pipeline logger
func WithLogger(logger zerolog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// NewPipeline creates a pipeline with the built-in profiles
func NewPipeline(opts ...Option) *Pipeline {
	p := &Pipeline{
		registry: rules.DefaultRegistry(),
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Registry returns the profile registry the pipeline validates with
func (p *Pipeline) Registry() *rules.Registry {
	return p.registry
}

// Process imports a document, validates it under the named profile and,
// when wired, runs the external rule validator over the original bytes.
// Strict-mode structural defects abort with an error and no result.
func (p *Pipeline) Process(data []byte, strict bool, profileID string) (*Result, error) {
	profile, err := p.registry.ForProfile(profileID)
	if err != nil {
		return nil, err
	}

	imported, err := ubl.Import(data, strict)
	if err != nil {
		p.logger.Debug().Err(err).Msg("import aborted")
		return nil, err
	}
	p.logger.Debug().
		Str("invoice", imported.Invoice.Number).
		Str("status", imported.Status.String()).
		Int("anomalies", len(imported.Anomalies)).
		Msg("document imported")

	result := &Result{
		Invoice:  imported.Invoice,
		Import:   imported,
		Findings: profile.Validate(imported.Invoice),
	}

	if p.schematron != nil {
		report, err := p.schematron.Validate(data, p.levels)
		if err != nil {
			return nil, err
		}
		result.Schematron = report
	}

	return result, nil
}

// Validate runs the named profile over an already-built aggregate
func (p *Pipeline) Validate(inv *model.Invoice, profileID string) ([]string, error) {
	profile, err := p.registry.ForProfile(profileID)
	if err != nil {
		return nil, err
	}
	return profile.Validate(inv), nil
}

// Export recomputes totals and serializes the aggregate
func (p *Pipeline) Export(inv *model.Invoice) ([]byte, error) {
	inv.CalculateTotals()
	return ubl.Export(inv)
}
