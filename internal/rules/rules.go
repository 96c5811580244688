// Package rules implements the layered business-rule validation engine.
//
// A profile is an ordered stack of rule layers: the base layer carries the
// EN16931 core rules and each extension layer appends the additional
// mandates of a network or jurisdiction on top of everything beneath it.
// Layers only read aggregate state and return human-readable findings;
// an empty result means the document passes the profile.
//
// Findings are computed against the totals of the last recompute. Calling
// Validate before CalculateTotals reports on stale state; recomputing
// first is the caller's responsibility.
package rules

import (
	"fmt"

	"github.com/shopspring/decimal"

	dec "github.com/rezonia/einvoice/internal/decimal"
	"github.com/rezonia/einvoice/internal/model"
)

// CoherenceTolerance is the maximum accepted difference between a
// bucket's tax amount and taxable*rate
var CoherenceTolerance = decimal.NewFromFloat(0.02)

// Layer is one rule set in a profile stack
type Layer interface {
	// Name identifies the layer in findings and reports
	Name() string

	// Check reads the aggregate and returns zero or more findings.
	// It never mutates state and never fails.
	Check(inv *model.Invoice) []string
}

// Profile is an ordered, cumulative stack of rule layers
type Profile struct {
	id     string
	layers []Layer
}

// NewProfile composes a profile from its ordered layers
func NewProfile(id string, layers ...Layer) *Profile {
	return &Profile{id: id, layers: layers}
}

// ID returns the profile identifier
func (p *Profile) ID() string {
	return p.id
}

// Layers returns the ordered layer stack
func (p *Profile) Layers() []Layer {
	return p.layers
}

// Validate runs every layer in order and concatenates the findings.
// An empty slice means the document is valid under this profile.
func (p *Profile) Validate(inv *model.Invoice) []string {
	var findings []string
	for _, layer := range p.layers {
		findings = append(findings, layer.Check(inv)...)
	}
	return findings
}

// Registry resolves profile identifiers to composed layer stacks
type Registry struct {
	profiles map[string]*Profile
}

// NewRegistry creates an empty profile registry
func NewRegistry() *Registry {
	return &Registry{profiles: make(map[string]*Profile)}
}

// Register adds a profile to the registry
func (r *Registry) Register(p *Profile) {
	r.profiles[p.ID()] = p
}

// ForProfile returns the profile registered under id
func (r *Registry) ForProfile(id string) (*Profile, error) {
	p, ok := r.profiles[id]
	if !ok {
		return nil, fmt.Errorf("unknown validation profile %q", id)
	}
	return p, nil
}

// ProfileIDs returns the registered identifiers
func (r *Registry) ProfileIDs() []string {
	ids := make([]string, 0, len(r.profiles))
	for id := range r.profiles {
		ids = append(ids, id)
	}
	return ids
}

// DefaultRegistry returns the built-in profiles: "en16931" (base rules
// only), "peppol" (base + Peppol BIS mandates) and "ublbe" (base +
// Peppol + Belgian UBL.BE mandates).
func DefaultRegistry() *Registry {
	base := NewBaseLayer()
	peppol := NewPeppolLayer()
	ublbe := NewUBLBELayer(DefaultUBLBEConfig())

	r := NewRegistry()
	r.Register(NewProfile("en16931", base))
	r.Register(NewProfile("peppol", base, peppol))
	r.Register(NewProfile("ublbe", base, peppol, ublbe))
	return r
}

// coherent reports whether a bucket's declared tax amount matches
// taxable*rate within the tolerance
func coherent(b model.VATBreakdown) (decimal.Decimal, bool) {
	expected := dec.ApplyRate(b.TaxableAmount, b.Rate)
	diff := dec.AbsDiff(b.TaxAmount, expected)
	return diff, diff.LessThanOrEqual(CoherenceTolerance)
}
