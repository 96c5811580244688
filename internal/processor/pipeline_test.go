package processor_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/einvoice/internal/codes"
	"github.com/rezonia/einvoice/internal/model"
	"github.com/rezonia/einvoice/internal/processor"
	"github.com/rezonia/einvoice/internal/schematron"
	"github.com/rezonia/einvoice/internal/ubl"
)

type stubValidator struct {
	calls  int
	levels []string
	report *schematron.Report
	err    error
}

func (s *stubValidator) Validate(document []byte, levels []string) (*schematron.Report, error) {
	s.calls++
	s.levels = levels
	return s.report, s.err
}

// validInvoice builds an aggregate that passes every built-in profile
func validInvoice(t *testing.T) *model.Invoice {
	t.Helper()

	inv, err := model.NewInvoice("2026-300", time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC), "EUR")
	require.NoError(t, err)
	inv.DueDate = time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)

	addr, err := model.NewAddress("Kerkstraat 1", "Gent", "9000", "BE")
	require.NoError(t, err)
	seller, err := model.NewParty("Voorbeeld BV", addr)
	require.NoError(t, err)
	require.NoError(t, inv.SetSeller(seller))

	buyerAddr, err := model.NewAddress("Rue Haute 12", "Bruxelles", "1000", "BE")
	require.NoError(t, err)
	buyer, err := model.NewParty("Client SA", buyerAddr)
	require.NoError(t, err)
	require.NoError(t, inv.SetBuyer(buyer))

	line, err := model.NewInvoiceLine("1", "Widget", decimal.NewFromInt(10), "C62",
		decimal.NewFromInt(100), codes.VATStandard, decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))

	inv.CalculateTotals()
	return inv
}

func validDocument(t *testing.T) []byte {
	t.Helper()
	doc, err := ubl.Export(validInvoice(t))
	require.NoError(t, err)
	return doc
}

func TestPipeline_Process(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.Process(validDocument(t), true, "en16931")
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.Valid())
	assert.Empty(t, result.Findings)
	assert.Equal(t, ubl.StatusOK, result.Import.Status)
	assert.Equal(t, "2026-300", result.Invoice.Number)
	assert.Nil(t, result.Schematron)
}

func TestPipeline_ProcessFindings(t *testing.T) {
	p := processor.NewPipeline()

	// the peppol profile wants endpoints and references this document
	// does not carry
	result, err := p.Process(validDocument(t), true, "peppol")
	require.NoError(t, err)

	assert.False(t, result.Valid())
	assert.NotEmpty(t, result.Findings)
}

func TestPipeline_UnknownProfile(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.Process(validDocument(t), true, "xrechnung")
	require.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "unknown validation profile")
}

func TestPipeline_StrictAbort(t *testing.T) {
	p := processor.NewPipeline()

	result, err := p.Process([]byte("not xml at all <"), true, "en16931")
	require.Error(t, err)
	assert.Nil(t, result)

	var importErr *model.ImportError
	assert.True(t, errors.As(err, &importErr))
}

func TestPipeline_SchematronWired(t *testing.T) {
	stub := &stubValidator{
		report: &schematron.Report{
			Valid: false,
			Errors: []schematron.Finding{
				{Level: "peppol", Severity: schematron.SeverityError, Message: "BR-01 violated"},
			},
		},
	}
	p := processor.NewPipeline(processor.WithSchematron(stub, "en16931", "peppol"))

	result, err := p.Process(validDocument(t), true, "en16931")
	require.NoError(t, err)

	assert.Equal(t, 1, stub.calls)
	assert.Equal(t, []string{"en16931", "peppol"}, stub.levels)
	require.NotNil(t, result.Schematron)
	assert.False(t, result.Schematron.Valid)
	assert.False(t, result.Valid())
}

func TestPipeline_SchematronError(t *testing.T) {
	stub := &stubValidator{err: errors.New("rule file unavailable")}
	p := processor.NewPipeline(processor.WithSchematron(stub))

	result, err := p.Process(validDocument(t), true, "en16931")
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestPipeline_Validate(t *testing.T) {
	p := processor.NewPipeline()
	inv := validInvoice(t)

	findings, err := p.Validate(inv, "en16931")
	require.NoError(t, err)
	assert.Empty(t, findings)

	findings, err = p.Validate(inv, "ublbe")
	require.NoError(t, err)
	assert.NotEmpty(t, findings)

	_, err = p.Validate(inv, "nope")
	assert.Error(t, err)
}

func TestPipeline_ExportRecomputes(t *testing.T) {
	p := processor.NewPipeline()
	inv := validInvoice(t)

	// stale mutation: the export must reflect the recomputed totals
	line, err := model.NewInvoiceLine("2", "Extra", decimal.NewFromInt(1), "C62",
		decimal.NewFromInt(100), codes.VATStandard, decimal.NewFromInt(21))
	require.NoError(t, err)
	require.NoError(t, inv.AddLine(line))

	out, err := p.Export(inv)
	require.NoError(t, err)
	assert.Contains(t, string(out), ">1100.00</cbc:TaxExclusiveAmount>")
}
