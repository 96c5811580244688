package model

import (
	"github.com/shopspring/decimal"

	dec "github.com/rezonia/einvoice/internal/decimal"
)

// CalculateTotals recomputes every derived total and rebuilds the VAT
// breakdown from the current lines and document-level allowances and
// charges. It never fails: it operates purely on already-validated state.
//
// Taxable amounts are rounded after each accumulation step, not once at
// the end. Reference documents were produced that way and deferring the
// rounding changes totals on real inputs.
func (inv *Invoice) CalculateTotals() {
	for i := range inv.Lines {
		inv.Lines[i].Calculate()
	}

	// group line amounts into buckets, first-seen order
	var buckets []VATBreakdown
	index := make(map[VATKey]int)
	for _, l := range inv.Lines {
		key := VATKey{Category: l.VATCategory, Rate: l.VATRate.String()}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, VATBreakdown{
				Category: l.VATCategory,
				Rate:     l.VATRate,
			})
		}
		buckets[i].TaxableAmount = dec.Round2(buckets[i].TaxableAmount.Add(l.Amount))
	}

	// document-level allowances and charges adjust the taxable amount of
	// the bucket they declare, not the overall total directly
	for _, ac := range inv.AllowanceCharges {
		key := VATKey{Category: ac.VATCategory, Rate: ac.VATRate.String()}
		i, ok := index[key]
		if !ok {
			i = len(buckets)
			index[key] = i
			buckets = append(buckets, VATBreakdown{
				Category: ac.VATCategory,
				Rate:     ac.VATRate,
			})
		}
		if ac.Charge {
			buckets[i].TaxableAmount = dec.Round2(buckets[i].TaxableAmount.Add(ac.Amount))
		} else {
			buckets[i].TaxableAmount = dec.Round2(buckets[i].TaxableAmount.Sub(ac.Amount))
		}
	}

	totalVAT := dec.Zero
	for i := range buckets {
		buckets[i].TaxAmount = dec.ApplyRate(buckets[i].TaxableAmount, buckets[i].Rate)
		if r, ok := inv.exemptionReasonFor(buckets[i].Category); ok {
			buckets[i].ExemptionReasonCode = r.code
			buckets[i].ExemptionReason = r.text
		}
		totalVAT = totalVAT.Add(buckets[i].TaxAmount)
	}
	inv.VATBreakdown = buckets

	taxExclusive := dec.Zero
	for _, l := range inv.Lines {
		taxExclusive = dec.Round2(taxExclusive.Add(l.Amount))
	}
	for _, ac := range inv.AllowanceCharges {
		if ac.Charge {
			taxExclusive = dec.Round2(taxExclusive.Add(ac.Amount))
		} else {
			taxExclusive = dec.Round2(taxExclusive.Sub(ac.Amount))
		}
	}

	inv.Totals.TaxExclusiveAmount = taxExclusive
	inv.Totals.TotalVATAmount = dec.Round2(totalVAT)
	inv.Totals.TaxInclusiveAmount = dec.Round2(taxExclusive.Add(totalVAT))
	inv.Totals.PayableAmount = dec.Round2(inv.Totals.TaxInclusiveAmount.Sub(inv.Totals.PrepaidAmount))
}

// LineExtensionTotal returns the sum of current line amounts, rounded as
// accumulated. Exported for the UBL monetary total block.
func (inv *Invoice) LineExtensionTotal() (total decimal.Decimal) {
	total = dec.Zero
	for _, l := range inv.Lines {
		total = dec.Round2(total.Add(l.Amount))
	}
	return total
}

// AllowanceTotal returns the sum of document-level allowance amounts
func (inv *Invoice) AllowanceTotal() (total decimal.Decimal) {
	total = dec.Zero
	for _, ac := range inv.AllowanceCharges {
		if !ac.Charge {
			total = dec.Round2(total.Add(ac.Amount))
		}
	}
	return total
}

// ChargeTotal returns the sum of document-level charge amounts
func (inv *Invoice) ChargeTotal() (total decimal.Decimal) {
	total = dec.Zero
	for _, ac := range inv.AllowanceCharges {
		if ac.Charge {
			total = dec.Round2(total.Add(ac.Amount))
		}
	}
	return total
}
