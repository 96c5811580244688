package model

import "time"

// Plain returns a nested key/value mirror of the aggregate's public
// fields. It is an alternate, schema-free serialization: every entity
// appears under its own key, repeated groups keep their order.
func (inv *Invoice) Plain() map[string]interface{} {
	m := map[string]interface{}{
		"number":    inv.Number,
		"issueDate": plainDate(inv.IssueDate),
		"typeCode":  inv.TypeCode,
		"currency":  inv.Currency,
		"seller":    plainParty(inv.Seller),
		"buyer":     plainParty(inv.Buyer),
		"totals": map[string]interface{}{
			"taxExclusiveAmount": inv.Totals.TaxExclusiveAmount.String(),
			"totalVatAmount":     inv.Totals.TotalVATAmount.String(),
			"taxInclusiveAmount": inv.Totals.TaxInclusiveAmount.String(),
			"prepaidAmount":      inv.Totals.PrepaidAmount.String(),
			"payableAmount":      inv.Totals.PayableAmount.String(),
		},
	}
	if !inv.DueDate.IsZero() {
		m["dueDate"] = plainDate(inv.DueDate)
	}

	lines := make([]map[string]interface{}, 0, len(inv.Lines))
	for _, l := range inv.Lines {
		lines = append(lines, plainLine(l))
	}
	m["lines"] = lines

	if len(inv.AllowanceCharges) > 0 {
		acs := make([]map[string]interface{}, 0, len(inv.AllowanceCharges))
		for _, ac := range inv.AllowanceCharges {
			acs = append(acs, plainAllowanceCharge(ac))
		}
		m["allowanceCharges"] = acs
	}

	buckets := make([]map[string]interface{}, 0, len(inv.VATBreakdown))
	for _, b := range inv.VATBreakdown {
		bucket := map[string]interface{}{
			"category":      string(b.Category),
			"rate":          b.Rate.String(),
			"taxableAmount": b.TaxableAmount.String(),
			"taxAmount":     b.TaxAmount.String(),
		}
		if b.ExemptionReason != "" {
			bucket["exemptionReason"] = b.ExemptionReason
		}
		if b.ExemptionReasonCode != "" {
			bucket["exemptionReasonCode"] = b.ExemptionReasonCode
		}
		buckets = append(buckets, bucket)
	}
	m["vatBreakdown"] = buckets

	if !inv.Payment.IsZero() {
		payment := map[string]interface{}{
			"meansCode": inv.Payment.MeansCode,
		}
		if inv.Payment.IBAN != "" {
			payment["iban"] = inv.Payment.IBAN
		}
		if inv.Payment.BIC != "" {
			payment["bic"] = inv.Payment.BIC
		}
		if inv.Payment.StructuredReference != "" {
			payment["structuredReference"] = inv.Payment.StructuredReference
		}
		if inv.Payment.Terms != "" {
			payment["terms"] = inv.Payment.Terms
		}
		m["payment"] = payment
	}

	if refs := plainReferences(inv.References); len(refs) > 0 {
		m["references"] = refs
	}
	if inv.Period != nil {
		m["period"] = map[string]interface{}{
			"start": plainDate(inv.Period.Start),
			"end":   plainDate(inv.Period.End),
		}
	}

	if len(inv.Attachments) > 0 {
		atts := make([]map[string]interface{}, 0, len(inv.Attachments))
		for _, a := range inv.Attachments {
			atts = append(atts, map[string]interface{}{
				"filename":    a.Filename,
				"mimeType":    a.MimeType,
				"description": a.Description,
				"typeCode":    a.TypeCode,
				"size":        a.Size(),
			})
		}
		m["attachments"] = atts
	}

	return m
}

func plainDate(t time.Time) string {
	return t.Format("2006-01-02")
}

func plainParty(p Party) map[string]interface{} {
	m := map[string]interface{}{
		"name": p.Name,
		"address": map[string]interface{}{
			"street":      p.Address.Street,
			"city":        p.Address.City,
			"postalCode":  p.Address.PostalCode,
			"countryCode": p.Address.CountryCode,
		},
	}
	if p.VATID != "" {
		m["vatId"] = p.VATID
	}
	if p.CompanyID != "" {
		m["companyId"] = p.CompanyID
	}
	if p.Email != "" {
		m["email"] = p.Email
	}
	if p.Phone != "" {
		m["phone"] = p.Phone
	}
	if !p.ElectronicAddress.IsZero() {
		m["electronicAddress"] = map[string]interface{}{
			"schemeId":   p.ElectronicAddress.SchemeID,
			"identifier": p.ElectronicAddress.Identifier,
		}
	}
	return m
}

func plainLine(l InvoiceLine) map[string]interface{} {
	m := map[string]interface{}{
		"id":          l.ID,
		"name":        l.Name,
		"quantity":    l.Quantity.String(),
		"unitCode":    l.UnitCode,
		"unitPrice":   l.UnitPrice.String(),
		"vatCategory": string(l.VATCategory),
		"vatRate":     l.VATRate.String(),
		"amount":      l.Amount.String(),
	}
	if l.Description != "" {
		m["description"] = l.Description
	}
	if l.Note != "" {
		m["note"] = l.Note
	}
	if l.SellerItemID != "" {
		m["sellerItemId"] = l.SellerItemID
	}
	if l.StandardItemID != "" {
		m["standardItemId"] = l.StandardItemID
	}
	if l.Period != nil {
		m["period"] = map[string]interface{}{
			"start": plainDate(l.Period.Start),
			"end":   plainDate(l.Period.End),
		}
	}
	if len(l.AllowanceCharges) > 0 {
		acs := make([]map[string]interface{}, 0, len(l.AllowanceCharges))
		for _, ac := range l.AllowanceCharges {
			acs = append(acs, plainAllowanceCharge(ac))
		}
		m["allowanceCharges"] = acs
	}
	return m
}

func plainAllowanceCharge(ac AllowanceCharge) map[string]interface{} {
	m := map[string]interface{}{
		"charge":      ac.Charge,
		"amount":      ac.Amount.String(),
		"reason":      ac.Reason,
		"vatCategory": string(ac.VATCategory),
		"vatRate":     ac.VATRate.String(),
	}
	if ac.ReasonCode != "" {
		m["reasonCode"] = ac.ReasonCode
	}
	return m
}

func plainReferences(r References) map[string]interface{} {
	m := map[string]interface{}{}
	if r.PurchaseOrder != "" {
		m["purchaseOrder"] = r.PurchaseOrder
	}
	if r.SalesOrder != "" {
		m["salesOrder"] = r.SalesOrder
	}
	if r.Contract != "" {
		m["contract"] = r.Contract
	}
	if r.Project != "" {
		m["project"] = r.Project
	}
	if r.BuyerReference != "" {
		m["buyerReference"] = r.BuyerReference
	}
	if r.PrecedingInvoiceNumber != "" {
		m["precedingInvoiceNumber"] = r.PrecedingInvoiceNumber
		if !r.PrecedingInvoiceDate.IsZero() {
			m["precedingInvoiceDate"] = plainDate(r.PrecedingInvoiceDate)
		}
	}
	return m
}
