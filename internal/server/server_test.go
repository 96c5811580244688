package server_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/einvoice/internal/codes"
	"github.com/rezonia/einvoice/internal/model"
	"github.com/rezonia/einvoice/internal/processor"
	"github.com/rezonia/einvoice/internal/server"
	"github.com/rezonia/einvoice/internal/ubl"
)

func testServer(t *testing.T) *server.Server {
	t.Helper()
	return server.NewServer(&server.Config{
		Address:        ":0",
		DefaultProfile: "en16931",
	}, processor.NewPipeline())
}

func testDocument(t *testing.T) []byte {
	t.Helper()

	inv, err := model.NewInvoice("2026-500", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC), "EUR")
	require.NoError(t, err)
	inv.DueDate = time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

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
	doc, err := ubl.Export(inv)
	require.NoError(t, err)
	return doc
}

// tamperedDocument overstates the declared payable amount
func tamperedDocument(t *testing.T) []byte {
	doc := string(testDocument(t))
	tampered := strings.Replace(doc, ">1210.00</cbc:PayableAmount>", ">1300.00</cbc:PayableAmount>", 1)
	require.NotEqual(t, doc, tampered)
	return []byte(tampered)
}

func post(t *testing.T, s *server.Server, path string, body []byte) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/xml")
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestImportEndpoint_Strict(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/import", testDocument(t))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "2026-500", resp.Invoice["number"])
	assert.Empty(t, resp.Anomalies)
}

func TestImportEndpoint_StrictMismatch(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/import", tamperedDocument(t))
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)

	var resp server.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "import failed", resp.Error)
	assert.Contains(t, resp.Details, "payableAmount")
}

func TestImportEndpoint_Lenient(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/import?mode=lenient", tamperedDocument(t))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ImportResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok-with-warnings", resp.Status)
	assert.NotNil(t, resp.TotalMismatches)

	totals, ok := resp.Invoice["totals"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "1210", totals["payableAmount"])
}

func TestImportEndpoint_EmptyBody(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/import", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestValidateEndpoint(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/validate", testDocument(t))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Equal(t, "en16931", resp.Profile)
	assert.Empty(t, resp.Findings)
}

func TestValidateEndpoint_ProfileParam(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/validate?profile=peppol", testDocument(t))
	require.Equal(t, http.StatusOK, w.Code)

	var resp server.ValidationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	assert.Equal(t, "peppol", resp.Profile)
	assert.NotEmpty(t, resp.Findings)
}

func TestValidateEndpoint_UnknownProfile(t *testing.T) {
	s := testServer(t)

	w := post(t, s, "/api/v1/validate?profile=nope", testDocument(t))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeEndpoint(t *testing.T) {
	s := testServer(t)

	// the tampered declared total vanishes from the normalized output
	w := post(t, s, "/api/v1/normalize", tamperedDocument(t))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/xml", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), ">1210.00</cbc:PayableAmount>")
	assert.NotContains(t, w.Body.String(), "1300.00")
}

func TestProfilesEndpoint(t *testing.T) {
	s := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/profiles", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	for _, id := range []string{"en16931", "peppol", "ublbe"} {
		assert.Contains(t, body, id)
	}
}
