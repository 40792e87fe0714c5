package report

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/estimatepro/estimatepro/pkg/user"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A middleware that sets the user in the context
func withUser(userId int, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := user.WithUser(r.Context(), user.User{Id: userId})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func setupHandlerTest(t *testing.T) (*Handler, func()) {
	teardown := setup(t)
	handler := NewHandler(service, NewExporter())
	return handler, teardown
}

func generateRequest(t *testing.T, dto GenerateRequestDTO) *http.Request {
	body, err := json.Marshal(dto)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/reports/data", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestHandler_Generate(t *testing.T) {
	t.Run("should return report data as JSON by default", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := generateRequest(t, GenerateRequestDTO{ReportType: "overview", DateRange: "30days"})
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Generate)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
		var data Data
		require.NoError(t, json.NewDecoder(w.Body).Decode(&data))
	})

	t.Run("should return a CSV attachment when requested", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := generateRequest(t, GenerateRequestDTO{ReportType: "financial", DateRange: "30days", Format: "csv"})
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Generate)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		disposition := w.Header().Get("Content-Disposition")
		assert.True(t, strings.HasPrefix(disposition, `attachment; filename="report-financial-`))
		assert.True(t, strings.HasSuffix(disposition, `.csv"`))
		assert.Contains(t, w.Body.String(), "FINANCIAL REPORT")
	})

	t.Run("should serve CSV when the spreadsheet render fails", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()
		handler.exporter.withRenderer("excel", failingRenderer{})

		req := generateRequest(t, GenerateRequestDTO{ReportType: "overview", DateRange: "30days", Format: "excel"})
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Generate)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "text/csv", w.Header().Get("Content-Type"))
		assert.True(t, strings.HasSuffix(w.Header().Get("Content-Disposition"), `.csv"`))
	})

	t.Run("should reject an unknown report type", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := generateRequest(t, GenerateRequestDTO{ReportType: "quarterly", DateRange: "30days"})
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Generate)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("should reject a malformed body", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		req := httptest.NewRequest(http.MethodPost, "/api/reports/data", strings.NewReader("{not json"))
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Generate)).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Save(t *testing.T) {
	t.Run("should save and list a report", func(t *testing.T) {
		handler, teardown := setupHandlerTest(t)
		defer teardown()

		body, err := json.Marshal(ReportDTO{Name: "June financials", Type: "financial", DateRange: "30days"})
		require.NoError(t, err)
		req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewBuffer(body))
		w := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.Save)).ServeHTTP(w, req)

		require.Equal(t, http.StatusCreated, w.Code)
		var saved ReportDTO
		require.NoError(t, json.NewDecoder(w.Body).Decode(&saved))
		assert.NotZero(t, saved.ID)

		listReq := httptest.NewRequest(http.MethodGet, "/api/reports", nil)
		listW := httptest.NewRecorder()
		withUser(1, http.HandlerFunc(handler.List)).ServeHTTP(listW, listReq)

		require.Equal(t, http.StatusOK, listW.Code)
		var dtos []ReportDTO
		require.NoError(t, json.NewDecoder(listW.Body).Decode(&dtos))
		assert.Len(t, dtos, 1)
	})
}
