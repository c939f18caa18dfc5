package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/pocketfolio/pocketfolio-backend/internal/service"
	"github.com/pocketfolio/pocketfolio-backend/internal/testutil"
)

func newSettingsHandler() *SettingsHandler {
	settingsRepo := testutil.NewMockSettingsRepository()
	return NewSettingsHandler(service.NewSettingsService(settingsRepo))
}

func TestGetSettings_Defaults(t *testing.T) {
	e := echo.New()
	handler := newSettingsHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, uuid.New())

	if err := handler.GetSettings(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rec.Code)
	}

	var response SettingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CurrencyCode != "INR" {
		t.Errorf("Expected default currency 'INR', got %s", response.CurrencyCode)
	}
	if response.CurrencySymbol != "₹" {
		t.Errorf("Expected symbol '₹', got %s", response.CurrencySymbol)
	}
}

func TestUpdateSettings_RoundTrip(t *testing.T) {
	e := echo.New()
	handler := newSettingsHandler()
	userID := uuid.New()

	body := `{"currencyCode":"EUR","numberFormat":"1.000,00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.UpdateSettings(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", rec.Code, rec.Body.String())
	}

	// Read back
	req = httptest.NewRequest(http.MethodGet, "/api/v1/settings", nil)
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	setUserContext(c, userID)

	if err := handler.GetSettings(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	var response SettingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to unmarshal response: %v", err)
	}
	if response.CurrencyCode != "EUR" {
		t.Errorf("Expected currency 'EUR', got %s", response.CurrencyCode)
	}
	if response.CurrencySymbol != "€" {
		t.Errorf("Expected symbol '€', got %s", response.CurrencySymbol)
	}
	if response.NumberFormat != "1.000,00" {
		t.Errorf("Expected number format '1.000,00', got %s", response.NumberFormat)
	}
}

func TestUpdateSettings_UnsupportedCurrency(t *testing.T) {
	e := echo.New()
	handler := newSettingsHandler()

	body := `{"currencyCode":"XYZ","numberFormat":"1,000.00"}`
	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	setUserContext(c, uuid.New())

	if err := handler.UpdateSettings(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rec.Code)
	}
}
