package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

func TestUserContext_ValidHeader(t *testing.T) {
	e := echo.New()
	userID := uuid.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.Header.Set(UserIDHeader, userID.String())
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got uuid.UUID
	handler := func(c echo.Context) error {
		got = GetUserID(c)
		return c.String(http.StatusOK, "OK")
	}

	if err := UserContext()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}
	if got != userID {
		t.Errorf("Expected user ID %s in context, got %s", userID, got)
	}
}

func TestUserContext_MissingHeader(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handlerCalled := false
	handler := func(c echo.Context) error {
		handlerCalled = true
		return c.String(http.StatusOK, "OK")
	}

	if err := UserContext()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if handlerCalled {
		t.Error("Handler should not be called without a user ID header")
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestUserContext_InvalidHeader(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	req.Header.Set(UserIDHeader, "not-a-uuid")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	}

	if err := UserContext()(handler)(c); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("Expected status 401, got %d", rec.Code)
	}
}

func TestGetUserID_NoContext(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/entries", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if got := GetUserID(c); got != uuid.Nil {
		t.Errorf("Expected uuid.Nil, got %s", got)
	}
}
