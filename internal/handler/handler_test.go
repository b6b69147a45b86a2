package handler

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"citypulse-service/internal/model"
	"citypulse-service/internal/store"
)

func newTestEnv(opts Options) (*echo.Echo, *store.MemoryStore) {
	ms := store.NewMemoryStore()
	h := New(ms, opts)
	e := echo.New()
	h.Register(e)
	return e, ms
}

func doJSON(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func createPersona(t *testing.T, e *echo.Echo, target, handle string) model.Persona {
	t.Helper()
	rec := doJSON(e, "POST", target, `{"handle":"`+handle+`"}`)
	require.Equal(t, 201, rec.Code, rec.Body.String())
	var p model.Persona
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &p))
	return p
}

func createRoom(t *testing.T, e *echo.Echo, target, body string) model.Room {
	t.Helper()
	rec := doJSON(e, "POST", target, body)
	require.Equal(t, 201, rec.Code, rec.Body.String())
	var r model.Room
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &r))
	return r
}
