package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/eventpage/guestbook/internal/guestbook"
	"github.com/eventpage/guestbook/internal/guestbook/repository"
	"github.com/eventpage/guestbook/internal/guestbook/service"
)

func init() { gin.SetMode(gin.TestMode) }

func do(g *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	g.ServeHTTP(w, req)
	return w
}

type appendResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Entries []guestbook.Entry `json:"entries"`
	Error   string            `json:"error"`
}

func TestGuestbookHandler_ListEmpty(t *testing.T) {
	g := gin.New()
	RegisterGuestbookRoutes(g, service.NewMemoryService())

	w := do(g, http.MethodGet, "/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestGuestbookHandler_AppendAndList(t *testing.T) {
	g := gin.New()
	RegisterGuestbookRoutes(g, service.NewMemoryService())

	w := do(g, http.MethodPost, "/entries", `{"name":"Ann","text":"Happy to join!"}`)
	require.Equal(t, http.StatusOK, w.Code)
	var ar appendResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ar))
	require.True(t, ar.Success)
	require.Len(t, ar.Entries, 1)
	require.Equal(t, "Ann", ar.Entries[0].Name)

	// legacy field name and legacy path
	w = do(g, http.MethodPost, "/api/data", `{"name":"Bob","message":"See you"}`)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(g, http.MethodGet, "/entries", "")
	require.Equal(t, http.StatusOK, w.Code)
	var doc guestbook.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	require.Len(t, doc.Entries, 2)
	require.Equal(t, "Happy to join!", doc.Entries[0].Text)
	require.Equal(t, "See you", doc.Entries[1].Text)
	require.NotEqual(t, doc.Entries[0].ID, doc.Entries[1].ID)
}

func TestGuestbookHandler_Validation(t *testing.T) {
	g := gin.New()
	RegisterGuestbookRoutes(g, service.NewMemoryService())

	for _, body := range []string{`{"name":"","text":"hello"}`, `{"name":"Bob","text":""}`, `{}`, `not json`} {
		w := do(g, http.MethodPost, "/entries", body)
		require.Equal(t, http.StatusBadRequest, w.Code, body)
		require.JSONEq(t, `{"error":"Name and message are required"}`, w.Body.String())
	}

	w := do(g, http.MethodGet, "/entries", "")
	require.JSONEq(t, `{"entries":[]}`, w.Body.String())
}

func TestGuestbookHandler_PersistenceFailureDoesNotLeak(t *testing.T) {
	repo := repository.NewMemoryRepo()
	repo.FailSave = errors.New("open /srv/secret/messages.json: permission denied")
	g := gin.New()
	RegisterGuestbookRoutes(g, service.NewService(repo, true))

	w := do(g, http.MethodPost, "/entries", `{"name":"Ann","text":"hi"}`)
	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.JSONEq(t, `{"error":"Failed to save message"}`, w.Body.String())
	require.NotContains(t, w.Body.String(), "/srv/secret")
}
