package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/forevo/internal/logging"
	"github.com/dmitrijs2005/forevo/internal/server/config"
	"github.com/dmitrijs2005/forevo/internal/server/messages"
	"github.com/dmitrijs2005/forevo/internal/server/models"
	"github.com/dmitrijs2005/forevo/internal/server/storage"
	"github.com/dmitrijs2005/forevo/internal/server/users"
)

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dataDir := t.TempDir()

	cfg := &config.Config{
		DataDir:                     dataDir,
		SecretKey:                   "k",
		AccessTokenValidityDuration: time.Hour,
	}

	sm, err := storage.NewFileManager(dataDir)
	require.NoError(t, err)

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	us := users.NewService(sm.Users(), cfg)
	ms := messages.NewService(sm.Messages())

	return NewServer(":0", "", logger, us, ms), dataDir
}

func doJSON(t *testing.T, s *Server, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func registerUser(t *testing.T, s *Server, email, username string) models.PublicUser {
	t.Helper()

	w := doJSON(t, s, http.MethodPost, "/api/register", gin.H{
		"email": email, "password": "p", "displayName": "Name", "username": username,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var u models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	return u
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRegister_ReturnsUserWithoutPassword(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", gin.H{
		"email": "a@x.com", "password": "p", "displayName": "A", "username": "a",
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.NotContains(t, body, "password")
	assert.Contains(t, body, "a@x.com")

	var u models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &u))
	assert.NotEmpty(t, u.ID)
	assert.Equal(t, models.DefaultAvatarColor, u.AvatarColor)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "a@x.com", "a")

	w := doJSON(t, s, http.MethodPost, "/api/register", gin.H{
		"email": "a@x.com", "password": "q", "displayName": "B", "username": "b",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "email")

	// store still has exactly one user
	w = doJSON(t, s, http.MethodGet, "/api/users", nil)
	var list []models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "a@x.com", "a")

	w := doJSON(t, s, http.MethodPost, "/api/register", gin.H{
		"email": "b@x.com", "password": "q", "displayName": "B", "username": "a",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "username")
}

func TestRegister_MissingFields(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodPost, "/api/register", gin.H{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestListUsers_NeverExposesPasswords(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "a@x.com", "a")
	registerUser(t, s, "b@x.com", "b")

	w := doJSON(t, s, http.MethodGet, "/api/users", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, strings.Contains(w.Body.String(), "password"))

	var list []models.PublicUser
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].UserName)
	assert.Equal(t, "b", list[1].UserName)
}

func TestSendAndListMessages(t *testing.T) {
	s, _ := newTestServer(t)
	u := registerUser(t, s, "a@x.com", "a")

	// recipient id does not need to exist
	w := doJSON(t, s, http.MethodPost, "/api/messages", gin.H{
		"from": u.ID, "to": "ID2", "text": "hi",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var sent models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &sent))
	assert.NotEmpty(t, sent.ID)

	w = doJSON(t, s, http.MethodGet, "/api/messages?userId="+u.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var msgs []models.Message
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &msgs))
	require.Len(t, msgs, 1)
	assert.Equal(t, sent.ID, msgs[0].ID)
	assert.Equal(t, "hi", msgs[0].Text)
}

func TestListMessages_NoMatchesIsEmptyArray(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/messages?userId=nonexistent", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", strings.TrimSpace(w.Body.String()))
}

func TestListMessages_MissingUserID(t *testing.T) {
	s, _ := newTestServer(t)

	w := doJSON(t, s, http.MethodGet, "/api/messages", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	s, _ := newTestServer(t)
	registerUser(t, s, "a@x.com", "a")

	w := doJSON(t, s, http.MethodPost, "/api/login", gin.H{"email": "a@x.com", "password": "p"})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, "a@x.com", resp.User.Email)

	w = doJSON(t, s, http.MethodPost, "/api/login", gin.H{"email": "a@x.com", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, s, http.MethodPost, "/api/login", gin.H{"email": "nobody@x.com", "password": "p"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestStorageFault_SurfacesAsServerError(t *testing.T) {
	s, dataDir := newTestServer(t)
	registerUser(t, s, "a@x.com", "a")

	// corrupt the collection file behind the repository's back
	require.NoError(t, os.WriteFile(filepath.Join(dataDir, "users.json"), []byte("{broken"), 0o660))

	w := doJSON(t, s, http.MethodGet, "/api/users", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "server error")
	assert.NotContains(t, w.Body.String(), dataDir, "no internal paths in the response")
}
