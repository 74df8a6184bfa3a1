package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	nethttp "net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"servicedesk/internal/infrastructure/config"
	"servicedesk/internal/infrastructure/database"
	sharedConfig "servicedesk/internal/shared/config"
	"servicedesk/internal/shared/logger"
)

const testPolicies = `roles:
  customer:
    service_request: [create, list, read, delete]
    attachment: [download]
    profile: [read]
  support_staff:
    service_request: [list, read, update_status, delete]
    attachment: [download]
    profile: [read]
`

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type testServer struct {
	t      *testing.T
	engine *gin.Engine
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	policyPath := filepath.Join(t.TempDir(), "policies.yaml")
	require.NoError(t, os.WriteFile(policyPath, []byte(testPolicies), 0o600))

	cfg := &config.Config{
		Server:   sharedConfig.ServerConfig{Mode: gin.TestMode, BaseURL: "http://desk.test", MaxUploadMB: 1},
		Database: sharedConfig.DatabaseConfig{Driver: "sqlite"},
		Auth: sharedConfig.AuthConfig{
			Password:               sharedConfig.PasswordConfig{BcryptCost: 4, MinLength: 8},
			JWT:                    sharedConfig.JWTConfig{Secret: "test-secret", AccessExpMinutes: 15, RefreshExpDays: 1},
			LoginRateLimit:         100,
			LoginRateWindowSeconds: 60,
		},
		Storage:    sharedConfig.StorageConfig{Driver: "memory"},
		Permission: sharedConfig.PermissionConfig{PolicyFile: policyPath},
	}

	db, err := database.Open(&cfg.Database)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, database.AutoMigrate(db))

	log := logger.NewLoggerWithSlog(slog.New(slog.DiscardHandler))
	router, err := NewRouter(t.Context(), db, cfg, log)
	require.NoError(t, err)
	t.Cleanup(router.Shutdown)
	router.SetupRoutes()

	return &testServer{t: t, engine: router.GetEngine()}
}

func (s *testServer) do(req *nethttp.Request, token string) *httptest.ResponseRecorder {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *testServer) json(method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(s.t, err)
		reader = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := s.do(req, token)

	var env envelope
	if w.Body.Len() > 0 && w.Header().Get("Content-Type") != "" {
		_ = json.Unmarshal(w.Body.Bytes(), &env)
	}
	return w, env
}

func (s *testServer) register(email, role string) {
	w, _ := s.json(nethttp.MethodPost, "/auth/register", "", map[string]string{
		"email":      email,
		"password":   "passw0rd-123",
		"first_name": "Test",
		"last_name":  role,
		"role":       role,
	})
	require.Equal(s.t, nethttp.StatusCreated, w.Code, w.Body.String())
}

func (s *testServer) login(email string) string {
	w, env := s.json(nethttp.MethodPost, "/auth/login", "", map[string]string{
		"email":    email,
		"password": "passw0rd-123",
	})
	require.Equal(s.t, nethttp.StatusOK, w.Code, w.Body.String())

	var auth struct {
		Access  string `json:"access"`
		Refresh string `json:"refresh"`
	}
	require.NoError(s.t, json.Unmarshal(env.Data, &auth))
	require.NotEmpty(s.t, auth.Access)
	return auth.Access
}

type requestView struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Version      int    `json:"version"`
	SupportStaff *struct {
		Email string `json:"email"`
	} `json:"support_staff"`
	Attachments []struct {
		ID          string `json:"id"`
		FileName    string `json:"file_name"`
		DownloadURL string `json:"download_url"`
	} `json:"attachments"`
	DescriptionHTML string `json:"description_html"`
}

func (s *testServer) createRequest(token string, file []byte) (*httptest.ResponseRecorder, requestView) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(s.t, mw.WriteField("title", "Boiler is leaking"))
	require.NoError(s.t, mw.WriteField("description", "Water collects under the **boiler** every morning."))
	require.NoError(s.t, mw.WriteField("service_type", "repair"))
	if file != nil {
		part, err := mw.CreateFormFile("attachments", "photo.jpg")
		require.NoError(s.t, err)
		_, err = part.Write(file)
		require.NoError(s.t, err)
	}
	require.NoError(s.t, mw.Close())

	req := httptest.NewRequest(nethttp.MethodPost, "/service-requests", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := s.do(req, token)

	var view requestView
	var env envelope
	if json.Unmarshal(w.Body.Bytes(), &env) == nil && env.Data != nil {
		_ = json.Unmarshal(env.Data, &view)
	}
	return w, view
}

func TestRouter_Ping(t *testing.T) {
	s := newTestServer(t)

	w, _ := s.json(nethttp.MethodGet, "/ping", "", nil)

	assert.Equal(t, nethttp.StatusOK, w.Code)
	assert.JSONEq(t, `{"message":"pong"}`, w.Body.String())
}

func TestRouter_RequiresAuthentication(t *testing.T) {
	s := newTestServer(t)

	for _, path := range []string{"/profile", "/service-requests", "/attachments/att_abc/download"} {
		w, _ := s.json(nethttp.MethodGet, path, "", nil)
		assert.Equal(t, nethttp.StatusUnauthorized, w.Code, path)
	}
}

func TestRouter_ServiceRequestLifecycle(t *testing.T) {
	s := newTestServer(t)

	s.register("staff@example.com", "support_staff")
	s.register("customer@example.com", "customer")
	s.register("other@example.com", "customer")
	customer := s.login("customer@example.com")
	staff := s.login("staff@example.com")
	other := s.login("other@example.com")

	w, _ := s.json(nethttp.MethodGet, "/profile", customer, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)

	// staff cannot create
	w, _ = s.createRequest(staff, nil)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)

	w, created := s.createRequest(customer, []byte("jpeg-bytes"))
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, "pending", created.Status)
	assert.Equal(t, 2, created.Version)
	require.NotNil(t, created.SupportStaff)
	assert.Equal(t, "staff@example.com", created.SupportStaff.Email)
	require.Len(t, created.Attachments, 1)
	attachmentID := created.Attachments[0].ID

	// list is scoped to the caller
	w, env := s.json(nethttp.MethodGet, "/service-requests", staff, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	var page struct {
		Items []requestView `json:"items"`
		Total int64         `json:"total"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(1), page.Total)

	w, env = s.json(nethttp.MethodGet, "/service-requests", other, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(env.Data, &page))
	assert.Equal(t, int64(0), page.Total)

	// fetch-one is owner only and renders markdown
	w, env = s.json(nethttp.MethodGet, "/service-requests/"+created.ID, customer, nil)
	require.Equal(t, nethttp.StatusOK, w.Code)
	var fetched requestView
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Contains(t, fetched.DescriptionHTML, "<strong>boiler</strong>")

	w, _ = s.json(nethttp.MethodGet, "/service-requests/"+created.ID, other, nil)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)

	// only the assigned staff member changes status
	w, _ = s.json(nethttp.MethodPatch, "/service-requests/"+created.ID+"/status", customer, map[string]string{"status": "in_progress"})
	assert.Equal(t, nethttp.StatusForbidden, w.Code)

	w, env = s.json(nethttp.MethodPatch, "/service-requests/"+created.ID+"/status", staff, map[string]string{"status": "in_progress"})
	require.Equal(t, nethttp.StatusOK, w.Code, w.Body.String())
	var updated struct {
		OldStatus string `json:"old_status"`
		Status    string `json:"status"`
		Version   int    `json:"version"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &updated))
	assert.Equal(t, "pending", updated.OldStatus)
	assert.Equal(t, "in_progress", updated.Status)
	assert.Equal(t, 3, updated.Version)

	// the assigned staff member downloads the attachment, a stranger cannot
	w = s.do(httptest.NewRequest(nethttp.MethodGet, "/attachments/"+attachmentID+"/download", nil), staff)
	require.Equal(t, nethttp.StatusOK, w.Code)
	assert.Equal(t, "jpeg-bytes", w.Body.String())
	assert.Contains(t, w.Header().Get("Content-Disposition"), `filename=photo.jpg`)

	w = s.do(httptest.NewRequest(nethttp.MethodGet, "/attachments/"+attachmentID+"/download", nil), other)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)

	// no longer pending, so the customer cannot delete it
	w, _ = s.json(nethttp.MethodDelete, "/service-requests/"+created.ID, customer, nil)
	assert.Equal(t, nethttp.StatusForbidden, w.Code)
}

func TestRouter_CustomerDeletesPendingRequest(t *testing.T) {
	s := newTestServer(t)

	s.register("customer@example.com", "customer")
	customer := s.login("customer@example.com")

	w, created := s.createRequest(customer, []byte("pdf-bytes"))
	require.Equal(t, nethttp.StatusCreated, w.Code, w.Body.String())
	assert.Nil(t, created.SupportStaff)

	w, _ = s.json(nethttp.MethodDelete, "/service-requests/"+created.ID, customer, nil)
	assert.Equal(t, nethttp.StatusNoContent, w.Code)

	w, _ = s.json(nethttp.MethodGet, "/service-requests/"+created.ID, customer, nil)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)

	w = s.do(httptest.NewRequest(nethttp.MethodGet, "/attachments/"+created.Attachments[0].ID+"/download", nil), customer)
	assert.Equal(t, nethttp.StatusNotFound, w.Code)
}
