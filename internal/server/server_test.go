package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	contactsnotification "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/notification"
	contactsjsonfile "github.com/Apurer/portfolio-api/internal/domains/contacts/adapters/persistence/jsonfile"
	contactsapp "github.com/Apurer/portfolio-api/internal/domains/contacts/application"
	projectsjsonfile "github.com/Apurer/portfolio-api/internal/domains/projects/adapters/persistence/jsonfile"
	projectsapp "github.com/Apurer/portfolio-api/internal/domains/projects/application"
	"github.com/Apurer/portfolio-api/internal/platform/mail"
)

type stubTransport struct {
	mode      mail.Mode
	sendErr   error
	verifyErr error
}

func (s stubTransport) Send(context.Context, mail.Envelope) (mail.Receipt, error) {
	if s.sendErr != nil {
		return mail.Receipt{}, s.sendErr
	}
	return mail.Receipt{MessageID: "<stub@example.com>"}, nil
}

func (s stubTransport) Verify(context.Context) error { return s.verifyErr }

func (s stubTransport) Mode() mail.Mode { return s.mode }

type testApp struct {
	router  *gin.Engine
	dataDir string
}

func newTestApp(t *testing.T, transport mail.Transport) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.DiscardHandler)
	dir := t.TempDir()

	projectRepo := projectsjsonfile.NewRepository(filepath.Join(dir, projectsjsonfile.FileName), logger)
	require.NoError(t, projectRepo.Ensure())
	contactRepo := contactsjsonfile.NewRepository(filepath.Join(dir, contactsjsonfile.FileName), logger)
	require.NoError(t, contactRepo.Ensure())

	notifier := contactsnotification.New(transport, "", "")
	handlers := Handlers{
		ProjectsAPI: NewProjectsAPI(projectsapp.NewService(projectRepo), logger),
		ContactsAPI: NewContactsAPI(contactsapp.NewService(contactRepo, notifier, contactsapp.WithNotifyTimeout(time.Second)), logger),
		SystemAPI:   NewSystemAPI(transport, time.Second),
	}
	router := NewRouter(RouterConfig{Logger: logger}, handlers)
	router.GET("/api/panic", func(*gin.Context) { panic("kaboom at /srv/data") })
	return &testApp{router: router, dataDir: dir}
}

func (a *testApp) do(t *testing.T, method, path, body string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &decoded), rec.Body.String())
	return rec.Code, decoded
}

func (a *testApp) fileContent(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(a.dataDir, name))
	require.NoError(t, err)
	return string(data)
}

func consoleTransport() mail.Transport {
	return mail.NewConsoleTransport(slog.New(slog.DiscardHandler))
}

func TestContacts_SubmitThenListNewestFirst(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, msgContactDelivered, body["message"])
	require.True(t, strings.HasPrefix(body["messageId"].(string), "console-"))

	status, _ = app.do(t, http.MethodPost, "/api/contact",
		`{"name":"Grace","email":"grace@example.com","subject":"Yo","message":"Second"}`)
	require.Equal(t, http.StatusOK, status)

	status, body = app.do(t, http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, status)
	contacts := body["contacts"].([]any)
	require.Len(t, contacts, 2)
	first := contacts[0].(map[string]any)
	second := contacts[1].(map[string]any)
	require.Equal(t, "Grace", first["name"])
	require.Equal(t, "Ada", second["name"])
	require.Equal(t, "ada@example.com", second["email"])
	require.Greater(t, first["id"].(float64), second["id"].(float64))
	require.NotEmpty(t, second["timestamp"])
}

func TestContacts_ValidationMessages(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "missing field", body: `{"name":"Ada","email":"ada@example.com","subject":"Hi"}`, want: msgContactFieldsRequired},
		{name: "blank field", body: `{"name":"  ","email":"ada@example.com","subject":"Hi","message":"x"}`, want: msgContactFieldsRequired},
		{name: "empty body", body: "", want: msgContactFieldsRequired},
		{name: "bad email", body: `{"name":"Ada","email":"ada-at-example","subject":"Hi","message":"x"}`, want: msgContactInvalidEmail},
		{name: "too long", body: `{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"` + strings.Repeat("a", 2001) + `"}`, want: msgContactTooLong},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, body := app.do(t, http.MethodPost, "/api/contact", tt.body)
			require.Equal(t, http.StatusBadRequest, status)
			require.Equal(t, false, body["success"])
			require.Equal(t, tt.want, body["error"])
		})
	}

	require.Equal(t, "[]", app.fileContent(t, contactsjsonfile.FileName))
}

func TestContacts_MalformedJSON(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodPost, "/api/contact", `{"name":`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, false, body["success"])
	require.NotEmpty(t, body["error"])
}

func TestContacts_DeliveryFailureStillSucceeds(t *testing.T) {
	app := newTestApp(t, stubTransport{mode: mail.ModeSMTP, sendErr: errors.New("535 auth failed")})

	status, body := app.do(t, http.MethodPost, "/api/contact",
		`{"name":"Ada","email":"ada@example.com","subject":"Hi","message":"Hello"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, true, body["success"])
	require.Equal(t, msgContactReceived, body["message"])
	require.Equal(t, noteDeliveryFailed, body["note"])
	require.NotContains(t, body, "messageId")

	_, body = app.do(t, http.MethodGet, "/api/contacts", "")
	require.Len(t, body["contacts"].([]any), 1)
}

func TestProjects_CRUD(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodPost, "/api/projects",
		`{"title":"Site","description":"My site","image":"/site.png","liveLink":"https://live"}`)
	require.Equal(t, http.StatusCreated, status)
	require.Equal(t, "Project created successfully", body["message"])
	project := body["project"].(map[string]any)
	id := project["id"].(string)
	require.NotEmpty(t, id)
	require.NotEmpty(t, project["createdAt"])
	require.NotContains(t, project, "updatedAt")
	require.Equal(t, "", project["githubLink"])

	status, body = app.do(t, http.MethodPut, "/api/projects/"+id,
		`{"title":"Site v2","description":"Updated","image":"/v2.png"}`)
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Project updated successfully", body["message"])
	updated := body["project"].(map[string]any)
	require.Equal(t, id, updated["id"])
	require.Equal(t, project["createdAt"], updated["createdAt"])
	require.Equal(t, "", updated["liveLink"])
	require.NotEmpty(t, updated["updatedAt"])

	status, body = app.do(t, http.MethodGet, "/api/projects", "")
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body["projects"].([]any), 1)

	status, body = app.do(t, http.MethodDelete, "/api/projects/"+id, "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Project deleted successfully", body["message"])

	_, body = app.do(t, http.MethodGet, "/api/projects", "")
	require.Empty(t, body["projects"].([]any))
}

func TestProjects_MissingImageLeavesStoreUnchanged(t *testing.T) {
	app := newTestApp(t, consoleTransport())
	status, _ := app.do(t, http.MethodPost, "/api/projects", `{"title":"A","description":"B","image":"/a.png"}`)
	require.Equal(t, http.StatusCreated, status)
	before := app.fileContent(t, projectsjsonfile.FileName)

	status, body := app.do(t, http.MethodPost, "/api/projects", `{"title":"X","description":"Y"}`)
	require.Equal(t, http.StatusBadRequest, status)
	require.Equal(t, msgProjectFieldsRequired, body["error"])

	require.Equal(t, before, app.fileContent(t, projectsjsonfile.FileName))
}

func TestProjects_UnknownIDIsNotFound(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodPut, "/api/projects/does-not-exist", `{}`)
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, msgProjectNotFound, body["error"])

	status, body = app.do(t, http.MethodDelete, "/api/projects/does-not-exist", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, msgProjectNotFound, body["error"])
}

func TestSystem_HealthReportsConsoleMail(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodGet, "/api/health", "")
	require.Equal(t, http.StatusOK, status)
	require.Equal(t, "Server is healthy", body["status"])
	services := body["services"].(map[string]any)
	require.Equal(t, false, services["email"])
	require.Equal(t, true, services["projects"])
	_, err := time.Parse(time.RFC3339Nano, body["timestamp"].(string))
	require.NoError(t, err)
}

func TestSystem_EmailTest(t *testing.T) {
	t.Run("console", func(t *testing.T) {
		status, body := newTestApp(t, consoleTransport()).do(t, http.MethodGet, "/api/email-test", "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, "Console Mode", body["status"])
		require.Equal(t, false, body["configured"])
	})
	t.Run("verified", func(t *testing.T) {
		status, body := newTestApp(t, stubTransport{mode: mail.ModeSMTP}).do(t, http.MethodGet, "/api/email-test", "")
		require.Equal(t, http.StatusOK, status)
		require.Equal(t, true, body["configured"])
	})
	t.Run("verify fails", func(t *testing.T) {
		app := newTestApp(t, stubTransport{mode: mail.ModeSMTP, verifyErr: mail.ErrDelivery})
		status, body := app.do(t, http.MethodGet, "/api/email-test", "")
		require.Equal(t, http.StatusInternalServerError, status)
		require.Equal(t, false, body["success"])
		require.Equal(t, false, body["configured"])
		require.True(t, strings.HasPrefix(body["error"].(string), "Email configuration error: "))
	})
}

func TestRouter_UnknownPathAndPanic(t *testing.T) {
	app := newTestApp(t, consoleTransport())

	status, body := app.do(t, http.MethodGet, "/api/nothing-here", "")
	require.Equal(t, http.StatusNotFound, status)
	require.Equal(t, "Endpoint not found", body["error"])

	status, body = app.do(t, http.MethodGet, "/api/panic", "")
	require.Equal(t, http.StatusInternalServerError, status)
	require.Equal(t, "Internal server error", body["error"])
}

func TestRouter_EchoesRequestID(t *testing.T) {
	app := newTestApp(t, consoleTransport())
	req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
	req.Header.Set(RequestIDHeader, "req-123")
	rec := httptest.NewRecorder()
	app.router.ServeHTTP(rec, req)
	require.Equal(t, "req-123", rec.Header().Get(RequestIDHeader))
}

func TestCORSConfig(t *testing.T) {
	require.True(t, corsConfig(nil).AllowAllOrigins)
	require.True(t, corsConfig([]string{"https://a.example", "*"}).AllowAllOrigins)
	cfg := corsConfig([]string{" https://a.example ", ""})
	require.False(t, cfg.AllowAllOrigins)
	require.Equal(t, []string{"https://a.example"}, cfg.AllowOrigins)
}
