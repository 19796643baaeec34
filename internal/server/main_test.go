package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/database"
	"inkwell/internal/featureflags"
	"inkwell/internal/repository"
	"inkwell/internal/service"
	"inkwell/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

const testCookieName = "inkwell_session"

// newTestApp wires a full server against in-memory SQLite and miniredis.
// The first account registered through it gets id 1 and is therefore the
// administrator.
func newTestApp(t *testing.T) (*fiber.App, *Server) {
	t.Helper()

	db, err := database.OpenTest()
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	cfg := &config.Config{
		Port:                 "0",
		SessionCookie:        testCookieName,
		SessionLifetimeHours: 1,
		AdminUserID:          1,
		Env:                  "test",
	}

	userRepo := repository.NewUserRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	store := session.NewStore(client, cfg.SessionLifetime())

	s := &Server{
		config:         cfg,
		db:             db,
		redis:          client,
		userRepo:       userRepo,
		postRepo:       postRepo,
		commentRepo:    commentRepo,
		sessions:       session.NewProvider(store, userRepo, cfg.AdminUserID),
		flags:          featureflags.NewManager(cfg.FeatureFlags),
		accountService: service.NewAccountService(userRepo),
		postService:    service.NewPostService(postRepo),
		commentService: service.NewCommentService(commentRepo),
	}

	app := fiber.New()
	app.Use(s.SessionCookie())
	s.SetupRoutes(app)

	return app, s
}

func doGet(t *testing.T, app *fiber.App, path, cookie string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func doPostForm(t *testing.T, app *fiber.App, path, cookie string, form url.Values) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: testCookieName, Value: cookie})
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// sessionCookie returns the session id the response issued, or the empty
// string when no cookie was set.
func sessionCookie(resp *http.Response) string {
	for _, ck := range resp.Cookies() {
		if ck.Name == testCookieName {
			return ck.Value
		}
	}
	return ""
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

// registerAccount signs up through the real endpoint and returns the session
// cookie, which is logged in as the new user.
func registerAccount(t *testing.T, app *fiber.App, email, name, password string) string {
	t.Helper()
	resp := doPostForm(t, app, "/register", "", url.Values{
		"email":    {email},
		"name":     {name},
		"password": {password},
	})
	require.Equal(t, fiber.StatusFound, resp.StatusCode)
	require.Equal(t, "/", resp.Header.Get("Location"))
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	return cookie
}

// flashesAt fetches the given page with the session cookie and returns the
// flash messages it rendered.
func flashesAt(t *testing.T, app *fiber.App, path, cookie string) []string {
	t.Helper()
	body := decodeBody(t, doGet(t, app, path, cookie))

	raw, ok := body["flashes"].([]interface{})
	if !ok {
		return nil
	}
	flashes := make([]string, 0, len(raw))
	for _, f := range raw {
		flashes = append(flashes, f.(string))
	}
	return flashes
}

func currentUser(t *testing.T, app *fiber.App, cookie string) map[string]interface{} {
	t.Helper()
	body := decodeBody(t, doGet(t, app, "/", cookie))
	return body["current_user"].(map[string]interface{})
}
