package router

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	authService "labtrack/internal/application/auth"
	productService "labtrack/internal/application/product"
	"labtrack/internal/delivery/http/cookie"
	"labtrack/internal/delivery/http/handler"
	domain "labtrack/internal/domain/auth"
	"labtrack/internal/infrastructure/database"
	"labtrack/internal/infrastructure/repository"
	"labtrack/internal/logging"
)

const cookieName = "labtrack.sid"

type testApp struct {
	server   *httptest.Server
	db       *database.DB
	auth     authService.Service
	cookies  *cookie.Codec
	handlers Handlers
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx := context.Background()

	db, err := database.New(ctx, database.Options{
		Driver: database.DriverSQLite,
		DSN:    filepath.Join(t.TempDir(), "labtrack.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	logger := logging.Discard()
	authSvc, err := authService.NewService(
		repository.NewUserRepository(db),
		repository.NewSessionRepository(db),
		authService.NewBcryptHasher(bcrypt.MinCost),
		time.Hour,
	)
	require.NoError(t, err)

	cookies := cookie.NewCodec(cookieName, []byte("0123456789abcdef0123456789abcdef"), false)
	handlers := Handlers{
		Auth:    handler.NewAuthHandler(authSvc, cookies, logger),
		Product: handler.NewProductHandler(productService.NewService(repository.NewProductRepository(db)), logger),
		Test:    handler.NewTestHandler(repository.NewTestRepository(db), logger),
		Result:  handler.NewResultHandler(repository.NewResultRepository(db), logger),
		Report:  handler.NewReportHandler(repository.NewReportRepository(db), logger),
		Page:    handler.NewPageHandler(),
	}

	srv := httptest.NewServer(Setup(handlers, authSvc, cookies, logger))
	t.Cleanup(srv.Close)

	return &testApp{server: srv, db: db, auth: authSvc, cookies: cookies, handlers: handlers}
}

// client keeps cookies and does not follow redirects
func (a *testApp) client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func (a *testApp) do(t *testing.T, c *http.Client, method, path, contentType, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(method, a.server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	resp, err := c.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (a *testApp) postJSON(t *testing.T, c *http.Client, path string, body any) *http.Response {
	t.Helper()
	blob, err := json.Marshal(body)
	require.NoError(t, err)
	return a.do(t, c, http.MethodPost, path, "application/json", string(blob))
}

func (a *testApp) get(t *testing.T, c *http.Client, path string) *http.Response {
	t.Helper()
	return a.do(t, c, http.MethodGet, path, "", "")
}

func (a *testApp) signupAndLogin(t *testing.T, c *http.Client, email, password string) {
	t.Helper()
	resp := a.postJSON(t, c, "/signup", map[string]string{
		"email": email, "password": password, "confirmPassword": password,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = a.postJSON(t, c, "/login", map[string]string{"email": email, "password": password})
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func (a *testApp) sessionCookie(c *http.Client) *http.Cookie {
	u, _ := url.Parse(a.server.URL)
	for _, ck := range c.Jar.Cookies(u) {
		if ck.Name == cookieName {
			return ck
		}
	}
	return nil
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	for _, path := range []string{
		"/", "/products", "/tests", "/results", "/reports", "/comparison",
		"/productstable", "/teststable", "/teststable/CorePump", "/testsbyId?testId=1",
		"/resultstable?testId=1", "/resultstable/1/CorePump", "/getreports",
	} {
		resp := app.get(t, c, path)
		assert.Equal(t, http.StatusFound, resp.StatusCode, path)
		assert.Equal(t, "/login", resp.Header.Get("Location"), path)
	}

	resp := app.postJSON(t, c, "/products/add", map[string]string{"productName": "core pump"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLoginPageServedToAnonymous(t *testing.T) {
	app := newTestApp(t)
	resp := app.get(t, app.client(t), "/login")

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `action="/signup"`)
}

func TestSignupLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	app.signupAndLogin(t, c, "a@x.com", "pw1")

	ck := app.sessionCookie(c)
	require.NotNil(t, ck)

	// authenticated callers are bounced away from the anonymous routes
	resp := app.get(t, c, "/login")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/", resp.Header.Get("Location"))

	resp = app.postJSON(t, c, "/login", map[string]string{"email": "a@x.com", "password": "pw1"})
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	resp = app.get(t, c, "/")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/html")

	resp = app.do(t, c, http.MethodDelete, "/logout", "", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Nil(t, app.sessionCookie(c))

	resp = app.get(t, c, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// the old cookie no longer names a session
	replay := app.client(t)
	u, _ := url.Parse(app.server.URL)
	replay.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: ck.Value, Path: "/"}})
	resp = app.get(t, replay, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestSignupValidation(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	resp := app.postJSON(t, c, "/signup", map[string]string{
		"email": "a@x.com", "password": "pw1", "confirmPassword": "pw2",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Passwords do not match", decode[handler.Response](t, resp).Message)

	resp = app.postJSON(t, c, "/signup", map[string]string{"email": "", "password": "", "confirmPassword": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	form := url.Values{"email": {"a@x.com"}, "password": {"pw1"}, "confirmPassword": {"pw1"}}
	resp = app.do(t, c, http.MethodPost, "/signup", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.do(t, c, http.MethodPost, "/signup", "application/x-www-form-urlencoded", form.Encode())
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Account already exists", decode[handler.Response](t, resp).Message)

	// signup never logs anyone in
	assert.Nil(t, app.sessionCookie(c))
}

func TestLoginRejectionsAreIndistinguishable(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)

	resp := app.postJSON(t, c, "/signup", map[string]string{
		"email": "a@x.com", "password": "pw1", "confirmPassword": "pw1",
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	wrongPassword := app.postJSON(t, c, "/login", map[string]string{"email": "a@x.com", "password": "nope"})
	unknownEmail := app.postJSON(t, c, "/login", map[string]string{"email": "b@x.com", "password": "pw1"})

	assert.Equal(t, http.StatusBadRequest, wrongPassword.StatusCode)
	assert.Equal(t, http.StatusBadRequest, unknownEmail.StatusCode)
	assert.Equal(t, decode[handler.Response](t, wrongPassword), decode[handler.Response](t, unknownEmail))
	assert.Nil(t, app.sessionCookie(c))

	resp = app.postJSON(t, c, "/login", map[string]string{"email": "a@x.com"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTamperedCookieIsAnonymous(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	ck := app.sessionCookie(c)
	require.NotNil(t, ck)

	forged := app.client(t)
	u, _ := url.Parse(app.server.URL)
	forged.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: ck.Value + "x", Path: "/"}})

	resp := app.get(t, forged, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))

	// a cookie signed with another secret but naming a live session is refused too
	sid, err := app.cookies.Decode(ck.Value)
	require.NoError(t, err)
	foreign, err := cookie.NewCodec(cookieName, []byte("another-secret-another-secret-xx"), false).
		Encode(sid, time.Now().Add(time.Hour))
	require.NoError(t, err)
	forged.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: foreign, Path: "/"}})

	resp = app.get(t, forged, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	// the legitimate client is unaffected
	resp = app.get(t, c, "/productstable")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestSessionOfDeletedUserIsDestroyed(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	sid, err := app.cookies.Decode(app.sessionCookie(c).Value)
	require.NoError(t, err)

	_, err = app.db.Exec(`DELETE FROM users WHERE email = ?`, "a@x.com")
	require.NoError(t, err)

	resp := app.get(t, c, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, sid).Scan(&n))
	assert.Zero(t, n)
}

func TestExpiredSessionIsNotHonored(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	sid, err := app.cookies.Decode(app.sessionCookie(c).Value)
	require.NoError(t, err)

	_, err = app.db.Exec(`UPDATE sessions SET expires_at = ? WHERE id = ?`, time.Now().Add(-time.Minute).UTC(), sid)
	require.NoError(t, err)

	resp := app.get(t, c, "/productstable")
	assert.Equal(t, http.StatusFound, resp.StatusCode)

	var n int
	require.NoError(t, app.db.QueryRow(`SELECT COUNT(*) FROM sessions WHERE id = ?`, sid).Scan(&n))
	assert.Zero(t, n)
}

func TestLoginReplacesCarriedSession(t *testing.T) {
	app := newTestApp(t)
	ctx := context.Background()
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	oldCookie := app.sessionCookie(c)
	oldID, err := app.cookies.Decode(oldCookie.Value)
	require.NoError(t, err)

	// call the handler directly; the gate would bounce a live session
	req := httptest.NewRequest(http.MethodPost, "/login",
		strings.NewReader(`{"email":"a@x.com","password":"pw1"}`))
	req.Header.Set("Content-Type", "application/json")
	req.AddCookie(&http.Cookie{Name: cookieName, Value: oldCookie.Value})
	rec := httptest.NewRecorder()
	app.handlers.Auth.Login(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var newID string
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == cookieName {
			newID, err = app.cookies.Decode(ck.Value)
			require.NoError(t, err)
		}
	}
	require.NotEmpty(t, newID)
	assert.NotEqual(t, oldID, newID)

	_, _, err = app.auth.ResolveSession(ctx, oldID)
	assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	_, _, err = app.auth.ResolveSession(ctx, newID)
	assert.NoError(t, err)
}

func TestMethodOverrideLogout(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	resp := app.do(t, c, http.MethodPost, "/logout?_method=DELETE", "", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
	assert.Nil(t, app.sessionCookie(c))

	// plain POST is not a route
	resp = app.do(t, c, http.MethodPost, "/logout", "", "")
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestLogoutWithoutSessionRedirects(t *testing.T) {
	app := newTestApp(t)
	resp := app.do(t, app.client(t), http.MethodDelete, "/logout", "", "")
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestProductRoutes(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	resp := app.get(t, c, "/productstable")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, decode[[]map[string]any](t, resp))

	resp = app.postJSON(t, c, "/products/add", map[string]string{"productName": "core pump"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	added := decode[map[string]any](t, resp)
	assert.Equal(t, "CorePump", added["id"])

	resp = app.postJSON(t, c, "/products/add", map[string]string{"productName": "Core Pump"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "Product already exists", decode[handler.Response](t, resp).Message)

	resp = app.postJSON(t, c, "/products/add", map[string]string{"productName": "   "})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = app.postJSON(t, c, "/products/add", map[string]string{"productName": "spare kit", "productType": "extra"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = app.get(t, c, "/productstable")
	products := decode[[]map[string]any](t, resp)
	require.Len(t, products, 1)
	assert.Equal(t, "CorePump", products[0]["Id"])
	assert.Equal(t, "core pump", products[0]["product_name"])

	resp = app.get(t, c, "/productstable?type=extra")
	assert.Len(t, decode[[]map[string]any](t, resp), 1)
}

func TestReadRoutes(t *testing.T) {
	app := newTestApp(t)
	c := app.client(t)
	app.signupAndLogin(t, c, "a@x.com", "pw1")

	for _, path := range []string{"/teststable", "/teststable/CorePump", "/resultstable?testId=1", "/resultstable/1/CorePump", "/getreports"} {
		resp := app.get(t, c, path)
		require.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Empty(t, decode[[]map[string]any](t, resp), path)
	}

	resp := app.get(t, c, "/testsbyId?testId=1")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp = app.get(t, c, "/testsbyId?testId=abc")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp = app.get(t, c, "/resultstable?testId=")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	_, err := app.db.Exec(`INSERT INTO tableoftestsv1 (Product, Device_Id) VALUES (?, ?)`, "CorePump", "IMEI-1")
	require.NoError(t, err)
	_, err = app.db.Exec(`INSERT INTO results (TestId, Head, Efficiency) VALUES (?, ?, ?)`, 1, 3.5, 0.61)
	require.NoError(t, err)
	_, err = app.db.Exec(`INSERT INTO test_reports (title, description, date) VALUES (?, ?, ?)`,
		"older", "", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	_, err = app.db.Exec(`INSERT INTO test_reports (title, description, date) VALUES (?, ?, ?)`,
		"newer", "", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	resp = app.get(t, c, "/teststable/CorePump")
	tests := decode[[]map[string]any](t, resp)
	require.Len(t, tests, 1)
	assert.Equal(t, "IMEI-1", tests[0]["Device_Id"])

	resp = app.get(t, c, "/testsbyId?testId=1")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "CorePump", decode[map[string]any](t, resp)["Product"])

	resp = app.get(t, c, "/resultstable/1/CorePump")
	assert.Len(t, decode[[]map[string]any](t, resp), 1)

	resp = app.get(t, c, "/getreports")
	reports := decode[[]map[string]any](t, resp)
	require.Len(t, reports, 2)
	assert.Equal(t, "newer", reports[0]["title"])
}

func TestRequestIDHeader(t *testing.T) {
	app := newTestApp(t)
	resp := app.get(t, app.client(t), "/login")
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))
}
