package web

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/albertaizhang/portfolio/internal/analytics"
)

func withAdmin(password string) testServerOption {
	return func(o *Options) {
		o.Admin = AdminCredentials{Username: "admin", Password: password}
	}
}

func login(t *testing.T, srv *Server, username, password string) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	return doRequest(srv, http.MethodPost, "/admin/login", strings.NewReader(form.Encode()),
		map[string]string{"Content-Type": "application/x-www-form-urlencoded"})
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie {
			return c.Name + "=" + c.Value
		}
	}
	t.Fatal("expected admin cookie")
	return ""
}

func TestAdminRoutesAbsentWithoutPassword(t *testing.T) {
	srv := newTestServer(t)
	if rec := doRequest(srv, http.MethodGet, "/admin/login", nil, nil); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAdminLoginRejectsBadCredentials(t *testing.T) {
	srv := newTestServer(t, withAdmin("secret"))
	rec := login(t, srv, "admin", "wrong")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid credentials") {
		t.Fatal("expected error message")
	}
}

func TestAdminDashboardRequiresSession(t *testing.T) {
	srv := newTestServer(t, withAdmin("secret"))
	rec := doRequest(srv, http.MethodGet, "/admin/dashboard", nil, map[string]string{"Cookie": adminCookie + "=forged"})
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/admin/login" {
		t.Fatalf("expected redirect to login, got %q", loc)
	}
}

func TestAdminDashboardShowsStats(t *testing.T) {
	store := openStore(t)
	srv := newTestServer(t, withStore(store), withAdmin("secret"))

	doRequest(srv, http.MethodGet, "/", nil, nil)
	doRequest(srv, http.MethodGet, "/?tag=React", nil, nil)
	doRequest(srv, http.MethodGet, "/", nil, map[string]string{"DNT": "1"})
	doRequest(srv, http.MethodGet, "/projects?tag=React", nil, map[string]string{"HX-Request": "true"})
	doRequest(srv, http.MethodGet, "/api/tags", nil, nil)
	srv.Wait()

	rec := login(t, srv, "admin", "secret")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect after login, got %d", rec.Code)
	}
	cookie := sessionCookie(t, rec)

	page := doRequest(srv, http.MethodGet, "/admin/dashboard", nil, map[string]string{"Cookie": cookie})
	if page.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", page.Code)
	}
	doc := parseHTML(t, page)
	if got := strings.TrimSpace(doc.Find("#total-visitors").Text()); got != "2" {
		t.Fatalf("expected 2 tracked visits, got %q", got)
	}
	if got := doc.Find("#top-tags tbody tr td").First().Text(); got != "React" {
		t.Fatalf("expected React as top tag, got %q", got)
	}

	apiRec := doRequest(srv, http.MethodGet, "/admin/api/stats", nil, map[string]string{"Cookie": cookie})
	var stats analytics.Stats
	if err := json.Unmarshal(apiRec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalVisitors != 2 || stats.UniqueVisitors != 1 || stats.TotalSelections != 1 {
		t.Fatalf("unexpected stats %+v", stats)
	}

	export := doRequest(srv, http.MethodGet, "/admin/export/stats", nil, map[string]string{"Cookie": cookie})
	if cd := export.Header().Get("Content-Disposition"); !strings.Contains(cd, "admin-stats.json") {
		t.Fatalf("expected attachment header, got %q", cd)
	}

	visitors := parseHTML(t, doRequest(srv, http.MethodGet, "/admin/visitors?limit=1", nil, map[string]string{"Cookie": cookie}))
	if n := visitors.Find("tr.visit").Length(); n != 1 {
		t.Fatalf("expected 1 visitor row, got %d", n)
	}
}

func TestAdminCleanupWithoutRetention(t *testing.T) {
	store := openStore(t)
	srv := newTestServer(t, withStore(store), withAdmin("secret"))
	cookie := sessionCookie(t, login(t, srv, "admin", "secret"))

	rec := doRequest(srv, http.MethodPost, "/admin/privacy/cleanup", nil, map[string]string{"Cookie": cookie})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"removed":0`) {
		t.Fatalf("expected nothing removed, got %s", rec.Body.String())
	}
}

func TestAdminDashboardWithoutAnalytics(t *testing.T) {
	srv := newTestServer(t, withAdmin("secret"))
	cookie := sessionCookie(t, login(t, srv, "admin", "secret"))

	rec := doRequest(srv, http.MethodGet, "/admin/dashboard", nil, map[string]string{"Cookie": cookie})
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestAdminLogoutClearsCookie(t *testing.T) {
	srv := newTestServer(t, withAdmin("secret"))
	rec := doRequest(srv, http.MethodGet, "/admin/logout", nil, nil)
	if rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	for _, c := range rec.Result().Cookies() {
		if c.Name == adminCookie && c.MaxAge >= 0 {
			t.Fatalf("expected expired cookie, got %+v", c)
		}
	}
}
