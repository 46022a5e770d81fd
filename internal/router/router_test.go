package router

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	mem "rescue-revolution/internal/adapters/backend/memory"
	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/platform/logger"
)

type testApp struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	store  *mem.Store
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	store := mem.NewStore()
	h := NewRouter(Options{
		Log:       logger.New(logger.Options{Level: logger.Error}),
		Auth:      store,
		Pets:      store,
		Incidents: store,
		Sessions:  session.NewStore([]byte("test-secret")),
	})

	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}

	return &testApp{
		t:   t,
		srv: srv,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		store: store,
	}
}

func (a *testApp) get(path string) (*http.Response, string) {
	a.t.Helper()
	res, err := a.client.Get(a.srv.URL + path)
	if err != nil {
		a.t.Fatalf("GET %s: %v", path, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		a.t.Fatalf("GET %s body: %v", path, err)
	}
	return res, string(body)
}

func (a *testApp) postForm(path string, form url.Values) *http.Response {
	a.t.Helper()
	res, err := a.client.PostForm(a.srv.URL+path, form)
	if err != nil {
		a.t.Fatalf("POST %s: %v", path, err)
	}
	res.Body.Close()
	return res
}

func (a *testApp) register(username string) {
	a.t.Helper()
	res := a.postForm("/register", url.Values{
		"username":         {username},
		"email":            {username + "@example.com"},
		"password":         {"secret123"},
		"confirm_password": {"secret123"},
	})
	if res.StatusCode != http.StatusSeeOther {
		a.t.Fatalf("register: got status %d, want %d", res.StatusCode, http.StatusSeeOther)
	}
}

func TestRegisterLogsUserIn(t *testing.T) {
	app := newTestApp(t)

	app.register("ana")

	res, body := app.get("/dashboard")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("dashboard after register: got status %d", res.StatusCode)
	}
	if !strings.Contains(body, "Welcome back, ana!") {
		t.Errorf("dashboard should greet the new user, got:\n%s", body)
	}
	if !strings.Contains(body, "Account created successfully!") {
		t.Errorf("success toast should survive the redirect")
	}
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	app := newTestApp(t)

	for _, path := range []string{"/dashboard", "/add-pet", "/add-incident"} {
		res, _ := app.get(path)
		if res.StatusCode != http.StatusSeeOther {
			t.Errorf("GET %s: got status %d, want redirect", path, res.StatusCode)
			continue
		}
		if loc := res.Header.Get("Location"); loc != "/login" {
			t.Errorf("GET %s: redirected to %q, want /login", path, loc)
		}
	}
}

func TestLoginWithBadPasswordShowsError(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")
	app.postForm("/logout", nil)

	res, err := app.client.PostForm(app.srv.URL+"/login", url.Values{
		"username": {"ana"},
		"password": {"wrong"},
	})
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Fatalf("failed login should re-render the form, got status %d", res.StatusCode)
	}
	if !strings.Contains(string(body), "Invalid credentials") {
		t.Errorf("expected invalid-credentials toast in response")
	}
	if !strings.Contains(string(body), `value="ana"`) {
		t.Errorf("username should be preserved on failure")
	}
}

// Con archivo adjunto, el archivo gana: la URL tipeada no debe llegar al
// backend.
func TestAddPetUploadBeatsImageURL(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("name", "Luna")
	_ = mw.WriteField("species", "dog")
	_ = mw.WriteField("status", "available")
	_ = mw.WriteField("image_url", "https://example.com/ignored.jpg")
	fw, err := mw.CreateFormFile("image", "luna.png")
	if err != nil {
		t.Fatal(err)
	}
	_, _ = fw.Write([]byte("fake-png-bytes"))
	mw.Close()

	req, err := http.NewRequest(http.MethodPost, app.srv.URL+"/add-pet", &buf)
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	res, err := app.client.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	res.Body.Close()

	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("add-pet: got status %d, want redirect", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/dashboard" {
		t.Errorf("add-pet redirected to %q, want /dashboard", loc)
	}

	last := app.store.LastPetCreate()
	if last == nil {
		t.Fatal("backend never saw the create")
	}
	if string(last.ImageData) != "fake-png-bytes" {
		t.Errorf("uploaded file should reach the backend")
	}
	if last.ImageURL != "" {
		t.Errorf("image_url should be dropped when a file is uploaded, got %q", last.ImageURL)
	}

	_, body := app.get("/dashboard")
	if !strings.Contains(body, "Pet added successfully!") {
		t.Errorf("success toast should show on the next page")
	}
	if !strings.Contains(body, "Luna") {
		t.Errorf("new pet should appear under My Pets")
	}
}

func TestAddPetValidationRerendersForm(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")

	res, err := app.client.PostForm(app.srv.URL+"/add-pet", url.Values{
		"name":        {""},
		"species":     {"dog"},
		"description": {"kept between attempts"},
	})
	if err != nil {
		t.Fatal(err)
	}
	body, _ := io.ReadAll(res.Body)
	res.Body.Close()

	if res.StatusCode != http.StatusBadRequest {
		t.Fatalf("validation failure should re-render, got status %d", res.StatusCode)
	}
	if !strings.Contains(string(body), "Pet name is required") {
		t.Errorf("expected validation toast")
	}
	if !strings.Contains(string(body), "kept between attempts") {
		t.Errorf("form values should be preserved on failure")
	}
}

func TestExpiredBackendSessionRedirectsToLogin(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")

	app.store.ExpireAllSessions()

	res := app.postForm("/add-pet", url.Values{
		"name":    {"Luna"},
		"species": {"dog"},
	})
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("expired session: got status %d, want redirect", res.StatusCode)
	}
	if loc := res.Header.Get("Location"); loc != "/login" {
		t.Errorf("expired session redirected to %q, want /login", loc)
	}

	_, body := app.get("/login")
	if !strings.Contains(body, "Your session has expired. Please log in again.") {
		t.Errorf("expected session-expired toast on the login page")
	}
}

func TestLogoutFailureKeepsLocalSession(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")

	// El backend ya no reconoce la sesión: el logout remoto falla y el
	// estado local queda como estaba.
	app.store.ExpireAllSessions()

	res := app.postForm("/logout", nil)
	if res.StatusCode != http.StatusSeeOther {
		t.Fatalf("logout: got status %d", res.StatusCode)
	}

	_, body := app.get("/dashboard")
	if !strings.Contains(body, "Welcome back, ana!") {
		t.Errorf("local session should survive a failed backend logout")
	}
}

func TestPetNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	res, body := app.get("/pets/999")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing pet: got status %d, want 404", res.StatusCode)
	}
	if !strings.Contains(body, `href="/pets"`) {
		t.Errorf("not-found page should link back to the pet list")
	}
}

func TestIncidentNotFoundPage(t *testing.T) {
	app := newTestApp(t)

	res, body := app.get("/incidents/999")
	if res.StatusCode != http.StatusNotFound {
		t.Fatalf("missing incident: got status %d, want 404", res.StatusCode)
	}
	if !strings.Contains(body, `href="/incidents"`) {
		t.Errorf("not-found page should link back to the incident list")
	}
}

func TestToastDismissEndpoint(t *testing.T) {
	app := newTestApp(t)
	app.register("ana")

	// La página trae el toast de registro con su data-toast-id.
	_, body := app.get("/dashboard")
	marker := `data-toast-id="`
	i := strings.Index(body, marker)
	if i < 0 {
		t.Fatal("expected a rendered toast with an id")
	}
	rest := body[i+len(marker):]
	id := rest[:strings.Index(rest, `"`)]

	res := app.postForm("/toasts/"+id+"/dismiss", nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("dismiss: got status %d, want 204", res.StatusCode)
	}

	_, body = app.get("/dashboard")
	if strings.Contains(body, id) {
		t.Errorf("dismissed toast should not render again")
	}

	// Repetir el dismiss no debe fallar.
	res = app.postForm("/toasts/"+id+"/dismiss", nil)
	if res.StatusCode != http.StatusNoContent {
		t.Fatalf("second dismiss: got status %d, want 204", res.StatusCode)
	}
}

func TestHealthEndpoint(t *testing.T) {
	app := newTestApp(t)

	res, body := app.get("/health")
	if res.StatusCode != http.StatusOK {
		t.Fatalf("health: got status %d", res.StatusCode)
	}
	if body != "ok" {
		t.Errorf("health body = %q", body)
	}
}
