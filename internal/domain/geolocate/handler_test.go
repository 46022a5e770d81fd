package geolocate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rescue-revolution/internal/domain/session"
	"rescue-revolution/internal/domain/toasts"
	"rescue-revolution/internal/platform/logger"
	"rescue-revolution/internal/ports/geo"
)

type stubResolver struct {
	place geo.Place
	err   error
}

func (s stubResolver) Reverse(_ context.Context, _, _ float64) (geo.Place, error) {
	return s.place, s.err
}

func newTestDeps(resolver geo.Resolver) (Deps, *toasts.Manager) {
	mgr := toasts.NewManager(time.Minute)
	return Deps{
		Sessions: session.NewStore([]byte("test-secret")),
		Toasts:   mgr,
		Resolver: resolver,
		Log:      logger.New(logger.Options{Level: logger.Error}),
	}, mgr
}

func doReverse(t *testing.T, d Deps, body string) (*httptest.ResponseRecorder, string) {
	t.Helper()

	r := chi.NewRouter()
	RegisterRoutes(r, d)

	req := httptest.NewRequest(http.MethodPost, "/geo/reverse", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	// Recupera el sid de la cookie emitida para poder inspeccionar la
	// cola de toasts de esa sesión.
	sidReq := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		sidReq.AddCookie(c)
	}
	sid := d.Sessions.SID(httptest.NewRecorder(), sidReq)
	return rec, sid
}

func TestReverseReturnsAddress(t *testing.T) {
	d, mgr := newTestDeps(stubResolver{place: geo.Place{
		Locality: "Palermo",
		City:     "Buenos Aires",
		Postcode: "C1414",
	}})

	rec, sid := doReverse(t, d, `{"latitude":-34.58,"longitude":-58.42}`)

	require.Equal(t, http.StatusOK, rec.Code)
	var out map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, "Palermo, Buenos Aires, C1414", out["address"])
	assert.Empty(t, mgr.For(sid).Active())
}

func TestReverseClassifiesDeviceErrors(t *testing.T) {
	cases := []struct {
		code int
		want string
	}{
		{1, "Location access was denied. Please allow location access and try again."},
		{2, "Your current position is unavailable."},
		{3, "Timed out while getting your location."},
		{99, "Could not determine your location."},
	}

	for _, tc := range cases {
		d, mgr := newTestDeps(stubResolver{})

		rec, sid := doReverse(t, d, `{"error_code":`+jsonInt(tc.code)+`}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		var out map[string]string
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
		assert.Equal(t, tc.want, out["error"])

		active := mgr.For(sid).Active()
		require.Len(t, active, 1)
		assert.Equal(t, tc.want, active[0].Message)
		assert.Equal(t, toasts.SeverityError, active[0].Severity)
	}
}

func TestReverseRequiresCoordinates(t *testing.T) {
	d, mgr := newTestDeps(stubResolver{})

	rec, sid := doReverse(t, d, `{"latitude":-34.58}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, mgr.For(sid).Active())
}

func TestReverseUpstreamFailure(t *testing.T) {
	d, mgr := newTestDeps(stubResolver{err: errors.New("boom")})

	rec, sid := doReverse(t, d, `{"latitude":-34.58,"longitude":-58.42}`)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	active := mgr.For(sid).Active()
	require.Len(t, active, 1)
	assert.Equal(t, "Could not look up your address", active[0].Message)
}

func jsonInt(n int) string {
	b, _ := json.Marshal(n)
	return string(b)
}
