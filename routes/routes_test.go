package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"regexp"
	"sync"
	"testing"
	"time"

	"cowork/database/repository/memstore"
	"cowork/handlers"
	"cowork/models"
	"cowork/services/auth"
	"cowork/services/favorite"
	"cowork/services/reservation"
	"cowork/services/space"
	"cowork/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var codePattern = regexp.MustCompile(`\b\d{6}\b`)

type mailbox struct {
	mu   sync.Mutex
	fail error
	last map[string]string
}

func (m *mailbox) Send(_ context.Context, to, _, body string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.last[to] = codePattern.FindString(body)
	return nil
}

func (m *mailbox) code(to string) string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last[to]
}

type testServer struct {
	router *gin.Engine
	store  *memstore.Store
	mail   *mailbox
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memstore.New()
	mail := &mailbox{last: map[string]string{}}

	authSvc, err := auth.NewDefaultAuthService(store.Users(), mail, auth.Options{
		OTPWindow:  10 * time.Minute,
		Secret:     []byte("routes-secret"),
		SessionTTL: time.Hour,
		CookieTTL:  time.Hour,
	})
	require.NoError(t, err)
	spaceSvc, err := space.NewDefaultSpaceService(store.Spaces(), store.Reservations(), store.Favorites())
	require.NoError(t, err)
	reservationSvc, err := reservation.NewDefaultReservationService(store.Reservations(), store.Spaces(), nil)
	require.NoError(t, err)
	favoriteSvc, err := favorite.NewDefaultFavoriteService(store.Favorites(), store.Spaces())
	require.NoError(t, err)

	router, err := SetupRouter(&handlers.HandlerBundle{
		AuthService:  authSvc,
		Auth:         handlers.NewAuthHandler(authSvc),
		Spaces:       handlers.NewSpaceHandler(spaceSvc),
		Reservations: handlers.NewReservationHandler(reservationSvc),
		Favorites:    handlers.NewFavoriteHandler(favoriteSvc),
	}, RouterOptions{MaxRequestsPerMin: 10000})
	require.NoError(t, err)

	return &testServer{router: router, store: store, mail: mail}
}

type call struct {
	method  string
	path    string
	body    any
	bearer  string
	cookies []*http.Cookie
}

func (s *testServer) do(t *testing.T, c call) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if c.body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(c.body))
	}
	req := httptest.NewRequest(c.method, c.path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}
	for _, ck := range c.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func findCookie(w *httptest.ResponseRecorder, name string) *http.Cookie {
	var found *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == name {
			found = c
		}
	}
	return found
}

func (s *testServer) register(t *testing.T, email string) {
	t.Helper()
	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/register", body: map[string]string{
		"name": "Ann", "telephone": "0812345678", "email": email, "password": "secret1",
	}})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

// login runs the password step and returns the pending cookie.
func (s *testServer) login(t *testing.T, email string) *http.Cookie {
	t.Helper()
	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": email, "password": "secret1",
	}})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pending := findCookie(w, utils.PendingLoginCookie)
	require.NotNil(t, pending)
	return pending
}

// signIn completes both stages and returns the session token.
func (s *testServer) signIn(t *testing.T, email string) string {
	t.Helper()
	pending := s.login(t, email)
	w := s.do(t, call{
		method:  http.MethodPost,
		path:    "/api/v1/auth/verify-otp",
		body:    map[string]string{"otp": s.mail.code(email)},
		cookies: []*http.Cookie{pending},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return decode(t, w)["token"].(string)
}

func (s *testServer) makeAdmin(t *testing.T, email string) {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, s.store.Users().Create(context.Background(), &models.User{
		Name: "Admin", Telephone: "1", Email: email, Role: models.RoleAdmin, PasswordHash: string(hash),
	}))
}

func TestAuthRoundTrip(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": "ann@example.com", "password": "secret1",
	}})
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, true, body["otpRequired"])
	assert.NotContains(t, body, "token")
	assert.Nil(t, findCookie(w, utils.SessionCookie))
	pending := findCookie(w, utils.PendingLoginCookie)
	require.NotNil(t, pending)
	assert.True(t, pending.HttpOnly)

	// The pending credential does not open protected routes.
	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/auth/me", bearer: pending.Value})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{
		method:  http.MethodPost,
		path:    "/api/v1/auth/verify-otp",
		body:    map[string]string{"otp": s.mail.code("ann@example.com")},
		cookies: []*http.Cookie{pending},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body = decode(t, w)
	token := body["token"].(string)
	assert.Equal(t, "Ann", body["name"])
	assert.Equal(t, "0812345678", body["telephone"])
	assert.NotEmpty(t, body["_id"])
	session := findCookie(w, utils.SessionCookie)
	require.NotNil(t, session)
	assert.Equal(t, token, session.Value)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/auth/me", bearer: token})
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "ann@example.com", data["email"])
	assert.Equal(t, "Ann", data["name"])
	assert.Equal(t, "0812345678", data["telephone"])
	assert.NotContains(t, data, "password")
	assert.NotContains(t, data, "loginOtpCode")

	// Replaying the same pending cookie and code fails.
	w = s.do(t, call{
		method:  http.MethodPost,
		path:    "/api/v1/auth/verify-otp",
		body:    map[string]string{"otp": s.mail.code("ann@example.com")},
		cookies: []*http.Cookie{pending},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/auth/logout"})
	require.Equal(t, http.StatusOK, w.Code)
	loggedOut := findCookie(w, utils.SessionCookie)
	require.NotNil(t, loggedOut)
	assert.Equal(t, utils.LoggedOutValue, loggedOut.Value)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/auth/me", cookies: []*http.Cookie{loggedOut}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLoginFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{"email": "ann@example.com"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{"email": "x@example.com", "password": "secret1"}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{"email": "ann@example.com", "password": "nope"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, false, decode(t, w)["success"])
}

func TestLoginNotifierFailure(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")
	s.mail.fail = errors.New("smtp down")

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/login", body: map[string]string{
		"email": "ann@example.com", "password": "secret1",
	}})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	if c := findCookie(w, utils.PendingLoginCookie); c != nil {
		assert.Empty(t, c.Value)
	}

	u, err := s.store.Users().GetByEmail(context.Background(), "ann@example.com")
	require.NoError(t, err)
	assert.False(t, u.HasLoginChallenge())
}

func TestVerifyOTPFailures(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/verify-otp", body: map[string]string{"otp": "123456"}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	pending := s.login(t, "ann@example.com")
	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/verify-otp", body: map[string]string{}, cookies: []*http.Cookie{pending}})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	cleared := findCookie(w, utils.PendingLoginCookie)
	require.NotNil(t, cleared)
	assert.Less(t, cleared.MaxAge, 0)

	code := s.mail.code("ann@example.com")
	wrong := "100000"
	if code == wrong {
		wrong = "100001"
	}
	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/verify-otp", body: map[string]string{"otp": wrong}, cookies: []*http.Cookie{pending}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/verify-otp", body: map[string]string{"otp": code}, cookies: []*http.Cookie{pending}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterValidation(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")

	for name, body := range map[string]map[string]string{
		"duplicate":   {"name": "Ann", "telephone": "1", "email": "ann@example.com", "password": "secret1"},
		"bad phone":   {"name": "Bob", "telephone": "12345678901", "email": "bob@example.com", "password": "secret1"},
		"bad email":   {"name": "Bob", "telephone": "1", "email": "bob", "password": "secret1"},
		"short pass":  {"name": "Bob", "telephone": "1", "email": "bob@example.com", "password": "123"},
		"missing all": {},
	} {
		w := s.do(t, call{method: http.MethodPost, path: "/api/v1/auth/register", body: body})
		assert.Equal(t, http.StatusBadRequest, w.Code, name)
		assert.Equal(t, false, decode(t, w)["success"], name)
	}
}

func TestSpacesAndReservations(t *testing.T) {
	s := newTestServer(t)
	s.makeAdmin(t, "admin@example.com")
	s.register(t, "ann@example.com")
	s.register(t, "bob@example.com")
	admin := s.signIn(t, "admin@example.com")
	ann := s.signIn(t, "ann@example.com")
	bob := s.signIn(t, "bob@example.com")

	spaceBody := map[string]string{"name": "Hub", "address": "1 Main St", "tel": "021234567", "openTime": "08:00", "closeTime": "20:00"}

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/coworking-spaces", body: spaceBody, bearer: ann})
	assert.Equal(t, http.StatusForbidden, w.Code)

	bad := map[string]string{"name": "Bad", "address": "x", "tel": "1", "openTime": "8am", "closeTime": "20:00"}
	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/coworking-spaces", body: bad, bearer: admin})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/coworking-spaces", body: spaceBody, bearer: admin})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	spaceID := decode(t, w)["data"].(map[string]any)["_id"].(string)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/coworking-spaces?select=name&sort=-name&limit=5"})
	require.Equal(t, http.StatusOK, w.Code)
	listing := decode(t, w)
	assert.EqualValues(t, 1, listing["count"])

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/coworking-spaces?password=x"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/coworking-spaces?page=9223372036854775807"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	reserve := func(token string, day int) *httptest.ResponseRecorder {
		date := time.Date(2030, 1, day, 9, 0, 0, 0, time.UTC)
		return s.do(t, call{
			method: http.MethodPost,
			path:   "/api/v1/coworking-spaces/" + spaceID + "/reservations",
			body:   map[string]any{"reservationDate": date},
			bearer: token,
		})
	}

	var annReservation string
	for day := 1; day <= 3; day++ {
		w = reserve(ann, day)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		annReservation = decode(t, w)["data"].(map[string]any)["_id"].(string)
	}
	w = reserve(ann, 4)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/reservations", bearer: ann})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 3, decode(t, w)["count"])

	for day := 1; day <= 4; day++ {
		w = reserve(admin, day)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w = s.do(t, call{method: http.MethodPut, path: "/api/v1/reservations/" + annReservation,
		body: map[string]any{"reservationDate": time.Date(2031, 1, 1, 0, 0, 0, 0, time.UTC)}, bearer: bob})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	w = s.do(t, call{method: http.MethodDelete, path: "/api/v1/reservations/" + annReservation, bearer: bob})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/reservations/" + annReservation, bearer: ann})
	require.Equal(t, http.StatusOK, w.Code)
	view := decode(t, w)["data"].(map[string]any)
	assert.Equal(t, "Hub", view["coworkingSpace"].(map[string]any)["name"])

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/coworking-spaces/" + spaceID + "/reservations", bearer: admin})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 7, decode(t, w)["count"])

	w = s.do(t, call{method: http.MethodDelete, path: "/api/v1/coworking-spaces/" + spaceID, bearer: admin})
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/reservations", bearer: ann})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, decode(t, w)["count"])
}

func TestFavoritesRoutes(t *testing.T) {
	s := newTestServer(t)
	s.register(t, "ann@example.com")
	ann := s.signIn(t, "ann@example.com")

	sp := &models.CoworkingSpace{Name: "Hub", Address: "1 Main St"}
	require.NoError(t, s.store.Spaces().Create(context.Background(), sp))

	w := s.do(t, call{method: http.MethodPost, path: "/api/v1/favorites", body: map[string]string{"coworkingSpaceId": sp.ID}, bearer: ann})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/favorites", body: map[string]string{"coworkingSpaceId": sp.ID}, bearer: ann})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	w = s.do(t, call{method: http.MethodPost, path: "/api/v1/favorites", body: map[string]string{"coworkingSpaceId": "missing"}, bearer: ann})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, call{method: http.MethodGet, path: "/api/v1/favorites", bearer: ann})
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, decode(t, w)["count"])

	w = s.do(t, call{method: http.MethodDelete, path: "/api/v1/favorites/" + sp.ID, bearer: ann})
	assert.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, call{method: http.MethodDelete, path: "/api/v1/favorites/" + sp.ID, bearer: ann})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealthRoute(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, call{method: http.MethodGet, path: "/health"})
	assert.Equal(t, http.StatusOK, w.Code)
}
