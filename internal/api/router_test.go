package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"github.com/yol1/scoring-system/internal/api"
	"github.com/yol1/scoring-system/internal/core/domain"
	"github.com/yol1/scoring-system/internal/core/service"
	"github.com/yol1/scoring-system/internal/infrastructure/db/sqlstore"
	"github.com/yol1/scoring-system/internal/infrastructure/http/handlers"
	"github.com/yol1/scoring-system/internal/pkg/token"
)

var testUser = domain.User{ID: "u-0", ExternalID: "someone", Role: domain.RoleUser}

type RouterSuite struct {
	suite.Suite
	store *sqlstore.Store
	e     *echo.Echo
}

func TestRouterSuite(t *testing.T) {
	suite.Run(t, new(RouterSuite))
}

func (s *RouterSuite) SetupTest() {
	s.e = s.newRouter(true)
}

func (s *RouterSuite) TearDownTest() {
	s.Require().NoError(s.store.Close(context.Background()))
}

func (s *RouterSuite) newRouter(seed bool) *echo.Echo {
	store, err := sqlstore.Open(context.Background(), sqlstore.Config{Driver: "sqlite", DSN: ":memory:"}, zerolog.Nop())
	s.Require().NoError(err)
	s.store = store

	tokens := token.NewManager("router-test-secret", time.Hour)
	registry := prometheus.NewRegistry()

	return api.NewRouter(api.Deps{
		AuthService:  service.NewAuthService(store.Users(), tokens, bcrypt.MinCost, zerolog.Nop()),
		ScoreService: service.NewScoreService(store.Scores(), nil, zerolog.Nop()),
		Tokens:       tokens,
		Logger:       zerolog.Nop(),
		SeedEnabled:  seed,
		HealthChecks: map[string]handlers.Checker{"store": store.Ping},
		Registerer:   registry,
		Gatherer:     registry,
	})
}

func (s *RouterSuite) do(method, path string, body any, bearer string) (int, []byte) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	s.e.ServeHTTP(rec, req)
	return rec.Code, rec.Body.Bytes()
}

func (s *RouterSuite) decode(raw []byte) map[string]any {
	var out map[string]any
	s.Require().NoError(json.Unmarshal(raw, &out), string(raw))
	return out
}

func (s *RouterSuite) registerAndLogin(externalID, role string) string {
	code, _ := s.do(http.MethodPost, "/api/register", map[string]string{
		"externalId": externalID, "password": "pass123", "role": role,
	}, "")
	s.Require().Equal(http.StatusCreated, code)

	code, raw := s.do(http.MethodPost, "/api/login", map[string]string{
		"externalId": externalID, "password": "pass123",
	}, "")
	s.Require().Equal(http.StatusOK, code)
	tok, _ := s.decode(raw)["token"].(string)
	s.Require().NotEmpty(tok)
	return tok
}

func (s *RouterSuite) TestRegister() {
	code, raw := s.do(http.MethodPost, "/api/register", map[string]string{
		"externalId": "12345678-9", "password": "pass123",
	}, "")
	s.Equal(http.StatusCreated, code)
	body := s.decode(raw)
	s.Equal("User registered successfully", body["message"])
	s.NotEmpty(body["userId"])
}

func (s *RouterSuite) TestRegister_Duplicate() {
	payload := map[string]string{"externalId": "dup", "password": "pass123"}
	code, _ := s.do(http.MethodPost, "/api/register", payload, "")
	s.Require().Equal(http.StatusCreated, code)

	code, raw := s.do(http.MethodPost, "/api/register", payload, "")
	s.Equal(http.StatusConflict, code)
	s.Equal("External ID already exists", s.decode(raw)["message"])
}

func (s *RouterSuite) TestRegister_MissingFields() {
	code, raw := s.do(http.MethodPost, "/api/register", map[string]string{"externalId": "x"}, "")
	s.Equal(http.StatusBadRequest, code)
	s.Equal("External ID and password are required", s.decode(raw)["message"])
}

func (s *RouterSuite) TestLogin_FailuresAreIndistinguishable() {
	s.registerAndLogin("dave", "")

	wrongCode, wrongRaw := s.do(http.MethodPost, "/api/login", map[string]string{
		"externalId": "dave", "password": "nope",
	}, "")
	ghostCode, ghostRaw := s.do(http.MethodPost, "/api/login", map[string]string{
		"externalId": "ghost", "password": "pass123",
	}, "")

	s.Equal(http.StatusUnauthorized, wrongCode)
	s.Equal(http.StatusUnauthorized, ghostCode)
	s.Equal(string(wrongRaw), string(ghostRaw))
}

func (s *RouterSuite) TestScore_GeneratedThenStable() {
	tok := s.registerAndLogin("alice", "user")

	code, raw := s.do(http.MethodGet, "/api/score?code=ABC123", nil, tok)
	s.Require().Equal(http.StatusCreated, code)
	first := s.decode(raw)
	s.Equal(float64(service.DeterministicScore("ABC123")), first["score"])
	s.Equal("Score generated and created successfully!", first["message"])

	code, raw = s.do(http.MethodGet, "/api/score?code=ABC123", nil, tok)
	s.Require().Equal(http.StatusOK, code)
	second := s.decode(raw)
	s.Equal(first["score"], second["score"])
	s.NotContains(second, "message")
}

func (s *RouterSuite) TestScore_SeededValueWins() {
	code, raw := s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "ABC123", "value": 100}, "")
	s.Require().Equal(http.StatusCreated, code, string(raw))

	code, raw = s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "ABC123", "value": 1}, "")
	s.Equal(http.StatusConflict, code)
	s.Equal("Code already exists.", s.decode(raw)["message"])

	tok := s.registerAndLogin("bob", "user")
	code, raw = s.do(http.MethodGet, "/api/score?code=ABC123", nil, tok)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(float64(100), s.decode(raw)["score"])
}

func (s *RouterSuite) TestScore_CodesAreNotNormalised() {
	code, raw := s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "ABC123", "value": 100}, "")
	s.Require().Equal(http.StatusCreated, code, string(raw))

	tok := s.registerAndLogin("carol", "user")

	for _, c := range []string{" ABC123", "ABC123 ", "abc123"} {
		code, raw = s.do(http.MethodGet, "/api/score?code="+url.QueryEscape(c), nil, tok)
		s.Require().Equal(http.StatusCreated, code, "code %q", c)
		s.Equal(float64(service.DeterministicScore(c)), s.decode(raw)["score"], "code %q", c)
	}

	code, raw = s.do(http.MethodGet, "/api/score?code=ABC123", nil, tok)
	s.Require().Equal(http.StatusOK, code)
	s.Equal(float64(100), s.decode(raw)["score"])
}

func (s *RouterSuite) TestScore_WhitespaceCodeIsScored() {
	tok := s.registerAndLogin("carol", "user")

	code, raw := s.do(http.MethodGet, "/api/score?code=%20", nil, tok)
	s.Require().Equal(http.StatusCreated, code, string(raw))
	s.Equal(float64(service.DeterministicScore(" ")), s.decode(raw)["score"])

	code, _ = s.do(http.MethodGet, "/api/score?code=%20", nil, tok)
	s.Equal(http.StatusOK, code)
}

func (s *RouterSuite) TestScore_LongCode() {
	tok := s.registerAndLogin("carol", "user")
	long := strings.Repeat("x", 1500)

	code, raw := s.do(http.MethodGet, "/api/score?code="+long, nil, tok)
	s.Require().Equal(http.StatusCreated, code, string(raw))
	s.Equal(float64(service.DeterministicScore(long)), s.decode(raw)["score"])

	code, _ = s.do(http.MethodGet, "/api/score?code="+long[:255], nil, tok)
	s.Equal(http.StatusCreated, code)

	code, _ = s.do(http.MethodGet, "/api/score?code="+long, nil, tok)
	s.Equal(http.StatusOK, code)
}

func (s *RouterSuite) TestScore_AdminListsAllUserNeedsCode() {
	admin := s.registerAndLogin("root", "admin")
	user := s.registerAndLogin("alice", "user")

	for _, c := range []string{"b", "a"} {
		code, _ := s.do(http.MethodGet, "/api/score?code="+c, nil, user)
		s.Require().Equal(http.StatusCreated, code)
	}

	code, raw := s.do(http.MethodGet, "/api/score", nil, admin)
	s.Require().Equal(http.StatusOK, code)
	var list []map[string]any
	s.Require().NoError(json.Unmarshal(raw, &list))
	s.Require().Len(list, 2)
	s.Equal("a", list[0]["code"])
	s.Equal("b", list[1]["code"])

	code, raw = s.do(http.MethodGet, "/api/score", nil, user)
	s.Equal(http.StatusBadRequest, code)
	s.Equal("Code is required to retrieve a specific score.", s.decode(raw)["message"])
}

func (s *RouterSuite) TestScore_TokenChecks() {
	code, raw := s.do(http.MethodGet, "/api/score?code=x", nil, "")
	s.Equal(http.StatusUnauthorized, code)
	s.Equal("Authentication token required", s.decode(raw)["message"])

	code, raw = s.do(http.MethodGet, "/api/score?code=x", nil, "garbage")
	s.Equal(http.StatusForbidden, code)
	s.Equal("Invalid or expired token", s.decode(raw)["message"])

	expired, err := token.NewManager("router-test-secret", time.Hour, token.WithClock(func() time.Time {
		return time.Now().Add(-2 * time.Hour)
	})).Issue(&testUser)
	s.Require().NoError(err)
	code, _ = s.do(http.MethodGet, "/api/score?code=x", nil, expired)
	s.Equal(http.StatusForbidden, code)
}

func (s *RouterSuite) TestAdminData() {
	user := s.registerAndLogin("alice", "user")
	admin := s.registerAndLogin("root", "admin")

	code, raw := s.do(http.MethodGet, "/api/admin/data", nil, user)
	s.Equal(http.StatusForbidden, code)
	s.Equal("Access denied: You need one of these roles: admin", s.decode(raw)["message"])

	code, raw = s.do(http.MethodGet, "/api/admin/data", nil, admin)
	s.Require().Equal(http.StatusOK, code)
	body := s.decode(raw)
	s.Equal("This is sensitive admin data!", body["message"])
	claims, ok := body["claims"].(map[string]any)
	s.Require().True(ok)
	s.Equal("root", claims["externalId"])
	s.Equal("admin", claims["role"])
}

func (s *RouterSuite) TestSeed_Invalid() {
	code, _ := s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "x", "value": "high"}, "")
	s.Equal(http.StatusBadRequest, code)

	code, raw := s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "x", "value": 150}, "")
	s.Equal(http.StatusBadRequest, code)
	s.Equal("value must be at most 100", s.decode(raw)["message"])
}

func (s *RouterSuite) TestSeed_DisabledRouteIsNotMounted() {
	s.Require().NoError(s.store.Close(context.Background()))
	s.e = s.newRouter(false)

	code, raw := s.do(http.MethodPost, "/api/scores_seed", map[string]any{"code": "x", "value": 1}, "")
	s.Equal(http.StatusNotFound, code)
	s.Equal("Not Found", s.decode(raw)["message"])
}

func (s *RouterSuite) TestUnknownRoute() {
	code, raw := s.do(http.MethodGet, "/nope", nil, "")
	s.Equal(http.StatusNotFound, code)
	s.Equal("Not Found", s.decode(raw)["message"])
}

func (s *RouterSuite) TestHealth() {
	code, _ := s.do(http.MethodGet, "/health", nil, "")
	s.Equal(http.StatusOK, code)

	code, raw := s.do(http.MethodGet, "/health/ready", nil, "")
	s.Equal(http.StatusOK, code)
	s.Equal("ok", s.decode(raw)["status"])
}

func (s *RouterSuite) TestMetricsExposed() {
	s.do(http.MethodGet, "/health", nil, "")

	code, raw := s.do(http.MethodGet, "/metrics", nil, "")
	s.Equal(http.StatusOK, code)
	s.Contains(string(raw), "requests_total")
}
