package routes

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Dosada05/swiss-tournament/brackets"
	"github.com/Dosada05/swiss-tournament/handlers"
	"github.com/Dosada05/swiss-tournament/models"
	"github.com/Dosada05/swiss-tournament/services"
	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v4"
)

const testSecret = "routes-secret"

type stubService struct{}

func (stubService) RegisterPlayer(ctx context.Context, name string) (*models.Player, error) {
	return &models.Player{ID: 1, Name: name}, nil
}

func (stubService) ListPlayers(ctx context.Context) ([]models.Player, error) { return nil, nil }

func (stubService) CountPlayers(ctx context.Context) (int, error) { return 0, nil }

func (stubService) DeletePlayers(ctx context.Context) error { return nil }

func (stubService) ReportMatch(ctx context.Context, in services.ReportMatchInput) (*models.MatchResult, error) {
	return &models.MatchResult{ID: 1, WinnerID: in.WinnerID, LoserID: in.LoserID}, nil
}

func (stubService) DeleteMatches(ctx context.Context) error { return nil }

func (stubService) Standings(ctx context.Context, key brackets.RankingKey) ([]models.Standing, error) {
	return nil, nil
}

func (stubService) PreviewPairings(ctx context.Context, round int) (*models.RoundPairings, error) {
	return &models.RoundPairings{Round: round}, nil
}

func (stubService) StartRound(ctx context.Context, round int) (*models.RoundPairings, error) {
	return &models.RoundPairings{Round: round}, nil
}

type stubAuth struct{}

func (stubAuth) Login(ctx context.Context, in services.LoginInput) (*services.Principal, error) {
	return &services.Principal{Subject: "organizer", Role: models.RoleOrganizer}, nil
}

func newRouter() http.Handler {
	svc := stubService{}
	router := chi.NewRouter()
	SetupRoutes(router, Handlers{
		Auth:      handlers.NewAuthHandler(stubAuth{}, testSecret),
		Players:   handlers.NewPlayerHandler(svc),
		Matches:   handlers.NewMatchHandler(svc),
		Rounds:    handlers.NewRoundHandler(svc),
		WebSocket: handlers.NewWebSocketHandler(brackets.NewHub(), nil),
	}, Options{JWTSecret: testSecret, AllowedOrigins: []string{"https://dash.example"}})
	return router
}

func organizerToken(t *testing.T) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "organizer",
		"role": "organizer",
		"exp":  time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("SignedString: %v", err)
	}
	return s
}

func TestRouteAccess(t *testing.T) {
	router := newRouter()
	token := organizerToken(t)

	tests := []struct {
		method string
		path   string
		body   string
		auth   bool
		want   int
	}{
		{http.MethodGet, "/healthz", "", false, http.StatusOK},
		{http.MethodGet, "/players", "", false, http.StatusOK},
		{http.MethodGet, "/players/count", "", false, http.StatusOK},
		{http.MethodGet, "/standings", "", false, http.StatusOK},
		{http.MethodGet, "/rounds/1/pairings", "", false, http.StatusOK},
		{http.MethodPost, "/players", `{"name":"A"}`, false, http.StatusUnauthorized},
		{http.MethodPost, "/players", `{"name":"A"}`, true, http.StatusCreated},
		{http.MethodDelete, "/players", "", false, http.StatusUnauthorized},
		{http.MethodDelete, "/players", "", true, http.StatusNoContent},
		{http.MethodPost, "/matches", `{"winner_id":1,"loser_id":2}`, false, http.StatusUnauthorized},
		{http.MethodPost, "/matches", `{"winner_id":1,"loser_id":2}`, true, http.StatusCreated},
		{http.MethodDelete, "/matches", "", true, http.StatusNoContent},
		{http.MethodPost, "/rounds/1/pairings", "", false, http.StatusUnauthorized},
		{http.MethodPost, "/rounds/1/pairings", "", true, http.StatusCreated},
		{http.MethodPost, "/auth/login", `{"password":"x"}`, false, http.StatusOK},
	}
	for _, tt := range tests {
		name := tt.method + " " + tt.path
		if tt.auth {
			name += " as organizer"
		}
		t.Run(name, func(t *testing.T) {
			var req *http.Request
			if tt.body != "" {
				req = httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			} else {
				req = httptest.NewRequest(tt.method, tt.path, nil)
			}
			if tt.auth {
				req.Header.Set("Authorization", "Bearer "+token)
			}
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body.String())
			}
		})
	}
}

func TestSwaggerDocument(t *testing.T) {
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var doc struct {
		Info  map[string]interface{} `json:"info"`
		Paths map[string]interface{} `json:"paths"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("doc.json is not JSON: %v", err)
	}
	if doc.Info["title"] != "Swiss Tournament API" {
		t.Errorf("title = %v", doc.Info["title"])
	}
	for _, p := range []string{"/players", "/matches", "/standings", "/rounds/{round}/pairings", "/auth/login"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("path %s missing from document", p)
		}
	}
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/players", nil)
	req.Header.Set("Origin", "https://dash.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	newRouter().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://dash.example" {
		t.Errorf("Allow-Origin = %q", got)
	}
}
