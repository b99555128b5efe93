package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialfeed/internal/config"
	handlers "socialfeed/internal/handler"
	"socialfeed/internal/identity"
	"socialfeed/internal/metrics"
	"socialfeed/internal/repository"
	"socialfeed/internal/service"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.JWTSecretKey = "test-secret"
	return cfg
}

// echoPrincipal writes the caller principal found in the context.
var echoPrincipal = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Write([]byte(identity.FromContext(r.Context())))
})

func TestAuthMiddleware(t *testing.T) {
	auth := service.NewAuthService(testConfig())
	token, err := auth.IssueToken("alice-aaaaa")
	require.NoError(t, err)

	foreign, err := service.NewAuthService(&config.Config{JWTSecretKey: "other", TokenDuration: config.Default().TokenDuration}).
		IssueToken("alice-aaaaa")
	require.NoError(t, err)

	tests := []struct {
		name           string
		header         string
		expectedStatus int
		expectedBody   string
	}{
		{name: "Без заголовка", header: "", expectedStatus: http.StatusOK, expectedBody: identity.Anonymous.String()},
		{name: "Валидный токен", header: "Bearer " + token, expectedStatus: http.StatusOK, expectedBody: "alice-aaaaa"},
		{name: "Неверный формат", header: "Token " + token, expectedStatus: http.StatusUnauthorized},
		{name: "Чужая подпись", header: "Bearer " + foreign, expectedStatus: http.StatusUnauthorized},
		{name: "Мусор", header: "Bearer abc", expectedStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			AuthMiddleware(auth)(echoPrincipal).ServeHTTP(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if tt.expectedStatus == http.StatusOK {
				assert.Equal(t, tt.expectedBody, rr.Body.String())
			} else {
				assert.Contains(t, rr.Body.String(), "error")
			}
		})
	}
}

func TestCORSMiddleware(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	rr := httptest.NewRecorder()
	CORSMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodOptions, "/api/posts", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)

	rr = httptest.NewRecorder()
	CORSMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/posts", nil))
	assert.True(t, called)
}

func TestLoggingMiddleware_KeepsStatus(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	LoggingMiddleware(next).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rr.Code)
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	recorder := metrics.NewRecorder()
	router := mux.NewRouter()
	router.HandleFunc("/api/posts/{id}", func(w http.ResponseWriter, r *http.Request) {}).Methods(http.MethodDelete)
	router.Use(MetricsMiddleware(recorder))

	for _, id := range []string{"1", "2", "3"} {
		router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodDelete, "/api/posts/"+id, nil))
	}

	snapshot := recorder.Snapshot()
	require.Contains(t, snapshot, "DELETE /api/posts/{id}")
	assert.Equal(t, int64(3), snapshot["DELETE /api/posts/{id}"].Count)
}

func TestChain_Order(t *testing.T) {
	var order []string
	mark := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}), mark("inner"), mark("outer"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"outer", "inner"}, order)
}

// TestAPI runs the whole stack on the in-memory store.
func TestAPI(t *testing.T) {
	cfg := testConfig()
	services := service.NewService(repository.NewMemoryRepository(), cfg, nil)
	recorder := metrics.NewRecorder()

	router := handlers.NewHandlers(services, cfg, recorder).Router()
	router.Use(MetricsMiddleware(recorder))
	api := Chain(router, AuthMiddleware(services.Auth), CORSMiddleware, LoggingMiddleware)

	tokens := map[string]string{}
	for _, p := range []identity.Principal{"alice-aaaaa", "bob-bbbbb"} {
		token, err := services.Auth.IssueToken(p)
		require.NoError(t, err)
		tokens[p.String()] = token
	}

	call := func(method, path, body, user string) (*httptest.ResponseRecorder, map[string]interface{}) {
		var req *http.Request
		if body == "" {
			req = httptest.NewRequest(method, path, nil)
		} else {
			req = httptest.NewRequest(method, path, strings.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
		}
		if user != "" {
			req.Header.Set("Authorization", "Bearer "+tokens[user])
		}
		rr := httptest.NewRecorder()
		api.ServeHTTP(rr, req)

		var response map[string]interface{}
		json.Unmarshal(rr.Body.Bytes(), &response)
		return rr, response
	}

	rr, _ := call(http.MethodGet, "/api/posts", "", "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = call(http.MethodPost, "/api/posts", `{"content":"hello","contentType":"text"}`, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, post := call(http.MethodPost, "/api/posts", `{"content":"hello","contentType":"text"}`, "alice-aaaaa")
	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, float64(0), post["id"])
	assert.Equal(t, "alice-aaaaa", post["author"])

	rr, _ = call(http.MethodPost, "/api/posts/0/comments", `{"content":"nice"}`, "bob-bbbbb")
	require.Equal(t, http.StatusCreated, rr.Code)

	rr, _ = call(http.MethodDelete, "/api/posts/0", "", "bob-bbbbb")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = call(http.MethodDelete, "/api/posts/0", "", "alice-aaaaa")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr, comments := call(http.MethodGet, "/api/posts/0/comments", "", "bob-bbbbb")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Len(t, comments["comments"], 1)

	rr, _ = call(http.MethodPost, "/api/posts/0/comments", `{"content":"late"}`, "bob-bbbbb")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, profile := call(http.MethodGet, "/api/me/profile", "", "bob-bbbbb")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Nil(t, profile["profile"])

	rr, _ = call(http.MethodPost, "/api/admins", `{"principal":"bob-bbbbb"}`, "bob-bbbbb")
	assert.Equal(t, http.StatusOK, rr.Code)
	rr, _ = call(http.MethodPost, "/api/admins", `{"principal":"alice-aaaaa"}`, "alice-aaaaa")
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr, _ = call(http.MethodPost, "/api/posts/media", "", "alice-aaaaa")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr, stats := call(http.MethodGet, "/stats", "", "")
	require.Equal(t, http.StatusOK, rr.Code)
	store := stats["store"].(map[string]interface{})
	assert.Equal(t, float64(0), store["posts"])
	assert.Equal(t, float64(1), store["comments"])
	assert.Equal(t, float64(1), store["admins"])
	assert.Contains(t, stats["latency"], "POST /api/posts")
}
