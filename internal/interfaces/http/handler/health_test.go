package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studio-site-api/internal/config"
	"studio-site-api/internal/infrastructure/persistence/redis"
)

func newHealthEngine(h *HealthHandler) *gin.Engine {
	r := gin.New()
	r.GET("/health", h.Health)
	r.GET("/ready", h.Ready)
	r.GET("/live", h.Live)
	return r
}

func readyChecks(t *testing.T, rec *httptest.ResponseRecorder) readinessResponse {
	t.Helper()
	var body readinessResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealth_WithoutRedis(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Version: "1.2.3"}}
	r := newHealthEngine(NewHealthHandler(cfg, nil))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "1.2.3")

	rec = serve(r, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body := readyChecks(t, rec)
	assert.Equal(t, "disabled", body.Checks["redis"].Status)
	assert.Equal(t, "missing", body.Checks["llm"].Status)
}

func TestReady_RedisDown(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.Wrap(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	cfg := &config.Config{LLM: config.LLMConfig{Gemini: config.GeminiConfig{APIKey: "k"}}}
	r := newHealthEngine(NewHealthHandler(cfg, client))

	rec := serve(r, httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "configured", readyChecks(t, rec).Checks["llm"].Status)

	mr.Close()
	rec = serve(r, httptest.NewRequest(http.MethodGet, "/ready", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "error", readyChecks(t, rec).Checks["redis"].Status)
}
