package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fanfic/internal/auth"
	"fanfic/internal/domain/models"
	"fanfic/internal/handler"
	"fanfic/internal/repository"
	"fanfic/internal/repository/sqlite"
	sqliteFanfic "fanfic/internal/repository/sqlite/fanfic"
	serviceAuth "fanfic/internal/service/auth"
	serviceFanfic "fanfic/internal/service/fanfic"
)

const testUserHeader = "X-Test-User"

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Code    string          `json:"code"`
	Detail  string          `json:"detail"`
}

type testServer struct {
	t       *testing.T
	handler http.Handler
}

// newTestServer runs the real services over an in-memory SQLite store.
// Callers identify themselves with testUserHeader instead of a JWT.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	db, err := sqlite.OpenMemory("handler-" + uuid.NewString())
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	tables := repository.NewTableNames("test_")
	require.NoError(t, sqlite.EnsureSchema(context.Background(), db, tables))

	cfg := &sqlite.RepositoryConfig{DB: db, Tables: tables}
	fandomRepo := sqliteFanfic.NewFandomRepository(cfg)
	storyRepo := sqliteFanfic.NewStoryRepository(cfg)
	chapterRepo := sqliteFanfic.NewChapterRepository(cfg)
	authorizer := serviceAuth.NewOwnerBasedAuthorizer(fandomRepo, storyRepo, chapterRepo)

	handlers := &handler.Handlers{
		Health:   handler.NewHealthHandler(db.PingContext, logger),
		Fandoms:  handler.NewFandomHandler(serviceFanfic.NewFandomService(fandomRepo, authorizer, logger), logger),
		Stories:  handler.NewStoryHandler(serviceFanfic.NewStoryService(storyRepo, authorizer, logger), logger),
		Chapters: handler.NewChapterHandler(serviceFanfic.NewChapterService(chapterRepo, authorizer, logger), logger),
	}
	mux := http.NewServeMux()
	handlers.Register(mux)

	withUser := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if userID := r.Header.Get(testUserHeader); userID != "" {
			r = r.WithContext(auth.WithIdentity(r.Context(), models.Identity{UserID: userID}))
		}
		mux.ServeHTTP(w, r)
	})

	return &testServer{t: t, handler: withUser}
}

func (s *testServer) do(method, path, userID, body string) (*httptest.ResponseRecorder, envelope) {
	s.t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if userID != "" {
		req.Header.Set(testUserHeader, userID)
	}

	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	return rec, env
}

func decodeField(t *testing.T, data json.RawMessage, field string) map[string]interface{} {
	t.Helper()
	var wrapper map[string]map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &wrapper))
	entity, ok := wrapper[field]
	require.True(t, ok, "missing %q in %s", field, string(data))
	return entity
}

type listBody struct {
	Items []map[string]interface{} `json:"items"`
	Total int                      `json:"total"`
}

func decodeList(t *testing.T, data json.RawMessage) listBody {
	t.Helper()
	var list listBody
	require.NoError(t, json.Unmarshal(data, &list))
	return list
}

func TestRoutes_RequireIdentity(t *testing.T) {
	srv := newTestServer(t)

	routes := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/fandoms"},
		{http.MethodPost, "/api/fandoms"},
		{http.MethodPatch, "/api/fandoms/f1"},
		{http.MethodGet, "/api/stories"},
		{http.MethodPost, "/api/stories"},
		{http.MethodPatch, "/api/stories/s1"},
		{http.MethodGet, "/api/stories/s1/chapters"},
		{http.MethodPost, "/api/stories/s1/chapters"},
		{http.MethodPatch, "/api/stories/s1/chapters/c1"},
		{http.MethodDelete, "/api/stories/s1/chapters/c1"},
	}

	for _, tt := range routes {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			rec, env := srv.do(tt.method, tt.path, "", `{}`)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "UNAUTHORIZED", env.Code)
			assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
		})
	}
}

func TestFandomRoutes(t *testing.T) {
	srv := newTestServer(t)

	rec, env := srv.do(http.MethodPost, "/api/fandoms", "alice", `{"name":"  Discworld ","canonType":"books","isSystem":true,"userId":"mallory"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.True(t, env.Success)
	fandom := decodeField(t, env.Data, "fandom")
	assert.Equal(t, "Discworld", fandom["name"])
	assert.Equal(t, "alice", fandom["userId"])
	assert.Equal(t, false, fandom["isSystem"])
	id := fandom["id"].(string)

	rec, env = srv.do(http.MethodGet, "/api/fandoms", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, env.Data)
	assert.Equal(t, 1, list.Total)

	rec, env = srv.do(http.MethodGet, "/api/fandoms", "bob", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 0, decodeList(t, env.Data).Total)

	rec, env = srv.do(http.MethodPatch, "/api/fandoms/"+id, "alice", `{"description":"Turtles","canonType":null}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	fandom = decodeField(t, env.Data, "fandom")
	assert.Equal(t, "Turtles", fandom["description"])
	assert.Nil(t, fandom["canonType"])
	assert.Equal(t, "Discworld", fandom["name"])

	rec, env = srv.do(http.MethodPatch, "/api/fandoms/"+id, "bob", `{"name":"Mine"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	rec, env = srv.do(http.MethodPatch, "/api/fandoms/"+id, "alice", `{"name":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)

	rec, env = srv.do(http.MethodPatch, "/api/fandoms/"+id, "alice", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "BAD_REQUEST", env.Code)

	rec, env = srv.do(http.MethodPatch, "/api/fandoms/missing", "alice", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestCreateFandom_Invalid(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		name string
		body string
	}{
		{"malformed JSON", `{"name":`},
		{"wrong type", `{"name":42}`},
		{"blank name", `{"name":"   "}`},
		{"missing name", `{"canonType":"books"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := srv.do(http.MethodPost, "/api/fandoms", "alice", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.False(t, env.Success)
			assert.Equal(t, "BAD_REQUEST", env.Code)
		})
	}
}

func TestStoryRoutes(t *testing.T) {
	srv := newTestServer(t)

	_, env := srv.do(http.MethodPost, "/api/fandoms", "bob", `{"name":"Bob's fandom"}`)
	bobFandom := decodeField(t, env.Data, "fandom")["id"].(string)
	_, env = srv.do(http.MethodPost, "/api/fandoms", "alice", `{"name":"Alice's fandom"}`)
	aliceFandom := decodeField(t, env.Data, "fandom")["id"].(string)

	rec, env := srv.do(http.MethodPost, "/api/stories", "alice", `{"title":"Stolen","fandomId":"`+bobFandom+`"}`)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "FORBIDDEN", env.Code)

	rec, env = srv.do(http.MethodPost, "/api/stories", "alice", `{"title":"Mine","fandomId":"`+aliceFandom+`","rating":"T"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	story := decodeField(t, env.Data, "story")
	assert.Equal(t, aliceFandom, story["fandomId"])
	assert.Equal(t, "T", story["rating"])
	storyID := story["id"].(string)

	rec, env = srv.do(http.MethodPatch, "/api/stories/"+storyID, "alice", `{"fandomId":null,"summary":"short"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	story = decodeField(t, env.Data, "story")
	assert.Nil(t, story["fandomId"])
	assert.Equal(t, "short", story["summary"])
	assert.Equal(t, "T", story["rating"])

	rec, env = srv.do(http.MethodPatch, "/api/stories/"+storyID, "alice", `{"title":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, env = srv.do(http.MethodPatch, "/api/stories/"+storyID, "bob", `{"title":"Hijacked"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)

	rec, env = srv.do(http.MethodGet, "/api/stories", "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, env.Data)
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "Mine", list.Items[0]["title"])

	_, env = srv.do(http.MethodGet, "/api/stories", "bob", "")
	assert.Equal(t, 0, decodeList(t, env.Data).Total)
}

func TestChapterRoutes(t *testing.T) {
	srv := newTestServer(t)

	_, env := srv.do(http.MethodPost, "/api/stories", "alice", `{"title":"Saga"}`)
	storyID := decodeField(t, env.Data, "story")["id"].(string)
	base := "/api/stories/" + storyID + "/chapters"

	rec, env := srv.do(http.MethodPost, base, "alice", `{"content":"It was a dark night.","storyId":"ignored"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	first := decodeField(t, env.Data, "chapter")
	assert.Equal(t, float64(1), first["orderIndex"])
	assert.Equal(t, storyID, first["storyId"])

	rec, env = srv.do(http.MethodPost, base, "alice", `{"content":"Prologue","orderIndex":0,"title":"Before"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	prologueID := decodeField(t, env.Data, "chapter")["id"].(string)

	rec, env = srv.do(http.MethodGet, base, "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	list := decodeList(t, env.Data)
	require.Equal(t, 2, list.Total)
	assert.Equal(t, prologueID, list.Items[0]["id"])

	rec, _ = srv.do(http.MethodGet, base, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = srv.do(http.MethodPost, base, "alice", `{"content":""}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	chapterPath := base + "/" + prologueID
	rec, env = srv.do(http.MethodPatch, chapterPath, "alice", `{"title":null,"orderIndex":5}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	updated := decodeField(t, env.Data, "chapter")
	assert.Nil(t, updated["title"])
	assert.Equal(t, float64(5), updated["orderIndex"])
	assert.Equal(t, "Prologue", updated["content"])

	rec, _ = srv.do(http.MethodPatch, chapterPath, "alice", `{"content":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	rec, _ = srv.do(http.MethodPatch, chapterPath, "alice", `{"orderIndex":null}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = srv.do(http.MethodDelete, chapterPath, "bob", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, env = srv.do(http.MethodDelete, chapterPath, "alice", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, env.Success)
	assert.Empty(t, env.Data)
	assert.NotContains(t, rec.Body.String(), `"data"`)

	rec, env = srv.do(http.MethodDelete, chapterPath, "alice", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "NOT_FOUND", env.Code)
}

func TestHealthCheck(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name   string
		ping   handler.Pinger
		status int
		body   string
	}{
		{"store reachable", func(context.Context) error { return nil }, http.StatusOK, `"status":"ok"`},
		{"store down", func(context.Context) error { return errors.New("connection refused") }, http.StatusServiceUnavailable, `"status":"unavailable"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			handler.NewHealthHandler(tt.ping, logger).HealthCheck(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.status, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.body)
		})
	}
}
