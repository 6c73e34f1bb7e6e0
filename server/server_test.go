package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paper_writing_agents/llm"
	"paper_writing_agents/memory"
	"paper_writing_agents/project"
)

func newTestServer(t *testing.T, client llm.Client) (*Server, string) {
	t.Helper()
	projectsDir := t.TempDir()
	p, err := project.Create(filepath.Join(projectsDir, "thesis"))
	require.NoError(t, err)
	require.NoError(t, memory.Save(p.TempMemoryFile(), memory.Sections{
		"Topic Sentence": {"Caching dominates latency."},
		"Bullet Points":  {"cache hits avoid recomputation"},
	}, memory.TempSections))

	srv, err := New(client, projectsDir, nil)
	require.NoError(t, err)
	return srv, projectsDir
}

func TestParagraphEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &llm.Mock{Reply: "Caching dominates latency in practice."})
	h := srv.Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/projects/thesis/paragraph", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp writeResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "thesis", resp.Project)
	assert.Contains(t, resp.PlainText, "Caching dominates")
}

func TestReviseEndpointValidationIs400(t *testing.T) {
	srv, _ := newTestServer(t, &llm.Mock{Reply: "never used"})
	h := srv.Routes()

	// Temp memory has no Current Paragraph, so revision must fail upfront.
	req := httptest.NewRequest(http.MethodPost, "/api/projects/thesis/revise", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHistoryEndpoint(t *testing.T) {
	srv, _ := newTestServer(t, &llm.Mock{Reply: "A paragraph."})
	h := srv.Routes()

	post := httptest.NewRequest(http.MethodPost, "/api/projects/thesis/paragraph", strings.NewReader("{}"))
	h.ServeHTTP(httptest.NewRecorder(), post)

	req := httptest.NewRequest(http.MethodGet, "/api/projects/thesis/history", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var entries []historyEntryResp
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "plain", entries[0].Kind)
	assert.Equal(t, "A paragraph.", entries[0].Body)
}

func TestUnknownProjectIs404(t *testing.T) {
	srv, _ := newTestServer(t, &llm.Mock{Reply: "x"})
	h := srv.Routes()

	req := httptest.NewRequest(http.MethodPost, "/api/projects/nope/paragraph", strings.NewReader("{}"))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWrongMethodIs405(t *testing.T) {
	srv, _ := newTestServer(t, &llm.Mock{Reply: "x"})
	h := srv.Routes()

	req := httptest.NewRequest(http.MethodGet, "/api/projects/thesis/paragraph", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
