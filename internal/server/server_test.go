package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.dw1.io/slashdoc"
)

const source = `/// class Foo
/// A foo.

/// function Foo.bar
/// params:
///   x {int}: the x
`

func newTestServer(t *testing.T, content *string) *httptest.Server {
	t.Helper()

	srv := New(func() (*slashdoc.Document, error) {
		s := slashdoc.New()
		return s.Parse(slashdoc.Source{Name: "foo.js", Content: []byte(*content)})
	})

	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)

	return ts
}

func get(t *testing.T, url string) (*http.Response, string) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	return resp, string(body)
}

func TestServeHTML(t *testing.T) {
	content := source
	ts := newTestServer(t, &content)

	resp, body := get(t, ts.URL+"/")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/html; charset=utf-8", resp.Header.Get("Content-Type"))
	assert.Contains(t, body, `<h2 id="class-foo">class Foo</h2>`)
}

func TestServeReparsesPerRequest(t *testing.T) {
	content := source
	handler := New(func() (*slashdoc.Document, error) {
		s := slashdoc.New()
		return s.Parse(slashdoc.Source{Name: "foo.js", Content: []byte(content)})
	}).Handler()

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotContains(t, rec.Body.String(), "class Baz")

	content += "\n/// class Baz\n"

	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Contains(t, rec.Body.String(), "class Baz")
}

func TestServeMarkdown(t *testing.T) {
	content := source
	ts := newTestServer(t, &content)

	resp, body := get(t, ts.URL+"/markdown")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(body, `# <a id="class-foo"></a>class Foo`+"\n"), body)
}

func TestServeNodes(t *testing.T) {
	content := source
	ts := newTestServer(t, &content)

	resp, body := get(t, ts.URL+"/nodes")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var doc struct {
		Nodes []struct {
			Name string `json:"name"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &doc))
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "Foo.bar", doc.Nodes[1].Name)
}

func TestServeNode(t *testing.T) {
	content := source
	ts := newTestServer(t, &content)

	tests := []struct {
		name   string
		status int
		want   string
	}{
		{"Foo.bar", http.StatusOK, `"name":"Foo.bar"`},
		{"x", http.StatusOK, `"type":"int"`},
		{"Nope", http.StatusNotFound, `"error":"Unknown node Nope"`},
	}

	for _, tt := range tests {
		resp, body := get(t, ts.URL+"/nodes/"+tt.name)
		assert.Equal(t, tt.status, resp.StatusCode, tt.name)
		assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
		assert.Contains(t, body, tt.want, tt.name)
	}
}

func TestServeSyntaxError(t *testing.T) {
	content := "/// widget Foo\n"
	ts := newTestServer(t, &content)

	for _, path := range []string{"/", "/nodes", "/nodes/Foo", "/markdown"} {
		resp, body := get(t, ts.URL+path)
		assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, path)
		assert.Contains(t, body, "type must be one of", path)
	}
}

func TestServeLoadFailure(t *testing.T) {
	srv := New(func() (*slashdoc.Document, error) {
		return nil, errors.New("disk on fire")
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "disk on fire")
}

func TestServeMethodNotAllowed(t *testing.T) {
	content := source
	srv := New(func() (*slashdoc.Document, error) {
		s := slashdoc.New()
		return s.Parse(slashdoc.Source{Name: "foo.js", Content: []byte(content)})
	})

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
