package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-formschema/pkg/schema"
)

const profile = `{"type":"object","properties":{"name":{"type":"string","required":true}}}`

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "profile.json")
	require.NoError(t, os.WriteFile(path, []byte(profile), 0o600))

	node, err := New(Options{}).LoadSchema(context.Background(), schema.SourceFromFile(path))
	require.NoError(t, err)
	assert.Equal(t, []string{"name"}, node.Properties.Names())
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{"forms/profile.json": {Data: []byte(profile)}}
	doc, err := New(Options{FileSystem: files}).Load(context.Background(), schema.SourceFromFS("forms/profile.json"))
	require.NoError(t, err)
	assert.Equal(t, "forms/profile.json", doc.Location())
}

func TestLoad_Stdin(t *testing.T) {
	l := New(Options{Stdin: strings.NewReader("type: object\n")})
	node, err := l.LoadSchema(context.Background(), schema.SourceFromStdin())
	require.NoError(t, err)
	assert.Equal(t, schema.KindObject, schema.FieldKind(node))
}

func TestLoad_HTTP(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(profile))
	}))
	defer srv.Close()

	src, err := schema.SourceFromURL(srv.URL + "/profile.json")
	require.NoError(t, err)

	_, err = New(Options{}).Load(context.Background(), src)
	assert.ErrorIs(t, err, ErrHTTPDisabled)

	l := New(Options{AllowHTTP: true})
	_, err = l.Load(context.Background(), src)
	require.NoError(t, err)

	missing, err := schema.SourceFromURL(srv.URL + "/missing.json")
	require.NoError(t, err)
	_, err = l.Load(context.Background(), missing)
	assert.ErrorContains(t, err, "unexpected status")
}

func TestLoad_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Load(ctx, schema.SourceFromFile("whatever.json"))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := New(Options{}).Load(context.Background(), schema.SourceFromFile(filepath.Join(t.TempDir(), "nope.json")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
