package assets

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pbaille/lifestore/internal/synth"
)

func TestMemeSources_CoverSynthesizedImages(t *testing.T) {
	for _, name := range synth.MemeImages() {
		assert.Contains(t, MemeSources, name, "no download source for %s", name)
	}
}

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
		switch r.URL.Path {
		case "/ok.jpg":
			w.Write([]byte("jpegdata"))
		case "/big.jpg":
			w.Write(bytes.Repeat([]byte("x"), maxAssetSize+1))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	f := NewFetcher(5*time.Second, nil)

	data, err := f.Fetch(context.Background(), srv.URL+"/ok.jpg")
	require.NoError(t, err)
	assert.Equal(t, "jpegdata", string(data))

	_, err = f.Fetch(context.Background(), srv.URL+"/missing.jpg")
	assert.ErrorContains(t, err, "HTTP 404")

	_, err = f.Fetch(context.Background(), srv.URL+"/big.jpg")
	assert.Error(t, err)

	_, err = f.Fetch(context.Background(), "ftp://example.com/a.jpg")
	assert.ErrorContains(t, err, "unsupported scheme")
}

func TestSync_SkipsExistingAndCollectsFailures(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path == "/broken" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(r.URL.Path))
	}))
	defer srv.Close()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "have.jpg"), []byte("old"), 0644))

	report, err := NewFetcher(5*time.Second, nil).Sync(context.Background(), dir, map[string]string{
		"have.jpg":   srv.URL + "/have",
		"new.jpg":    srv.URL + "/new",
		"broken.jpg": srv.URL + "/broken",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"new.jpg"}, report.Downloaded)
	assert.Equal(t, []string{"have.jpg"}, report.Skipped)
	assert.Contains(t, report.Failed, "broken.jpg")
	assert.Equal(t, int32(2), hits.Load())

	data, err := os.ReadFile(filepath.Join(dir, "have.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "old", string(data))

	data, err = os.ReadFile(filepath.Join(dir, "new.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "/new", string(data))

	_, err = os.Stat(filepath.Join(dir, "broken.jpg"))
	assert.True(t, os.IsNotExist(err))
}
