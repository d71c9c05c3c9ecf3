package geocode

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(srv *httptest.Server) *Client {
	c := New()
	c.BaseURL = srv.URL
	c.HTTPClient = srv.Client()
	return c
}

func TestLookup(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "12 rue du Soleil, Perpignan", r.URL.Query().Get("q"))
		assert.Equal(t, "solar-crm/1.0", r.Header.Get("User-Agent"))
		w.Write([]byte(`[{"lat":"42.6986","lon":"2.8954"}]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv).Lookup(context.Background(), "12 rue du Soleil, Perpignan")
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.InDelta(t, 42.6986, res.Latitude, 1e-9)
	assert.InDelta(t, 2.8954, res.Longitude, 1e-9)
}

func TestLookupNoMatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	res, err := newTestClient(srv).Lookup(context.Background(), "nowhere")
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestLookupServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "12 rue du Soleil")
	assert.Error(t, err)
}

func TestLookupBadCoordinates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"lat":"not-a-float","lon":"2.0"}]`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv).Lookup(context.Background(), "12 rue du Soleil")
	assert.Error(t, err)
}
