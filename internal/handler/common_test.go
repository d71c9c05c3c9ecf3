package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(t *testing.T, method, target string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestParamID(t *testing.T) {
	c, _ := newContext(t, http.MethodGet, "/")
	c.SetParamNames("id")
	c.SetParamValues("42")

	id, ok := paramID(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)
}

func TestParamIDRejectsGarbage(t *testing.T) {
	for _, bad := range []string{"", "abc", "-1", "1.5"} {
		c, _ := newContext(t, http.MethodGet, "/")
		c.SetParamNames("id")
		c.SetParamValues(bad)

		_, ok := paramID(c, "id")
		assert.False(t, ok, "value %q should be rejected", bad)
	}
}

func TestCurrentUserID(t *testing.T) {
	// The JWT middleware stores the claim as float64 (JSON number).
	c, _ := newContext(t, http.MethodGet, "/")
	c.Set("user_id", float64(9))

	id, err := currentUserID(c)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), id)
}

func TestIsAdmin(t *testing.T) {
	c, _ := newContext(t, http.MethodGet, "/")
	c.Set("role", "admin")
	assert.True(t, isAdmin(c))

	c2, _ := newContext(t, http.MethodGet, "/")
	c2.Set("role", "user")
	assert.False(t, isAdmin(c2))
}

func TestFlexID(t *testing.T) {
	cases := map[string]struct {
		in   string
		want *uint64
		err  bool
	}{
		"number":         {in: `{"owner_id":3}`, want: uptr(3)},
		"numeric string": {in: `{"owner_id":"3"}`, want: uptr(3)},
		"empty string":   {in: `{"owner_id":""}`, want: nil},
		"null":           {in: `{"owner_id":null}`, want: nil},
		"absent":         {in: `{}`, want: nil},
		"garbage":        {in: `{"owner_id":"abc"}`, err: true},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			var body struct {
				OwnerID flexID `json:"owner_id"`
			}
			err := json.Unmarshal([]byte(tc.in), &body)
			if tc.err {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tc.want == nil {
				assert.Nil(t, body.OwnerID.Value)
			} else {
				require.NotNil(t, body.OwnerID.Value)
				assert.Equal(t, *tc.want, *body.OwnerID.Value)
			}
		})
	}
}

func uptr(n uint64) *uint64 { return &n }

func TestPing(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/api/ping")
	require.NoError(t, Ping(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"pong":true`)
}

func TestRoot(t *testing.T) {
	c, rec := newContext(t, http.MethodGet, "/")
	require.NoError(t, Root(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "API Project Solar ready!", rec.Body.String())
}

func TestNormalizeStatusHandlesCodes(t *testing.T) {
	got := normalizeStatus(strptr("payee"))
	require.NotNil(t, got)
	assert.Equal(t, "Payé", *got)

	assert.Nil(t, normalizeStatus(nil))

	empty := normalizeStatus(strptr(""))
	require.NotNil(t, empty)
	assert.Equal(t, "", *empty)
}

func strptr(s string) *string { return &s }
