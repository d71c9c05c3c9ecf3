package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginStoresTokenPerInstance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/users/login":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "a@solar.fr", body["email"])
			json.NewEncoder(w).Encode(map[string]any{
				"token": "tok-" + body["email"],
				"user":  map[string]any{"id": 1, "name": "Alice", "email": body["email"], "role": "admin"},
			})
		case "/api/projects":
			assert.Equal(t, "Bearer tok-a@solar.fr", r.Header.Get("Authorization"))
			w.Write([]byte(`[]`))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	other := New(srv.URL, WithHTTPClient(srv.Client()))

	user, err := c.Login(context.Background(), "a@solar.fr", "pw")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Role)
	assert.Equal(t, "tok-a@solar.fr", c.Token())

	// Logging in on one client must not leak into another instance.
	assert.Empty(t, other.Token())

	_, err = c.ListProjects(context.Background())
	require.NoError(t, err)
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Identifiants invalides"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	_, err := c.Login(context.Background(), "a@solar.fr", "wrong")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, "Identifiants invalides", apiErr.Message)
}

func TestCreateMilestoneNormalizesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/projects/3/investors/7/milestones", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Payé", body["status"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":11,"project_id":3,"investor_id":7,"label":"Acompte","status":"Payé"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithToken("tok"))
	st := "payee"
	m, err := c.CreateMilestone(context.Background(), 3, 7, MilestoneInput{Label: "Acompte", Status: &st})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), m.ID)
	require.NotNil(t, m.Status)
	assert.Equal(t, "Payé", *m.Status)
}

func TestUpdateMilestoneUsesScopedRoute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/projects/3/investors/7/milestones/11", r.URL.Path)
		w.Write([]byte(`{"id":11,"project_id":3,"investor_id":7,"label":"Acompte","status":"Payé"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithToken("tok"))
	st := "payee"
	m, err := c.UpdateMilestone(context.Background(), 3, 7, 11, MilestonePatch{Status: &st})
	require.NoError(t, err)
	assert.Equal(t, uint64(11), m.ID)
}

func TestUpdateMilestoneOutsidePairIs404(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Jalon introuvable"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithToken("tok"))
	lbl := "x"
	_, err := c.UpdateMilestone(context.Background(), 3, 99, 11, MilestonePatch{Label: &lbl})

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Jalon introuvable", apiErr.Message)
}

func TestInvite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/projects/5/invite", r.URL.Path)
		w.Write([]byte(`{"message":"Invitation envoyée","url":"https://suivi.solaire.fr/public/suivi/abc"}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()), WithToken("tok"))
	res, err := c.Invite(context.Background(), 5, "client@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Invitation envoyée", res.Message)
	assert.Contains(t, res.URL, "/public/suivi/")
}

func TestPublicViewMergedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/public/projects/abc", r.URL.Path)
		// No token required on the public route.
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write([]byte(`{"id":5,"name":"Toiture Dupont","status":"En cours",
			"steps":[{"id":1,"project_id":5,"label":"Pose des panneaux","status":"OK"}],
			"custom_fields":[{"id":2,"project_id":5,"field_name":"Onduleur","field_value":"SMA"}]}`))
	}))
	defer srv.Close()

	c := New(srv.URL, WithHTTPClient(srv.Client()))
	view, err := c.PublicView(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, "Toiture Dupont", view.Name)
	require.Len(t, view.Steps, 1)
	assert.Equal(t, "Pose des panneaux", view.Steps[0].Label)
	require.Len(t, view.CustomFields, 1)
	assert.Equal(t, "Onduleur", view.CustomFields[0].FieldName)
}
