package leadclient_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"lead-capture-backend/internal/domain"
	"lead-capture-backend/pkg/leadclient"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var lead = domain.LeadContact{Name: "Jane Doe", Email: "jane@x.com", Phone: "08012345678"}

func TestSubmitOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Lead    domain.LeadContact `json:"lead"`
			Answers domain.Answers     `json:"answers"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, lead, body.Lead)
		assert.Equal(t, "Acne", body.Answers["concern"])
		w.Write([]byte(`{"ok":true}`))
	}))
	defer srv.Close()

	result, err := leadclient.New(srv.URL, srv.Client()).Submit(context.Background(), lead, domain.Answers{"concern": "Acne"})
	require.NoError(t, err)
	assert.True(t, result.OK)
}

func TestSubmitRejected(t *testing.T) {
	t.Run("server error message passes through", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			w.Write([]byte(`{"ok":false,"error":"quota exceeded"}`))
		}))
		defer srv.Close()

		result, err := leadclient.New(srv.URL, srv.Client()).Submit(context.Background(), lead, nil)
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.Equal(t, "quota exceeded", result.Error)
	})

	t.Run("undecodable failure body gets the user-facing fallback", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer srv.Close()

		result, err := leadclient.New(srv.URL, srv.Client()).Submit(context.Background(), lead, nil)
		require.NoError(t, err)
		assert.False(t, result.OK)
		assert.NotEmpty(t, result.Error)
	})
}

func TestSubmitTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	result, err := leadclient.New(srv.URL, nil).Submit(context.Background(), lead, nil)
	assert.Error(t, err)
	assert.Nil(t, result)
}
