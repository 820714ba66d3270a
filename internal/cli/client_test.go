package cli

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_SendsTokenAndBody(t *testing.T) {
	var gotAuth string
	var gotBody map[string]string

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]int64{"userId": 42})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sesame")
	id, err := c.CreateUser(context.Background(), "Ada", "L", "ada@example.com", "secret")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)
	assert.Equal(t, "Bearer sesame", gotAuth)
	assert.Equal(t, "ada@example.com", gotBody["email"])
}

func TestGetBalance_KeepsStringForm(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/users/7/balance", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]string{"balance": "184467440737095516160"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	balance, err := c.GetBalance(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "184467440737095516160", balance)
}

func TestCall_SurfacesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"error": "No balance known"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "")
	_, err := c.GetBalance(context.Background(), 7)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No balance known")
	assert.Contains(t, err.Error(), "404")
}

func TestExportStatement(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/users/7/statements", r.URL.Path)
		require.Equal(t, "Bearer sesame", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(StatementLink{Key: "statements/7/x", URL: "https://example.com/get"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "sesame")
	link, err := c.ExportStatement(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "statements/7/x", link.Key)
	assert.Equal(t, "https://example.com/get", link.URL)
}
