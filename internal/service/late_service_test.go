package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	config "github.com/adforgehq/adforge-api/configs"
	"github.com/adforgehq/adforge-api/internal/transfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLateTestService(handler http.HandlerFunc) (LateService, *httptest.Server) {
	srv := httptest.NewServer(handler)
	cfg := config.Config{}
	cfg.Late.BaseURL = srv.URL
	cfg.Late.APIKey = "global-key"
	return NewLateService(cfg), srv
}

func TestLateCreatePost(t *testing.T) {
	var gotAuth string
	var gotBody transfer.LateCreatePostRequest

	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/posts", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer.LateCreatePostResponse{Post: transfer.LatePost{ID: "lp_1", Status: "scheduled"}})
	})
	defer srv.Close()

	id, err := svc.CreatePost(context.Background(), "", &transfer.LateCreatePostRequest{
		Content:      "hello",
		ScheduledFor: "2026-03-01T12:00:00Z",
		Timezone:     "UTC",
		Platforms:    []transfer.LatePlatformTarget{{Platform: "instagram", AccountID: "acc1"}},
		MediaItems:   []transfer.LateMediaItem{{Type: "image", URL: "https://m/1"}, {Type: "image", URL: "https://m/2"}},
	})
	require.NoError(t, err)
	assert.Equal(t, "lp_1", id)
	assert.Equal(t, "Bearer global-key", gotAuth, "empty per-call key falls back to the configured one")
	assert.Equal(t, "hello", gotBody.Content)
	assert.Len(t, gotBody.MediaItems, 2)
}

func TestLateCreatePostUsesPerCallKey(t *testing.T) {
	var gotAuth string
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(transfer.LateCreatePostResponse{Post: transfer.LatePost{ID: "lp_1"}})
	})
	defer srv.Close()

	_, err := svc.CreatePost(context.Background(), "user-key", &transfer.LateCreatePostRequest{})
	require.NoError(t, err)
	assert.Equal(t, "Bearer user-key", gotAuth)
}

func TestLateCreatePostSurfacesAPIError(t *testing.T) {
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		json.NewEncoder(w).Encode(transfer.LateErrorResponse{Error: "scheduledFor must be in the future"})
	})
	defer srv.Close()

	_, err := svc.CreatePost(context.Background(), "", &transfer.LateCreatePostRequest{})
	require.Error(t, err)
	assert.Equal(t, "scheduledFor must be in the future", err.Error())
}

func TestLateCreatePostRejectsMissingID(t *testing.T) {
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(transfer.LateCreatePostResponse{})
	})
	defer srv.Close()

	_, err := svc.CreatePost(context.Background(), "", &transfer.LateCreatePostRequest{})
	assert.Error(t, err)
}

func TestLateGetPost(t *testing.T) {
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/posts/lp_1", r.URL.Path)
		json.NewEncoder(w).Encode(transfer.LateGetPostResponse{Post: transfer.LatePost{ID: "lp_1", Status: "published"}})
	})
	defer srv.Close()

	post, err := svc.GetPost(context.Background(), "", "lp_1")
	require.NoError(t, err)
	assert.Equal(t, "published", post.Status)
}

func TestLateDeletePostTreatsGoneAsSuccess(t *testing.T) {
	for _, status := range []int{http.StatusOK, http.StatusNoContent, http.StatusNotFound} {
		svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodDelete, r.Method)
			w.WriteHeader(status)
		})

		err := svc.DeletePost(context.Background(), "", "lp_1")
		assert.NoError(t, err, "status %d", status)
		srv.Close()
	}
}

func TestLateDeletePostFailsOnServerError(t *testing.T) {
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer srv.Close()

	err := svc.DeletePost(context.Background(), "", "lp_1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "500")
}

func TestLateListAccounts(t *testing.T) {
	svc, srv := newLateTestService(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/accounts", r.URL.Path)
		json.NewEncoder(w).Encode(transfer.LateAccountsResponse{Accounts: []transfer.LateAccount{
			{ID: "acc1", Platform: "instagram", Username: "brand", Status: "active"},
		}})
	})
	defer srv.Close()

	accounts, err := svc.ListAccounts(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "instagram", accounts[0].Platform)
}

func TestLateConfigured(t *testing.T) {
	cfg := config.Config{}
	assert.False(t, NewLateService(cfg).Configured())

	cfg.Late.APIKey = "k"
	assert.True(t, NewLateService(cfg).Configured())
}
