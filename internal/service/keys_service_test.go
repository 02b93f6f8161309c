package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKeyRepo struct {
	nextID int64
	keys   map[int64]*models.ApiKey
}

func newFakeKeyRepo() *fakeKeyRepo {
	return &fakeKeyRepo{keys: make(map[int64]*models.ApiKey)}
}

func (r *fakeKeyRepo) GetByKey(ctx context.Context, apiKey string) (int64, bool, error) {
	for _, key := range r.keys {
		if key.ApiKey == apiKey {
			return key.UserID, true, nil
		}
	}
	return 0, false, nil
}

func (r *fakeKeyRepo) GetByUserID(ctx context.Context, userID int64) ([]*models.ApiKey, error) {
	var out []*models.ApiKey
	for _, key := range r.keys {
		if key.UserID == userID {
			out = append(out, key)
		}
	}
	return out, nil
}

func (r *fakeKeyRepo) Create(ctx context.Context, apiKey *models.ApiKey) (int64, error) {
	r.nextID++
	stored := *apiKey
	stored.ID = r.nextID
	r.keys[stored.ID] = &stored
	return stored.ID, nil
}

func (r *fakeKeyRepo) CheckByUserID(ctx context.Context, keyID, userID int64) (bool, error) {
	key, ok := r.keys[keyID]
	return ok && key.UserID == userID, nil
}

func (r *fakeKeyRepo) Remove(ctx context.Context, id int64) error {
	delete(r.keys, id)
	return nil
}

func TestApiKeyCreateAndResolve(t *testing.T) {
	repo := newFakeKeyRepo()
	svc := NewApiKeyService(repo)

	require.NoError(t, svc.Create(context.Background(), 7))

	keys, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, keys, 1)
	assert.NotEmpty(t, keys[0].ApiKey)

	userID, err := svc.GetUserID(context.Background(), keys[0].ApiKey)
	require.NoError(t, err)
	assert.Equal(t, int64(7), userID)
}

func TestApiKeyCreateEnforcesCap(t *testing.T) {
	repo := newFakeKeyRepo()
	svc := NewApiKeyService(repo)

	for i := 0; i < maxKeysPerUser; i++ {
		require.NoError(t, svc.Create(context.Background(), 7))
	}

	err := svc.Create(context.Background(), 7)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestApiKeyResolveUnknownKey(t *testing.T) {
	svc := NewApiKeyService(newFakeKeyRepo())

	_, err := svc.GetUserID(context.Background(), "nope")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}

func TestApiKeyRemoveRejectsForeignKey(t *testing.T) {
	repo := newFakeKeyRepo()
	svc := NewApiKeyService(repo)

	require.NoError(t, svc.Create(context.Background(), 7))
	keys, err := svc.List(context.Background(), 7)
	require.NoError(t, err)

	err = svc.RemoveAPIKey(context.Background(), 99, keys[0].ID)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFoundOrForbidden))

	require.NoError(t, svc.RemoveAPIKey(context.Background(), 7, keys[0].ID))
	remaining, err := svc.List(context.Background(), 7)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}
