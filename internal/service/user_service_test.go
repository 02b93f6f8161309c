package service

import (
	"context"
	"errors"
	"testing"

	"github.com/adforgehq/adforge-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUserRepo struct {
	users map[int64]*models.User
}

func (r *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, bool, error) {
	user, ok := r.users[id]
	return user, ok, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, bool, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, true, nil
		}
	}
	return nil, false, nil
}

func (r *fakeUserRepo) Create(ctx context.Context, user *models.User) (int64, error) {
	id := int64(len(r.users) + 1)
	stored := *user
	stored.ID = id
	r.users[id] = &stored
	return id, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *models.User) error { return nil }

func (r *fakeUserRepo) Remove(ctx context.Context, id int64) error {
	delete(r.users, id)
	return nil
}

func TestGetUserInfo(t *testing.T) {
	repo := &fakeUserRepo{users: map[int64]*models.User{
		7: {ID: 7, Email: "ads@example.com", Name: "Ad Forger"},
	}}
	svc := NewUserService(repo)

	user, err := svc.GetUserInfo(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "ads@example.com", user.Email)

	_, err = svc.GetUserInfo(context.Background(), 99)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFoundOrForbidden))

	_, err = svc.GetUserInfo(context.Background(), 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnauthorized))
}
