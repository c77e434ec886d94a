package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"user-auth-service/internal/models"
	"user-auth-service/internal/storage"
	"user-auth-service/internal/token"
)

func issueAccess(t *testing.T, userID int64) string {
	t.Helper()
	raw, err := token.NewCodec(testCfg()).Issue(context.Background(), userID, token.TypeAccess, time.Minute)
	require.NoError(t, err)
	return raw
}

func TestResolveIdentity_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(&models.User{ID: 42, Email: "user@example.com"}, nil)

	user, err := svc.ResolveIdentity(context.Background(), issueAccess(t, 42))
	require.NoError(t, err)
	require.Equal(t, int64(42), user.ID)
	require.Equal(t, "user@example.com", user.Email)
}

// Синтаксически валидный refresh-токен не проходит как access.
func TestResolveIdentity_RejectsRefreshToken(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()
	refresh, err := token.NewCodec(testCfg()).Issue(ctx, 42, token.TypeRefresh, time.Minute)
	require.NoError(t, err)

	_, err = svc.ResolveIdentity(ctx, refresh)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestResolveIdentity_GarbageAndExpired(t *testing.T) {
	t.Parallel()

	svc, _, ctrl := newSvc(t)
	defer ctrl.Finish()

	ctx := context.Background()

	_, err := svc.ResolveIdentity(ctx, "garbage")
	require.ErrorIs(t, err, ErrInvalidToken)

	expired, err := token.NewCodec(testCfg()).Issue(ctx, 42, token.TypeAccess, -time.Minute)
	require.NoError(t, err)

	_, err = svc.ResolveIdentity(ctx, expired)
	require.ErrorIs(t, err, ErrInvalidToken)
}

// Токен валиден, но субъект удален из хранилища.
func TestResolveIdentity_SubjectMissing(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(nil, storage.ErrNotFound)

	_, err := svc.ResolveIdentity(context.Background(), issueAccess(t, 42))
	require.ErrorIs(t, err, ErrInvalidRepresentation)
}

func TestResolveIdentity_StorageError_Propagated(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(nil, errors.New("db down"))

	_, err := svc.ResolveIdentity(context.Background(), issueAccess(t, 42))
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrInvalidRepresentation)
	require.NotErrorIs(t, err, ErrInvalidToken)
}

func TestActiveIdentity_InactiveUser(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(&models.User{ID: 42, IsActive: false}, nil)

	_, err := svc.ActiveIdentity(context.Background(), issueAccess(t, 42))
	require.ErrorIs(t, err, ErrInactiveUser)
}

func TestActiveIdentity_OK(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(&models.User{ID: 42, IsActive: true}, nil)

	user, err := svc.ActiveIdentity(context.Background(), issueAccess(t, 42))
	require.NoError(t, err)
	require.True(t, user.IsActive)
}

// Стаб кэша для тестов read-through пути.
type stubCache struct {
	users map[int64]*models.User
	sets  int
}

func newStubCache() *stubCache {
	return &stubCache{users: make(map[int64]*models.User)}
}

func (c *stubCache) Get(_ context.Context, id int64) (*models.User, bool, error) {
	u, ok := c.users[id]
	return u, ok, nil
}

func (c *stubCache) Set(_ context.Context, user *models.User, _ time.Duration) error {
	c.sets++
	c.users[user.ID] = user
	return nil
}

func (c *stubCache) Close() error { return nil }

// Попадание в кэш не трогает хранилище; промах заполняет кэш.
func TestResolveIdentity_UserCache(t *testing.T) {
	t.Parallel()

	svc, st, ctrl := newSvc(t)
	defer ctrl.Finish()

	cacheStub := newStubCache()
	svc.SetUserCache(cacheStub, time.Minute)

	ctx := context.Background()

	// Промах: единственный поход в хранилище, затем запись в кэш.
	st.EXPECT().UserByID(gomock.Any(), int64(42)).
		Return(&models.User{ID: 42, Email: "user@example.com", IsActive: true}, nil).
		Times(1)

	user, err := svc.ResolveIdentity(ctx, issueAccess(t, 42))
	require.NoError(t, err)
	require.Equal(t, int64(42), user.ID)
	require.Equal(t, 1, cacheStub.sets)

	// Попадание: хранилище больше не вызывается (Times(1) выше).
	user, err = svc.ResolveIdentity(ctx, issueAccess(t, 42))
	require.NoError(t, err)
	require.Equal(t, "user@example.com", user.Email)
}
