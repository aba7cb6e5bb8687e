package service

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barberin/internal/auth"
	"github.com/BruksfildServices01/barberin/internal/httperr"
)

func newUserService(t *testing.T) (*UserService, *memUsers, *auth.TokenService) {
	t.Helper()
	repo := newMemUsers()
	tokens := auth.NewTokenService("test-secret", time.Hour)
	return NewUserService(repo, tokens, nil), repo, tokens
}

var ana = RegisterUserInput{
	FirstName: "Ana",
	LastName:  "Lopez",
	Email:     " Ana@X.com ",
	Password:  "secret1",
	AgeRange:  "18-25",
}

func TestRegisterUser(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()

	u, err := svc.Register(ctx, ana)
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Equal(t, "ana@x.com", u.Email)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.True(t, checkPassword(u.PasswordHash, "secret1"))

	_, err = svc.Register(ctx, ana)
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, httperr.Status(err))
	assert.Contains(t, err.Error(), "already exists")
}

func TestRegisterUserChecksEmailDomain(t *testing.T) {
	svc := NewUserService(newMemUsers(), auth.NewTokenService("s", time.Hour), stubEmails(false))

	_, err := svc.Register(context.Background(), ana)
	assert.Equal(t, http.StatusBadRequest, httperr.Status(err))
}

func TestLoginUser(t *testing.T) {
	svc, _, tokens := newUserService(t)
	ctx := context.Background()
	created, err := svc.Register(ctx, ana)
	require.NoError(t, err)

	sess, err := svc.Login(ctx, "ANA@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, created.ID, sess.User.ID)

	claims, err := tokens.Verify(sess.Token)
	require.NoError(t, err)
	id, err := claims.Identity()
	require.NoError(t, err)
	assert.Equal(t, auth.Identity{SubjectID: created.ID, Role: auth.RoleUser}, id)

	_, err = svc.Login(ctx, "ana@x.com", "wrong-pass")
	assert.Equal(t, http.StatusUnauthorized, httperr.Status(err))

	_, err = svc.Login(ctx, "nobody@x.com", "secret1")
	assert.Equal(t, http.StatusUnauthorized, httperr.Status(err))
}

func TestUpdateUserTouchesOnlyGivenFields(t *testing.T) {
	svc, repo, _ := newUserService(t)
	ctx := context.Background()
	u, err := svc.Register(ctx, ana)
	require.NoError(t, err)

	ok, err := svc.Update(ctx, u.ID, UserPatch{Phone: ptr("+57 300 000 0000")})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, map[string]any{"phone": "+57 300 000 0000"}, repo.updates[len(repo.updates)-1])

	got, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.FirstName)
	assert.Equal(t, "+57 300 000 0000", got.Phone)

	ok, err = svc.Update(ctx, 999, UserPatch{Phone: ptr("1234567")})
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := svc.GetByID(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestListUsersPaginates(t *testing.T) {
	svc, _, _ := newUserService(t)
	ctx := context.Background()
	for _, email := range []string{"a@x.com", "b@x.com", "c@x.com"} {
		in := ana
		in.Email = email
		_, err := svc.Register(ctx, in)
		require.NoError(t, err)
	}

	page, err := svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.Page)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "c@x.com", page.Items[0].Email)

	page, err = svc.List(ctx, 0, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, MaxLimit, page.Limit)

	page, err = svc.List(ctx, 9, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, page.Limit)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestLoginWithGoogle(t *testing.T) {
	svc, repo, _ := newUserService(t)
	ctx := context.Background()

	sess, err := svc.LoginWithGoogle(ctx, GoogleProfile{ID: "g-1", Email: "New@Mail.com", GivenName: "Nia", FamilyName: "Diaz"})
	require.NoError(t, err)
	assert.Equal(t, "new@mail.com", sess.User.Email)
	assert.Equal(t, "g-1", *sess.User.GoogleID)
	assert.Empty(t, sess.User.PasswordHash)

	again, err := svc.LoginWithGoogle(ctx, GoogleProfile{ID: "g-1", Email: "new@mail.com"})
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, again.User.ID)

	existing, err := svc.Register(ctx, ana)
	require.NoError(t, err)
	linked, err := svc.LoginWithGoogle(ctx, GoogleProfile{ID: "g-2", Email: "ana@x.com", Picture: "https://img/p.png"})
	require.NoError(t, err)
	assert.Equal(t, existing.ID, linked.User.ID)
	stored, _ := repo.FindByID(ctx, existing.ID)
	assert.Equal(t, "g-2", *stored.GoogleID)
	assert.Equal(t, "https://img/p.png", stored.ProfilePhotoURL)

	_, err = svc.Login(ctx, "new@mail.com", "")
	assert.Equal(t, http.StatusUnauthorized, httperr.Status(err))

	_, err = svc.LoginWithGoogle(ctx, GoogleProfile{ID: "g-3"})
	assert.Equal(t, http.StatusUnauthorized, httperr.Status(err))
}
