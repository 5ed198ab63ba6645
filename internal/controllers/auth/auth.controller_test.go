package authController

import (
	"context"
	"testing"

	"kardetailing/config"
	"kardetailing/internal/models"
	"kardetailing/internal/repositories/memory"
	"kardetailing/internal/services"
	"kardetailing/internal/types"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fixture struct {
	controller AuthControllerInterface
	users      *memory.UserRepository
	services   services.Service
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	repos := memory.New()
	svc := services.New(config.Config{
		SessionSecret:   "0123456789abcdef0123456789abcdef",
		SessionTTLHours: 1,
		BcryptCost:      bcrypt.MinCost,
	})

	return fixture{
		controller: New(repos, svc),
		users:      repos.User.(*memory.UserRepository),
		services:   svc,
	}
}

func TestRegister(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	user, err := f.controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.False(t, user.IsAdmin)
	assert.NotEqual(t, "pw", user.PasswordHash)

	_, err = f.controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "other"})
	assert.ErrorIs(t, err, types.ErrDuplicateIdentifier)
	assert.Equal(t, "Email already exists.", types.Message(err, ""))

	// The first registration's secret still works.
	_, err = f.controller.Login(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	assert.NoError(t, err)
}

func TestRegister_RequiresBothFields(t *testing.T) {
	f := newFixture(t)

	tests := []CredentialsRequest{
		{Email: "", Password: "pw"},
		{Email: "jane@example.com", Password: ""},
		{Email: "   ", Password: "pw"},
	}

	for _, req := range tests {
		_, err := f.controller.Register(context.Background(), req)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "All fields required.", types.Message(err, ""))
	}
}

func TestLogin_FailuresAreIndistinguishable(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	_, unknownErr := f.controller.Login(ctx, CredentialsRequest{Email: "nobody@example.com", Password: "pw"})
	_, wrongErr := f.controller.Login(ctx, CredentialsRequest{Email: "jane@example.com", Password: "nope"})

	assert.ErrorIs(t, unknownErr, types.ErrInvalidCredentials)
	assert.ErrorIs(t, wrongErr, types.ErrInvalidCredentials)
	assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	assert.Equal(t, "Invalid email or password.", types.Message(wrongErr, ""))

	_, err = f.controller.Login(ctx, CredentialsRequest{Email: "jane@example.com"})
	assert.ErrorIs(t, err, types.ErrValidation)
}

type countingHasher struct {
	*services.PasswordService
	compares int
	missing  int
}

func (h *countingHasher) Compare(hash, password string) (bool, error) {
	h.compares++
	return h.PasswordService.Compare(hash, password)
}

func (h *countingHasher) CompareMissing(password string) {
	h.missing++
	h.PasswordService.CompareMissing(password)
}

func TestLogin_UnknownEmailStillHashes(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	hasher := &countingHasher{PasswordService: f.services.Password}
	controller := f.controller.(*AuthController)
	controller.password = hasher

	_, err := controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = controller.Login(ctx, CredentialsRequest{Email: "nobody@example.com", Password: "pw"})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.missing)
	assert.Equal(t, 0, hasher.compares)

	_, err = controller.Login(ctx, CredentialsRequest{Email: "jane@example.com", Password: "nope"})
	assert.ErrorIs(t, err, types.ErrInvalidCredentials)
	assert.Equal(t, 1, hasher.missing)
	assert.Equal(t, 1, hasher.compares)
}

func TestLogin_IssuesSessionAndRecordsLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	registered, err := f.controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	result, err := f.controller.Login(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Session.Token)
	assert.Equal(t, registered.ID, result.User.ID)
	assert.NotNil(t, result.User.LastLoginAt)

	stored, err := f.users.GetByID(ctx, registered.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.LastLoginAt)

	current, err := f.controller.CurrentUser(ctx, result.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, "jane@example.com", current.Email)
	assert.Empty(t, current.PasswordHash)
}

func TestCurrentUser_Failures(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.controller.CurrentUser(ctx, "")
	assert.ErrorIs(t, err, types.ErrUnauthenticated)

	_, err = f.controller.CurrentUser(ctx, "garbage")
	assert.ErrorIs(t, err, types.ErrInvalidSession)

	ghost, err := f.services.Session.Issue(&models.User{
		BaseUUIDModel: models.BaseUUIDModel{ID: uuid.New()},
		Email:         "ghost@example.com",
	})
	require.NoError(t, err)
	_, err = f.controller.CurrentUser(ctx, ghost.Token)
	assert.ErrorIs(t, err, types.ErrInvalidSession)
}

func TestListUsers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	admin, err := f.controller.Register(ctx, CredentialsRequest{Email: "admin@example.com", Password: "pw"})
	require.NoError(t, err)
	member, err := f.controller.Register(ctx, CredentialsRequest{Email: "jane@example.com", Password: "pw"})
	require.NoError(t, err)

	_, err = f.controller.ListUsers(ctx, member)
	assert.ErrorIs(t, err, types.ErrForbidden)

	require.NoError(t, f.users.SetAdmin(ctx, admin.ID, true))
	admin.IsAdmin = true

	profiles, err := f.controller.ListUsers(ctx, admin)
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
}
