package services

import (
	"net/http"
	"testing"
	"time"

	"triveni_backend/internal/auth"
	"triveni_backend/internal/models"
	"triveni_backend/internal/services/dto"
	"triveni_backend/internal/testutil"
	"triveni_backend/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_AlwaysCreatesUserRole(t *testing.T) {
	f := newFixture(t)

	res, err := f.services.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Name:     " Priya ",
		Email:    "Priya@Example.com",
		Password: "secret1",
	})
	require.NoError(t, err)

	assert.Equal(t, models.UserRoleUser, res.User.Role)
	assert.Equal(t, "priya@example.com", res.User.Email)
	assert.True(t, res.User.IsActive)
	assert.NotEqual(t, "secret1", res.User.PasswordHash)

	claims, err := auth.NewTokenManager("test-secret", time.Hour).Parse(res.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, claims.UserID)
	assert.Equal(t, string(models.UserRoleUser), claims.Role)
}

func TestRegister_DuplicateAndValidation(t *testing.T) {
	f := newFixture(t)
	existing := testutil.CreateUser(t, f.db, models.UserRoleUser)

	_, err := f.services.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{
		Name: "Copy", Email: existing.Email, Password: "secret1",
	})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	_, err = f.services.AuthService.Register(f.ctx, f.db, &dto.RegisterRequest{Name: "Short", Email: "short@example.com", Password: "123"})
	assert.Contains(t, validationFields(t, err), "password")
}

func TestLogin(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleAdmin)

	res, err := f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: testutil.DefaultPassword})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	require.NotNil(t, res.User.LastLoginAt)

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: "wrong-password"})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid email or password")

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "nobody@example.com", Password: "whatever"})
	requireAppError(t, err, http.StatusUnauthorized, "Invalid email or password")
}

func TestLogin_DeactivatedAccount(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleUser)
	require.NoError(t, f.db.Model(user).Update("is_active", false).Error)

	_, err := f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: testutil.DefaultPassword})
	requireAppError(t, err, http.StatusUnauthorized, "User account is deactivated")
}

func TestUpdateProfile_EmailUniqueness(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleUser)
	other := testutil.CreateUser(t, f.db, models.UserRoleUser)

	_, err := f.services.AuthService.UpdateProfile(f.ctx, f.db, user.ID, &dto.UpdateProfileRequest{Name: "Same", Email: other.Email})
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	updated, err := f.services.AuthService.UpdateProfile(f.ctx, f.db, user.ID, &dto.UpdateProfileRequest{Name: "New Name", Email: "NEW@example.com"})
	require.NoError(t, err)
	assert.Equal(t, "New Name", updated.Name)
	assert.Equal(t, "new@example.com", updated.Email)
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	user := testutil.CreateUser(t, f.db, models.UserRoleUser)

	err := f.services.AuthService.ChangePassword(f.ctx, f.db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: "not-it", NewPassword: "brand-new",
	})
	requireAppError(t, err, http.StatusBadRequest, "Current password is incorrect")

	require.NoError(t, f.services.AuthService.ChangePassword(f.ctx, f.db, user.ID, &dto.ChangePasswordRequest{
		CurrentPassword: testutil.DefaultPassword, NewPassword: "brand-new",
	}))

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: user.Email, Password: "brand-new"})
	assert.NoError(t, err)
}

func TestMe_UnknownUser(t *testing.T) {
	f := newFixture(t)

	_, err := f.services.AuthService.Me(f.ctx, f.db, "missing")
	requireAppError(t, err, http.StatusNotFound, "User not found")
}

func TestSeedFirstAdmin(t *testing.T) {
	f := newFixture(t)

	none, err := f.services.AuthService.SeedFirstAdmin(f.ctx, f.db, "", "")
	require.NoError(t, err)
	assert.Nil(t, none)

	admin, err := f.services.AuthService.SeedFirstAdmin(f.ctx, f.db, "Boss@Triveni.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleAdmin, admin.Role)
	assert.Equal(t, "boss@triveni.com", admin.Email)

	again, err := f.services.AuthService.SeedFirstAdmin(f.ctx, f.db, "boss@triveni.com", "another-password")
	require.NoError(t, err)
	assert.Equal(t, admin.ID, again.ID)

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: "boss@triveni.com", Password: "s3cret!"})
	assert.NoError(t, err, "существующий администратор не меняется")
}

func TestResetAdminPassword(t *testing.T) {
	f := newFixture(t)

	created, isNew, err := f.services.AuthService.ResetAdminPassword(f.ctx, f.db, "")
	require.NoError(t, err)
	assert.True(t, isNew)
	assert.Equal(t, DefaultAdminEmail, created.Email)

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: DefaultAdminEmail, Password: DefaultAdminPassword})
	require.NoError(t, err)

	reset, isNew, err := f.services.AuthService.ResetAdminPassword(f.ctx, f.db, "rotated-pw")
	require.NoError(t, err)
	assert.False(t, isNew)
	assert.Equal(t, created.ID, reset.ID)

	_, err = f.services.AuthService.Login(f.ctx, f.db, &dto.LoginRequest{Email: DefaultAdminEmail, Password: "rotated-pw"})
	assert.NoError(t, err)

	_, _, err = f.services.AuthService.ResetAdminPassword(f.ctx, f.db, "123")
	assert.Contains(t, validationFields(t, err), "password")
}
