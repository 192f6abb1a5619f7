package auth

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/deannos/solutions-company-website/internal/config"
	"github.com/deannos/solutions-company-website/internal/database"
	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestAuthenticator(t *testing.T) (*Authenticator, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return New(db, session.NewGormRepository(db), time.Hour), db
}

func TestRegisterThenLogin(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	user, rec, err := a.Register(ctx, "admin", "correct horse battery")
	require.NoError(t, err)
	require.NotNil(t, user)
	require.NotNil(t, rec, "register doubles as login")
	assert.Equal(t, user.ID, rec.UserID)
	assert.NotEmpty(t, rec.Token)

	got, rec2, err := a.Login(ctx, "admin", "correct horse battery")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEqual(t, rec.Token, rec2.Token, "each login gets its own session")
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, _, err := a.Register(ctx, "admin", "correct horse battery")
	require.NoError(t, err)

	_, _, errWrongPassword := a.Login(ctx, "admin", "wrong")
	_, _, errUnknownUser := a.Login(ctx, "nobody", "wrong")

	assert.ErrorIs(t, errWrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, errUnknownUser, ErrInvalidCredentials)
	assert.Equal(t, errWrongPassword.Error(), errUnknownUser.Error())
}

func TestLoginIsCaseSensitive(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, _, err := a.Register(ctx, "Admin", "correct horse battery")
	require.NoError(t, err)

	_, _, err = a.Login(ctx, "admin", "correct horse battery")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	a, db := newTestAuthenticator(t)
	ctx := context.Background()

	first, firstRec, err := a.Register(ctx, "admin", "correct horse battery")
	require.NoError(t, err)

	// the second insert loses on the unique index; that must surface as
	// a taken username, not as a storage failure
	_, _, err = a.Register(ctx, "admin", "another password!")
	assert.ErrorIs(t, err, ErrUsernameTaken)
	assert.NotErrorIs(t, err, ErrStorage)

	// the failed attempt must not disturb the first registration
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	got, err := a.CurrentUser(ctx, firstRec.Token)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
}

func TestCurrentUserAfterLogout(t *testing.T) {
	a, _ := newTestAuthenticator(t)
	ctx := context.Background()

	_, rec, err := a.Register(ctx, "admin", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, a.Logout(ctx, rec.Token))

	got, err := a.CurrentUser(ctx, rec.Token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// logout is idempotent
	require.NoError(t, a.Logout(ctx, rec.Token))
}

func TestCurrentUserUnknownToken(t *testing.T) {
	a, _ := newTestAuthenticator(t)

	got, err := a.CurrentUser(context.Background(), session.NewToken())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = a.CurrentUser(context.Background(), "")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCurrentUserDanglingSession(t *testing.T) {
	a, db := newTestAuthenticator(t)
	ctx := context.Background()

	user, rec, err := a.Register(ctx, "admin", "correct horse battery")
	require.NoError(t, err)

	require.NoError(t, db.Delete(&models.User{}, user.ID).Error)

	got, err := a.CurrentUser(ctx, rec.Token)
	require.NoError(t, err)
	assert.Nil(t, got)

	// the dangling record must have been discarded
	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("token = ?", rec.Token).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureAdmin(t *testing.T) {
	a, db := newTestAuthenticator(t)
	ctx := context.Background()

	require.NoError(t, EnsureAdmin(db, config.AdminConfig{Username: "admin", InitialPassword: "first boot pass"}))

	user, _, err := a.Login(ctx, "admin", "first boot pass")
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)

	// second boot is a no-op
	require.NoError(t, EnsureAdmin(db, config.AdminConfig{Username: "admin", InitialPassword: "other"}))
	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestEnsureAdminGeneratesPassword(t *testing.T) {
	_, db := newTestAuthenticator(t)

	require.NoError(t, EnsureAdmin(db, config.AdminConfig{Username: "admin"}))

	var user models.User
	require.NoError(t, db.First(&user, "username = ?", "admin").Error)
	assert.NotEmpty(t, user.PasswordHash)
	assert.NotContains(t, user.PasswordHash, "admin123", "the well-known default must never be seeded")
}
