package session

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/deannos/solutions-company-website/internal/database"
	"github.com/deannos/solutions-company-website/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func newTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	user := models.User{Username: "admin", PasswordHash: "x"}
	require.NoError(t, db.Create(&user).Error)
	return &user
}

func TestGormRepository_PutGet(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewGormRepository(db)
	ctx := context.Background()

	rec := Record{Token: NewToken(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Put(ctx, rec))

	got, err := repo.Get(ctx, rec.Token)
	require.NoError(t, err)
	assert.Equal(t, rec.Token, got.Token)
	assert.Equal(t, user.ID, got.UserID)
	assert.WithinDuration(t, rec.ExpiresAt, got.ExpiresAt, time.Second)
}

func TestGormRepository_GetUnknownToken(t *testing.T) {
	repo := NewGormRepository(newTestDB(t))

	_, err := repo.Get(context.Background(), NewToken())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepository_GetExpiredRemovesRow(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewGormRepository(db)
	ctx := context.Background()

	rec := Record{Token: NewToken(), UserID: user.ID, ExpiresAt: time.Now().Add(-time.Minute)}
	require.NoError(t, repo.Put(ctx, rec))

	_, err := repo.Get(ctx, rec.Token)
	assert.ErrorIs(t, err, ErrNotFound)

	var count int64
	require.NoError(t, db.Model(&models.Session{}).Where("token = ?", rec.Token).Count(&count).Error)
	assert.Zero(t, count, "expired row should be removed lazily")
}

func TestGormRepository_DeleteIdempotent(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewGormRepository(db)
	ctx := context.Background()

	rec := Record{Token: NewToken(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	require.NoError(t, repo.Put(ctx, rec))

	require.NoError(t, repo.Delete(ctx, rec.Token))
	// deleting again is not an error
	require.NoError(t, repo.Delete(ctx, rec.Token))

	_, err := repo.Get(ctx, rec.Token)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormRepository_DeleteExpired(t *testing.T) {
	db := newTestDB(t)
	user := newTestUser(t, db)
	repo := NewGormRepository(db)
	ctx := context.Background()

	live := Record{Token: NewToken(), UserID: user.ID, ExpiresAt: time.Now().Add(time.Hour)}
	stale := Record{Token: NewToken(), UserID: user.ID, ExpiresAt: time.Now().Add(-time.Hour)}
	require.NoError(t, repo.Put(ctx, live))
	require.NoError(t, repo.Put(ctx, stale))

	removed, err := repo.DeleteExpired(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	_, err = repo.Get(ctx, live.Token)
	assert.NoError(t, err, "live session must survive cleanup")
}
