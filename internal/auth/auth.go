package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/session"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 12

// dummyHash is compared against when the username does not exist, so the
// not-found and wrong-password paths cost roughly the same.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), bcryptCost)

// Authenticator verifies administrator identity and owns the session
// lifecycle. The session backend is injected, so the contract does not care
// whether records live in the database or in Redis.
type Authenticator struct {
	db       *gorm.DB
	sessions session.Repository
	ttl      time.Duration
}

func New(db *gorm.DB, sessions session.Repository, ttl time.Duration) *Authenticator {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &Authenticator{db: db, sessions: sessions, ttl: ttl}
}

// Login verifies the credentials and establishes a new session. Username
// matching is exact and case-sensitive.
func (a *Authenticator) Login(ctx context.Context, username, password string) (*models.User, *session.Record, error) {
	var user models.User
	err := a.db.WithContext(ctx).First(&user, "username = ?", username).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// burn a compare anyway, then fail identically
			_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	rec, err := a.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("admin logged in")
	return &user, rec, nil
}

// Logout destroys the session record. Destroying an absent session is fine.
func (a *Authenticator) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	if err := a.sessions.Delete(ctx, token); err != nil {
		return fmt.Errorf("%w: destroy session: %v", ErrStorage, err)
	}
	return nil
}

// Register creates a new administrator and immediately establishes a session
// for it, so registering doubles as logging in.
func (a *Authenticator) Register(ctx context.Context, username, password string) (*models.User, *session.Record, error) {
	username = strings.TrimSpace(username)

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, nil, fmt.Errorf("hash password: %w", err)
	}

	// no pre-check: the unique index on username decides, so two
	// concurrent registrations cannot both get through
	user := models.User{Username: username, PasswordHash: string(hash)}
	if err := a.db.WithContext(ctx).Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, nil, ErrUsernameTaken
		}
		return nil, nil, fmt.Errorf("%w: create user: %v", ErrStorage, err)
	}

	rec, err := a.createSession(ctx, user.ID)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithFields(logrus.Fields{"user_id": user.ID, "username": user.Username}).Info("admin registered")
	return &user, rec, nil
}

// CurrentUser resolves a token to its user. It returns (nil, nil) when the
// session is missing, expired, or dangling; a dangling session (user row
// gone) is destroyed on the spot.
func (a *Authenticator) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, nil
	}
	rec, err := a.sessions.Get(ctx, token)
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: get session: %v", ErrStorage, err)
	}

	var user models.User
	if err := a.db.WithContext(ctx).First(&user, rec.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_ = a.sessions.Delete(ctx, token)
			return nil, nil
		}
		return nil, fmt.Errorf("%w: find user: %v", ErrStorage, err)
	}
	return &user, nil
}

func (a *Authenticator) createSession(ctx context.Context, userID uint) (*session.Record, error) {
	rec := session.Record{
		Token:     session.NewToken(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(a.ttl),
	}
	if err := a.sessions.Put(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: create session: %v", ErrStorage, err)
	}
	return &rec, nil
}

// TTL reports the configured session lifetime (used for cookie max-age).
func (a *Authenticator) TTL() time.Duration {
	return a.ttl
}
