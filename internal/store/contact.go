// Package store persists contact-form submissions. Rows are append-only;
// each submission is a single atomic insert, so there are no partial writes.
package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/deannos/solutions-company-website/internal/models"
	"github.com/deannos/solutions-company-website/internal/util"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ContactStore records contact submissions and serves them back, most
// recent first.
type ContactStore struct {
	db *gorm.DB
}

func NewContactStore(db *gorm.DB) *ContactStore {
	return &ContactStore{db: db}
}

// SubmitInput is the validated shape of one submission. Company and Phone
// are optional.
type SubmitInput struct {
	Name    string
	Email   string
	Company string
	Phone   string
	Message string
}

// Submit validates the input and persists one message.
func (s *ContactStore) Submit(ctx context.Context, in SubmitInput) (*models.ContactMessage, error) {
	if err := validateSubmit(in); err != nil {
		return nil, err
	}

	msg := models.ContactMessage{
		Name:    strings.TrimSpace(in.Name),
		Email:   strings.TrimSpace(in.Email),
		Company: strings.TrimSpace(in.Company),
		Phone:   strings.TrimSpace(in.Phone),
		Message: in.Message,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		logrus.WithError(err).Error("failed to save contact message")
		return nil, fmt.Errorf("%w: create contact message: %v", ErrStorage, err)
	}
	return &msg, nil
}

// ListAll returns every stored message ordered by creation time descending,
// with id as a stable tiebreak for equal timestamps. Repeated calls have no
// side effects.
func (s *ContactStore) ListAll(ctx context.Context) ([]models.ContactMessage, error) {
	var msgs []models.ContactMessage
	if err := s.db.WithContext(ctx).
		Order("created_at DESC, id DESC").
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("%w: list contact messages: %v", ErrStorage, err)
	}
	return msgs, nil
}

// DayCount is one chart bucket: submissions received on a calendar day.
type DayCount struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int    `json:"count"`
}

// DailyStats returns per-day submission counts for the last `days` days
// including today, zero-filled and oldest first. Grouping happens in Go so
// the query stays portable across sqlite and postgres.
func (s *ContactStore) DailyStats(ctx context.Context, days int) ([]DayCount, error) {
	if days <= 0 {
		days = 30
	}

	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	start := today.AddDate(0, 0, -(days - 1))

	var msgs []models.ContactMessage
	if err := s.db.WithContext(ctx).
		Where("created_at >= ?", start).
		Find(&msgs).Error; err != nil {
		return nil, fmt.Errorf("%w: load contact messages: %v", ErrStorage, err)
	}

	counts := make(map[string]int, days)
	for i := range msgs {
		counts[msgs[i].CreatedAt.Format("2006-01-02")]++
	}

	stats := make([]DayCount, 0, days)
	for d := start; !d.After(today); d = d.AddDate(0, 0, 1) {
		key := d.Format("2006-01-02")
		stats = append(stats, DayCount{Date: key, Count: counts[key]})
	}
	return stats, nil
}

func validateSubmit(in SubmitInput) error {
	if err := util.ValidateRequired("name", in.Name, 128); err != nil {
		return &ValidationError{Field: "name", Reason: err.Error()}
	}
	if err := util.ValidateEmail(in.Email); err != nil {
		return &ValidationError{Field: "email", Reason: err.Error()}
	}
	if err := util.ValidateRequired("message", in.Message, 10000); err != nil {
		return &ValidationError{Field: "message", Reason: err.Error()}
	}
	return nil
}
