package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/eventra-api/models"
)

// setupTestDB prepares an in-memory SQLite database for testing.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to initialize test database")

	err = db.AutoMigrate(&models.User{}, &models.Event{}, &models.Registration{})
	require.NoError(t, err, "failed to migrate tables")

	return db
}

// fakeMailer records outgoing mail instead of sending it.
type fakeMailer struct {
	enabled bool
	sent    []sentMail
}

type sentMail struct {
	To      string
	Subject string
}

func (m *fakeMailer) Enabled() bool { return m.enabled }

func (m *fakeMailer) Send(ctx context.Context, to, subject, htmlBody, textBody string) error {
	if !m.enabled {
		return nil
	}
	m.sent = append(m.sent, sentMail{To: to, Subject: subject})
	return nil
}

// fakeImageStore returns a deterministic URL without touching object storage.
type fakeImageStore struct {
	uploads int
	deleted []string
}

func (s *fakeImageStore) UploadImage(ctx context.Context, data []byte, ownerID, pathPrefix string) (string, error) {
	s.uploads++
	return fmt.Sprintf("https://cdn.test/%s/%s-%d.webp", pathPrefix, ownerID, s.uploads), nil
}

func (s *fakeImageStore) DeleteByURL(ctx context.Context, url string) error {
	s.deleted = append(s.deleted, url)
	return nil
}
