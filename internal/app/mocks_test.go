package app

import (
	"context"
	"io"
	"time"

	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notification"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

// MockNotifier for testing
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, b *birthday.Birthday, cfg *notification.Config) bool {
	args := m.Called(ctx, b, cfg)
	return args.Bool(0)
}

// MockMailer for testing
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendMail(ctx context.Context, cfg *notification.Config, msg *notification.Message) error {
	args := m.Called(ctx, cfg, msg)
	return args.Error(0)
}

// MockTelegramClient for testing
type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendReminder(chatID int64, text string, birthdayID string) error {
	args := m.Called(chatID, text, birthdayID)
	return args.Error(0)
}

func testLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func fixedClock(t time.Time) Clock {
	return func() time.Time { return t }
}

func withID(id string) interface{} {
	return mock.MatchedBy(func(b *birthday.Birthday) bool { return b.ID == id })
}
