package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"birthday_reminder/internal/app"
	"birthday_reminder/internal/domain/birthday"
	"birthday_reminder/internal/domain/notification"
	idb "birthday_reminder/internal/infra/database"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) Send(ctx context.Context, b *birthday.Birthday, cfg *notification.Config) bool {
	return m.Called(ctx, b, cfg).Bool(0)
}

type testServer struct {
	*Server
	notifier *MockNotifier
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	db := idb.NewTestDB(t)
	birthdays := idb.NewSQLBirthdayRepository(db)
	settings := idb.NewSQLSettingsRepository(db)
	notifier := &MockNotifier{}
	now := func() time.Time { return time.Date(2024, time.June, 15, 10, 0, 0, 0, time.UTC) }

	srv := NewServer(Services{
		Birthdays: app.NewBirthdayService(birthdays, logger, now),
		Reminders: app.NewReminderService(birthdays, settings, notifier, logger, now),
		Settings:  app.NewSettingsService(settings, logger),
		Templates: app.NewTemplateService(idb.NewSQLTemplateRepository(db), logger),
		DB:        db,
	}, logger, "*")
	return &testServer{Server: srv, notifier: notifier}
}

func (ts *testServer) do(t *testing.T, method, path string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := ts.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 {
		out["items"] = decodeList(t, raw)
	}
	return resp.StatusCode, out
}

func decodeList(t *testing.T, raw []byte) []interface{} {
	t.Helper()
	var list []interface{}
	require.NoError(t, json.Unmarshal(raw, &list))
	return list
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, "ok", body["database"])

	code, body = ts.do(t, http.MethodGet, "/api/", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Birthday Reminder API", body["message"])
}

func TestBirthdayCRUD(t *testing.T) {
	ts := newTestServer(t)

	code, created := ts.do(t, http.MethodPost, "/api/birthdays", map[string]string{
		"name": "Ann", "birth_date": "1990-07-01", "relation": "Sister",
	})
	require.Equal(t, http.StatusOK, code)
	id, _ := created["id"].(string)
	require.NotEmpty(t, id)
	assert.Nil(t, created["last_reminder_sent"])

	code, got := ts.do(t, http.MethodGet, "/api/birthdays/"+id, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Ann", got["name"])

	code, list := ts.do(t, http.MethodGet, "/api/birthdays", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, list["items"], 1)

	code, updated := ts.do(t, http.MethodPut, "/api/birthdays/"+id, map[string]string{"relation": "Friend"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Friend", updated["relation"])
	assert.Equal(t, "Ann", updated["name"])

	code, body := ts.do(t, http.MethodPut, "/api/birthdays/"+id, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No update data provided", body["detail"])

	code, upcoming := ts.do(t, http.MethodGet, "/api/birthdays/upcoming/list?days=30", nil)
	assert.Equal(t, http.StatusOK, code)
	items := upcoming["items"].([]interface{})
	require.Len(t, items, 1)
	first := items[0].(map[string]interface{})
	assert.EqualValues(t, 16, first["days_until"])
	assert.Equal(t, "2024-07-01", first["upcoming_date"])
	assert.EqualValues(t, 34, first["age"])

	code, body = ts.do(t, http.MethodDelete, "/api/birthdays/"+id, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Birthday deleted successfully", body["message"])

	code, body = ts.do(t, http.MethodGet, "/api/birthdays/"+id, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Birthday not found", body["detail"])
}

func TestCreateBirthday_Validation(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/birthdays", map[string]string{
		"name": "Ann", "birth_date": "someday", "relation": "Sister",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.NotEmpty(t, body["detail"])

	req := httptest.NewRequest(http.MethodPost, "/api/birthdays", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := ts.App().Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestEmailSettingsFlow(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/settings/email", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, false, body["is_configured"])
	assert.Equal(t, []interface{}{}, body["recipient_emails"])

	code, body = ts.do(t, http.MethodPost, "/api/settings/email/add-recipient?email=a@example.com", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email settings not configured", body["detail"])

	code, _ = ts.do(t, http.MethodPost, "/api/settings/email", map[string]interface{}{
		"gmail_address": "me@example.com", "app_password": "secret", "recipient_emails": []string{},
	})
	require.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, http.MethodPost, "/api/settings/email/add-recipient?email=a@example.com", nil)
	assert.Equal(t, http.StatusOK, code)

	code, body = ts.do(t, http.MethodGet, "/api/settings/email", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["is_configured"])
	assert.Equal(t, []interface{}{"a@example.com"}, body["recipient_emails"])
	assert.NotContains(t, body, "app_password")

	code, _ = ts.do(t, http.MethodPut, "/api/settings/email", map[string]string{"gmail_address": "new@example.com"})
	assert.Equal(t, http.StatusOK, code)

	code, _ = ts.do(t, http.MethodPost, "/api/settings/email/remove-recipient?email=a@example.com", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestSendReminderAndCheck(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodPost, "/api/birthdays/missing/send-reminder", nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Birthday not found", body["detail"])

	_, created := ts.do(t, http.MethodPost, "/api/birthdays", map[string]string{
		"name": "Ann", "birth_date": "1990-06-15", "relation": "Sister",
	})
	id := created["id"].(string)

	code, body = ts.do(t, http.MethodPost, "/api/birthdays/"+id+"/send-reminder", nil)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Email settings not configured", body["detail"])

	code, _ = ts.do(t, http.MethodPost, "/api/settings/email", map[string]string{
		"gmail_address": "me@example.com", "app_password": "secret",
	})
	require.Equal(t, http.StatusOK, code)

	ts.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(false).Once()
	code, body = ts.do(t, http.MethodPost, "/api/birthdays/"+id+"/send-reminder", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to send reminder", body["detail"])

	ts.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(true)
	code, body = ts.do(t, http.MethodPost, "/api/birthdays/"+id+"/send-reminder", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Reminder sent successfully!", body["message"])

	code, body = ts.do(t, http.MethodPost, "/api/check-birthdays", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Birthday check completed", body["message"])
	assert.EqualValues(t, 1, body["sent"])

	_, got := ts.do(t, http.MethodGet, "/api/birthdays/"+id, nil)
	assert.Equal(t, "2024", got["last_reminder_sent"])
}

func TestSendTestEmail(t *testing.T) {
	ts := newTestServer(t)

	code, _ := ts.do(t, http.MethodPost, "/api/settings/email/test", nil)
	assert.Equal(t, http.StatusBadRequest, code)

	ts.do(t, http.MethodPost, "/api/settings/email", map[string]string{
		"gmail_address": "me@example.com", "app_password": "secret",
	})
	ts.notifier.On("Send", mock.Anything, mock.Anything, mock.Anything).Return(false)

	code, body := ts.do(t, http.MethodPost, "/api/settings/email/test", nil)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to send test email. Check your credentials.", body["detail"])
}

func TestTemplates(t *testing.T) {
	ts := newTestServer(t)

	code, body := ts.do(t, http.MethodGet, "/api/templates", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, body["items"], 3)

	code, created := ts.do(t, http.MethodPost, "/api/templates", map[string]string{
		"name": "Short", "subject": "Hi {name}", "body": "HBD",
	})
	require.Equal(t, http.StatusOK, code)

	code, body = ts.do(t, http.MethodDelete, "/api/templates/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Template deleted", body["message"])

	code, body = ts.do(t, http.MethodDelete, "/api/templates/"+created["id"].(string), nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Template not found", body["detail"])
}

func TestUploadPhoto(t *testing.T) {
	ts := newTestServer(t)

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", "me.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("hi"))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload-photo", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	resp, err := ts.App().Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.True(t, strings.HasPrefix(body["photo_url"], "data:"))
	assert.True(t, strings.HasSuffix(body["photo_url"], ";base64,aGk="))
}
