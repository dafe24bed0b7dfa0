package handlers

import (
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/tastebook/backend/internal/apperr"
	"github.com/tastebook/backend/internal/models"
	"github.com/tastebook/backend/internal/repositories"
	"github.com/tastebook/backend/validators"
)

type stubNotificationRepo struct {
	created []models.Notification
}

func (s *stubNotificationRepo) CreateNotification(n *models.Notification) error {
	s.created = append(s.created, *n)
	return nil
}

func (s *stubNotificationRepo) GetByRecipientID(uint, int, int) ([]models.Notification, int64, error) {
	return nil, 0, nil
}
func (s *stubNotificationRepo) GetUnreadCount(uint) (int64, error) { return 0, nil }
func (s *stubNotificationRepo) MarkAsRead(uint, uint) error        { return nil }
func (s *stubNotificationRepo) MarkAllAsRead(uint) error           { return nil }

type fakeUserRepo struct {
	repositories.UserRepository
	users map[uint]*models.User
}

func (f *fakeUserRepo) GetUserByID(id uint) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, apperr.New(apperr.NotFound, "user not found")
}

func newJSONContext(method, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validators.NewValidator()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}
