package admin_logout

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/api/middleware"
	"github.com/m04kA/juice-reservations/internal/service/auth"
	"github.com/m04kA/juice-reservations/pkg/logger"
)

var cookie = middleware.SessionCookie{Name: "admin_session"}

func logout(h *Handler, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/logout", nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: cookie.Name, Value: token})
	}
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandle_RevokesSession(t *testing.T) {
	ctx := context.Background()
	svc, err := auth.NewService(auth.Config{Password: "pommes", SessionSecret: "s"}, logger.Nop())
	require.NoError(t, err)
	token, _, err := svc.Login("pommes")
	require.NoError(t, err)
	require.NoError(t, svc.Verify(ctx, token))

	rec := logout(NewHandler(svc, cookie, logger.Nop()), token)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)

	// скопированный до выхода токен больше не принимается
	assert.ErrorIs(t, svc.Verify(ctx, token), auth.ErrInvalidSession)
}

func TestHandle_WithoutSession(t *testing.T) {
	svc, err := auth.NewService(auth.Config{Password: "pommes", SessionSecret: "s"}, logger.Nop())
	require.NoError(t, err)
	h := NewHandler(svc, cookie, logger.Nop())

	assert.Equal(t, http.StatusOK, logout(h, "").Code)
	assert.Equal(t, http.StatusOK, logout(h, "garbage").Code)
}

type failingRevoker struct{}

func (failingRevoker) Logout(context.Context, string) error {
	return errors.New("redis down")
}

func TestHandle_RevocationFails(t *testing.T) {
	rec := logout(NewHandler(failingRevoker{}, cookie, logger.Nop()), "token")

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.Len(t, rec.Result().Cookies(), 1)
	assert.Equal(t, -1, rec.Result().Cookies()[0].MaxAge)
}
