package update_reservation

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/juice-reservations/internal/domain"
	modifyReservation "github.com/m04kA/juice-reservations/internal/usecase/modify_reservation"
	"github.com/m04kA/juice-reservations/pkg/logger"
)

type useCaseStub struct {
	got *modifyReservation.Request
	err error
}

func (s *useCaseStub) Execute(_ context.Context, req *modifyReservation.Request) (*domain.ReservationView, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &domain.ReservationView{Reservation: domain.Reservation{Token: req.Token, Quantity: req.Update.Quantity}}, nil
}

func serve(stub *useCaseStub, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPut, "/api/v1/reservations/tok", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"token": "tok"})
	rec := httptest.NewRecorder()
	NewHandler(stub, time.UTC, logger.Nop()).Handle(rec, req)
	return rec
}

const body = `{"firstName":"Marie","lastName":"Curie","phone":"+32 470 11 22 33","quantity":4}`

func TestHandle(t *testing.T) {
	stub := &useCaseStub{}
	rec := serve(stub, body)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "tok", stub.got.Token)
	assert.Equal(t, 4, stub.got.Update.Quantity)

	assert.Equal(t, http.StatusForbidden, serve(&useCaseStub{err: modifyReservation.ErrNotModifiable}, body).Code)
	assert.Equal(t, http.StatusNotFound, serve(&useCaseStub{err: modifyReservation.ErrReservationNotFound}, body).Code)
	assert.Equal(t, http.StatusServiceUnavailable, serve(&useCaseStub{err: modifyReservation.ErrNotConfigured}, body).Code)
	assert.Equal(t, http.StatusBadRequest, serve(&useCaseStub{}, `{"firstName":"","lastName":"C","phone":"0470123456","quantity":1}`).Code)
}
