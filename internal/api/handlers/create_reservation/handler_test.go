package create_reservation

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	createReservation "github.com/m04kA/juice-reservations/internal/usecase/create_reservation"
	"github.com/m04kA/juice-reservations/pkg/logger"
)

type useCaseStub struct {
	got  *createReservation.Request
	resp *createReservation.Response
	err  error
}

func (s *useCaseStub) Execute(_ context.Context, req *createReservation.Request) (*createReservation.Response, error) {
	s.got = req
	return s.resp, s.err
}

func serve(h *Handler, slotID, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/"+slotID+"/reservations", strings.NewReader(body))
	req = mux.SetURLVars(req, map[string]string{"slotId": slotID})
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

const validBody = `{"firstName":" Jean ","lastName":"Dupont","phone":"0470123456","quantity":2,"comment":"  ","email":""}`

func TestHandle_ErrorMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad", createReservation.ErrInvalidInput), http.StatusBadRequest},
		{createReservation.ErrSlotNotFound, http.StatusNotFound},
		{createReservation.ErrSlotStarted, http.StatusConflict},
		{createReservation.ErrNotConfigured, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: db down", createReservation.ErrInternal), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			h := NewHandler(&useCaseStub{err: tt.err}, time.UTC, logger.Nop())
			rec := serve(h, "7", validBody)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}

func TestHandle_NormalizesInput(t *testing.T) {
	stub := &useCaseStub{resp: &createReservation.Response{ManageURL: "http://x/reservations/t"}}
	stub.resp.Reservation.Token = "t"
	stub.resp.Reservation.StartAt = time.Date(2025, 10, 1, 7, 0, 0, 0, time.UTC)

	rec := serve(NewHandler(stub, time.UTC, logger.Nop()), "7", validBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.NotNil(t, stub.got)
	assert.Equal(t, int64(7), stub.got.SlotID)
	assert.Equal(t, "Jean", stub.got.FirstName)
	assert.Nil(t, stub.got.Comment)
	assert.Nil(t, stub.got.Email)
	assert.Contains(t, rec.Body.String(), `"token":"t"`)
	assert.Contains(t, rec.Body.String(), `"time":"07:00"`)
}

func TestHandle_RejectsBeforeUseCase(t *testing.T) {
	stub := &useCaseStub{}
	h := NewHandler(stub, time.UTC, logger.Nop())

	assert.Equal(t, http.StatusBadRequest, serve(h, "abc", validBody).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", `{"firstName":`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", `{"firstName":"J","lastName":"D","phone":"0470123456","quantity":11}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, "7", `{"firstName":"J","lastName":"D","phone":"0470123456","quantity":1,"email":"nope"}`).Code)
	assert.Nil(t, stub.got)
}
