package create_reservation

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage/backend"
	"github.com/m04kA/juice-reservations/internal/infra/storage/memory"
	"github.com/m04kA/juice-reservations/internal/integrations/mailer"
	"github.com/m04kA/juice-reservations/internal/service/availability"
	availabilityModels "github.com/m04kA/juice-reservations/internal/service/availability/models"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type fakeMailer struct {
	sent []mailer.Confirmation
	err  error
}

func (f *fakeMailer) SendConfirmation(_ context.Context, c mailer.Confirmation) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, c)
	return nil
}

type fixture struct {
	uc     *UseCase
	mail   *fakeMailer
	m      *metrics.Metrics
	slots  []domain.SlotView
	clock  *fixedClock
	ledger *reservations.Service
}

// slotStart 2025-10-01 09:00 UTC
var slotStart = time.Date(2025, 10, 1, 9, 0, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	log := logger.Nop()
	m := metrics.New("test")

	avail := availability.NewService(store.Presences(), store, m, time.UTC, log)
	_, err := avail.CreatePresence(ctx, availabilityModels.CreatePresenceRequest{
		Location: "Place X", Date: "2025-10-01", StartTime: "09:00", EndTime: "09:30",
	})
	require.NoError(t, err)

	slots, err := store.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	ledger := reservations.NewService(store.Reservations(), nil, log)
	mail := &fakeMailer{}
	uc := NewUseCase(avail, ledger, mail, m, "https://jus.example/", log)
	clock := &fixedClock{now: slotStart.Add(-time.Hour)}
	uc.timeProvider = clock

	return &fixture{uc: uc, mail: mail, m: m, slots: slots, clock: clock, ledger: ledger}
}

func request(slotID int64) *Request {
	email := "jean@example.org"
	return &Request{SlotID: slotID, FirstName: "Jean", LastName: "Dupont", Phone: "0470123456", Quantity: 2, Email: &email}
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), request(f.slots[0].SlotID))
	require.NoError(t, err)

	assert.True(t, resp.EmailSent)
	assert.Equal(t, "Place X", resp.Reservation.Location)
	assert.Equal(t, "2025-10-01", resp.Reservation.Date)
	assert.True(t, resp.Reservation.StartAt.Equal(slotStart))
	assert.Equal(t, "https://jus.example/reservations/"+resp.Reservation.Token, resp.ManageURL)

	require.Len(t, f.mail.sent, 1)
	assert.Equal(t, "jean@example.org", f.mail.sent[0].To)
	assert.Equal(t, resp.ManageURL, f.mail.sent[0].ManageURL())
	assert.Equal(t, "https://jus.example/", f.mail.sent[0].BaseURL)
	assert.Equal(t, resp.Reservation.Token, f.mail.sent[0].Reservation.Token)
	assert.Equal(t, resp.Reservation.Phone, f.mail.sent[0].Reservation.Phone)
	assert.Equal(t, resp.Reservation.Date, f.mail.sent[0].Reservation.Date)
	assert.NotEmpty(t, f.mail.sent[0].Reservation.Phone)
	assert.NotEmpty(t, f.mail.sent[0].Reservation.Date)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.ReservationsCreated))

	stored, err := f.ledger.GetByToken(context.Background(), resp.Reservation.Token)
	require.NoError(t, err)
	assert.Equal(t, 2, stored.Quantity)
}

func TestExecute_WithoutEmail(t *testing.T) {
	f := newFixture(t)
	req := request(f.slots[0].SlotID)
	req.Email = nil

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
	assert.Empty(t, f.mail.sent)
}

func TestExecute_EmailFailureKeepsReservation(t *testing.T) {
	f := newFixture(t)
	f.mail.err = errors.New("smtp down")

	resp, err := f.uc.Execute(context.Background(), request(f.slots[0].SlotID))
	require.NoError(t, err)
	assert.False(t, resp.EmailSent)
	assert.Equal(t, float64(1), testutil.ToFloat64(f.m.EmailsFailed))

	_, err = f.ledger.GetByToken(context.Background(), resp.Reservation.Token)
	assert.NoError(t, err)
}

func TestExecute_SlotNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), request(987654))
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestExecute_SlotStarted(t *testing.T) {
	f := newFixture(t)

	f.clock.now = slotStart
	_, err := f.uc.Execute(context.Background(), request(f.slots[0].SlotID))
	assert.ErrorIs(t, err, ErrSlotStarted, "the slot start instant is already too late")

	// Второй слот (09:15) ещё доступен
	_, err = f.uc.Execute(context.Background(), request(f.slots[1].SlotID))
	assert.NoError(t, err)
}

func TestExecute_InvalidInput(t *testing.T) {
	f := newFixture(t)

	req := request(f.slots[0].SlotID)
	req.Quantity = 11
	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)

	req = request(f.slots[0].SlotID)
	req.FirstName = "  "
	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_Unconfigured(t *testing.T) {
	b := backend.NewUnconfigured()
	log := logger.Nop()
	avail := availability.NewService(b.Presences(), b.TxManager(), nil, time.UTC, log)
	ledger := reservations.NewService(b.Reservations(), nil, log)
	uc := NewUseCase(avail, ledger, &fakeMailer{}, nil, "http://localhost", log)

	_, err := uc.Execute(context.Background(), request(1))
	assert.ErrorIs(t, err, ErrSlotNotFound, "unconfigured storage has no slots")
}
