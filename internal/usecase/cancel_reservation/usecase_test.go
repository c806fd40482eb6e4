package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage/memory"
	"github.com/m04kA/juice-reservations/internal/service/reservations"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/metrics"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

var slotStart = time.Date(2025, 10, 1, 7, 0, 0, 0, time.UTC)

func seed(t *testing.T) *reservations.Service {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	p, err := store.Presences().Create(ctx, &domain.Presence{Location: "Place", Date: "2025-10-01", StartTime: "09:00", EndTime: "09:15"})
	require.NoError(t, err)
	require.NoError(t, store.Presences().CreateSlots(ctx, p.ID, []time.Time{slotStart}))
	slots, err := store.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{})
	require.NoError(t, err)

	_, err = store.Reservations().Create(ctx, &domain.Reservation{SlotID: slots[0].SlotID, Quantity: 3, Token: "tok"})
	require.NoError(t, err)

	return reservations.NewService(store.Reservations(), nil, logger.Nop())
}

func TestExecute_CancelsBeforeStart(t *testing.T) {
	ledger := seed(t)
	m := metrics.New("test")
	uc := NewUseCase(ledger, m, logger.Nop()).WithTimeProvider(&fixedClock{now: slotStart.Add(-time.Minute)})

	cancelled, err := uc.Execute(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, 3, cancelled.Quantity)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.ReservationsCancelled))

	_, err = ledger.GetByToken(context.Background(), "tok")
	assert.ErrorIs(t, err, reservations.ErrNotFound)

	_, err = uc.Execute(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_TooLate(t *testing.T) {
	ledger := seed(t)
	uc := NewUseCase(ledger, nil, logger.Nop()).WithTimeProvider(&fixedClock{now: slotStart})

	_, err := uc.Execute(context.Background(), "tok")
	assert.ErrorIs(t, err, ErrNotModifiable)
	assert.NotErrorIs(t, err, ErrReservationNotFound)

	_, err = ledger.GetByToken(context.Background(), "tok")
	assert.NoError(t, err, "reservation survives a rejected cancel")
}
