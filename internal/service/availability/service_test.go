package availability

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage/memory"
	"github.com/m04kA/juice-reservations/internal/service/availability/models"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/metrics"
	"github.com/m04kA/juice-reservations/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

func newTestService(t *testing.T, now time.Time) (*Service, *memory.Store, *metrics.Metrics) {
	t.Helper()
	store := memory.NewStore()
	m := metrics.New("test")
	svc := NewService(store.Presences(), store, m, time.UTC, logger.Nop())
	svc.timeProvider = &fixedClock{now: now}
	return svc, store, m
}

func presenceRequest(location, date, start, end string) models.CreatePresenceRequest {
	return models.CreatePresenceRequest{
		Location:  location,
		Date:      date,
		StartTime: types.MustTimeString(start),
		EndTime:   types.MustTimeString(end),
	}
}

func TestService_CreatePresence(t *testing.T) {
	now := time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC)
	svc, _, m := newTestService(t, now)
	ctx := context.Background()

	created, err := svc.CreatePresence(ctx, presenceRequest("  Place  ", "2025-10-01", "09:00", "10:00"))
	require.NoError(t, err)
	assert.NotZero(t, created.Presence.ID)
	assert.Equal(t, "Place", created.Presence.Location)
	assert.Len(t, created.Slots, 4)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.PresencesCreated))

	slots, err := svc.ListUpcomingSlots(ctx, domain.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, slots, 4)
	for _, s := range slots {
		assert.Equal(t, created.Presence.ID, s.PresenceID)
	}
}

func TestService_CreatePresence_ShortWindowHasNoSlots(t *testing.T) {
	svc, _, _ := newTestService(t, time.Date(2025, 9, 30, 12, 0, 0, 0, time.UTC))

	created, err := svc.CreatePresence(context.Background(), presenceRequest("Place", "2025-10-01", "09:00", "09:10"))
	require.NoError(t, err)
	assert.Empty(t, created.Slots)

	presences, err := svc.ListPresences(context.Background())
	require.NoError(t, err)
	assert.Len(t, presences, 1)
}

func TestService_CreatePresence_Invalid(t *testing.T) {
	svc, _, _ := newTestService(t, time.Now())
	ctx := context.Background()

	_, err := svc.CreatePresence(ctx, presenceRequest("Place", "2025-10-01", "10:00", "09:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePresence(ctx, presenceRequest("   ", "2025-10-01", "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreatePresence(ctx, presenceRequest("Place", "1 oct", "09:00", "10:00"))
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_ListUpcomingSlots_HidesPastSlots(t *testing.T) {
	// now = 09:20 в день присутствия: 09:00 и 09:15 уже прошли
	now := time.Date(2025, 10, 1, 9, 20, 0, 0, time.UTC)
	svc, _, _ := newTestService(t, now)
	ctx := context.Background()

	_, err := svc.CreatePresence(ctx, presenceRequest("Place", "2025-10-01", "09:00", "10:00"))
	require.NoError(t, err)

	slots, err := svc.ListUpcomingSlots(ctx, domain.SlotFilter{Location: " pla "})
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "09:30", slots[0].StartAt.Format("15:04"))
}

func TestService_GetSlotAndDeletePresence(t *testing.T) {
	svc, store, _ := newTestService(t, time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC))
	ctx := context.Background()

	created, err := svc.CreatePresence(ctx, presenceRequest("Place", "2025-10-01", "09:00", "09:30"))
	require.NoError(t, err)

	slots, err := svc.ListUpcomingSlots(ctx, domain.SlotFilter{})
	require.NoError(t, err)
	require.Len(t, slots, 2)

	_, err = store.Reservations().Create(ctx, &domain.Reservation{SlotID: slots[0].SlotID, Token: "tok", Quantity: 1})
	require.NoError(t, err)

	got, err := svc.GetSlotByID(ctx, slots[0].SlotID)
	require.NoError(t, err)
	assert.Equal(t, "Place", got.Location)

	_, err = svc.GetSlotByID(ctx, 424242)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, svc.DeletePresence(ctx, created.Presence.ID))
	assert.ErrorIs(t, svc.DeletePresence(ctx, created.Presence.ID), ErrNotFound)

	_, err = svc.GetSlotByID(ctx, slots[0].SlotID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Reservations().GetByToken(ctx, "tok")
	assert.Error(t, err, "reservations are removed together with the presence")
}

func TestGroupSlots(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2025, 10, 1, h, 0, 0, 0, time.UTC) }
	slots := []domain.SlotView{
		{SlotID: 1, Date: "2025-10-01", Location: "A", StartAt: at(9)},
		{SlotID: 2, Date: "2025-10-01", Location: "A", StartAt: at(10)},
		{SlotID: 3, Date: "2025-10-01", Location: "B", StartAt: at(9)},
		{SlotID: 4, Date: "2025-10-02", Location: "A", StartAt: at(9)},
	}

	groups := GroupSlots(slots)
	require.Len(t, groups, 2)
	require.Len(t, groups[0].Locations, 2)
	assert.Len(t, groups[0].Locations[0].Slots, 2)
	assert.Equal(t, "B", groups[0].Locations[1].Location)
	assert.Equal(t, "2025-10-02", groups[1].Date)

	assert.Empty(t, GroupSlots(nil))
}
