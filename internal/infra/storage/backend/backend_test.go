package backend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/juice-reservations/internal/config"
	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/internal/infra/storage/memory"
	"github.com/m04kA/juice-reservations/pkg/logger"
	"github.com/m04kA/juice-reservations/pkg/types"
)

var (
	day1 = "2030-05-10"
	day2 = "2030-05-11"
	t0   = time.Date(2030, time.May, 10, 7, 0, 0, 0, time.UTC)
)

// forEachBackend прогоняет один и тот же сценарий на SQLite и на памяти
func forEachBackend(t *testing.T, fn func(t *testing.T, b *Backend)) {
	t.Run("sqlite", func(t *testing.T) {
		b, err := OpenSQLite(context.Background(), ":memory:", true, nil)
		require.NoError(t, err)
		t.Cleanup(func() { _ = b.Close() })
		fn(t, b)
	})
	t.Run("memory", func(t *testing.T) {
		fn(t, NewMemory(memory.NewStore()))
	})
}

func seedPresence(t *testing.T, b *Backend, location, date string, starts ...time.Time) (*domain.Presence, []domain.SlotView) {
	t.Helper()
	ctx := context.Background()

	p := &domain.Presence{
		Location:  location,
		Date:      date,
		StartTime: types.MustTimeString("09:00"),
		EndTime:   types.MustTimeString("10:00"),
	}
	err := b.TxManager().Do(ctx, func(ctx context.Context) error {
		if _, err := b.Presences().Create(ctx, p); err != nil {
			return err
		}
		return b.Presences().CreateSlots(ctx, p.ID, starts)
	})
	require.NoError(t, err)

	day := domain.SlotFilter{Date: &date}
	slots, err := b.Presences().ListUpcoming(ctx, time.Time{}, day)
	require.NoError(t, err)

	own := make([]domain.SlotView, 0)
	for _, s := range slots {
		if s.PresenceID == p.ID {
			own = append(own, s)
		}
	}
	return p, own
}

func newReservation(slotID int64, token string, createdAt time.Time) *domain.Reservation {
	return &domain.Reservation{
		SlotID:    slotID,
		FirstName: "Jean",
		LastName:  "Dupont",
		Phone:     "0470 12 34 56",
		Quantity:  2,
		Token:     token,
		CreatedAt: createdAt,
	}
}

func TestPresences_CreateAndListUpcoming(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()

		p, slots := seedPresence(t, b, "Place de Claire-Hayes", day1, t0, t0.Add(15*time.Minute), t0.Add(30*time.Minute))
		require.Len(t, slots, 3)
		assert.NotZero(t, p.ID)
		assert.True(t, slots[0].StartAt.Equal(t0))
		assert.Equal(t, "Place de Claire-Hayes", slots[0].Location)
		assert.Equal(t, day1, slots[0].Date)

		seedPresence(t, b, "Marché", day2, t0.Add(24*time.Hour))
		seedPresence(t, b, "Abbaye", day1, t0.Add(time.Hour))

		// Слоты, начавшиеся раньше now, не возвращаются. Слот ровно в now возвращается.
		upcoming, err := b.Presences().ListUpcoming(ctx, t0.Add(15*time.Minute), domain.SlotFilter{})
		require.NoError(t, err)
		require.Len(t, upcoming, 4)
		assert.Equal(t, "Abbaye", upcoming[0].Location, "ordered by date, then location")
		assert.Equal(t, "Place de Claire-Hayes", upcoming[1].Location)
		assert.True(t, upcoming[1].StartAt.Equal(t0.Add(15*time.Minute)))
		assert.Equal(t, day2, upcoming[3].Date)

		filtered, err := b.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{Location: "claire"})
		require.NoError(t, err)
		assert.Len(t, filtered, 3)

		none, err := b.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{Location: "%"})
		require.NoError(t, err)
		assert.Empty(t, none, "LIKE wildcards are matched literally")
		assert.NotNil(t, none)

		got, err := b.Presences().GetSlotByID(ctx, slots[1].SlotID)
		require.NoError(t, err)
		assert.True(t, got.StartAt.Equal(t0.Add(15*time.Minute)))

		_, err = b.Presences().GetSlotByID(ctx, 999999)
		assert.ErrorIs(t, err, storage.ErrSlotNotFound)

		presences, err := b.Presences().List(ctx)
		require.NoError(t, err)
		require.Len(t, presences, 3)
		assert.Equal(t, day2, presences[2].Date)
		assert.Equal(t, types.MustTimeString("09:00"), presences[0].StartTime)
	})
}

func TestPresences_CreateRollsBackOnError(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		boom := errors.New("boom")

		err := b.TxManager().Do(ctx, func(ctx context.Context) error {
			p := &domain.Presence{Location: "Ghost", Date: day1, StartTime: "09:00", EndTime: "10:00"}
			if _, err := b.Presences().Create(ctx, p); err != nil {
				return err
			}
			if err := b.Presences().CreateSlots(ctx, p.ID, []time.Time{t0}); err != nil {
				return err
			}
			return boom
		})
		require.ErrorIs(t, err, boom)

		presences, err := b.Presences().List(ctx)
		require.NoError(t, err)
		assert.Empty(t, presences)

		slots, err := b.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{})
		require.NoError(t, err)
		assert.Empty(t, slots)
	})
}

func TestReservations_Lifecycle(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		_, slots := seedPresence(t, b, "Place", day1, t0)

		created, err := b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "tok-1", t0.Add(-time.Hour)))
		require.NoError(t, err)
		assert.NotZero(t, created.ID)

		view, err := b.Reservations().GetByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Jean", view.FirstName)
		assert.Nil(t, view.Comment)
		assert.True(t, view.StartAt.Equal(t0))
		assert.Equal(t, "Place", view.Location)
		assert.Equal(t, day1, view.Date)

		comment := "à l'entrée"
		err = b.Reservations().UpdateByToken(ctx, "tok-1", domain.ReservationUpdate{
			FirstName: "Marie", LastName: "Curie", Phone: "0470000000", Quantity: 5, Comment: &comment,
		})
		require.NoError(t, err)

		view, err = b.Reservations().GetByToken(ctx, "tok-1")
		require.NoError(t, err)
		assert.Equal(t, "Marie", view.FirstName)
		assert.Equal(t, 5, view.Quantity)
		require.NotNil(t, view.Comment)
		assert.Equal(t, comment, *view.Comment)
		assert.Equal(t, "tok-1", view.Token)

		assert.ErrorIs(t, b.Reservations().UpdateByToken(ctx, "missing", domain.ReservationUpdate{Quantity: 1}), storage.ErrReservationNotFound)

		require.NoError(t, b.Reservations().DeleteByToken(ctx, "tok-1"))
		assert.ErrorIs(t, b.Reservations().DeleteByToken(ctx, "tok-1"), storage.ErrReservationNotFound)

		_, err = b.Reservations().GetByToken(ctx, "tok-1")
		assert.ErrorIs(t, err, storage.ErrReservationNotFound)
	})
}

func TestReservations_DuplicateTokenRejected(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		_, slots := seedPresence(t, b, "Place", day1, t0)

		_, err := b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "same", t0))
		require.NoError(t, err)

		_, err = b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "same", t0))
		assert.ErrorIs(t, err, storage.ErrDuplicate)
	})
}

// Ограничения "одно бронирование на слот" нет: два бронирования одного слота сохраняются оба
func TestReservations_SameSlotTwice(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		_, slots := seedPresence(t, b, "Place", day1, t0)

		_, err := b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "a", t0))
		require.NoError(t, err)
		_, err = b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "b", t0))
		require.NoError(t, err)

		all, err := b.Reservations().List(ctx, domain.ReservationFilter{})
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestReservations_ListNewestFirstAndFilters(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		_, s1 := seedPresence(t, b, "Place du Jeu de Balle", day1, t0)
		_, s2 := seedPresence(t, b, "Marché", day2, t0.Add(24*time.Hour))

		for i, tok := range []string{"old", "mid", "new"} {
			slot := s1[0].SlotID
			if tok == "mid" {
				slot = s2[0].SlotID
			}
			_, err := b.Reservations().Create(ctx, newReservation(slot, tok, t0.Add(time.Duration(i)*time.Minute)))
			require.NoError(t, err)
		}

		all, err := b.Reservations().List(ctx, domain.ReservationFilter{})
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"new", "mid", "old"}, []string{all[0].Token, all[1].Token, all[2].Token})

		byDate, err := b.Reservations().List(ctx, domain.ReservationFilter{Date: &day2})
		require.NoError(t, err)
		require.Len(t, byDate, 1)
		assert.Equal(t, "mid", byDate[0].Token)

		byLocation, err := b.Reservations().List(ctx, domain.ReservationFilter{Location: "JEU DE"})
		require.NoError(t, err)
		assert.Len(t, byLocation, 2)
	})
}

func TestLocationFilter_AccentedNames(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		_, slots := seedPresence(t, b, "Église Saint-Remy", day1, t0)
		seedPresence(t, b, "École communale", day1, t0.Add(time.Hour))

		for _, pattern := range []string{"Église", "église", "ÉGLISE SAINT"} {
			got, err := b.Presences().ListUpcoming(ctx, time.Time{}, domain.SlotFilter{Location: pattern})
			require.NoError(t, err)
			require.Len(t, got, 1, pattern)
			assert.Equal(t, "Église Saint-Remy", got[0].Location)
		}

		_, err := b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "eglise", t0))
		require.NoError(t, err)

		byLocation, err := b.Reservations().List(ctx, domain.ReservationFilter{Location: "église"})
		require.NoError(t, err)
		require.Len(t, byLocation, 1)
		assert.Equal(t, "eglise", byLocation[0].Token)
	})
}

func TestPresences_DeleteCascades(t *testing.T) {
	forEachBackend(t, func(t *testing.T, b *Backend) {
		ctx := context.Background()
		p, slots := seedPresence(t, b, "Place", day1, t0, t0.Add(15*time.Minute))
		_, other := seedPresence(t, b, "Autre", day1, t0)

		_, err := b.Reservations().Create(ctx, newReservation(slots[0].SlotID, "gone", t0))
		require.NoError(t, err)
		_, err = b.Reservations().Create(ctx, newReservation(other[0].SlotID, "kept", t0))
		require.NoError(t, err)

		err = b.TxManager().Do(ctx, func(ctx context.Context) error {
			return b.Presences().Delete(ctx, p.ID)
		})
		require.NoError(t, err)

		_, err = b.Presences().GetSlotByID(ctx, slots[0].SlotID)
		assert.ErrorIs(t, err, storage.ErrSlotNotFound)

		_, err = b.Reservations().GetByToken(ctx, "gone")
		assert.ErrorIs(t, err, storage.ErrReservationNotFound)

		_, err = b.Reservations().GetByToken(ctx, "kept")
		assert.NoError(t, err)

		assert.ErrorIs(t, b.Presences().Delete(ctx, p.ID), storage.ErrPresenceNotFound)
	})
}

func TestUnconfigured(t *testing.T) {
	ctx := context.Background()
	b, err := Open(ctx, config.DatabaseConfig{Backend: config.BackendNone}, nil, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, KindUnconfigured, b.Kind())
	assert.False(t, b.Writable())

	slots, err := b.Presences().ListUpcoming(ctx, time.Now(), domain.SlotFilter{})
	require.NoError(t, err)
	assert.Empty(t, slots)

	list, err := b.Reservations().List(ctx, domain.ReservationFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = b.Presences().Create(ctx, &domain.Presence{})
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
	_, err = b.Reservations().Create(ctx, &domain.Reservation{})
	assert.ErrorIs(t, err, storage.ErrNotConfigured)
	assert.ErrorIs(t, b.Reservations().DeleteByToken(ctx, "x"), storage.ErrNotConfigured)
	assert.NoError(t, b.Close())
}

func TestOpen_SelectsBackend(t *testing.T) {
	ctx := context.Background()

	b, err := Open(ctx, config.DatabaseConfig{Backend: config.BackendMemory}, nil, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, KindMemory, b.Kind())
	assert.True(t, b.Writable())

	b, err = Open(ctx, config.DatabaseConfig{Backend: config.BackendSQLite, SQLitePath: ":memory:", Migrate: true}, nil, logger.Nop())
	require.NoError(t, err)
	defer b.Close()
	assert.Equal(t, KindSQLite, b.Kind())
	assert.NoError(t, b.Ping(ctx))
}
