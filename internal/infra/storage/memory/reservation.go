package memory

import (
	"context"
	"sort"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
)

// ReservationRepository бронирования в памяти
type ReservationRepository struct {
	store *Store
}

func (r *ReservationRepository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	res.ID = r.store.nextID()
	res.CreatedAt = res.CreatedAt.UTC()
	saved := *res
	saved.Comment = copyString(res.Comment)

	err := r.store.write(ctx, func(st *state) error {
		if _, ok := st.slots[saved.SlotID]; !ok {
			return storage.ErrSlotNotFound
		}
		if _, exists := st.reservationByToken(saved.Token); exists {
			return storage.ErrDuplicate
		}
		st.reservations[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

func (r *ReservationRepository) GetByToken(_ context.Context, token string) (*domain.ReservationView, error) {
	var (
		view  domain.ReservationView
		found bool
	)

	r.store.read(func(st *state) {
		res, ok := st.reservationByToken(token)
		if !ok {
			return
		}
		view, found = reservationView(st, res), true
	})

	if !found {
		return nil, storage.ErrReservationNotFound
	}
	return &view, nil
}

func (r *ReservationRepository) UpdateByToken(ctx context.Context, token string, update domain.ReservationUpdate) error {
	update.Comment = copyString(update.Comment)

	return r.store.write(ctx, func(st *state) error {
		res, ok := st.reservationByToken(token)
		if !ok {
			return storage.ErrReservationNotFound
		}
		res.Apply(update)
		st.reservations[res.ID] = res
		return nil
	})
}

func (r *ReservationRepository) DeleteByToken(ctx context.Context, token string) error {
	return r.store.write(ctx, func(st *state) error {
		res, ok := st.reservationByToken(token)
		if !ok {
			return storage.ErrReservationNotFound
		}
		delete(st.reservations, res.ID)
		return nil
	})
}

func (r *ReservationRepository) List(_ context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, error) {
	views := make([]domain.ReservationView, 0)

	r.store.read(func(st *state) {
		for _, res := range st.reservations {
			v := reservationView(st, res)
			if filter.Date != nil && v.Date != *filter.Date {
				continue
			}
			if !containsFold(v.Location, filter.Location) {
				continue
			}
			views = append(views, v)
		}
	})

	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})

	return views, nil
}

func reservationView(st *state, res domain.Reservation) domain.ReservationView {
	slot := st.slots[res.SlotID]
	presence := st.presences[slot.PresenceID]

	res.Comment = copyString(res.Comment)
	return domain.ReservationView{
		Reservation: res,
		StartAt:     slot.StartAt,
		Location:    presence.Location,
		Date:        presence.Date,
	}
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
