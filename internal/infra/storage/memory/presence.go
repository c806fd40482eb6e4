package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
)

// PresenceRepository присутствия и слоты в памяти
type PresenceRepository struct {
	store *Store
}

func (r *PresenceRepository) Create(ctx context.Context, p *domain.Presence) (*domain.Presence, error) {
	p.ID = r.store.nextID()
	saved := *p

	err := r.store.write(ctx, func(st *state) error {
		st.presences[saved.ID] = saved
		return nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *PresenceRepository) CreateSlots(ctx context.Context, presenceID int64, starts []time.Time) error {
	slots := make([]domain.Slot, 0, len(starts))
	for _, start := range starts {
		slots = append(slots, domain.Slot{ID: r.store.nextID(), PresenceID: presenceID, StartAt: start.UTC()})
	}

	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.presences[presenceID]; !ok {
			return storage.ErrPresenceNotFound
		}
		for _, s := range slots {
			st.slots[s.ID] = s
		}
		return nil
	})
}

func (r *PresenceRepository) ListUpcoming(_ context.Context, now time.Time, filter domain.SlotFilter) ([]domain.SlotView, error) {
	views := make([]domain.SlotView, 0)

	r.store.read(func(st *state) {
		for _, s := range st.slots {
			if s.StartAt.Before(now) {
				continue
			}
			p := st.presences[s.PresenceID]
			if filter.Date != nil && p.Date != *filter.Date {
				continue
			}
			if !containsFold(p.Location, filter.Location) {
				continue
			}
			views = append(views, slotView(s, p))
		}
	})

	sort.Slice(views, func(i, j int) bool {
		a, b := views[i], views[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.StartAt.Before(b.StartAt)
	})

	return views, nil
}

func (r *PresenceRepository) GetSlotByID(_ context.Context, id int64) (*domain.SlotView, error) {
	var (
		view  domain.SlotView
		found bool
	)

	r.store.read(func(st *state) {
		s, ok := st.slots[id]
		if !ok {
			return
		}
		view, found = slotView(s, st.presences[s.PresenceID]), true
	})

	if !found {
		return nil, storage.ErrSlotNotFound
	}
	return &view, nil
}

func (r *PresenceRepository) List(_ context.Context) ([]domain.Presence, error) {
	presences := make([]domain.Presence, 0)

	r.store.read(func(st *state) {
		for _, p := range st.presences {
			presences = append(presences, p)
		}
	})

	sort.Slice(presences, func(i, j int) bool {
		a, b := presences[i], presences[j]
		if a.Date != b.Date {
			return a.Date < b.Date
		}
		if a.StartTime != b.StartTime {
			return a.StartTime.IsBefore(b.StartTime)
		}
		return a.ID < b.ID
	})

	return presences, nil
}

// Delete удаляет присутствие, его слоты и бронирования этих слотов
func (r *PresenceRepository) Delete(ctx context.Context, id int64) error {
	return r.store.write(ctx, func(st *state) error {
		if _, ok := st.presences[id]; !ok {
			return storage.ErrPresenceNotFound
		}

		for slotID, s := range st.slots {
			if s.PresenceID != id {
				continue
			}
			for resID, res := range st.reservations {
				if res.SlotID == slotID {
					delete(st.reservations, resID)
				}
			}
			delete(st.slots, slotID)
		}
		delete(st.presences, id)
		return nil
	})
}

func slotView(s domain.Slot, p domain.Presence) domain.SlotView {
	return domain.SlotView{
		SlotID:     s.ID,
		PresenceID: s.PresenceID,
		StartAt:    s.StartAt,
		Location:   p.Location,
		Date:       p.Date,
	}
}

func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
