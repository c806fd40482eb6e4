package memory

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/m04kA/juice-reservations/internal/domain"
)

// Store хранилище в памяти процесса. Создается один раз и передается в backend явно.
// Записи внутри Do копятся в пачку и применяются к копии состояния под одной блокировкой:
// читатели видят либо всё, либо ничего. Чтения внутри Do не видят незафиксированных записей.
type Store struct {
	mu    sync.RWMutex
	state *state
	seq   atomic.Int64
}

type state struct {
	presences    map[int64]domain.Presence
	slots        map[int64]domain.Slot
	reservations map[int64]domain.Reservation
}

type op func(st *state) error

type batch struct {
	ops []op
}

type batchKey struct{}

// NewStore создает пустое хранилище
func NewStore() *Store {
	return &Store{state: newState()}
}

// Presences репозиторий присутствий поверх хранилища
func (s *Store) Presences() *PresenceRepository {
	return &PresenceRepository{store: s}
}

// Reservations репозиторий бронирований поверх хранилища
func (s *Store) Reservations() *ReservationRepository {
	return &ReservationRepository{store: s}
}

// Do выполняет fn и атомарно применяет все записи, сделанные внутри
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(batchKey{}).(*batch); ok {
		return fn(ctx)
	}

	b := &batch{}
	if err := fn(context.WithValue(ctx, batchKey{}, b)); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	for _, o := range b.ops {
		if err := o(next); err != nil {
			return err
		}
	}
	s.state = next
	return nil
}

// DoSerializable то же, что Do: записи и так применяются под эксклюзивной блокировкой
func (s *Store) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return s.Do(ctx, fn)
}

func (s *Store) nextID() int64 {
	return s.seq.Add(1)
}

// write применяет операцию сразу или откладывает её до конца Do
func (s *Store) write(ctx context.Context, o op) error {
	if b, ok := ctx.Value(batchKey{}).(*batch); ok {
		b.ops = append(b.ops, o)
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := s.state.clone()
	if err := o(next); err != nil {
		return err
	}
	s.state = next
	return nil
}

func (s *Store) read(fn func(st *state)) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.state)
}

func newState() *state {
	return &state{
		presences:    make(map[int64]domain.Presence),
		slots:        make(map[int64]domain.Slot),
		reservations: make(map[int64]domain.Reservation),
	}
}

func (st *state) clone() *state {
	next := &state{
		presences:    make(map[int64]domain.Presence, len(st.presences)),
		slots:        make(map[int64]domain.Slot, len(st.slots)),
		reservations: make(map[int64]domain.Reservation, len(st.reservations)),
	}
	for id, p := range st.presences {
		next.presences[id] = p
	}
	for id, s := range st.slots {
		next.slots[id] = s
	}
	for id, r := range st.reservations {
		next.reservations[id] = r
	}
	return next
}

func (st *state) reservationByToken(token string) (domain.Reservation, bool) {
	for _, r := range st.reservations {
		if r.Token == token {
			return r, true
		}
	}
	return domain.Reservation{}, false
}
