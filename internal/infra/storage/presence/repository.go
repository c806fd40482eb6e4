package presence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/pkg/dbmetrics"
	"github.com/m04kA/juice-reservations/pkg/sqlbuilder"
)

// Repository репозиторий присутствий и их слотов
// Чтения идут в reader, записи и удаления в writer. Если в контексте есть транзакция, используется она.
type Repository struct {
	reader  DBExecutor
	writer  DBExecutor
	builder sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория присутствий
func NewRepository(reader, writer DBExecutor, builder sqlbuilder.Builder) *Repository {
	return &Repository{reader: reader, writer: writer, builder: builder}
}

// Create сохраняет присутствие и проставляет ему ID
func (r *Repository) Create(ctx context.Context, p *domain.Presence) (*domain.Presence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.writer)

	query, args, err := r.builder.Insert("presences").
		Columns("location", "date", "start_time", "end_time").
		Values(p.Location, p.Date, p.StartTime, p.EndTime).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", storage.ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&p.ID); err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", storage.ErrExecQuery, err)
	}

	return p, nil
}

// CreateSlots сохраняет слоты присутствия одним запросом
func (r *Repository) CreateSlots(ctx context.Context, presenceID int64, starts []time.Time) error {
	if len(starts) == 0 {
		return nil
	}

	executor := dbmetrics.GetExecutor(ctx, r.writer)

	insert := r.builder.Insert("slots").Columns("presence_id", "start_at")
	for _, start := range starts {
		insert = insert.Values(presenceID, storage.DBTime(start))
	}

	query, args, err := insert.ToSql()
	if err != nil {
		return fmt.Errorf("%w: CreateSlots - build insert query: %v", storage.ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: CreateSlots - execute insert: %v", storage.ErrExecQuery, err)
	}

	return nil
}

// ListUpcoming возвращает слоты, начинающиеся не раньше now, с учетом фильтра
// Сортировка: дата, место, время начала
func (r *Repository) ListUpcoming(ctx context.Context, now time.Time, filter domain.SlotFilter) ([]domain.SlotView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.reader)

	selectBuilder := r.slotSelect().
		Where(squirrel.GtOrEq{"s.start_at": storage.DBTime(now)}).
		OrderBy("p.date ASC", "p.location ASC", "s.start_at ASC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.date": *filter.Date})
	}
	if filter.Location != "" {
		selectBuilder = selectBuilder.Where(r.builder.ContainsFold("p.location", filter.Location))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]domain.SlotView, 0)
	for rows.Next() {
		var s domain.SlotView
		if err := rows.Scan(&s.SlotID, &s.PresenceID, &s.StartAt, &s.Location, &s.Date); err != nil {
			return nil, fmt.Errorf("%w: ListUpcoming - scan slot: %v", storage.ErrScanRow, err)
		}
		s.StartAt = s.StartAt.UTC()
		slots = append(slots, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListUpcoming - rows error: %v", storage.ErrScanRow, err)
	}

	return slots, nil
}

// GetSlotByID получает слот вместе с местом и датой присутствия
func (r *Repository) GetSlotByID(ctx context.Context, id int64) (*domain.SlotView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.reader)

	query, args, err := r.slotSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - build select query: %v", storage.ErrBuildQuery, err)
	}

	var s domain.SlotView
	err = executor.QueryRowContext(ctx, query, args...).Scan(&s.SlotID, &s.PresenceID, &s.StartAt, &s.Location, &s.Date)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotByID - scan slot: %v", storage.ErrScanRow, err)
	}
	s.StartAt = s.StartAt.UTC()

	return &s, nil
}

// List возвращает все присутствия по дате и времени начала
func (r *Repository) List(ctx context.Context) ([]domain.Presence, error) {
	executor := dbmetrics.GetExecutor(ctx, r.reader)

	query, args, err := r.builder.Select("id", "location", "date", "start_time", "end_time").
		From("presences").
		OrderBy("date ASC", "start_time ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	presences := make([]domain.Presence, 0)
	for rows.Next() {
		var p domain.Presence
		if err := rows.Scan(&p.ID, &p.Location, &p.Date, &p.StartTime, &p.EndTime); err != nil {
			return nil, fmt.Errorf("%w: List - scan presence: %v", storage.ErrScanRow, err)
		}
		presences = append(presences, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", storage.ErrScanRow, err)
	}

	return presences, nil
}

// Delete удаляет присутствие вместе с его слотами и бронированиями
// Каскад выполняется явно и не зависит от настроек внешних ключей. Вызывать внутри транзакции.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.writer)

	// Подзапрос собирается с "?" - внешний билдер сам перенумерует плейсхолдеры
	slotIDs := squirrel.Select("id").From("slots").Where(squirrel.Eq{"presence_id": id})

	statements := []squirrel.DeleteBuilder{
		r.builder.Delete("reservations").Where(squirrel.Expr("slot_id IN (?)", slotIDs)),
		r.builder.Delete("slots").Where(squirrel.Eq{"presence_id": id}),
	}
	for _, stmt := range statements {
		query, args, err := stmt.ToSql()
		if err != nil {
			return fmt.Errorf("%w: Delete - build cascade query: %v", storage.ErrBuildQuery, err)
		}
		if _, err := executor.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("%w: Delete - execute cascade: %v", storage.ErrExecQuery, err)
		}
	}

	query, args, err := r.builder.Delete("presences").Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", storage.ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", storage.ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", storage.ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return storage.ErrPresenceNotFound
	}

	return nil
}

func (r *Repository) slotSelect() squirrel.SelectBuilder {
	return r.builder.Select("s.id", "s.presence_id", "s.start_at", "p.location", "p.date").
		From("slots s").
		Join("presences p ON p.id = s.presence_id")
}
