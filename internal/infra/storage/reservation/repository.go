package reservation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"
	"github.com/mattn/go-sqlite3"

	"github.com/m04kA/juice-reservations/internal/domain"
	"github.com/m04kA/juice-reservations/internal/infra/storage"
	"github.com/m04kA/juice-reservations/pkg/dbmetrics"
	"github.com/m04kA/juice-reservations/pkg/sqlbuilder"
)

// Repository репозиторий бронирований
type Repository struct {
	reader  DBExecutor
	writer  DBExecutor
	builder sqlbuilder.Builder
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(reader, writer DBExecutor, builder sqlbuilder.Builder) *Repository {
	return &Repository{reader: reader, writer: writer, builder: builder}
}

// Create сохраняет бронирование. Наличие и время слота проверяет вызывающий код.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.writer)

	query, args, err := r.builder.Insert("reservations").
		Columns("slot_id", "first_name", "last_name", "phone", "quantity", "comment", "token", "created_at").
		Values(res.SlotID, res.FirstName, res.LastName, res.Phone, res.Quantity, res.Comment, res.Token, storage.DBTime(res.CreatedAt)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", storage.ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("%w: Create - token %v", storage.ErrDuplicate, err)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", storage.ErrExecQuery, err)
	}

	return res, nil
}

// GetByToken получает бронирование с данными слота и присутствия
func (r *Repository) GetByToken(ctx context.Context, token string) (*domain.ReservationView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.reader)

	query, args, err := r.viewSelect().Where(squirrel.Eq{"r.token": token}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - build select query: %v", storage.ErrBuildQuery, err)
	}

	view, err := scanView(executor.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, storage.ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByToken - scan reservation: %v", storage.ErrScanRow, err)
	}

	return view, nil
}

// UpdateByToken обновляет изменяемые поля. Если строка не найдена - ErrReservationNotFound.
func (r *Repository) UpdateByToken(ctx context.Context, token string, update domain.ReservationUpdate) error {
	executor := dbmetrics.GetExecutor(ctx, r.writer)

	query, args, err := r.builder.Update("reservations").
		Set("first_name", update.FirstName).
		Set("last_name", update.LastName).
		Set("phone", update.Phone).
		Set("quantity", update.Quantity).
		Set("comment", update.Comment).
		Where(squirrel.Eq{"token": token}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateByToken - build update query: %v", storage.ErrBuildQuery, err)
	}

	return execAffecting(ctx, executor, "UpdateByToken", query, args)
}

// DeleteByToken удаляет бронирование. Если строка не найдена - ErrReservationNotFound.
func (r *Repository) DeleteByToken(ctx context.Context, token string) error {
	executor := dbmetrics.GetExecutor(ctx, r.writer)

	query, args, err := r.builder.Delete("reservations").Where(squirrel.Eq{"token": token}).ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteByToken - build delete query: %v", storage.ErrBuildQuery, err)
	}

	return execAffecting(ctx, executor, "DeleteByToken", query, args)
}

// List возвращает бронирования, новые первыми
func (r *Repository) List(ctx context.Context, filter domain.ReservationFilter) ([]domain.ReservationView, error) {
	executor := dbmetrics.GetExecutor(ctx, r.reader)

	selectBuilder := r.viewSelect().OrderBy("r.created_at DESC", "r.id DESC")

	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"p.date": *filter.Date})
	}
	if filter.Location != "" {
		selectBuilder = selectBuilder.Where(r.builder.ContainsFold("p.location", filter.Location))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", storage.ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", storage.ErrExecQuery, err)
	}
	defer rows.Close()

	views := make([]domain.ReservationView, 0)
	for rows.Next() {
		view, err := scanView(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan reservation: %v", storage.ErrScanRow, err)
		}
		views = append(views, *view)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", storage.ErrScanRow, err)
	}

	return views, nil
}

func (r *Repository) viewSelect() squirrel.SelectBuilder {
	return r.builder.Select(
		"r.id",
		"r.slot_id",
		"r.first_name",
		"r.last_name",
		"r.phone",
		"r.quantity",
		"r.comment",
		"r.token",
		"r.created_at",
		"s.start_at",
		"p.location",
		"p.date",
	).
		From("reservations r").
		Join("slots s ON s.id = r.slot_id").
		Join("presences p ON p.id = s.presence_id")
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanView(row scanner) (*domain.ReservationView, error) {
	var (
		v       domain.ReservationView
		comment sql.NullString
	)

	err := row.Scan(
		&v.ID,
		&v.SlotID,
		&v.FirstName,
		&v.LastName,
		&v.Phone,
		&v.Quantity,
		&comment,
		&v.Token,
		&v.CreatedAt,
		&v.StartAt,
		&v.Location,
		&v.Date,
	)
	if err != nil {
		return nil, err
	}

	if comment.Valid {
		v.Comment = &comment.String
	}
	v.CreatedAt = v.CreatedAt.UTC()
	v.StartAt = v.StartAt.UTC()

	return &v, nil
}

func execAffecting(ctx context.Context, executor DBExecutor, op, query string, args []interface{}) error {
	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute: %v", storage.ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", storage.ErrExecQuery, op, err)
	}
	if rowsAffected == 0 {
		return storage.ErrReservationNotFound
	}

	return nil
}

// isUniqueViolation распознает нарушение уникальности у обоих SQL драйверов
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	var liteErr sqlite3.Error
	if errors.As(err, &liteErr) {
		return liteErr.ExtendedCode == sqlite3.ErrConstraintUnique
	}
	return false
}
