package repository

import (
	"database/sql"
	"time"

	"github.com/iskedyul/backend/internal/domain"
)

func (r *Repository) GetAllTimetables() ([]*domain.Timetable, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, title, created_at, version
		FROM timetables
		ORDER BY id
	`

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	timetables := make([]*domain.Timetable, 0)
	for rows.Next() {
		tt := &domain.Timetable{}
		dst := []any{&tt.ID, &tt.Title, &tt.CreatedAt, &tt.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		timetables = append(timetables, tt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return timetables, nil
}

func (r *Repository) CreateTimetable(tt *domain.Timetable) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		INSERT INTO timetables (title, created_at)
		VALUES ($1, $2)
		RETURNING id, version
	`

	tt.CreatedAt = time.Now().UTC()
	if err := r.dbpool.QueryRowContext(ctx, query, tt.Title, tt.CreatedAt).Scan(&tt.ID, &tt.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetTimetableByID(id int64) (*domain.Timetable, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT title, created_at, version
		FROM timetables WHERE id = $1
	`

	tt := &domain.Timetable{
		ID: id,
	}

	dst := []any{&tt.Title, &tt.CreatedAt, &tt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return tt, nil
}

func (r *Repository) UpdateTimetable(tt *domain.Timetable) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		UPDATE timetables
		SET
			title = $1,
			version = version + 1
		WHERE id = $2 AND version = $3
		RETURNING version
	`

	params := []any{tt.Title, tt.ID, tt.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, params...).Scan(&tt.Version); err != nil {
		return err
	}

	return nil
}

// DeleteTimetable 删除课表，课表下的所有事件由外键级联删除
func (r *Repository) DeleteTimetable(id int64) error {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		DELETE FROM timetables WHERE id = $1
	`

	res, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}

	return nil
}

// ImportTimetables 在同一个事务中插入多个课表及其 Blocks，任何一条失败都会整体回滚
func (r *Repository) ImportTimetables(timetables []*domain.Timetable) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	insertTimetable := `
		INSERT INTO timetables (title, created_at)
		VALUES ($1, $2)
		RETURNING id, version
	`
	insertBlock := `
		INSERT INTO blocks (timetable_id, text, start_time, end_time, day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version
	`

	now := time.Now().UTC()
	for _, tt := range timetables {
		tt.CreatedAt = now
		if err := tx.QueryRowContext(ctx, insertTimetable, tt.Title, tt.CreatedAt).Scan(&tt.ID, &tt.Version); err != nil {
			return err
		}

		for _, block := range tt.Blocks {
			block.TimetableID = tt.ID
			block.CreatedAt = now
			params := []any{block.TimetableID, block.Text, block.StartTime, block.EndTime, block.Day, block.CreatedAt}
			if err := tx.QueryRowContext(ctx, insertBlock, params...).Scan(&block.ID, &block.Version); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}
