package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/iskedyul/backend/internal/domain"
)

// GetBlocksByTimetableID 返回课表下的所有事件，按开始时间和星期排序
func (r *Repository) GetBlocksByTimetableID(timetableID int64) ([]*domain.Block, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT id, text, start_time, end_time, day, created_at, version
		FROM blocks
		WHERE timetable_id = $1
		ORDER BY start_time, day, id
	`

	rows, err := r.dbpool.QueryContext(ctx, query, timetableID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	blocks := make([]*domain.Block, 0)
	for rows.Next() {
		block := &domain.Block{
			TimetableID: timetableID,
		}
		dst := []any{&block.ID, &block.Text, &block.StartTime, &block.EndTime, &block.Day, &block.CreatedAt, &block.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return blocks, nil
}

func (r *Repository) GetBlockByID(timetableID int64, id int64) (*domain.Block, error) {
	ctx, cancel := r.queryContext()
	defer cancel()

	query := `
		SELECT text, start_time, end_time, day, created_at, version
		FROM blocks
		WHERE id = $1 AND timetable_id = $2
	`

	block := &domain.Block{
		ID:          id,
		TimetableID: timetableID,
	}

	dst := []any{&block.Text, &block.StartTime, &block.EndTime, &block.Day, &block.CreatedAt, &block.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id, timetableID).Scan(dst...); err != nil {
		return nil, err
	}

	return block, nil
}

func (r *Repository) CreateBlock(block *domain.Block) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		INSERT INTO blocks (timetable_id, text, start_time, end_time, day, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, version
	`

	block.CreatedAt = time.Now().UTC()
	params := []any{block.TimetableID, block.Text, block.StartTime, block.EndTime, block.Day, block.CreatedAt}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&block.ID, &block.Version); err != nil {
		return err
	}

	if err := bumpTimetableVersion(ctx, tx, block.TimetableID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateBlock(block *domain.Block) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		UPDATE blocks
		SET
			text = $1,
			start_time = $2,
			end_time = $3,
			day = $4,
			version = version + 1
		WHERE id = $5 AND timetable_id = $6 AND version = $7
		RETURNING version
	`

	params := []any{block.Text, block.StartTime, block.EndTime, block.Day, block.ID, block.TimetableID, block.Version}
	if err := tx.QueryRowContext(ctx, query, params...).Scan(&block.Version); err != nil {
		return err
	}

	if err := bumpTimetableVersion(ctx, tx, block.TimetableID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteBlock(block *domain.Block) error {
	ctx, cancel := r.transactionContext()
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	query := `
		DELETE FROM blocks WHERE id = $1 AND timetable_id = $2
	`

	if _, err := tx.ExecContext(ctx, query, block.ID, block.TimetableID); err != nil {
		return err
	}

	if err := bumpTimetableVersion(ctx, tx, block.TimetableID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	return nil
}

// 课表的版本号随事件的每次修改递增，用作排班网格缓存的键
func bumpTimetableVersion(ctx context.Context, tx *sql.Tx, timetableID int64) error {
	query := `
		UPDATE timetables SET version = version + 1 WHERE id = $1
	`

	res, err := tx.ExecContext(ctx, query, timetableID)
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
