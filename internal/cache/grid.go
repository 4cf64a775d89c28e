package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iskedyul/backend/internal/grid"
	"github.com/redis/go-redis/v9"
)

// GridCache 缓存课表的网格行。键中带有课表的版本号，课表或其事件被修改后旧的键自然失效。
type GridCache struct {
	rdb        *redis.Client
	expiration time.Duration
	timeout    time.Duration
}

func NewGridCache(rdb *redis.Client, expiration time.Duration, timeout time.Duration) *GridCache {
	return &GridCache{
		rdb:        rdb,
		expiration: expiration,
		timeout:    timeout,
	}
}

func RowsKey(timetableID int64, version int32) string {
	return fmt.Sprintf("timetable_%d_v%d_rows", timetableID, version)
}

// GetRows 返回缓存的行，未命中时第二个返回值为 false
func (c *GridCache) GetRows(ctx context.Context, timetableID int64, version int32) ([]grid.Row, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	data, err := c.rdb.Get(ctx, RowsKey(timetableID, version)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var rows []grid.Row
	if err := json.Unmarshal(data, &rows); err != nil {
		return nil, false, err
	}

	return rows, true, nil
}

func (c *GridCache) SetRows(ctx context.Context, timetableID int64, version int32, rows []grid.Row) error {
	data, err := json.Marshal(rows)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	return c.rdb.Set(ctx, RowsKey(timetableID, version), data, c.expiration).Err()
}
