package repository

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iskedyul/backend/internal/config"
)

//go:embed migrations/*.sql
var migrations embed.FS

type Repository struct {
	cfg    *config.Config
	dbpool *sql.DB
}

// DataSourceName 为 sqlite3 连接串补上 _foreign_keys=on。外键约束在 sqlite 中按连接开启，
// 没有它级联删除不会生效
func DataSourceName(driver string, dsn string) string {
	if driver != "sqlite3" {
		return dsn
	}
	if strings.Contains(dsn, "_foreign_keys=") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&_foreign_keys=on"
	}
	return dsn + "?_foreign_keys=on"
}

func NewRepository(cfg *config.Config, dbpool *sql.DB) *Repository {
	return &Repository{
		cfg:    cfg,
		dbpool: dbpool,
	}
}

// Migrate 执行与当前数据库驱动对应的建表语句，语句都是幂等的
func (r *Repository) Migrate() error {
	schema, err := migrations.ReadFile(fmt.Sprintf("migrations/%s.sql", r.cfg.Database.Driver))
	if err != nil {
		return fmt.Errorf("不支持的数据库驱动 %q", r.cfg.Database.Driver)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	if r.cfg.Database.Driver == "sqlite3" {
		var enabled int
		if err := r.dbpool.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&enabled); err != nil {
			return err
		}
		if enabled == 0 {
			return errors.New("sqlite 未开启外键约束，请在连接串中加上 _foreign_keys=on")
		}
	}

	if _, err := r.dbpool.ExecContext(ctx, string(schema)); err != nil {
		return err
	}

	return nil
}

func (r *Repository) queryContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
}

func (r *Repository) transactionContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
}
