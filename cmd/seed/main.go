package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/iskedyul/backend/internal/config"
	"github.com/iskedyul/backend/internal/repository"
	"github.com/iskedyul/backend/internal/seed"
	"github.com/iskedyul/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

func main() {
	var op int
	var n int
	var file string

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机课表, 2: 从 CSV 导入课表)")
	flag.IntVar(&n, "n", 5, "要插入的随机课表数量")
	flag.StringVar(&file, "file", "./internal/seed/data/sample.csv", "要导入的 CSV 文件 (title,day,start,end,text)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open(cfg.Database.Driver, repository.DataSourceName(cfg.Database.Driver, cfg.Database.DSN))
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	repo := repository.NewRepository(cfg, dbpool)

	if cfg.Database.AutoMigrate {
		if err := repo.Migrate(); err != nil {
			logger.Error("无法执行数据库迁移", "error", err)
			return
		}
	}

	switch op {
	case 1:
		timetableCnt := 0
		blockCnt := 0
		for i := 0; i < n; i++ {
			tt := utils.GenerateRandomTimetable()
			if err := repo.CreateTimetable(tt); err != nil {
				logger.Error("无法插入课表", slog.String("error", err.Error()))
				continue
			}
			timetableCnt++

			for j := 0; j < cfg.Seed.BlocksPerTimetable; j++ {
				block := utils.GenerateRandomBlock(tt.ID)
				if err := repo.CreateBlock(block); err != nil {
					logger.Error("无法插入事件", slog.String("error", err.Error()))
					continue
				}
				blockCnt++
			}
		}

		logger.Info("插入随机课表成功", slog.Int("timetables", timetableCnt), slog.Int("blocks", blockCnt))
	case 2:
		f, err := os.Open(file)
		if err != nil {
			logger.Error("打开文件失败", slog.String("file", file), slog.String("error", err.Error()))
			return
		}
		defer f.Close()

		result, err := seed.ImportCSV(repo, f)
		if err != nil {
			logger.Error("导入课表失败", slog.String("error", err.Error()))
			return
		}

		logger.Info("导入课表完成", slog.Int("timetables", len(result.Timetables)), slog.Int("blocks", result.Blocks))
	default:
		logger.Error("指定的操作非法")
	}
}
