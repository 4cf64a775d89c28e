package repository

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/iskedyul/backend/internal/config"
	"github.com/iskedyul/backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

// openSQLite 直接使用给定的连接串打开数据库，不做任何补全
func openSQLite(t *testing.T, dsn string) *Repository {
	t.Helper()

	cfg := &config.Config{}
	cfg.Database.Driver = "sqlite3"
	cfg.Database.DSN = dsn
	cfg.Database.QueryTimeout = 5
	cfg.Database.TransactionTimeout = 5

	dbpool, err := sql.Open(cfg.Database.Driver, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = dbpool.Close() })

	return NewRepository(cfg, dbpool)
}

func newTestRepository(t *testing.T) *Repository {
	t.Helper()

	dsn := DataSourceName("sqlite3", "file:"+filepath.Join(t.TempDir(), "iskedyul.db"))
	repo := openSQLite(t, dsn)
	require.NoError(t, repo.Migrate())

	return repo
}

func createTimetable(t *testing.T, repo *Repository, title string) *domain.Timetable {
	t.Helper()
	tt := &domain.Timetable{Title: title}
	require.NoError(t, repo.CreateTimetable(tt))
	return tt
}

func createBlock(t *testing.T, repo *Repository, timetableID int64, text string, day domain.Weekday, start, end string) *domain.Block {
	t.Helper()
	startTime, err := domain.ParseTimeOfDay(start)
	require.NoError(t, err)
	endTime, err := domain.ParseTimeOfDay(end)
	require.NoError(t, err)

	block := &domain.Block{
		TimetableID: timetableID,
		Text:        text,
		Day:         day,
		StartTime:   startTime,
		EndTime:     endTime,
	}
	require.NoError(t, repo.CreateBlock(block))
	return block
}

func TestMigrateUnknownDriver(t *testing.T) {
	repo := newTestRepository(t)
	repo.cfg.Database.Driver = "mysql"

	assert.Error(t, repo.Migrate())
}

func TestDataSourceName(t *testing.T) {
	tests := []struct {
		driver string
		dsn    string
		want   string
	}{
		{"sqlite3", "file:p.db", "file:p.db?_foreign_keys=on"},
		{"sqlite3", "p.db", "p.db?_foreign_keys=on"},
		{"sqlite3", "file:p.db?cache=shared", "file:p.db?cache=shared&_foreign_keys=on"},
		{"sqlite3", "file:p.db?_foreign_keys=on", "file:p.db?_foreign_keys=on"},
		{"sqlite3", "file:p.db?_fk=1", "file:p.db?_fk=1"},
		{"pgx", "postgres://localhost/iskedyul", "postgres://localhost/iskedyul"},
	}

	for _, tt := range tests {
		t.Run(tt.dsn, func(t *testing.T) {
			assert.Equal(t, tt.want, DataSourceName(tt.driver, tt.dsn))
		})
	}
}

func TestMigrateRequiresForeignKeys(t *testing.T) {
	repo := openSQLite(t, "file:"+filepath.Join(t.TempDir(), "bare.db"))

	assert.Error(t, repo.Migrate())
}

func TestBareDSNCascadesAfterNormalization(t *testing.T) {
	repo := openSQLite(t, DataSourceName("sqlite3", "file:"+filepath.Join(t.TempDir(), "bare.db")))
	require.NoError(t, repo.Migrate())

	tt := createTimetable(t, repo, "Week")
	createBlock(t, repo, tt.ID, "math", domain.Monday, "09:00", "10:00")
	require.NoError(t, repo.DeleteTimetable(tt.ID))

	blocks, err := repo.GetBlocksByTimetableID(tt.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)
}

func TestDeleteMissingTimetable(t *testing.T) {
	repo := newTestRepository(t)

	assert.ErrorIs(t, repo.DeleteTimetable(42), sql.ErrNoRows)
}

func TestMigrateIsIdempotent(t *testing.T) {
	repo := newTestRepository(t)

	assert.NoError(t, repo.Migrate())
}

func TestTimetableCRUD(t *testing.T) {
	repo := newTestRepository(t)

	tt := createTimetable(t, repo, "Semester 1")
	assert.NotZero(t, tt.ID)
	assert.Equal(t, int32(1), tt.Version)
	assert.False(t, tt.CreatedAt.IsZero())

	got, err := repo.GetTimetableByID(tt.ID)
	require.NoError(t, err)
	assert.Equal(t, "Semester 1", got.Title)
	assert.Equal(t, tt.Version, got.Version)

	got.Title = "Semester 2"
	require.NoError(t, repo.UpdateTimetable(got))
	assert.Equal(t, int32(2), got.Version)

	// 使用旧版本号更新会失败
	tt.Title = "stale"
	assert.ErrorIs(t, repo.UpdateTimetable(tt), sql.ErrNoRows)

	createTimetable(t, repo, "Other")
	all, err := repo.GetAllTimetables()
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Semester 2", all[0].Title)

	require.NoError(t, repo.DeleteTimetable(tt.ID))
	_, err = repo.GetTimetableByID(tt.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestBlocksOrderedByStartTimeThenDay(t *testing.T) {
	repo := newTestRepository(t)
	tt := createTimetable(t, repo, "Week")

	createBlock(t, repo, tt.ID, "late", domain.Monday, "13:00", "14:00")
	createBlock(t, repo, tt.ID, "friday", domain.Friday, "09:00", "10:00")
	createBlock(t, repo, tt.ID, "monday", domain.Monday, "09:00", "10:00")
	createBlock(t, repo, tt.ID, "early", domain.Sunday, "07:15", "08:00")

	blocks, err := repo.GetBlocksByTimetableID(tt.ID)
	require.NoError(t, err)
	require.Len(t, blocks, 4)

	texts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		texts = append(texts, b.Text)
	}
	assert.Equal(t, []string{"early", "monday", "friday", "late"}, texts)
	assert.Equal(t, domain.NewTimeOfDay(7, 15, 0), blocks[0].StartTime)
	assert.Equal(t, domain.Sunday, blocks[0].Day)
}

func TestBlockWritesBumpTimetableVersion(t *testing.T) {
	repo := newTestRepository(t)
	tt := createTimetable(t, repo, "Week")

	block := createBlock(t, repo, tt.ID, "math", domain.Monday, "09:00", "10:00")
	got, err := repo.GetTimetableByID(tt.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(2), got.Version)

	block.Text = "algebra"
	block.Day = domain.Tuesday
	require.NoError(t, repo.UpdateBlock(block))
	assert.Equal(t, int32(2), block.Version)

	stored, err := repo.GetBlockByID(tt.ID, block.ID)
	require.NoError(t, err)
	assert.Equal(t, "algebra", stored.Text)
	assert.Equal(t, domain.Tuesday, stored.Day)

	require.NoError(t, repo.DeleteBlock(block))
	got, err = repo.GetTimetableByID(tt.ID)
	require.NoError(t, err)
	assert.Equal(t, int32(4), got.Version)

	_, err = repo.GetBlockByID(tt.ID, block.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetBlockScopedToTimetable(t *testing.T) {
	repo := newTestRepository(t)
	a := createTimetable(t, repo, "A")
	b := createTimetable(t, repo, "B")

	block := createBlock(t, repo, a.ID, "math", domain.Monday, "09:00", "10:00")

	_, err := repo.GetBlockByID(b.ID, block.ID)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestUpdateBlockStaleVersion(t *testing.T) {
	repo := newTestRepository(t)
	tt := createTimetable(t, repo, "Week")
	block := createBlock(t, repo, tt.ID, "math", domain.Monday, "09:00", "10:00")

	stale := *block
	require.NoError(t, repo.UpdateBlock(block))

	assert.ErrorIs(t, repo.UpdateBlock(&stale), sql.ErrNoRows)
}

func TestDeleteTimetableCascadesBlocks(t *testing.T) {
	repo := newTestRepository(t)
	tt := createTimetable(t, repo, "Week")
	other := createTimetable(t, repo, "Other")

	createBlock(t, repo, tt.ID, "math", domain.Monday, "09:00", "10:00")
	createBlock(t, repo, tt.ID, "art", domain.Monday, "09:00", "10:00")
	createBlock(t, repo, other.ID, "music", domain.Monday, "09:00", "10:00")

	require.NoError(t, repo.DeleteTimetable(tt.ID))

	blocks, err := repo.GetBlocksByTimetableID(tt.ID)
	require.NoError(t, err)
	assert.Empty(t, blocks)

	blocks, err = repo.GetBlocksByTimetableID(other.ID)
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestCreateBlockUnknownTimetable(t *testing.T) {
	repo := newTestRepository(t)

	block := &domain.Block{TimetableID: 42, Text: "ghost", Day: domain.Monday}
	assert.Error(t, repo.CreateBlock(block))
}

func TestImportTimetables(t *testing.T) {
	repo := newTestRepository(t)

	start, end := domain.NewTimeOfDay(9, 0, 0), domain.NewTimeOfDay(10, 0, 0)
	timetables := []*domain.Timetable{
		{Title: "A", Blocks: []*domain.Block{
			{Text: "math", Day: domain.Monday, StartTime: start, EndTime: end},
			{Text: "art", Day: domain.Friday, StartTime: start, EndTime: end},
		}},
		{Title: "B", Blocks: []*domain.Block{
			{Text: "music", Day: domain.Sunday, StartTime: start, EndTime: end},
		}},
	}
	require.NoError(t, repo.ImportTimetables(timetables))

	for _, tt := range timetables {
		assert.NotZero(t, tt.ID)
		blocks, err := repo.GetBlocksByTimetableID(tt.ID)
		require.NoError(t, err)
		assert.Len(t, blocks, len(tt.Blocks))
	}
}

func TestImportTimetablesRollsBack(t *testing.T) {
	repo := newTestRepository(t)

	start, end := domain.NewTimeOfDay(9, 0, 0), domain.NewTimeOfDay(10, 0, 0)
	timetables := []*domain.Timetable{
		{Title: "A", Blocks: []*domain.Block{
			{Text: "math", Day: domain.Monday, StartTime: start, EndTime: end},
		}},
		{Title: "B", Blocks: []*domain.Block{
			// 违反 day 的 CHECK 约束
			{Text: "music", Day: 9, StartTime: start, EndTime: end},
		}},
	}
	require.Error(t, repo.ImportTimetables(timetables))

	all, err := repo.GetAllTimetables()
	require.NoError(t, err)
	assert.Empty(t, all)
}
