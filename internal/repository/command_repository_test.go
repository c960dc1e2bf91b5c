package repository

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/axellelanca/cmdvault/internal/models"
)

func newTestRepo(t *testing.T) *GormCommandRepository {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Command{}, &models.Access{}))

	return NewCommandRepository(db)
}

func createCommand(t *testing.T, repo *GormCommandRepository, command models.Command) *models.Command {
	t.Helper()
	if command.Author == "" {
		command.Author = "tester"
	}
	if command.Code == "" {
		command.Code = "x"
	}
	require.NoError(t, repo.Create(&command))
	return &command
}

func TestCreateEnforcesUniqueName(t *testing.T) {
	repo := newTestRepo(t)
	createCommand(t, repo, models.Command{ShortID: "aaaaaa", Name: "dup"})

	err := repo.Create(&models.Command{ShortID: "bbbbbb", Name: "dup", Author: "a", Code: "x"})
	assert.Error(t, err)
}

func TestCreateEnforcesUniqueShortID(t *testing.T) {
	repo := newTestRepo(t)
	createCommand(t, repo, models.Command{ShortID: "cccccc", Name: "one"})

	err := repo.Create(&models.Command{ShortID: "cccccc", Name: "two", Author: "a", Code: "x"})
	assert.Error(t, err)
}

func TestIncrementCountersAreSingleStatementUpdates(t *testing.T) {
	repo := newTestRepo(t)
	command := createCommand(t, repo, models.Command{ShortID: "dddddd", Name: "counted"})

	require.NoError(t, repo.IncrementViews(command.ID))
	require.NoError(t, repo.IncrementViews(command.ID))

	likes, err := repo.IncrementLikes(command.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, likes)
	likes, err = repo.IncrementLikes(command.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, likes)

	shares, err := repo.IncrementShares(command.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, shares)

	got, err := repo.GetByID(command.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Views)
	assert.Equal(t, 2, got.Likes)
	assert.Equal(t, 1, got.Shares)
}

func TestIncrementMissingCommand(t *testing.T) {
	repo := newTestRepo(t)

	assert.ErrorIs(t, repo.IncrementViews(42), gorm.ErrRecordNotFound)
	_, err := repo.IncrementLikes(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.IncrementShares(42)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestGetByShortIDAndName(t *testing.T) {
	repo := newTestRepo(t)
	command := createCommand(t, repo, models.Command{ShortID: "eeeeee", Name: "lookup-me"})

	byShort, err := repo.GetByShortID("eeeeee")
	require.NoError(t, err)
	assert.Equal(t, command.ID, byShort.ID)

	byName, err := repo.GetByName("lookup-me")
	require.NoError(t, err)
	assert.Equal(t, command.ID, byName.ID)

	_, err = repo.GetByShortID("zzzzzz")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	_, err = repo.GetByName("missing")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestListCountsBeforePagination(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Now().Add(-time.Hour)
	for i, name := range []string{"a", "b", "c", "d", "e"} {
		createCommand(t, repo, models.Command{
			ShortID:   "list" + name + "x",
			Name:      name,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}

	commands, total, err := repo.List(models.ListParams{Page: 2, Limit: 2})
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	assert.Len(t, commands, 2)
}

func TestListRecentOrdering(t *testing.T) {
	repo := newTestRepo(t)
	base := time.Now().Add(-time.Hour)
	oldest := createCommand(t, repo, models.Command{ShortID: "old123", Name: "oldest", CreatedAt: base})
	newest := createCommand(t, repo, models.Command{ShortID: "new123", Name: "newest", CreatedAt: base.Add(30 * time.Minute)})
	middle := createCommand(t, repo, models.Command{ShortID: "mid123", Name: "middle", CreatedAt: base.Add(10 * time.Minute)})

	commands, _, err := repo.List(models.ListParams{Page: 1, Limit: 10, Filter: models.FilterRecent})
	require.NoError(t, err)
	require.Len(t, commands, 3)
	assert.Equal(t, newest.ID, commands[0].ID)
	assert.Equal(t, middle.ID, commands[1].ID)
	assert.Equal(t, oldest.ID, commands[2].ID)
}

func TestListRecentTieBreaksByIDDescending(t *testing.T) {
	repo := newTestRepo(t)
	ts := time.Now().Truncate(time.Second)
	first := createCommand(t, repo, models.Command{ShortID: "tie001", Name: "first", CreatedAt: ts})
	second := createCommand(t, repo, models.Command{ShortID: "tie002", Name: "second", CreatedAt: ts})

	commands, _, err := repo.List(models.ListParams{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, commands, 2)
	assert.Equal(t, second.ID, commands[0].ID)
	assert.Equal(t, first.ID, commands[1].ID)
}

func TestListTrendingOrdering(t *testing.T) {
	repo := newTestRepo(t)
	low := createCommand(t, repo, models.Command{ShortID: "trnd01", Name: "low", Views: 1})
	high := createCommand(t, repo, models.Command{ShortID: "trnd02", Name: "high", Views: 50})
	mid := createCommand(t, repo, models.Command{ShortID: "trnd03", Name: "mid", Views: 10})

	commands, _, err := repo.List(models.ListParams{Page: 1, Limit: 10, Filter: models.FilterTrending})
	require.NoError(t, err)
	require.Len(t, commands, 3)
	assert.Equal(t, high.ID, commands[0].ID)
	assert.Equal(t, mid.ID, commands[1].ID)
	assert.Equal(t, low.ID, commands[2].ID)
}

func TestAggregates(t *testing.T) {
	repo := newTestRepo(t)

	total, err := repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
	likes, err := repo.SumLikes()
	require.NoError(t, err)
	assert.EqualValues(t, 0, likes)
	shares, err := repo.SumShares()
	require.NoError(t, err)
	assert.EqualValues(t, 0, shares)

	createCommand(t, repo, models.Command{ShortID: "agg001", Name: "a", Likes: 3, Shares: 2})
	createCommand(t, repo, models.Command{ShortID: "agg002", Name: "b", Likes: 5})

	total, err = repo.Count()
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	likes, err = repo.SumLikes()
	require.NoError(t, err)
	assert.EqualValues(t, 8, likes)
	shares, err = repo.SumShares()
	require.NoError(t, err)
	assert.EqualValues(t, 2, shares)
}
