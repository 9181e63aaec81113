package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/model"
)

func TestTaskRepository_RoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	hours := 2.5
	due := time.Date(2025, time.October, 15, 0, 0, 0, 0, time.UTC)

	task := &model.Task{
		UserID:         owner,
		CategoryID:     uuid.New(),
		Title:          "write report",
		Description:    "quarterly numbers",
		Priority:       model.PriorityHigh,
		EstimatedHours: &hours,
		DueDate:        &due,
	}
	require.NoError(t, repo.Create(ctx, task))

	got, err := repo.FindByID(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.Title, got.Title)
	assert.Equal(t, task.Description, got.Description)
	assert.Equal(t, task.Priority, got.Priority)
	assert.Equal(t, hours, *got.EstimatedHours)
	assert.True(t, due.Equal(*got.DueDate))
	// Status defaults at insert time.
	assert.Equal(t, model.StatusPending, got.Status)
}

func TestTaskRepository_OwnershipIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	ownerA := uuid.New()
	ownerB := uuid.New()

	mine := &model.Task{UserID: ownerA, CategoryID: uuid.New(), Title: "mine"}
	require.NoError(t, repo.Create(ctx, mine))
	require.NoError(t, repo.Create(ctx, &model.Task{UserID: ownerB, CategoryID: uuid.New(), Title: "theirs"}))

	listed, err := repo.ListByOwner(ctx, ownerA)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, "mine", listed[0].Title)

	_, err = repo.FindByID(ctx, ownerB, mine.ID)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	rows, err := repo.Delete(ctx, ownerB, mine.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}

func TestTaskRepository_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	task := &model.Task{UserID: owner, CategoryID: uuid.New(), Title: "draft"}
	require.NoError(t, repo.Create(ctx, task))

	task.Title = "final"
	task.Status = model.StatusCompleted
	require.NoError(t, repo.Update(ctx, task))

	got, err := repo.FindByID(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, model.StatusCompleted, got.Status)
}

func TestTaskRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTaskRepository(db)
	ctx := context.Background()

	owner := uuid.New()
	task := &model.Task{UserID: owner, CategoryID: uuid.New(), Title: "ephemeral"}
	require.NoError(t, repo.Create(ctx, task))

	rows, err := repo.Delete(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), rows)

	rows, err = repo.Delete(ctx, owner, task.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), rows)
}
