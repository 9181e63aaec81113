package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/IrinaIzq/To-do-list-app/internal/cache"
	apperrors "github.com/IrinaIzq/To-do-list-app/internal/errors"
	"github.com/IrinaIzq/To-do-list-app/internal/model"
	"github.com/IrinaIzq/To-do-list-app/internal/repository"
)

const (
	taskCacheTTL  = 5 * time.Minute
	dueDateLayout = "2006-01-02"
)

// CreateTaskInput carries the fields accepted when creating a task. The
// category may be referenced by id or by name; a name that does not exist
// yet is auto-created.
type CreateTaskInput struct {
	Title          string
	Description    string
	Priority       string
	EstimatedHours *float64
	DueDate        string
	Status         string
	CategoryID     *uuid.UUID
	CategoryName   string
}

// TaskService handles task lifecycle operations and the priority-ordered
// listing.
type TaskService interface {
	Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*model.Task, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Task, error)
	List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch TaskPatch) (*model.Task, error)
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type taskService struct {
	repo        repository.TaskRepository
	categorySvc CategoryService
	cache       *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, categorySvc CategoryService, cache *cache.Client) TaskService {
	return &taskService{
		repo:        repo,
		categorySvc: categorySvc,
		cache:       cache,
	}
}

func (s *taskService) cacheKey(ownerID, id uuid.UUID) string {
	return fmt.Sprintf("task:%s:%s", ownerID, id)
}

// Create validates input, resolves the category reference and persists a
// new task. Category resolution fully completes before the task row is
// written, so a failed resolution leaves nothing behind.
func (s *taskService) Create(ctx context.Context, ownerID uuid.UUID, input CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(input.Title) == "" {
		return nil, apperrors.NewValidation("title required")
	}
	if input.CategoryName == "" && input.CategoryID == nil {
		return nil, apperrors.NewValidation("category is required")
	}
	if input.Priority != "" && !model.ValidPriority(input.Priority) {
		return nil, apperrors.NewValidation("invalid priority")
	}
	if input.EstimatedHours == nil || *input.EstimatedHours < 0 {
		return nil, apperrors.NewValidation("hours must be non-negative")
	}

	status := input.Status
	if status == "" {
		status = model.StatusPending
	}
	if !model.ValidStatus(status) {
		return nil, apperrors.NewValidation("invalid status")
	}

	dueDate, err := parseDueDate(input.DueDate)
	if err != nil {
		return nil, err
	}

	category, err := s.resolveCategory(ctx, ownerID, input.CategoryID, input.CategoryName)
	if err != nil {
		return nil, err
	}

	task := &model.Task{
		ID:             uuid.New(),
		UserID:         ownerID,
		CategoryID:     category.ID,
		Title:          input.Title,
		Description:    input.Description,
		Priority:       input.Priority,
		EstimatedHours: input.EstimatedHours,
		DueDate:        dueDate,
		Status:         status,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	return task, nil
}

// Get retrieves the owner's task by id, with caching.
func (s *taskService) Get(ctx context.Context, ownerID, id uuid.UUID) (*model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(ownerID, id)); data != nil {
		var cached model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task not found")
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if payload, err := json.Marshal(task); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(ownerID, id), payload, taskCacheTTL)
	}
	return task, nil
}

// List returns the owner's tasks in triage order. The ordering is
// recomputed on every call; any task mutation can change a task's rank.
func (s *taskService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	SortTasks(tasks)
	return tasks, nil
}

// Update applies a partial update. Omitted fields stay unchanged; explicit
// nulls clear the optional fields, except the category reference, which a
// task may never lose.
func (s *taskService) Update(ctx context.Context, ownerID, id uuid.UUID, patch TaskPatch) (*model.Task, error) {
	task, err := s.repo.FindByID(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NewNotFound("task not found")
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if patch.Title.Set {
		if !patch.Title.Valid || strings.TrimSpace(patch.Title.Value) == "" {
			return nil, apperrors.NewValidation("title cannot be empty")
		}
		task.Title = patch.Title.Value
	}

	if patch.Description.Set {
		task.Description = patch.Description.Value
	}

	if patch.Status.Set {
		if !patch.Status.Valid || !model.ValidStatus(patch.Status.Value) {
			return nil, apperrors.NewValidation("invalid status")
		}
		task.Status = patch.Status.Value
	}

	if patch.Priority.Set {
		if patch.Priority.Valid && patch.Priority.Value != "" {
			if !model.ValidPriority(patch.Priority.Value) {
				return nil, apperrors.NewValidation("invalid priority")
			}
			task.Priority = patch.Priority.Value
		} else {
			task.Priority = ""
		}
	}

	if patch.EstimatedHours.Set {
		if patch.EstimatedHours.Valid {
			if patch.EstimatedHours.Value < 0 {
				return nil, apperrors.NewValidation("hours must be non-negative")
			}
			hours := patch.EstimatedHours.Value
			task.EstimatedHours = &hours
		} else {
			task.EstimatedHours = nil
		}
	}

	if patch.DueDate.Set {
		if patch.DueDate.Valid && patch.DueDate.Value != "" {
			dueDate, err := parseDueDate(patch.DueDate.Value)
			if err != nil {
				return nil, err
			}
			task.DueDate = dueDate
		} else {
			task.DueDate = nil
		}
	}

	if patch.CategoryName.Set || patch.CategoryID.Set {
		categoryID, categoryName, err := patchCategoryRef(patch)
		if err != nil {
			return nil, err
		}
		category, err := s.resolveCategory(ctx, ownerID, categoryID, categoryName)
		if err != nil {
			return nil, err
		}
		task.CategoryID = category.ID
	}

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, id))
	return task, nil
}

// Delete removes the owner's task. Deleting an already-deleted task is a
// not-found error, never a silent success.
func (s *taskService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	rows, err := s.repo.Delete(ctx, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	if rows == 0 {
		return apperrors.NewNotFound("task not found")
	}

	_ = s.cache.Delete(ctx, s.cacheKey(ownerID, id))
	return nil
}

// resolveCategory turns a category reference into a concrete category. A
// name wins over an id when both are present, matching the create payload
// contract.
func (s *taskService) resolveCategory(ctx context.Context, ownerID uuid.UUID, categoryID *uuid.UUID, categoryName string) (*model.Category, error) {
	if categoryName != "" {
		return s.categorySvc.GetOrCreateByName(ctx, ownerID, categoryName)
	}
	if categoryID != nil {
		return s.categorySvc.Get(ctx, ownerID, *categoryID)
	}
	return nil, apperrors.NewValidation("category is required")
}

// patchCategoryRef extracts the category reference from a patch, rejecting
// explicit nulls: a task may never be detached from its category.
func patchCategoryRef(patch TaskPatch) (*uuid.UUID, string, error) {
	if patch.CategoryName.Set {
		if !patch.CategoryName.Valid || patch.CategoryName.Value == "" {
			return nil, "", apperrors.NewValidation("category is required")
		}
		return nil, patch.CategoryName.Value, nil
	}
	if !patch.CategoryID.Valid {
		return nil, "", apperrors.NewValidation("category is required")
	}
	id := patch.CategoryID.Value
	return &id, "", nil
}

func parseDueDate(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	parsed, err := time.Parse(dueDateLayout, value)
	if err != nil {
		return nil, apperrors.NewValidation("due date must be in YYYY-MM-DD format")
	}
	return &parsed, nil
}

// SortTasks orders tasks by the composite triage key: earliest due date
// first with undated tasks last, then priority rank (High before Medium
// before Low before unset), then larger hour estimates first with missing
// estimates last. Remaining ties keep insertion order.
func SortTasks(tasks []model.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return taskLess(&tasks[i], &tasks[j])
	})
}

func taskLess(a, b *model.Task) bool {
	switch {
	case a.DueDate != nil && b.DueDate == nil:
		return true
	case a.DueDate == nil && b.DueDate != nil:
		return false
	case a.DueDate != nil && b.DueDate != nil:
		if !a.DueDate.Equal(*b.DueDate) {
			return a.DueDate.Before(*b.DueDate)
		}
	}

	if rankA, rankB := model.PriorityRank(a.Priority), model.PriorityRank(b.Priority); rankA != rankB {
		return rankA < rankB
	}

	switch {
	case a.EstimatedHours != nil && b.EstimatedHours == nil:
		return true
	case a.EstimatedHours == nil && b.EstimatedHours != nil:
		return false
	case a.EstimatedHours != nil && b.EstimatedHours != nil:
		if *a.EstimatedHours != *b.EstimatedHours {
			return *a.EstimatedHours > *b.EstimatedHours
		}
	}

	return false
}
