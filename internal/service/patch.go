package service

import (
	"encoding/json"

	"github.com/google/uuid"
)

// Optional distinguishes the three states a field can take in a partial
// update payload: absent, explicitly null, or set to a value. A plain
// pointer cannot tell the first two apart, which is exactly where "clear
// this field" requests go wrong.
type Optional[T any] struct {
	Set   bool
	Valid bool
	Value T
}

// Some returns an Optional holding a value. Used by tests and internal
// callers; JSON decoding populates the flags via UnmarshalJSON.
func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Valid: true, Value: v}
}

// Null returns an Optional representing an explicit null.
func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

// UnmarshalJSON marks the field as supplied and records whether it was null.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Valid = false
		var zero T
		o.Value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.Value); err != nil {
		return err
	}
	o.Valid = true
	return nil
}

// MarshalJSON round-trips the tri-state back to JSON.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.Set || !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// CategoryPatch lists the category fields a partial update may touch.
type CategoryPatch struct {
	Name        Optional[string] `json:"name"`
	Description Optional[string] `json:"description"`
}

// TaskPatch lists the task fields a partial update may touch. Category may
// be supplied either by id or by name; an explicit null for both is
// rejected because a task always belongs to a category.
type TaskPatch struct {
	Title          Optional[string]    `json:"title"`
	Description    Optional[string]    `json:"description"`
	Status         Optional[string]    `json:"status"`
	Priority       Optional[string]    `json:"priority"`
	EstimatedHours Optional[float64]   `json:"estimated_hours"`
	DueDate        Optional[string]    `json:"due_date"`
	CategoryID     Optional[uuid.UUID] `json:"category_id"`
	CategoryName   Optional[string]    `json:"category_name"`
}
