package domain

import "time"

// Task is a unit of work. ID is assigned by the store's sequence at creation
// and never reused; Title is unique across all tasks.
type Task struct {
	ID          int64     `json:"taskId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"createdAt"`
}
