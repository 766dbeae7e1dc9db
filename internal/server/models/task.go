package models

import "time"

// Task is a unit of work owned by exactly one account.
type Task struct {
	ID           int64
	AccountID    int64
	Name         string
	Description  string
	Done         bool
	LastModified time.Time
}

// TaskStats summarises an account's tasks: how many exist and the highest id.
type TaskStats struct {
	Count    int64
	LatestID int64
}
