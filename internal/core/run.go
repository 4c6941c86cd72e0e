package core

import "time"

// RunMode identifies which flow produced a job run.
type RunMode string

const (
	RunModeSync  RunMode = "sync"
	RunModeAsync RunMode = "async"
)

// JobRun represents a single completed job run stored in the ledger.
type JobRun struct {
	ID                string
	JobRunID          string
	Mode              RunMode
	Status            int
	Error             bool
	Message           string
	CallbackDelivered bool
	CreatedAt         time.Time
}
