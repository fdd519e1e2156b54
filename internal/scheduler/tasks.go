// Package scheduler runs background jobs on asynq: the periodic reminder
// scan plus ad-hoc scans enqueued over HTTP.
package scheduler

import (
	"github.com/hibiken/asynq"
)

const TaskReminderScan = "reminders.scan"

// NewReminderScanTask builds the scan task. The scan has no parameters;
// every run processes whatever is due.
func NewReminderScanTask() *asynq.Task {
	return asynq.NewTask(TaskReminderScan, nil)
}
