package schema

import "time"

// ProcessState is the lifecycle state of a background process
type ProcessState string

const (
	// ProcessStateRunning means a sweep is in progress
	ProcessStateRunning ProcessState = "RUNNING"
	// ProcessStateOK means the last sweep finished cleanly
	ProcessStateOK ProcessState = "OK"
	// ProcessStateError means the last sweep aborted on a transient failure
	ProcessStateError ProcessState = "ERROR"
)

// ProcessStatusName is the analyzer's row in processes_status
const ProcessStatusName = "game_events_analyzer"

// ProcessStatus represents the processes_status table - the operator-facing
// status record of a background process, including its rolling log
type ProcessStatus struct {
	// Name identifies the process
	Name string `gorm:"column:name;primaryKey;type:text"`
	// Status is the current lifecycle state (RUNNING, OK, ERROR)
	Status ProcessState `gorm:"column:status;not null;type:text"`
	// Log is a rolling human-readable log, newest line first, capped at the
	// most recent 10000 lines
	Log string `gorm:"column:log;not null;default:'';type:text"`
	// LastUpdated is the timestamp of the last status transition
	LastUpdated time.Time `gorm:"column:last_updated;not null;default:now();type:timestamptz"`
	// LastFinished is the timestamp the last sweep completed (OK or ERROR)
	LastFinished *time.Time `gorm:"column:last_finished;type:timestamptz"`
}

// TableName specifies the table name for the ProcessStatus model
func (ProcessStatus) TableName() string {
	return "processes_status"
}
