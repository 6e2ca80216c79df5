package scheduler

import (
	"fmt"
)

const TASKTYPE_LOG TaskType = "log"

// TaskLog is the default ITask: it logs a message through the running
// JRun's logger on every occurrence. It is the harness task used by
// cmd/scheduledemo and stands in for the app-specific task a real
// deployment would provide.
type TaskLog struct {
	Type    TaskType `json:"type"`
	Message string   `json:"message,omitempty"`
}

func (tl *TaskLog) GetType() TaskType {
	return tl.Type
}

func (tl *TaskLog) Validate() error {
	if tl.Type.IsEmpty() {
		tl.Type = TASKTYPE_LOG
	}
	if tl.Message == "" {
		return fmt.Errorf("message is required")
	}
	return nil
}

func (tl *TaskLog) Run(ccc ICronControlCenter) error {
	if ccc == nil {
		return fmt.Errorf("nil cronControlCenter")
	}
	ccc.GetJRun().Logger().Info().Msg(tl.Message)
	return nil
}
