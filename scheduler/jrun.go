package scheduler

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/rs/zerolog"

	"github.com/jpfluger/recurschedule/aerr"
)

// IJRun describes one execution of a JobPlan's Task.
type IJRun interface {
	GetJobPlanId() uuid.UUID
	GetJobPlanTitle() string
	GetTaskType() TaskType
	Begin()
	End()
	IsFinished() bool
	GetError() error
	SetError(error)
	GetStartTime() time.Time
	GetEndTime() *time.Time
	GetLogs() []string
	SaveLogs(filePath string) error
	Logger() *zerolog.Logger
}

type IJRuns []IJRun

// JRun records the outcome of a single occurrence run: its log lines,
// timing, and any error, keyed back to the JobPlan that produced it.
type JRun struct {
	Error        *aerr.Error    `json:"error,omitempty"`
	StartTime    time.Time      `json:"startTime"`
	EndTime      *time.Time     `json:"endTime,omitempty"`
	Logs         []string       `json:"logs,omitempty"`
	JobPlanId    uuid.UUID      `json:"jobPlanId"`
	JobPlanTitle string         `json:"jobPlanTitle"`
	TaskType     TaskType       `json:"taskType"`

	logger zerolog.Logger
	mu     sync.RWMutex
	logMu  sync.Mutex
}

// logJRunWriter is an io.Writer that appends each write to Logs.
type logJRunWriter struct {
	j *JRun
}

func (lw *logJRunWriter) Write(p []byte) (n int, err error) {
	lw.j.logMu.Lock()
	defer lw.j.logMu.Unlock()
	lw.j.Logs = append(lw.j.Logs, string(p))
	return len(p), nil
}

// NewJRun creates an empty JRun with an initialized logger.
func NewJRun() *JRun {
	return NewJRunWithOptions(uuid.Nil, "", "")
}

// NewJRunWithOptions creates a JRun tagged with its owning JobPlan's id,
// title, and task type.
func NewJRunWithOptions(jobPlanId uuid.UUID, jobPlanTitle string, taskType TaskType) *JRun {
	j := &JRun{
		Logs:         []string{},
		JobPlanId:    jobPlanId,
		JobPlanTitle: jobPlanTitle,
		TaskType:     taskType,
	}
	j.logger = zerolog.New(&logJRunWriter{j: j}).With().Timestamp().Str("jobPlanId", jobPlanId.String()).Logger()
	return j
}

func (j *JRun) Logger() *zerolog.Logger {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return &j.logger
}

func (j *JRun) Begin() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.StartTime = time.Now()
	j.logger.Info().Msg("occurrence started")
}

var ErrStartTimeHasNoValue = errors.New("start time has no value")

func (j *JRun) End() {
	j.mu.Lock()
	defer j.mu.Unlock()
	now := time.Now().UTC()
	if j.StartTime.IsZero() {
		if j.Error == nil {
			j.Error = aerr.NewError(ErrStartTimeHasNoValue)
		} else {
			j.Error = aerr.NewError(fmt.Errorf("%v; %v", ErrStartTimeHasNoValue, j.Error.Error()))
		}
		j.StartTime = now
	}
	j.EndTime = &now
	j.logger.Info().Msg("occurrence ended")
}

func (j *JRun) GetJobPlanId() uuid.UUID {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.JobPlanId
}

func (j *JRun) GetJobPlanTitle() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.JobPlanTitle
}

func (j *JRun) GetTaskType() TaskType {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.TaskType
}

func (j *JRun) IsFinished() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.EndTime != nil
}

func (j *JRun) GetError() error {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.Error != nil {
		return j.Error.ToError()
	}
	return nil
}

func (j *JRun) SetError(err error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Error = aerr.NewError(err)
}

func (j *JRun) GetStartTime() time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.StartTime
}

func (j *JRun) GetEndTime() *time.Time {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.EndTime
}

func (j *JRun) GetLogs() []string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Logs
}

// SaveLogs writes the captured log lines to filePath, one per Write call.
func (j *JRun) SaveLogs(filePath string) error {
	logFile, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create log file %s: %v", filePath, err)
	}
	defer logFile.Close()

	for _, log := range j.GetLogs() {
		if _, err := logFile.WriteString(log); err != nil {
			return fmt.Errorf("failed to write log to file %s: %v", filePath, err)
		}
	}
	return nil
}
