package scheduler

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jpfluger/recurschedule/atime"
)

type MockITask struct {
	Executed  bool
	FailWith  error
	typeValue TaskType
}

func (m *MockITask) GetType() TaskType {
	if m.typeValue == "" {
		return "mock"
	}
	return m.typeValue
}

func (m *MockITask) Validate() error { return nil }

func (m *MockITask) Run(ccc ICronControlCenter) error {
	m.Executed = true
	return m.FailWith
}

func TestJobPlan_Validate(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		job     JobPlan
		wantErr bool
	}{
		{
			name: "valid job with future start and end dates",
			job: JobPlan{
				Spec:           "YY-MM-DD",
				RunImmediately: true,
				RunLimit:       1,
				StartAt:        &future,
				EndAt:          &future,
				Task:           &MockITask{},
			},
			wantErr: false,
		},
		{
			name: "invalid job with past start date",
			job: JobPlan{
				StartAt: &past,
				Task:    &MockITask{},
			},
			wantErr: true,
		},
		{
			name: "invalid job with start date after end date",
			job: JobPlan{
				StartAt: &future,
				EndAt:   &past,
				Task:    &MockITask{},
			},
			wantErr: true,
		},
		{
			name: "invalid recurrence spec",
			job: JobPlan{
				Spec: "not-a-spec",
				Task: &MockITask{},
			},
			wantErr: true,
		},
		{
			name: "missing task",
			job: JobPlan{
				Spec: "YY-MM-DD",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.job.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestJobPlan_ValidateTimeZones(t *testing.T) {
	start := time.Date(2030, 3, 29, 15, 4, 5, 0, time.UTC)
	end := time.Date(2030, 3, 30, 15, 4, 5, 0, time.UTC)

	tests := []struct {
		name      string
		timeZone  string
		expectErr bool
	}{
		{name: "empty time zone defaults to UTC", timeZone: "", expectErr: false},
		{name: "explicit UTC time zone", timeZone: "UTC", expectErr: false},
		{name: "non-UTC time zone", timeZone: "America/Chicago", expectErr: false},
		{name: "invalid time zone", timeZone: "Invalid/TimeZone", expectErr: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			job := JobPlan{
				TimeZone: tc.timeZone,
				StartAt:  &start,
				EndAt:    &end,
				Task:     &MockITask{},
			}

			err := job.Validate()
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, start.UTC(), job.utcStartAt)
			assert.Equal(t, end.UTC(), job.utcEndAt)
		})
	}
}

func TestJobPlan_SetupGoCronJob(t *testing.T) {
	jobWithSpec := JobPlan{
		Spec: "YY-MM-DD",
		Task: &MockITask{},
	}
	_, optionsWithSpec, err := jobWithSpec.SetupGoCronJob()
	require.NoError(t, err)
	assert.NotEmpty(t, optionsWithSpec)

	jobWithRunLimit := JobPlan{
		RunImmediately: true,
		RunLimit:       1,
		Task:           &MockITask{},
	}
	_, optionsWithRunLimit, err := jobWithRunLimit.SetupGoCronJob()
	require.NoError(t, err)
	assert.NotEmpty(t, optionsWithRunLimit)
}

func TestJobPlan_NextOccurrence(t *testing.T) {
	job := JobPlan{Spec: "YY-MM-DDT12:00:00", Task: &MockITask{}}
	require.NoError(t, job.Validate())

	after := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	next, ok, err := job.nextOccurrence(after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC), next)
}

func TestJobPlan_NextOccurrence_SkipsDisallowedWindow(t *testing.T) {
	allDay := atime.AllowedTimeRanges{{
		Start:           time.Date(0, 1, 1, 0, 0, 0, 0, time.UTC),
		End:             time.Date(0, 1, 1, 23, 59, 59, 0, time.UTC),
		IncludeWeekdays: true,
	}}
	job := JobPlan{Spec: "YY-MM-DDT12:00:00", AllowedWindows: allDay, Task: &MockITask{}}
	require.NoError(t, job.Validate())

	// 2025-06-01 is a Sunday; the daily spec's next occurrence falls on a
	// weekend and should be skipped in favor of Monday's.
	after := time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	next, ok, err := job.nextOccurrence(after)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, time.June, 2, 12, 0, 0, 0, time.UTC), next)
}

func TestJobPlan_RunJobPlanDefault(t *testing.T) {
	task := &MockITask{}
	job := JobPlan{Spec: "YY-MM-DD", Task: task}
	require.NoError(t, job.Validate())

	ccc := &CronControlCenter{}
	ccc.SetJRun(NewJRunWithOptions(job.JobPlanId, job.Title, task.GetType()))

	jrun, err := job.RunJobPlanDefault(ccc)
	require.NoError(t, err)
	assert.True(t, task.Executed)
	assert.True(t, jrun.IsFinished())
	assert.Equal(t, job.GetLastJRun(), jrun)
}
