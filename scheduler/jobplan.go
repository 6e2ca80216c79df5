package scheduler

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gocron "github.com/go-co-op/gocron/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/jpfluger/recurschedule/atime"
	"github.com/jpfluger/recurschedule/bizday"
	"github.com/jpfluger/recurschedule/recur"
)

// JobPlan is a job definition for the gocron-backed Scheduler: a
// recurrence Spec in place of a crontab string, plus run-window
// (StartAt/EndAt), run-count (RunLimit), and time-of-day (AllowedWindows)
// bounds on when its occurrences may fire.
type JobPlan struct {
	Spec           string                  `json:"spec,omitempty"`
	RunImmediately bool                    `json:"runImmediately,omitempty"`
	RunLimit       int                     `json:"runLimit,omitempty"`
	TimeZone       string                  `json:"timeZone,omitempty"`
	StartAt        *time.Time              `json:"startAt,omitempty"`
	EndAt          *time.Time              `json:"endAt,omitempty"`
	AllowedWindows atime.AllowedTimeRanges `json:"allowedWindows,omitempty"`
	Task           ITask                   `json:"-"`

	JobPlanId uuid.UUID `json:"jobPlanId,omitempty"`
	Title     string    `json:"title,omitempty"`

	isValidated bool
	recurSpec   recur.Spec
	oracle      bizday.Oracle
	loc         *time.Location
	utcStartAt  time.Time
	utcEndAt    time.Time

	cronJobId uuid.UUID
	runCount  int

	filePath string
	lastJRun IJRun

	mu sync.RWMutex
}

// SetOracle overrides the business-day Oracle consulted when resolving
// the Spec's adjustment clause. Defaults to bizday.NewWeekendSkipper()
// when unset.
func (j *JobPlan) SetOracle(oracle bizday.Oracle) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.oracle = oracle
}

// Validate normalizes and checks the job plan, parsing Spec into a
// recur.Spec in the process.
func (j *JobPlan) Validate() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.validate()
}

func (j *JobPlan) validate() error {
	if j.JobPlanId == uuid.Nil {
		id, err := uuid.NewV7()
		if err != nil {
			return fmt.Errorf("failed to generate job plan id: %v", err)
		}
		j.JobPlanId = id
	}
	j.Title = strings.TrimSpace(j.Title)

	j.Spec = strings.TrimSpace(j.Spec)
	if j.Spec != "" {
		parsed, err := recur.Parse(j.Spec)
		if err != nil {
			return fmt.Errorf("invalid recurrence spec: %v", err)
		}
		j.recurSpec = parsed
	}

	if j.oracle == nil {
		j.oracle = bizday.NewWeekendSkipper()
	}

	if j.RunLimit < 0 {
		j.RunLimit = 0
	}

	tz := strings.TrimSpace(j.TimeZone)
	if tz == "" {
		tz = "UTC"
	}
	if tz != "UTC" && tz != "Local" && !atime.IsKnownTimeZone(tz) {
		return fmt.Errorf("invalid timezone: %q is not a known IANA zone", tz)
	}
	loc, err := atime.GetLocation(tz)
	if err != nil {
		return fmt.Errorf("invalid timezone: %v", err)
	}
	j.loc = loc

	if j.StartAt != nil {
		j.utcStartAt = j.StartAt.In(loc).UTC()
		if j.utcStartAt.Before(time.Now().UTC()) {
			return fmt.Errorf("startAt must not be in the past")
		}
	}

	if j.EndAt != nil {
		j.utcEndAt = j.EndAt.In(loc).UTC()
		if j.utcEndAt.Before(time.Now().UTC()) {
			return fmt.Errorf("endAt must not be in the past")
		}
		if !j.utcStartAt.IsZero() && j.utcStartAt.After(j.utcEndAt) {
			return fmt.Errorf("startAt must be before endAt")
		}
	}

	if j.Spec == "" && j.utcStartAt.IsZero() && !j.RunImmediately {
		if j.RunLimit == 1 {
			j.RunImmediately = true
		} else {
			return fmt.Errorf("spec, startAt, or runImmediately is required")
		}
	}

	if len(j.AllowedWindows) > 0 {
		if err := j.AllowedWindows.Validate(); err != nil {
			return fmt.Errorf("invalid allowed windows: %v", err)
		}
		for _, w := range j.AllowedWindows {
			w.SetTimeZone(loc)
		}
	}

	if j.Task == nil {
		return fmt.Errorf("task is required")
	}
	if err := j.Task.Validate(); err != nil {
		return fmt.Errorf("failed task validation: %v", err)
	}

	j.isValidated = true

	return nil
}

// nextOccurrence returns the first Spec occurrence strictly after after
// that also falls inside AllowedWindows (when configured), or ok=false if
// the Spec has none (e.g. exhausted a sorted Values year axis), none of
// its remaining occurrences fall in an allowed window, or there is no
// Spec at all.
func (j *JobPlan) nextOccurrence(after time.Time) (t time.Time, ok bool, err error) {
	if j.Spec == "" {
		return time.Time{}, false, nil
	}
	it := recur.NewAfter(j.recurSpec, after, j.oracle)
	for {
		result, err := it.Next()
		if err != nil {
			if rerr, isRerr := err.(*recur.Error); isRerr && rerr.Kind == recur.ErrNextDateCalc {
				return time.Time{}, false, nil
			}
			return time.Time{}, false, err
		}
		if result == nil {
			return time.Time{}, false, nil
		}
		if len(j.AllowedWindows) == 0 || j.AllowedWindows.IsAllowedAt(result.Observed) {
			return result.Observed, true, nil
		}
	}
}

// SetupGoCronJob builds the gocron.JobDefinition and options for the
// plan's first run. When Spec is set, the job definition is a OneTimeJob
// at the Spec's first occurrence; the Scheduler's task wrapper
// re-registers a fresh OneTimeJob for each subsequent occurrence, since
// gocron's native CronJob has no way to consume a recur.Spec directly.
func (j *JobPlan) SetupGoCronJob() (gocron.JobDefinition, []gocron.JobOption, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if !j.isValidated {
		if err := j.validate(); err != nil {
			return nil, nil, fmt.Errorf("failed validation: %v", err)
		}
	}

	var options []gocron.JobOption

	// WithSingletonMode keeps an occurrence from overlapping a still-running
	// previous one; LimitModeReschedule skips the overlapping run instead of
	// queuing it.
	options = append(options, gocron.WithSingletonMode(gocron.LimitModeReschedule))

	if j.RunLimit > 0 {
		options = append(options, gocron.WithLimitedRuns(uint(j.RunLimit)))
	}

	if j.RunImmediately {
		options = append(options, gocron.JobOption(gocron.WithStartImmediately()))
	}

	if !j.utcStartAt.IsZero() {
		options = append(options, gocron.JobOption(gocron.WithStartDateTime(j.utcStartAt)))
	}

	if !j.utcEndAt.IsZero() {
		options = append(options, gocron.JobOption(gocron.WithStopDateTime(j.utcEndAt)))
	}

	anchor := j.utcStartAt
	if anchor.IsZero() {
		anchor = time.Now().UTC()
	}

	var jobDef gocron.JobDefinition
	if j.Spec != "" {
		first, ok, err := j.nextOccurrence(anchor.Add(-time.Nanosecond))
		if err != nil {
			return nil, nil, fmt.Errorf("failed to compute first occurrence: %v", err)
		}
		if !ok {
			return nil, nil, fmt.Errorf("recurrence spec has no occurrences after %s", anchor)
		}
		jobDef = gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(first))
	} else if j.utcStartAt.IsZero() {
		jobDef = gocron.OneTimeJob(gocron.OneTimeJobStartImmediately())
	} else {
		jobDef = gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(j.utcStartAt))
	}

	return jobDef, options, nil
}

func (j *JobPlan) GetJobPlanId() uuid.UUID {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.JobPlanId
}

func (j *JobPlan) GetTitle() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Title
}

func (j *JobPlan) GetCronJobId() uuid.UUID {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.cronJobId
}

func (j *JobPlan) SetCronJobId(id uuid.UUID) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.cronJobId = id
}

func (j *JobPlan) GetLastJRun() IJRun {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.lastJRun
}

func (j *JobPlan) SetLastJRun(jRun IJRun) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.lastJRun = jRun
}

func (j *JobPlan) GetTask() ITask {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.Task
}

func (j *JobPlan) GetFilePath() string {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.filePath
}

func (j *JobPlan) SetFilePath(filePath string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.filePath = filePath
}

// hasMoreRuns reports whether the plan is still under RunLimit (0 means
// unlimited).
func (j *JobPlan) hasMoreRuns() bool {
	j.mu.RLock()
	defer j.mu.RUnlock()
	return j.RunLimit == 0 || j.runCount < j.RunLimit
}

func (j *JobPlan) markRun() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.runCount++
}

// RunJobPlanDefault runs the plan's Task once, recording the outcome
// into ccc's JRun.
func (j *JobPlan) RunJobPlanDefault(ccc ICronControlCenter) (IJRun, error) {
	if ccc == nil {
		return nil, fmt.Errorf("ccc is nil")
	}
	if ccc.GetJRun() == nil {
		return nil, fmt.Errorf("jrun not found in job plan '%s'", j.Title)
	}

	ccc.GetJRun().Begin()

	err := j.GetTask().Run(ccc)
	if err != nil {
		if ccc.GetJRun().GetError() == nil {
			ccc.GetJRun().SetError(err)
		}
	}

	ccc.GetJRun().End()

	j.mu.Lock()
	j.lastJRun = ccc.GetJRun()
	j.mu.Unlock()
	j.markRun()

	return ccc.GetJRun(), err
}

// JobPlans is a slice of pointers to JobPlan structs.
type JobPlans []*JobPlan
