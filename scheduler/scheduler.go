package scheduler

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	gocron "github.com/go-co-op/gocron/v2"
	"github.com/gofrs/uuid/v5"

	"github.com/jpfluger/recurschedule/ajson"
)

// globalCron is a globally accessible gocron.Scheduler instance.
var (
	globalCron gocron.Scheduler
	once       sync.Once
	mutex      sync.Mutex
)

// SCHEDULER returns the global gocron.Scheduler, initializing it with a
// UTC location on first use.
func SCHEDULER() gocron.Scheduler {
	once.Do(func() {
		globalCron, _ = gocron.NewScheduler(gocron.WithLocation(time.UTC))
	})
	return globalCron
}

// SetScheduler replaces the global scheduler instance, optionally
// shutting down and draining the previous one first.
func SetScheduler(scheduler gocron.Scheduler, doReinitWithShutdown bool) error {
	mutex.Lock()
	defer mutex.Unlock()

	if doReinitWithShutdown {
		if err := SCHEDULER().Shutdown(); err != nil {
			return fmt.Errorf("failed shutdown scheduler: %w", err)
		}
	}
	if scheduler == nil {
		scheduler, _ = gocron.NewScheduler(gocron.WithLocation(time.UTC))
	}
	globalCron = scheduler
	return nil
}

// FindJobJSONFiles finds 'job.json' files one subdirectory level deep
// under workingDir.
func FindJobJSONFiles(workingDir string) ([]string, error) {
	pattern := filepath.Join(workingDir, "*", "job.json")
	return filepath.Glob(pattern)
}

// LoadJobJSONFiles loads JobPlan definitions from 'job.json' files found
// in workingDir. Task is never reconstructed from the file's JSON —
// callers attach the appropriate ITask to each JobPlan after loading,
// since the scheduler has no app-wide task-type
// registry to resolve a polymorphic "type" field against.
func LoadJobJSONFiles(workingDir string) (JobPlans, error) {
	files, err := FindJobJSONFiles(workingDir)
	if err != nil {
		return nil, fmt.Errorf("error finding job json files: %v", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	var jobs JobPlans
	for _, file := range files {
		job := &JobPlan{}
		if err := ajson.UnmarshalFile(file, job); err != nil {
			return nil, fmt.Errorf("error unmarshaling job json file: %v", err)
		}
		job.SetFilePath(file)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// LoadJobJSONFilesWithDefaults behaves like LoadJobJSONFiles, but layers
// each job.json over a shared defaultsFile first (e.g. a common TimeZone
// or RunLimit), so individual job files only need to state what differs.
// Fields present in a job.json always win over the defaults.
func LoadJobJSONFilesWithDefaults(workingDir string, defaultsFile string) (JobPlans, error) {
	files, err := FindJobJSONFiles(workingDir)
	if err != nil {
		return nil, fmt.Errorf("error finding job json files: %v", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	var jobs JobPlans
	for _, file := range files {
		job := &JobPlan{}
		opts := ajson.MergeOptions{Files: []string{defaultsFile, file}, StripComments: true}
		if err := ajson.MergeConfigsInto(job, opts); err != nil {
			return nil, fmt.Errorf("error merging job json file %q with defaults: %v", file, err)
		}
		job.SetFilePath(file)
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// AddJobPlan validates jobPlan (if not already validated) and registers
// its first run with the global scheduler.
func AddJobPlan(jobPlan *JobPlan) error {
	jobDef, jobOptions, err := jobPlan.SetupGoCronJob()
	if err != nil {
		return fmt.Errorf("error setting up gocron job: %v", err)
	}

	mutex.Lock()
	defer mutex.Unlock()

	job, err := globalCronOrInit().NewJob(jobDef, gocron.NewTask(runJobPlanAndReschedule, jobPlan), jobOptions...)
	if err != nil {
		return fmt.Errorf("error adding job to scheduler: %v", err)
	}
	jobPlan.SetCronJobId(uuid.UUID(job.ID()))

	return nil
}

func globalCronOrInit() gocron.Scheduler {
	return SCHEDULER()
}

// ScheduleJobPlans registers a batch of job plans with the global
// scheduler.
func ScheduleJobPlans(jobPlans JobPlans) error {
	for _, jobPlan := range jobPlans {
		if err := AddJobPlan(jobPlan); err != nil {
			return fmt.Errorf("error scheduling job: %v", err)
		}
	}
	return nil
}

// runJobPlanAndReschedule runs jobPlan's task once, then — when jobPlan
// carries a recurrence Spec, still has runs remaining under RunLimit, and
// the Spec has a further occurrence before any configured EndAt — adds a
// fresh one-time job for that occurrence. This self-rescheduling chain is
// how the scheduler drives an arbitrary recur.Spec, since gocron's native
// CronJob only understands crontab strings.
func runJobPlanAndReschedule(jobPlan *JobPlan) {
	ccc := &CronControlCenter{}
	ccc.SetJRun(NewJRunWithOptions(jobPlan.GetJobPlanId(), jobPlan.GetTitle(), jobPlan.GetTask().GetType()))

	if _, err := jobPlan.RunJobPlanDefault(ccc); err != nil {
		ccc.GetJRun().Logger().Error().Err(err).Msg("occurrence failed")
	}

	if jobPlan.Spec == "" || !jobPlan.hasMoreRuns() {
		return
	}

	next, ok, err := jobPlan.nextOccurrence(time.Now().UTC())
	if err != nil {
		ccc.GetJRun().Logger().Error().Err(err).Msg("failed to compute next occurrence")
		return
	}
	if !ok {
		return
	}
	if !jobPlan.utcEndAt.IsZero() && next.After(jobPlan.utcEndAt) {
		return
	}

	mutex.Lock()
	defer mutex.Unlock()
	job, err := globalCronOrInit().NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartDateTime(next)),
		gocron.NewTask(runJobPlanAndReschedule, jobPlan),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		ccc.GetJRun().Logger().Error().Err(err).Msg("failed to reschedule next occurrence")
		return
	}
	jobPlan.SetCronJobId(uuid.UUID(job.ID()))
}
