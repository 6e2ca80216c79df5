// Command scheduledemo builds a JobPlan from a recurrence spec, hands it
// to the scheduler, and logs each occurrence as it fires. It
// is a harness for exercising the scheduler package end-to-end, not a
// production daemon.
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/jpfluger/recurschedule/atime"
	"github.com/jpfluger/recurschedule/scheduler"
)

func main() {
	var spec string
	var timeZone string
	var runFor time.Duration
	var listZones bool
	flag.StringVar(&spec, "spec", "YY-MM-2WT09:00:00", "recurrence spec to schedule")
	flag.StringVar(&timeZone, "tz", "America/New_York", "IANA time zone the job runs in")
	flag.DurationVar(&runFor, "for", 30*time.Second, "how long to run the demo before exiting")
	flag.BoolVar(&listZones, "list-zones", false, "print the OS's known IANA time zones and exit")
	flag.Parse()

	if listZones {
		for _, z := range atime.GetOSTimeZones() {
			fmt.Println(z)
		}
		return
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen}).With().Timestamp().Logger()
	log.Logger = logger

	job := &scheduler.JobPlan{
		Title:          "demo-occurrence",
		Spec:           spec,
		TimeZone:       timeZone,
		RunImmediately: true,
		Task: &scheduler.TaskLog{
			Message: "occurrence fired",
		},
	}
	if err := job.Validate(); err != nil {
		logger.Fatal().Err(err).Str("spec", spec).Msg("invalid job plan")
	}

	if err := scheduler.AddJobPlan(job); err != nil {
		logger.Fatal().Err(err).Msg("failed to schedule job")
	}

	logger.Info().
		Str("spec", spec).
		Str("timeZone", timeZone).
		Str("demoEndsIn", atime.FormatDateTimeAgo(time.Now().Add(runFor))).
		Msg("scheduler starting")

	scheduler.SCHEDULER().Start()
	defer func() {
		if err := scheduler.SCHEDULER().StopJobs(); err != nil {
			logger.Error().Err(err).Msg("failed to stop scheduler")
		}
	}()

	time.Sleep(runFor)
	logger.Info().Msg("demo finished")
}
