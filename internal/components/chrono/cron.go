package chrono

import (
	"context"
	"fmt"

	"seektam-backend/internal/components/telemetry"

	"github.com/robfig/cron/v3"
)

// CronAPI is the interface that anything depending on things to happen on a cron job should use.
type CronAPI interface {
	Cron(spec string, callback func()) error
}

// StandardCron is the standard implementation of CronAPI using `github.com/robfig/cron/v3`,
// a job is skipped while its previous run is still going.
type StandardCron struct {
	cron *cron.Cron
}

// NewStandardCron is the constructor of StandardCron, schedules are
// interpreted in the Seoul timezone.
func NewStandardCron(tel telemetry.API) StandardCron {
	logger := cronLogger{tel: tel}
	cronner := cron.New(
		cron.WithLogger(logger),
		cron.WithLocation(seoul),
		cron.WithChain(cron.SkipIfStillRunning(logger)),
	)
	cronner.Start()

	return StandardCron{
		cron: cronner,
	}
}

func (s StandardCron) Cron(spec string, callback func()) error {
	_, err := s.cron.AddFunc(spec, callback)
	return err
}

// Stop stops scheduling jobs, the returned context is done once the
// running ones have finished.
func (s StandardCron) Stop() context.Context {
	return s.cron.Stop()
}

type cronLogger struct {
	tel telemetry.API
}

func (l cronLogger) formatParams(keysAndValues []any) []any {
	params := []any{}
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		params = append(params, fmt.Sprintf("%v: %v", keysAndValues[i], keysAndValues[i+1]))
	}
	return params
}

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.tel.ReportDebug(
		fmt.Sprintf("cron: %s", msg),
		l.formatParams(keysAndValues)...,
	)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	params := append(
		[]any{fmt.Errorf("%s: %w", msg, err)},
		l.formatParams(keysAndValues)...,
	)
	l.tel.ReportBroken("cron", params...)
}
