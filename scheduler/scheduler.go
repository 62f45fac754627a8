package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"productconsole/logger"
)

// Job is a unit of periodic work. The context is cancelled when the scheduler stops.
type Job func(ctx context.Context) error

// Scheduler runs named jobs on cron specs.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
}

// New creates a stopped scheduler. Panicking jobs are recovered and logged.
func New() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	log := cronLogger{}
	return &Scheduler{
		cron: cron.New(
			cron.WithLogger(log),
			cron.WithChain(cron.Recover(log), cron.SkipIfStillRunning(log)),
		),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Add registers job under spec ("@hourly", "@every 10m", or a 5-field expression).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		s.run(name, job)
	})
	if err != nil {
		return fmt.Errorf("schedule %s (%q): %w", name, spec, err)
	}
	return nil
}

// RunNow runs job once on the calling goroutine, the way a job runs at startup.
func (s *Scheduler) RunNow(name string, job Job) {
	s.run(name, job)
}

func (s *Scheduler) run(name string, job Job) {
	start := time.Now()
	err := job(s.ctx)
	fields := map[string]interface{}{
		"job":         name,
		"duration_ms": time.Since(start).Milliseconds(),
	}
	if err != nil {
		fields["error"] = err.Error()
		logger.WithFields(fields).Error("Scheduled task failed")
		return
	}
	logger.WithFields(fields).Debug("Scheduled task finished")
}

// Start 스케줄러 시작
func (s *Scheduler) Start() {
	logger.Info("Scheduler started")
	s.cron.Start()
}

// Stop halts scheduling and waits for running jobs until ctx is done.
func (s *Scheduler) Stop(ctx context.Context) {
	s.cancel()
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
	}
}

// cronLogger adapts the logger package to cron.Logger.
type cronLogger struct{}

func (cronLogger) Info(msg string, keysAndValues ...interface{}) {
	logger.WithFields(pairs(keysAndValues)).Debug("cron: %s", msg)
}

func (cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	fields := pairs(keysAndValues)
	fields["error"] = fmt.Sprint(err)
	logger.WithFields(fields).Error("cron: %s", msg)
}

func pairs(keysAndValues []interface{}) map[string]interface{} {
	fields := make(map[string]interface{}, len(keysAndValues)/2+1)
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fields[fmt.Sprint(keysAndValues[i])] = keysAndValues[i+1]
	}
	return fields
}
