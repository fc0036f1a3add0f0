// Package scheduler runs a job on a fixed interval, with synchronous
// start/stop control. The relay uses it to keep the balance snapshot warm.
package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// Job is the work executed on every tick.
type Job interface {
	Run(ctx context.Context) error
}

// JobFunc adapts a plain function to Job.
type JobFunc func(ctx context.Context) error

func (f JobFunc) Run(ctx context.Context) error { return f(ctx) }

// Scheduler exposes a small control surface. IsRunning reports whether ticks
// are being accepted, not whether a run is in flight.
type Scheduler interface {
	Start() error
	Stop() error
	IsRunning() bool
}

const (
	// DefaultInterval is used when no interval is configured.
	DefaultInterval = 5 * time.Minute

	// DefaultRunTimeout bounds a single job run.
	DefaultRunTimeout = 15 * time.Second

	// controlTimeout bounds how long Start/Stop wait on the control loop.
	controlTimeout = 2 * time.Second
)

var (
	ErrNotResponding = errors.New("scheduler: control loop not responding")
	ErrAckTimeout    = errors.New("scheduler: acknowledgement timeout")
)

type controlOp int

const (
	opStart controlOp = iota
	opStop
	opStatus
)

type controlMsg struct {
	op   controlOp
	resp chan bool
}

// tickerScheduler keeps all mutable state inside the loop goroutine.
type tickerScheduler struct {
	name       string
	job        Job
	interval   time.Duration
	runTimeout time.Duration
	ctrl       chan controlMsg
	log        zerolog.Logger
}

// New creates a scheduler that runs job every interval once started.
// Non-positive durations fall back to the defaults. The control loop lives for
// the lifetime of the process.
func New(name string, job Job, interval, runTimeout time.Duration, log zerolog.Logger) Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if runTimeout <= 0 {
		runTimeout = DefaultRunTimeout
	}

	s := &tickerScheduler{
		name:       name,
		job:        job,
		interval:   interval,
		runTimeout: runTimeout,
		ctrl:       make(chan controlMsg),
		log:        log.With().Str("scheduler", name).Logger(),
	}

	go s.loop()

	return s
}

// Start begins accepting ticks. The first run happens on the next tick.
func (s *tickerScheduler) Start() error {
	return s.send(opStart)
}

// Stop stops accepting ticks. If a run is in flight, Stop returns once it
// finishes or times out.
func (s *tickerScheduler) Stop() error {
	return s.send(opStop)
}

func (s *tickerScheduler) send(op controlOp) error {
	resp := make(chan bool, 1)

	select {
	case s.ctrl <- controlMsg{op: op, resp: resp}:
	case <-time.After(controlTimeout):
		return ErrNotResponding
	}

	// A Stop issued mid-run is acknowledged only after the run, which is
	// itself bounded by runTimeout.
	wait := controlTimeout
	if op == opStop {
		wait += s.runTimeout
	}

	select {
	case <-resp:
		return nil
	case <-time.After(wait):
		return ErrAckTimeout
	}
}

func (s *tickerScheduler) IsRunning() bool {
	resp := make(chan bool, 1)
	s.ctrl <- controlMsg{op: opStatus, resp: resp}
	return <-resp
}

func (s *tickerScheduler) loop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	running := false

	// done is non-nil while a run is in flight.
	var done chan error
	var pendingStop []chan bool

	for {
		select {
		case msg := <-s.ctrl:
			switch msg.op {
			case opStart:
				if !running {
					s.log.Info().Dur("interval", s.interval).Dur("run_timeout", s.runTimeout).Msg("started")
				}
				running = true
				msg.resp <- true

			case opStop:
				running = false
				if done != nil {
					s.log.Info().Msg("stop requested, waiting for current run")
					pendingStop = append(pendingStop, msg.resp)
					continue
				}
				s.log.Info().Msg("stopped")
				msg.resp <- true

			case opStatus:
				msg.resp <- running
			}

		case <-ticker.C:
			if !running || done != nil {
				continue
			}

			done = make(chan error, 1)
			go func(done chan<- error) {
				ctx, cancel := context.WithTimeout(context.Background(), s.runTimeout)
				defer cancel()
				done <- s.job.Run(ctx)
			}(done)

		case err := <-done:
			done = nil
			if err != nil {
				s.log.Warn().Err(err).Msg("run failed")
			} else {
				s.log.Debug().Msg("run completed")
			}

			for _, resp := range pendingStop {
				resp <- true
			}
			if len(pendingStop) > 0 {
				s.log.Info().Msg("stopped")
			}
			pendingStop = nil
		}
	}
}
