package fluid

import (
	"fmt"
	"log"
)

// Sink receives the field every checkpoint interval. The field is the live
// state and must not be retained or modified.
type Sink interface {
	Checkpoint(step int, f *FieldState) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(step int, f *FieldState) error

func (fn SinkFunc) Checkpoint(step int, f *FieldState) error { return fn(step, f) }

// Stepper drives a FieldState through cfg.NT iterations of update,
// boundary enforcement and, every cfg.CheckpointInterval steps, the sinks.
type Stepper struct {
	cfg        Config
	grid       Grid
	field      *FieldState
	updater    *Updater
	boundaries Boundaries
	sinks      []Sink
	logger     *log.Logger

	n int // iterations completed
}

// NewStepper validates cfg and allocates an all-zero field. Sinks are
// called in order at each checkpoint.
func NewStepper(cfg Config, sinks ...Sink) (*Stepper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	g, err := cfg.Grid()
	if err != nil {
		return nil, err
	}
	return &Stepper{
		cfg:        cfg,
		grid:       g,
		field:      NewFieldState(g),
		updater:    NewUpdater(cfg, g),
		boundaries: ChannelBoundaries(cfg.InletVelocity),
		sinks:      sinks,
		logger:     log.Default(),
	}, nil
}

// SetLogger replaces the progress logger. A nil logger restores log.Default.
func (s *Stepper) SetLogger(l *log.Logger) {
	if l == nil {
		l = log.Default()
	}
	s.logger = l
}

func (s *Stepper) Config() Config         { return s.cfg }
func (s *Stepper) Grid() Grid             { return s.grid }
func (s *Stepper) Field() *FieldState     { return s.field }
func (s *Stepper) Boundaries() Boundaries { return s.boundaries }
func (s *Stepper) Iteration() int         { return s.n }
func (s *Stepper) Time() float64          { return float64(s.n) * s.cfg.DT }
func (s *Stepper) Done() bool             { return s.n >= s.cfg.NT }

// Step runs one iteration. It does not stop at cfg.NT; Run does.
func (s *Stepper) Step() error {
	s.n++
	s.updater.Apply(s.field)
	s.boundaries.Apply(s.field)

	if s.cfg.CheckFinite {
		if err := s.field.checkFinite(s.n); err != nil {
			return err
		}
	}

	if s.cfg.LogInterval > 0 && s.n%s.cfg.LogInterval == 0 {
		maxU, maxV := s.field.MaxSpeed()
		s.logger.Printf("step %d/%d t=%.3f max|u|=%.6f max|v|=%.6f max div=%.6f",
			s.n, s.cfg.NT, s.Time(), maxU, maxV, s.field.MaxDivergence(s.grid))
	}

	if s.n%s.cfg.CheckpointInterval == 0 {
		for _, sink := range s.sinks {
			if err := sink.Checkpoint(s.n, s.field); err != nil {
				return fmt.Errorf("checkpoint step %d: %w", s.n, err)
			}
		}
	}
	return nil
}

// Run steps until cfg.NT iterations have completed. The first error ends
// the run.
func (s *Stepper) Run() error {
	s.logger.Printf("Grid spacing: dx=%.6f, dy=%.6f", s.grid.dx, s.grid.dy)
	for !s.Done() {
		if err := s.Step(); err != nil {
			return err
		}
	}
	s.logger.Printf("Run complete after %d steps (t=%.3f)", s.n, s.Time())
	return nil
}
