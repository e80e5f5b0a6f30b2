package cmd

import "log/slog"

// BodyState tracks the idle body animation. Pair selects frame group {0,1}
// or {2,3}; Step alternates within the group.
type BodyState struct {
	Pair uint8
	Step uint8
	Reps int
	Next uint32
}

// Frame is the body frame index 0..3.
func (b BodyState) Frame() int {
	return int(b.Pair)*2 + int(b.Step)
}

// AlertState tracks the blink sequence started by motion.
type AlertState struct {
	Active bool
	Step   int
	Next   uint32
	Stop   uint32
}

// Status is a snapshot for the console.
type Status struct {
	Mode      Mode
	Present   bool
	Body      BodyState
	AlertStep int
	Palette   Palette
	On, Off   uint16
	Pushes    uint32
	Failures  uint32
}

// Scheduler multiplexes the body, alert and rotation timelines onto one
// buffer. It is owned by the control loop and is not safe for concurrent
// use.
type Scheduler struct {
	cfg     Config
	content *Content
	fan     *Fanout
	logger  *slog.Logger
	deb     *Debouncer

	buf        Buffer
	palette    Palette
	body       BodyState
	alert      AlertState
	nextRotate uint32
}

func NewScheduler(cfg Config, content *Content, fan *Fanout, logger *slog.Logger) *Scheduler {
	if content == nil {
		content = &Content{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Scheduler{
		cfg:     cfg,
		content: content,
		fan:     fan,
		logger:  logger,
		deb:     NewDebouncer(cfg.OnThreshold, cfg.MinGap, cfg.Polarity),
		palette: cfg.Palette,
	}
}

// Start makes the body timeline due at now and arms the rotation timer.
func (s *Scheduler) Start(now uint32) {
	s.body = BodyState{Next: now}
	s.alert = AlertState{}
	s.nextRotate = now + s.cfg.RotateInterval
	s.logger.Info("scheduler started",
		"on", s.deb.OnThreshold(), "off", s.deb.OffThreshold(), "polarity", s.cfg.Polarity.String())
}

// Tick runs one loop iteration: end an expired alert, debounce the
// reading, react to a rising edge, then advance whichever timeline is due.
func (s *Scheduler) Tick(now uint32, reading uint16) {
	// An alert is over once now reaches Stop, so an edge on that tick
	// starts a fresh one.
	if s.alert.Active && Due(now, s.alert.Stop) {
		s.stopAlert(now)
	}

	_, rising, falling := s.deb.Update(reading)
	switch {
	case rising:
		s.logger.Debug("motion detected", "reading", reading)
		s.Trigger(now)
	case falling:
		s.logger.Debug("motion cleared", "reading", reading)
	}

	if s.alert.Active {
		s.tickAlert(now)
		return
	}
	s.tickIdle(now)
}

// Trigger handles a presence rising edge. The palette rotates and the idle
// rotation timer restarts; an alert starts unless one is already running.
func (s *Scheduler) Trigger(now uint32) {
	s.RotateNow(now)
	if s.alert.Active {
		s.logger.Debug("alert already active", "stop", s.alert.Stop)
		return
	}
	s.alert = AlertState{
		Active: true,
		Next:   now,
		Stop:   now + s.cfg.AlertDuration,
	}
	s.logger.Info("alert started", "now", now, "stop", s.alert.Stop)
}

// RotateNow applies the color rotation and pushes the next periodic
// rotation a full interval out.
func (s *Scheduler) RotateNow(now uint32) {
	s.palette.Rotate()
	s.nextRotate = now + s.cfg.RotateInterval
}

func (s *Scheduler) tickAlert(now uint32) {
	if !Due(now, s.alert.Next) {
		return
	}
	layers := s.content.AlertFrame(s.alert.Step)
	s.buf.RenderFrame(layers[:]...)
	for _, face := range AlertOrder {
		s.fan.Publish(&s.buf, face)
	}
	s.alert.Step = (s.alert.Step + 1) % s.cfg.AlertSteps
	s.alert.Next = now + s.cfg.AlertPeriod
}

func (s *Scheduler) stopAlert(now uint32) {
	s.alert = AlertState{}
	s.body.Next = now
	s.logger.Info("alert finished", "now", now)
}

func (s *Scheduler) tickIdle(now uint32) {
	if Due(now, s.nextRotate) {
		s.logger.Debug("idle rotation", "now", now)
		s.RotateNow(now)
	}
	if !Due(now, s.body.Next) {
		return
	}

	s.body.Step ^= 1
	if s.body.Step == 0 {
		s.body.Reps++
		if s.body.Reps >= s.cfg.RepsPerPair {
			s.body.Reps = 0
			s.body.Pair ^= 1
		}
	}

	frame := s.body.Frame()
	for _, face := range BodyOrder {
		layers := s.content.BodyFrame(frame, s.palette[face])
		s.buf.RenderFrame(layers[:]...)
		s.fan.Publish(&s.buf, face)
	}
	s.body.Next = now + s.cfg.BodyPeriod
}

func (s *Scheduler) Mode() Mode {
	if s.alert.Active {
		return ModeAlert
	}
	return ModeIdleBody
}

func (s *Scheduler) Present() bool    { return s.deb.Present() }
func (s *Scheduler) Palette() Palette { return s.palette }

func (s *Scheduler) Status() Status {
	return Status{
		Mode:      s.Mode(),
		Present:   s.deb.Present(),
		Body:      s.body,
		AlertStep: s.alert.Step,
		Palette:   s.palette,
		On:        s.deb.OnThreshold(),
		Off:       s.deb.OffThreshold(),
		Pushes:    s.fan.Pushes(),
		Failures:  s.fan.Failures(),
	}
}
