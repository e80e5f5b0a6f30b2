package cmd

// Controller is one control loop: clock, sensor, scheduler and console.
// Hardware loops call Step on every iteration and Input for every console
// byte, from the same goroutine.
type Controller struct {
	clock   Clock
	sensor  Sensor
	sched   *Scheduler
	console *Console
}

func NewController(clock Clock, sensor Sensor, sched *Scheduler) *Controller {
	return &Controller{
		clock:   clock,
		sensor:  sensor,
		sched:   sched,
		console: NewConsole(sched),
	}
}

// Start arms the scheduler against the current clock value.
func (c *Controller) Start() {
	c.sched.Start(c.clock.Millis())
}

// Step samples the sensor once and advances the scheduler.
func (c *Controller) Step() {
	c.sched.Tick(c.clock.Millis(), c.sensor.Read())
}

// Input feeds one console byte and returns a reply when a line completes.
func (c *Controller) Input(b byte) (string, bool) {
	return c.console.Feed(b, c.clock.Millis())
}

// Exec runs a whole console line.
func (c *Controller) Exec(line string) string {
	return c.console.Exec(line, c.clock.Millis())
}

func (c *Controller) Scheduler() *Scheduler { return c.sched }
