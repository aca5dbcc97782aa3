package presentation

// DefaultCooldownFrames is how many frames single-trigger actions stay locked
// out after one fires.
const DefaultCooldownFrames = 30

// Cooldown is a frame-counted lockout for single-trigger actions.
//
// Once triggered, the counter advances on every Tick and the gate reopens
// after it exceeds delay, so a trigger blocks the next delay+1 frames
// including its own.
type Cooldown struct {
	delay   int
	counter int
	active  bool
}

// NewCooldown creates an open gate. Negative delays are treated as 0.
func NewCooldown(delay int) Cooldown {
	if delay < 0 {
		delay = 0
	}
	return Cooldown{delay: delay}
}

// Open reports whether single-trigger actions may run.
func (c *Cooldown) Open() bool {
	return !c.active
}

// Trigger closes the gate.
func (c *Cooldown) Trigger() {
	c.active = true
	c.counter = 0
}

// Tick advances the gate by one frame.
func (c *Cooldown) Tick() {
	if !c.active {
		return
	}
	c.counter++
	if c.counter > c.delay {
		c.counter = 0
		c.active = false
	}
}

// Counter returns the frames elapsed since the gate closed.
func (c *Cooldown) Counter() int {
	return c.counter
}

// Delay returns the configured lockout length.
func (c *Cooldown) Delay() int {
	return c.delay
}
