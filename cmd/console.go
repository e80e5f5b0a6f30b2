package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/shlex"
)

const maxConsoleLine = 64

const consoleHelp = "commands: status | trigger | rotate | sample <reading> | help"

// Console runs debug commands against the scheduler. It is fed from the
// control loop, never from an interrupt.
type Console struct {
	sched *Scheduler
	line  []byte
	drop  bool
}

func NewConsole(s *Scheduler) *Console {
	return &Console{sched: s, line: make([]byte, 0, maxConsoleLine)}
}

// Feed assembles bytes into lines. It returns a reply when a line ends.
func (c *Console) Feed(b byte, now uint32) (string, bool) {
	switch b {
	case '\r', '\n':
		if c.drop {
			c.drop = false
			c.line = c.line[:0]
			return "error: line too long", true
		}
		if len(c.line) == 0 {
			return "", false
		}
		line := string(c.line)
		c.line = c.line[:0]
		return c.Exec(line, now), true
	}
	if len(c.line) >= maxConsoleLine {
		c.drop = true
		return "", false
	}
	c.line = append(c.line, b)
	return "", false
}

// Exec runs one command line.
func (c *Console) Exec(line string, now uint32) string {
	args, err := shlex.Split(line)
	if err != nil {
		return "error: " + err.Error()
	}
	if len(args) == 0 {
		return ""
	}

	switch strings.ToLower(args[0]) {
	case "help", "?":
		return consoleHelp
	case "status":
		return FormatStatus(c.sched.Status())
	case "trigger":
		c.sched.Trigger(now)
		return "ok: " + c.sched.Mode().String()
	case "rotate":
		c.sched.RotateNow(now)
		return "ok: " + formatPalette(c.sched.Palette())
	case "sample":
		if len(args) != 2 {
			return "usage: sample <reading>"
		}
		v, err := strconv.ParseUint(args[1], 10, 16)
		if err != nil {
			return "error: " + err.Error()
		}
		c.sched.Tick(now, uint16(v))
		return fmt.Sprintf("ok: present=%t mode=%s", c.sched.Present(), c.sched.Mode())
	default:
		return "unknown command: " + args[0]
	}
}

func FormatStatus(st Status) string {
	return fmt.Sprintf("mode=%s present=%t frame=%d reps=%d alert_step=%d on=%d off=%d pushes=%d failures=%d palette=%s",
		st.Mode, st.Present, st.Body.Frame(), st.Body.Reps, st.AlertStep,
		st.On, st.Off, st.Pushes, st.Failures, formatPalette(st.Palette))
}

func formatPalette(p Palette) string {
	parts := make([]string, 0, FaceCount)
	for face, c := range p {
		parts = append(parts, fmt.Sprintf("%s:#%02x%02x%02x", Face(face), c.R, c.G, c.B))
	}
	return strings.Join(parts, ",")
}
