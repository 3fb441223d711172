package interaction

import (
	"log/slog"
	"sync"
)

// Action is the outcome of a wake event.
type Action int

const (
	ActionNone Action = iota
	ActionGreet
	ActionFirstStrike
	ActionSecondStrikeReset
)

// String returns the wire name of the action.
func (a Action) String() string {
	switch a {
	case ActionGreet:
		return "greeting"
	case ActionFirstStrike:
		return "hyanguk_1"
	case ActionSecondStrikeReset:
		return "hyanguk_2"
	default:
		return "none"
	}
}

// StrikeCounter counts consecutive wake events from the blocked identity.
// Increment and Reset are its only mutators and are serialised by a mutex.
type StrikeCounter struct {
	mu    sync.Mutex
	count int
}

// IncrementAndClassify records a strike. The first strike yields
// ActionFirstStrike; the second yields ActionSecondStrikeReset and returns the
// counter to zero in the same critical section.
func (c *StrikeCounter) IncrementAndClassify() (Action, int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.count++
	if c.count >= 2 {
		c.count = 0
		return ActionSecondStrikeReset, 2
	}
	return ActionFirstStrike, c.count
}

// Reset forces the counter to zero.
func (c *StrikeCounter) Reset() {
	c.mu.Lock()
	c.count = 0
	c.mu.Unlock()
}

// Count returns the current number of strikes.
func (c *StrikeCounter) Count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.count
}

// Decision is the result of Machine.Handle.
type Decision struct {
	Action   Action
	Speaker  Speaker
	Greeting string
	// Strikes is the strike number reached by this event, zero for non-strike actions.
	Strikes int
}

// Machine turns a wake flag and a speaker identity into an Action.
type Machine struct {
	strikes *StrikeCounter
	log     *slog.Logger
}

// NewMachine returns a Machine owning a fresh strike counter.
func NewMachine(logger *slog.Logger) *Machine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		strikes: &StrikeCounter{},
		log:     logger.With("component", "interaction.machine"),
	}
}

// Handle decides the action for one utterance. Without a wake word nothing
// changes.
func (m *Machine) Handle(wake bool, speaker Speaker) Decision {
	if !wake {
		return Decision{Action: ActionNone, Speaker: speaker}
	}

	switch speaker {
	case SpeakerHyanguk:
		action, n := m.strikes.IncrementAndClassify()
		m.log.Info("blocked speaker strike", "strike", n, "action", action.String())
		return Decision{Action: action, Speaker: speaker, Strikes: n}
	case SpeakerJiwon, SpeakerMoksa, SpeakerUnknown:
		greeting, _ := Greeting(speaker)
		return Decision{Action: ActionGreet, Speaker: speaker, Greeting: greeting}
	default:
		greeting, _ := Greeting(SpeakerUnknown)
		return Decision{Action: ActionGreet, Speaker: SpeakerUnknown, Greeting: greeting}
	}
}

// Reset zeroes the strike counter.
func (m *Machine) Reset() {
	m.strikes.Reset()
	m.log.Info("strike counter reset")
}

// Strikes returns the current strike count.
func (m *Machine) Strikes() int {
	return m.strikes.Count()
}
