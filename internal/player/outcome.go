package player

// Outcome is the terminal state of one preview playback invocation.
type Outcome int

const (
	// OutcomeCompleted means the stream played to the end of the buffer.
	OutcomeCompleted Outcome = iota
	// OutcomeStopped means the user issued an explicit stop.
	OutcomeStopped
	// OutcomeSeekedPastEnd means a seek landed at or beyond the buffer end.
	OutcomeSeekedPastEnd
	// OutcomeInterrupted means the user sent an interrupt signal.
	OutcomeInterrupted
	// OutcomeErrored means the control loop failed while waiting for input.
	OutcomeErrored
)

func (o Outcome) String() string {
	switch o {
	case OutcomeCompleted:
		return "completed"
	case OutcomeStopped:
		return "stopped"
	case OutcomeSeekedPastEnd:
		return "seeked past end"
	case OutcomeInterrupted:
		return "interrupted"
	case OutcomeErrored:
		return "errored"
	default:
		return "unknown"
	}
}
