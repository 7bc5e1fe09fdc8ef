package events

// Event type constants for kelindar/event.
const (
	TypeCommandExecuted uint32 = iota + 1
	TypeListingCompleted
	TypeSnapshotTaken
	TypeProcessKilled
	TypeKillSkipped
	TypeKillFailed
)

// Event interface required by kelindar/event.
type Event interface {
	Type() uint32
}

// CommandExecutedEvent is published after every external command.
type CommandExecutedEvent struct {
	Command  string  `json:"command"`
	Seconds  float64 `json:"seconds"`
	Launched bool    `json:"launched"`
}

// Type returns the event type identifier for CommandExecutedEvent.
func (e CommandExecutedEvent) Type() uint32 { return TypeCommandExecuted }

// ListingCompletedEvent reports the outcome of one directory enumeration.
// Outcome is "ok", "error" or "invalid_path".
type ListingCompletedEvent struct {
	Path    string `json:"path"`
	Kind    string `json:"kind"`
	Outcome string `json:"outcome"`
	Records int    `json:"records"`
}

// Type returns the event type identifier for ListingCompletedEvent.
func (e ListingCompletedEvent) Type() uint32 { return TypeListingCompleted }

// SnapshotTakenEvent is published when a process monitor is constructed.
type SnapshotTakenEvent struct {
	Bypassed  bool `json:"bypassed"`
	Active    bool `json:"active"`
	Processes int  `json:"processes"`
}

// Type returns the event type identifier for SnapshotTakenEvent.
func (e SnapshotTakenEvent) Type() uint32 { return TypeSnapshotTaken }

// ProcessKilledEvent is published after a validated kill command ran.
type ProcessKilledEvent struct {
	PID string `json:"pid"`
}

// Type returns the event type identifier for ProcessKilledEvent.
func (e ProcessKilledEvent) Type() uint32 { return TypeProcessKilled }

// KillSkippedEvent is published when a kill was dropped because the PID
// no longer belongs to a recognized process.
type KillSkippedEvent struct {
	PID string `json:"pid"`
}

// Type returns the event type identifier for KillSkippedEvent.
func (e KillSkippedEvent) Type() uint32 { return TypeKillSkipped }

// KillFailedEvent is published when a kill command ran but reported that
// the process was not terminated.
type KillFailedEvent struct {
	PID    string `json:"pid"`
	Output string `json:"output"`
}

// Type returns the event type identifier for KillFailedEvent.
func (e KillFailedEvent) Type() uint32 { return TypeKillFailed }
