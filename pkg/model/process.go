package model

// ProcessRecord is one render-worker process seen in a process table.
// PID is kept exactly as the OS printed it so it can be handed straight
// back to the kill and validate commands.
type ProcessRecord struct {
	Name string `json:"name"`
	PID  string `json:"pid"`
}
