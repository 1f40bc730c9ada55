package events

// Event is a typed notification that knows its topic.
type Event interface {
	Topic() string
}

// CommandReleasedEvent is published after a prompt has been submitted and
// its output captured.
type CommandReleasedEvent struct {
	SessionID string
	Command   string
	Output    string
	Dir       string
}

func (e CommandReleasedEvent) Topic() string {
	return "command.released"
}

// DirectoryChangedEvent is published when the working directory changes.
type DirectoryChangedEvent struct {
	From string
	To   string
}

func (e DirectoryChangedEvent) Topic() string {
	return "directory.changed"
}

// SessionsClearedEvent is published by the clear built-in.
type SessionsClearedEvent struct {
	Discarded int
}

func (e SessionsClearedEvent) Topic() string {
	return "sessions.cleared"
}

// HistoryPersistedEvent is published when history is written on exit.
// Err is non-nil if the write failed.
type HistoryPersistedEvent struct {
	Path    string
	Entries int
	Err     error
}

func (e HistoryPersistedEvent) Topic() string {
	return "history.persisted"
}
