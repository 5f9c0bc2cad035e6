package logger

// LogEntry is a single line in the event log. Exactly one event field is set.
type LogEntry struct {
	SessionID       string `json:"session_id,omitempty"`
	TimestampMicros int64  `json:"timestamp_micros"`

	RunLine         *RunLine         `json:"run_line,omitempty"`
	LineError       *LineError       `json:"line_error,omitempty"`
	DirectoryChange *DirectoryChange `json:"directory_change,omitempty"`
}

// LogType is implemented by every event.
type LogType interface {
	attach(le *LogEntry)
}

// GetLogType returns the event held by the entry or nil if it has none.
func (le *LogEntry) GetLogType() LogType {
	switch {
	case le.RunLine != nil:
		return le.RunLine
	case le.LineError != nil:
		return le.LineError
	case le.DirectoryChange != nil:
		return le.DirectoryChange
	default:
		return nil
	}
}

// RunLine is logged after a line executes without error.
type RunLine struct {
	Line       string `json:"line"`
	WorkingDir string `json:"working_dir"`
	// Outcome is one of "nothing", "command", "text" or "directory-change".
	Outcome  string `json:"outcome"`
	Program  string `json:"program,omitempty"`
	Stages   int    `json:"stages,omitempty"`
	ExitCode int    `json:"exit_code"`
}

func (e *RunLine) attach(le *LogEntry) { le.RunLine = e }

// LineError is logged when a line fails to lex, parse or execute.
type LineError struct {
	Line       string `json:"line"`
	WorkingDir string `json:"working_dir"`
	// Stage is one of "lexer", "parser" or "executor".
	Stage  string `json:"stage"`
	Kind   string `json:"kind"`
	Binary string `json:"binary,omitempty"`
	Error  string `json:"error"`
}

func (e *LineError) attach(le *LogEntry) { le.LineError = e }

// DirectoryChange is logged when the working directory of a session changes.
type DirectoryChange struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (e *DirectoryChange) attach(le *LogEntry) { le.DirectoryChange = e }
