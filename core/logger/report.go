package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
)

// ReadJSONLinesLog parses a newline delimited JSON log.
func ReadJSONLinesLog(r io.Reader, handler func(le *LogEntry)) error {
	decoder := json.NewDecoder(r)
	for decoder.More() {
		var logEntry LogEntry
		if err := decoder.Decode(&logEntry); err != nil {
			return err
		}

		handler(&logEntry)
	}
	return nil
}

// NewReport creates an empty Report.
func NewReport() *Report {
	return &Report{
		LineError: LineErrorReport{
			Errors: NewPathCounter("stage", "kind", "binary"),
		},
		sessions: make(map[string]bool),
	}
}

// Report holds statistics about the logged events.
type Report struct {
	LogEntries     int        `json:"log_entries"`
	Sessions       int        `json:"sessions"`
	InvalidEntries StrCounter `json:"unknown_log_entries,omitempty"`

	RunLine         RunLineReport         `json:"run_line_report"`
	LineError       LineErrorReport       `json:"line_error_report"`
	DirectoryChange DirectoryChangeReport `json:"directory_change_report"`

	sessions map[string]bool
}

func (r *Report) Update(le *LogEntry) {
	r.LogEntries++

	if le.SessionID != "" && !r.sessions[le.SessionID] {
		r.sessions[le.SessionID] = true
		r.Sessions++
	}

	switch event := le.GetLogType().(type) {
	case *RunLine:
		r.RunLine.update(event)
	case *LineError:
		r.LineError.update(event)
	case *DirectoryChange:
		r.DirectoryChange.update(event)
	default:
		r.InvalidEntries.Increment(fmt.Sprintf("%T", event))
	}
}

type RunLineReport struct {
	Count int `json:"count"`
	// Name of the last program of each line that ran one.
	Programs StrCounter `json:"programs"`
	Outcomes StrCounter `json:"outcomes"`
	// Exit codes of commands that didn't exit cleanly.
	ExitCodes StrCounter `json:"failed_exit_codes"`
	// Number of lines that ran a multi-stage pipeline.
	Pipelines int `json:"pipelines"`
}

func (r *RunLineReport) update(rl *RunLine) {
	r.Count++
	r.Outcomes.Increment(rl.Outcome)
	if rl.Program != "" {
		r.Programs.Increment(rl.Program)
	}
	if rl.ExitCode != 0 {
		r.ExitCodes.Increment(fmt.Sprintf("%d", rl.ExitCode))
	}
	if rl.Stages > 1 {
		r.Pipelines++
	}
}

type LineErrorReport struct {
	Count  int          `json:"count"`
	Errors *PathCounter `json:"errors"`
}

func (r *LineErrorReport) update(le *LineError) {
	r.Count++
	r.Errors.Increment(le.Stage, le.Kind, le.Binary)
}

type DirectoryChangeReport struct {
	Count        int        `json:"count"`
	Destinations StrCounter `json:"destinations"`
}

func (r *DirectoryChangeReport) update(dc *DirectoryChange) {
	r.Count++
	r.Destinations.Increment(dc.To)
}

// StrCounter counts the number of strings seen.
type StrCounter struct {
	internal map[string]int
}

// Increment adds one to the given key.
func (s *StrCounter) Increment(toAdd string) {
	if s.internal == nil {
		s.internal = make(map[string]int)
	}

	s.internal[toAdd]++
}

// Get returns the count for the key.
func (s *StrCounter) Get(key string) int {
	return s.internal[key]
}

// MarshalJSON implemnts custom JSON marshaler.
func (s StrCounter) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.internal)
}

func NewPathCounter(cols ...string) *PathCounter {
	return &PathCounter{
		cols:     cols,
		internal: make(map[string]int),
	}
}

// PathCounter counts the number of tuples seen.
type PathCounter struct {
	cols     []string
	internal map[string]int
}

// Increment adds one to the given key.
func (ctr *PathCounter) Increment(toAdd ...string) {
	if len(toAdd) != len(ctr.cols) {
		panic("wrong number of columns to add")
	}

	ctr.internal[toKey(toAdd...)]++
}

// Get returns the count for the tuple.
func (ctr *PathCounter) Get(vals ...string) int {
	return ctr.internal[toKey(vals...)]
}

// MarshalJSON implemnts custom JSON marshaler.
func (ctr *PathCounter) MarshalJSON() ([]byte, error) {
	type Count struct {
		Count  int               `json:"count"`
		Fields map[string]string `json:"event"`
		Path   string            `json:"-"`
	}

	var out []Count
	for k, v := range ctr.internal {
		count := Count{
			Count:  v,
			Path:   k,
			Fields: make(map[string]string),
		}

		splitPath := fromKey(k)
		for colNum, colVal := range ctr.cols {
			count.Fields[colVal] = splitPath[colNum]
		}

		out = append(out, count)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].Count == out[j].Count {
			return out[i].Path < out[j].Path
		}
		return out[i].Count > out[j].Count
	})

	return json.Marshal(out)
}

func toKey(vals ...string) string {
	key, _ := json.Marshal(vals)
	return string(key)
}

func fromKey(key string) (out []string) {
	json.Unmarshal([]byte(key), &out)
	return
}
