package telemetry

import (
	"strings"
	"sync"
)

// Level is the severity a Report was made with.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelBroken
	LevelCount
)

// Report is a single call recorded by Recorder.
type Report struct {
	Level  Level
	ID     string
	Params []any
}

// Recorder is an API that keeps every report in memory so that tests can
// make assertions on what was reported.
type Recorder struct {
	mutex   sync.Mutex
	reports []Report
}

func (r *Recorder) record(level Level, id string, params []any) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.reports = append(r.reports, Report{Level: level, ID: id, Params: params})
}

func (r *Recorder) ReportBroken(id string, params ...any) {
	r.record(LevelBroken, id, params)
}

func (r *Recorder) ReportWarning(id string, params ...any) {
	r.record(LevelWarning, id, params)
}

func (r *Recorder) ReportInfo(msg string, params ...any) {
	r.record(LevelInfo, msg, params)
}

func (r *Recorder) ReportDebug(msg string, params ...any) {
	r.record(LevelDebug, msg, params)
}

func (r *Recorder) ReportCount(id string, count int64) {
	r.record(LevelCount, id, []any{count})
}

// Reports returns a copy of everything reported so far.
func (r *Recorder) Reports() []Report {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	out := make([]Report, len(r.reports))
	copy(out, r.reports)
	return out
}

// Find returns the reports with the given level whose id ends with suffix.
// ScopedAPI prefixes ids with a namespace, so matching on the suffix lets
// callers ignore it.
func (r *Recorder) Find(level Level, suffix string) []Report {
	var out []Report
	for _, report := range r.Reports() {
		if report.Level == level && strings.HasSuffix(report.ID, suffix) {
			out = append(out, report)
		}
	}
	return out
}
