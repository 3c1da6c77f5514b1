package telemetry

import (
	"fmt"
)

// API is an abstraction over logging/metrics.
// This allows for assertions and tests for working logging/metrics to exist.
//
// note: fault injection point
type API interface {
	// ReportBroken reports a component that has broken in a way that should be addressed.
	//
	// The `id` is a fully qualified identifier that should indicate what **component** broke, not what
	// specific piece of the implementation of a component broke.
	//
	// ex. Suppose the detail request of the koreafood scraper fails. The id should be `client.detail`,
	// if you need to disambiguate further, add a param or wrap the error with fmt.Errorf.
	//
	// Formatting rules:
	// 1) all lowercase
	// 2) use underscores for large components
	// 3) use dashes for methods part of a larger component
	ReportBroken(id string, params ...any)

	// ReportWarning reports a scenario that does not necessarily indicate brokenness, but may be subject to investigation
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportWarning(id string, params ...any)

	// ReportInfo reports a notable change of state, like a row being written.
	ReportInfo(msg string, params ...any)

	// ReportDebug reports some debug information that will be ignored in production
	ReportDebug(msg string, params ...any)

	// ReportCount reports the current count of a specific event at the current time, these counts should
	// not be summed but interpreted as points of data over time.
	//
	// For what value to provide as `id` refer to ReportBroken.
	ReportCount(id string, count int64)
}

// ScopedAPI is a telemetry API that attaches a namespace for a given API, kind of like creating a
// "sub" logger using things like log.New(), in which you can define the prefix for the logs.
type ScopedAPI struct {
	namespace string
	inner     API
}

// NewScopedAPI creates a ScopedAPI out of a given namespace and another api.
func NewScopedAPI(namespace string, inner API) ScopedAPI {
	return ScopedAPI{namespace: namespace, inner: inner}
}

func (s ScopedAPI) ReportBroken(id string, params ...any) {
	s.inner.ReportBroken(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportWarning(id string, params ...any) {
	s.inner.ReportWarning(fmt.Sprintf("%s: %s", s.namespace, id), params...)
}

func (s ScopedAPI) ReportInfo(msg string, params ...any) {
	s.inner.ReportInfo(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportDebug(msg string, params ...any) {
	s.inner.ReportDebug(fmt.Sprintf("%s: %s", s.namespace, msg), params...)
}

func (s ScopedAPI) ReportCount(id string, count int64) {
	s.inner.ReportCount(fmt.Sprintf("%s: %s", s.namespace, id), count)
}
