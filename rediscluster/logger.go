package rediscluster

import (
	"log"
)

// Logger is used for logging router-related events.
type Logger interface {
	// Report will be called when some event happens during the router's
	// lifetime. Default implementation just prints this information
	// using the standard log package.
	Report(r *Router, event LogEvent)
}

func (r *Router) report(event LogEvent) {
	r.opts.Logger.Report(r, event)
}

// LogEvent is a sumtype for events to be logged.
type LogEvent interface {
	logEvent()
}

// LogRetry is logged when a request is retried after TRYAGAIN or
// CLUSTERDOWN.
type LogRetry struct {
	Endpoint string
	Retries  int // budget remaining after this retry
	Error    error
}

// LogRedirect is logged when a request follows an ASK redirection.
type LogRedirect struct {
	From string
	To   string
}

// LogHandlerPanic is logged when a caller-supplied handler panics; the
// panic is swallowed so it can not corrupt the router's state.
type LogHandlerPanic struct {
	Recovered interface{}
}

// LogRouterClosed is logged once when the router is closed.
type LogRouterClosed struct{}

func (LogRetry) logEvent()        {}
func (LogRedirect) logEvent()     {}
func (LogHandlerPanic) logEvent() {}
func (LogRouterClosed) logEvent() {}

// DefaultLogger is the default Logger implementation.
type DefaultLogger struct{}

// Report implements Logger.Report.
func (d DefaultLogger) Report(r *Router, event LogEvent) {
	switch ev := event.(type) {
	case LogRetry:
		log.Printf("redring %s: retrying on %s (%d attempts left): %v",
			r.Name(), ev.Endpoint, ev.Retries, ev.Error)
	case LogRedirect:
		log.Printf("redring %s: ASK redirect %s => %s", r.Name(), ev.From, ev.To)
	case LogHandlerPanic:
		log.Printf("redring %s: reply handler panicked: %v", r.Name(), ev.Recovered)
	case LogRouterClosed:
		log.Printf("redring %s: closed", r.Name())
	}
}

// NoopLogger silently drops all events.
type NoopLogger struct{}

// Report implements Logger.Report.
func (NoopLogger) Report(*Router, LogEvent) {}
