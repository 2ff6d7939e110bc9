/*
Copyright 2026 the Unikorn Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package report

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"github.com/unikorn-cloud/user-api-tests/test/api"
)

var (
	// ErrNoExecution is returned when a key has no test in progress.
	ErrNoExecution = errors.New("no test execution in progress")
)

// ExecutionKey identifies the context a test runs in.  Each key has at most
// one test in progress.
type ExecutionKey string

// ProcessKey is the key for a Ginkgo parallel process, which runs its specs
// serially.
func ProcessKey(process int) ExecutionKey {
	return ExecutionKey(fmt.Sprintf("process-%d", process))
}

// State is the lifecycle state of an execution.
type State string

const (
	StateStarted State = "started"
	StatePassed  State = "passed"
	StateFailed  State = "failed"
	StateSkipped State = "skipped"
)

// Execution is a test in progress.
type Execution struct {
	Name        string
	Description string
	Labels      []string
	State       State
	Failure     string
	Started     time.Time
	Logs        []LogEntry
}

func (e *Execution) log(status Status, message string) {
	e.Logs = append(e.Logs, LogEntry{Time: time.Now(), Status: status, Message: message})
}

func (e *Execution) entry(status Status) Entry {
	return Entry{
		Name:        e.Name,
		Description: e.Description,
		Labels:      e.Labels,
		Status:      status,
		Failure:     e.Failure,
		Started:     e.Started,
		Finished:    time.Now(),
		Logs:        e.Logs,
	}
}

// Listener turns test lifecycle events into report entries.
type Listener struct {
	sink    *Sink
	logger  logr.Logger
	lock    sync.Mutex
	current map[ExecutionKey]*Execution
}

// ListenerOption customizes a Listener.
type ListenerOption func(*Listener)

// WithListenerLogger echoes suite lifecycle and test outcomes to a logger.
func WithListenerLogger(logger logr.Logger) ListenerOption {
	return func(l *Listener) {
		l.logger = logger
	}
}

// NewListener creates a listener appending to the given sink.
func NewListener(sink *Sink, options ...ListenerOption) *Listener {
	l := &Listener{
		sink:    sink,
		logger:  logr.Discard(),
		current: map[ExecutionKey]*Execution{},
	}

	for _, o := range options {
		o(l)
	}

	return l
}

// Sink returns the sink the listener appends to.
func (l *Listener) Sink() *Sink {
	return l.sink
}

// SuiteStarted activates the report.
func (l *Listener) SuiteStarted(name string) {
	l.logger.Info("Test Suite started: " + name)
	l.sink.AddSuite(name)
}

// SuiteFinished persists the report.
func (l *Listener) SuiteFinished(name string) error {
	l.logger.Info("Test Suite finished: "+name, "report", l.sink.Path())

	if err := l.sink.Flush(); err != nil {
		return fmt.Errorf("flushing report for suite %s: %w", name, err)
	}

	return nil
}

// TestStarted begins a new execution for the key, replacing any that was
// never finalized.
func (l *Listener) TestStarted(key ExecutionKey, name, description string, labels ...string) {
	e := &Execution{
		Name:        name,
		Description: description,
		Labels:      append([]string(nil), labels...),
		State:       StateStarted,
		Started:     time.Now(),
	}

	e.log(StatusInfo, "Test started: "+name)

	l.lock.Lock()
	l.current[key] = e
	l.lock.Unlock()
}

// TestPassed finalizes the execution as passed.
func (l *Listener) TestPassed(key ExecutionKey) error {
	return l.finish(key, StatePassed, StatusPass, func(e *Execution) {
		e.log(StatusPass, "Test passed: "+e.Name)
	})
}

// TestFailed finalizes the execution as failed with the given detail.
func (l *Listener) TestFailed(key ExecutionKey, detail string) error {
	return l.finish(key, StateFailed, StatusFail, func(e *Execution) {
		e.Failure = detail
		e.log(StatusFail, "Test failed: "+e.Name)

		if detail != "" {
			e.log(StatusFail, detail)
		}
	})
}

// TestSkipped finalizes the execution as skipped.
func (l *Listener) TestSkipped(key ExecutionKey, reason string) error {
	return l.finish(key, StateSkipped, StatusSkip, func(e *Execution) {
		message := "Test skipped: " + e.Name
		if reason != "" {
			message += " (" + reason + ")"
		}

		e.log(StatusSkip, message)
	})
}

func (l *Listener) finish(key ExecutionKey, state State, status Status, update func(*Execution)) error {
	l.lock.Lock()
	e, ok := l.current[key]
	delete(l.current, key)
	l.lock.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNoExecution, key)
	}

	e.State = state
	update(e)

	l.logger.V(1).Info("test finished", "name", e.Name, "state", state)
	l.sink.Append(e.entry(status))

	return nil
}

// Logf attaches an INFO entry to the execution in progress.
func (l *Listener) Logf(key ExecutionKey, format string, args ...any) error {
	return l.log(key, StatusInfo, fmt.Sprintf(format, args...))
}

// Warnf attaches a WARNING entry to the execution in progress.
func (l *Listener) Warnf(key ExecutionKey, format string, args ...any) error {
	return l.log(key, StatusWarning, fmt.Sprintf(format, args...))
}

// log activates the sink even when no execution is in progress.
func (l *Listener) log(key ExecutionKey, status Status, message string) error {
	l.sink.Activate()

	l.lock.Lock()
	defer l.lock.Unlock()

	e, ok := l.current[key]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoExecution, key)
	}

	e.log(status, message)

	return nil
}

// Current returns a snapshot of the execution in progress for the key.
func (l *Listener) Current(key ExecutionKey) (Execution, bool) {
	l.lock.Lock()
	defer l.lock.Unlock()

	e, ok := l.current[key]
	if !ok {
		return Execution{}, false
	}

	snapshot := *e
	snapshot.Labels = append([]string(nil), e.Labels...)
	snapshot.Logs = append([]LogEntry(nil), e.Logs...)

	return snapshot, true
}

// Observer records client requests against the execution in progress for
// the key.  Requests made outside an execution, e.g. from suite setup, are
// dropped.
func (l *Listener) Observer(key ExecutionKey) api.Observer {
	return api.ObserverFunc(func(event api.RequestEvent) {
		if event.Failed() {
			_ = l.Warnf(key, "%s %s %s failed after %s: %v (trace %s)", event.Operation, event.Method, event.URL, event.Duration, event.Err, event.TraceID)
			return
		}

		_ = l.Logf(key, "%s %s %s returned %d in %s (trace %s)", event.Operation, event.Method, event.URL, event.StatusCode, event.Duration, event.TraceID)
	})
}
