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

package report_test

import (
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/unikorn-cloud/user-api-tests/test/api"
	"github.com/unikorn-cloud/user-api-tests/test/api/report"
)

func newListener(t *testing.T) *report.Listener {
	t.Helper()

	return report.NewListener(report.NewSink(t.TempDir(), "report.html", "Listener"))
}

func TestProcessKey(t *testing.T) {
	t.Parallel()

	require.Equal(t, report.ProcessKey(1), report.ProcessKey(1))
	require.NotEqual(t, report.ProcessKey(1), report.ProcessKey(2))
}

func TestListenerPassed(t *testing.T) {
	t.Parallel()

	l := newListener(t)
	key := report.ProcessKey(1)

	l.TestStarted(key, "creates a user", "Users Positive", "positive")
	require.NoError(t, l.Logf(key, "created user %s", "42"))

	current, ok := l.Current(key)
	require.True(t, ok)
	require.Equal(t, report.StateStarted, current.State)
	require.Len(t, current.Logs, 2)
	require.Equal(t, "Test started: creates a user", current.Logs[0].Message)
	require.Equal(t, "created user 42", current.Logs[1].Message)

	require.NoError(t, l.TestPassed(key))

	_, ok = l.Current(key)
	require.False(t, ok)

	entries := l.Sink().Entries()
	require.Len(t, entries, 1)
	require.Equal(t, report.StatusPass, entries[0].Status)
	require.Equal(t, "Users Positive", entries[0].Description)
	require.Equal(t, []string{"positive"}, entries[0].Labels)
	require.Equal(t, "Test passed: creates a user", entries[0].Logs[2].Message)
	require.Empty(t, entries[0].Failure)
}

func TestListenerFailed(t *testing.T) {
	t.Parallel()

	l := newListener(t)
	key := report.ProcessKey(1)

	l.TestStarted(key, "rejects duplicates", "")
	require.NoError(t, l.TestFailed(key, "expected 422"))

	entries := l.Sink().Entries()
	require.Len(t, entries, 1)
	require.Equal(t, report.StatusFail, entries[0].Status)
	require.Equal(t, "expected 422", entries[0].Failure)

	logs := entries[0].Logs
	require.Equal(t, report.StatusFail, logs[len(logs)-1].Status)
	require.Equal(t, "expected 422", logs[len(logs)-1].Message)
}

func TestListenerSkipped(t *testing.T) {
	t.Parallel()

	l := newListener(t)
	key := report.ProcessKey(1)

	l.TestStarted(key, "lists users", "")
	require.NoError(t, l.TestSkipped(key, "integration disabled"))

	entries := l.Sink().Entries()
	require.Len(t, entries, 1)
	require.Equal(t, report.StatusSkip, entries[0].Status)
	require.Equal(t, "Test skipped: lists users (integration disabled)", entries[0].Logs[1].Message)
}

func TestListenerWithoutExecution(t *testing.T) {
	t.Parallel()

	l := newListener(t)
	key := report.ProcessKey(7)

	require.ErrorIs(t, l.TestPassed(key), report.ErrNoExecution)
	require.ErrorIs(t, l.TestFailed(key, "boom"), report.ErrNoExecution)
	require.ErrorIs(t, l.TestSkipped(key, ""), report.ErrNoExecution)
	require.Empty(t, l.Sink().Entries())
	require.False(t, l.Sink().Active())

	// The first log call activates the sink, with or without a test running.
	require.ErrorIs(t, l.Logf(key, "orphan"), report.ErrNoExecution)
	require.Empty(t, l.Sink().Entries())
	require.True(t, l.Sink().Active())

	// A finalized execution cannot be finalized twice.
	l.TestStarted(key, "once", "")
	require.NoError(t, l.TestPassed(key))
	require.ErrorIs(t, l.TestFailed(key, "again"), report.ErrNoExecution)
	require.Len(t, l.Sink().Entries(), 1)
}

func TestListenerKeysAreIndependent(t *testing.T) {
	t.Parallel()

	l := newListener(t)

	const workers = 8

	var wg sync.WaitGroup

	for i := 1; i <= workers; i++ {
		wg.Add(1)

		go func(process int) {
			defer wg.Done()

			key := report.ProcessKey(process)
			name := fmt.Sprintf("test-%d", process)

			l.TestStarted(key, name, "")

			for j := 0; j < 10; j++ {
				_ = l.Logf(key, "%s step %d", name, j)
			}

			if process%2 == 0 {
				_ = l.TestPassed(key)
			} else {
				_ = l.TestFailed(key, name+" failed")
			}
		}(i)
	}

	wg.Wait()

	entries := l.Sink().Entries()
	require.Len(t, entries, workers)

	for _, entry := range entries {
		// started + 10 steps + outcome, and failures add the detail line.
		for _, log := range entry.Logs[1:11] {
			require.Contains(t, log.Message, entry.Name+" step")
		}

		if entry.Status == report.StatusFail {
			require.Equal(t, entry.Name+" failed", entry.Failure)
		}
	}
}

func TestListenerObserver(t *testing.T) {
	t.Parallel()

	l := newListener(t)
	key := report.ProcessKey(1)

	observer := l.Observer(key)

	// Dropped, there is no execution.
	observer.RequestCompleted(api.RequestEvent{Operation: api.OperationList, StatusCode: 200})

	l.TestStarted(key, "gets a user", "")

	observer.RequestCompleted(api.RequestEvent{
		Operation:  api.OperationGet,
		Method:     "GET",
		URL:        "http://localhost/public/v2/users/1",
		StatusCode: 200,
		Duration:   time.Millisecond,
		TraceID:    "abc",
	})
	observer.RequestCompleted(api.RequestEvent{
		Operation: api.OperationDelete,
		Method:    "DELETE",
		URL:       "http://localhost/public/v2/users/1",
		Err:       errors.New("connection refused"),
	})

	current, ok := l.Current(key)
	require.True(t, ok)
	require.Len(t, current.Logs, 3)
	require.Equal(t, report.StatusInfo, current.Logs[1].Status)
	require.Contains(t, current.Logs[1].Message, "getUser GET http://localhost/public/v2/users/1 returned 200")
	require.Equal(t, report.StatusWarning, current.Logs[2].Status)
	require.Contains(t, current.Logs[2].Message, "connection refused")
}

func TestListenerSuiteLifecycle(t *testing.T) {
	t.Parallel()

	l := newListener(t)

	l.SuiteStarted("Users")
	require.True(t, l.Sink().Active())

	l.TestStarted(report.ProcessKey(1), "a", "")
	require.NoError(t, l.TestPassed(report.ProcessKey(1)))

	require.NoError(t, l.SuiteFinished("Users"))
	require.FileExists(t, l.Sink().Path())
}
