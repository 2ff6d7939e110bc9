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
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/onsi/ginkgo/v2"

	"github.com/unikorn-cloud/user-api-tests/test/api"
)

const (
	// DocumentTitle is the HTML title of every report.
	DocumentTitle = "API Test Automation Report"

	reportBaseName = "UserAPIReport"
)

// Status is the level of a log entry, or the outcome of a test.
type Status string

const (
	StatusInfo    Status = "INFO"
	StatusWarning Status = "WARNING"
	StatusPass    Status = "PASS"
	StatusFail    Status = "FAIL"
	StatusSkip    Status = "SKIP"
)

// LogEntry is a single timestamped line attached to a test.
type LogEntry struct {
	Time    time.Time
	Status  Status
	Message string
}

// Entry is a finalized test as it appears in the report.
type Entry struct {
	Name        string
	Description string
	Labels      []string
	Status      Status
	Failure     string
	Started     time.Time
	Finished    time.Time
	Logs        []LogEntry
}

// Duration is the wall time between start and finalization.
func (e *Entry) Duration() time.Duration {
	return e.Finished.Sub(e.Started)
}

// SystemInfo is a key/value pair shown in the report header.
type SystemInfo struct {
	Key   string
	Value string
}

// DefaultSystemInfo describes the environment under test.
func DefaultSystemInfo() []SystemInfo {
	return []SystemInfo{
		{Key: "Environment", Value: "QA"},
		{Key: "API", Value: "GoRest API"},
		{Key: "Tester", Value: "QA Team"},
	}
}

type sinkState int

const (
	sinkUninitialized sinkState = iota
	sinkActive
)

// Sink accumulates finalized tests and persists them as an HTML document.
// Appending is safe from concurrent goroutines.
type Sink struct {
	lock       sync.Mutex
	dir        string
	file       string
	name       string
	systemInfo []SystemInfo
	state      sinkState
	started    time.Time
	suites     []string
	entries    []Entry
	pending    bool
}

// NewSink returns a sink writing to dir/file.  It is not registered as the
// process instance.
func NewSink(dir, file, name string, systemInfo ...SystemInfo) *Sink {
	if len(systemInfo) == 0 {
		systemInfo = DefaultSystemInfo()
	}

	return &Sink{
		dir:        dir,
		file:       file,
		name:       name,
		systemInfo: systemInfo,
	}
}

//nolint:gochecknoglobals
var (
	instanceLock sync.Mutex
	instance     *Sink
)

// Instance returns the process wide sink, creating it on first use from the
// report settings of the configuration.  Later configurations are ignored.
func Instance(config *api.TestConfig) *Sink {
	instanceLock.Lock()
	defer instanceLock.Unlock()

	if instance == nil {
		instance = NewSink(config.ReportPath, FileName(ginkgo.GinkgoParallelProcess()), config.ReportName)
	}

	return instance
}

// FileName returns the report file name for a parallel process.  Process 1,
// and therefore a serial run, uses the unqualified name.
func FileName(process int) string {
	if process <= 1 {
		return reportBaseName + ".html"
	}

	return fmt.Sprintf("%s-p%d.html", reportBaseName, process)
}

// Path is the location of the report document.
func (s *Sink) Path() string {
	return filepath.Join(s.dir, s.file)
}

// Dir is the directory reports are written to.
func (s *Sink) Dir() string {
	return s.dir
}

// Name is the report name shown in the document header.
func (s *Sink) Name() string {
	return s.name
}

// SystemInfo returns the environment description of the report.
func (s *Sink) SystemInfo() []SystemInfo {
	return append([]SystemInfo(nil), s.systemInfo...)
}

// Active reports whether anything has been recorded.
func (s *Sink) Active() bool {
	s.lock.Lock()
	defer s.lock.Unlock()

	return s.state == sinkActive
}

// Activate moves the sink into the active state.  It is idempotent.
func (s *Sink) Activate() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.activate()
}

func (s *Sink) activate() {
	if s.state == sinkActive {
		return
	}

	s.state = sinkActive
	s.started = time.Now()
}

// AddSuite records the name of a suite contributing to the report.
func (s *Sink) AddSuite(name string) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.activate()

	for _, suite := range s.suites {
		if suite == name {
			return
		}
	}

	s.suites = append(s.suites, name)
	s.pending = true
}

// Append adds a finalized test.
func (s *Sink) Append(entry Entry) {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.activate()

	entry.Labels = append([]string(nil), entry.Labels...)
	entry.Logs = append([]LogEntry(nil), entry.Logs...)

	s.entries = append(s.entries, entry)
	s.pending = true
}

// Entries returns a copy of the finalized tests in completion order.
func (s *Sink) Entries() []Entry {
	s.lock.Lock()
	defer s.lock.Unlock()

	return append([]Entry(nil), s.entries...)
}

// Flush writes the report if anything changed since the last flush.  The
// document is replaced atomically, so readers never see a partial report.
func (s *Sink) Flush() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if !s.pending {
		return nil
	}

	var buffer bytes.Buffer

	if err := render(&buffer, s.document()); err != nil {
		return err
	}

	if err := writeFileAtomic(s.dir, s.file, buffer.Bytes()); err != nil {
		return err
	}

	s.pending = false

	return nil
}

func (s *Sink) document() *document {
	d := &document{
		Title:      DocumentTitle,
		Name:       s.name,
		Generated:  time.Now(),
		Started:    s.started,
		Suites:     append([]string(nil), s.suites...),
		SystemInfo: s.systemInfo,
		Entries:    append([]Entry(nil), s.entries...),
	}

	for i := range s.entries {
		switch s.entries[i].Status {
		case StatusPass:
			d.Passed++
		case StatusFail:
			d.Failed++
		case StatusSkip:
			d.Skipped++
		}
	}

	return d
}

func writeFileAtomic(dir, name string, data []byte) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	temp, err := os.CreateTemp(dir, "."+name+".*")
	if err != nil {
		return fmt.Errorf("creating temporary report: %w", err)
	}

	tempName := temp.Name()

	cleanup := func() {
		_ = temp.Close()
		_ = os.Remove(tempName)
	}

	if _, err := temp.Write(data); err != nil {
		cleanup()
		return fmt.Errorf("writing report: %w", err)
	}

	if err := temp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing report: %w", err)
	}

	if err := temp.Close(); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("closing report: %w", err)
	}

	if err := os.Chmod(tempName, 0o644); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("setting report permissions: %w", err)
	}

	if err := os.Rename(tempName, filepath.Join(dir, name)); err != nil {
		_ = os.Remove(tempName)
		return fmt.Errorf("replacing report: %w", err)
	}

	return nil
}
