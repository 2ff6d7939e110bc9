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
	"fmt"
	"path/filepath"
	"strings"

	"github.com/onsi/ginkgo/v2"
	"github.com/onsi/ginkgo/v2/reporters"
	"github.com/onsi/ginkgo/v2/types"

	"github.com/unikorn-cloud/user-api-tests/test/api"
)

// JUnitFileName is written alongside the HTML report.
const JUnitFileName = "junit.xml"

// RegisterGinkgoHooks forwards every spec's lifecycle to the listener.  The
// listener is resolved lazily since it usually depends on configuration
// loaded in BeforeSuite; specs seen while it is nil are not reported.
// It returns true so it can be called from a package level var declaration.
func RegisterGinkgoHooks(listener func() *Listener) bool {
	ginkgo.ReportBeforeEach(func(report types.SpecReport) {
		if l := listener(); l != nil {
			SpecStarted(l, report)
		}
	})

	ginkgo.ReportAfterEach(func(report types.SpecReport) {
		if l := listener(); l != nil {
			_ = SpecFinished(l, report)
		}
	})

	return true
}

// SpecStarted records the start of a spec.
func SpecStarted(l *Listener, report types.SpecReport) {
	l.TestStarted(ProcessKey(report.ParallelProcess), report.LeafNodeText, strings.Join(report.ContainerHierarchyTexts, " "), report.Labels()...)
}

// SpecFinished records the outcome of a spec.  Pending specs are reported as
// skipped.
func SpecFinished(l *Listener, report types.SpecReport) error {
	key := ProcessKey(report.ParallelProcess)

	switch {
	case report.State.Is(types.SpecStatePassed):
		return l.TestPassed(key)
	case report.State.Is(types.SpecStateSkipped | types.SpecStatePending):
		return l.TestSkipped(key, report.Failure.Message)
	default:
		return l.TestFailed(key, failureDetail(report))
	}
}

func failureDetail(report types.SpecReport) string {
	message := report.FailureMessage()
	if message == "" {
		message = report.State.String()
	}

	if location := report.FailureLocation(); location.FileName != "" {
		message = fmt.Sprintf("%s\n%s", message, location)
	}

	return message
}

// JUnitReportAfterSuite writes a JUnit report of the whole run to the report
// directory when enabled by configuration.
func JUnitReportAfterSuite(config func() *api.TestConfig) bool {
	ginkgo.ReportAfterSuite("junit report", func(report ginkgo.Report) {
		c := config()
		if c == nil || !c.JUnitReport {
			return
		}

		path := filepath.Join(c.ReportPath, JUnitFileName)

		if err := reporters.GenerateJUnitReport(report, path); err != nil {
			ginkgo.GinkgoWriter.Printf("Warning: failed to write JUnit report %s: %v\n", path, err)
		}
	})

	return true
}
