// Package doctor runs the pre-build environment checks: native tool
// presence, SDK root layout, framework dependency, and per-module export
// status. Every check always runs so a single report surfaces every
// problem at once.
package doctor

import (
	"encoding/json"
	"fmt"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
)

// Status is the outcome of one check.
type Status string

// Check outcomes.
const (
	StatusOK   Status = "ok"
	StatusWarn Status = "warn"
	StatusFail Status = "fail"
)

// Check is one named check with its outcome and an actionable detail:
// a remediation hint on failure, or the resolved path in verbose mode.
type Check struct {
	Name    string `json:"name"`
	Status  Status `json:"status"`
	Message string `json:"message"`
	Detail  string `json:"detail,omitempty"`
}

// Report is the ordered result of one checker run. It is immutable after
// construction: Run builds it once and callers only read it.
type Report struct {
	Checks []Check `json:"checks"`
}

// Counts returns the number of checks per outcome.
func (r Report) Counts() (ok, warn, fail int) {
	for _, c := range r.Checks {
		switch c.Status {
		case StatusOK:
			ok++
		case StatusWarn:
			warn++
		case StatusFail:
			fail++
		}
	}
	return ok, warn, fail
}

// Failed reports whether any check failed.
func (r Report) Failed() bool {
	_, _, fail := r.Counts()
	return fail > 0
}

// ExportJSON writes the report as indented JSON to path.
func (r Report) ExportJSON(fsys billy.Basic, path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("doctor: marshal report: %w", err)
	}
	if err := util.WriteFile(fsys, path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("doctor: export report to %s: %w", path, err)
	}
	return nil
}
