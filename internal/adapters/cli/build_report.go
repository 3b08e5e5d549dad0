package cli

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

type Step struct {
	Name    string
	Started time.Time
	Ended   time.Time
	OK      bool
	Error   string
}

type reportOutput interface {
	Green(text string) string
	Yellow(text string) string
	Red(text string) string
	Gray(text string) string
	Printf(format string, args ...any)
	Eprintf(format string, args ...any)
}

// Issue is a problem attached to one page or build step.
type Issue struct {
	Page    string
	Message string
	Details []string
}

// BuildReport collects what happened while a site was built and prints a
// summary. Component references that resolved nowhere are grouped by
// identifier so one missing component used on many pages reads as one line.
type BuildReport struct {
	out        reportOutput
	steps      []Step
	warnings   []Issue
	errors     []Issue
	unresolved map[string]map[string]string
	started    time.Time
	pages      int
	outputDir  string
	failed     bool
}

func NewBuildReport(out reportOutput, outputDir string) *BuildReport {
	return &BuildReport{
		out:        out,
		unresolved: make(map[string]map[string]string),
		started:    time.Now(),
		outputDir:  outputDir,
	}
}

func (r *BuildReport) SetPageCount(count int) {
	r.pages = count
}

func (r *BuildReport) StartStep(name string) *Step {
	r.steps = append(r.steps, Step{Name: name, Started: time.Now()})
	return &r.steps[len(r.steps)-1]
}

func (r *BuildReport) EndStep(step *Step, ok bool, err string) {
	step.Ended = time.Now()
	step.OK = ok
	step.Error = err
	if !ok {
		r.failed = true
	}
}

func (r *BuildReport) AddWarning(page, message string, details []string) {
	r.warnings = append(r.warnings, Issue{Page: page, Message: message, Details: details})
}

func (r *BuildReport) AddError(page, message string, details []string) {
	r.errors = append(r.errors, Issue{Page: page, Message: message, Details: details})
	r.failed = true
}

// AddUnresolved records that page still carries a marker for identifier.
// reason is the marker text, e.g. "not found".
func (r *BuildReport) AddUnresolved(page, identifier, reason string) {
	pages, ok := r.unresolved[identifier]
	if !ok {
		pages = make(map[string]string)
		r.unresolved[identifier] = pages
	}
	pages[page] = reason
}

// UnresolvedCount is the number of distinct component identifiers left
// unresolved across the build.
func (r *BuildReport) UnresolvedCount() int {
	return len(r.unresolved)
}

func (r *BuildReport) HasFailures() bool {
	return r.failed
}

func (r *BuildReport) Render() {
	elapsed := time.Since(r.started)

	r.renderSummary()

	if len(r.errors) == 0 && len(r.warnings) == 0 && len(r.unresolved) == 0 {
		r.renderFailedSteps()
	} else {
		r.renderDetails()
	}

	r.out.Printf("\n")
	if len(r.errors) > 0 {
		r.out.Eprintf("  %s\n", r.out.Red("Build failed after "+formatDuration(elapsed)))
	} else if !r.failed {
		r.out.Printf("  "+r.out.Green("✓ ")+"Build complete in %s\n", formatDuration(elapsed))
	}

	if r.outputDir != "" {
		r.out.Printf("\n  %s\n", r.out.Gray("Output: "+r.outputDir))
	}
}

func (r *BuildReport) renderSummary() {
	r.out.Printf("  "+r.out.Green("✓ ")+"%d pages compiled\n", r.pages)
	if n := len(r.unresolved); n > 0 {
		r.out.Printf("  "+r.out.Yellow("⚠ ")+"%d unresolved components\n", n)
	}
}

func (r *BuildReport) renderFailedSteps() {
	var failed []string
	for _, step := range r.steps {
		if !step.OK {
			failed = append(failed, step.Name)
		}
	}
	if len(failed) == 0 {
		return
	}

	r.out.Printf("\nFailed steps:\n")
	for _, name := range failed {
		r.out.Printf("  %s %s\n", r.out.Red("✗"), name)
	}
}

func (r *BuildReport) renderDetails() {
	r.out.Printf("\n")
	for _, step := range r.steps {
		status := r.out.Green("✓")
		if !step.OK {
			status = r.out.Red("✗")
		}
		r.out.Printf("  %s %s\n", status, step.Name)
	}

	if len(r.unresolved) > 0 {
		r.out.Printf("\n  "+r.out.Yellow("⚠ ")+"Unresolved components (%d):\n", len(r.unresolved))
		r.renderUnresolved()
	}

	if len(r.errors) > 0 {
		r.out.Printf("\n")
		r.out.Eprintf("  "+r.out.Red("✗ ")+"Errors (%d):\n", len(r.errors))
		r.renderIssues(r.errors)
	}

	if len(r.warnings) > 0 {
		r.out.Printf("\n  "+r.out.Yellow("⚠ ")+"Warnings (%d):\n", len(r.warnings))
		r.renderIssues(r.warnings)
	}
}

func (r *BuildReport) renderUnresolved() {
	ids := make([]string, 0, len(r.unresolved))
	for id := range r.unresolved {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		byPage := r.unresolved[id]
		pages := make([]string, 0, len(byPage))
		reasons := make(map[string]bool)
		for page, reason := range byPage {
			pages = append(pages, page)
			reasons[reason] = true
		}
		sort.Strings(pages)

		distinct := make([]string, 0, len(reasons))
		for reason := range reasons {
			distinct = append(distinct, reason)
		}
		sort.Strings(distinct)

		r.out.Printf("  %s %s %s\n", r.out.Yellow("•"), id, r.out.Gray("("+strings.Join(distinct, ", ")+")"))
		for _, page := range pages {
			r.out.Printf("      %s\n", page)
		}
	}
}

func (r *BuildReport) renderIssues(issues []Issue) {
	for _, issue := range issues {
		r.out.Printf("  %s %s\n", r.out.Red("✗"), issue.Page)
		r.out.Printf("    %s\n", issue.Message)
		for _, detail := range deduplicateStrings(issue.Details) {
			r.out.Printf("      • %s\n", detail)
		}
	}
}

func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.0fms", float64(d)/float64(time.Millisecond))
	}
	return fmt.Sprintf("%.1fs", float64(d)/float64(time.Second))
}

// deduplicateStrings sorts items and folds repeats into "item (N occurrences)".
func deduplicateStrings(items []string) []string {
	if len(items) <= 1 {
		return items
	}

	seen := make(map[string]int)
	for _, item := range items {
		seen[item]++
	}

	keys := make([]string, 0, len(seen))
	for item := range seen {
		keys = append(keys, item)
	}
	sort.Strings(keys)

	result := make([]string, 0, len(keys))
	for _, item := range keys {
		if count := seen[item]; count > 1 {
			result = append(result, fmt.Sprintf("%s (%d occurrences)", item, count))
		} else {
			result = append(result, item)
		}
	}
	return result
}
