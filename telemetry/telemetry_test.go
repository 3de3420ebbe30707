package telemetry

import (
	"context"
	"strings"
	"testing"

	"github.com/alecthomas/assert/v2"
)

// TestFromContext_NoCollector verifies that instrumented code works
// without a collector installed.
func TestFromContext_NoCollector(t *testing.T) {
	collector := FromContext(context.Background())

	timer := collector.Start("op")
	child := timer.Child("child")
	child.End()
	timer.End()

	var buf strings.Builder
	collector.Report(&buf)
	assert.Equal(t, buf.String(), "")
}

// TestStartTimer_UsesContextCollector verifies that StartTimer records
// on the collector carried in the context.
func TestStartTimer_UsesContextCollector(t *testing.T) {
	collector := NewTimingCollector()
	ctx := WithCollector(context.Background(), collector)

	timer := StartTimer(ctx, "derive")
	timer.End()

	var buf strings.Builder
	collector.Report(&buf)
	assert.True(t, strings.Contains(buf.String(), "derive"))
}

// TestTimingCollector_NestedReport verifies the tree structure of the
// report output.
func TestTimingCollector_NestedReport(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("derive period.json")
	validate := root.Child("statement.validate")
	validate.End()
	classify := root.Child("statement.classify")
	classify.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)
	out := buf.String()

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Equal(t, len(lines), 3)
	assert.True(t, strings.HasPrefix(lines[0], "derive period.json: "))
	assert.True(t, strings.HasPrefix(lines[1], "├─ statement.validate: "))
	assert.True(t, strings.HasPrefix(lines[2], "└─ statement.classify: "))
}

// TestTimingCollector_SequentialRootChildren verifies that timers
// started after a sibling ends attach to the root, not the sibling.
func TestTimingCollector_SequentialRootChildren(t *testing.T) {
	collector := NewTimingCollector()

	root := collector.Start("root")
	first := collector.Start("first")
	first.End()
	second := collector.Start("second")
	second.End()
	root.End()

	var buf strings.Builder
	collector.Report(&buf)
	out := buf.String()

	assert.True(t, strings.Contains(out, "├─ first"))
	assert.True(t, strings.Contains(out, "└─ second"))
}
