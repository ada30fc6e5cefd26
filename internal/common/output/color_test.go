package output

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// **Feature: merge-reporting, Property 1: Color output matches status type**
func TestColorOutputMatchesStatusType(t *testing.T) {
	// Ensure colors are enabled for this test
	ForceColor()
	defer NoColor()

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	// Map of status types to their expected ANSI color codes
	statusColorCodes := map[string]string{
		"Added":    "\x1b[32m", // Green
		"Matched":  "\x1b[36m", // Cyan
		"Skipped":  "\x1b[33m", // Yellow
		"Conflict": "\x1b[35m", // Magenta
		"Invalid":  "\x1b[31m", // Red
	}

	statusGen := gen.OneConstOf("Added", "Matched", "Skipped", "Conflict", "Invalid")

	properties.Property("FormatStatus contains correct ANSI code for status type", prop.ForAll(
		func(status string) bool {
			formatted := FormatStatus(status)
			expectedCode := statusColorCodes[status]
			return strings.Contains(formatted, expectedCode)
		},
		statusGen,
	))

	properties.Property("StatusColor returns non-nil color for known status", prop.ForAll(
		func(status string) bool {
			return StatusColor(status) != nil
		},
		statusGen,
	))

	properties.Property("FormatStatus output contains the status text", prop.ForAll(
		func(status string) bool {
			return strings.Contains(FormatStatus(status), status)
		},
		statusGen,
	))

	properties.TestingRun(t)
}

// **Feature: merge-reporting, Property 2: No-color flag disables ANSI codes**
func TestNoColorFlagDisablesANSICodes(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	statusGen := gen.OneConstOf("Added", "Matched", "Skipped", "Conflict", "Invalid")

	properties.Property("FormatStatus contains no ANSI codes when NoColor is set", prop.ForAll(
		func(status string) bool {
			NoColor()
			defer ForceColor()
			formatted := FormatStatus(status)
			return !strings.Contains(formatted, "\x1b[")
		},
		statusGen,
	))

	properties.Property("Sprintf contains no ANSI codes when NoColor is set", prop.ForAll(
		func(status string) bool {
			NoColor()
			defer ForceColor()
			s := Sprintf(StatusColor(status), "%s", status)
			return !strings.Contains(s, "\x1b[")
		},
		statusGen,
	))

	properties.TestingRun(t)

	// Leave colors disabled so other tests are not affected by ANSI codes
	NoColor()
}
