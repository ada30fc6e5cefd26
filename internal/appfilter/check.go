package appfilter

import (
	"bytes"
	"fmt"
	"os"

	"github.com/antchfx/xmlquery"
)

// CheckResult contains appfilter validation results.
type CheckResult struct {
	Valid    bool
	Items    int
	Errors   []string // issues that break the icon-pack build
	Warnings []string // suspicious but buildable entries
}

// Check validates appfilter content: well-formedness, required attributes
// on every item, and component uniqueness. Unlike the merge path, Check
// walks the parsed XML tree so it also sees items the line scanner would
// miss, such as items split across lines.
func Check(data []byte) (*CheckResult, error) {
	doc, err := xmlquery.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	result := &CheckResult{Valid: true}

	items, err := xmlquery.QueryAll(doc, "//item")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	for _, item := range items {
		result.Items++

		component := item.SelectAttr("component")
		drawable := item.SelectAttr("drawable")

		if component == "" {
			result.Valid = false
			result.Errors = append(result.Errors, "item without component attribute")
			continue
		}
		if drawable == "" {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("item %q has no drawable attribute", component))
			continue
		}

		if seen[component] {
			result.Valid = false
			result.Errors = append(result.Errors, fmt.Sprintf("duplicate component %q", component))
		}
		seen[component] = true
	}

	// Calendar icons are configured separately and are not merged by this
	// tool; flag them so a maintainer knows they need manual attention.
	calendars, err := xmlquery.QueryAll(doc, "//calendar")
	if err != nil {
		return nil, err
	}
	if len(calendars) > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("%d calendar element(s) present, not handled by merge", len(calendars)))
	}

	return result, nil
}

// CheckFile validates an appfilter file on disk.
func CheckFile(path string) (*CheckResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, err
	}

	result, err := Check(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return result, nil
}
