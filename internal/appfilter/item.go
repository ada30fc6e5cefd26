// Package appfilter implements reading, comparing, and merging of Android
// icon-pack appfilter.xml files.
//
// An appfilter file maps app component identifiers to drawable resources:
//
//	<item component="ComponentInfo{acr.browser.lightning/acr.browser.lightning.MainActivity}" drawable="lightning"/>
//
// The same drawable may be shared by any number of components, which is what
// makes merging from an upstream appfilter possible: components that exist in
// both files establish drawable equivalences, and upstream-only components
// whose drawable is covered by an equivalence can be added locally without
// drawing a new icon.
package appfilter

import (
	"fmt"
	"regexp"
	"strings"
)

// itemPattern matches any appfilter item line, including entries in the
// default section such as `component=":BROWSER"`.
var itemPattern = regexp.MustCompile(`component="([^"]+)".*drawable="([^"]+)"`)

// componentItemPattern matches only items with a full ComponentInfo
// identifier. Default-section entries are deliberately excluded so they are
// never used as insertion anchors.
var componentItemPattern = regexp.MustCompile(`component="(ComponentInfo[^"]+)".*drawable="([^"]+)"`)

// Indent is the indentation used for items generated by this package.
const Indent = "\t"

// Entry is a single component-to-drawable mapping.
type Entry struct {
	Component string
	Drawable  string
}

// String renders the entry as an appfilter item element.
func (e Entry) String() string {
	return fmt.Sprintf(`<item component="%s" drawable="%s"/>`, e.Component, e.Drawable)
}

// Line renders the entry as a full output line, indented and terminated.
func (e Entry) Line() string {
	return Indent + e.String() + "\n"
}

// IsComponentInfo reports whether the entry identifies a concrete app
// component rather than a default-section placeholder like ":BROWSER".
func (e Entry) IsComponentInfo() bool {
	return strings.HasPrefix(e.Component, "ComponentInfo")
}

// parseItemLine extracts an entry from a single line, if the line contains
// an appfilter item. When componentInfoOnly is set, default-section entries
// are not reported.
func parseItemLine(line string, componentInfoOnly bool) (Entry, bool) {
	pattern := itemPattern
	if componentInfoOnly {
		pattern = componentItemPattern
	}

	m := pattern.FindStringSubmatch(line)
	if m == nil {
		return Entry{}, false
	}
	return Entry{Component: m[1], Drawable: m[2]}, true
}
