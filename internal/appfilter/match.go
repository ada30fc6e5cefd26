package appfilter

import (
	"errors"
	"fmt"
	"strings"
)

// Error variables for matcher selection
var (
	// ErrUnknownMatcher is returned when an unknown matcher name is requested
	ErrUnknownMatcher = errors.New("unknown matcher: must be 'drawable' or 'name'")
)

// Matcher names accepted by NewMatcher.
const (
	MatcherDrawable = "drawable"
	MatcherName     = "name"
)

// Matcher decides which local drawable, if any, an upstream-only entry
// should reuse. Match is pure: the policy is fixed at construction time so
// heuristics can be swapped without touching parsing or serialization.
type Matcher interface {
	// Match returns the local drawable the candidate should be mapped to,
	// or false when no confident match exists.
	Match(candidate Entry) (string, bool)

	// Name returns the matcher's registered name.
	Name() string
}

// NewMatcher builds the named matching policy for the given documents.
// It also returns any non-fatal conflicts detected while building the
// policy, for the caller to report.
func NewMatcher(name string, local, remote *Document) (Matcher, []string, error) {
	switch name {
	case MatcherDrawable, "":
		m := newDrawableMatcher(local, remote)
		return m, m.conflicts, nil
	case MatcherName:
		return newNameMatcher(local), nil, nil
	default:
		return nil, nil, fmt.Errorf("%w: got %q", ErrUnknownMatcher, name)
	}
}

// drawableMatcher maps candidates through drawable equivalence: a component
// present in both files proves that the remote drawable and the local
// drawable depict the same icon, so every other remote component using that
// remote drawable can reuse the local one.
type drawableMatcher struct {
	remoteToLocal map[string]string
	conflicts     []string
}

func newDrawableMatcher(local, remote *Document) *drawableMatcher {
	m := &drawableMatcher{
		remoteToLocal: make(map[string]string),
	}

	localComponents := local.Components()
	for _, e := range remote.Entries() {
		localDrawable, ok := localComponents[e.Component]
		if !ok {
			continue
		}

		existing, seen := m.remoteToLocal[e.Drawable]
		if seen && existing != localDrawable {
			// The remote file uses one drawable where the local file uses
			// several. Keep the first equivalence rather than flapping
			// between local drawables.
			m.conflicts = append(m.conflicts, fmt.Sprintf(
				"remote drawable %q maps to both %q and %q, keeping %q",
				e.Drawable, existing, localDrawable, existing))
			continue
		}
		m.remoteToLocal[e.Drawable] = localDrawable
	}

	return m
}

func (m *drawableMatcher) Match(candidate Entry) (string, bool) {
	d, ok := m.remoteToLocal[candidate.Drawable]
	return d, ok
}

func (m *drawableMatcher) Name() string { return MatcherDrawable }

// nameMatcher maps candidates by comparing the normalized app name from the
// component identifier against local drawable names. It only accepts exact
// normalized equality or containment of reasonably long names, so a
// candidate with no plausible local counterpart stays unmatched.
type nameMatcher struct {
	drawables []string // distinct local drawables in document order
}

// minContainmentLen guards containment matches against short names like
// "go" matching "google".
const minContainmentLen = 4

func newNameMatcher(local *Document) *nameMatcher {
	m := &nameMatcher{}
	seen := make(map[string]bool)
	for _, e := range local.Entries() {
		if seen[e.Drawable] {
			continue
		}
		seen[e.Drawable] = true
		m.drawables = append(m.drawables, e.Drawable)
	}
	return m
}

func (m *nameMatcher) Match(candidate Entry) (string, bool) {
	label := normalizeComponentLabel(candidate.Component)
	if label == "" {
		return "", false
	}

	for _, drawable := range m.drawables {
		name := normalizeName(drawable)
		if name == "" {
			continue
		}
		if name == label {
			return drawable, true
		}
		if len(name) >= minContainmentLen && len(label) >= minContainmentLen &&
			(strings.Contains(name, label) || strings.Contains(label, name)) {
			return drawable, true
		}
	}
	return "", false
}

func (m *nameMatcher) Name() string { return MatcherName }

// genericPackageSegments are package name segments that carry no app
// identity and are dropped during normalization.
var genericPackageSegments = map[string]bool{
	"com":     true,
	"org":     true,
	"net":     true,
	"io":      true,
	"de":      true,
	"co":      true,
	"app":     true,
	"apps":    true,
	"android": true,
	"mobile":  true,
	"free":    true,
	"pro":     true,
}

// normalizeComponentLabel derives a comparable app name from a component
// identifier such as
// `ComponentInfo{acr.browser.lightning/acr.browser.lightning.MainActivity}`.
// Only the package half is used; the activity class rarely names the app.
func normalizeComponentLabel(component string) string {
	if !strings.HasPrefix(component, "ComponentInfo") {
		return ""
	}
	s := strings.TrimPrefix(component, "ComponentInfo")
	s = strings.Trim(s, "{}")
	if i := strings.Index(s, "/"); i >= 0 {
		s = s[:i]
	}

	var kept []string
	for _, seg := range strings.Split(s, ".") {
		seg = normalizeName(seg)
		if seg == "" || genericPackageSegments[seg] {
			continue
		}
		kept = append(kept, seg)
	}
	return strings.Join(kept, "")
}

// normalizeName lowercases a name and strips everything that is not a
// letter or digit.
func normalizeName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}
