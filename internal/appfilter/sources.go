package appfilter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/BurntSushi/toml"
)

// Error variables for sources configuration
var (
	// ErrSourcesNotFound is returned when sources.toml does not exist
	ErrSourcesNotFound = errors.New("sources.toml not found")
	// ErrSourceNotFound is returned when a named source is not configured
	ErrSourceNotFound = errors.New("source not configured")
	// ErrMissingURL is returned when a source configuration has no url field
	ErrMissingURL = errors.New("missing required field: url")
)

// sourcesFileName is the sources registry path relative to the directory
// holding the local appfilter.
const sourcesFileName = ".iconkit/sources.toml"

// Source describes one upstream appfilter to merge from, e.g.:
//
//	[arcticons]
//	url = "https://raw.githubusercontent.com/Arcticons-Team/Arcticons/refs/heads/main/newicons/appfilter.xml"
//
//	[mirror]
//	url = "https://icons.example.org/appfilter.xml"
//	matcher = "name"
//	[mirror.headers]
//	Authorization = "Bearer ${ICONKIT_MIRROR_TOKEN}"
type Source struct {
	// URL is the remote appfilter location
	URL string `toml:"url"`
	// Matcher overrides the matching policy for this source
	Matcher string `toml:"matcher,omitempty"`
	// Headers are sent with the fetch; values support ${VAR} substitution
	Headers map[string]string `toml:"headers,omitempty"`
}

// Sources is the parsed sources registry, keyed by source name.
type Sources struct {
	Sources map[string]Source
}

// sourcesFile is the internal representation matching the TOML structure
// where each [name] section is a top-level key
type sourcesFile map[string]Source

// LoadSources loads the sources registry for an appfilter path. The
// registry lives at .iconkit/sources.toml next to the appfilter file.
func LoadSources(appfilterPath string) (*Sources, error) {
	path := filepath.Join(filepath.Dir(appfilterPath), sourcesFileName)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrSourcesNotFound, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sources.toml: %w", err)
	}

	var file sourcesFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse sources.toml: %w", err)
	}

	sources := &Sources{Sources: make(map[string]Source)}
	for name, src := range file {
		if err := ValidateSource(name, &src); err != nil {
			return nil, err
		}
		sources.Sources[name] = src
	}

	return sources, nil
}

// ValidateSource validates a single source configuration.
func ValidateSource(name string, src *Source) error {
	if src.URL == "" {
		return fmt.Errorf("source %s: %w", name, ErrMissingURL)
	}
	if src.Matcher != "" && src.Matcher != MatcherDrawable && src.Matcher != MatcherName {
		return fmt.Errorf("source %s: %w: got %q", name, ErrUnknownMatcher, src.Matcher)
	}
	return nil
}

// Resolve returns the named source.
func (s *Sources) Resolve(name string) (Source, error) {
	src, ok := s.Sources[name]
	if !ok {
		return Source{}, fmt.Errorf("%w: %s (available: %v)", ErrSourceNotFound, name, s.Names())
	}
	return src, nil
}

// Names returns all configured source names, sorted.
func (s *Sources) Names() []string {
	names := make([]string, 0, len(s.Sources))
	for name := range s.Sources {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
