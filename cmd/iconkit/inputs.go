package main

import (
	"errors"
	"time"

	"github.com/iconforge/iconkit/internal/appfilter"
	"github.com/iconforge/iconkit/internal/common/config"
)

var errNoRemote = errors.New("no remote appfilter: pass a URL, use --source, or set appfilter.remote in the config")

// runInputs are the resolved inputs shared by the merge and compare commands.
type runInputs struct {
	localPath string
	remote    string
	matcher   string
	headers   map[string]string
}

// resolveInputs combines positional arguments, the named source (if any),
// and the configuration into the inputs for a run. Precedence for the
// matching policy is flag > source > config.
func resolveInputs(cfg *config.Config, args []string, sourceName, matcherFlag string) (*runInputs, error) {
	in := &runInputs{}

	if len(args) >= 1 {
		in.localPath = args[0]
	} else {
		path, err := cfg.GetAppfilterPath()
		if err != nil {
			return nil, err
		}
		in.localPath = path
	}

	in.matcher = cfg.Appfilter.Matcher

	switch {
	case sourceName != "":
		sources, err := appfilter.LoadSources(in.localPath)
		if err != nil {
			return nil, err
		}
		src, err := sources.Resolve(sourceName)
		if err != nil {
			return nil, err
		}
		in.remote = src.URL
		in.headers = src.Headers
		if src.Matcher != "" {
			in.matcher = src.Matcher
		}
	case len(args) >= 2:
		in.remote = args[1]
	case cfg.Appfilter.Remote != "":
		in.remote = cfg.Appfilter.Remote
	default:
		return nil, errNoRemote
	}

	if matcherFlag != "" {
		in.matcher = matcherFlag
	}

	return in, nil
}

// httpClient builds the retrying fetch client from the configuration.
func httpClient(cfg *config.Config) *appfilter.RetryableHTTPClient {
	rc := appfilter.DefaultRetryConfig()
	if cfg.HTTP.Retries > 0 {
		rc.MaxRetries = cfg.HTTP.Retries
	}
	if cfg.HTTP.TimeoutSeconds > 0 {
		rc.Timeout = time.Duration(cfg.HTTP.TimeoutSeconds) * time.Second
	}
	return appfilter.NewRetryableHTTPClientWithConfig(rc)
}
