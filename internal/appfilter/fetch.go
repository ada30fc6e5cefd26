package appfilter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// ErrFetch is returned when the remote appfilter cannot be retrieved.
var ErrFetch = errors.New("failed to fetch remote appfilter")

// Fetch retrieves remote appfilter content. The source may be an http(s)
// URL or a plain filesystem path; the latter keeps local mirrors and tests
// symmetric with the URL case.
func Fetch(ctx context.Context, source string, client *RetryableHTTPClient, headers map[string]string) ([]byte, error) {
	if !isURL(source) {
		data, err := os.ReadFile(source)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, fmt.Errorf("%w: %s", ErrNotFound, source)
			}
			return nil, err
		}
		return data, nil
	}

	resp, err := client.GetWithHeaders(ctx, source, headers)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, source, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetch, source, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFetch, source, err)
	}
	return data, nil
}

func isURL(source string) bool {
	return strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://")
}
