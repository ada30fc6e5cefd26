package appfilter

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// MergeResult describes what a merge run did (or, for a dry run, would do).
type MergeResult struct {
	// Added holds the entries inserted into the local document, with
	// local drawable names, in document order.
	Added []Entry
	// Skipped holds remote-only entries that could not be matched to a
	// local drawable, with their remote drawable names. Skipping is a
	// soft no-action outcome, not an error.
	Skipped []Entry
	// Conflicts holds non-fatal matcher warnings for the caller to report.
	Conflicts []string
	// Output is the merged document content.
	Output []byte
}

// Merge reconciles a remote appfilter into a local one. Remote entries
// whose component already exists locally are left alone; the rest are
// matched against the local drawable set and, on a confident match,
// inserted right after the last local item that uses the same drawable.
// Everything else in the local document is preserved byte for byte.
//
// Merging is idempotent: added entries are local on the next run, so the
// same remote never produces duplicates.
func Merge(local, remote *Document, m Matcher) *MergeResult {
	res := &MergeResult{}

	// Group matched remote-only components by the local drawable they
	// will reuse, keeping remote document order within each group.
	pending := make(map[string][]string)
	var pendingOrder []string
	localComponents := local.Components()
	for _, e := range remote.Entries() {
		if !e.IsComponentInfo() {
			continue
		}
		if _, exists := localComponents[e.Component]; exists {
			continue
		}

		drawable, ok := m.Match(e)
		if !ok {
			res.Skipped = append(res.Skipped, e)
			continue
		}
		if _, queued := pending[drawable]; !queued {
			pendingOrder = append(pendingOrder, drawable)
		}
		pending[drawable] = append(pending[drawable], e.Component)
	}

	// Anchor each group after the last local item using its drawable.
	// Only ComponentInfo items anchor, so new entries never land in the
	// default section.
	anchors := make(map[string]int)
	for i, line := range local.lines {
		if e, ok := parseItemLine(line, true); ok {
			anchors[e.Drawable] = i
		}
	}

	insertAfter := make(map[int][]Entry)
	for _, drawable := range pendingOrder {
		idx, ok := anchors[drawable]
		if !ok {
			// The matched drawable has no insertable local item. Leave
			// the components out rather than guessing a position.
			for _, component := range pending[drawable] {
				res.Skipped = append(res.Skipped, Entry{Component: component, Drawable: drawable})
			}
			continue
		}
		for _, component := range pending[drawable] {
			insertAfter[idx] = append(insertAfter[idx], Entry{Component: component, Drawable: drawable})
		}
	}

	var out strings.Builder
	for i, line := range local.lines {
		out.WriteString(line)
		group, ok := insertAfter[i]
		if !ok {
			continue
		}
		if !strings.HasSuffix(line, "\n") {
			out.WriteString("\n")
		}
		for _, e := range group {
			out.WriteString(e.Line())
			res.Added = append(res.Added, e)
		}
	}
	res.Output = []byte(out.String())

	return res
}

// Options configure a merge run.
type Options struct {
	// Matcher selects the matching policy ("drawable" or "name"); empty
	// means the default drawable-equivalence policy.
	Matcher string
	// Output is the destination path; empty writes the local file in place.
	Output string
	// DryRun computes the merge without writing anything.
	DryRun bool
	// Headers are sent with the remote fetch when the remote is a URL.
	Headers map[string]string
	// Client is the HTTP client used for remote fetches; nil uses a
	// default retrying client.
	Client *RetryableHTTPClient
}

// Run loads the local appfilter, fetches and parses the remote one, merges,
// and writes the result. The output is only written after the whole merge
// has computed, so a failing run never leaves a partially written file.
func Run(ctx context.Context, localPath, remote string, opts Options) (*MergeResult, error) {
	local, err := LoadDocument(localPath)
	if err != nil {
		return nil, err
	}

	client := opts.Client
	if client == nil {
		client = NewRetryableHTTPClient()
	}
	data, err := Fetch(ctx, remote, client, opts.Headers)
	if err != nil {
		return nil, err
	}
	remoteDoc, err := ParseDocument(data)
	if err != nil {
		return nil, fmt.Errorf("remote %s: %w", remote, err)
	}

	matcher, conflicts, err := NewMatcher(opts.Matcher, local, remoteDoc)
	if err != nil {
		return nil, err
	}

	res := Merge(local, remoteDoc, matcher)
	res.Conflicts = conflicts

	if opts.DryRun {
		return res, nil
	}

	out := opts.Output
	if out == "" {
		out = localPath
	}
	if err := os.WriteFile(out, res.Output, 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", out, err)
	}

	return res, nil
}
