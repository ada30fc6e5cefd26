package appfilter

import (
	"strings"
	"testing"

	"github.com/iconforge/iconkit/internal/common/output"
)

func TestCompareClassifiesRemoteEntries(t *testing.T) {
	local := mustParse(t, sampleLocal)
	remote := mustParse(t, `<resources>
	<item component="ComponentInfo{acr.browser.lightning/acr.browser.lightning.MainActivity}" drawable="flash"/>
	<item component="ComponentInfo{com.flash.clone/com.flash.clone.Main}" drawable="flash"/>
	<item component="ComponentInfo{com.unknown.app/com.unknown.app.Main}" drawable="mystery"/>
</resources>
`)

	report := Compare(local, remote, drawableMatcherFor(t, local, remote))

	if report.TotalLocal != 6 || report.TotalRemote != 3 {
		t.Errorf("totals = %d local, %d remote", report.TotalLocal, report.TotalRemote)
	}
	if len(report.Matched) != 1 {
		t.Fatalf("matched = %d, want 1", len(report.Matched))
	}
	want := Entry{Component: "ComponentInfo{com.flash.clone/com.flash.clone.Main}", Drawable: "lightning"}
	if report.Matched[0] != want {
		t.Errorf("matched entry = %+v, want %+v", report.Matched[0], want)
	}
	if len(report.Unmatched) != 1 || report.Unmatched[0].Drawable != "mystery" {
		t.Errorf("unmatched = %+v", report.Unmatched)
	}
}

func TestCompareIgnoresDefaultSectionEntries(t *testing.T) {
	local := mustParse(t, sampleLocal)
	remote := mustParse(t, `<resources>
	<item component=":MUSIC" drawable="music"/>
</resources>
`)

	report := Compare(local, remote, drawableMatcherFor(t, local, remote))

	if len(report.Matched) != 0 || len(report.Unmatched) != 0 {
		t.Errorf("default-section entries should not be classified: %+v", report)
	}
}

func TestFormatReportUpToDate(t *testing.T) {
	output.NoColor()

	report := &CompareReport{TotalLocal: 5, TotalRemote: 5}
	got := FormatReport(report)
	if !strings.Contains(got, "covers every remote entry") {
		t.Errorf("report = %q", got)
	}
}

func TestFormatReportSectionsAndSummary(t *testing.T) {
	output.NoColor()

	report := &CompareReport{
		TotalLocal:  2,
		TotalRemote: 4,
		Matched: []Entry{
			{Component: "ComponentInfo{com.flash.clone/com.flash.clone.Main}", Drawable: "lightning"},
		},
		Unmatched: []Entry{
			{Component: "ComponentInfo{com.unknown.app/com.unknown.app.Main}", Drawable: "mystery"},
		},
	}

	got := FormatReport(report)

	if !strings.Contains(got, "New entries (icon already drawn)") {
		t.Error("matched section header missing")
	}
	if !strings.Contains(got, "Unmatched remote entries") {
		t.Error("unmatched section header missing")
	}
	if !strings.Contains(got, "com.flash.clone") || !strings.Contains(got, "lightning") {
		t.Error("matched entry missing from table")
	}
	if !strings.Contains(got, "Matched: 1 | Unmatched: 1 | Local: 2 | Remote: 4") {
		t.Errorf("summary line missing:\n%s", got)
	}
}

func TestTruncateString(t *testing.T) {
	tests := []struct {
		in     string
		maxLen int
		want   string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"this is too long", 10, "this is t…"},
		{"abc", 2, "ab"},
	}

	for _, tt := range tests {
		if got := truncateString(tt.in, tt.maxLen); got != tt.want {
			t.Errorf("truncateString(%q, %d) = %q, want %q", tt.in, tt.maxLen, got, tt.want)
		}
	}
}
