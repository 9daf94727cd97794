package pipeline

// Notes:
// - Traversal protection is checked through observable output (the value is
//   left untouched) rather than through isWithin directly.

import (
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

func TestRewriteRelativePaths(t *testing.T) {
	t.Parallel()

	sourceDir := "/docs"
	if runtime.GOOS == "windows" {
		sourceDir = `C:\docs`
	}

	tests := []struct {
		name         string
		html         string
		sourceDir    string
		wantContains []string
	}{
		{
			name:         "relative image with dot slash",
			html:         `<p><img src="./images/logo.png"></p>`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`, `images/logo.png"`},
		},
		{
			name:         "relative image without dot slash",
			html:         `<img src="images/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="file://`},
		},
		{
			name:         "relative link",
			html:         `<a href="other.md">other</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="file://`, `other.md"`},
		},
		{
			name:         "absolute path unchanged",
			html:         `<img src="/abs/logo.png">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="/abs/logo.png"`},
		},
		{
			name:         "https URL unchanged",
			html:         `<a href="https://example.com/x">x</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="https://example.com/x"`},
		},
		{
			name:         "mailto unchanged",
			html:         `<a href="mailto:a@b.c">mail</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="mailto:a@b.c"`},
		},
		{
			name:         "anchor unchanged",
			html:         `<a href="#intro">intro</a>`,
			sourceDir:    sourceDir,
			wantContains: []string{`href="#intro"`},
		},
		{
			name:         "data URI unchanged",
			html:         `<img src="data:image/png;base64,AAAA">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="data:image/png;base64,AAAA"`},
		},
		{
			name:         "traversal outside source dir unchanged",
			html:         `<img src="../../etc/passwd">`,
			sourceDir:    sourceDir,
			wantContains: []string{`src="../../etc/passwd"`},
		},
		{
			name:         "empty source dir returns input",
			html:         `<img src="a.png">`,
			sourceDir:    "",
			wantContains: []string{`<img src="a.png">`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := RewriteRelativePaths(tt.html, tt.sourceDir)
			if err != nil {
				t.Fatalf("RewriteRelativePaths() error = %v", err)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(got, want) {
					t.Errorf("RewriteRelativePaths() = %q, missing %q", got, want)
				}
			}
		})
	}
}

func TestRewriteRelativePaths_NoCandidatesUntouched(t *testing.T) {
	t.Parallel()

	// Byte-identical output when nothing can be rewritten.
	in := `<p><span class="katex"><math><mi>x</mi></math></span></p>`
	got, err := RewriteRelativePaths(in, "/docs")
	if err != nil {
		t.Fatal(err)
	}
	if got != in {
		t.Errorf("RewriteRelativePaths() = %q, want unchanged %q", got, in)
	}
}

func TestRewriteRelativePaths_ResolvesAgainstSourceDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	got, err := RewriteRelativePaths(`<img src="fig/a.png">`, dir)
	if err != nil {
		t.Fatal(err)
	}

	want := filepath.ToSlash(filepath.Join(dir, "fig", "a.png"))
	if !strings.Contains(got, want) {
		t.Errorf("RewriteRelativePaths() = %q, want path %q", got, want)
	}
}
