package main

import (
	"fmt"
	"io"
)

// printUsage prints the usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: katexpdf [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Convert Markdown notes with KaTeX math to PDF. A directory is scanned")
	fmt.Fprintln(w, "recursively; each notes.md becomes notes.pdf next to it.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -i, --input <path>        Markdown file or directory (default \".\")")
	fmt.Fprintln(w, "  -o, --output <path>       Output PDF (single file input only)")
	fmt.Fprintln(w, "  -r, --refresh             Regenerate PDFs that already exist")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "      --header              Title header and page-number footer")
	fmt.Fprintln(w, "      --asset-path <dir>    Override templates/document.html, styles/default.css")
	fmt.Fprintln(w, "  -t, --timeout <d>         Export timeout per file (default 60s)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Batch:")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel conversions, 0 = auto (default 1)")
	fmt.Fprintln(w, "      --keep-going          Convert remaining files after a failure")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Show detailed timing")
	fmt.Fprintln(w, "      --version             Show version")
	fmt.Fprintln(w, "  -h, --help                Show this help")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  KATEXPDF_INPUT, KATEXPDF_CONFIG, KATEXPDF_TIMEOUT, KATEXPDF_WORKERS")
	fmt.Fprintln(w, "  Read from the environment or a .env file in the working directory.")
	fmt.Fprintln(w, "  ROD_BROWSER_BIN selects the Chrome binary; ROD_NO_SANDBOX=1 for containers.")
}
