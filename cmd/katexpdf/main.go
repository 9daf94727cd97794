package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"

	"go.uber.org/automaxprocs/maxprocs"

	katexpdf "github.com/alnah/go-katexpdf"
	"github.com/alnah/go-katexpdf/internal/config"
	"github.com/alnah/go-katexpdf/internal/hints"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	if isVerbose(os.Args[1:]) {
		_, _ = maxprocs.Set(maxprocs.Logger(func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, format+"\n", args...)
		}))
	} else {
		_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...any) {}))
	}

	os.Exit(runMain(os.Args, DefaultEnv()))
}

// runMain runs the command and returns the process exit code.
func runMain(args []string, env *Environment) int {
	ctx, stop := notifyContext(context.Background())
	defer stop()

	if err := run(ctx, args, env); err != nil {
		fmt.Fprintf(env.Stderr, "Error: %v%s\n", err, hintFor(err))
		return 1
	}
	return 0
}

// isVerbose reports whether -v/--verbose is present before flag parsing.
func isVerbose(args []string) bool {
	return slices.Contains(args, "-v") || slices.Contains(args, "--verbose")
}

// hintFor picks an actionable hint for err, or "".
func hintFor(err error) string {
	var notFound *config.NotFoundError
	var stopped *stoppedError

	switch {
	case errors.As(err, &notFound):
		return hints.ForConfigNotFound(notFound.Tried)
	case errors.Is(err, katexpdf.ErrOutputWithDirectory):
		return hints.ForOutputWithDirectory()
	case errors.Is(err, katexpdf.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.As(err, &stopped) && stopped.skipped > 0:
		return hints.ForKeepGoing()
	}
	return ""
}
