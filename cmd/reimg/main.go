package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ije/reimg"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run executes one conversion and returns the process exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg, err := parseArgs(args)
	if errors.Is(err, errUsage) {
		fmt.Fprint(stdout, usage)
		return 0
	} else if err != nil {
		return fail(stderr, err)
	}

	logger := newLogger(cfg.Verbose, stderr)
	defer logger.Sync()

	data, err := io.ReadAll(stdin)
	if err != nil {
		return fail(stderr, fmt.Errorf("failed to read stdin: %w", err))
	}
	logger.Debug("read input", zap.Int("bytes", len(data)))

	if cfg.ShowMetadata {
		metadata, err := reimg.Info(data, reimg.AutoOrientation(cfg.AutoOrient))
		if err != nil {
			return fail(stderr, err)
		}
		fmt.Fprintln(stdout, metadata)
		return 0
	}

	opts := cfg.options()
	if err := opts.SetLogger(logger).Convert(stdout, data); err != nil {
		return fail(stderr, err)
	}

	return 0
}

func fail(stderr io.Writer, err error) int {
	fmt.Fprintf(stderr, "error: %v\n", err)
	return 1
}

func newLogger(verbose bool, w io.Writer) *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
		zapcore.AddSync(w),
		zapcore.DebugLevel,
	)
	return zap.New(core).Named("reimg")
}
