package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/term"

	"github.com/jcorbin/incident/internal/bitstack"
	"github.com/jcorbin/incident/internal/fileinput"
	"github.com/jcorbin/incident/internal/panicerr"
)

const version = "0.1"

// process exit statuses, following sysexits.h
const (
	exitOK       = 0
	exitAborted  = 1
	exitUsage    = 64
	exitNoInput  = 66
	exitSoftware = 70
	exitOSErr    = 71
	exitIOErr    = 74
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := cliMain(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type cli struct {
	trace    bool
	fragment bool
	debug    bool
	memLimit int
	timeout  time.Duration

	stdin      io.Reader
	stdout     io.Writer
	stderr     io.Writer
	isTerminal func(r io.Reader) bool

	log *zap.Logger
}

type usageError struct{ error }

func (err usageError) Unwrap() error { return err.error }

func cliMain(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	c := cli{
		stdin:      stdin,
		stdout:     stdout,
		stderr:     stderr,
		isTerminal: isTerminal,
	}
	return c.main(ctx, args)
}

func (c *cli) main(ctx context.Context, args []string) int {
	cmd := c.command()
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)

	if c.log == nil {
		c.log = newLogger(c.stderr, c.debug)
	}
	defer c.log.Sync()

	code := exitCode(err)
	switch {
	case code == exitOK:
	case code == exitUsage:
		c.log.Error("invalid usage", zap.Error(err))
		cmd.Usage()
	case panicerr.IsPanic(err):
		c.log.Error("internal error", zap.Error(err), zap.String("stack", panicerr.PanicStack(err)))
	default:
		c.log.Error("run failed", zap.Error(err), zap.Int("status", code))
	}
	return code
}

func (c *cli) command() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "incident [options] [program]",
		Short: "Interprets the given Incident program.",
		Long: `Interprets the given Incident program, read from a file or from standard
input if no program, or "-", is given. The program reads bits from standard
input and writes bits to standard output.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args: func(cmd *cobra.Command, args []string) error {
			if err := cobra.MaximumNArgs(1)(cmd, args); err != nil {
				return usageError{err}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			c.log = newLogger(c.stderr, c.debug)
			return c.run(cmd.Context(), args)
		},
	}
	cmd.SetIn(c.stdin)
	cmd.SetOut(c.stdout)
	cmd.SetErr(c.stderr)
	cmd.SetVersionTemplate("incident version {{.Version}}\n")
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError{err}
	})

	flags := cmd.Flags()
	flags.BoolVarP(&c.trace, "trace", "t", false, "Display detailed trace output")
	flags.BoolVarP(&c.fragment, "fragment", "f", false, "Debug a program fragment (start at ^, end at $)")
	flags.BoolVar(&c.debug, "debug", false, "Log analysis and execution steps to standard error")
	flags.IntVar(&c.memLimit, "mem-limit", 0, "Limit the total number of stacked bits (0 for no limit)")
	flags.DurationVar(&c.timeout, "timeout", 0, "Abort the program after the given duration (0 for no limit)")
	return cmd
}

func (c *cli) run(ctx context.Context, args []string) error {
	name := fileinput.StdinName
	if len(args) > 0 {
		name = args[0]
	} else if c.isTerminal(c.stdin) {
		return usageError{errors.New("no program given, and standard input is a terminal")}
	}

	src, err := fileinput.Open(name, c.stdin)
	if err != nil {
		return err
	}
	defer src.Close()

	opts := []VMOption{
		WithInput(c.stdin),
		WithOutput(c.stdout),
		WithTrace(c.trace),
		WithFragments(c.fragment),
		WithMemLimit(c.memLimit),
	}
	if c.debug {
		opts = append(opts, WithLogf(c.log.Sugar().Debugf))
	}
	vm, err := New(src.Bytes(), opts...)
	if err != nil {
		return err
	}

	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	c.log.Debug("running", zap.String("program", src.Name), zap.Int("bytes", len(src.Bytes())))
	if err := vm.Run(ctx); err != nil {
		return fmt.Errorf("%v: %w", src.Name, err)
	}
	return nil
}

func exitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &usage):
		return exitUsage
	case fileinput.IsError(err):
		return exitNoInput
	case errors.Is(err, bitstack.ErrLimit):
		return exitOSErr
	case isStreamError(err):
		return exitIOErr
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return exitAborted
	default:
		return exitSoftware
	}
}

func newLogger(w io.Writer, debug bool) *zap.Logger {
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.TimeKey = ""
	cfg.CallerKey = ""
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	level := zapcore.InfoLevel
	if debug {
		level = zapcore.DebugLevel
	}
	return zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.AddSync(w),
		level,
	)).Named("incident")
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
