package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/muesli/termenv"
	"github.com/xlab/closer"

	"model-viewer/internal/commands"
	"model-viewer/internal/env"
)

// ArgsEnv supplies a command line when the viewer is started without arguments.
const ArgsEnv = "VIEWER_ARGS"

func main() {
	stderr := termenv.NewOutput(os.Stderr)
	if err := env.Load(".env"); err != nil {
		warn(stderr, err)
	}

	reg := newRegistry()
	args, err := arguments(os.Args[1:])
	if err == nil {
		err = reg.Execute(args)
	}
	switch {
	case err == nil:
		closer.Close()
	case errors.Is(err, flag.ErrHelp):
		closer.Exit(closer.ExitCodeOK)
	default:
		fmt.Fprintln(stderr, stderr.String("error:").Foreground(stderr.Color("#ff6b6b")).Bold().String(), err)
		if errors.Is(err, commands.ErrUnknown) {
			reg.Usage(stderr, "viewer")
		}
		closer.Exit(closer.ExitCodeErr)
	}
}

func newRegistry() *commands.Registry {
	reg := commands.NewRegistry()
	registerRun(reg)
	registerFetch(reg)
	registerInspect(reg)
	reg.SetDefault("run")
	return reg
}

// arguments falls back to ArgsEnv when args is empty.
func arguments(args []string) ([]string, error) {
	if len(args) > 0 {
		return args, nil
	}
	line, ok := env.String(ArgsEnv)
	if !ok {
		return nil, nil
	}
	return commands.Split(line)
}

func warn(out *termenv.Output, err error) {
	fmt.Fprintln(out, out.String("warning:").Foreground(out.Color("#d7af00")).String(), err)
}
