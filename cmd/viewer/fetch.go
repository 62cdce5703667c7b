package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/muesli/termenv"

	"model-viewer/internal/asset"
	"model-viewer/internal/commands"
	"model-viewer/internal/config"
	"model-viewer/internal/loader"
)

func registerFetch(reg *commands.Registry) {
	fs := flag.NewFlagSet("fetch", flag.ContinueOnError)
	cfgPath := fs.String("config", config.ConfigPath, "config file (.yaml or .toml)")
	model := fs.String("model", "", "model URL or local path")
	reg.Register("fetch", "download and prepare the model without opening a window", fs, func() error {
		out := termenv.NewOutput(os.Stdout)
		cfg := loadConfig(*cfgPath, termenv.NewOutput(os.Stderr))
		if *model != "" {
			cfg.ModelURL = *model
		}
		ld, err := newLoader(cfg, newLogger(cfg))
		if err != nil {
			return err
		}
		ld.OnProgress = func(p loader.Progress) {
			fmt.Fprintf(out, "\r%-40s", statusText(p))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		res := ld.Run(ctx)
		fmt.Fprintln(out)
		if res.Err != nil {
			return res.Err
		}
		printInfo(out, res.Info)
		return nil
	})
}

func registerInspect(reg *commands.Registry) {
	fs := flag.NewFlagSet("inspect", flag.ContinueOnError)
	reg.Register("inspect", "print a summary of a local .glb or .gltf file", fs, func() error {
		if fs.NArg() != 1 {
			return fmt.Errorf("inspect: expected one file, got %d", fs.NArg())
		}
		info, err := asset.Inspect(fs.Arg(0))
		if err != nil {
			return err
		}
		printInfo(termenv.NewOutput(os.Stdout), info)
		return nil
	})
}

func printInfo(out *termenv.Output, info *asset.Info) {
	label := func(s string) string {
		return out.String(fmt.Sprintf("%-12s", s)).Bold().String()
	}
	line := func(name string, format string, args ...any) {
		fmt.Fprintf(out, "%s %s\n", label(name), fmt.Sprintf(format, args...))
	}
	line("path", "%s", info.Path)
	line("version", "%s", info.Version)
	if info.Generator != "" {
		line("generator", "%s", info.Generator)
	}
	line("meshes", "%d (%d primitives)", info.Meshes, info.Primitives)
	line("nodes", "%d in %d scenes", info.Nodes, info.Scenes)
	line("materials", "%d", info.Materials)
	line("vertices", "%d", info.Vertices)
	if ext := info.Compression(); ext != "" {
		line("compression", "%s", ext)
	}
	if !info.Bounds.IsEmpty() {
		s := info.Bounds.Size()
		line("size", "%.3f x %.3f x %.3f", s.X(), s.Y(), s.Z())
	}
}
