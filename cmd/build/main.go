package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/3-lines-studio/stitch"
	"github.com/3-lines-studio/stitch/internal/adapters/cli"
	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	"github.com/3-lines-studio/stitch/internal/app"
	"github.com/3-lines-studio/stitch/internal/usecase"
)

func main() {
	output := cli.NewOutput()

	args, err := app.ParseArgs(os.Args[1:])
	if err != nil {
		output.PrintHeader("Stitch Build")
		output.PrintError("%v", err)
		printUsage()
		os.Exit(1)
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		output.PrintHeader("Stitch Build")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.NewLogger(args.Verbose)
	engine := app.NewEngine(cfg, logger, stitch.ModeProd)
	buildService := usecase.NewBuildService(engine, fs.NewOSFileSystem(), output, logger)

	result := buildService.BuildSite(ctx, usecase.BuildInput{
		Layout: app.Layout(cfg),
		Gzip:   cfg.Build.Gzip,
	})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		os.Exit(1)
	}

	output.PrintDone("Build completed successfully")
}

func printUsage() {
	fmt.Println()
	fmt.Println("Usage: stitch-build [--config <stitch.yaml>] [--verbose]")
}
