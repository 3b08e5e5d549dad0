package main

import (
	"context"
	"os"

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
		output.PrintHeader("Stitch Doctor")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		output.PrintHeader("Stitch Doctor")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	engine := app.NewEngine(cfg, app.NewLogger(args.Verbose), stitch.ModeProd)
	doctor := usecase.NewDoctorService(engine, fs.NewOSFileSystem(), output)

	result := doctor.Check(context.Background(), usecase.DoctorInput{Layout: app.Layout(cfg)})
	if result.Error != nil {
		output.PrintError("%v", result.Error)
		os.Exit(1)
	}
	if !result.Healthy() {
		os.Exit(1)
	}
}
