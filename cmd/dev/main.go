package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/3-lines-studio/stitch"
	"github.com/3-lines-studio/stitch/internal/adapters/cli"
	"github.com/3-lines-studio/stitch/internal/adapters/fs"
	stitchhttp "github.com/3-lines-studio/stitch/internal/adapters/http"
	"github.com/3-lines-studio/stitch/internal/adapters/watch"
	"github.com/3-lines-studio/stitch/internal/app"
)

func main() {
	output := cli.NewOutput()

	args, err := app.ParseArgs(os.Args[1:])
	if err != nil {
		output.PrintHeader("Stitch Dev")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	cfg, err := app.LoadConfig(args.ConfigPath)
	if err != nil {
		output.PrintHeader("Stitch Dev")
		output.PrintError("%v", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger := app.NewLogger(args.Verbose)
	engine := app.NewEngine(cfg, logger, stitch.ModeDev)
	osfs := fs.NewOSFileSystem()
	layout := app.Layout(cfg)

	hub := stitchhttp.NewReloadHub()
	assets := stitchhttp.NewAssetHandler(osfs, cfg.Root, cfg.PublicDir)
	pages := stitchhttp.NewPageHandler(engine, osfs, layout.Roots, assets, logger, true)
	router := stitchhttp.NewRouter(pages, hub, cfg.Dev.Compression)

	watcher, err := watch.New(app.WatchDirs(cfg), func(path string) {
		output.PrintStep("", "%s %s", output.Gray("changed"), path)
		hub.Notify()
	}, watch.WithLogger(logger), watch.WithSkipDirs(filepath.Base(cfg.OutDir)))
	if err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}
	defer func() { _ = watcher.Close() }()

	if err := watcher.Start(ctx); err != nil {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	addr := net.JoinHostPort(cfg.Dev.Host, strconv.Itoa(cfg.Dev.Port))
	server := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	output.PrintHeader("Stitch Dev")
	output.PrintSuccess("Serving %s on http://%s", cfg.Root, addr)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		output.PrintError("%v", err)
		os.Exit(1)
	}

	fmt.Println()
	output.PrintDone("Stopped")
}
