package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/ironsheep/docscan/internal/capture"
	"github.com/ironsheep/docscan/internal/config"
	"github.com/ironsheep/docscan/internal/imaging"
	"github.com/ironsheep/docscan/internal/logging"
	"github.com/ironsheep/docscan/internal/pipeline"
	"github.com/ironsheep/docscan/internal/server"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	cmd := "scan"
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("docscan %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			usage()
			return
		case "scan", "mcp":
			cmd = os.Args[1]
		default:
			fmt.Fprintf(os.Stderr, "unknown command: %s\n\n", os.Args[1])
			usage()
			os.Exit(2)
		}
	}

	if err := run(cmd); err != nil {
		fmt.Fprintf(os.Stderr, "docscan: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Println("docscan - live document scanner")
	fmt.Println()
	fmt.Println("Usage: docscan [command]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  scan             Scan frames from the camera or input files (default)")
	fmt.Println("  mcp              Serve the inspection tools over MCP on stdin/stdout")
	fmt.Println("  version, -v      Print version information")
	fmt.Println("  help, -h         Print this help message")
	fmt.Println()
	fmt.Println("Environment variables (also read from .env):")
	fmt.Println("  DOCSCAN_DEVICE=0                  Camera index")
	fmt.Println("  DOCSCAN_INPUTS=a.png,dir/         Scan image files instead of the camera")
	fmt.Println("  DOCSCAN_HEADLESS=true             Log instead of opening windows")
	fmt.Println("  DOCSCAN_MAX_FPS=15                Cap the loop rate")
	fmt.Println("  DOCSCAN_LOG_LEVEL=debug           trace, debug, info, warn or error")
	fmt.Println("  DOCSCAN_LOG_FILE=docscan.log      Also write a rotating log file")
	fmt.Println("  DOCSCAN_AREA_THRESHOLD=5000       Minimum document area in pixels")
	fmt.Println("  DOCSCAN_CANNY_LOW/HIGH=150        Edge detector thresholds")
	fmt.Println()
	fmt.Println("Camera and window support need a build with -tags gocv.")
}

func run(cmd string) error {
	settings, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.Options{Level: settings.LogLevel, File: settings.LogFile})
	if err != nil {
		return err
	}

	overlay, err := imaging.ParseColor(settings.OverlayColor)
	if err != nil {
		return err
	}
	p, err := pipeline.New(settings.Params, pipeline.WithOverlay(overlay, settings.OverlayThickness))
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(logrus.Fields{
		"version": Version,
		"commit":  GitCommit,
		"command": cmd,
	}).Debug("Starting docscan")

	if cmd == "mcp" {
		srv := server.New(p, log)
		srv.SetVersion(Version)
		return srv.Run(ctx)
	}
	return scan(ctx, log, settings, p)
}

func scan(ctx context.Context, log *logrus.Logger, settings config.Settings, p *pipeline.Pipeline) error {
	params := settings.Params

	var src pipeline.FrameSource
	if len(settings.Inputs) > 0 {
		files, err := capture.NewFileSource(settings.Inputs, params.FrameWidth, params.FrameHeight)
		if err != nil {
			return err
		}
		src = files
	} else {
		cam, err := capture.OpenCamera(settings.Device, params.FrameWidth, params.FrameHeight, params.Brightness)
		if err != nil {
			return err
		}
		src = cam
	}

	var sink pipeline.DisplaySink
	if settings.Headless {
		sink = capture.NewLogSink(log)
	} else {
		win, err := capture.OpenWindow()
		if err != nil {
			src.Close()
			if errors.Is(err, capture.ErrNoOpenCV) {
				return fmt.Errorf("%w (set DOCSCAN_HEADLESS=true to run without a display)", err)
			}
			return err
		}
		defer win.Close()
		sink = win
	}

	stats, err := pipeline.Run(ctx, src, sink, p, pipeline.RunOptions{
		MaxFPS:                 settings.MaxFPS,
		MaxAcquisitionFailures: settings.MaxAcquisitionFailures,
		Logger:                 log,
	})
	log.WithFields(logrus.Fields{
		"cycles":               stats.Cycles,
		"documents":            stats.Documents,
		"degenerate":           stats.Degenerate,
		"acquisition_failures": stats.AcquisitionFailures,
		"display_failures":     stats.DisplayFailures,
	}).Info("Scan finished")
	return err
}
