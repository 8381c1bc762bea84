package main

import (
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/windowstack/logging"
	"github.com/spf13/pflag"
)

func main() {
	layout := pflag.StringP("layout", "l", "main_menu.yaml", "window group layout in layouts/")
	debug := pflag.Bool("debug", false, "show the debug overlay")
	logLevel := pflag.String("log-level", "", "log level: debug, info, warn or error")
	logFormat := pflag.String("log-format", "", "console log format: text or json")
	logFile := pflag.String("log-file", "", "also write JSON logs to this rotating file")
	watch := pflag.BoolP("watch", "w", false, "reload the layout when files under layouts/ change")
	baseMonitor := pflag.BoolP("monitor", "m", false, "use base monitor instead of primary (for multi-monitor setups)")
	pflag.Parse()

	opts := logging.FromEnv()
	if *logLevel != "" {
		opts.Level = *logLevel
	} else if *debug {
		opts.Level = "debug"
	}
	if *logFormat != "" {
		opts.Format = *logFormat
	}
	if *logFile != "" {
		opts.File = *logFile
	}
	logging.Init(opts)
	defer logging.Close()

	log := logging.L()

	if *baseMonitor {
		ebiten.SetMonitor(ebiten.AppendMonitors(nil)[0])
	}

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(baseWidth*2, baseHeight*2)
	ebiten.SetWindowTitle("windowstack")

	game, err := NewGame(*layout, *debug, *watch)
	if err != nil {
		log.Error("start", slog.Any("err", err))
		os.Exit(1)
	}
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Error("run", slog.Any("err", err))
		os.Exit(1)
	}
}
