package commands

import (
	"context"
	"fmt"
	"io/ioutil"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/battlesnakeio/snake/config"
	"github.com/battlesnakeio/snake/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:     "snake",
	Short:   "snake is a terminal snake game on a wrap around board",
	Version: version.Version,
	PersistentPreRunE: func(c *cobra.Command, args []string) error {
		return setupLogging()
	},
	RunE: func(c *cobra.Command, args []string) error {
		return play()
	},
}

var (
	cfg = config.FromEnv()

	apiAddr    = "http://localhost:3005"
	logLevel   = "info"
	logFile    = ""
	promEnable = false
	promListen = ":9000"
)

// Execute runs the root command
func Execute() {
	flags := rootCmd.PersistentFlags()
	flags.IntVar(&cfg.GridWidth, "width", cfg.GridWidth, "board width in cells")
	flags.IntVar(&cfg.GridHeight, "height", cfg.GridHeight, "board height in cells")
	flags.IntVar(&cfg.CellSize, "cell-size", cfg.CellSize, "cell size in pixels, for graphical spectators")
	flags.IntVar(&cfg.InitialLength, "length", cfg.InitialLength, "initial snake length")
	flags.IntVar(&cfg.TickRate, "tick-rate", cfg.TickRate, "moves per second")
	flags.BoolVar(&cfg.StrictTail, "strict-tail", cfg.StrictTail, "moving into the cell the tail is leaving is a collision")
	flags.Int64Var(&cfg.Seed, "seed", cfg.Seed, "random seed for snake and food placement")
	flags.StringVar(&logLevel, "log-level", logLevel, "log level, one of: [debug, info, warn, error]")
	flags.StringVar(&logFile, "log-file", logFile, "write logs to this file")
	flags.BoolVar(&promEnable, "prometheus", promEnable, "enable prometheus metrics")
	flags.StringVar(&promListen, "prometheus-listen", promListen, "prometheus http endpoint")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(replayCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func setupLogging() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return err
	}
	log.SetLevel(level)
	if logFile != "" {
		f, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return err
		}
		log.SetOutput(f)
	}
	return nil
}

// quietLogs keeps logs from drawing over a terminal ui, unless they are going
// to a file.
func quietLogs() {
	if logFile == "" {
		log.SetOutput(ioutil.Discard)
	}
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case s := <-sigs:
			log.WithField("signal", s).Info("shutting down")
			cancel()
		case <-ctx.Done():
		}
		signal.Stop(sigs)
	}()
	return ctx, cancel
}

func prometheus() {
	if !promEnable {
		log.Info("prometheus exporter not enabled")
		return
	}

	log.WithField("addr", promListen).Info("starting prometheus exporter")
	go func() {
		r := http.NewServeMux()
		r.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(promListen, r); err != nil {
			log.WithError(err).Warn("prometheus failed to listen")
		}
	}()
}
