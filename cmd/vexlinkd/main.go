// Command vexlinkd runs the telemetry link as a standalone process: it opens
// a driver (a serial port, or an in-memory loopback pair for demos), wires
// up a Socket, serves Prometheus metrics, and logs until interrupted.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"

	"github.com/uwst-robotics/vexbridge-link/drivers/loopback"
	"github.com/uwst-robotics/vexbridge-link/drivers/uart"
	"github.com/uwst-robotics/vexbridge-link/internal/config"
	"github.com/uwst-robotics/vexbridge-link/link"
	"github.com/uwst-robotics/vexbridge-link/pkg/logger"
	"github.com/uwst-robotics/vexbridge-link/pkg/metrics"
)

const version = "0.1.0"

// cmd holds the flags bound by the root command.
type cmd struct {
	configPath  string
	port        string
	baud        int
	metricsAddr string
	loopback    bool
}

var args cmd

var rootCmd = &cobra.Command{
	Use:   "vexlinkd",
	Short: "Robot-side telemetry serial link daemon",
	RunE: func(_ *cobra.Command, _ []string) error {
		return run(args)
	},
}

func init() {
	flags := rootCmd.Flags()
	flags.StringVarP(&args.configPath, "config", "c", "", "Path to a YAML config file (optional, defaults apply otherwise)")
	flags.StringVarP(&args.port, "port", "p", "", "Serial device to open (e.g. /dev/ttyUSB0); overrides the config file")
	flags.IntVarP(&args.baud, "baud", "b", 0, "Serial baud rate; overrides the config file (0 = use config/default)")
	flags.StringVar(&args.metricsAddr, "metrics-addr", "", "Listen address for the Prometheus /metrics endpoint; overrides the config file")
	flags.BoolVar(&args.loopback, "loopback", false, "Use an in-memory loopback driver instead of opening a real serial port (for demos)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "vexlinkd: %v\n", err)
		os.Exit(1)
	}
}

func run(c cmd) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if c.port != "" {
		cfg.Serial = c.port
	}
	if c.baud != 0 {
		cfg.Baud = c.baud
	}
	if c.metricsAddr != "" {
		cfg.MetricsAddr = c.metricsAddr
	}

	level := cfg.Logging.Level
	if level == 0 {
		level = zapcore.InfoLevel
	}
	if err := logger.Init(level); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	logger.Banner(version)
	logger.Section("Startup")

	driver, closeDriver, err := openDriver(c, cfg)
	if err != nil {
		return fmt.Errorf("open driver: %w", err)
	}
	defer closeDriver()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	socket := link.NewSocket(ctx, driver, cfg)
	defer socket.Close()
	socket.FetchBroadcaster(ctx)

	logger.Info("link socket running (serial=%q baud=%d)", cfg.Serial, cfg.Baud)

	wg, ctx := errgroup.WithContext(ctx)
	if cfg.MetricsAddr != "" {
		wg.Go(func() error {
			return serveMetrics(ctx, cfg.MetricsAddr)
		})
	}
	wg.Go(func() error {
		err := waitInterrupted(ctx)
		logger.Warn("caught signal, shutting down: %v", err)
		return err
	})

	err = wg.Wait()
	var interrupted interruptedError
	if errors.As(err, &interrupted) {
		logger.Section("Shutdown")
		return nil
	}
	return err
}

// openDriver opens the transport named by flags/config: a real serial port
// by default, or one end of an in-memory loopback pair whose far end
// discards everything written to it when --loopback is set.
func openDriver(c cmd, cfg config.Config) (link.Driver, func(), error) {
	if c.loopback {
		a, b := loopback.Pair()
		// b has no socket of its own; drain it continuously so writes on a
		// never block waiting for a reader. This makes --loopback a sink
		// that exercises the writer/queue/pending path without a peer that
		// talks back.
		go func() {
			sink := make([]byte, 0, 512)
			for {
				sink = sink[:0]
				if n := b.Read(&sink); n < 0 {
					return
				}
			}
		}()
		return a, func() { a.Close(); b.Close() }, nil
	}

	d, err := uart.Open(cfg.Serial, cfg.Baud)
	if err != nil {
		return nil, nil, err
	}
	return d, func() { d.Close() }, nil
}

func serveMetrics(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: metrics.Handler()}

	go func() {
		<-ctx.Done()
		srv.Close()
	}()

	logger.Info("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("metrics server: %w", err)
	}
	return nil
}

// interruptedError wraps the signal that ended the run; returned by
// waitInterrupted and recognized in run to distinguish a clean shutdown from
// a real failure.
type interruptedError struct{ os.Signal }

func (e interruptedError) Error() string { return e.Signal.String() }

// waitInterrupted blocks until SIGINT or SIGTERM arrives or ctx is canceled.
func waitInterrupted(ctx context.Context) error {
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-ch:
		return interruptedError{sig}
	case <-ctx.Done():
		return ctx.Err()
	}
}
