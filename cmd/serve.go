package cmd

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/capacity-sim/capacity-sim/api"
)

// envPrefix namespaces the environment variables read by serve, e.g. CAPACITY_SIM_ADDR.
const envPrefix = "CAPACITY_SIM"

// serveConfig is the resolved configuration of the HTTP server.
type serveConfig struct {
	Addr            string
	Workers         int
	ShutdownTimeout time.Duration
}

// serveCmd starts the HTTP API
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the capacity study API over HTTP",
	Run: func(cmd *cobra.Command, args []string) {
		v, err := newServeViper(cmd)
		if err != nil {
			logrus.Fatalf("Reading serve configuration: %v", err)
		}
		// --log may come from CAPACITY_SIM_LOG as well as the flag
		level, err := logrus.ParseLevel(v.GetString("log"))
		if err != nil {
			logrus.Fatalf("Invalid log level: %s", v.GetString("log"))
		}
		logrus.SetLevel(level)

		cfg := loadServeConfig(v)
		if err := runServer(cmd.Context(), cfg); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

// newServeViper binds the serve flags and CAPACITY_SIM_* environment variables.
// Flags set on the command line win over the environment.
func newServeViper(cmd *cobra.Command) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	for _, name := range []string{"addr", "workers", "shutdown-timeout"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return nil, err
		}
	}
	if err := v.BindPFlag("log", cmd.Root().PersistentFlags().Lookup("log")); err != nil {
		return nil, err
	}
	return v, nil
}

func loadServeConfig(v *viper.Viper) serveConfig {
	cfg := serveConfig{
		Addr:            v.GetString("addr"),
		Workers:         v.GetInt("workers"),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
	}
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	return cfg
}

// runServer serves until SIGINT/SIGTERM or ctx cancellation, then drains
// in-flight requests for at most cfg.ShutdownTimeout.
func runServer(ctx context.Context, cfg serveConfig) error {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           api.NewServer(cfg.Workers).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logrus.Infof("Serving capacity-sim API on %s (workers=%d)", cfg.Addr, cfg.Workers)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logrus.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func init() {
	serveCmd.Flags().String("addr", ":8000", "Listen address")
	serveCmd.Flags().Int("workers", 4, "Concurrent candidate evaluations per request")
	serveCmd.Flags().Duration("shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
}
