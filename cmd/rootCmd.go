// Copyright 2020 Kubestr Developers

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

// 	http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kastenhq/fiostat/pkg/config"
	"github.com/kastenhq/fiostat/pkg/fio"
	"github.com/kastenhq/fiostat/pkg/fiostat"
	"github.com/kastenhq/fiostat/pkg/influx"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	envFile     string
	metricsAddr string
	logLevel    string
	skipChecks  bool

	v            = config.New()
	newPreflight = fiostat.NewPreflight
	rootCmd      = &cobra.Command{
		Use:   "fiostat",
		Short: "Streams fio read statistics into InfluxDB",
		Long: `fiostat runs an fio job, prints the sequential read bandwidth and
		completion latency of every status report and writes them to an
		InfluxDB bucket.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return StreamFio(ctx, cmd.OutOrStdout(), v)
		},
	}
)

func init() {
	rootCmd.Flags().StringVarP(&envFile, "env-file", "e", "", "A dotenv file loaded before reading the environment.")
	rootCmd.Flags().StringP("influx-url", "u", "", "The InfluxDB server URL. Overrides "+config.URLEnvKey+".")
	rootCmd.Flags().StringP("hostname", "H", "", "The hostname tag written with every point. Overrides "+config.HostnameEnvKey+".")
	rootCmd.Flags().StringP("fio-binary", "b", "", "The fio executable. Overrides "+config.BinaryEnvKey+".")
	rootCmd.Flags().StringVarP(&metricsAddr, "metrics-addr", "m", "", "Serve Prometheus metrics on this address, e.g. :9090.")
	rootCmd.Flags().StringVarP(&logLevel, "log-level", "l", zerolog.InfoLevel.String(), "Log level (debug, info, warn, error).")
	rootCmd.Flags().BoolVarP(&skipChecks, "skip-checks", "k", false, "Skip the fio binary and job file checks.")

	for key, flag := range map[string]string{
		config.URLEnvKey:      "influx-url",
		config.HostnameEnvKey: "hostname",
		config.BinaryEnvKey:   "fio-binary",
	} {
		if err := config.BindFlag(v, key, rootCmd.Flags().Lookup(flag)); err != nil {
			panic(err)
		}
	}
}

// Execute executes the main command
func Execute() error {
	return rootCmd.Execute()
}

// StreamFio loads the configuration and streams one fio run into InfluxDB.
func StreamFio(ctx context.Context, out io.Writer, v *viper.Viper) error {
	level, err := zerolog.ParseLevel(logLevel)
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err.Error())
		return err
	}
	zerolog.SetGlobalLevel(level)

	if err := config.LoadEnvFile(envFile); err != nil {
		fmt.Fprintf(out, "Error: %s\n", err.Error())
		return err
	}
	cfg, err := config.Load(v)
	if err != nil {
		fmt.Fprintf(out, "Error: %s\n", err.Error())
		return err
	}

	preflight := newPreflight()
	if err := preflight.RequireRoot(); err != nil {
		fmt.Fprintln(out, err.Error())
		return err
	}
	if !skipChecks {
		for _, check := range preflight.Checks(ctx, cfg.Binary, cfg.JobFile) {
			check.Fprint(out)
			fmt.Fprintln(out)
		}
	}

	reg := prometheus.NewRegistry()
	if metricsAddr != "" {
		shutdown := serveMetrics(metricsAddr, reg)
		defer shutdown()
	}

	sink := influx.NewSink(cfg.URL, cfg.Token, cfg.Hostname)
	defer sink.Close()

	runner := &fio.FIOrunner{
		Sink:       sink,
		Out:        out,
		Registerer: reg,
		Progress:   true,
	}
	if fio.IsConfigMapJobRef(cfg.JobFile) {
		cli, err := fiostat.LoadKubeCli()
		if err != nil {
			fmt.Fprintf(out, "Failed to load kubeCli (%s)\n", err.Error())
			return err
		}
		runner.KubeCli = cli
	}

	log.Info().Str("job", cfg.JobFile).Str("bucket", cfg.Bucket).Str("url", cfg.URL).Msg("Starting fio run")
	res, runErr := runner.RunFio(ctx, &fio.RunFIOArgs{
		FIOJobFilepath: cfg.JobFile,
		Bucket:         cfg.Bucket,
		Org:            cfg.Org,
		Binary:         cfg.Binary,
	})
	fmt.Fprintln(out)
	fiostat.RunSummary(res, runErr).Fprint(out)
	return reportRunError(out, runErr)
}

// reportRunError prints the outcome of a run. Once fio has been handed the
// job, failures are reported and the command still exits cleanly.
func reportRunError(out io.Writer, err error) error {
	if err == nil {
		return nil
	}
	var subprocErr *fio.SubprocessError
	if errors.As(err, &subprocErr) {
		fmt.Fprintf(out, fiostat.ErrorColor+"\n", "Error running FIO job:")
		fmt.Fprintln(out, subprocErr.Stderr)
		return nil
	}
	fmt.Fprintf(out, fiostat.ErrorColor+"\n", "Unexpected error:")
	fmt.Fprintln(out, err.Error())
	log.Error().Err(err).Msg("fio run ended unexpectedly")
	return nil
}

func serveMetrics(addr string, reg *prometheus.Registry) func() {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("Metrics server stopped")
		}
	}()
	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctx)
	}
}
