package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"overstats/internal/components/telemetry"
	"overstats/internal/profile"
	"overstats/internal/scrapers/overwatch"
	"overstats/lib/configutil"
	"overstats/lib/restyutil"
	libtelemetry "overstats/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	Platform          string  `json:"platform"`
	UseDecimal        bool    `json:"use_decimal"`
	BaseUrl           string  `json:"base_url"`
	RequestsPerSecond float64 `json:"requests_per_second"`
	TimeoutSeconds    int     `json:"timeout_seconds"`
}

var defaultConfig = Config{
	Platform:          string(overwatch.PlatformPC),
	BaseUrl:           overwatch.DefaultBaseUrl,
	RequestsPerSecond: 2,
	TimeoutSeconds:    30,
}

var (
	configPath string
	platform   string
	useDecimal bool
	verbose    bool
	jsonLogs   bool
	dumpHttp   string
)

// set up by the root command before any subcommand runs
var (
	config  Config
	otelTel libtelemetry.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "overstats-cli",
	Short: "overstats-cli scrapes and prints overwatch player profiles.",

	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		err := otelTel.Shutdown(ctx)
		if err != nil {
			slog.Warn("failed to shutdown telemetry", "err", err)
		}
	},
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&configPath, "config", "", "The config file to read, by default overstats.json5 is searched for upwards from the cwd.")
	flags.StringVarP(&platform, "platform", "p", "", "The platform of the player: pc, xbl or psn.")
	flags.BoolVar(&useDecimal, "decimal", false, "Keep percentages as exact decimals.")
	flags.BoolVarP(&verbose, "verbose", "v", false, "Log debug messages.")
	flags.BoolVar(&jsonLogs, "json-logs", false, "Log in JSON instead of text.")
	flags.StringVar(&dumpHttp, "dump-http", "", "A directory to write every http request and response to.")
}

func setup(cmd *cobra.Command, args []string) error {
	libtelemetry.InitSlog(verbose, jsonLogs)

	var err error
	config, err = readConfig()
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if cmd.Flags().Changed("platform") {
		config.Platform = platform
	}
	if cmd.Flags().Changed("decimal") {
		config.UseDecimal = useDecimal
	}

	otelTel, err = libtelemetry.SetupFromEnv(cmd.Context(), "overstats-cli")
	switch {
	case errors.Is(err, os.ErrNotExist):
		slog.Debug("no telemetry.json5 found, traces and metrics are disabled")
	case err != nil:
		slog.Warn("failed to setup telemetry", "err", err)
	case otelTel.MeterProvider != nil:
		err = libtelemetry.InstrumentPerfStats(cmd.Context(), time.Second*30)
		if err != nil {
			slog.Warn("failed to instrument perf stats", "err", err)
		}
	}
	return nil
}

func readConfig() (Config, error) {
	if configPath == "" {
		return configutil.ReadRecursivelyOr("overstats.json5", defaultConfig)
	}
	return configutil.ReadConfigOr(configPath, defaultConfig)
}

// newProfile makes a lazily loaded profile of the player with battletag
// according to the current config.
func newProfile(battletag string) (*profile.Profile, error) {
	p, err := overwatch.ParsePlatform(config.Platform)
	if err != nil {
		return nil, err
	}

	opts := overwatch.ClientOptions{
		BaseUrl:           config.BaseUrl,
		RequestsPerSecond: config.RequestsPerSecond,
		Timeout:           time.Duration(config.TimeoutSeconds) * time.Second,
	}
	if dumpHttp != "" {
		output, err := restyutil.NewFilesystemOutput(dumpHttp)
		if err != nil {
			return nil, err
		}
		opts.Output = output
	}

	client, err := overwatch.NewClient(opts, telemetry.SlogAPI{})
	if err != nil {
		return nil, err
	}
	return client.NewProfile(p, battletag, profile.Options{UseDecimal: config.UseDecimal})
}

func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
