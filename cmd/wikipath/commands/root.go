package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DrSkyle/wikipath/pkg/config"
	"github.com/DrSkyle/wikipath/pkg/graph"
	"github.com/DrSkyle/wikipath/pkg/loader"
	"github.com/DrSkyle/wikipath/pkg/storage"
	"github.com/DrSkyle/wikipath/pkg/telemetry"
	"github.com/DrSkyle/wikipath/pkg/version"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "wikipath",
	Short: "Shortest paths and link-graph statistics for Wikipedia",
	Long: `wikipath - Wikipedia link graph explorer

Load. Query. Measure.`,
	Version:       version.Current,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("error: ")+err.Error())
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	d := config.Default()
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "Config file (default $HOME/.wikipath.yaml)")
	pf.String("nodes", d.NodesPath, "Titles file, one per line")
	pf.String("edges", d.EdgesPath, "Edge list file, one \"u v\" pair per line")
	pf.String("input-url", d.InputURL, "Read nodes/edges from a store (s3://bucket/prefix, badger://dir)")
	pf.String("report-url", d.ReportURL, "Statistics report store (dir, s3://, badger://)")
	pf.String("report-key", d.ReportKey, "Statistics report key")
	pf.String("log-level", d.LogLevel, "Log level (debug, info, warn, error)")
	pf.String("log-format", d.LogFormat, "Log format (json, text)")
	pf.String("otel-endpoint", d.OtelEndpoint, "OTLP HTTP endpoint for traces")
	pf.Bool("skip-telemetry", d.SkipTelemetry, "Disable tracing setup")
	bindFlags(pf)

	rootCmd.SetHelpFunc(func(cmd *cobra.Command, args []string) {
		renderHelp(cmd)
	})

	rootCmd.AddCommand(serveCmd, statsCmd, pathCmd)
}

// bindFlags maps every flag onto the viper key of the same name with dashes
// turned into underscores, so flags, env and file share one namespace.
func bindFlags(fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = viper.BindPFlag(flagKey(f.Name), f)
	})
}

func flagKey(name string) string {
	return strings.ReplaceAll(name, "-", "_")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.SetConfigFile(filepath.Join(home, ".wikipath.yaml"))
			viper.SetConfigType("yaml")
		}
	}
	// A missing default file is fine; an explicit one must exist.
	if err := viper.ReadInConfig(); err != nil && cfgFile != "" {
		fmt.Fprintf(os.Stderr, "failed to read config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}
}

// env is the per-invocation runtime shared by subcommands.
type env struct {
	cfg      config.Config
	logger   *slog.Logger
	shutdown func(context.Context) error
}

func setup(ctx context.Context) (*env, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, err
	}
	level, _ := cfg.SlogLevel()
	logger := telemetry.NewLogger(os.Stderr, level, cfg.LogFormat)
	slog.SetDefault(logger)

	e := &env{cfg: cfg, logger: logger, shutdown: func(context.Context) error { return nil }}
	if !cfg.SkipTelemetry {
		shutdown, err := telemetry.Init(ctx, version.AppName, version.Current, cfg.OtelEndpoint)
		if err != nil {
			logger.Warn("Telemetry failed", "error", err)
		} else {
			e.shutdown = shutdown
		}
	}
	return e, nil
}

func (e *env) close() {
	if err := e.shutdown(context.Background()); err != nil {
		e.logger.Warn("Telemetry shutdown failed", "error", err)
	}
}

// loadGraph reads the graph from local files or, when input_url is set, from
// the blob store it names.
func (e *env) loadGraph(ctx context.Context) (*graph.Graph, error) {
	opt := loader.WithLogger(e.logger)
	if e.cfg.InputURL == "" {
		return loader.LoadFiles(ctx, e.cfg.NodesPath, e.cfg.EdgesPath, opt)
	}
	store, err := storage.Open(ctx, e.cfg.InputURL)
	if err != nil {
		return nil, err
	}
	defer storage.Close(store)
	return loader.LoadFromStore(ctx, store, e.cfg.NodesPath, e.cfg.EdgesPath, opt)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00FF99")).
			MarginBottom(1)
	flagStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#AAAAAA"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888")).Width(28)
	valueStyle = lipgloss.NewStyle().Bold(true)
	errorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FF5F87"))
)

func renderHelp(cmd *cobra.Command) {
	fmt.Println(titleStyle.Render(fmt.Sprintf("WIKIPATH %s", version.Current)))
	fmt.Println("Shortest paths and structural statistics over the Wikipedia link graph.")
	fmt.Println("")

	fmt.Println(titleStyle.Render("USAGE"))
	fmt.Printf("  %s\n\n", cmd.UseLine())

	if cmd.HasAvailableSubCommands() {
		fmt.Println(titleStyle.Render("COMMANDS"))
		for _, c := range cmd.Commands() {
			if c.IsAvailableCommand() {
				fmt.Printf("  %-12s %s\n", c.Name(), c.Short)
			}
		}
		fmt.Println("")
	}

	fmt.Println(titleStyle.Render("EXAMPLES"))
	fmt.Println("  wikipath stats --diameter-mode exact      # Build path_statistics.json")
	fmt.Println("  wikipath path \"Go (programming language)\" \"Unix\"")
	fmt.Println("  wikipath serve --listen :8000")
	fmt.Println("")

	fmt.Println(titleStyle.Render("FLAGS"))
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden {
			return
		}
		output := fmt.Sprintf("  --%-20s %s", f.Name, f.Usage)
		if f.DefValue != "" && f.DefValue != "false" && f.DefValue != "0" {
			output += fmt.Sprintf(" (default %s)", f.DefValue)
		}
		fmt.Println(flagStyle.Render(output))
	})
	fmt.Println("")
}
