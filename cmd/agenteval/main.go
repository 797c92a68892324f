// Command agenteval turns raw agent traces into evaluation-ready datasets.
//
// Usage:
//
//	agenteval build                        # build dataset from traces
//	agenteval build --config config.yaml   # with a config file
//	agenteval eligibility                  # report evaluator eligibility per record
//	agenteval criteria                     # print testing criteria JSON
//	agenteval version                      # show version information
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/BaSui01/agenteval/config"
	"github.com/BaSui01/agenteval/dataset"
	"github.com/BaSui01/agenteval/evaluators"
	"github.com/BaSui01/agenteval/internal/metrics"
	"github.com/BaSui01/agenteval/tools"
)

// Version information, injected at build time.
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "build":
		runBuild(os.Args[2:])
	case "eligibility":
		runEligibility(os.Args[2:])
	case "criteria":
		runCriteria(os.Args[2:])
	case "version":
		printVersion()
	case "help", "-h", "--help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// loadConfig resolves configuration shared by all commands.
func loadConfig(fs *flag.FlagSet, args []string) *config.Config {
	configPath := fs.String("config", "", "Path to config file (YAML)")
	fs.Parse(args)

	loader := config.NewLoader()
	if *configPath != "" {
		loader = loader.WithConfigPath(*configPath)
	}

	cfg, err := loader.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

func runBuild(args []string) {
	fs := flag.NewFlagSet("build", flag.ExitOnError)
	input := fs.String("input", "", "Raw-trace JSONL file (overrides config)")
	output := fs.String("output", "", "Dataset JSONL file (overrides config)")
	toolFile := fs.String("tools", "", "Tool definition YAML file (overrides config)")
	metricsAddr := fs.String("metrics-addr", "", "Serve Prometheus metrics on this address while building")
	cfg := loadConfig(fs, args)

	if *input != "" {
		cfg.Dataset.Input = *input
	}
	if *output != "" {
		cfg.Dataset.Output = *output
	}
	if *toolFile != "" {
		cfg.Tools.Definitions = *toolFile
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	logger.Info("Starting agenteval build",
		zap.String("version", Version),
		zap.String("input", cfg.Dataset.Input),
		zap.String("output", cfg.Dataset.Output),
	)

	registry := tools.NewRegistry(logger)
	if cfg.Tools.Definitions != "" {
		if err := tools.LoadFile(cfg.Tools.Definitions, registry); err != nil {
			logger.Fatal("Failed to load tool definitions", zap.Error(err))
		}
	}

	collector := metrics.NewCollector("agenteval", logger)
	if *metricsAddr != "" {
		go serveMetrics(*metricsAddr, logger)
	}

	builder := dataset.NewBuilder(registry, logger,
		dataset.WithConcurrency(cfg.Dataset.Concurrency),
		dataset.WithCollector(collector),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	traces, err := dataset.ReadTraceFile(cfg.Dataset.Input)
	if err != nil {
		logger.Fatal("Failed to read traces", zap.Error(err))
	}

	records, err := builder.Build(ctx, traces)
	if err != nil {
		logger.Fatal("Build failed", zap.Error(err))
	}

	if err := dataset.WriteFile(cfg.Dataset.Output, records); err != nil {
		logger.Fatal("Failed to write dataset", zap.Error(err))
	}

	// Eligibility summary over the finished dataset.
	eligibleCounts := make(map[string]int)
	for i := range records {
		collector.RecordWritten()
		for _, res := range evaluators.CheckAll(&records[i]) {
			collector.EligibilityChecked(res.Evaluator, res.Eligible)
			if res.Eligible {
				eligibleCounts[res.Evaluator]++
			}
		}
	}
	for _, name := range evaluators.Names() {
		logger.Info("evaluator coverage",
			zap.String("evaluator", name),
			zap.Int("eligible_records", eligibleCounts[name]),
			zap.Int("total_records", len(records)),
		)
	}

	logger.Info("Dataset written",
		zap.Int("records", len(records)),
		zap.String("output", cfg.Dataset.Output),
	)
}

// eligibilityReport is one line of `agenteval eligibility` output.
type eligibilityReport struct {
	Record  int                            `json:"record"`
	Results []evaluators.EligibilityResult `json:"results"`
}

func runEligibility(args []string) {
	fs := flag.NewFlagSet("eligibility", flag.ExitOnError)
	input := fs.String("input", "", "Dataset JSONL file (overrides config output path)")
	cfg := loadConfig(fs, args)

	path := cfg.Dataset.Output
	if *input != "" {
		path = *input
	}

	records, err := dataset.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read dataset: %v\n", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	for i := range records {
		report := eligibilityReport{Record: i, Results: evaluators.CheckAll(&records[i])}
		if err := enc.Encode(report); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to encode report: %v\n", err)
			os.Exit(1)
		}
	}
}

func runCriteria(args []string) {
	fs := flag.NewFlagSet("criteria", flag.ExitOnError)
	deployment := fs.String("deployment", "", "Judge model deployment (overrides config)")
	cfg := loadConfig(fs, args)

	if *deployment != "" {
		cfg.Evaluation.Deployment = *deployment
	}
	if cfg.Evaluation.Deployment == "" {
		fmt.Fprintln(os.Stderr, "A judge deployment is required (--deployment or config)")
		os.Exit(1)
	}

	logger := initLogger(cfg.Log)
	defer logger.Sync()

	criteria := evaluators.BuildCriteria(logger, cfg.Evaluation.Deployment, cfg.Evaluation.Evaluators...)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(criteria); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode criteria: %v\n", err)
		os.Exit(1)
	}
}

func serveMetrics(addr string, logger *zap.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	logger.Info("Serving metrics", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warn("Metrics server stopped", zap.Error(err))
	}
}

func printVersion() {
	fmt.Printf("agenteval %s\n", Version)
	fmt.Printf("  Build Time: %s\n", BuildTime)
	fmt.Printf("  Git Commit: %s\n", GitCommit)
}

func printUsage() {
	fmt.Println(`agenteval - Agent Trace Evaluation Toolkit

Usage:
  agenteval <command> [options]

Commands:
  build        Build an evaluation dataset from raw traces
  eligibility  Report evaluator eligibility for each dataset record
  criteria     Print testing criteria JSON for the configured evaluators
  version      Show version information
  help         Show this help message

Options for 'build':
  --config <path>        Path to configuration file (YAML)
  --input <path>         Raw-trace JSONL file
  --output <path>        Dataset JSONL file
  --tools <path>         Tool definition YAML file
  --metrics-addr <addr>  Serve Prometheus metrics while building

Examples:
  agenteval build --input traces.jsonl --output dataset.jsonl --tools tools.yaml
  agenteval eligibility --input dataset.jsonl
  agenteval criteria --deployment gpt-4o
  agenteval version`)
}

func initLogger(cfg config.LogConfig) *zap.Logger {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var encoderConfig zapcore.EncoderConfig
	if cfg.Format == "console" {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		encoderConfig = zap.NewProductionEncoderConfig()
		encoderConfig.TimeKey = "timestamp"
		encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}

	zapConfig := zap.Config{
		Level:            zap.NewAtomicLevelAt(level),
		Development:      cfg.Format == "console",
		Encoding:         cfg.Format,
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stderr"},
		ErrorOutputPaths: []string{"stderr"},
	}

	logger, err := zapConfig.Build(
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
	)
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return logger
}
