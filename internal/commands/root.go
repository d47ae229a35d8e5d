package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/songzhibin97/tokenlens/internal/ai"
	aiopenai "github.com/songzhibin97/tokenlens/internal/ai/openai"
	"github.com/songzhibin97/tokenlens/internal/api"
	"github.com/songzhibin97/tokenlens/internal/configs"
	"github.com/songzhibin97/tokenlens/internal/data"
	"github.com/songzhibin97/tokenlens/internal/data/storage"
	"github.com/songzhibin97/tokenlens/internal/intent"
	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/pipeline"
	"github.com/songzhibin97/tokenlens/internal/provider"
	"github.com/songzhibin97/tokenlens/internal/risk"
	"github.com/songzhibin97/tokenlens/internal/router"
	"github.com/songzhibin97/tokenlens/internal/usage"
)

var (
	flagConfig string
	flagJSON   bool
)

// NewRootCommand builds the CLI. Subcommands share one wired pipeline.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "tokenlens",
		Short:        "Token risk assessment from free-text queries or contract addresses",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flagConfig, "config", "", "path to JSON config file")
	root.PersistentFlags().BoolVar(&flagJSON, "json", false, "print raw JSON instead of display text")

	root.AddCommand(newAnalyzeCommand())
	root.AddCommand(newServeCommand())
	root.AddCommand(newQuotaCommand())
	return root
}

// app is the wired object graph behind every subcommand.
type app struct {
	config   *configs.Config
	pipeline *pipeline.Pipeline
	tracker  *usage.Tracker
	store    data.AssessmentStore // optional
	logger   *slog.Logger
}

func buildApp() (*app, error) {
	_ = godotenv.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	config := &configs.Config{}
	if flagConfig != "" {
		raw, err := os.ReadFile(flagConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := json.Unmarshal(raw, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}
	if config.Sources.BirdeyeAPIKey == "" {
		config.Sources.BirdeyeAPIKey = os.Getenv("BIRDEYE_API_KEY")
	}
	if config.AI.APIKey == "" {
		config.AI.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	tracker := usage.NewTracker(config.Sources.QuotaOverrides)

	adapters := []provider.Adapter{
		provider.NewDexScreener(),
		provider.NewGeckoTerminal(config.Sources.Network),
		provider.NewTokenList(config.Sources.TokenListURL),
		provider.NewGoPlus(config.Sources.ChainID),
		provider.NewChainRPC(config.Sources.RPCURL, config.Sources.ExplorerURL),
		provider.NewBirdeye(config.Sources.BirdeyeAPIKey),
		provider.NewCEXMarket(),
	}

	priorities := router.DefaultPriorities()
	for name, chain := range config.Sources.Priorities {
		priorities[models.Capability(name)] = chain
	}

	rt := router.New(adapters, priorities, tracker, logger)

	var explainer ai.Explainer = ai.NewStaticExplainer()
	if config.AI.APIKey != "" {
		explainer = aiopenai.NewExplainer(config.AI.APIKey, config.AI.ModelType)
	}

	var store data.AssessmentStore
	if config.Database.ConnStr != "" {
		pg, err := storage.NewPostgresStorage(config.Database.ConnStr)
		if err != nil {
			return nil, fmt.Errorf("failed to open assessment store: %w", err)
		}
		store = pg
	}

	p := pipeline.New(intent.NewClassifier(), rt, risk.NewEngine(), explainer, store, logger)

	return &app{
		config:   config,
		pipeline: p,
		tracker:  tracker,
		store:    store,
		logger:   logger,
	}, nil
}

func (a *app) options() pipeline.Options {
	return pipeline.Options{AllowQuotaLimitedSources: a.config.AllowQuotaLimited()}
}

func newAnalyzeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "analyze [query or address]",
		Short: "Run one risk assessment and print the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			result := a.pipeline.Run(cmd.Context(), strings.Join(args, " "), a.options())
			if flagJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(result)
			}
			fmt.Fprintln(cmd.OutOrStdout(), result.Response)
			if !result.Success {
				return fmt.Errorf("analysis failed: %s", result.ErrCode)
			}
			return nil
		},
	}
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			addr := a.config.Server.Addr
			if addr == "" {
				addr = ":8080"
			}

			server := api.NewServer(a.pipeline, a.tracker, a.store, a.options(), a.logger)
			a.logger.Info("listening", "addr", addr)
			return http.ListenAndServe(addr, server.Router())
		},
	}
}

func newQuotaCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quota",
		Short: "Print today's per-source usage counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := buildApp()
			if err != nil {
				return err
			}

			counts := a.tracker.Snapshot()
			if a.store != nil {
				if err := a.store.SaveUsageSnapshot(cmd.Context(), time.Now(), counts); err != nil {
					a.logger.Warn("failed to persist usage snapshot", "err", err)
				}
			}
			return json.NewEncoder(cmd.OutOrStdout()).Encode(counts)
		},
	}
}
