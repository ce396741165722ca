package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/abhisek/llmfaker/internal/config"
	"github.com/abhisek/llmfaker/internal/fakevalues"
	"github.com/abhisek/llmfaker/internal/llm"
	"github.com/abhisek/llmfaker/internal/store"
	"github.com/abhisek/llmfaker/internal/telemetry"
)

// noValue is printed when the backend could not supply a value.
const noValue = "<no value>"

var resolveCmd = &cobra.Command{
	Use:   "resolve <key>...",
	Short: "Resolve fake values for field keys",
	Example: "  llmfaker resolve name.firstName -n 5\n" +
		"  llmfaker resolve music.genre address.streetName --locale de",
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if err := applyResolveFlags(cmd, cfg); err != nil {
			return err
		}

		count, _ := cmd.Flags().GetInt("count")
		if count < 1 {
			return fmt.Errorf("--count must be at least 1")
		}
		locale, _ := cmd.Flags().GetString("locale")
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("invalid locale %q: %w", locale, err)
		}

		logger, err := telemetry.NewLogger(cfg.Log.Level, cfg.Log.Development)
		if err != nil {
			return err
		}
		defer logger.Sync()

		metrics, _ := cmd.Flags().GetBool("metrics")
		tracing, _ := cmd.Flags().GetBool("trace")
		providers, err := telemetry.Setup(cmd.Context(), telemetry.Config{
			ServiceName: "llmfaker",
			Version:     version,
			Metrics:     metrics,
			Tracing:     tracing,
			Writer:      os.Stderr,
		})
		if err != nil {
			return fmt.Errorf("setup telemetry: %w", err)
		}
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := providers.Shutdown(ctx); err != nil {
				logger.Warn("telemetry shutdown failed", zap.Error(err))
			}
		}()

		var eventRepo store.EventRepo
		dbPath, err := resolveDBPath(cmd, cfg.DB)
		if err != nil {
			return fmt.Errorf("resolve database path: %w", err)
		}
		st, err := store.Open(dbPath)
		if err != nil {
			logger.Warn("event log unavailable", zap.String("path", dbPath), zap.Error(err))
		} else {
			defer st.Close()
			eventRepo = st.EventRepo()
		}

		provider, err := llm.NewProvider(cmd.Context(), cfg.LLM, eventRepo, logger)
		if err != nil {
			return fmt.Errorf("configure %s provider: %w", cfg.LLM.Provider, err)
		}

		seed, _ := cmd.Flags().GetInt64("seed")
		resolver, err := fakevalues.NewResolver(provider, cfg.Faker, fakevalues.Options{
			Logger: logger,
			Picker: fakevalues.NewPicker(seed),
		})
		if err != nil {
			return err
		}

		return resolveKeys(cmd.Context(), cmd.OutOrStdout(), resolver, args, tag, count)
	},
}

// resolveKeys prints count values per key. Keys are validated up front so
// a typo fails before any backend call.
func resolveKeys(ctx context.Context, w io.Writer, r *fakevalues.Resolver, keys []string, tag language.Tag, count int) error {
	for _, key := range keys {
		if _, err := fakevalues.ParseKey(key); err != nil {
			return err
		}
	}

	var missing int
	for _, key := range keys {
		for i := 0; i < count; i++ {
			v, ok, err := r.ResolveLocale(ctx, key, tag)
			if err != nil {
				return err
			}
			if !ok {
				v = noValue
				missing++
			}
			if len(keys) > 1 {
				fmt.Fprintf(w, "%s\t%s\n", key, v)
			} else {
				fmt.Fprintln(w, v)
			}
		}
	}

	if missing == len(keys)*count {
		return errors.New("no values resolved; run with LLMFAKER_LOG_LEVEL=debug for details")
	}
	return nil
}

// applyResolveFlags layers explicitly set flags over the loaded config.
func applyResolveFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.LLM.Provider, _ = flags.GetString("provider")
		def := fakevalues.DefaultConfigFor(cfg.LLM.Provider)
		if !flags.Changed("items") {
			cfg.Faker.ItemsPerFetch = def.ItemsPerFetch
		}
		if !flags.Changed("style") {
			cfg.Faker.Style = def.Style
		}
	}
	if flags.Changed("full-key") {
		cfg.Faker.UseFullKey, _ = flags.GetBool("full-key")
	}
	if flags.Changed("items") {
		cfg.Faker.ItemsPerFetch, _ = flags.GetInt("items")
	}
	if flags.Changed("style") {
		style, _ := flags.GetString("style")
		cfg.Faker.Style = fakevalues.PromptStyle(style)
	}
	if flags.Changed("model") {
		cfg.Faker.Model, _ = flags.GetString("model")
	}
	return config.Validate(cfg)
}

func init() {
	resolveCmd.Flags().IntP("count", "n", 1, "Number of values to resolve per key")
	resolveCmd.Flags().StringP("locale", "l", "en", "BCP 47 locale whose language the values are generated in")
	resolveCmd.Flags().Bool("full-key", false, "Include the domain segment in the prompt")
	resolveCmd.Flags().Int("items", 0, "Candidates requested per backend call")
	resolveCmd.Flags().String("style", "", "Response shape to request: list or object")
	resolveCmd.Flags().String("provider", "", "Backend: anthropic, openai, gemini, openrouter, ollama")
	resolveCmd.Flags().String("model", "", "Model identifier overriding the provider default")
	resolveCmd.Flags().Int64("seed", 0, "Seed for drawing values from a batch (0 = random)")
	resolveCmd.Flags().Bool("metrics", false, "Print cache metrics to stderr on exit")
	resolveCmd.Flags().Bool("trace", false, "Print refill spans to stderr on exit")
}
