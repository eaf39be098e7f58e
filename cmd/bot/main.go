package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/likhanovw/redTripwireBot/internal/api"
	"github.com/likhanovw/redTripwireBot/internal/bot"
	"github.com/likhanovw/redTripwireBot/internal/config"
	"github.com/likhanovw/redTripwireBot/internal/docs"
	"github.com/likhanovw/redTripwireBot/internal/keyword"
	"github.com/likhanovw/redTripwireBot/internal/menu"
	"github.com/likhanovw/redTripwireBot/internal/store"
	"github.com/likhanovw/redTripwireBot/internal/transport/telegram"
	"github.com/likhanovw/redTripwireBot/pkg/logger"
)

func main() {
	// Load .env file; absence is fine, env vars may be set directly.
	_ = godotenv.Load()

	root := &cobra.Command{
		Use:           "redtripwirebot",
		Short:         "Consent-gated Telegram assistant with keyword-triggered document dispatch",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(serveCmd(), deleteUserCmd(), statsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bot (and the admin API when ADMIN_PORT is set)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			log.Info().Msg("Starting red-tripwire-bot...")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cfg.Bot.Token == "" {
				return errors.New("BOT_TOKEN environment variable is required")
			}

			st := store.NewFileStore(cfg.Store.DataFile, log)

			graph, err := menu.NewGraph(config.MenuNodes(), config.StartNode)
			if err != nil {
				return err
			}
			router := keyword.NewRouter(config.KeywordRules)

			tg, err := tgbotapi.NewBotAPI(cfg.Bot.Token)
			if err != nil {
				return fmt.Errorf("telegram authorization failed: %w", err)
			}
			tg.Debug = cfg.Bot.Debug

			sender := telegram.NewSender(tg, log)
			dispatcher, err := docs.NewDispatcher(cfg.Docs.Dir, config.Documents, sender, log)
			if err != nil {
				return err
			}

			handler, err := bot.New(st, graph, router, dispatcher, sender, config.Messages, config.Buttons, log)
			if err != nil {
				return err
			}
			listener := telegram.NewListener(tg, handler, cfg.Bot.PollTimeout, log)

			ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			if cfg.Store.Watch {
				go func() {
					if err := st.Watch(ctx); err != nil && !errors.Is(err, context.Canceled) {
						log.Warn().Err(err).Msg("Store watcher stopped")
					}
				}()
			}

			var adminSrv *http.Server
			if cfg.Admin.Port != "" {
				adminSrv = &http.Server{
					Addr:    ":" + cfg.Admin.Port,
					Handler: api.NewRouter(st, log),
				}
				go func() {
					log.Info().Str("port", cfg.Admin.Port).Msg("Admin API listening")
					if err := adminSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
						log.Error().Err(err).Msg("Admin API failed")
					}
				}()
			}

			if err := listener.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			log.Info().Msg("Shutting down...")

			if adminSrv != nil {
				shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Admin.ShutdownTimeout)
				defer shutdownCancel()
				if err := adminSrv.Shutdown(shutdownCtx); err != nil {
					log.Error().Err(err).Msg("Admin API forced to shutdown")
				}
			}

			log.Info().Msg("Exited gracefully")
			return nil
		},
	}
}

func deleteUserCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-user <id>",
		Short: "Hard-delete a user's record from the store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("user id must be numeric: %q", args[0])
			}

			log := logger.New()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			st := store.NewFileStore(cfg.Store.DataFile, log)
			deleted, err := st.Delete(userID)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("user %d not found in data storage", userID)
			}

			cmd.Printf("User %d deleted\n", userID)
			printStats(cmd, st)
			return nil
		},
	}
}

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print record store statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.New()
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			printStats(cmd, store.NewFileStore(cfg.Store.DataFile, log))
			return nil
		},
	}
}

func printStats(cmd *cobra.Command, st store.UserRecordStore) {
	stats := st.Stats()
	cmd.Printf("Total users:        %d\n", stats.TotalUsers)
	cmd.Printf("Users with consent: %d\n", stats.UsersWithConsent)
	cmd.Printf("Consent rate:       %.1f%%\n", stats.ConsentRate)
}
