// cmd/discord/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "shopfront/internal/commands/admin"
	_ "shopfront/internal/commands/sendraw"
	_ "shopfront/internal/commands/ticket"
	_ "shopfront/internal/commands/watch"

	"shopfront/internal/config"
	"shopfront/internal/core"
	"shopfront/internal/discord"
	"shopfront/internal/logging"
	"shopfront/internal/orders"
	"shopfront/internal/sticky"
	"shopfront/internal/storage"
	"shopfront/internal/ticket"
	v "shopfront/internal/version"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		fallback := logging.New("info", "")
		fallback.Fatal().Err(err).Msg("configuration error")
	}

	log := logging.New(cfg.LogLevel, cfg.LogFile)
	log.Info().Str("version", v.Version).Str("go", v.GoVersion).Msgf("starting %s", v.AppName)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, err := storage.New(cfg.StoragePath)
	if err != nil {
		log.Fatal().Err(err).Msg("storage init failed")
	}
	defer store.Close()

	notifier, err := ticket.NewNotifier(cfg.DeliveryTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("delivery notifier init failed")
	}

	tickets := ticket.NewController(
		ticket.Config{
			CategoryID:          cfg.TicketCategoryID,
			StaffRoleIDs:        cfg.StaffRoleIDs,
			OrderChannelID:      cfg.OrderChannelID,
			TranscriptChannelID: cfg.TranscriptChannelID,
			Payment: ticket.PaymentInstructions{
				CashAppURL:  cfg.CashAppURL,
				PayPalURL:   cfg.PayPalURL,
				LitecoinTag: cfg.LitecoinTag,
			},
		},
		ticket.NewRegistry(),
		ticket.NewCounter(),
		orders.NewLedger(store),
		notifier,
		log,
	)

	deps := &core.Deps{
		Cfg:     cfg,
		Storage: store,
		Tickets: tickets,
		Sticky:  sticky.NewReposter(store, log),
		Log:     log,
	}

	errCh := make(chan error, 1)
	go func() {
		if err := discord.StartBot(ctx, deps); err != nil {
			errCh <- err
		}
		close(errCh)
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	select {
	case s := <-sig:
		log.Info().Str("signal", s.String()).Msg("shutting down")
		cancel()
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("discord bot error")
		}
		cancel()
	case <-ctx.Done():
	}

	log.Info().Msg("discord bot exited cleanly")
}
