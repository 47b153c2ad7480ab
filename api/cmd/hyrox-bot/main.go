package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"regexp"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog"

	"hyrox-calc/api/internal/app"
	"hyrox-calc/api/internal/config"
	"hyrox-calc/api/internal/httpserver"
	"hyrox-calc/api/internal/logging"
	"hyrox-calc/api/internal/metrics"
	"hyrox-calc/api/internal/telegram"
	"hyrox-calc/api/internal/util"
)

func main() {
	cfg := config.Load()
	log := logging.New(cfg.LogLevel, cfg.LogFormat)

	if cfg.TelegramBotToken == "" {
		log.Error().Msg("TELEGRAM_BOT_TOKEN is required")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engines, closeEngines, err := app.Engines(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("engine setup failed")
		os.Exit(1)
	}
	defer closeEngines()

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramBotToken)
	if err != nil {
		log.Error().Err(err).Msg("telegram login failed")
		os.Exit(1)
	}
	bot.Debug = false

	r := &telegram.Router{
		Bot:      bot,
		Engines:  engines,
		Timeout:  cfg.OCRTimeout,
		Log:      log.With().Str("component", "telegram").Logger(),
		MaxChats: cfg.BotMaxChats,
	}

	mux := chi.NewRouter()
	mux.Use(httpserver.RequestLogging(log))
	mux.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	mux.Method(http.MethodGet, "/metrics", metrics.Handler())

	addr := "0.0.0.0:" + cfg.Port
	if webhookURL := strings.TrimSpace(cfg.WebhookURL); webhookURL != "" {
		err = startWebhookMode(ctx, addr, bot, mux, r, webhookURL, log)
	} else {
		err = startPollingMode(ctx, addr, bot, mux, r, log)
	}
	if err != nil {
		log.Error().Err(err).Msg("bot stopped")
		os.Exit(1)
	}
}

// ---------------- Modes -----------------

func startWebhookMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, mux chi.Router, r *telegram.Router, baseURL string, log zerolog.Logger) error {
	// secret path so only Telegram knows where to post
	path := "/webhook/" + util.SHA256Hex([]byte(bot.Token))[:16]
	public := strings.TrimRight(baseURL, "/") + path

	wh, err := tgbotapi.NewWebhook(public)
	if err != nil {
		return err
	}
	wh.DropPendingUpdates = true
	if _, err := bot.Request(wh); err != nil {
		return err
	}

	mux.Post(path, func(w http.ResponseWriter, req *http.Request) {
		upd, err := bot.HandleUpdate(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		go r.HandleUpdate(ctx, *upd)
	})

	log.Info().Str("path", path).Msg("webhook registered")
	return httpserver.Run(ctx, addr, mux, log)
}

func startPollingMode(ctx context.Context, addr string, bot *tgbotapi.BotAPI, mux chi.Router, r *telegram.Router, log zerolog.Logger) error {
	// polling needs no listener, but hosting platforms check /healthz
	go func() {
		if err := httpserver.Run(ctx, addr, mux, log); err != nil {
			log.Error().Err(err).Msg("health server failed")
		}
	}()

	if _, err := bot.Request(tgbotapi.DeleteWebhookConfig{}); err != nil {
		log.Warn().Err(err).Msg("delete webhook failed")
	}

	runPolling(ctx, bot, log, func(upd tgbotapi.Update) {
		go r.HandleUpdate(ctx, upd)
	})
	return nil
}

// ---------------- Polling loop -----------------

var reRetryAfter = regexp.MustCompile(`(?i)retry after\s+(\d+)`)

func retryDelayFromError(err error) time.Duration {
	if err == nil {
		return 0
	}
	s := strings.ToLower(err.Error())
	if strings.Contains(s, "too many requests") {
		if m := reRetryAfter.FindStringSubmatch(s); len(m) == 2 {
			if n, _ := strconv.Atoi(m[1]); n > 0 {
				return time.Duration(n) * time.Second
			}
		}
		return 3 * time.Second
	}
	var ne net.Error
	if errors.As(err, &ne) && ne.Timeout() {
		return 2 * time.Second
	}
	return 1 * time.Second
}

func clampDelay(d, lo, hi time.Duration) time.Duration {
	if d < lo {
		return lo
	}
	if d > hi {
		return hi
	}
	return d
}

func runPolling(ctx context.Context, bot *tgbotapi.BotAPI, log zerolog.Logger, handle func(tgbotapi.Update)) {
	offset := 0
	const (
		baseDelay = 1 * time.Second
		maxDelay  = 15 * time.Second
	)

	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("polling stopped")
			return
		default:
		}

		u := tgbotapi.NewUpdate(offset)
		u.Timeout = 30

		updates, err := bot.GetUpdates(u)
		if err != nil {
			d := clampDelay(retryDelayFromError(err), baseDelay, maxDelay)
			log.Warn().Err(err).Dur("retry_in", d).Msg("polling error")
			select {
			case <-ctx.Done():
			case <-time.After(d):
			}
			continue
		}

		for _, upd := range updates {
			if upd.UpdateID >= offset {
				offset = upd.UpdateID + 1
			}
			handle(upd)
		}

		if len(updates) == 0 {
			time.Sleep(200 * time.Millisecond)
		}
	}
}
