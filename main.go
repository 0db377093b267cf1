package main

import (
	"context"
	"dopingscatter/pkg/bot"
	"dopingscatter/pkg/chart"
	"dopingscatter/pkg/config"
	"dopingscatter/pkg/dataset"
	"dopingscatter/pkg/livechart"
	"dopingscatter/pkg/notification"
	"dopingscatter/pkg/resources"
	"dopingscatter/pkg/webserver"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/pkg/errors"
)

const reportTimeout = 10 * time.Second

func main() {
	exportDir := flag.String("export", "", "write the chart artifacts into this directory and exit")
	printTable := flag.Bool("table", false, "print the riders table and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	if err := run(cfg, logger, *exportDir, *printTable); err != nil {
		logger.Error("exiting", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, logger *slog.Logger, exportDir string, printTable bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var api *tgbotapi.BotAPI
	var sender notification.Sender
	if cfg.TelegramToken != "" {
		var err error
		api, err = tgbotapi.NewBotAPI(cfg.TelegramToken)
		if err != nil {
			return errors.Wrap(err, "connecting to telegram")
		}
		api.Debug = false
		sender = api
		logger.Info("authorized on telegram", "account", api.Self.UserName)
	}
	notifier := notification.NewManager(sender, cfg.NotifyChatIDs, logger)

	plot, set, err := render(ctx, cfg, logger)
	if err != nil {
		rctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if nerr := notifier.ReportFailure(rctx, err); nerr != nil {
			logger.Error("failure report not delivered", "error", nerr)
		}
		return errors.Wrap(err, "rendering aborted")
	}

	switch {
	case printTable:
		fmt.Print(bot.RiderTable(bot.Ranked(plot), 0, plot.Len()))
		return nil
	case exportDir != "":
		written, err := set.Export(exportDir)
		if err != nil {
			return err
		}
		for _, path := range written {
			logger.Info("resource written", "path", path)
		}
		return nil
	}

	wm := webserver.NewManager(cfg.WebserverAddress, logger, set)
	index, err := set.Get(resources.IndexSVG)
	if err != nil {
		return err
	}
	livechart.NewLiveChart(wm.Router(), plot, index.Data(), logger)
	wm.Debug()

	if api != nil {
		u := tgbotapi.NewUpdate(0)
		u.Timeout = 60
		updates := api.GetUpdatesChan(u)
		defer api.StopReceivingUpdates()

		go bot.New(api, plot, set, logger).Run(ctx, updates)
	}

	return wm.Serve(ctx)
}

// render runs fetch, domain computation and every renderer once.
func render(ctx context.Context, cfg config.Config, logger *slog.Logger) (*chart.Plot, *resources.Set, error) {
	fetchCtx, cancel := context.WithTimeout(ctx, cfg.FetchTimeout)
	defer cancel()

	fetcher := dataset.NewFetcher(cfg.DatasetURL, nil)
	records, err := fetcher.Fetch(fetchCtx)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("dataset fetched", "url", fetcher.URL(), "records", len(records))

	plot, err := chart.New(records, chart.DefaultConfig())
	if err != nil {
		return nil, nil, err
	}
	d := plot.Domains()
	logger.Debug("domains computed",
		"x_min", d.X.Min, "x_max", d.X.Max,
		"y_max", d.Y.Max.String(), "y_min", d.Y.Min.String(),
	)

	set, err := resources.Build(plot)
	if err != nil {
		return nil, nil, err
	}
	logger.Info("resources built", "names", set.Names())
	return plot, set, nil
}
