package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/ZetoOfficial/vk-friends-cities/internal/app"
	"github.com/ZetoOfficial/vk-friends-cities/internal/chart"
	"github.com/ZetoOfficial/vk-friends-cities/internal/cli"
	"github.com/ZetoOfficial/vk-friends-cities/internal/clients"
	"github.com/ZetoOfficial/vk-friends-cities/internal/config"
	"github.com/ZetoOfficial/vk-friends-cities/internal/display"
	"github.com/ZetoOfficial/vk-friends-cities/internal/i18n"
	"github.com/ZetoOfficial/vk-friends-cities/internal/logger"
	"github.com/ZetoOfficial/vk-friends-cities/internal/storage"
	"github.com/ZetoOfficial/vk-friends-cities/internal/translate"
	"github.com/sirupsen/logrus"
)

func main() {
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

// run возвращает код выхода: 0 при успехе и -h, 1 при ошибке запуска, 2 при неверных флагах.
func run(argv []string, stdout, stderr io.Writer) int {
	args, err := cli.ParseArgs(argv[0], argv[1:], stderr)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if errors.Is(err, cli.ErrNoTarget) {
		_, _ = fmt.Fprintln(stdout, i18n.New(messageLang(args.Lang, "")).T(i18n.NoArguments, nil))
		return 1
	}
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	logCloser, err := logger.Setup(args.LogLevel, args.LogFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	defer func() {
		if err := logCloser.Close(); err != nil {
			_, _ = fmt.Fprintf(stderr, "close log file: %v\n", err)
		}
	}()

	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoToken) && args.Query == "" {
		msgs := i18n.New(messageLang(args.Lang, cfg.Lang))
		_, _ = fmt.Fprintln(stdout, msgs.T(i18n.NoToken, map[string]any{"Path": config.TokenFile()}))
		return 1
	}
	if err != nil && !errors.Is(err, config.ErrNoToken) {
		logrus.Errorf("load config: %v", err)
		return 1
	}
	if args.Lang != "" {
		cfg.Lang = args.Lang
	}
	if args.ChartOut != "" {
		cfg.ChartOut = args.ChartOut
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)
	go func() {
		select {
		case sig := <-sigChan:
			logrus.Infof("Получен сигнал: %s. Завершение работы...", sig)
			cancel()
		case <-ctx.Done():
		}
	}()

	msgs := i18n.New(cfg.Lang)
	normalizer := translate.New(cfg.TranslateEndpoint, msgs.Tag(), msgs.T(i18n.CityNotSpecified, nil))
	normalizer.Offline = args.NoTranslate

	opts := []app.Option{
		app.WithCharts(chart.NewRenderer(msgs.T(i18n.ChartTitle, nil))),
		app.WithOutput(stdout, stderr),
		app.WithProgress(isTerminal(stderr)),
		app.WithColor(isTerminal(stdout)),
	}

	if args.Store || args.Query != "" {
		neo4jStorage, err := openStorage(ctx, cfg.Neo4j)
		if err != nil {
			logrus.Error(err)
			return 1
		}
		defer func() {
			if err := neo4jStorage.Close(context.Background()); err != nil {
				logrus.Warningf("close neo4j storage: %v", err)
			}
		}()
		opts = append(opts, app.WithStorage(neo4jStorage))
	}

	vkClient := clients.NewVKClient(cfg.Token, cfg.Lang)
	myApp := app.NewApp(vkClient, normalizer, msgs, opts...)

	if args.Query != "" {
		if err := myApp.Query(ctx, args.Query); err != nil {
			logrus.Error(err)
			return 1
		}
		return 0
	}

	err = myApp.Run(ctx, args.Target, app.Options{
		Top:      cfg.Top,
		Pie:      args.Pie,
		Store:    args.Store,
		ChartOut: cfg.ChartOut,
	})
	if err != nil {
		if !errors.Is(err, app.ErrNoFriends) && !errors.Is(err, app.ErrAPI) {
			logrus.Error(err)
		}
		return 1
	}
	return 0
}

// messageLang выбирает язык сообщений: флаг -lang, затем настройки, затем ru.
func messageLang(flagLang, cfgLang string) string {
	if flagLang != "" {
		return flagLang
	}
	if cfgLang != "" {
		return cfgLang
	}
	return config.DefaultLang
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && display.IsTerminal(f)
}

func openStorage(ctx context.Context, cfg config.Neo4jConfig) (*storage.Neo4jStorage, error) {
	if cfg.URI == "" {
		return nil, app.ErrNoStorage
	}
	neo4jStorage, err := storage.NewNeo4jStorage(cfg.URI, cfg.User, cfg.Password)
	if err != nil {
		return nil, err
	}
	if err := neo4jStorage.Ping(ctx); err != nil {
		_ = neo4jStorage.Close(ctx)
		return nil, fmt.Errorf("connect to neo4j: %w", err)
	}
	logrus.Info("Подключение к Neo4j успешно установлено")
	return neo4jStorage, nil
}
