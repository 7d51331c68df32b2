package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ZetoOfficial/vk-friends-cities/internal/chart"
	"github.com/ZetoOfficial/vk-friends-cities/internal/clients"
	"github.com/ZetoOfficial/vk-friends-cities/internal/display"
	"github.com/ZetoOfficial/vk-friends-cities/internal/i18n"
	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/ZetoOfficial/vk-friends-cities/internal/stats"
	"github.com/sirupsen/logrus"
)

var (
	// ErrNoFriends: у цели пустой список друзей.
	ErrNoFriends = errors.New("target has no friends")
	// ErrAPI: VK API вернул ошибку, сообщение уже показано пользователю.
	ErrAPI = errors.New("vk api failure")
	// ErrNoStorage: запрошено сохранение или запрос, но Neo4j не настроен.
	ErrNoStorage = errors.New("neo4j storage is not configured")
)

type VkApi interface {
	ResolveScreenName(ctx context.Context, name string) (int, error)
	GetFriendIDs(ctx context.Context, userID int) ([]int, error)
	GetFriend(ctx context.Context, userID int) (models.Friend, error)
}

type Normalizer interface {
	Normalize(ctx context.Context, raw string) string
}

type Storage interface {
	SaveFriends(ctx context.Context, targetID int, friends []models.Friend, places models.Places) error
	RunQuery(ctx context.Context, queryName string) ([]map[string]interface{}, error)
}

type Charts interface {
	Show(path string, pies ...chart.Pie) (string, error)
}

type Messages interface {
	T(key string, data map[string]any) string
}

// Options управляют одним запуском Run.
type Options struct {
	Top      int
	Pie      bool
	Store    bool
	ChartOut string
}

type App struct {
	client     VkApi
	normalizer Normalizer
	msgs       Messages
	storage    Storage
	charts     Charts

	out          io.Writer
	progressOut  io.Writer
	showProgress bool
	noColor      bool
}

type Option func(*App)

func WithStorage(s Storage) Option {
	return func(a *App) { a.storage = s }
}

func WithCharts(c Charts) Option {
	return func(a *App) { a.charts = c }
}

// WithOutput задаёт, куда печатаются таблицы и индикатор прогресса.
func WithOutput(out, progressOut io.Writer) Option {
	return func(a *App) {
		a.out = out
		a.progressOut = progressOut
	}
}

func WithProgress(show bool) Option {
	return func(a *App) { a.showProgress = show }
}

func WithColor(color bool) Option {
	return func(a *App) { a.noColor = !color }
}

func NewApp(api VkApi, normalizer Normalizer, msgs Messages, opts ...Option) *App {
	a := &App{
		client:      api,
		normalizer:  normalizer,
		msgs:        msgs,
		out:         os.Stdout,
		progressOut: os.Stderr,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run собирает города друзей цели, печатает две таблицы и при необходимости
// сохраняет результат в Neo4j и открывает диаграммы.
func (a *App) Run(ctx context.Context, target models.Target, opts Options) error {
	userID, err := a.resolve(ctx, target)
	if err != nil {
		return a.apiFailure(target.String(), err)
	}
	profile := models.Target{ID: userID}.String()
	log := logrus.WithField("user_id", userID)

	log.Info("Получаем список друзей")
	ids, err := a.client.GetFriendIDs(ctx, userID)
	if err != nil {
		return a.apiFailure(profile, err)
	}
	if len(ids) == 0 {
		a.say(i18n.NoFriends, map[string]any{"Target": profile})
		return ErrNoFriends
	}

	friends, places, err := a.collect(ctx, ids)
	if err != nil {
		return a.apiFailure(profile, err)
	}
	log.Infof("Собраны города %d друзей", places.Len())

	other := a.msgs.T(i18n.OtherCities, nil)
	current := stats.Summary(places.Cities, opts.Top, other)
	home := stats.Summary(places.HomeTowns, opts.Top, other)

	a.printDistribution(i18n.CurrentCity, current)
	a.printDistribution(i18n.HomeCity, home)

	if opts.Store {
		if a.storage == nil {
			return ErrNoStorage
		}
		log.Info("Сохраняем друзей в Neo4j")
		if err := a.storage.SaveFriends(ctx, userID, friends, places); err != nil {
			return fmt.Errorf("save friends: %w", err)
		}
	}

	if opts.Pie && a.charts != nil {
		path, err := a.charts.Show(opts.ChartOut,
			chart.Pie{Title: a.msgs.T(i18n.CurrentCity, nil), Distribution: current},
			chart.Pie{Title: a.msgs.T(i18n.HomeCity, nil), Distribution: home},
		)
		if path != "" {
			a.say(i18n.ChartSaved, map[string]any{"Path": path})
		}
		if err != nil {
			return fmt.Errorf("pie chart: %w", err)
		}
	}
	return nil
}

// Query выполняет предопределённый запрос к Neo4j и печатает строки результата.
func (a *App) Query(ctx context.Context, name string) error {
	if a.storage == nil {
		return ErrNoStorage
	}
	logrus.Infof("Run query: %s", name)
	rows, err := a.storage.RunQuery(ctx, name)
	if err != nil {
		return fmt.Errorf("run query: %w", err)
	}
	_, _ = fmt.Fprintln(a.out, display.RecordsTable(rows, display.TableOptions{Title: name, NoColor: a.noColor}))
	return nil
}

func (a *App) resolve(ctx context.Context, target models.Target) (int, error) {
	if target.ID != 0 {
		return target.ID, nil
	}
	name, err := clients.ScreenNameFromURL(target.URL)
	if err != nil {
		return 0, err
	}
	return a.client.ResolveScreenName(ctx, name)
}

// collect по очереди запрашивает каждого друга; первая ошибка прерывает сбор.
func (a *App) collect(ctx context.Context, ids []int) ([]models.Friend, models.Places, error) {
	friends := make([]models.Friend, 0, len(ids))
	var places models.Places

	bar := display.NewProgress(a.progressOut, a.msgs.T(i18n.Processing, nil), len(ids), a.showProgress)
	defer bar.Finish()

	for _, id := range ids {
		friend, err := a.client.GetFriend(ctx, id)
		if err != nil {
			return nil, models.Places{}, fmt.Errorf("get friend %d: %w", id, err)
		}
		friends = append(friends, friend)
		places.Add(a.normalizer.Normalize(ctx, friend.City), a.normalizer.Normalize(ctx, friend.HomeTown))
		bar.Increment()
	}
	return friends, places, nil
}

// apiFailure показывает сообщение об ошибке VK API; прочие ошибки возвращаются как есть.
func (a *App) apiFailure(target string, err error) error {
	var apiErr *clients.APIError
	if !errors.As(err, &apiErr) {
		return fmt.Errorf("collect friends of %s: %w", target, err)
	}
	a.say(i18n.APIFailure, map[string]any{
		"Target":  target,
		"Code":    apiErr.Code,
		"Message": apiErr.Message,
	})
	return fmt.Errorf("%w: %w", ErrAPI, err)
}

func (a *App) printDistribution(titleKey string, dist models.Distribution) {
	table := display.DistributionTable(dist, display.TableOptions{
		Title:   a.msgs.T(titleKey, nil),
		Headers: []string{a.msgs.T(i18n.ColumnCity, nil), a.msgs.T(i18n.ColumnShare, nil)},
		NoColor: a.noColor,
	})
	_, _ = fmt.Fprintf(a.out, "\n%s\n", table)
}

func (a *App) say(key string, data map[string]any) {
	_, _ = fmt.Fprintln(a.out, a.msgs.T(key, data))
}
