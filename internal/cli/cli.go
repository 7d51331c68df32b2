package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/ZetoOfficial/vk-friends-cities/internal/storage"
)

var ErrNoTarget = errors.New("neither -id nor -url given")

type Args struct {
	Target      models.Target
	Pie         bool
	Lang        string
	LogLevel    string
	LogFile     string
	Store       bool
	Query       string
	ChartOut    string
	NoTranslate bool
}

// ParseArgs разбирает аргументы командной строки. -id важнее -url, если заданы оба.
// Без цели и без -query возвращается ErrNoTarget вместе с остальными разобранными флагами.
func ParseArgs(name string, args []string, output io.Writer) (Args, error) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(output)

	id := fs.Int("id", 0, "VK ID of target.")
	profileURL := fs.String("url", "", "VK URL of target, e.g. https://vk.com/durov.")
	pie := fs.Bool("pie", false, "Show pie charts of results.")
	lang := fs.String("lang", "", "Language of city names and messages (default ru).")
	logLevel := fs.String("log_level", "INFO", "Set the logging level (DEBUG, INFO, WARNING, ERROR).")
	logFile := fs.String("log_file", "", "Set the log file path. If not set, logs will be printed to stderr.")
	store := fs.Bool("store", false, "Save friends and their cities to Neo4j.")
	query := fs.String("query", "", fmt.Sprintf("Run a predefined Neo4j query instead of collecting: %s.", strings.Join(storage.QueryNames(), ", ")))
	chartOut := fs.String("chart_out", "", "HTML file for the pie charts (default: temporary file).")
	noTranslate := fs.Bool("no_translate", false, "Do not translate city names, only normalize them.")

	if err := fs.Parse(args); err != nil {
		return Args{}, err
	}

	parsed := Args{
		Target:      models.Target{ID: *id, URL: strings.TrimSpace(*profileURL)},
		Pie:         *pie,
		Lang:        *lang,
		LogLevel:    *logLevel,
		LogFile:     *logFile,
		Store:       *store,
		Query:       *query,
		ChartOut:    *chartOut,
		NoTranslate: *noTranslate,
	}
	if parsed.Target.ID != 0 {
		parsed.Target.URL = ""
	}

	if parsed.Query != "" {
		if !storage.HasQuery(parsed.Query) {
			fs.Usage()
			return Args{}, fmt.Errorf("query %s not found", parsed.Query)
		}
		return parsed, nil
	}
	if *id < 0 {
		return Args{}, fmt.Errorf("invalid -id %d", *id)
	}
	if parsed.Target.IsZero() {
		return parsed, ErrNoTarget
	}
	return parsed, nil
}
