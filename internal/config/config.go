package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultEnvFile = ".env"
	VKAPIVersion   = "5.122"
	VKBaseURL      = "https://api.vk.com/method/"
	TranslateURL   = "https://translate.googleapis.com/translate_a/single"
	DefaultLang    = "ru"
	DefaultTop     = 5
	TokenFileName  = "access_token.txt"

	appName = "friends-cities"
)

var ErrNoToken = errors.New("vk access token not found")

type Neo4jConfig struct {
	URI      string `toml:"uri"`
	User     string `toml:"user"`
	Password string `toml:"password"`
}

type Config struct {
	Token             string      `toml:"-"`
	Lang              string      `toml:"lang"`
	Top               int         `toml:"top"`
	TranslateEndpoint string      `toml:"translate_endpoint"`
	ChartOut          string      `toml:"chart_out"`
	Neo4j             Neo4jConfig `toml:"neo4j"`
}

func Default() Config {
	return Config{
		Lang:              DefaultLang,
		Top:               DefaultTop,
		TranslateEndpoint: TranslateURL,
	}
}

// ConfigFile возвращает путь к необязательному TOML-файлу настроек.
func ConfigFile() string {
	if v := os.Getenv("FRIENDS_CITIES_CONFIG"); v != "" {
		return v
	}
	return filepath.Join(xdg.ConfigHome, appName, "config.toml")
}

// TokenFile возвращает путь к файлу с токеном в каталоге документов пользователя.
func TokenFile() string {
	return filepath.Join(xdg.UserDirs.Documents, TokenFileName)
}

// Load собирает конфигурацию: значения по умолчанию, TOML-файл, .env и переменные окружения.
// При ErrNoToken возвращается заполненная конфигурация без токена.
func Load() (Config, error) {
	if err := godotenv.Load(DefaultEnvFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load env: %w", err)
	}

	cfg := Default()
	if err := loadFile(ConfigFile(), &cfg); err != nil {
		return Config{}, err
	}
	applyEnv(&cfg)

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	// без токена остальные настройки всё ещё пригодны, например для запросов к Neo4j
	token, err := loadToken(TokenFile())
	if err != nil {
		return cfg, err
	}
	cfg.Token = token
	return cfg, nil
}

func loadFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	logrus.Debugf("Загружен файл настроек: %s", path)
	return nil
}

func applyEnv(cfg *Config) {
	if v := os.Getenv("FRIENDS_CITIES_LANG"); v != "" {
		cfg.Lang = v
	}
	if v := os.Getenv("NEO4J_URI"); v != "" {
		cfg.Neo4j.URI = v
	}
	if v := os.Getenv("NEO4J_USER"); v != "" {
		cfg.Neo4j.User = v
	}
	if v := os.Getenv("NEO4J_PASSWORD"); v != "" {
		cfg.Neo4j.Password = v
	}
}

// loadToken берёт токен из VK_TOKEN (или VK_ACCESS_TOKEN), иначе читает его из файла.
func loadToken(path string) (string, error) {
	for _, key := range []string{"VK_TOKEN", "VK_ACCESS_TOKEN"} {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			return v, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: set VK_TOKEN or create %s", ErrNoToken, path)
		}
		return "", fmt.Errorf("read token file: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", fmt.Errorf("%w: %s is empty", ErrNoToken, path)
	}
	return token, nil
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Lang) == "" {
		c.Lang = DefaultLang
	}
	if c.Top <= 0 {
		return fmt.Errorf("config: top must be positive, got %d", c.Top)
	}
	if c.TranslateEndpoint == "" {
		c.TranslateEndpoint = TranslateURL
	}
	return nil
}
