package i18n

import (
	"embed"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/text/language"
)

//go:embed active.*.toml
var localeFS embed.FS

// Ключи сообщений из active.*.toml.
const (
	CurrentCity      = "current_city"
	HomeCity         = "home_city"
	OtherCities      = "other_cities"
	CityNotSpecified = "city_not_specified"
	ColumnCity       = "column_city"
	ColumnShare      = "column_share"
	Processing       = "processing"
	ChartTitle       = "chart_title"
	ChartSaved       = "chart_saved"
	NoArguments      = "no_arguments"
	NoFriends        = "no_friends"
	APIFailure       = "api_failure"
	NoToken          = "no_token"
)

// Localizer отдаёт сообщения go-i18n на одном выбранном языке.
type Localizer struct {
	tag       language.Tag
	localizer *i18n.Localizer
}

// New создаёт Localizer для lang. Неизвестный язык и отсутствующие сообщения заменяются русскими.
func New(lang string) *Localizer {
	tag, err := language.Parse(lang)
	if err != nil {
		logrus.Warnf("i18n: unknown language %q, using %s", lang, language.Russian)
		tag = language.Russian
	}

	bundle := i18n.NewBundle(language.Russian)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	for _, file := range []string{"active.ru.toml", "active.en.toml"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, file); err != nil {
			logrus.Errorf("i18n: failed to load %s: %v", file, err)
		}
	}

	return &Localizer{
		tag:       tag,
		localizer: i18n.NewLocalizer(bundle, tag.String(), language.Russian.String()),
	}
}

// Tag возвращает язык, на который переводятся названия городов.
func (l *Localizer) Tag() language.Tag {
	return l.tag
}

// T возвращает сообщение по ключу; неизвестный ключ возвращается как есть.
func (l *Localizer) T(key string, data map[string]any) string {
	if key == "" {
		return ""
	}
	msg, err := l.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		logrus.Debugf("i18n: localize failed (key=%s, lang=%s): %v", key, l.tag, err)
		return key
	}
	return msg
}
