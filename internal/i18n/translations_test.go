package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"
)

func TestTranslations(t *testing.T) {
	tests := []struct {
		lang string
		key  string
		data map[string]any
		want string
	}{
		{"ru", OtherCities, nil, "Другие города"},
		{"ru", CityNotSpecified, nil, "Город не указан"},
		{"en", OtherCities, nil, "Other cities"},
		{"en", NoFriends, map[string]any{"Target": "https://vk.com/id1"}, "https://vk.com/id1 has no friends :("},
		{"en", APIFailure, map[string]any{"Target": "https://vk.com/id1", "Code": 30, "Message": "private"}, "Something went wrong with https://vk.com/id1\n30 - private"},
		{"ru", NoArguments, nil, "No arguments have been passed! Specify ID or URL."},
		{"ru", NoFriends, map[string]any{"Target": "https://vk.com/id1"}, "https://vk.com/id1 has no friends :("},
		{"ru", APIFailure, map[string]any{"Target": "https://vk.com/id1", "Code": 30, "Message": "private"}, "Something went wrong with https://vk.com/id1\n30 - private"},
		{"de", HomeCity, nil, "Родной город"},
		{"ru", "missing_key", nil, "missing_key"},
	}

	for _, tt := range tests {
		t.Run(tt.lang+"/"+tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, New(tt.lang).T(tt.key, tt.data))
		})
	}
}

func TestNewUnknownLanguageFallsBackToRussian(t *testing.T) {
	l := New("not a tag!")
	assert.Equal(t, language.Russian, l.Tag())
	assert.Equal(t, "Текущий город", l.T(CurrentCity, nil))
}

func TestEmptyKey(t *testing.T) {
	assert.Equal(t, "", New("ru").T("", nil))
}
