// Package translate приводит названия городов к одному языку.
package translate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

type Translator struct {
	Endpoint string
	Client   *http.Client
	// Offline отключает обращения к сервису перевода, остаётся только нормализация регистра.
	Offline bool
	// Unspecified подставляется вместо пустого названия.
	Unspecified string

	target language.Tag
	title  cases.Caser
	cache  map[string]string
}

func New(endpoint string, target language.Tag, unspecified string) *Translator {
	return &Translator{
		Endpoint:    endpoint,
		Client:      &http.Client{},
		Unspecified: unspecified,
		target:      target,
		title:       cases.Title(target),
		cache:       make(map[string]string),
	}
}

// Normalize возвращает название на целевом языке. Пустое название заменяется на Unspecified,
// название уже на целевом языке приводится к заглавным буквам, а при ошибке перевода
// возвращается исходная строка.
func (t *Translator) Normalize(ctx context.Context, raw string) string {
	text := norm.NFC.String(strings.TrimSpace(raw))
	if text == "" {
		return t.Unspecified
	}
	if cached, ok := t.cache[text]; ok {
		return cached
	}

	result := t.normalize(ctx, text)
	t.cache[text] = result
	return result
}

func (t *Translator) normalize(ctx context.Context, text string) string {
	if t.Offline {
		return t.title.String(text)
	}

	translated, source, err := t.translate(ctx, text)
	if err != nil {
		logrus.WithField("text", text).WithError(err).Warn("Не удалось перевести название")
		return text
	}
	if sameLanguage(source, t.target) {
		return t.title.String(text)
	}
	if translated == "" {
		return text
	}
	return translated
}

func sameLanguage(source string, target language.Tag) bool {
	tag, err := language.Parse(source)
	if err != nil {
		return false
	}
	a, _ := tag.Base()
	b, _ := target.Base()
	return a == b
}

// translate обращается к endpoint'у translate_a/single и возвращает перевод и определённый язык источника.
func (t *Translator) translate(ctx context.Context, text string) (string, string, error) {
	params := url.Values{}
	params.Set("client", "gtx")
	params.Set("sl", "auto")
	params.Set("tl", t.target.String())
	params.Set("dt", "t")
	params.Set("q", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, t.Endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return "", "", fmt.Errorf("create request: %w", err)
	}

	resp, err := t.Client.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("translate call: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			logrus.WithError(err).Warning("Не удалось закрыть тело ответа")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var payload []json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", "", fmt.Errorf("json decode: %w", err)
	}
	return parseResponse(payload)
}

// parseResponse разбирает ответ вида [[["Moscow","Москва",...],...],null,"ru",...].
func parseResponse(payload []json.RawMessage) (string, string, error) {
	if len(payload) < 3 {
		return "", "", fmt.Errorf("short response: %d elements", len(payload))
	}

	var segments [][]any
	if err := json.Unmarshal(payload[0], &segments); err != nil {
		return "", "", fmt.Errorf("decode segments: %w", err)
	}
	var b strings.Builder
	for _, segment := range segments {
		if len(segment) == 0 {
			continue
		}
		if s, ok := segment[0].(string); ok {
			b.WriteString(s)
		}
	}

	var source string
	if err := json.Unmarshal(payload[2], &source); err != nil {
		return "", "", fmt.Errorf("decode source language: %w", err)
	}
	return strings.TrimSpace(b.String()), source, nil
}
