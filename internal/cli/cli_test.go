package cli

import (
	"bytes"
	"flag"
	"testing"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parse(t *testing.T, args ...string) (Args, error) {
	t.Helper()
	var out bytes.Buffer
	return ParseArgs("friends_cities", args, &out)
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want Args
	}{
		{
			name: "id",
			args: []string{"-id", "1"},
			want: Args{Target: models.Target{ID: 1}, LogLevel: "INFO"},
		},
		{
			name: "url with pie",
			args: []string{"-url", "https://vk.com/durov", "-pie"},
			want: Args{Target: models.Target{URL: "https://vk.com/durov"}, Pie: true, LogLevel: "INFO"},
		},
		{
			name: "id wins over url",
			args: []string{"-url", "https://vk.com/durov", "-id", "5"},
			want: Args{Target: models.Target{ID: 5}, LogLevel: "INFO"},
		},
		{
			name: "all options",
			args: []string{"-id", "7", "-lang", "en", "-log_level", "DEBUG", "-log_file", "run.log", "-store", "-chart_out", "c.html", "-no_translate"},
			want: Args{
				Target:      models.Target{ID: 7},
				Lang:        "en",
				LogLevel:    "DEBUG",
				LogFile:     "run.log",
				Store:       true,
				ChartOut:    "c.html",
				NoTranslate: true,
			},
		},
		{
			name: "query without target",
			args: []string{"-query", "top_cities"},
			want: Args{Query: "top_cities", LogLevel: "INFO"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parse(t, tt.args...)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseArgsNoTarget(t *testing.T) {
	_, err := parse(t)
	require.ErrorIs(t, err, ErrNoTarget)

	got, err := parse(t, "-pie", "-lang", "en")
	require.ErrorIs(t, err, ErrNoTarget)
	assert.Equal(t, "en", got.Lang)
	assert.True(t, got.Pie)
}

func TestParseArgsUnknownQuery(t *testing.T) {
	_, err := parse(t, "-query", "top_groups")
	require.ErrorContains(t, err, "query top_groups not found")
}

func TestParseArgsBadValues(t *testing.T) {
	_, err := parse(t, "-id", "abc")
	require.Error(t, err)

	_, err = parse(t, "-id", "-3")
	require.Error(t, err)
}

func TestParseArgsHelp(t *testing.T) {
	_, err := parse(t, "-h")
	require.ErrorIs(t, err, flag.ErrHelp)
}
