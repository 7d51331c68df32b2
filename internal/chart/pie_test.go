package chart

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePies() []Pie {
	return []Pie{
		{Title: "Current city", Distribution: models.Distribution{Total: 3, Shares: []models.Share{
			{Label: "Moscow", Count: 2, Percent: 66.67},
			{Label: "Other cities", Count: 1, Percent: 33.33},
		}}},
		{Title: "Home city", Distribution: models.Distribution{Total: 3, Shares: []models.Share{
			{Label: "Tver", Count: 3, Percent: 100},
		}}},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	r := NewRenderer("Friends' cities")

	require.NoError(t, r.Render(&buf, samplePies()...))

	html := buf.String()
	assert.Contains(t, html, "Current city")
	assert.Contains(t, html, "Home city")
	assert.Contains(t, html, "Moscow")
	assert.Contains(t, html, "Tver")
	assert.Contains(t, html, "Other cities")
}

func TestShowWritesFileAndOpensIt(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.html")
	var opened string
	r := NewRenderer("Friends' cities")
	r.Open = func(p string) error {
		opened = p
		return nil
	}

	got, err := r.Show(path, samplePies()...)
	require.NoError(t, err)
	assert.Equal(t, path, got)
	assert.Equal(t, path, opened)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Moscow")
}

func TestShowTempFile(t *testing.T) {
	r := NewRenderer("Friends' cities")
	r.Open = nil

	got, err := r.Show("", samplePies()...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Remove(got) })
	assert.FileExists(t, got)
}

func TestShowOpenFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cities.html")
	r := NewRenderer("Friends' cities")
	r.Open = func(string) error { return errors.New("no display") }

	got, err := r.Show(path, samplePies()...)
	require.ErrorContains(t, err, "no display")
	assert.Equal(t, path, got)
	assert.FileExists(t, path)
}
