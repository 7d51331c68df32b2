package display

import (
	"fmt"
	"os"
	"sort"

	"github.com/ZetoOfficial/vk-friends-cities/internal/models"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/mattn/go-isatty"
)

// TableOptions задаёт заголовок, колонки и цвет таблицы.
type TableOptions struct {
	Title   string
	Headers []string
	NoColor bool
}

// IsTerminal сообщает, подключён ли f к терминалу.
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// DistributionTable печатает доли dist строками "город | процент" в порядке убывания.
func DistributionTable(dist models.Distribution, opts TableOptions) string {
	rows := make([][]string, 0, len(dist.Shares))
	for _, share := range dist.Shares {
		rows = append(rows, []string{share.Label, FormatPercent(share.Percent)})
	}
	return newTable(opts.Headers, rows, opts)
}

// RecordsTable печатает результат запроса; колонки берутся из ключей всех записей по алфавиту.
func RecordsTable(records []map[string]any, opts TableOptions) string {
	seen := make(map[string]bool)
	var headers []string
	for _, rec := range records {
		for key := range rec {
			if !seen[key] {
				seen[key] = true
				headers = append(headers, key)
			}
		}
	}
	sort.Strings(headers)

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		row := make([]string, len(headers))
		for i, key := range headers {
			if v, ok := rec[key]; ok && v != nil {
				row[i] = fmt.Sprint(v)
			}
		}
		rows = append(rows, row)
	}
	return newTable(headers, rows, opts)
}

// FormatPercent печатает долю с двумя знаками: 12.5 -> "12.50%".
func FormatPercent(p float64) string {
	return fmt.Sprintf("%.2f%%", p)
}

func newTable(headers []string, rows [][]string, opts TableOptions) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	numberStyle := cellStyle.Align(lipgloss.Right)
	borderStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	if opts.NoColor {
		headerStyle = lipgloss.NewStyle().Padding(0, 1)
		borderStyle = lipgloss.NewStyle()
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			if col == 1 {
				return numberStyle
			}
			return cellStyle
		})
	if len(headers) > 0 {
		t = t.Headers(headers...)
	}
	for _, row := range rows {
		t.Row(row...)
	}

	rendered := t.String()
	if opts.Title == "" {
		return rendered
	}

	title := opts.Title
	if !opts.NoColor {
		title = lipgloss.NewStyle().Bold(true).Render(opts.Title)
	}
	return title + "\n" + rendered
}
