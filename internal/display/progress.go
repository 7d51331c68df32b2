package display

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/progress"
)

// Progress рисует индикатор в одной строке, перерисовывая её через '\r'.
// Выключенный Progress только считает.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	done    int
	enabled bool
	bar     progress.Model
}

func NewProgress(w io.Writer, label string, total int, enabled bool) *Progress {
	p := &Progress{
		w:       w,
		label:   label,
		total:   total,
		enabled: enabled && total > 0,
		bar:     progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage(), progress.WithWidth(32)),
	}
	p.render()
	return p
}

func (p *Progress) Increment() {
	if p.done < p.total {
		p.done++
	}
	p.render()
}

func (p *Progress) Done() int {
	return p.done
}

// Finish завершает строку индикатора.
func (p *Progress) Finish() {
	if p.enabled {
		_, _ = fmt.Fprintln(p.w)
	}
}

func (p *Progress) render() {
	if !p.enabled {
		return
	}
	ratio := float64(p.done) / float64(p.total)
	_, _ = fmt.Fprintf(p.w, "\r%s %s %d%% (%d/%d)", p.label, p.bar.ViewAs(ratio), int(ratio*100), p.done, p.total)
}
