package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

func (m Model) renderHeader() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)
	snap := m.snapshot
	compact := m.width < LayoutCompactWidth

	label := func(name, value string) string {
		return bg.Render(name, styles.MutedText) + bg.Spaces(1) + bg.Render(value, styles.Text)
	}

	parts := []string{bg.Render("liveview", styles.Logo)}
	switch {
	case snap.IsStalled():
		parts = append(parts, bg.Render("● STALLED", styles.DangerText))
	case snap.LastError != nil:
		parts = append(parts, bg.Render("● RETRY", styles.WarningText))
	default:
		parts = append(parts, bg.Render("● LIVE", styles.SuccessText))
	}

	parts = append(parts,
		label("Source:", strconv.Itoa(len(snap.Source))),
		label("Filtered:", strconv.Itoa(len(snap.Filtered))),
		label("Rows:", fmt.Sprintf("%d/%d", len(snap.Rows), snap.Cached)),
	)
	if !compact {
		parts = append(parts, label("Disposed:", strconv.Itoa(snap.Disposed)))
	}
	if snap.Range.HasValue {
		parts = append(parts, label("Range:", fmt.Sprintf("%d..%d", snap.Range.Min, snap.Range.Max)))
	}
	if !compact && snap.Follow != "" {
		parts = append(parts, label("Follow:", truncateMiddle(snap.Follow, 40)))
	}
	if !m.lastUpdated.IsZero() {
		parts = append(parts, bg.Render(m.lastUpdated.Format("15:04:05"), styles.FaintText))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

func (m Model) renderCommandBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	var parts []string
	for _, b := range m.keys.ShortHelp() {
		h := b.Help()
		parts = append(parts, bg.Render("<"+h.Key+">", styles.AccentText)+bg.Spaces(1)+bg.Render(h.Desc, styles.MutedText))
	}
	if m.snapshot.Filter != "" {
		parts = append(parts, bg.Render(m.snapshot.Filter, styles.WarningText))
	}
	if m.snapshot.LastError != nil {
		parts = append(parts, bg.Render(truncate(m.snapshot.LastError.Error(), 60), styles.DangerText))
	} else if m.status != "" {
		parts = append(parts, bg.Render(m.status, styles.Text))
	}

	return styles.Header.Width(m.width).Render(bg.Join(parts, 2))
}

// renderColumns lays the source, filtered and row views side by side,
// showing the newest entries when a column overflows.
func (m Model) renderColumns() string {
	styles := m.theme.Styles()
	height := columnsHeight(m.height)
	width := max(m.width/3, 10)

	column := func(title string, lines []string) string {
		body := tail(lines, height-1)
		content := styles.AccentText.Bold(true).Render(title) + "\n" + strings.Join(body, "\n")
		return styles.Column.Width(width - 1).Height(height).MaxHeight(height).Render(content)
	}

	return lipgloss.JoinHorizontal(lipgloss.Top,
		column("source", intLines(m.snapshot.Source)),
		column("filtered", intLines(m.snapshot.Filtered)),
		column("rows", m.snapshot.Rows),
	)
}

func (m Model) renderEventsTitle() string {
	styles := m.theme.Styles().WithBackground(m.theme.SurfaceAlt)
	bg := NewBgStyle(m.theme.SurfaceAlt)
	mode := "paused"
	if m.follow {
		mode = "following"
	}
	title := bg.Join([]string{
		bg.Render("notifications", styles.AccentText.Bold(true)),
		bg.Render(strconv.Itoa(len(m.snapshot.Events)), styles.Text),
		bg.Render(mode, styles.FaintText),
	}, 2)
	return m.theme.Styles().SurfaceAlt.Width(m.width).Render(title)
}

func (m Model) renderEvents() string {
	styles := m.theme.Styles()
	var b strings.Builder
	for i, ev := range m.snapshot.Events {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(styles.FaintText.Render(ev.At.Format("15:04:05.000")))
		b.WriteString(" ")
		b.WriteString(styles.ViewStyle(ev.View).Render(padRight(ev.View, 8)))
		b.WriteString(" ")
		b.WriteString(styles.Text.Render(ev.Text))
	}
	return b.String()
}

func (m Model) renderHelp() string {
	styles := m.theme.Styles()
	titles := []string{"Pipeline", "Notifications", "General"}

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Keyboard Shortcuts"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning)).Width(12)
	for i, group := range m.keys.FullHelp() {
		b.WriteString(styles.AccentText.Bold(true).Render(titles[i]))
		b.WriteString("\n")
		for _, binding := range group {
			b.WriteString(helpLine(keyStyle, styles.Text, binding))
		}
		if i < len(titles)-1 {
			b.WriteString("\n")
		}
	}

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}

func helpLine(keyStyle, descStyle lipgloss.Style, b key.Binding) string {
	h := b.Help()
	return keyStyle.Render(h.Key) + descStyle.Render(h.Desc) + "\n"
}
