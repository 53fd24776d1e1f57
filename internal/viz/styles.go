package viz

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var (
	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(10)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	keyStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#00aaaa")).Bold(true)
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#555566"))

	statusPlaying = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00ff88"))
	statusPaused  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffaa00"))
)

func fg(c lipgloss.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(c)
}

// keyHelp renders "key desc" pairs as a single hint line.
func keyHelp(pairs ...string) string {
	var b strings.Builder
	for i := 0; i+1 < len(pairs); i += 2 {
		if i > 0 {
			b.WriteString(hintStyle.Render("  "))
		}
		b.WriteString(keyStyle.Render(pairs[i]))
		b.WriteString(hintStyle.Render(" " + pairs[i+1]))
	}
	return b.String()
}

// GradientText colours each rune of text along a gradient.
func GradientText(text string, startColor, endColor lipgloss.Color) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	sr, sg, sb := ParseHex(string(startColor))
	er, eg, eb := ParseHex(string(endColor))

	var result strings.Builder
	n := len(runes)
	for i, c := range runes {
		t := 0.0
		if n > 1 {
			t = float64(i) / float64(n-1)
		}
		r := int(float64(sr) + t*float64(er-sr))
		g := int(float64(sg) + t*float64(eg-sg))
		b := int(float64(sb) + t*float64(eb-sb))
		result.WriteString(fg(lipgloss.Color(hexColor(r, g, b))).Render(string(c)))
	}
	return result.String()
}

// AnimatedSpinner returns one frame of a Braille spinner.
func AnimatedSpinner(frame int) string {
	spinners := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	return spinners[frame%len(spinners)]
}

// ProgressBar renders the playback position.
func ProgressBar(percent float64, width int) string {
	filled := int(percent * float64(width))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return fg(CurrentTheme.Field).Render(strings.Repeat("█", filled)) +
		fg(CurrentTheme.Muted).Render(strings.Repeat("░", width-filled))
}

// SparklineChart renders a one-line overview of values.
func SparklineChart(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return strings.Repeat("─", max(width, 0))
	}

	chars := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	lo, hi := values[0], values[0]
	for _, v := range values {
		lo = min(lo, v)
		hi = max(hi, v)
	}
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}

	step := len(values) / width
	if step < 1 {
		step = 1
	}

	var result strings.Builder
	for i := 0; i < width && i*step < len(values); i++ {
		norm := (values[i*step] - lo) / rng
		idx := int(norm * float64(len(chars)-1))
		idx = min(max(idx, 0), len(chars)-1)
		result.WriteRune(chars[idx])
	}
	return fg(CurrentTheme.Curve).Render(result.String())
}

// Separator renders the rule under the tab bar.
func Separator(width int) string {
	if width < 8 {
		return fg(CurrentTheme.Muted).Render(strings.Repeat("─", max(width, 0)))
	}
	mid := width / 2
	left := strings.Repeat("─", mid-3)
	right := strings.Repeat("─", width-mid-3)
	return fg(CurrentTheme.Muted).Render(left + " ◆ " + right)
}

// ParseHex reads a #rrggbb colour. Anything else reads as white.
func ParseHex(hex string) (r, g, b int) {
	if len(hex) != 7 || hex[0] != '#' {
		return 255, 255, 255
	}
	v, err := strconv.ParseUint(hex[1:], 16, 32)
	if err != nil {
		return 255, 255, 255
	}
	return int(v >> 16 & 0xff), int(v >> 8 & 0xff), int(v & 0xff)
}

func hexColor(r, g, b int) string {
	clamp := func(v int) int { return min(max(v, 0), 255) }
	const hex = "0123456789abcdef"
	out := []byte{'#', 0, 0, 0, 0, 0, 0}
	for i, v := range []int{clamp(r), clamp(g), clamp(b)} {
		out[1+2*i] = hex[v/16]
		out[2+2*i] = hex[v%16]
	}
	return string(out)
}
