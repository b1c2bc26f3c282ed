package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for the inspect view.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Offsets and help text
	Cursor  lipgloss.Color // Background of the byte under the cursor
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
	Cursor:  lipgloss.Color("#ff5f87"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title  lipgloss.Style
	Label  lipgloss.Style
	Border lipgloss.Style
	Help   lipgloss.Style
	Cursor lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary).Padding(0, 1),
		Label:  lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Border: lipgloss.NewStyle().Foreground(t.Primary),
		Help:   lipgloss.NewStyle().Foreground(t.Dim),
		Cursor: lipgloss.NewStyle().Bold(true).Background(t.Cursor),
	}
}

// Section is a labeled block of lines inside a Frame.
type Section struct {
	Label string
	Lines []string
}

// Frame renders a bordered view with a title, sections and help text.
type Frame struct {
	Styles   Styles
	Title    string
	Status   string
	Sections []Section
	Help     string
}

// Render renders the frame at the given width. Every section line is shown;
// lines wider than the frame are truncated with an ellipsis.
func (f Frame) Render(width int) string {
	if width < 8 {
		width = 8
	}
	bc := f.Styles.Border
	maxContentWidth := width - 4

	var lines []string
	lines = append(lines, bc.Render("╭"+strings.Repeat("─", width-2)+"╮"))

	// │ title [status]   │
	title := f.Styles.Title.Render(f.Title)
	status := ""
	if f.Status != "" {
		status = f.Styles.Help.Render("[" + f.Status + "]")
	}
	padding := max(0, width-5-lipgloss.Width(title)-lipgloss.Width(status))
	lines = append(lines, bc.Render("│")+" "+title+" "+status+
		strings.Repeat(" ", padding)+" "+bc.Render("│"))

	for _, sec := range f.Sections {
		lines = append(lines, f.renderSection(bc, sec, width, maxContentWidth)...)
	}

	lines = append(lines, bc.Render("╰"+strings.Repeat("─", width-2)+"╯"))
	if f.Help != "" {
		lines = append(lines, f.Styles.Help.Render(f.Help))
	}
	return strings.Join(lines, "\n")
}

// renderSection renders a separator with the embedded label, then the lines.
func (f Frame) renderSection(bc lipgloss.Style, sec Section, width, maxContentWidth int) []string {
	labelText := f.Styles.Label.Render(sec.Label)
	padding := max(0, width-3-lipgloss.Width(labelText))
	lines := []string{bc.Render("├") + bc.Render("─") + labelText +
		bc.Render(strings.Repeat("─", padding)) + bc.Render("┤")}

	for _, text := range sec.Lines {
		if lipgloss.Width(text) > maxContentWidth {
			text = truncateString(text, maxContentWidth-1) + "…"
		}
		lines = append(lines, bc.Render("│")+" "+text+
			strings.Repeat(" ", max(0, maxContentWidth-lipgloss.Width(text)))+" "+bc.Render("│"))
	}
	return lines
}

// truncateString safely truncates a string to the given width,
// handling multi-byte characters correctly.
func truncateString(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	currentWidth := 0
	for i, r := range runes {
		w := lipgloss.Width(string(r))
		if currentWidth+w > width {
			return string(runes[:i])
		}
		currentWidth += w
	}
	return s
}

// HexDump formats data as hex dump lines of perLine bytes each:
//
//	00000010  48 65 6c 6c 6f 00 00 00  Hello...
//
// The byte at cursor is highlighted with st.Cursor; a cursor equal to
// len(data) marks an empty cell after the last byte. perLine <= 0 means 16.
func HexDump(st Styles, data []byte, cursor, perLine int) []string {
	if perLine <= 0 {
		perLine = 16
	}
	var lines []string
	for off := 0; off < len(data) || (off == len(data) && cursor == off); off += perLine {
		end := min(off+perLine, len(data))
		var hexCol, asciiCol strings.Builder
		for i := off; i < off+perLine; i++ {
			cell, ch := "  ", " "
			if i < end {
				cell = fmt.Sprintf("%02x", data[i])
				ch = printable(data[i])
			}
			if i == cursor && i <= len(data) {
				if i == len(data) {
					cell = "__"
				}
				cell = st.Cursor.Render(cell)
				ch = st.Cursor.Render(ch)
			}
			hexCol.WriteString(cell)
			hexCol.WriteByte(' ')
			asciiCol.WriteString(ch)
		}
		lines = append(lines, st.Help.Render(fmt.Sprintf("%08x", off))+"  "+
			hexCol.String()+" "+asciiCol.String())
		if end == len(data) && off+perLine > len(data) {
			break
		}
	}
	return lines
}

func printable(b byte) string {
	if b >= 0x20 && b < 0x7f {
		return string(rune(b))
	}
	return "."
}
