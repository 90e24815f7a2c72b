package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"imagine-cli/pkg/models"
)

func (f *Form) View() string {
	if f.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render("imagine"))
	b.WriteString("\n\n")

	for i, r := range f.rows() {
		b.WriteString(f.renderRow(r, i == f.focus))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	width := 70
	if f.width > 4 && f.width-4 < width {
		width = f.width - 4
	}
	b.WriteString(styleBox.Width(width).Render(models.Command(f.state)))
	b.WriteString("\n")

	if status := f.state.CopiedCommand; status != "" {
		style := styleStatusOK
		if f.copier.Err() != nil {
			style = styleStatusErr
		}
		b.WriteString(style.Render(status))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(f.help.View(keys))
	return b.String()
}

func (f *Form) renderRow(r row, focused bool) string {
	st := f.state
	var label, value string

	switch r.kind {
	case rowPrompt:
		label = "prompt"
		value = f.textValue(st.Text, focused)
	case rowAlgorithm:
		label = "algorithm"
		value = fmt.Sprintf("< %s >", st.Algorithm)
	case rowAspect:
		label = "aspect"
		value = fmt.Sprintf("%d : %d", st.AspectW, st.AspectH)
	case rowStylize:
		label = "stylize"
		value = strconv.Itoa(st.Stylize)
		if st.Stylize == models.DefaultStylize {
			value += " (default)"
		}
	case rowSeed:
		label = "seed"
		value = fmt.Sprintf("%s %d", checkbox(st.UseSeed), st.Seed)
	case rowVideo:
		label = "video"
		value = checkbox(st.Video)
	case rowSuffix:
		s := st.Suffixes[r.index]
		label = fmt.Sprintf("suffix %d", r.index+1)
		text := f.textValue(s.Label, focused)
		if !s.Enabled && !focused {
			text = styleDisabled.Render(text)
		}
		value = checkbox(s.Enabled) + " " + text
	case rowAddSuffix:
		label = ""
		value = "+ add suffix"
	case rowCopyOnChange:
		label = "copy on change"
		value = checkbox(st.CopyOnChange)
	}

	cursor := "  "
	if focused {
		cursor = "> "
		value = styleFocused.Render(value)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cursor, styleLabel.Render(label), value)
}

// textValue shows the live editor for the focused text row
func (f *Form) textValue(s string, focused bool) string {
	if focused {
		return f.editor.View()
	}
	if s == "" {
		return "(empty)"
	}
	return s
}
