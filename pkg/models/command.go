package models

import (
	"strconv"
	"strings"
)

// CommandPrefix starts every rendered command
const CommandPrefix = "/imagine prompt: "

// Command renders the state into the image tool's command syntax.
// Clause order is fixed: text, suffixes, stylize, aspect, video, seed, algorithm.
func Command(f *FormState) string {
	var b strings.Builder
	b.WriteString(CommandPrefix)
	b.WriteString(strings.TrimSpace(f.Text))

	for _, s := range f.Suffixes {
		label := strings.TrimSpace(s.Label)
		if !s.Enabled || label == "" {
			continue
		}
		b.WriteString(", ")
		b.WriteString(label)
	}

	if f.Stylize != DefaultStylize {
		b.WriteString(" --stylize ")
		b.WriteString(strconv.Itoa(f.Stylize))
	}

	if f.AspectW != 1 || f.AspectH != 1 {
		b.WriteString(" --ar ")
		b.WriteString(strconv.Itoa(f.AspectW))
		b.WriteByte(':')
		b.WriteString(strconv.Itoa(f.AspectH))
	}

	if f.Video {
		b.WriteString(" --video")
	}

	if f.UseSeed {
		b.WriteString(" --sameseed ")
		b.WriteString(strconv.FormatUint(uint64(f.Seed), 10))
	}

	if f.Algorithm != AlgorithmV3 {
		b.WriteString(" --")
		b.WriteString(f.Algorithm.Token())
	}

	return b.String()
}

// HasText reports whether the prompt body is non-blank. Nothing is copied
// while it is blank.
func (f *FormState) HasText() bool {
	return strings.TrimSpace(f.Text) != ""
}
