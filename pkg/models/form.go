package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Stylize and aspect domains
const (
	DefaultStylize = 2500
	MinStylize     = 625
	MaxStylize     = 60000

	MinAspectW = 1
	MaxAspectW = 21
	MinAspectH = 1
	MaxAspectH = 10
)

// Algorithm selects the generation model variant
type Algorithm int

const (
	AlgorithmV3 Algorithm = iota
	AlgorithmTest
	AlgorithmTestPhoto
)

// Algorithms lists every algorithm in display order
var Algorithms = []Algorithm{AlgorithmV3, AlgorithmTest, AlgorithmTestPhoto}

// Token returns the flag token emitted for the algorithm.
// AlgorithmV3 is the default and is never emitted.
func (a Algorithm) Token() string {
	switch a {
	case AlgorithmTest:
		return "test"
	case AlgorithmTestPhoto:
		return "testp"
	default:
		return "v3"
	}
}

func (a Algorithm) String() string {
	return a.Token()
}

// Next cycles to the following algorithm, wrapping around
func (a Algorithm) Next(delta int) Algorithm {
	n := len(Algorithms)
	return Algorithms[((int(a)+delta)%n+n)%n]
}

// ParseAlgorithm accepts a flag token or the persisted name
func ParseAlgorithm(s string) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "v3", "default":
		return AlgorithmV3, nil
	case "test":
		return AlgorithmTest, nil
	case "testp", "testphoto":
		return AlgorithmTestPhoto, nil
	}
	return AlgorithmV3, fmt.Errorf("unknown algorithm %q (must be v3, test or testp)", s)
}

// MarshalYAML writes the algorithm under its persisted name
func (a Algorithm) MarshalYAML() (interface{}, error) {
	switch a {
	case AlgorithmTest:
		return "test", nil
	case AlgorithmTestPhoto:
		return "testphoto", nil
	default:
		return "v3", nil
	}
}

// UnmarshalYAML reads a persisted algorithm name
func (a *Algorithm) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	switch name {
	case "v3":
		*a = AlgorithmV3
	case "test":
		*a = AlgorithmTest
	case "testphoto":
		*a = AlgorithmTestPhoto
	default:
		return fmt.Errorf("line %d: unknown algorithm %q", node.Line, name)
	}
	return nil
}

// Suffix is a tag appended to the prompt text when enabled
type Suffix struct {
	Label   string
	Enabled bool
}

// MarshalYAML writes the suffix as a [label, enabled] pair
func (s Suffix) MarshalYAML() (interface{}, error) {
	node := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	label := &yaml.Node{}
	if err := label.Encode(s.Label); err != nil {
		return nil, err
	}
	node.Content = []*yaml.Node{
		label,
		{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(s.Enabled)},
	}
	return node, nil
}

// UnmarshalYAML reads either a [label, enabled] pair or a {label, enabled} mapping
func (s *Suffix) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.SequenceNode:
		if len(node.Content) != 2 {
			return fmt.Errorf("line %d: suffix must have exactly two elements, got %d", node.Line, len(node.Content))
		}
		if err := node.Content[0].Decode(&s.Label); err != nil {
			return err
		}
		return node.Content[1].Decode(&s.Enabled)
	case yaml.MappingNode:
		var raw struct {
			Label   string `yaml:"label"`
			Enabled bool   `yaml:"enabled"`
		}
		if err := node.Decode(&raw); err != nil {
			return err
		}
		s.Label, s.Enabled = raw.Label, raw.Enabled
		return nil
	}
	return fmt.Errorf("line %d: suffix must be a sequence or mapping", node.Line)
}

// FormState holds every field of the form. Text and CopiedCommand are
// transient and never written to disk.
type FormState struct {
	Text          string    `yaml:"-"`
	Suffixes      []Suffix  `yaml:"suffixes"`
	Algorithm     Algorithm `yaml:"algorithm"`
	AspectW       int       `yaml:"aspect_w"`
	AspectH       int       `yaml:"aspect_h"`
	Stylize       int       `yaml:"stylize"`
	Video         bool      `yaml:"video"`
	CopyOnChange  bool      `yaml:"copy_on_change"`
	UseSeed       bool      `yaml:"use_seed"`
	Seed          uint32    `yaml:"seed"`
	CopiedCommand string    `yaml:"-"`
}

// DefaultFormState returns the state used when nothing has been persisted
func DefaultFormState() *FormState {
	return &FormState{
		Suffixes:     []Suffix{{Label: "realistic", Enabled: true}},
		Algorithm:    AlgorithmV3,
		AspectW:      1,
		AspectH:      1,
		Stylize:      DefaultStylize,
		CopyOnChange: true,
	}
}

// Clone returns a deep copy of the state
func (f *FormState) Clone() *FormState {
	c := *f
	c.Suffixes = append([]Suffix(nil), f.Suffixes...)
	return &c
}

// Clamp brings the numeric fields back into their domains
func (f *FormState) Clamp() {
	f.AspectW = clampInt(f.AspectW, MinAspectW, MaxAspectW)
	f.AspectH = clampInt(f.AspectH, MinAspectH, MaxAspectH)
	f.Stylize = clampInt(f.Stylize, MinStylize, MaxStylize)
}

// AddSuffix appends an enabled suffix
func (f *FormState) AddSuffix(label string) {
	f.Suffixes = append(f.Suffixes, Suffix{Label: label, Enabled: true})
}

// RemoveSuffix deletes the suffix at index i. Out of range is a no-op.
func (f *FormState) RemoveSuffix(i int) bool {
	if i < 0 || i >= len(f.Suffixes) {
		return false
	}
	f.Suffixes = append(f.Suffixes[:i], f.Suffixes[i+1:]...)
	return true
}

// ToggleSuffix flips the enabled flag of the suffix at index i
func (f *FormState) ToggleSuffix(i int) bool {
	if i < 0 || i >= len(f.Suffixes) {
		return false
	}
	f.Suffixes[i].Enabled = !f.Suffixes[i].Enabled
	return true
}

// SetAspect sets both aspect components, clamped to their domains
func (f *FormState) SetAspect(w, h int) {
	f.AspectW = clampInt(w, MinAspectW, MaxAspectW)
	f.AspectH = clampInt(h, MinAspectH, MaxAspectH)
}

// ResetStylize restores the sentinel value
func (f *FormState) ResetStylize() {
	f.Stylize = DefaultStylize
}

// stylizeStepRatio is the multiplier applied per step so the control moves
// evenly on a logarithmic scale.
const stylizeStepRatio = 1.1

// StepStylize moves the stylize value by n logarithmic steps
func (f *FormState) StepStylize(n int) {
	if n == 0 {
		return
	}
	scaled := float64(f.Stylize) * math.Pow(stylizeStepRatio, float64(n))
	next := int(math.Round(math.Max(MinStylize, math.Min(MaxStylize, scaled))))
	// Small values round back onto themselves
	if next == f.Stylize {
		if n > 0 {
			next++
		} else {
			next--
		}
	}
	f.Stylize = clampInt(next, MinStylize, MaxStylize)
}

// Aspect is a width:height pair
type Aspect struct {
	W, H int
}

func (a Aspect) String() string {
	return fmt.Sprintf("%d:%d", a.W, a.H)
}

// AspectPresets are the ratios offered by the preset picker
var AspectPresets = []Aspect{
	{1, 1}, {1, 2}, {1, 3}, {2, 3}, {3, 2}, {3, 4}, {4, 3}, {16, 9}, {21, 9},
}

// NextPreset returns the preset after the current aspect, or the first preset
// when the current aspect is not a preset.
func (f *FormState) NextPreset() Aspect {
	for i, p := range AspectPresets {
		if p.W == f.AspectW && p.H == f.AspectH {
			return AspectPresets[(i+1)%len(AspectPresets)]
		}
	}
	return AspectPresets[0]
}

// ParseAspect parses "W:H" and checks both components against their domains
func ParseAspect(s string) (Aspect, error) {
	w, h, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return Aspect{}, fmt.Errorf("invalid aspect %q (expected W:H)", s)
	}
	aw, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Aspect{}, fmt.Errorf("invalid aspect width %q: %w", w, err)
	}
	ah, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Aspect{}, fmt.Errorf("invalid aspect height %q: %w", h, err)
	}
	if aw < MinAspectW || aw > MaxAspectW {
		return Aspect{}, fmt.Errorf("aspect width %d out of range [%d,%d]", aw, MinAspectW, MaxAspectW)
	}
	if ah < MinAspectH || ah > MaxAspectH {
		return Aspect{}, fmt.Errorf("aspect height %d out of range [%d,%d]", ah, MinAspectH, MaxAspectH)
	}
	return Aspect{W: aw, H: ah}, nil
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
