package models

import (
	"reflect"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func catState() *FormState {
	st := DefaultFormState()
	st.Text = "a cat"
	return st
}

func TestCommand(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*FormState)
		expected string
	}{
		{
			name:     "default state with text",
			mutate:   func(f *FormState) {},
			expected: "/imagine prompt: a cat, realistic",
		},
		{
			name:     "text is trimmed",
			mutate:   func(f *FormState) { f.Text = "  \ta cat \n" },
			expected: "/imagine prompt: a cat, realistic",
		},
		{
			name:     "blank text keeps prefix",
			mutate:   func(f *FormState) { f.Text = "   "; f.Suffixes = nil },
			expected: "/imagine prompt: ",
		},
		{
			name:     "stylize after suffixes",
			mutate:   func(f *FormState) { f.Stylize = 5000 },
			expected: "/imagine prompt: a cat, realistic --stylize 5000",
		},
		{
			name:     "aspect clause",
			mutate:   func(f *FormState) { f.AspectW, f.AspectH = 16, 9 },
			expected: "/imagine prompt: a cat, realistic --ar 16:9",
		},
		{
			name:     "aspect with only one side changed",
			mutate:   func(f *FormState) { f.AspectH = 2 },
			expected: "/imagine prompt: a cat, realistic --ar 1:2",
		},
		{
			name:     "video",
			mutate:   func(f *FormState) { f.Video = true },
			expected: "/imagine prompt: a cat, realistic --video",
		},
		{
			name:     "seed",
			mutate:   func(f *FormState) { f.UseSeed, f.Seed = true, 42 },
			expected: "/imagine prompt: a cat, realistic --sameseed 42",
		},
		{
			name:     "seed ignored when disabled",
			mutate:   func(f *FormState) { f.Seed = 42 },
			expected: "/imagine prompt: a cat, realistic",
		},
		{
			name:     "zero seed is emitted when enabled",
			mutate:   func(f *FormState) { f.UseSeed = true },
			expected: "/imagine prompt: a cat, realistic --sameseed 0",
		},
		{
			name:     "test algorithm",
			mutate:   func(f *FormState) { f.Algorithm = AlgorithmTest },
			expected: "/imagine prompt: a cat, realistic --test",
		},
		{
			name:     "test photo algorithm",
			mutate:   func(f *FormState) { f.Algorithm = AlgorithmTestPhoto },
			expected: "/imagine prompt: a cat, realistic --testp",
		},
		{
			name: "suffix filtering",
			mutate: func(f *FormState) {
				f.Suffixes = []Suffix{
					{Label: "off", Enabled: false},
					{Label: "   ", Enabled: true},
					{Label: " 4k ", Enabled: true},
					{Label: "", Enabled: true},
					{Label: "4k", Enabled: true},
				}
			},
			expected: "/imagine prompt: a cat, 4k, 4k",
		},
		{
			name: "every clause in order",
			mutate: func(f *FormState) {
				f.Stylize = 625
				f.AspectW, f.AspectH = 21, 9
				f.Video = true
				f.UseSeed, f.Seed = true, 4294967295
				f.Algorithm = AlgorithmTestPhoto
			},
			expected: "/imagine prompt: a cat, realistic --stylize 625 --ar 21:9 --video --sameseed 4294967295 --testp",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := catState()
			tt.mutate(st)

			got := Command(st)
			if got != tt.expected {
				t.Errorf("Command() = %q, expected %q", got, tt.expected)
			}
		})
	}
}

func genState() gopter.Gen {
	suffix := gopter.CombineGens(gen.AnyString(), gen.Bool()).Map(func(v []interface{}) Suffix {
		return Suffix{Label: v[0].(string), Enabled: v[1].(bool)}
	})

	return gopter.CombineGens(
		gen.AnyString(),
		gen.SliceOf(suffix),
		gen.IntRange(0, len(Algorithms)-1),
		gen.IntRange(MinAspectW, MaxAspectW),
		gen.IntRange(MinAspectH, MaxAspectH),
		gen.IntRange(MinStylize, MaxStylize),
		gen.Bool(),
		gen.Bool(),
		gen.UInt32(),
	).Map(func(v []interface{}) *FormState {
		return &FormState{
			Text:      v[0].(string),
			Suffixes:  v[1].([]Suffix),
			Algorithm: Algorithm(v[2].(int)),
			AspectW:   v[3].(int),
			AspectH:   v[4].(int),
			Stylize:   v[5].(int),
			Video:     v[6].(bool),
			UseSeed:   v[7].(bool),
			Seed:      v[8].(uint32),
		}
	})
}

func TestCommand_Properties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("rendering twice yields the same string", prop.ForAll(
		func(st *FormState) bool {
			return Command(st) == Command(st)
		},
		genState(),
	))

	properties.Property("output always starts with the prefix", prop.ForAll(
		func(st *FormState) bool {
			return strings.HasPrefix(Command(st), CommandPrefix)
		},
		genState(),
	))

	properties.Property("rendering does not modify the state", prop.ForAll(
		func(st *FormState) bool {
			before := st.Clone()
			Command(st)
			if len(before.Suffixes) != len(st.Suffixes) {
				return false
			}
			for i := range st.Suffixes {
				if before.Suffixes[i] != st.Suffixes[i] {
					return false
				}
			}
			before.Suffixes, st.Suffixes = nil, nil
			return reflect.DeepEqual(before, st)
		},
		genState(),
	))

	properties.Property("seed clause present iff seed is enabled", prop.ForAll(
		func(st *FormState) bool {
			st.Text = "x"
			st.Suffixes = nil
			return strings.Contains(Command(st), " --sameseed ") == st.UseSeed
		},
		genState(),
	))

	properties.Property("aspect clause present iff aspect is not 1:1", prop.ForAll(
		func(st *FormState) bool {
			st.Text = "x"
			st.Suffixes = nil
			square := st.AspectW == 1 && st.AspectH == 1
			return strings.Contains(Command(st), " --ar ") != square
		},
		genState(),
	))

	properties.Property("stylize clause present iff stylize is not the default", prop.ForAll(
		func(st *FormState) bool {
			st.Text = "x"
			st.Suffixes = nil
			return strings.Contains(Command(st), " --stylize ") == (st.Stylize != DefaultStylize)
		},
		genState(),
	))

	properties.Property("algorithm token is always last", prop.ForAll(
		func(st *FormState) bool {
			cmd := Command(st)
			if st.Algorithm == AlgorithmV3 {
				return !strings.HasSuffix(cmd, " --v3")
			}
			return strings.HasSuffix(cmd, " --"+st.Algorithm.Token())
		},
		genState(),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
