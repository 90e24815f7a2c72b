package interactive

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"golang.org/x/term"
	"imagine-cli/pkg/models"
)

const customAspect = "custom"

// Prompter collects form values through line-based questions
type Prompter struct {
	numberSelect bool
	in           io.Reader
}

// NewPrompter creates a new interactive prompter. With numberSelect, list
// questions accept a single number key instead of arrow navigation.
func NewPrompter(numberSelect bool) *Prompter {
	return &Prompter{
		numberSelect: numberSelect,
		in:           os.Stdin,
	}
}

// answers holds everything the questionnaire asks for
type answers struct {
	Text      string
	Algorithm string
	Aspect    string
	Stylize   string
	UseSeed   bool
	Seed      string
	Video     bool
	Enabled   []string
	Extra     string
}

// CollectForm asks for every field and applies the answers to st
func (p *Prompter) CollectForm(st *models.FormState) error {
	var a answers
	var err error

	if err := survey.AskOne(&survey.Input{
		Message: "Prompt:",
		Help:    "The text that follows /imagine prompt:",
		Default: st.Text,
	}, &a.Text, survey.WithValidator(survey.Required)); err != nil {
		return fmt.Errorf("failed to collect prompt: %w", err)
	}

	if a.Algorithm, err = p.selectOption("Algorithm:", "v3 adds no flag", algorithmOptions(), st.Algorithm.Token()); err != nil {
		return fmt.Errorf("failed to collect algorithm: %w", err)
	}

	if a.Aspect, err = p.selectOption("Aspect ratio:", "1:1 adds no flag", aspectOptions(), currentAspect(st)); err != nil {
		return fmt.Errorf("failed to collect aspect: %w", err)
	}
	if a.Aspect == customAspect {
		if err := survey.AskOne(&survey.Input{
			Message: "Aspect (W:H):",
			Default: fmt.Sprintf("%d:%d", st.AspectW, st.AspectH),
		}, &a.Aspect, survey.WithValidator(validateAspect)); err != nil {
			return fmt.Errorf("failed to collect aspect: %w", err)
		}
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Stylize:",
		Help:    fmt.Sprintf("%d-%d, %d adds no flag", models.MinStylize, models.MaxStylize, models.DefaultStylize),
		Default: strconv.Itoa(st.Stylize),
	}, &a.Stylize, survey.WithValidator(validateStylize)); err != nil {
		return fmt.Errorf("failed to collect stylize: %w", err)
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Use a fixed seed?",
		Default: st.UseSeed,
	}, &a.UseSeed); err != nil {
		return fmt.Errorf("failed to collect seed: %w", err)
	}
	if a.UseSeed {
		if err := survey.AskOne(&survey.Input{
			Message: "Seed:",
			Default: strconv.FormatUint(uint64(st.Seed), 10),
		}, &a.Seed, survey.WithValidator(validateSeed)); err != nil {
			return fmt.Errorf("failed to collect seed: %w", err)
		}
	}

	if err := survey.AskOne(&survey.Confirm{
		Message: "Video?",
		Default: st.Video,
	}, &a.Video); err != nil {
		return fmt.Errorf("failed to collect video: %w", err)
	}

	if len(st.Suffixes) > 0 {
		if err := survey.AskOne(&survey.MultiSelect{
			Message: "Suffixes:",
			Options: suffixOptions(st),
			Default: enabledSuffixOptions(st),
		}, &a.Enabled); err != nil {
			return fmt.Errorf("failed to collect suffixes: %w", err)
		}
	}

	if err := survey.AskOne(&survey.Input{
		Message: "Add suffixes (comma separated, empty for none):",
	}, &a.Extra); err != nil {
		return fmt.Errorf("failed to collect suffixes: %w", err)
	}

	return applyAnswers(st, a)
}

// applyAnswers copies validated answers onto the state
func applyAnswers(st *models.FormState, a answers) error {
	st.Text = strings.TrimSpace(a.Text)

	algo, err := models.ParseAlgorithm(a.Algorithm)
	if err != nil {
		return err
	}
	st.Algorithm = algo

	aspect, err := models.ParseAspect(a.Aspect)
	if err != nil {
		return err
	}
	st.SetAspect(aspect.W, aspect.H)

	stylize, err := strconv.Atoi(strings.TrimSpace(a.Stylize))
	if err != nil {
		return fmt.Errorf("invalid stylize %q: %w", a.Stylize, err)
	}
	st.Stylize = stylize

	st.UseSeed = a.UseSeed
	if a.UseSeed {
		seed, err := strconv.ParseUint(strings.TrimSpace(a.Seed), 10, 32)
		if err != nil {
			return fmt.Errorf("invalid seed %q: %w", a.Seed, err)
		}
		st.Seed = uint32(seed)
	}

	st.Video = a.Video

	enabled := make(map[string]bool, len(a.Enabled))
	for _, opt := range a.Enabled {
		enabled[opt] = true
	}
	options := suffixOptions(st)
	for i := range st.Suffixes {
		st.Suffixes[i].Enabled = enabled[options[i]]
	}

	for _, label := range strings.Split(a.Extra, ",") {
		if label = strings.TrimSpace(label); label != "" {
			st.AddSuffix(label)
		}
	}

	st.Clamp()
	return nil
}

func algorithmOptions() []string {
	options := make([]string, 0, len(models.Algorithms))
	for _, algo := range models.Algorithms {
		options = append(options, algo.Token())
	}
	return options
}

func aspectOptions() []string {
	options := make([]string, 0, len(models.AspectPresets)+1)
	for _, preset := range models.AspectPresets {
		options = append(options, preset.String())
	}
	return append(options, customAspect)
}

// currentAspect returns the preset matching st, or the custom entry
func currentAspect(st *models.FormState) string {
	current := models.Aspect{W: st.AspectW, H: st.AspectH}
	for _, preset := range models.AspectPresets {
		if preset == current {
			return preset.String()
		}
	}
	return customAspect
}

// suffixOptions labels suffixes by position so duplicates stay distinct
func suffixOptions(st *models.FormState) []string {
	options := make([]string, len(st.Suffixes))
	for i, s := range st.Suffixes {
		options[i] = fmt.Sprintf("%d. %s", i+1, s.Label)
	}
	return options
}

func enabledSuffixOptions(st *models.FormState) []string {
	options := suffixOptions(st)
	var enabled []string
	for i, s := range st.Suffixes {
		if s.Enabled {
			enabled = append(enabled, options[i])
		}
	}
	return enabled
}

func validateAspect(ans interface{}) error {
	_, err := models.ParseAspect(fmt.Sprint(ans))
	return err
}

func validateStylize(ans interface{}) error {
	v, err := strconv.Atoi(strings.TrimSpace(fmt.Sprint(ans)))
	if err != nil {
		return fmt.Errorf("stylize must be a number")
	}
	if v < models.MinStylize || v > models.MaxStylize {
		return fmt.Errorf("stylize must be between %d and %d", models.MinStylize, models.MaxStylize)
	}
	return nil
}

func validateSeed(ans interface{}) error {
	if _, err := strconv.ParseUint(strings.TrimSpace(fmt.Sprint(ans)), 10, 32); err != nil {
		return fmt.Errorf("seed must be a whole number between 0 and 4294967295")
	}
	return nil
}

// selectOption handles list selection with optional number key support
func (p *Prompter) selectOption(message, help string, options []string, current string) (string, error) {
	if p.numberSelect {
		return p.selectWithNumbers(message, help, options, current)
	}

	prompt := &survey.Select{
		Message: message,
		Options: options,
		Help:    help,
		Default: current,
	}

	var selected string
	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}

// selectWithNumbers displays numbered options and allows instant selection by number key
func (p *Prompter) selectWithNumbers(message, help string, options []string, current string) (string, error) {
	fmt.Printf("\n%s\n", message)
	if help != "" {
		fmt.Printf("  %s (Press number key for instant selection, Enter keeps %s)\n", help, current)
	}
	fmt.Println()

	for i, option := range options {
		fmt.Printf("  %s. %s\n", numberLabel(i, len(options)), option)
	}
	fmt.Println()

	// Single key selection covers at most ten entries
	if len(options) > maxKeyOptions || !term.IsTerminal(int(syscall.Stdin)) {
		return p.fallbackNumberSelection(options, current)
	}

	oldState, err := term.MakeRaw(int(syscall.Stdin))
	if err != nil {
		return p.fallbackNumberSelection(options, current)
	}
	defer term.Restore(int(syscall.Stdin), oldState)

	fmt.Print("Select option: ")

	buffer := make([]byte, 1)
	for {
		if _, err := p.in.Read(buffer); err != nil {
			return "", err
		}

		char := buffer[0]

		if selectedIndex, ok := keyIndex(char, len(options)); ok {
			fmt.Printf("%c\r\n", char)
			return options[selectedIndex], nil
		}

		if char == '\r' || char == '\n' {
			fmt.Print("\r\n")
			return current, nil
		}

		// Escape or Ctrl+C
		if char == 27 || char == 3 {
			fmt.Print("\r\n")
			return "", fmt.Errorf("selection cancelled")
		}
	}
}

// maxKeyOptions is the number of entries reachable with keys 1-9 and 0
const maxKeyOptions = 10

// numberLabel is the key shown for the entry at index i of n. The tenth
// entry of a ten entry list uses 0.
func numberLabel(i, n int) string {
	if i == 9 && n == maxKeyOptions {
		return "0"
	}
	return strconv.Itoa(i + 1)
}

// keyIndex maps a number key to an entry index
func keyIndex(char byte, n int) (int, bool) {
	var index int
	switch {
	case char >= '1' && char <= '9':
		index = int(char - '1')
	case char == '0':
		index = 9
	default:
		return 0, false
	}
	return index, index < n
}

// fallbackNumberSelection reads a line when raw terminal mode is not available
func (p *Prompter) fallbackNumberSelection(options []string, current string) (string, error) {
	fmt.Printf("Enter number (1-%d) or press Enter to keep %s: ", len(options), current)

	reader := bufio.NewReader(p.in)
	input, err := reader.ReadString('\n')
	if err != nil && input == "" {
		return "", err
	}

	return pickNumbered(options, input, current)
}

// pickNumbered resolves a typed 1-based number to an option
func pickNumbered(options []string, input, current string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return current, nil
	}

	selectedIndex, err := strconv.Atoi(input)
	if err != nil {
		return "", fmt.Errorf("invalid input: please enter a number between 1 and %d", len(options))
	}
	// 0 is shown for the tenth entry
	if selectedIndex == 0 && len(options) == maxKeyOptions {
		selectedIndex = maxKeyOptions
	}

	if selectedIndex < 1 || selectedIndex > len(options) {
		return "", fmt.Errorf("invalid selection: please enter a number between 1 and %d", len(options))
	}

	return options[selectedIndex-1], nil
}
