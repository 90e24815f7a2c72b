package app

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/term"
	"imagine-cli/internal/config"
	"imagine-cli/internal/interactive"
	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/logging"
	"imagine-cli/internal/orchestrator"
	"imagine-cli/internal/state"
	"imagine-cli/internal/template"
	"imagine-cli/internal/tui"
	"imagine-cli/pkg/models"
)

// Options holds the inputs every command shares
type Options struct {
	ConfigPath string
	StatePath  string
	LogLevel   string

	// Output replaces the clipboard/stdout/file handler when set
	Output interfaces.OutputHandler
	// Stdout and Stderr default to the process streams
	Stdout io.Writer
	Stderr io.Writer
}

func (o Options) stdout() io.Writer {
	if o.Stdout != nil {
		return o.Stdout
	}
	return os.Stdout
}

func (o Options) stderr() io.Writer {
	if o.Stderr != nil {
		return o.Stderr
	}
	return os.Stderr
}

// session is the configured environment of one command
type session struct {
	orch   *orchestrator.Orchestrator
	cfg    *interfaces.Config
	store  interfaces.StateStore
	logger zerolog.Logger
	closer io.Closer
}

// open loads configuration, builds the logger and opens the state store.
// logFallback receives logs when no log_file is configured.
func open(opts Options, flags map[string]string, logFallback io.Writer) (*session, error) {
	orch := orchestrator.New()
	if opts.Output != nil {
		orch = orchestrator.NewWithComponents(config.NewManager(), template.NewProcessor(), opts.Output)
	}

	if flags == nil {
		flags = map[string]string{}
	}
	flags["state_file"] = opts.StatePath
	flags["log_level"] = opts.LogLevel

	cfg, err := orch.LoadConfiguration(opts.ConfigPath, flags)
	if err != nil {
		return nil, err
	}

	logger, closer, err := logging.New(logging.Options{
		Level:    cfg.LogLevel,
		File:     cfg.LogFile,
		Fallback: logFallback,
	})
	if err != nil {
		return nil, orchestrator.NewConfigurationError("failed to set up logging", err)
	}
	orch.SetLogger(logger)

	return &session{
		orch:   orch,
		cfg:    cfg,
		store:  orch.OpenStore(cfg),
		logger: logger,
		closer: closer,
	}, nil
}

func (s *session) Close() {
	s.closer.Close()
}

// RunForm opens the full-screen form. It needs a terminal on stdin.
func RunForm(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return orchestrator.NewTerminalError()
	}

	// Logs would corrupt the alternate screen unless they go to a file
	s, err := open(opts, nil, nil)
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.store.Load()
	copier, err := s.orch.NewCopier(s.cfg, st)
	if err != nil {
		return err
	}

	s.logger.Debug().Str("state", s.store.Path()).Msg("opening form")
	return tui.Run(tui.NewForm(st, s.store, copier, s.logger))
}

// Render applies the request to the persisted state and outputs the command
func Render(opts Options, request *models.RenderRequest) error {
	s, err := open(opts, map[string]string{"target": request.Target}, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	st, cmd, err := s.orch.Render(request, s.store, s.cfg)
	if err != nil {
		return err
	}

	if err := s.orch.OutputCommand(cmd, request.Target); err != nil {
		if !orchestrator.IsRecoverableError(err) {
			return err
		}
		// Clipboard unavailable: print the command instead
		fmt.Fprintf(opts.stderr(), "Warning: %s\n", err.Error())
		if err := s.orch.Output().WriteToStdout(cmd); err != nil {
			return orchestrator.NewOutputError("stdout", err)
		}
	}

	if request.Save {
		return s.orch.SaveState(s.store, st)
	}
	return nil
}

// Ask edits the persisted state through a questionnaire, copies the
// resulting command and saves the state.
func Ask(opts Options, numberSelect bool) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.store.Load()
	copier, err := s.orch.NewCopier(s.cfg, st)
	if err != nil {
		return err
	}

	if err := interactive.NewPrompter(numberSelect).CollectForm(st); err != nil {
		return fmt.Errorf("failed to collect inputs: %w", err)
	}

	out := opts.stdout()
	if copier.CopyNow(st) {
		fmt.Fprintln(out, st.CopiedCommand)
		if copier.Err() != nil {
			fmt.Fprintln(out, models.Command(st))
		}
	}

	if err := s.orch.SaveState(s.store, st); err != nil {
		s.logger.Debug().Err(err).Msg("form state not saved")
	}
	return nil
}

// Show prints the persisted state and the command it yields with no prompt text
func Show(opts Options) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.store.Load()
	data, err := state.Encode(st)
	if err != nil {
		return orchestrator.NewStateError(s.store.Path(), err)
	}

	out := opts.stdout()
	fmt.Fprintf(out, "# %s\n", s.store.Path())
	out.Write(data)
	fmt.Fprintf(out, "\ncommand: %s\n", models.Command(st))
	return nil
}

// Path prints the location of the state file
func Path(opts Options) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	fmt.Fprintln(opts.stdout(), s.store.Path())
	return nil
}

// Reset overwrites the state file with the default state
func Reset(opts Options) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.orch.SaveState(s.store, models.DefaultFormState()); err != nil {
		return err
	}
	fmt.Fprintf(opts.stdout(), "Reset %s\n", s.store.Path())
	return nil
}

// ListSuffixes prints the persisted suffixes with their 1-based positions
func ListSuffixes(opts Options) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	printSuffixes(opts.stdout(), s.store.Load())
	return nil
}

// AddSuffixes appends enabled suffixes to the persisted state
func AddSuffixes(opts Options, labels []string) error {
	return editSuffixes(opts, func(st *models.FormState) error {
		for _, label := range labels {
			label = strings.TrimSpace(label)
			if label == "" {
				return orchestrator.NewValidationError("suffix", label, "label cannot be empty")
			}
			st.AddSuffix(label)
		}
		return nil
	})
}

// RemoveSuffix deletes the suffix at the 1-based position
func RemoveSuffix(opts Options, position int) error {
	return editSuffixes(opts, func(st *models.FormState) error {
		if !st.RemoveSuffix(position - 1) {
			return suffixIndexError(position, st)
		}
		return nil
	})
}

// ToggleSuffix flips the suffix at the 1-based position
func ToggleSuffix(opts Options, position int) error {
	return editSuffixes(opts, func(st *models.FormState) error {
		if !st.ToggleSuffix(position - 1) {
			return suffixIndexError(position, st)
		}
		return nil
	})
}

func editSuffixes(opts Options, edit func(*models.FormState) error) error {
	s, err := open(opts, nil, opts.stderr())
	if err != nil {
		return err
	}
	defer s.Close()

	st := s.store.Load()
	if err := edit(st); err != nil {
		return err
	}
	if err := s.orch.SaveState(s.store, st); err != nil {
		return err
	}

	printSuffixes(opts.stdout(), st)
	return nil
}

func suffixIndexError(position int, st *models.FormState) error {
	return orchestrator.NewValidationError("suffix_index", position,
		fmt.Sprintf("must be between 1 and %d", len(st.Suffixes)))
}

func printSuffixes(w io.Writer, st *models.FormState) {
	if len(st.Suffixes) == 0 {
		fmt.Fprintln(w, "Suffixes: (none)")
		return
	}
	fmt.Fprintln(w, "Suffixes:")
	for i, suffix := range st.Suffixes {
		mark := " "
		if suffix.Enabled {
			mark = "x"
		}
		fmt.Fprintf(w, "  %d. [%s] %s\n", i+1, mark, suffix.Label)
	}
}
