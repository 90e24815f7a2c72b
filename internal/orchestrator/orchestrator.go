package orchestrator

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"imagine-cli/internal/config"
	"imagine-cli/internal/interfaces"
	"imagine-cli/internal/state"
	"imagine-cli/internal/template"
	"imagine-cli/pkg/models"
)

// flagSetter is implemented by config managers that accept flag overrides
type flagSetter interface {
	SetFlag(key string, value interface{})
}

// Orchestrator coordinates configuration, state, rendering and output
type Orchestrator struct {
	configManager     interfaces.ConfigManager
	templateProcessor interfaces.TemplateProcessor
	outputHandler     interfaces.OutputHandler
	logger            zerolog.Logger
}

// New creates a new orchestrator with all required components
func New() *Orchestrator {
	return NewWithComponents(config.NewManager(), template.NewProcessor(), NewOutputHandler())
}

// NewWithComponents creates an orchestrator from explicit components
func NewWithComponents(cm interfaces.ConfigManager, tp interfaces.TemplateProcessor, oh interfaces.OutputHandler) *Orchestrator {
	return &Orchestrator{
		configManager:     cm,
		templateProcessor: tp,
		outputHandler:     oh,
		logger:            zerolog.Nop(),
	}
}

// SetLogger replaces the logger handed to the components the orchestrator creates
func (o *Orchestrator) SetLogger(logger zerolog.Logger) {
	o.logger = logger
}

// Output returns the output handler
func (o *Orchestrator) Output() interfaces.OutputHandler {
	return o.outputHandler
}

// LoadConfiguration loads, resolves and validates configuration. Non-empty
// flag values take precedence over env, file and defaults.
func (o *Orchestrator) LoadConfiguration(configPath string, flags map[string]string) (*interfaces.Config, error) {
	if _, err := o.configManager.Load(configPath); err != nil {
		return nil, NewConfigurationError("failed to load configuration", err)
	}

	if setter, ok := o.configManager.(flagSetter); ok {
		for key, value := range flags {
			setter.SetFlag(key, value)
		}
	}

	cfg, err := o.configManager.Resolve()
	if err != nil {
		return nil, NewConfigurationError("failed to resolve configuration", err)
	}

	if err := o.configManager.Validate(cfg); err != nil {
		return nil, NewConfigurationError("invalid configuration", err)
	}

	return cfg, nil
}

// OpenStore returns the state store selected by the configuration
func (o *Orchestrator) OpenStore(cfg *interfaces.Config) interfaces.StateStore {
	return state.NewStore(cfg.StateFile, o.logger)
}

// NewCopier builds the clipboard copier used by the form and the questionnaire
func (o *Orchestrator) NewCopier(cfg *interfaces.Config, initial *models.FormState) (*Copier, error) {
	status, err := template.NewStatus(o.templateProcessor, cfg.CopiedFormat, cfg.ErrorFormat)
	if err != nil {
		return nil, NewConfigurationError("invalid status format", err)
	}
	return NewCopier(o.outputHandler, status, initial), nil
}

// Render loads the persisted state, applies the request's overrides and
// returns the updated state along with its command.
func (o *Orchestrator) Render(request *models.RenderRequest, store interfaces.StateStore, cfg *interfaces.Config) (*models.FormState, string, error) {
	if request != nil && request.Target == "" {
		request.Target = cfg.Target
	}
	if err := o.validateRequest(request); err != nil {
		return nil, "", err
	}

	st := store.Load()
	request.Apply(st)

	cmd := models.Command(st)
	o.logger.Debug().Str("command", cmd).Msg("rendered command")
	return st, cmd, nil
}

// OutputCommand writes the command to the target
func (o *Orchestrator) OutputCommand(cmd string, target string) error {
	var err error
	switch {
	case target == "" || target == "clipboard":
		target = "clipboard"
		err = o.outputHandler.WriteToClipboard(cmd)
	case target == "stdout":
		err = o.outputHandler.WriteToStdout(cmd)
	case strings.HasPrefix(target, "file:"):
		err = o.outputHandler.WriteToFile(cmd, strings.TrimPrefix(target, "file:"))
	default:
		return NewValidationError("target", target, "must be 'clipboard', 'stdout', or 'file:/path'")
	}

	if err != nil {
		return RecoverFromError(NewOutputError(target, err))
	}
	return nil
}

// SaveState persists st and maps failures to a state error
func (o *Orchestrator) SaveState(store interfaces.StateStore, st *models.FormState) error {
	if err := store.Save(st); err != nil {
		return NewStateError(store.Path(), err)
	}
	return nil
}

// validateRequest validates the render request
func (o *Orchestrator) validateRequest(request *models.RenderRequest) error {
	if request == nil {
		return NewValidationError("request", nil, "request cannot be nil")
	}

	target := request.Target
	if target != "" && target != "clipboard" && target != "stdout" && !strings.HasPrefix(target, "file:") {
		return NewValidationError("target", target, "must be 'clipboard', 'stdout', or 'file:/path'")
	}
	if target == "file:" {
		return NewValidationError("target", target, "file target needs a path")
	}

	// Clipboard writes are suppressed for a blank prompt
	if (target == "" || target == "clipboard") && strings.TrimSpace(request.Text) == "" {
		return NewValidationError("prompt", request.Text, "prompt text cannot be empty")
	}

	if request.Stylize != nil && (*request.Stylize < models.MinStylize || *request.Stylize > models.MaxStylize) {
		return NewValidationError("stylize", *request.Stylize,
			fmt.Sprintf("must be between %d and %d", models.MinStylize, models.MaxStylize))
	}

	return nil
}
