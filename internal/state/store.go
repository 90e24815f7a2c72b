package state

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
	"imagine-cli/pkg/models"
)

const (
	appDirName    = "midjourney_prompt"
	// Spelled as existing installs wrote it
	stateFileName = "promt.yaml"
)

// ErrMalformed is returned by Read when the file exists but cannot be decoded
var ErrMalformed = errors.New("malformed state file")

// DefaultPath returns <local data dir>/midjourney_prompt/promt.yaml
func DefaultPath() string {
	return filepath.Join(xdg.DataHome, appDirName, stateFileName)
}

// Store loads and saves the form state at a fixed path
type Store struct {
	path   string
	logger zerolog.Logger
}

// NewStore creates a store for path. An empty path selects DefaultPath.
func NewStore(path string, logger zerolog.Logger) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{
		path:   path,
		logger: logger.With().Str("component", "state").Str("path", path).Logger(),
	}
}

// Path returns the file the store reads and writes
func (s *Store) Path() string {
	return s.path
}

// Load returns the persisted state, or the default state when the file is
// missing, unreadable or malformed.
func (s *Store) Load() *models.FormState {
	st, err := s.Read()
	if err != nil {
		s.logger.Debug().Err(err).Msg("using default form state")
		return models.DefaultFormState()
	}
	return st
}

// Read decodes the state file and reports why it could not be used
func (s *Store) Read() (*models.FormState, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	return Decode(data)
}

// Save writes every persisted field, creating parent directories as needed
func (s *Store) Save(st *models.FormState) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}

// SaveQuietly saves and logs any failure instead of returning it
func (s *Store) SaveQuietly(st *models.FormState) {
	if err := s.Save(st); err != nil {
		s.logger.Debug().Err(err).Msg("form state not saved")
		return
	}
	s.logger.Debug().Msg("form state saved")
}

// Decode parses a state document. Keys missing from the document keep their
// default values and numeric fields are clamped into range, so a partial or
// out-of-range file is still used rather than discarded. Negative values for
// unsigned fields (seed) fail to decode and make the document malformed.
func Decode(data []byte) (*models.FormState, error) {
	var root yaml.Node
	if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&root); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) != 1 || root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: document is not a mapping", ErrMalformed)
	}

	st := models.DefaultFormState()
	if err := root.Content[0].Decode(st); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	st.Text = ""
	st.CopiedCommand = ""
	st.Clamp()
	return st, nil
}

// Encode serializes the persisted fields of st
func Encode(st *models.FormState) ([]byte, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("failed to encode form state: %w", err)
	}
	return data, nil
}
