package models

// RenderRequest carries the CLI inputs for a non-interactive render.
// Pointer fields are nil when the matching flag was not given.
type RenderRequest struct {
	ConfigPath string
	StatePath  string

	Text       string
	Suffixes   []string
	NoSuffixes bool
	Algorithm  *Algorithm
	Aspect     *Aspect
	Stylize    *int
	Seed       *uint32
	NoSeed     bool
	Video      *bool
	Target     string
	Save       bool
}

// NewRenderRequest creates an empty request
func NewRenderRequest() *RenderRequest {
	return &RenderRequest{
		Suffixes: []string{},
	}
}

// Apply copies the overrides onto state. Text always replaces the transient
// prompt body since it is never persisted.
func (r *RenderRequest) Apply(state *FormState) {
	state.Text = r.Text

	if r.NoSuffixes {
		state.Suffixes = nil
	}
	for _, label := range r.Suffixes {
		state.AddSuffix(label)
	}
	if r.Algorithm != nil {
		state.Algorithm = *r.Algorithm
	}
	if r.Aspect != nil {
		state.SetAspect(r.Aspect.W, r.Aspect.H)
	}
	if r.Stylize != nil {
		state.Stylize = *r.Stylize
	}
	if r.Seed != nil {
		state.UseSeed = true
		state.Seed = *r.Seed
	}
	if r.NoSeed {
		state.UseSeed = false
	}
	if r.Video != nil {
		state.Video = *r.Video
	}
	state.Clamp()
}
