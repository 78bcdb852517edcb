package ports

// Stage names one step of the password pipeline
type Stage string

const (
	StageValidate   Stage = "validate"
	StageSeed       Stage = "seed"
	StageIterate    Stage = "iterate"
	StageUniformize Stage = "uniformize"
	StageMap        Stage = "map"
)

// PipelineObserver receives progress events from the password pipeline.
// Events never carry the memorable input, the seed, or the output, since any
// of them is enough to reproduce the password.
// Implementations must be safe for concurrent use.
type PipelineObserver interface {
	// StageCompleted fires after a stage produced n values
	StageCompleted(stage Stage, n int)

	// FallbackApplied fires for each stream index replaced by the tanh substitute
	FallbackApplied(index int)

	// PasswordGenerated fires once per successful run
	PasswordGenerated(length int, fallbacks int)

	// GenerationFailed fires when a stage returns an error
	GenerationFailed(stage Stage, err error)
}

// NopObserver ignores every event
type NopObserver struct{}

func (NopObserver) StageCompleted(Stage, int) {}
func (NopObserver) FallbackApplied(int) {}
func (NopObserver) PasswordGenerated(int, int) {}
func (NopObserver) GenerationFailed(Stage, error) {}
