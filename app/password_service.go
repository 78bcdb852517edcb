package app

import (
	"fmt"

	"ecpass/domain/core"
	"ecpass/domain/formula"
	"ecpass/domain/password"
	"ecpass/ports"
)

// PasswordService turns a memorable input into a strong password:
// seed derivation, chaotic iteration, uniformization, printable mapping.
// It holds no mutable state and is safe for concurrent use.
type PasswordService struct {
	step     password.StepFunc
	observer ports.PipelineObserver

	// mapper is the last stage; tests swap it to exercise the postcondition
	mapper func([]float64) string
}

// NewPasswordService creates a password service for the given step function.
// A nil observer discards events.
func NewPasswordService(step password.StepFunc, observer ports.PipelineObserver) *PasswordService {
	if observer == nil {
		observer = ports.NopObserver{}
	}
	return &PasswordService{
		step:     step,
		observer: observer,
		mapper:   password.MapToPrintable,
	}
}

// NewPasswordServiceForFormula looks up a registered formula by name
func NewPasswordServiceForFormula(name string, observer ports.PipelineObserver) (*PasswordService, error) {
	step, err := formula.Lookup(name)
	if err != nil {
		return nil, err
	}
	return NewPasswordService(step, observer), nil
}

// GeneratePassword returns a password of exactly length printable characters
func (s *PasswordService) GeneratePassword(memorable string, length int) (string, error) {
	res, err := s.Generate(memorable, length)
	if err != nil {
		return "", err
	}
	return res.Password, nil
}

// Generate runs the pipeline and returns every intermediate artifact.
// Failures are deterministic, so the caller should not retry.
func (s *PasswordService) Generate(memorable string, length int) (*password.Result, error) {
	if length <= 0 {
		return nil, s.fail(ports.StageValidate, core.NewInvalidLengthError(length))
	}

	seed, err := password.DeriveSeed(memorable)
	if err != nil {
		return nil, s.fail(ports.StageSeed, fmt.Errorf("derive seed: %w", err))
	}
	s.observer.StageCompleted(ports.StageSeed, 1)

	stream, fallbacks, err := password.Iterate(seed, length, s.step)
	if err != nil {
		return nil, s.fail(ports.StageIterate, fmt.Errorf("iterate: %w", err))
	}
	if len(stream) != length {
		return nil, s.fail(ports.StageIterate, core.NewInvariantError("iterator", length, len(stream)))
	}
	for _, idx := range fallbacks {
		s.observer.FallbackApplied(idx)
	}
	s.observer.StageCompleted(ports.StageIterate, len(stream))

	uniform := password.Uniformize(stream)
	if len(uniform) != length {
		return nil, s.fail(ports.StageUniformize, core.NewInvariantError("uniformizer", length, len(uniform)))
	}
	s.observer.StageCompleted(ports.StageUniformize, len(uniform))

	out := s.mapper(uniform)
	if len(out) != length {
		return nil, s.fail(ports.StageMap, core.NewInvariantError("mapper", length, len(out)))
	}
	if !password.InCharset(out) {
		return nil, s.fail(ports.StageMap, fmt.Errorf("%w: mapper produced characters outside the printable set", core.ErrInvariantViolation))
	}
	s.observer.StageCompleted(ports.StageMap, len(out))
	s.observer.PasswordGenerated(length, len(fallbacks))

	return &password.Result{
		Seed:      seed,
		Stream:    stream,
		Uniform:   uniform,
		Password:  out,
		Fallbacks: fallbacks,
	}, nil
}

func (s *PasswordService) fail(stage ports.Stage, err error) error {
	s.observer.GenerationFailed(stage, err)
	return err
}
