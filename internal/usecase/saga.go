package usecase

import (
	"context"
	"fmt"

	"github.com/xavierca1/creator-deals/internal/entity"
	"github.com/xavierca1/creator-deals/internal/logger"
)

// Step é um passo da saga. Undo pode ser nil quando não há o que desfazer.
type Step struct {
	Name string
	Do   func(context.Context) error
	Undo func(context.Context) error
}

// Saga executa os passos em ordem. Se um falhar, desfaz os que já
// rodaram, do último para o primeiro.
type Saga struct {
	name  string
	steps []Step
}

func NewSaga(name string) *Saga {
	return &Saga{name: name}
}

func (s *Saga) Then(name string, do, undo func(context.Context) error) *Saga {
	s.steps = append(s.steps, Step{Name: name, Do: do, Undo: undo})
	return s
}

// StepError diz qual passo falhou e quantos foram desfeitos.
type StepError struct {
	Step     string
	Undone   int
	UndoErrs []error
	Err      error
}

func (e *StepError) Error() string {
	msg := fmt.Sprintf("step %s failed: %v", e.Step, e.Err)
	if len(e.UndoErrs) > 0 {
		msg += fmt.Sprintf(" (%d undo failures)", len(e.UndoErrs))
	}
	return msg
}

func (e *StepError) Unwrap() error { return e.Err }

func (s *Saga) Run(ctx context.Context) error {
	for i, step := range s.steps {
		if err := step.Do(ctx); err != nil {
			return s.unwind(ctx, i, step.Name, err)
		}
	}
	return nil
}

func (s *Saga) unwind(ctx context.Context, failed int, name string, cause error) error {
	serr := &StepError{Step: name, Err: cause}
	// desfaz mesmo com o ctx da request cancelado
	ctx = context.WithoutCancel(ctx)
	for i := failed - 1; i >= 0; i-- {
		step := s.steps[i]
		if step.Undo == nil {
			continue
		}
		if err := step.Undo(ctx); err != nil {
			serr.UndoErrs = append(serr.UndoErrs, err)
			logger.L().WithError(err).WithField("saga", s.name).WithField("step", step.Name).
				Error("⚠️ compensação falhou, registro pode estar inconsistente")
			continue
		}
		serr.Undone++
	}
	return serr
}

// claimThenDeliver grava a transição condicionada ao status anterior e só
// então entrega. Quem perde o update não entrega. Falha na entrega devolve
// o registro ao snapshot prev.
func claimThenDeliver(ctx context.Context, repo entity.OutreachRepositoryInterface, o, prev *entity.Outreach, deliverName string, deliver func(context.Context) error) error {
	claimed := o.Status
	err := NewSaga(deliverName).
		Then("claim_transition",
			func(ctx context.Context) error { return saveTransition(ctx, repo, o, prev.Status) },
			func(ctx context.Context) error {
				ok, err := repo.UpdateIfStatus(ctx, prev, claimed)
				if err == nil && !ok {
					return errStaleRecord
				}
				return err
			}).
		Then(deliverName, deliver, nil).
		Run(ctx)
	if err != nil {
		*o = *prev
		return sagaError(err)
	}
	return nil
}
