package insight

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/aanand-mishra/roster/internal/types"
)

var (
	// ErrNoData is returned when the roster is empty.
	ErrNoData = errors.New("no student data available")

	// ErrUnknownKind is returned for a kind not in Kinds.
	ErrUnknownKind = errors.New("unknown insight kind")

	// ErrMissingID is returned when a per-student kind has no id.
	ErrMissingID = errors.New("student id required")
)

// Roster is the read side of the store that insights need.
// *roster.Store satisfies it.
type Roster interface {
	List() []types.Student
	Get(id string) (types.Student, error)
}

// Service builds prompts from the roster and forwards them to a Generator.
type Service struct {
	roster    Roster
	generator Generator
	log       *slog.Logger
}

// NewService wires a Service.
func NewService(r Roster, g Generator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{roster: r, generator: g, log: log}
}

// Insight builds the prompt for kind and returns the generator's
// answer verbatim. id is required for per-student kinds and ignored
// otherwise.
func (s *Service) Insight(ctx context.Context, kind Kind, id string) (string, error) {
	students := s.roster.List()
	if len(students) == 0 {
		return "", fmt.Errorf("Insight: %w", ErrNoData)
	}

	prompt, err := s.prompt(kind, id, students)
	if err != nil {
		return "", fmt.Errorf("Insight: %w", err)
	}

	requestID := uuid.New().String()
	log := s.log.With(slog.String("request_id", requestID), slog.String("kind", string(kind)))
	log.Info("requesting insight")

	start := time.Now()
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error("insight failed", slog.String("error", err.Error()))
		if !errors.Is(err, ErrUnavailable) {
			err = fmt.Errorf("%w: %w", ErrUnavailable, err)
		}
		return "", fmt.Errorf("Insight: %w", err)
	}
	if answer == "" {
		log.Error("insight failed", slog.String("error", "empty response"))
		return "", fmt.Errorf("Insight: %w: empty response", ErrUnavailable)
	}

	log.Info("insight received", slog.Duration("took", time.Since(start)))
	return answer, nil
}

func (s *Service) prompt(kind Kind, id string, students []types.Student) (string, error) {
	if !kind.NeedsStudent() {
		switch kind {
		case KindClass:
			return ClassPrompt(students), nil
		case KindPredictive:
			return PredictivePrompt(students), nil
		default:
			return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
		}
	}

	if id == "" {
		return "", fmt.Errorf("%w for %s", ErrMissingID, kind)
	}
	st, err := s.roster.Get(id)
	if err != nil {
		return "", err
	}
	if kind == KindIntervention {
		return InterventionPrompt(st), nil
	}
	return FeedbackPrompt(st), nil
}
