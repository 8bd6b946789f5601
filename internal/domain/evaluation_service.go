package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/Vovarama1992/ambiance/internal/models"
	"github.com/Vovarama1992/ambiance/internal/ports"
	"github.com/Vovarama1992/go-utils/logger"
	"github.com/google/uuid"
)

const DefaultEditWindow = 24 * time.Hour

type submitInput struct {
	EvaluatorID string         `json:"evaluator_id" validate:"required"`
	MediaID     string         `json:"media_id" validate:"required"`
	Ratings     models.Ratings `json:"ratings"`
	Comment     string         `json:"comment" validate:"required"`
}

type EvaluationService struct {
	repo    ports.EvaluationRepository
	media   ports.MediaRepository
	log     *logger.ZapLogger
	metrics ports.OutcomeRecorder

	now    Clock
	newID  func() string
	window time.Duration
	events chan ports.EvaluationEvent
}

type EvaluationOption func(*EvaluationService)

func WithClock(c Clock) EvaluationOption {
	return func(s *EvaluationService) { s.now = c }
}

func WithEditWindow(d time.Duration) EvaluationOption {
	return func(s *EvaluationService) { s.window = d }
}

func WithRecorder(r ports.OutcomeRecorder) EvaluationOption {
	return func(s *EvaluationService) { s.metrics = r }
}

func WithIDGenerator(gen func() string) EvaluationOption {
	return func(s *EvaluationService) { s.newID = gen }
}

func WithEventBuffer(n int) EvaluationOption {
	return func(s *EvaluationService) { s.events = make(chan ports.EvaluationEvent, n) }
}

func NewEvaluationService(
	repo ports.EvaluationRepository,
	media ports.MediaRepository,
	log *logger.ZapLogger,
	opts ...EvaluationOption,
) *EvaluationService {
	s := &EvaluationService{
		repo:    repo,
		media:   media,
		log:     log,
		metrics: ports.NopRecorder{},
		now:     time.Now,
		newID:   uuid.NewString,
		window:  DefaultEditWindow,
		events:  make(chan ports.EvaluationEvent, 100),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *EvaluationService) Events() <-chan ports.EvaluationEvent { return s.events }

func (s *EvaluationService) Submit(
	ctx context.Context,
	evaluatorID, mediaID string,
	ratings models.Ratings,
	comment string,
) (string, error) {

	if _, err := s.media.GetMediaByID(ctx, mediaID); err != nil {
		s.metrics.Submission(outcomeOf(err))
		return "", err
	}

	in := submitInput{
		EvaluatorID: evaluatorID,
		MediaID:     mediaID,
		Ratings:     ratings,
		Comment:     strings.TrimSpace(comment),
	}
	if err := validateStruct(in); err != nil {
		s.metrics.Submission("invalid")
		return "", err
	}

	e := &models.Evaluation{
		ID:          s.newID(),
		EvaluatorID: evaluatorID,
		MediaID:     mediaID,
		Ratings:     ratings,
		Comment:     in.Comment,
		CreatedAt:   s.now().UTC(),
	}

	saved, err := s.repo.InsertEvaluation(ctx, e)
	if err != nil {
		s.metrics.Submission(outcomeOf(err))
		s.logOutcome("submit rejected", err, map[string]any{
			"evaluatorID": evaluatorID,
			"mediaID":     mediaID,
		})
		return "", err
	}

	s.metrics.Submission("created")
	s.publish(ports.EvaluationCreated, saved)
	return saved.ID, nil
}

func (s *EvaluationService) Update(
	ctx context.Context,
	evaluationID, evaluatorID string,
	patch models.EvaluationPatch,
) (*models.Evaluation, error) {

	if patch.Comment != nil {
		trimmed := strings.TrimSpace(*patch.Comment)
		patch.Comment = &trimmed
	}
	if err := validateStruct(patch); err != nil {
		s.metrics.Update("invalid")
		return nil, err
	}

	updated, err := s.repo.UpdateEvaluation(ctx, evaluationID, func(e *models.Evaluation) error {
		if e.EvaluatorID != evaluatorID {
			return ports.ErrForbidden
		}
		// read the clock here, with the row held, not when the request arrived
		if s.now().Sub(e.CreatedAt) > s.window {
			return ports.ErrExpired
		}
		patch.ApplyTo(e)
		return nil
	})
	if err != nil {
		s.metrics.Update(outcomeOf(err))
		s.logOutcome("update rejected", err, map[string]any{
			"evaluationID": evaluationID,
			"evaluatorID":  evaluatorID,
		})
		return nil, err
	}

	s.metrics.Update("updated")
	s.publish(ports.EvaluationUpdated, updated)
	return updated, nil
}

func (s *EvaluationService) ListByEvaluator(ctx context.Context, evaluatorID string) ([]models.Evaluation, error) {
	return s.repo.ListByEvaluator(ctx, evaluatorID)
}

func (s *EvaluationService) ListAll(ctx context.Context) ([]models.Evaluation, error) {
	return s.repo.ListAll(ctx)
}

// publish never blocks a write; a full buffer drops the event.
func (s *EvaluationService) publish(kind ports.EvaluationEventKind, e *models.Evaluation) {
	ev := ports.EvaluationEvent{
		Kind:         kind,
		EvaluationID: e.ID,
		EvaluatorID:  e.EvaluatorID,
		MediaID:      e.MediaID,
		At:           s.now(),
	}
	select {
	case s.events <- ev:
	default:
		s.log.Log(logger.LogEntry{
			Level:   "warn",
			Message: "evaluation event dropped",
			Fields:  map[string]any{"evaluationID": e.ID, "kind": kind},
		})
	}
}

func (s *EvaluationService) logOutcome(msg string, err error, fields map[string]any) {
	level := "info"
	if errors.Is(err, ports.ErrStorage) {
		level = "error"
	}
	s.log.Log(logger.LogEntry{
		Level:   level,
		Message: msg,
		Fields:  fields,
		Error:   err,
	})
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ports.ErrValidation):
		return "invalid"
	case errors.Is(err, ports.ErrNotFound):
		return "not_found"
	case errors.Is(err, ports.ErrConflict):
		return "conflict"
	case errors.Is(err, ports.ErrForbidden):
		return "forbidden"
	case errors.Is(err, ports.ErrExpired):
		return "expired"
	default:
		return "error"
	}
}
