// Package history records metadata about every dispatch that passes through it.
package history

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/amishk599/lexiroute/internal/model"
)

// OutcomeOK marks a successful dispatch. Failures use the model.ErrorKind value.
const OutcomeOK = "ok"

// Recorder decorates a model.Analyzer and writes one DispatchRecord per call.
// Only provider, model, outcome, message and timing are stored.
type Recorder struct {
	next   model.Analyzer
	log    model.DispatchLog
	logger *slog.Logger
	now    func() time.Time
}

// NewRecorder wraps next so that every dispatch is written to log.
func NewRecorder(next model.Analyzer, log model.DispatchLog, logger *slog.Logger) *Recorder {
	return &Recorder{
		next:   next,
		log:    log,
		logger: logger,
		now:    time.Now,
	}
}

// Dispatch forwards to the wrapped analyzer and returns its result unchanged.
// A failure to write the record is logged and otherwise ignored.
func (r *Recorder) Dispatch(ctx context.Context, req model.AnalysisRequest) (model.AnalysisResult, error) {
	start := r.now()
	result, err := r.next.Dispatch(ctx, req)

	rec := model.DispatchRecord{
		ID:        uuid.NewString(),
		Provider:  req.Provider,
		Model:     req.Model,
		Outcome:   OutcomeOK,
		Duration:  r.now().Sub(start),
		CreatedAt: start,
	}
	if err != nil {
		rec.Outcome = string(model.KindOf(err))
		rec.Message = err.Error()
	}

	// Record even when the caller has cancelled.
	if werr := r.log.Record(context.WithoutCancel(ctx), rec); werr != nil {
		r.logger.Warn("failed to record dispatch", "id", rec.ID, "error", werr)
	}

	return result, err
}
