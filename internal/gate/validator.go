package gate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/session"
	"github.com/amoylab/sessiongate/pkg/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// ErrStorePanic wraps a panic raised by the session store client
var ErrStorePanic = errors.New("session store panicked")

// TokenValidator checks a token against the session store with a single lookup
type TokenValidator struct {
	logger    *zap.Logger
	store     session.Store
	keys      KeyBuilder
	storeType string
	recorder  Recorder
}

// NewTokenValidator creates a validator. A nil recorder disables timing.
func NewTokenValidator(logger *zap.Logger, store session.Store, keys KeyBuilder, storeType string, recorder Recorder) *TokenValidator {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	return &TokenValidator{
		logger:    logger.Named("gate.validator"),
		store:     store,
		keys:      keys,
		storeType: storeType,
		recorder:  recorder,
	}
}

// Validate reports whether token has a non-empty session record.
// Absence is (false, nil). Store failures, panics included, are logged and
// returned as (false, err); they are never retried.
func (v *TokenValidator) Validate(ctx context.Context, token string) (valid bool, err error) {
	masked := MaskToken(token)
	scope := trace.Tracer(cnst.TraceSession).Start(ctx, cnst.SpanSessionLookup)
	scope.WithAttrs(
		attribute.String(cnst.AttrStoreType, v.storeType),
		attribute.String(cnst.AttrMaskedToken, masked),
	)
	defer scope.End()

	start := time.Now()
	result := LookupError
	defer func() {
		if r := recover(); r != nil {
			valid = false
			err = fmt.Errorf("%w: %v", ErrStorePanic, r)
			result = LookupError
			scope.Fail(err)
			v.logger.Error("Session store panicked during lookup",
				zap.String("token", masked),
				zap.String("store", v.storeType),
				zap.Any("panic", r),
			)
		}
		v.recorder.ObserveLookup(v.storeType, result, time.Since(start))
		scope.WithAttrs(attribute.Bool(cnst.AttrSessionFound, valid))
	}()

	v.logger.Debug("Looking up session", zap.String("key", v.keys.Build(masked)))

	value, gerr := v.store.Get(scope.Ctx, v.keys.Build(token))
	switch {
	case errors.Is(gerr, session.ErrSessionNotFound):
		result = LookupMissing
		return false, nil
	case gerr != nil:
		scope.Fail(gerr)
		v.logger.Error("Session lookup failed",
			zap.String("token", masked),
			zap.String("store", v.storeType),
			zap.Error(gerr),
		)
		return false, fmt.Errorf("session lookup: %w", gerr)
	case value == "":
		result = LookupMissing
		return false, nil
	}

	result = LookupFound
	return true, nil
}
