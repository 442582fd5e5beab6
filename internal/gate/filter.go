package gate

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/amoylab/sessiongate/internal/common/cnst"
	"github.com/amoylab/sessiongate/internal/common/errorx"
	"github.com/amoylab/sessiongate/internal/i18n"
	"github.com/amoylab/sessiongate/internal/session"
	"github.com/amoylab/sessiongate/pkg/trace"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// causeStoreUnavailable is the SYS_500 cause shown when the store lookup fails
const causeStoreUnavailable = "session store unavailable"

var (
	// ErrNilTranslator is returned by WithTranslator(nil)
	ErrNilTranslator = errors.New("error translator cannot be nil")
	// ErrIncompleteMessages is returned when a translator cannot word every error code
	ErrIncompleteMessages = errors.New("missing error messages")
)

// Chain hands the request back to the host. The host decides from the
// response status whether to keep forwarding.
type Chain interface {
	Filter(ctx context.Context, req Request, resp Response)
}

// ChainFunc adapts a function to Chain
type ChainFunc func(ctx context.Context, req Request, resp Response)

// Filter implements Chain
func (f ChainFunc) Filter(ctx context.Context, req Request, resp Response) {
	f(ctx, req, resp)
}

// Config holds what the filter needs to derive keys and word errors
type Config struct {
	Name      string
	Namespace string
	LoginType string
	Lang      string
	StoreType string // metrics and trace label only
}

// Option configures the Filter
type Option func(*Filter) error

// WithRecorder reports decision and lookup timings to r
func WithRecorder(r Recorder) Option {
	return func(f *Filter) error {
		if r != nil {
			f.recorder = r
		}
		return nil
	}
}

// WithTranslator replaces the built-in message catalog
func WithTranslator(t *errorx.ErrorTranslator) Option {
	return func(f *Filter) error {
		if t == nil {
			return ErrNilTranslator
		}
		f.messages = t
		return nil
	}
}

// Filter is the authentication gate. It is immutable after New and safe for
// concurrent use.
type Filter struct {
	logger    *zap.Logger
	name      string
	keys      KeyBuilder
	storeType string
	recorder  Recorder
	messages  *errorx.ErrorTranslator
	validator *TokenValidator
	responses *ResponseBuilder
}

// New builds a Filter reading sessions from store
func New(cfg Config, store session.Store, logger *zap.Logger, opts ...Option) (*Filter, error) {
	if store == nil {
		return nil, cnst.ErrNilStore
	}
	if cfg.Namespace == "" {
		return nil, cnst.ErrEmptyNamespace
	}
	if cfg.LoginType == "" {
		return nil, cnst.ErrEmptyLoginType
	}
	if cfg.Name == "" {
		cfg.Name = cnst.DefaultFilterName
	}

	f := &Filter{
		logger:    logger.Named("gate.filter"),
		name:      cfg.Name,
		keys:      KeyBuilder{Namespace: cfg.Namespace, LoginType: cfg.LoginType},
		storeType: cfg.StoreType,
		recorder:  nopRecorder{},
	}
	for _, opt := range opts {
		if err := opt(f); err != nil {
			return nil, err
		}
	}
	if f.messages == nil {
		tr, err := i18n.NewDefault()
		if err != nil {
			return nil, fmt.Errorf("failed to load messages: %w", err)
		}
		f.messages = errorx.NewErrorTranslator(tr, cfg.Lang)
	}
	if missing := f.messages.Missing(); len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrIncompleteMessages, strings.Join(missing, ", "))
	}

	f.validator = NewTokenValidator(logger, store, f.keys, f.storeType, f.recorder)
	f.responses = NewResponseBuilder(f.messages)
	return f, nil
}

// Name returns the name gateway routes address the filter by
func (f *Filter) Name() string {
	return f.name
}

// Messages returns the translator error bodies are worded with
func (f *Filter) Messages() *errorx.ErrorTranslator {
	return f.messages
}

// RequiredVars lists the request variables the host must resolve
func (f *Filter) RequiredVars() []string {
	return []string{cnst.VarAuthorization}
}

// Filter decides on req, writes an error envelope to resp on rejection and
// then calls chain exactly once. It never panics.
func (f *Filter) Filter(ctx context.Context, req Request, resp Response, chain Chain) {
	defer chain.Filter(ctx, req, resp)

	start := time.Now()
	scope := trace.Tracer(cnst.TraceGate).Start(ctx, cnst.SpanFilter)
	outcome := f.run(scope.Ctx, req, resp)
	f.observe(scope, outcome, time.Since(start))
}

// observe ends the span and reports the decision. It never panics.
func (f *Filter) observe(scope *trace.SpanScope, outcome Outcome, elapsed time.Duration) {
	defer func() {
		if r := recover(); r != nil {
			f.logger.Error("Recording decision panicked",
				zap.Any("panic", r),
				zap.String("code", outcome.Code()),
			)
		}
	}()
	defer scope.End()

	scope.WithAttrs(
		attribute.String(cnst.AttrFilterName, f.name),
		attribute.String(cnst.AttrOutcome, outcome.String()),
		attribute.String(cnst.AttrErrorCode, outcome.Code()),
	)
	if outcome == SystemError {
		scope.Fail(errorx.ErrSystem)
	}
	f.recorder.ObserveDecision(outcome.Code(), elapsed)
}

func (f *Filter) run(ctx context.Context, req Request, resp Response) (outcome Outcome) {
	defer func() {
		if r := recover(); r != nil {
			outcome = SystemError
			f.logger.Error("Authentication filter panicked",
				zap.Any("panic", r),
				zap.Stack("stack"),
			)
			if err := f.responses.Write(resp, errorx.ErrSystem, ""); err != nil {
				f.logger.Error("Failed to write error response", zap.Error(err))
			}
		}
	}()

	outcome, token, cause := f.decide(ctx, req)
	if outcome == Success {
		return outcome
	}

	e := outcome.AuthError()
	f.logRejection(e, outcome, token)
	if err := f.responses.Write(resp, e, cause); err != nil {
		f.logger.Error("Failed to write error response", zap.String("code", e.Code), zap.Error(err))
		return SystemError
	}
	return outcome
}

// decide walks header, bearer and store checks, stopping at the first
// failure. token is set once the bearer form has been accepted.
func (f *Filter) decide(ctx context.Context, req Request) (outcome Outcome, token, cause string) {
	raw, ok := ExtractAuthorization(req)
	if !ok {
		return MissingHeader, "", ""
	}

	token, outcome = ParseBearer(raw)
	if outcome != Success {
		return outcome, "", ""
	}

	valid, err := f.validator.Validate(ctx, token)
	if err != nil {
		return SystemError, token, causeStoreUnavailable
	}
	if !valid {
		return InvalidOrExpired, token, ""
	}
	return Success, token, ""
}

// logRejection logs client-caused rejections at debug and gate faults at warn
func (f *Filter) logRejection(e *errorx.AuthError, outcome Outcome, token string) {
	fields := []zap.Field{
		zap.Stringer("outcome", outcome),
		zap.String("code", e.Code),
	}
	if token != "" {
		fields = append(fields, zap.String("token", MaskToken(token)))
	}
	if e.ClientCaused() {
		f.logger.Debug("Rejected request", fields...)
		return
	}
	f.logger.Warn("Rejected request", fields...)
}
