// Package espalier is a symbolic-token grammar engine and constraint-driven
// sequence generator. It parses operator tokens, enforces the structural
// legality rules over a running history, evolves a nine-field scalar state
// vector per applied operator, tracks the five-phase cycle, and selects the
// next operator by minimizing a weighted deviation cost.
package espalier

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/espalier/internal/adapters/memory"
	"github.com/aretw0/espalier/internal/evolve"
	"github.com/aretw0/espalier/internal/logging"
	"github.com/aretw0/espalier/internal/pipeline"
	"github.com/aretw0/espalier/internal/rules"
	"github.com/aretw0/espalier/internal/sequence"
	"github.com/aretw0/espalier/pkg/catalog"
	"github.com/aretw0/espalier/pkg/config"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/aretw0/espalier/pkg/ports"
	"github.com/aretw0/espalier/pkg/token"
)

// Engine is the high-level entry point for the espalier library.
// It bundles a configuration, an optional catalog and a session store behind
// a simplified API; the underlying computation stays pure.
type Engine struct {
	cfg    config.Config
	cat    *catalog.Catalog
	source ports.CatalogSource
	store  ports.SessionStore
	logger *slog.Logger
}

// Option defines a functional option for configuring the Engine.
type Option func(*Engine)

// WithConfig replaces the reference configuration.
func WithConfig(cfg config.Config) Option {
	return func(e *Engine) {
		e.cfg = cfg
	}
}

// WithCatalog injects an already-built token catalog.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(e *Engine) {
		e.cat = cat
	}
}

// WithCatalogSource loads the catalog from a source during New.
func WithCatalogSource(source ports.CatalogSource) Option {
	return func(e *Engine) {
		e.source = source
	}
}

// WithStore sets the session store. Defaults to an in-memory store.
func WithStore(store ports.SessionStore) Option {
	return func(e *Engine) {
		e.store = store
	}
}

// WithLogger sets a custom structured logger for the engine.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// New initializes an Engine. Without options it runs the reference
// configuration with an empty catalog and an in-memory session store.
func New(opts ...Option) (*Engine, error) {
	eng := &Engine{
		cfg:    config.Reference(),
		logger: logging.NewNop(),
	}

	for _, opt := range opts {
		opt(eng)
	}

	if err := eng.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	for _, warning := range eng.cfg.Warnings() {
		eng.logger.Warn("configuration smell", "detail", warning)
	}

	if eng.cat == nil {
		eng.cat = catalog.New(nil)
	}
	if eng.source != nil {
		cat, err := eng.source.Catalog(context.Background())
		if err != nil {
			return nil, fmt.Errorf("failed to load catalog: %w", err)
		}
		eng.cat = cat
	}
	if eng.store == nil {
		eng.store = memory.NewStore()
	}

	return eng, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() config.Config {
	return e.cfg
}

// Catalog returns the engine's token catalog.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// ParseToken parses canonical token text.
func (e *Engine) ParseToken(text string) (token.Token, error) {
	return token.Parse(text)
}

// FormatToken renders a token as canonical text.
func (e *Engine) FormatToken(t token.Token) string {
	return token.Format(t)
}

// Describe looks up catalog metadata for canonical token text.
func (e *Engine) Describe(text string) (catalog.Entry, error) {
	return e.cat.Get(text)
}

// ValidateOperator checks one prospective application against the structural
// rules and, via the predicted post-state, the scalar thresholds. The
// structural rules run before any prediction, so a rule breach is never
// masked by a range breach in the predicted state. A nil return confirms
// legality.
func (e *Engine) ValidateOperator(app domain.Application, history domain.History, state domain.ScalarStateVector) error {
	if v := rules.Check(app, history); v != nil {
		return v
	}
	predicted, err := evolve.Apply(state, app.Operator, e.cfg)
	if err != nil {
		return err
	}
	if v := rules.CheckBounds(predicted, e.cfg.Thresholds); v != nil {
		return v
	}
	return nil
}

// EvolveState applies one operator's configured deltas to the state.
func (e *Engine) EvolveState(state domain.ScalarStateVector, op token.Operator) (domain.ScalarStateVector, error) {
	return evolve.Apply(state, op, e.cfg)
}

// SelectNextOperator runs the decision pipeline and returns the minimum-cost
// decision together with the full candidate table.
func (e *Engine) SelectNextOperator(sel domain.Selection) (domain.Decision, error) {
	return pipeline.Select(pipeline.Request{
		State:      sel.State,
		Phase:      sel.Phase,
		History:    sel.History,
		Scale:      sel.Scale,
		InputCount: sel.InputCount,
	}, e.cfg)
}

// Run is one finished generation branch.
type Run struct {
	Steps     []domain.Decision
	State     domain.ScalarStateVector
	Phase     domain.Phase
	History   domain.History
	Exhausted bool
}

func runFromResult(res sequence.Result) Run {
	return Run{
		Steps:     res.Steps,
		State:     res.State,
		Phase:     res.Phase,
		History:   res.History,
		Exhausted: res.Exhausted,
	}
}

// Generate grows one operator sequence from the given starting point until
// the configured recursion cap or candidate exhaustion.
func (e *Engine) Generate(sel domain.Selection) (Run, error) {
	res, err := sequence.Generate(sequence.Seed{
		State:      sel.State,
		Phase:      sel.Phase,
		History:    sel.History,
		Scale:      sel.Scale,
		InputCount: sel.InputCount,
	}, e.cfg)
	if err != nil {
		return Run{}, err
	}
	return runFromResult(res), nil
}

// GenerateBranches evaluates independent starting points in parallel.
func (e *Engine) GenerateBranches(ctx context.Context, sels []domain.Selection) ([]Run, error) {
	seeds := make([]sequence.Seed, len(sels))
	for i, sel := range sels {
		seeds[i] = sequence.Seed{
			State:      sel.State,
			Phase:      sel.Phase,
			History:    sel.History,
			Scale:      sel.Scale,
			InputCount: sel.InputCount,
		}
	}

	results, err := sequence.GenerateBranches(ctx, seeds, e.cfg)
	if err != nil {
		return nil, err
	}

	runs := make([]Run, len(results))
	for i, res := range results {
		runs[i] = runFromResult(res)
	}
	return runs, nil
}

// StartSession creates and persists a session at the reference starting
// point. Scale defaults to the fine-grained reference scale.
func (e *Engine) StartSession(ctx context.Context, id, scale string) (*domain.Session, error) {
	if scale == "" {
		scale = config.ScaleFine
	}
	session := domain.NewSession(id)
	session.Scale = scale

	if err := e.store.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session %s: %w", id, err)
	}
	e.logger.Info("session started", "session", id, "scale", scale)
	return session, nil
}

// Session loads a persisted session.
func (e *Engine) Session(ctx context.Context, id string) (*domain.Session, error) {
	return e.store.Load(ctx, id)
}

// Sessions lists persisted session IDs.
func (e *Engine) Sessions(ctx context.Context) ([]string, error) {
	return e.store.List(ctx)
}

// EndSession deletes a persisted session.
func (e *Engine) EndSession(ctx context.Context, id string) error {
	return e.store.Delete(ctx, id)
}

// Step advances a persisted session by one selected operator. The inputs
// argument is the number of inputs available for this step; Fusion stays
// rejected by the plurality rule until it reaches two. The session is saved
// only after a successful selection; a rejected step leaves it untouched.
func (e *Engine) Step(ctx context.Context, id string, inputs int) (*domain.Session, *domain.Decision, error) {
	session, err := e.store.Load(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	decision, err := e.SelectNextOperator(domain.Selection{
		State:      session.State,
		Phase:      session.Phase,
		History:    session.History,
		Scale:      session.Scale,
		InputCount: inputs,
	})
	if err != nil {
		return nil, nil, err
	}

	session.State = decision.State
	session.Phase = decision.Phase
	session.History = session.History.Push(decision.Operator)

	if err := e.store.Save(ctx, session); err != nil {
		return nil, nil, fmt.Errorf("failed to persist session %s: %w", id, err)
	}
	e.logger.Debug("session stepped",
		"session", id,
		"operator", decision.Operator,
		"phase", decision.Phase,
	)
	return session, &decision, nil
}
