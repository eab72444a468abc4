package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	"golang.org/x/sync/errgroup"

	"melv-core/domain"
	"melv-core/repository"
)

const (
	defaultEntity1 = "Entity1"
	defaultEntity2 = "Entity2"
)

// Analyzer composes the calculators for named, batched and end-to-end
// analyses. Deterministic i-factor calculations are memoized in the cache.
type Analyzer struct {
	cfg           Config
	interaction   *InteractionService
	compatibility *CompatibilityService
	combined      *CombinedService
	interpreter   *Interpreter
	cache         repository.CacheRepository
	logger        *slog.Logger
}

// NewAnalyzer validates cfg and wires the calculators. cache may be nil to
// disable memoization; logger defaults to slog.Default().
func NewAnalyzer(
	cfg Config,
	cache repository.CacheRepository,
	logger *slog.Logger,
) (*Analyzer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	compatibility, err := NewCompatibilityService(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Analyzer{
		cfg:           cfg,
		interaction:   NewInteractionService(cfg),
		compatibility: compatibility,
		combined:      NewCombinedService(cfg),
		interpreter:   NewInterpreter(cfg),
		cache:         cache,
		logger:        logger,
	}, nil
}

// Config returns the configuration the analyzer was built with.
func (a *Analyzer) Config() Config {
	return a.cfg
}

func (a *Analyzer) Interpreter() *Interpreter {
	return a.interpreter
}

// Interaction computes an i-factor, serving seeded or noise-free requests
// from the cache when possible.
func (a *Analyzer) Interaction(
	ctx context.Context,
	input domain.InteractionInput,
) (domain.InteractionResult, error) {

	key, cacheable := a.cacheKey(input)
	if cacheable {
		if result, ok := a.lookup(ctx, key); ok {
			return result, nil
		}
	}

	result, err := a.interaction.CalculateIFactor(input)
	if err != nil {
		return domain.InteractionResult{}, err
	}

	// Guardar el resultado (no crítico si falla)
	if cacheable {
		a.store(ctx, key, result)
	}

	return result, nil
}

func (a *Analyzer) Compatibility(input domain.CompatibilityInput) (domain.CompatibilityResult, error) {
	return a.compatibility.CalculateBeta(input)
}

func (a *Analyzer) Combined(input domain.CombinedInput) (domain.CombinedResult, error) {
	return a.combined.CombinedAnalysis(input)
}

// AnalyzeInteraction computes and explains the interaction between two named entities.
func (a *Analyzer) AnalyzeInteraction(
	ctx context.Context,
	pair domain.InteractionPair,
) (domain.InteractionReport, error) {

	result, err := a.Interaction(ctx, pair.Input)
	if err != nil {
		return domain.InteractionReport{}, err
	}

	entity1, entity2 := pair.Entity1, pair.Entity2
	if entity1 == "" {
		entity1 = defaultEntity1
	}
	if entity2 == "" {
		entity2 = defaultEntity2
	}
	method := pair.Method
	if method == "" {
		method = domain.MethodDirect
	}

	return domain.InteractionReport{
		Entity1:        entity1,
		Entity2:        entity2,
		Method:         method,
		Result:         result,
		Interpretation: a.interpreter.Interaction(result, method),
	}, nil
}

// CompareInteractions analyzes every pair concurrently and returns the reports
// sorted by i-factor, most cooperative first. Any failure aborts the batch.
func (a *Analyzer) CompareInteractions(
	ctx context.Context,
	pairs []domain.InteractionPair,
) ([]domain.InteractionReport, error) {

	if len(pairs) == 0 {
		return nil, errors.New("no interactions to compare")
	}

	reports := make([]domain.InteractionReport, len(pairs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for i, pair := range pairs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := a.AnalyzeInteraction(ctx, pair)
			if err != nil {
				return fmt.Errorf("interaction %d (%s / %s): %w", i, pair.Entity1, pair.Entity2, err)
			}
			reports[i] = report
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(reports, func(i, j int) bool {
		return reports[i].Result.IFactor < reports[j].Result.IFactor
	})
	return reports, nil
}

// Assess runs the full pipeline: i-factor, beta, then the combined prediction.
func (a *Analyzer) Assess(
	ctx context.Context,
	interaction domain.InteractionInput,
	compatibility domain.CompatibilityInput,
) (domain.Assessment, error) {

	iResult, err := a.Interaction(ctx, interaction)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("interaction: %w", err)
	}
	cResult, err := a.compatibility.CalculateBeta(compatibility)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("compatibility: %w", err)
	}

	combinedInput := domain.CombinedInput{
		IFactor:    iResult.IFactor,
		Beta:       cResult.Beta,
		Perpetuity: compatibility.Perpetuity,
	}
	combined, err := a.combined.CombinedAnalysis(combinedInput)
	if err != nil {
		return domain.Assessment{}, fmt.Errorf("combined analysis: %w", err)
	}

	interpretation := strings.Join([]string{
		a.interpreter.Interaction(iResult, domain.MethodDirect),
		a.interpreter.Compatibility(cResult),
		a.interpreter.Combined(combinedInput, combined),
	}, "\n\n")

	return domain.Assessment{
		Interaction:    iResult,
		Compatibility:  cResult,
		Combined:       combined,
		Interpretation: interpretation,
	}, nil
}

// cacheKey hashes the request together with the configuration. Unseeded
// bootstrap requests are not reproducible and are never cached.
func (a *Analyzer) cacheKey(input domain.InteractionInput) (string, bool) {
	if a.cache == nil {
		return "", false
	}
	if input.UncertaintyRequested() && input.RandomSeed == nil {
		return "", false
	}
	if !input.UncertaintyRequested() {
		input.BootstrapN = nil
		input.RandomSeed = nil
	}

	payload, err := json.Marshal(struct {
		Config Config                  `json:"config"`
		Input  domain.InteractionInput `json:"input"`
	}{a.cfg, input})
	if err != nil {
		// NaN/Inf no se pueden serializar; la validación los rechaza después
		return "", false
	}
	return fmt.Sprintf("ifactor:%016x", xxhash.Sum64(payload)), true
}

func (a *Analyzer) lookup(ctx context.Context, key string) (domain.InteractionResult, bool) {
	raw, ok, err := a.cache.Get(ctx, key)
	if err != nil {
		a.logger.Warn("cache lookup failed", "key", key, "error", err)
		return domain.InteractionResult{}, false
	}
	if !ok {
		return domain.InteractionResult{}, false
	}

	var result domain.InteractionResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		a.logger.Warn("discarding unreadable cache entry", "key", key, "error", err)
		return domain.InteractionResult{}, false
	}
	a.logger.Debug("cache hit", "key", key)
	return result, true
}

func (a *Analyzer) store(ctx context.Context, key string, result domain.InteractionResult) {
	raw, err := json.Marshal(result)
	if err != nil {
		a.logger.Warn("failed to encode result for cache", "key", key, "error", err)
		return
	}
	if err := a.cache.Set(ctx, key, string(raw)); err != nil {
		a.logger.Warn("failed to save calculation in cache", "key", key, "error", err)
	}
}
