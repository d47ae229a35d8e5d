package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/songzhibin97/tokenlens/internal/ai"
	"github.com/songzhibin97/tokenlens/internal/data"
	"github.com/songzhibin97/tokenlens/internal/intent"
	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/risk"
	"github.com/songzhibin97/tokenlens/internal/router"
)

// Internal error codes surfaced alongside the generic user-facing message.
const (
	CodeNoAddress        = "NO_ADDRESS"
	CodeSourcesExhausted = "SOURCES_EXHAUSTED"
	CodeInternal         = "INTERNAL"
)

// Options is the per-request configuration surface.
type Options struct {
	AllowQuotaLimitedSources bool
}

// Result is the complete, well-typed outcome of one analysis request. Every
// failure path still returns one of these; the pipeline never panics through
// to the caller.
type Result struct {
	Success      bool                  `json:"success"`
	Response     string                `json:"response"`
	Data         interface{}           `json:"data,omitempty"`
	Intent       models.AnalysisIntent `json:"intent"`
	Source       string                `json:"source"`
	FallbackUsed bool                  `json:"fallback_used"`
	ErrCode      string                `json:"error,omitempty"`
}

// Pipeline wires the classifier, router, calculators, and aggregation engine
// into the single entry point consumers call.
type Pipeline struct {
	classifier *intent.Classifier
	router     *router.Router
	engine     *risk.Engine
	explainer  ai.Explainer
	store      data.AssessmentStore // optional
	logger     *slog.Logger
	now        func() time.Time
}

func New(classifier *intent.Classifier, r *router.Router, engine *risk.Engine, explainer ai.Explainer, store data.AssessmentStore, logger *slog.Logger) *Pipeline {
	return &Pipeline{
		classifier: classifier,
		router:     r,
		engine:     engine,
		explainer:  explainer,
		store:      store,
		logger:     logger,
		now:        time.Now,
	}
}

// SetClock replaces the time source used for age calculations. Test hook.
func (p *Pipeline) SetClock(now func() time.Time) { p.now = now }

// capabilityNeeds maps each intent to the capabilities it resolves. Separate
// capabilities run concurrently; within each one the router falls back
// sequentially.
var capabilityNeeds = map[models.AnalysisIntent][]models.Capability{
	models.IntentTokenAnalysis:        {models.CapTokenMetadata, models.CapPairData},
	models.IntentRiskScoring:          {models.CapTokenMetadata, models.CapPairData, models.CapHolderData},
	models.IntentRugPullDetection:     {models.CapTokenMetadata, models.CapPairData},
	models.IntentLPLockCheck:          {models.CapPairData},
	models.IntentHolderAnalysis:       {models.CapHolderData},
	models.IntentWhaleTracking:        {models.CapHolderData},
	models.IntentHoneypotDetection:    {models.CapTokenMetadata, models.CapPairData},
	models.IntentNewTokenDetection:    {models.CapTokenMetadata, models.CapPairData},
	models.IntentVolumeSpikeDetection: {models.CapVolumeStats},
	models.IntentTokenMetadata:        {models.CapTokenMetadata},
}

// Run executes the full classify → resolve → score → format pipeline.
func (p *Pipeline) Run(ctx context.Context, rawText string, opts Options) (result *Result) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("pipeline panic recovered", "panic", r)
			result = &Result{
				Success:  false,
				Response: "Something went wrong while analyzing this request. Please try again.",
				Source:   router.SourceNone,
				ErrCode:  CodeInternal,
			}
		}
	}()

	classification := p.classifier.Classify(rawText)
	p.logger.Debug("classified request",
		"intent", classification.Intent, "confidence", classification.Confidence)

	switch classification.Intent {
	case models.IntentEducational:
		return p.runEducational(ctx, rawText, classification)
	case models.IntentTrendingTokens:
		return &Result{
			Success:  true,
			Intent:   classification.Intent,
			Response: "Trending discovery needs a market feed subscription. Paste a token address and I'll run a full risk assessment on it instead.",
			Source:   router.SourceNone,
		}
	}

	address := classification.Parameters["tokenAddress"]
	if address == "" {
		return &Result{
			Success:  false,
			Intent:   classification.Intent,
			Response: "I couldn't find a token address in that request. Paste the contract address to analyze.",
			Source:   router.SourceNone,
			ErrCode:  CodeNoAddress,
		}
	}

	resolved := p.resolveAll(ctx, classification.Intent, address, opts)

	primary := primaryResult(classification.Intent, resolved)
	if !primary.Success {
		return &Result{
			Success:      false,
			Intent:       classification.Intent,
			Response:     "No data source could resolve this token. It may be too new, unlisted, or the address may be wrong.",
			Source:       router.SourceNone,
			FallbackUsed: true,
			ErrCode:      CodeSourcesExhausted,
		}
	}

	if classification.Intent == models.IntentTokenMetadata {
		meta := resolved[models.CapTokenMetadata].Data.Metadata
		return &Result{
			Success:      true,
			Intent:       classification.Intent,
			Response:     formatMetadata(meta, primary),
			Data:         meta,
			Source:       primary.Source,
			FallbackUsed: primary.FallbackUsed,
		}
	}

	assessment := p.assess(classification.Intent, address, resolved, primary)

	if p.store != nil {
		if err := p.store.SaveAssessment(ctx, &assessment); err != nil {
			p.logger.Warn("failed to persist assessment", "err", err)
		}
	}

	return &Result{
		Success:      true,
		Intent:       classification.Intent,
		Response:     formatAssessment(&assessment),
		Data:         assessment,
		Source:       assessment.Source,
		FallbackUsed: assessment.FallbackUsed,
	}
}

func (p *Pipeline) runEducational(ctx context.Context, question string, c models.ClassificationResult) *Result {
	answer, err := p.explainer.Explain(ctx, question)
	if err != nil {
		p.logger.Warn("explainer failed, using static fallback", "err", err)
		answer, _ = ai.NewStaticExplainer().Explain(ctx, question)
	}
	return &Result{
		Success:  true,
		Intent:   c.Intent,
		Response: answer,
		Source:   router.SourceNone,
	}
}

// resolveAll fans the intent's capabilities out concurrently. Only the
// usage tracker is shared underneath, and it tolerates that by design.
func (p *Pipeline) resolveAll(ctx context.Context, it models.AnalysisIntent, address string, opts Options) map[models.Capability]models.ProviderResult {
	caps := capabilityNeeds[it]
	results := make(map[models.Capability]models.ProviderResult, len(caps))

	var (
		mu sync.Mutex
		wg sync.WaitGroup
	)
	for _, c := range caps {
		wg.Add(1)
		go func(c models.Capability) {
			defer wg.Done()
			// A panicking adapter must not take the process down; it reads
			// as one more failed source.
			defer func() {
				if r := recover(); r != nil {
					p.logger.Error("source resolution panic recovered", "capability", c, "panic", r)
					mu.Lock()
					results[c] = models.ProviderResult{
						Success: false,
						Source:  router.SourceNone,
						Err:     fmt.Sprintf("panic: %v", r),
					}
					mu.Unlock()
				}
			}()
			res := p.router.Resolve(ctx, c, address, router.Options{
				AllowQuotaLimited: opts.AllowQuotaLimitedSources,
			})
			mu.Lock()
			results[c] = res
			mu.Unlock()
		}(c)
	}
	wg.Wait()

	return results
}

// primaryResult picks the capability whose outcome names the assessment's
// data source: pair data when the intent uses it, otherwise the first
// requested capability that succeeded.
func primaryResult(it models.AnalysisIntent, resolved map[models.Capability]models.ProviderResult) models.ProviderResult {
	order := []models.Capability{models.CapPairData, models.CapVolumeStats, models.CapHolderData, models.CapTokenMetadata}
	for _, c := range order {
		if res, ok := resolved[c]; ok && res.Success {
			return res
		}
	}
	return models.ProviderResult{Success: false, Source: router.SourceNone, FallbackUsed: true}
}

// assess runs the calculators relevant to the intent and aggregates them.
func (p *Pipeline) assess(it models.AnalysisIntent, address string, resolved map[models.Capability]models.ProviderResult, primary models.ProviderResult) models.CompositeRiskAssessment {
	now := p.now()

	var (
		meta    *models.TokenMetadata
		pair    *models.PairData
		holders *models.HolderList
		checks  *models.ContractChecks
	)
	if res, ok := resolved[models.CapTokenMetadata]; ok && res.Success {
		meta = res.Data.Metadata
		checks = res.Data.Checks
	}
	if res, ok := resolved[models.CapPairData]; ok && res.Success {
		pair = res.Data.Pair
	}
	if res, ok := resolved[models.CapVolumeStats]; ok && res.Success && pair == nil {
		pair = res.Data.Pair
	}
	if res, ok := resolved[models.CapHolderData]; ok && res.Success {
		holders = res.Data.Holders
	}

	in := risk.AggregateInput{
		TokenAddress: address,
		Intent:       it,
		SubScores:    make(map[models.RiskCategory][]models.RiskFactor),
		Source:       primary.Source,
		FallbackUsed: primary.FallbackUsed,
	}
	merge := func(s risk.SubScore) {
		for _, f := range s.Factors {
			in.SubScores[f.Category] = append(in.SubScores[f.Category], f)
		}
	}

	switch it {
	case models.IntentTokenAnalysis:
		merge(risk.LiquidityRisk(pair))
		merge(risk.VolatilityRisk(pair))
		merge(risk.RugPullRisk(pair, now))
		merge(risk.LaunchQualityRisk(meta, pair, now))
	case models.IntentRiskScoring:
		merge(risk.LiquidityRisk(pair))
		merge(risk.VolatilityRisk(pair))
		merge(risk.RugPullRisk(pair, now))
		merge(risk.ConcentrationRisk(holders))
		merge(risk.DevWalletRisk(checks, holders))
		merge(risk.LaunchQualityRisk(meta, pair, now))
	case models.IntentRugPullDetection:
		merge(risk.RugPullRisk(pair, now))
		merge(risk.LiquidityRisk(pair))
		merge(risk.DevWalletRisk(checks, nil))
	case models.IntentLPLockCheck:
		merge(risk.LPLockRisk(pair, now))
		merge(risk.LiquidityRisk(pair))
		in.HeuristicOnly = true
	case models.IntentHolderAnalysis, models.IntentWhaleTracking:
		merge(risk.ConcentrationRisk(holders))
		merge(risk.DevWalletRisk(checks, holders))
	case models.IntentHoneypotDetection:
		hp := risk.HoneypotRisk(checks, pair)
		merge(hp.SubScore)
		merge(risk.LiquidityRisk(pair))
		in.Sellability = hp.Verdict
		in.HeuristicOnly = checks == nil || !checks.ChecksAvailable
	case models.IntentNewTokenDetection:
		merge(risk.LaunchQualityRisk(meta, pair, now))
		merge(risk.RugPullRisk(pair, now))
		merge(risk.LiquidityRisk(pair))
	case models.IntentVolumeSpikeDetection:
		merge(risk.VolumeSpikeRisk(pair))
		merge(risk.LiquidityRisk(pair))
	default:
		merge(risk.LiquidityRisk(pair))
		merge(risk.VolatilityRisk(pair))
	}

	return p.engine.Aggregate(in)
}
