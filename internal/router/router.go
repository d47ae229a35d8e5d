package router

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/songzhibin97/tokenlens/internal/models"
	"github.com/songzhibin97/tokenlens/internal/provider"
	"github.com/songzhibin97/tokenlens/internal/usage"
)

// SourceNone is the terminal source name when every adapter is exhausted.
const SourceNone = "none"

// Options gates quota-limited sources per request.
type Options struct {
	AllowQuotaLimited bool
}

// Router resolves one capability at a time by trying adapters in strict
// declared priority order, skipping quota-exhausted or disallowed paid
// sources, and returning the first usable result. Individual adapter errors
// are logged and swallowed; only full exhaustion is surfaced, and then as a
// structured result rather than an error.
type Router struct {
	adapters   map[string]provider.Adapter
	priorities map[models.Capability][]string
	tracker    *usage.Tracker
	logger     *slog.Logger
}

// New builds a router. priorities maps each capability to its adapter names
// in try order; unknown names are skipped at resolve time with a log line so
// a config typo cannot take the pipeline down.
func New(adapters []provider.Adapter, priorities map[models.Capability][]string, tracker *usage.Tracker, logger *slog.Logger) *Router {
	byName := make(map[string]provider.Adapter, len(adapters))
	for _, a := range adapters {
		byName[a.Name()] = a
	}
	return &Router{
		adapters:   byName,
		priorities: priorities,
		tracker:    tracker,
		logger:     logger,
	}
}

// Resolve runs the capability's priority chain. The returned result always
// has Source set to a configured adapter name or "none".
func (r *Router) Resolve(ctx context.Context, capability models.Capability, subjectID string, opts Options) models.ProviderResult {
	chain, ok := r.priorities[capability]
	if !ok || len(chain) == 0 {
		return exhausted(fmt.Sprintf("no sources configured for capability %q", capability))
	}

	first := chain[0]
	for _, name := range chain {
		adapter, ok := r.adapters[name]
		if !ok {
			r.logger.Warn("unknown adapter in priority chain", "capability", capability, "adapter", name)
			continue
		}

		if adapter.QuotaLimited() {
			if !opts.AllowQuotaLimited {
				r.logger.Debug("skipping quota-limited source", "adapter", name, "reason", "disallowed")
				continue
			}
			if !r.tracker.WithinLimit(name) {
				r.logger.Debug("skipping quota-limited source", "adapter", name, "reason", "quota exhausted")
				continue
			}
		}

		payload, err := adapter.Fetch(ctx, capability, subjectID)
		if err != nil {
			r.logger.Warn("source failed, trying next",
				"capability", capability, "adapter", name, "subject", subjectID, "err", err)
			continue
		}
		if payload.Empty() {
			r.logger.Warn("source returned empty payload, trying next",
				"capability", capability, "adapter", name, "subject", subjectID)
			continue
		}

		r.tracker.Track(name)
		return models.ProviderResult{
			Success:      true,
			Data:         payload,
			Source:       name,
			FallbackUsed: name != first,
		}
	}

	return exhausted(fmt.Sprintf("all sources exhausted for capability %q", capability))
}

func exhausted(reason string) models.ProviderResult {
	return models.ProviderResult{
		Success:      false,
		Source:       SourceNone,
		FallbackUsed: true,
		Err:          reason,
	}
}

// DefaultPriorities is the standard capability→source order: free sources
// first, quota-limited analytics last.
func DefaultPriorities() map[models.Capability][]string {
	return map[models.Capability][]string{
		models.CapTokenMetadata: {"tokenlist", "goplus", "dexscreener", "chainrpc"},
		models.CapPairData:      {"dexscreener", "geckoterminal", "birdeye"},
		models.CapHolderData:    {"chainrpc", "birdeye"},
		models.CapVolumeStats:   {"dexscreener", "geckoterminal", "cexmarket", "birdeye"},
	}
}
