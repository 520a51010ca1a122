package assistant

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Anantaverma20/Retailmind/internal/domain"
	"github.com/Anantaverma20/Retailmind/internal/observability/telemetry"
	"github.com/Anantaverma20/Retailmind/internal/ports"
	"github.com/Anantaverma20/Retailmind/internal/service/nlu"
	"github.com/Anantaverma20/Retailmind/internal/service/speech"
)

// Service runs the single-pass pipeline: parse, normalize, validate,
// dispatch, render, record. Every request is independent; the service holds
// only read-only collaborators and is safe for concurrent use.
type Service struct {
	primary  ports.IntentParser // may be nil when the model provider is disabled
	fallback ports.IntentParser // total, never fails
	cache    ports.Cache
	cacheTTL time.Duration
	registry *Registry
	renderer *speech.Renderer
	recorder *Recorder
	log      *zap.Logger
}

type Options struct {
	Primary  ports.IntentParser
	Fallback ports.IntentParser
	Cache    ports.Cache
	CacheTTL time.Duration
	Registry *Registry
	Renderer *speech.Renderer
	Recorder *Recorder
}

func NewService(opts Options, log *zap.Logger) (*Service, error) {
	if opts.Fallback == nil {
		return nil, fmt.Errorf("assistant: fallback parser is required")
	}
	if err := opts.Registry.CheckExhaustive(); err != nil {
		return nil, err
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 10 * time.Minute
	}
	return &Service{
		primary:  opts.Primary,
		fallback: opts.Fallback,
		cache:    opts.Cache,
		cacheTTL: opts.CacheTTL,
		registry: opts.Registry,
		renderer: opts.Renderer,
		recorder: opts.Recorder,
		log:      log,
	}, nil
}

// Handle is the single boundary the transport layer calls. It always returns
// a speakable response; ok is false only when a handler raised a domain or
// persistence error.
func (s *Service) Handle(ctx context.Context, req domain.TranscriptRequest) domain.Response {
	start := time.Now()
	lang := domain.ParseLanguage(req.Language)

	parsed := s.parse(ctx, req, lang)
	entities := nlu.Normalize(parsed.Entities, lang)

	resp := s.execute(ctx, parsed.Intent, entities, lang)

	telemetry.VoiceLatency.Observe(time.Since(start).Seconds())
	telemetry.VoiceCommandsTotal.WithLabelValues(string(resp.Intent), responseStatus(resp)).Inc()

	s.log.Info("Voice command handled",
		zap.String("intent", string(resp.Intent)),
		zap.String("source", string(parsed.Source)),
		zap.String("language", string(lang)),
		zap.Bool("ok", resp.OK),
		zap.Duration("elapsed", time.Since(start)))

	s.recorder.Record(req, resp)
	return resp
}

// parse runs the NLU stage: cache, then the model parser, then the rules
// parser. The fallback is a one-shot degrade, not a retry loop.
func (s *Service) parse(ctx context.Context, req domain.TranscriptRequest, lang domain.Language) domain.ParseResult {
	key := parseCacheKey(req, lang)
	if cached, ok := s.cachedParse(ctx, key); ok {
		telemetry.ParseCacheHitsTotal.Inc()
		return cached
	}

	var (
		result domain.ParseResult
		err    error
	)
	if s.primary != nil {
		result, err = s.primary.Parse(ctx, req, lang)
		if err != nil {
			var provErr *domain.NluProviderError
			if !errors.As(err, &provErr) {
				s.log.Error("Primary parser returned unexpected error class", zap.Error(err))
			}
			telemetry.NLUFallbacksTotal.Inc()
			s.log.Warn("Model parser degraded to rules", zap.Error(err))
			result, _ = s.fallback.Parse(ctx, req, lang)
		}
	} else {
		result, _ = s.fallback.Parse(ctx, req, lang)
	}

	s.storeParse(ctx, key, result)
	return result
}

func (s *Service) execute(ctx context.Context, intent domain.Intent, entities domain.EntitySet, lang domain.Language) domain.Response {
	validated, err := nlu.Validate(intent, entities)
	if err != nil {
		return s.clarify(intent, entities, err, lang)
	}

	result, err := s.registry.Dispatch(ctx, validated)
	if err != nil {
		if domain.IsValidationError(err) {
			return s.clarify(intent, entities, err, lang)
		}
		var handlerErr *domain.HandlerError
		if errors.As(err, &handlerErr) {
			return domain.Response{
				OK:       false,
				Intent:   intent,
				Entities: entities,
				Result:   map[string]string{"error": string(handlerErr.Kind)},
				Speech:   s.renderer.RenderError(handlerErr.Kind, lang),
			}
		}
		s.log.Error("Handler failed", zap.String("intent", string(intent)), zap.Error(err))
		return domain.Response{
			OK:       false,
			Intent:   intent,
			Entities: entities,
			Result:   map[string]string{"error": "internal"},
			Speech:   s.renderer.Generic(lang),
		}
	}

	return domain.Response{
		OK:       true,
		Intent:   intent,
		Entities: entities,
		Result:   result,
		Speech:   s.render(intent, result, lang),
	}
}

// clarify translates a validation failure into a successful-but-unresolved
// response: ok stays true, the parsed intent is preserved and the speech asks
// for the missing detail.
func (s *Service) clarify(intent domain.Intent, entities domain.EntitySet, cause error, lang domain.Language) domain.Response {
	result := domain.ClarificationResult{}
	var missing *domain.MissingEntityError
	if errors.As(cause, &missing) {
		result.Missing = missing.Missing
	}

	return domain.Response{
		OK:       true,
		Intent:   intent,
		Entities: entities,
		Result:   result,
		Speech:   s.render(intent, result, lang),
	}
}

// render wraps the renderer's defect policy: a RendererError is a programming
// bug, so it panics in development builds (zap.DPanic) and degrades to the
// generic localized sentence in production.
func (s *Service) render(intent domain.Intent, result domain.HandlerResult, lang domain.Language) string {
	sentence, err := s.renderer.Render(intent, result, lang)
	if err != nil {
		s.log.DPanic("Renderer defect",
			zap.String("intent", string(intent)),
			zap.String("language", string(lang)),
			zap.Error(err))
		return s.renderer.Generic(lang)
	}
	return sentence
}

func (s *Service) cachedParse(ctx context.Context, key string) (domain.ParseResult, bool) {
	if s.cache == nil {
		return domain.ParseResult{}, false
	}
	raw, err := s.cache.Get(ctx, key)
	if err != nil || raw == "" {
		return domain.ParseResult{}, false
	}
	var result domain.ParseResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return domain.ParseResult{}, false
	}
	return result, true
}

func (s *Service) storeParse(ctx context.Context, key string, result domain.ParseResult) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, string(raw), s.cacheTTL); err != nil {
		s.log.Debug("Failed to cache parse result", zap.Error(err))
	}
}

// parseCacheKey hashes everything that influences a parse: language,
// transcript and the device entities (which override extracted ones, so two
// requests differing only in device entities must not share an entry).
func parseCacheKey(req domain.TranscriptRequest, lang domain.Language) string {
	var b strings.Builder
	b.WriteString(string(lang))
	b.WriteByte('|')
	b.WriteString(req.Transcript)

	keys := make([]string, 0, len(req.Entities))
	for k := range req.Entities {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b.WriteByte('|')
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(req.Entities[k])
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "parse:" + hex.EncodeToString(sum[:])
}

func responseStatus(resp domain.Response) string {
	if !resp.OK {
		return "error"
	}
	if _, ok := resp.Result.(domain.ClarificationResult); ok {
		return "clarification"
	}
	return "ok"
}
