package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	VoiceCommandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retailmind_voice_commands_total",
		Help: "Voice commands processed, by intent and outcome",
	}, []string{"intent", "status"})

	VoiceLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "retailmind_voice_latency_seconds",
		Help:    "End-to-end voice command processing latency",
		Buckets: prometheus.DefBuckets,
	})

	NLUFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retailmind_nlu_fallbacks_total",
		Help: "Times the model parser failed and the rules parser answered",
	})

	ParseCacheHitsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "retailmind_parse_cache_hits_total",
		Help: "Parse results served from cache",
	})

	VoiceLogWritesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "retailmind_voice_log_writes_total",
		Help: "Voice interaction log writes, by outcome",
	}, []string{"status"})

	DatabaseLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "retailmind_database_latency_seconds",
		Help:    "Repository query latency",
		Buckets: prometheus.DefBuckets,
	})
)
