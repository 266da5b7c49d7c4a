package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// ToolCalls счетчик вызовов инструментов
	ToolCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tool_calls_total",
			Help: "Общее количество вызовов инструментов",
		},
		[]string{"tool_name", "status"},
	)

	// CalculationErrors счетчик ошибок расчетов
	CalculationErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "calculation_errors_total",
			Help: "Количество ошибок расчетов",
		},
		[]string{"tool_name", "error_type"},
	)

	// APICalls счетчик обращений к сервису по каналам доставки
	APICalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_calls_total",
			Help: "Обращения к расчётам через HTTP и инструменты",
		},
		[]string{"service", "endpoint", "status"},
	)

	// ArtifactCache счетчик попаданий в кэш файлов xlsx/pdf
	ArtifactCache = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "artifact_cache_total",
			Help: "Обращения к кэшу сгенерированных файлов",
		},
		[]string{"kind", "result"},
	)

	// LotLookups счетчик поиска лотов
	LotLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lot_lookups_total",
			Help: "Поиск лотов по коду и площади",
		},
		[]string{"by", "result"},
	)
)
