package config

import "time"

const (
	// MaxBatchConcurrency caps BATCH_CONCURRENCY. Each envelope holds one
	// outbound Leantime request, so this also bounds upstream parallelism.
	MaxBatchConcurrency = 32

	// DefaultLeantimeTimeout bounds one Leantime round trip.
	DefaultLeantimeTimeout = 30 * time.Second

	// DefaultLogMaxFiles is how many rotated log files LOG_DIR keeps.
	DefaultLogMaxFiles = 10
)
