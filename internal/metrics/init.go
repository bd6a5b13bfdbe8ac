package metrics

// InitializeMetrics pre-populates all expected label combinations so that
// every metric is exported from the first Prometheus scrape.
// Call this once at startup after metric registration.
func InitializeMetrics() {
	for _, result := range []string{"hit", "miss"} {
		CacheLookupsTotal.WithLabelValues(result)
	}

	for _, stage := range []string{"script", "mirror", "raw"} {
		TransferDuration.WithLabelValues(stage)
		for _, result := range []string{"confirmed", "unconfirmed"} {
			TransferAttemptsTotal.WithLabelValues(stage, result)
		}
	}
	for _, outcome := range []string{"already_present", "copied", "failed"} {
		TransfersTotal.WithLabelValues(outcome)
	}

	for _, status := range []string{"success", "error"} {
		RendersTotal.WithLabelValues(status)
	}

	for _, kind := range []string{"switch", "character"} {
		BatchDuration.WithLabelValues(kind)
		for _, outcome := range []string{"cached", "built", "skipped"} {
			BatchItemsTotal.WithLabelValues(kind, outcome)
		}
	}

	volumes := []string{"cache", "staging", "unknown"}
	for _, vol := range volumes {
		for _, op := range []string{"stat", "open", "read", "write", "readdir"} {
			FilesystemOperationDuration.WithLabelValues(vol, op)
			FilesystemOperationErrors.WithLabelValues(vol, op)
			FilesystemRetryAttempts.WithLabelValues(op, vol)
			FilesystemRetrySuccess.WithLabelValues(op, vol)
			FilesystemRetryFailures.WithLabelValues(op, vol)
			FilesystemStaleErrors.WithLabelValues(op, vol)
			FilesystemRetryDuration.WithLabelValues(op, vol)
		}
	}
}
