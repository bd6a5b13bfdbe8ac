package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetricsExist(t *testing.T) {
	tests := []struct {
		name   string
		metric interface{}
	}{
		{"CacheLookupsTotal", CacheLookupsTotal},
		{"CacheLookupFaults", CacheLookupFaults},
		{"CacheEntries", CacheEntries},
		{"TransferAttemptsTotal", TransferAttemptsTotal},
		{"TransferDuration", TransferDuration},
		{"TransfersTotal", TransfersTotal},
		{"RendersTotal", RendersTotal},
		{"RenderDuration", RenderDuration},
		{"BatchItemsTotal", BatchItemsTotal},
		{"BatchDuration", BatchDuration},
		{"HTTPRequestsTotal", HTTPRequestsTotal},
		{"HTTPRequestDuration", HTTPRequestDuration},
		{"HTTPRequestsInFlight", HTTPRequestsInFlight},
		{"FilesystemOperationDuration", FilesystemOperationDuration},
		{"FilesystemRetryAttempts", FilesystemRetryAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.metric == nil {
				t.Errorf("%s metric is nil", tt.name)
			}
		})
	}
}

func TestInitializeMetrics(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("InitializeMetrics panicked: %v", r)
		}
	}()
	InitializeMetrics()

	if n := testutil.CollectAndCount(TransferAttemptsTotal); n < 6 {
		t.Errorf("TransferAttemptsTotal has %d series, want at least 6", n)
	}
	if n := testutil.CollectAndCount(BatchItemsTotal); n < 6 {
		t.Errorf("BatchItemsTotal has %d series, want at least 6", n)
	}
}

func TestFilesystemObserver(t *testing.T) {
	obs := NewFilesystemObserver()

	before := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("cache", "readdir"))
	obs.ObserveOperation("cache", "readdir", 0.01, errors.New("boom"))
	obs.ObserveOperation("cache", "readdir", 0.01, nil)
	after := testutil.ToFloat64(FilesystemOperationErrors.WithLabelValues("cache", "readdir"))
	if after-before != 1 {
		t.Errorf("operation errors increased by %v, want 1", after-before)
	}

	beforeStale := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "cache"))
	obs.ObserveStaleError("stat", "cache")
	obs.ObserveRetryAttempt("stat", "cache")
	obs.ObserveRetrySuccess("stat", "cache")
	obs.ObserveRetryFailure("stat", "cache")
	obs.ObserveRetryDuration("stat", "cache", 0.2)
	if got := testutil.ToFloat64(FilesystemStaleErrors.WithLabelValues("stat", "cache")) - beforeStale; got != 1 {
		t.Errorf("stale errors increased by %v, want 1", got)
	}
}

type staticStats struct{ stats Stats }

func (s staticStats) GetStats() Stats { return s.stats }

func TestCollectorCollect(t *testing.T) {
	c := NewCollector(staticStats{Stats{Collection: "test_set", Entries: 7}}, 0)
	c.collect()

	if got := testutil.ToFloat64(CacheEntries.WithLabelValues("test_set")); got != 7 {
		t.Errorf("CacheEntries = %v, want 7", got)
	}

	empty := NewCollector(nil, 0)
	empty.collect()
}
