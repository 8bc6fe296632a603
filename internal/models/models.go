package models

import (
	"math"
	"time"
)

// ProbeResult captures the outcome of a single reachability probe.
type ProbeResult struct {
	Endpoint   string    `json:"endpoint"`
	OK         bool      `json:"ok"`
	StatusCode *int      `json:"status_code,omitempty"`
	LatencyMS  *float64  `json:"latency_ms,omitempty"`
	Error      *string   `json:"error,omitempty"`
	CheckedAt  time.Time `json:"checked_at"`
}

// CycleSnapshot records one monitor cycle: the probe outcome, the restoration
// episode it triggered (nil when the probe succeeded), and whether the
// maintenance pass completed.
type CycleSnapshot struct {
	Probe          ProbeResult `json:"probe"`
	Restored       *bool       `json:"restored,omitempty"`
	MaintenanceRan bool        `json:"maintenance_ran"`
}

// DiskUsage reports capacity statistics for one filesystem, in bytes.
type DiskUsage struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
	Free  uint64 `json:"free"`
}

// PercentUsed returns used capacity as a percentage rounded to two decimals.
func (d DiskUsage) PercentUsed() float64 {
	if d.Total == 0 {
		return 0
	}
	percent := float64(d.Used) / float64(d.Total) * 100
	return math.Round(percent*100) / 100
}
