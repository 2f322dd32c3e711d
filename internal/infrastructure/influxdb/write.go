package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// RunMetric describes one completed translation generation run.
type RunMetric struct {
	// URN is the normalized device URN the run was generated for.
	URN string

	// Lang is the language tag of the generated document.
	Lang string

	// Source is where the specification came from: "http" or "file".
	Source string

	// KeyCount is the number of translation keys in the flat table.
	KeyCount int

	// FetchDuration is the time spent loading the specification.
	FetchDuration time.Duration

	// TotalDuration is the end-to-end run time.
	TotalDuration time.Duration
}

// WriteRunMetric records a completed generation run.
//
// The write is non-blocking; data is batched and sent asynchronously.
// Calls on a disconnected client are dropped silently, so a metrics outage
// never affects generation.
func (c *Client) WriteRunMetric(m RunMetric) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(
		"translation_run",
		map[string]string{
			"urn":    m.URN,
			"lang":   m.Lang,
			"source": m.Source,
		},
		map[string]interface{}{
			"key_count": m.KeyCount,
			"fetch_ms":  m.FetchDuration.Milliseconds(),
			"total_ms":  m.TotalDuration.Milliseconds(),
		},
		time.Now(),
	)

	c.writeAPI.WritePoint(point)
}
