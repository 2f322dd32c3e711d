// Package influxdb records translation run metrics in InfluxDB v2.
//
// Each completed generation run writes one point to the translation_run
// measurement: the device URN, language and source as tags, key count and
// phase durations as fields. Writes are non-blocking and batched; a broker
// outage never fails a generation run.
//
// The whole subsystem is optional. When influxdb.enabled is false, Connect
// returns ErrDisabled and callers run without metrics.
package influxdb
