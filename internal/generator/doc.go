// Package generator orchestrates translation generation.
//
// One generation run loads a specification document (registry HTTP fetch or
// local file), flattens it into translation keys, assembles the document,
// writes the JSON file, upserts the SQLite catalog and publishes the result
// over MQTT. The Service is the single entry point shared by the CLI, the
// HTTP API and the MQTT request listener.
//
// Collaborators past the flattener are optional: a nil repository skips
// catalog persistence, a nil publisher skips broker notifications and a nil
// metrics recorder skips InfluxDB. The core fetch-flatten-write path never
// depends on any of them.
package generator
