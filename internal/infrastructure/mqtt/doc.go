// Package mqtt wraps paho.mqtt.golang for the miotlang broker surface.
//
// miotlang exposes two topics: it listens for generation requests on
// miotlang/generate/request and publishes finished translation documents to
// miotlang/translations/{model}. Service availability is announced on
// miotlang/system/status with a Last Will and Testament, so subscribers can
// tell a crash from a graceful shutdown.
//
// The wrapper adds what raw paho does not provide:
//   - Subscription tracking with automatic restoration after reconnect
//   - Panic recovery around message handlers
//   - Validation of topics, QoS levels and payload sizes
//   - Online/offline status publishing
//
// All methods are safe for concurrent use.
package mqtt
