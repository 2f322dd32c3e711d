package mqtt

import (
	"context"
	"errors"
	"strings"
	"testing"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
)

func testConfig() config.MQTTConfig {
	return config.MQTTConfig{
		Enabled: true,
		Broker: config.MQTTBrokerConfig{
			Host:     "localhost",
			Port:     1883,
			ClientID: "miotlang-test",
		},
		QoS: 1,
		Reconnect: config.MQTTReconnectConfig{
			InitialDelay: 1,
			MaxDelay:     60,
		},
	}
}

// disconnectedClient returns a client that was never connected, for
// exercising validation paths without a broker.
func disconnectedClient() *Client {
	cfg := testConfig()
	return &Client{
		cfg:           cfg,
		client:        pahomqtt.NewClient(buildClientOptions(cfg)),
		subscriptions: make(map[string]subscription),
	}
}

func TestTopics(t *testing.T) {
	topics := Topics{}

	tests := []struct {
		name string
		got  string
		want string
	}{
		{"system status", topics.SystemStatus(), "miotlang/system/status"},
		{"generate request", topics.GenerateRequest(), "miotlang/generate/request"},
		{"translation result", topics.TranslationResult("dmaker-p5"), "miotlang/translations/dmaker-p5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestModelSlug(t *testing.T) {
	tests := []struct {
		name string
		urn  string
		want string
	}{
		{"normalized urn", "urn:miot-spec-v2:device:fan:0000A005:dmaker-p5", "dmaker-p5"},
		{"single segment", "dmaker-p5", "dmaker-p5"},
		{"empty", "", "unknown"},
		{"trailing colon", "urn:miot-spec-v2:device:fan:", "unknown"},
		{"reserved characters replaced", "urn:x:a/b+c#d", "a-b-c-d"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ModelSlug(tt.urn); got != tt.want {
				t.Errorf("ModelSlug(%q) = %q, want %q", tt.urn, got, tt.want)
			}
		})
	}
}

func TestBuildClientOptions(t *testing.T) {
	t.Run("plain tcp broker", func(t *testing.T) {
		opts := buildClientOptions(testConfig())

		if len(opts.Servers) != 1 {
			t.Fatalf("got %d brokers, want 1", len(opts.Servers))
		}
		if got := opts.Servers[0].String(); got != "tcp://localhost:1883" {
			t.Errorf("broker = %q, want tcp://localhost:1883", got)
		}
		if opts.ClientID != "miotlang-test" {
			t.Errorf("client id = %q", opts.ClientID)
		}
		if !opts.AutoReconnect {
			t.Error("auto-reconnect not enabled")
		}
	})

	t.Run("tls broker uses ssl scheme", func(t *testing.T) {
		cfg := testConfig()
		cfg.Broker.TLS = true
		opts := buildClientOptions(cfg)

		if got := opts.Servers[0].Scheme; got != "ssl" {
			t.Errorf("scheme = %q, want ssl", got)
		}
		if opts.TLSConfig == nil {
			t.Fatal("TLS config not set")
		}
	})

	t.Run("credentials applied when present", func(t *testing.T) {
		cfg := testConfig()
		cfg.Auth.Username = "user"
		cfg.Auth.Password = "pass"
		opts := buildClientOptions(cfg)

		if opts.Username != "user" || opts.Password != "pass" {
			t.Error("credentials not applied")
		}
	})
}

func TestStatusPayloads(t *testing.T) {
	online := buildOnlinePayload("miotlang-test")
	if !strings.Contains(online, `"status":"online"`) {
		t.Errorf("online payload = %s", online)
	}
	if !strings.Contains(online, `"client_id":"miotlang-test"`) {
		t.Errorf("online payload missing client id: %s", online)
	}

	offline := buildOfflinePayload("miotlang-test")
	if !strings.Contains(offline, `"reason":"graceful_shutdown"`) {
		t.Errorf("offline payload = %s", offline)
	}
}

func TestPublish_Validation(t *testing.T) {
	c := disconnectedClient()

	tests := []struct {
		name    string
		topic   string
		payload []byte
		qos     byte
		wantErr error
	}{
		{"empty topic", "", []byte("x"), 1, ErrInvalidTopic},
		{"invalid qos", "miotlang/test", []byte("x"), 3, ErrInvalidQoS},
		{"oversized payload", "miotlang/test", make([]byte, maxPayloadSize+1), 1, ErrPublishFailed},
		{"not connected", "miotlang/test", []byte("x"), 1, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Publish(tt.topic, tt.payload, tt.qos, false)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Publish() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSubscribe_Validation(t *testing.T) {
	c := disconnectedClient()
	handler := func(topic string, payload []byte) error { return nil }

	tests := []struct {
		name    string
		topic   string
		qos     byte
		handler MessageHandler
		wantErr error
	}{
		{"empty topic", "", 1, handler, ErrInvalidTopic},
		{"invalid qos", "miotlang/test", 5, handler, ErrInvalidQoS},
		{"nil handler", "miotlang/test", 1, nil, ErrSubscribeFailed},
		{"not connected", "miotlang/test", 1, handler, ErrNotConnected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := c.Subscribe(tt.topic, tt.qos, tt.handler)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Subscribe() error = %v, want %v", err, tt.wantErr)
			}
		})
	}

	if c.SubscriptionCount() != 0 {
		t.Errorf("failed subscribes were tracked: count = %d", c.SubscriptionCount())
	}
}

func TestUnsubscribe_Validation(t *testing.T) {
	c := disconnectedClient()

	if err := c.Unsubscribe(""); !errors.Is(err, ErrInvalidTopic) {
		t.Errorf("empty topic: error = %v, want ErrInvalidTopic", err)
	}
	if err := c.Unsubscribe("miotlang/test"); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected: error = %v, want ErrNotConnected", err)
	}
}

func TestHealthCheck(t *testing.T) {
	c := disconnectedClient()

	if err := c.HealthCheck(context.Background()); !errors.Is(err, ErrNotConnected) {
		t.Errorf("disconnected health check: error = %v, want ErrNotConnected", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := c.HealthCheck(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("cancelled context: error = %v, want context.Canceled", err)
	}
}

func TestHasSubscription(t *testing.T) {
	c := disconnectedClient()

	if c.HasSubscription("miotlang/generate/request") {
		t.Error("HasSubscription() true on empty tracking")
	}

	c.subscriptions["miotlang/generate/request"] = subscription{
		topic: "miotlang/generate/request",
		qos:   1,
	}

	if !c.HasSubscription("miotlang/generate/request") {
		t.Error("HasSubscription() false for tracked topic")
	}
	if c.SubscriptionCount() != 1 {
		t.Errorf("SubscriptionCount() = %d, want 1", c.SubscriptionCount())
	}
}
