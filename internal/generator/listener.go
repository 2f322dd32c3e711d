package generator

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/mqtt"
)

// generateRequestTimeout bounds one broker-initiated generation run.
const generateRequestTimeout = 60 * time.Second

// generateRequest is the JSON payload accepted on miotlang/generate/request.
type generateRequest struct {
	URN  string `json:"urn"`
	Lang string `json:"lang"`
}

// Listen subscribes the service to the generation request topic. Incoming
// requests run the full pipeline; the result reaches subscribers through
// the usual translation result topic, so the request itself gets no direct
// reply.
//
// Parameters:
//   - client: Connected broker client
//   - qos: QoS level for the subscription
//
// Returns:
//   - error: If the subscription fails
func (s *Service) Listen(client *mqtt.Client, qos byte) error {
	topic := mqtt.Topics{}.GenerateRequest()
	if err := client.Subscribe(topic, qos, s.handleGenerateRequest); err != nil {
		return fmt.Errorf("subscribing to generation requests: %w", err)
	}

	s.logger.Info("listening for generation requests", "topic", topic)
	return nil
}

// handleGenerateRequest processes one broker generation request.
// Returned errors are logged by the broker client wrapper.
func (s *Service) handleGenerateRequest(topic string, payload []byte) error {
	var req generateRequest
	if err := json.Unmarshal(payload, &req); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRequest, err)
	}
	if req.URN == "" {
		return fmt.Errorf("%w: missing urn", ErrInvalidRequest)
	}

	ctx, cancel := context.WithTimeout(context.Background(), generateRequestTimeout)
	defer cancel()

	// Broker requests write no local file; consumers get the document from
	// the result topic and the catalog.
	_, err := s.Generate(ctx, Request{
		URN:      req.URN,
		Lang:     req.Lang,
		SkipFile: true,
	})
	if err != nil {
		return fmt.Errorf("generating from broker request: %w", err)
	}

	return nil
}
