package generator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/flatten"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/influxdb"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/logging"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/mqtt"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/lang"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/spec"
)

// Fetcher loads specification documents from a registry.
type Fetcher interface {
	Fetch(ctx context.Context, urn string) (any, error)
}

// Publisher sends finished translation documents to the broker.
// Satisfied by *mqtt.Client.
type Publisher interface {
	PublishRetained(topic string, payload []byte) error
}

// MetricsRecorder records completed run metrics.
// Satisfied by *influxdb.Client.
type MetricsRecorder interface {
	WriteRunMetric(m influxdb.RunMetric)
}

// Request describes one generation run.
type Request struct {
	// URN is the device model URN, versioned or not. Required unless
	// FilePath carries the document.
	URN string

	// Lang is the language tag for the generated document. Empty uses the
	// configured default.
	Lang string

	// FilePath, when set, loads the specification from a local file
	// instead of the registry.
	FilePath string

	// OutputPath overrides the default <urn>.json output location.
	OutputPath string

	// SkipFile suppresses writing the JSON file.
	SkipFile bool

	// SkipStore suppresses the catalog upsert.
	SkipStore bool

	// SkipNotify suppresses the MQTT result publication.
	SkipNotify bool
}

// Result is the outcome of a completed generation run.
type Result struct {
	URN      string        `json:"urn"`
	Lang     string        `json:"lang"`
	KeyCount int           `json:"key_count"`
	Path     string        `json:"path,omitempty"`
	Source   string        `json:"source"`
	Document lang.Document `json:"document"`
	Duration time.Duration `json:"-"`
}

// Service runs translation generation end to end.
type Service struct {
	cfg       *config.Config
	fetcher   Fetcher
	flattener *flatten.Flattener
	writer    *lang.Writer
	repo      lang.Repository
	publisher Publisher
	metrics   MetricsRecorder
	logger    *logging.Logger
}

// New creates a generation service.
//
// Parameters:
//   - cfg: Full application configuration
//   - fetcher: Registry client for specification documents
//   - repo: Catalog repository, or nil to skip persistence
//   - publisher: Broker client, or nil to skip notifications
//   - metrics: Metrics recorder, or nil to skip run metrics
//   - logger: Structured logger
//
// Returns:
//   - *Service: Ready-to-use service
func New(
	cfg *config.Config,
	fetcher Fetcher,
	repo lang.Repository,
	publisher Publisher,
	metrics MetricsRecorder,
	logger *logging.Logger,
) *Service {
	return &Service{
		cfg:       cfg,
		fetcher:   fetcher,
		flattener: flatten.New(flatten.Options{PadWidth: cfg.Flatten.PadWidth}),
		writer:    lang.NewWriter(cfg.Output),
		repo:      repo,
		publisher: publisher,
		metrics:   metrics,
		logger:    logger.With("component", "generator"),
	}
}

// Generate runs one translation generation end to end.
//
// The pipeline is: load specification, flatten, assemble document, write
// JSON file, upsert catalog, publish result, record metrics. The first
// three steps are fatal on error; catalog, broker and metrics failures are
// logged and do not fail the run, so a storage or broker outage never
// blocks translation output.
//
// Parameters:
//   - ctx: Context for cancellation, applied to fetch and persistence
//   - req: Run parameters
//
// Returns:
//   - *Result: Generated document plus run bookkeeping
//   - error: ErrEmptyURN, ErrLoadFailed or a writer error
func (s *Service) Generate(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()

	urn := spec.NormalizeURN(req.URN)
	if urn == "" {
		return nil, ErrEmptyURN
	}

	langTag := strings.TrimSpace(req.Lang)
	if langTag == "" {
		langTag = s.cfg.Flatten.DefaultLang
	}

	// Load
	fetchStart := time.Now()
	doc, source, err := s.load(ctx, urn, req.FilePath)
	if err != nil {
		return nil, err
	}
	fetchDuration := time.Since(fetchStart)

	// Flatten and assemble
	flat := s.flattener.Flatten(doc)
	document, err := lang.NewDocument(urn, langTag, flat)
	if err != nil {
		return nil, err
	}

	result := &Result{
		URN:      urn,
		Lang:     langTag,
		KeyCount: len(flat),
		Source:   source,
		Document: document,
	}

	// Write the JSON file
	if !req.SkipFile {
		path, err := s.writer.Write(document, req.OutputPath)
		if err != nil {
			return nil, err
		}
		result.Path = path
	}

	// Persist, notify, record. None of these fail the run.
	if !req.SkipStore {
		s.store(ctx, result)
	}
	if !req.SkipNotify {
		s.notify(result)
	}

	result.Duration = time.Since(start)
	s.recordMetrics(result, fetchDuration)

	s.logger.Info("translation generated",
		"urn", urn,
		"lang", langTag,
		"keys", result.KeyCount,
		"source", source,
		"duration_ms", result.Duration.Milliseconds(),
	)

	return result, nil
}

// load retrieves the specification document from a file or the registry.
func (s *Service) load(ctx context.Context, urn, filePath string) (doc any, source string, err error) {
	if filePath != "" {
		doc, err = spec.LoadFile(filePath)
		if err != nil {
			return nil, "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
		}
		return doc, "file", nil
	}

	doc, err = s.fetcher.Fetch(ctx, urn)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrLoadFailed, err)
	}
	return doc, "http", nil
}

// store upserts the generated document into the catalog.
func (s *Service) store(ctx context.Context, result *Result) {
	if s.repo == nil {
		return
	}

	serialized, err := s.writer.Marshal(result.Document)
	if err != nil {
		s.logger.Error("serializing document for catalog", "urn", result.URN, "error", err)
		return
	}

	rec := &lang.Record{
		URN:      result.URN,
		Lang:     result.Lang,
		KeyCount: result.KeyCount,
		Document: string(serialized),
	}
	if err := s.repo.Upsert(ctx, rec); err != nil {
		s.logger.Error("storing translation in catalog", "urn", result.URN, "error", err)
	}
}

// notify publishes the generated document to the broker, retained so late
// subscribers see the latest translation per model.
func (s *Service) notify(result *Result) {
	if s.publisher == nil {
		return
	}

	payload, err := s.writer.Marshal(result.Document)
	if err != nil {
		s.logger.Error("serializing document for broker", "urn", result.URN, "error", err)
		return
	}

	topic := mqtt.Topics{}.TranslationResult(mqtt.ModelSlug(result.URN))
	if err := s.publisher.PublishRetained(topic, payload); err != nil {
		s.logger.Warn("publishing translation result", "topic", topic, "error", err)
	}
}

// recordMetrics writes the run metric if a recorder is attached.
func (s *Service) recordMetrics(result *Result, fetchDuration time.Duration) {
	if s.metrics == nil {
		return
	}

	s.metrics.WriteRunMetric(influxdb.RunMetric{
		URN:           result.URN,
		Lang:          result.Lang,
		Source:        result.Source,
		KeyCount:      result.KeyCount,
		FetchDuration: fetchDuration,
		TotalDuration: result.Duration,
	})
}
