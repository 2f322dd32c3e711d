package generator

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/config"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/influxdb"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/infrastructure/logging"
	"github.com/vasiliykireev/multi-lang-for-miot-home-assistant-integration/internal/lang"
)

const testURN = "urn:miot-spec-v2:device:air-conditioner:0000A004:test:1"
const normalizedURN = "urn:miot-spec-v2:device:air-conditioner:0000A004:test"

// stubFetcher serves a fixed document or error.
type stubFetcher struct {
	doc     any
	err     error
	lastURN string
}

func (f *stubFetcher) Fetch(_ context.Context, urn string) (any, error) {
	f.lastURN = urn
	if f.err != nil {
		return nil, f.err
	}
	return f.doc, nil
}

// stubRepo records upserts in memory.
type stubRepo struct {
	mu      sync.Mutex
	records []lang.Record
	err     error
}

func (r *stubRepo) Upsert(_ context.Context, rec *lang.Record) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *rec)
	return nil
}

func (r *stubRepo) Get(context.Context, string, string) (*lang.Record, error) {
	return nil, lang.ErrNotFound
}
func (r *stubRepo) ListByURN(context.Context, string) ([]lang.Record, error) {
	return nil, lang.ErrNotFound
}
func (r *stubRepo) List(context.Context) ([]lang.Record, error) { return nil, nil }
func (r *stubRepo) DeleteByURN(context.Context, string) error   { return lang.ErrNotFound }

// stubPublisher records published messages.
type stubPublisher struct {
	mu       sync.Mutex
	topics   []string
	payloads [][]byte
	err      error
}

func (p *stubPublisher) PublishRetained(topic string, payload []byte) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.topics = append(p.topics, topic)
	p.payloads = append(p.payloads, payload)
	return nil
}

// stubMetrics records run metrics.
type stubMetrics struct {
	mu      sync.Mutex
	metrics []influxdb.RunMetric
}

func (m *stubMetrics) WriteRunMetric(metric influxdb.RunMetric) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = append(m.metrics, metric)
}

func testDoc() any {
	raw := `{"services":[{"siid":2,"description":"Air Conditioner","properties":[
		{"piid":2,"description":"Mode","value-list":[
			{"value":0,"description":"Cool"},{"value":1,"description":"Dry"}
		]}
	]}]}`
	var doc any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		panic(err)
	}
	return doc
}

func testService(t *testing.T, fetcher Fetcher, repo lang.Repository, pub Publisher, metrics MetricsRecorder) *Service {
	t.Helper()
	cfg := config.Default()
	cfg.Output.Dir = t.TempDir()
	return New(cfg, fetcher, repo, pub, metrics, logging.Default())
}

func TestService_Generate(t *testing.T) {
	fetcher := &stubFetcher{doc: testDoc()}
	repo := &stubRepo{}
	pub := &stubPublisher{}
	metrics := &stubMetrics{}
	svc := testService(t, fetcher, repo, pub, metrics)

	result, err := svc.Generate(context.Background(), Request{URN: testURN, Lang: "ru"})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.URN != normalizedURN {
		t.Errorf("URN = %q, want normalized %q", result.URN, normalizedURN)
	}
	if fetcher.lastURN != normalizedURN {
		t.Errorf("fetched urn = %q, want %q", fetcher.lastURN, normalizedURN)
	}
	if result.KeyCount != 4 {
		t.Errorf("KeyCount = %d, want 4", result.KeyCount)
	}
	if result.Source != "http" {
		t.Errorf("Source = %q, want %q", result.Source, "http")
	}

	flat := result.Document[normalizedURN]["ru"]
	if flat["service:002"] != "Air Conditioner" {
		t.Errorf("flat table wrong: %v", flat)
	}

	// File written
	if result.Path == "" {
		t.Fatal("no output path in result")
	}
	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("reading output file: %v", err)
	}
	var onDisk lang.Document
	if err := json.Unmarshal(data, &onDisk); err != nil {
		t.Fatalf("output file is not valid JSON: %v", err)
	}

	// Catalog upserted
	if len(repo.records) != 1 {
		t.Fatalf("got %d catalog records, want 1", len(repo.records))
	}
	if repo.records[0].URN != normalizedURN || repo.records[0].KeyCount != 4 {
		t.Errorf("catalog record = %+v", repo.records[0])
	}

	// Result published, retained, under the model topic
	if len(pub.topics) != 1 {
		t.Fatalf("got %d publications, want 1", len(pub.topics))
	}
	if pub.topics[0] != "miotlang/translations/test" {
		t.Errorf("publish topic = %q", pub.topics[0])
	}

	// Metric recorded
	if len(metrics.metrics) != 1 {
		t.Fatalf("got %d metrics, want 1", len(metrics.metrics))
	}
	if metrics.metrics[0].KeyCount != 4 || metrics.metrics[0].Source != "http" {
		t.Errorf("metric = %+v", metrics.metrics[0])
	}
}

func TestService_Generate_DefaultLang(t *testing.T) {
	svc := testService(t, &stubFetcher{doc: testDoc()}, nil, nil, nil)

	result, err := svc.Generate(context.Background(), Request{URN: testURN})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Lang != "ru" {
		t.Errorf("Lang = %q, want configured default %q", result.Lang, "ru")
	}
}

func TestService_Generate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spec.json")
	raw, _ := json.Marshal(testDoc())
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	fetcher := &stubFetcher{err: errors.New("registry must not be called")}
	svc := testService(t, fetcher, nil, nil, nil)

	result, err := svc.Generate(context.Background(), Request{URN: testURN, FilePath: path})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if result.Source != "file" {
		t.Errorf("Source = %q, want %q", result.Source, "file")
	}
	if fetcher.lastURN != "" {
		t.Error("registry was called despite file source")
	}
}

func TestService_Generate_EmptyURN(t *testing.T) {
	svc := testService(t, &stubFetcher{doc: testDoc()}, nil, nil, nil)

	if _, err := svc.Generate(context.Background(), Request{URN: "  "}); !errors.Is(err, ErrEmptyURN) {
		t.Errorf("error = %v, want ErrEmptyURN", err)
	}
}

func TestService_Generate_FetchError(t *testing.T) {
	svc := testService(t, &stubFetcher{err: errors.New("boom")}, nil, nil, nil)

	_, err := svc.Generate(context.Background(), Request{URN: testURN})
	if !errors.Is(err, ErrLoadFailed) {
		t.Errorf("error = %v, want ErrLoadFailed", err)
	}
}

func TestService_Generate_SkipFlags(t *testing.T) {
	fetcher := &stubFetcher{doc: testDoc()}
	repo := &stubRepo{}
	pub := &stubPublisher{}
	svc := testService(t, fetcher, repo, pub, nil)

	result, err := svc.Generate(context.Background(), Request{
		URN:        testURN,
		SkipFile:   true,
		SkipStore:  true,
		SkipNotify: true,
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}

	if result.Path != "" {
		t.Errorf("Path = %q, want empty with SkipFile", result.Path)
	}
	if len(repo.records) != 0 {
		t.Error("catalog written despite SkipStore")
	}
	if len(pub.topics) != 0 {
		t.Error("result published despite SkipNotify")
	}
}

func TestService_Generate_CollaboratorFailuresDoNotFailRun(t *testing.T) {
	fetcher := &stubFetcher{doc: testDoc()}
	repo := &stubRepo{err: errors.New("database locked")}
	pub := &stubPublisher{err: errors.New("broker gone")}
	svc := testService(t, fetcher, repo, pub, nil)

	result, err := svc.Generate(context.Background(), Request{URN: testURN})
	if err != nil {
		t.Fatalf("Generate() error = %v, collaborator failures must not fail the run", err)
	}
	if result.KeyCount != 4 {
		t.Errorf("KeyCount = %d, want 4", result.KeyCount)
	}
}

func TestService_HandleGenerateRequest(t *testing.T) {
	fetcher := &stubFetcher{doc: testDoc()}
	repo := &stubRepo{}
	pub := &stubPublisher{}
	svc := testService(t, fetcher, repo, pub, nil)

	t.Run("valid request", func(t *testing.T) {
		payload := []byte(`{"urn":"` + testURN + `","lang":"en"}`)
		if err := svc.handleGenerateRequest("miotlang/generate/request", payload); err != nil {
			t.Fatalf("handleGenerateRequest() error = %v", err)
		}
		if len(repo.records) != 1 || repo.records[0].Lang != "en" {
			t.Errorf("catalog records = %+v", repo.records)
		}
		if len(pub.topics) != 1 {
			t.Errorf("got %d publications, want 1", len(pub.topics))
		}
	})

	t.Run("malformed payload", func(t *testing.T) {
		err := svc.handleGenerateRequest("miotlang/generate/request", []byte(`{broken`))
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})

	t.Run("missing urn", func(t *testing.T) {
		err := svc.handleGenerateRequest("miotlang/generate/request", []byte(`{"lang":"en"}`))
		if !errors.Is(err, ErrInvalidRequest) {
			t.Errorf("error = %v, want ErrInvalidRequest", err)
		}
	})
}
