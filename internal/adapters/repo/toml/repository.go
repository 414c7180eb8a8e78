package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/astropost/internal/domain"
	"github.com/bnema/astropost/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
)

const (
	historyPathKey     = "history.path"
	historyKeepKey     = "history.keep"
	defaultHistoryPath = "astropost-history.toml"
	defaultHistoryKeep = 60
	historyFileMode    = 0o600
	historyDirMode     = 0o700
	tempFilePattern    = ".history-*.toml.tmp"
)

type Repository struct {
	historyPath string
	keep        int
	mu          *sync.RWMutex
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.CycleRepository = (*Repository)(nil)

func NewRepository(cfg *viper.Viper) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}

	cfg.SetDefault(historyPathKey, defaultHistoryPath)
	cfg.SetDefault(historyKeepKey, defaultHistoryKeep)

	historyPath := cfg.GetString(historyPathKey)
	if historyPath == "" {
		return nil, errors.New("history path is empty")
	}
	historyPath, err := normalizeHistoryPath(historyPath)
	if err != nil {
		return nil, err
	}

	keep := cfg.GetInt(historyKeepKey)
	if keep <= 0 {
		return nil, fmt.Errorf("history keep must be positive, got %d", keep)
	}

	return &Repository{historyPath: historyPath, keep: keep, mu: lockForPath(historyPath)}, nil
}

func (r *Repository) Path() string {
	return r.historyPath
}

func (r *Repository) Append(ctx context.Context, record domain.CycleRecord) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if record.ID == "" {
		return errors.New("cycle record id is empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	file, err := r.readSchema()
	if err != nil {
		return err
	}

	file.Cycles = append(file.Cycles, toSchema(record))
	if extra := len(file.Cycles) - r.keep; extra > 0 {
		file.Cycles = file.Cycles[extra:]
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	return r.writeSchema(file)
}

// List returns the retained cycles, oldest first.
func (r *Repository) List(ctx context.Context) ([]domain.CycleRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	file, err := r.readSchema()
	if err != nil {
		return nil, err
	}

	records := make([]domain.CycleRecord, 0, len(file.Cycles))
	for _, entry := range file.Cycles {
		records = append(records, fromSchema(entry))
	}

	return records, nil
}

func (r *Repository) Last(ctx context.Context) (domain.CycleRecord, bool, error) {
	records, err := r.List(ctx)
	if err != nil {
		return domain.CycleRecord{}, false, err
	}
	if len(records) == 0 {
		return domain.CycleRecord{}, false, nil
	}

	return records[len(records)-1], true, nil
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.historyPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			file := fileSchema{}
			file.applyDefaults()
			return file, nil
		}
		return fileSchema{}, fmt.Errorf("read history file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode history file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeHistoryPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve history path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.historyPath), historyDirMode); err != nil {
		return fmt.Errorf("create history directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode history file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.historyPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp history file: %w", err)
	}

	if err := tempFile.Chmod(historyFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp history file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp history file: %w", err)
	}

	if err := os.Rename(tempName, r.historyPath); err != nil {
		return fmt.Errorf("replace history file: %w", err)
	}

	cleanup = false
	return nil
}

func toSchema(record domain.CycleRecord) cycleSchema {
	failures := make([]failureSchema, 0, len(record.Failures))
	for _, failure := range record.Failures {
		failures = append(failures, failureSchema{Topic: string(failure.Topic), Reason: failure.Reason})
	}

	return cycleSchema{
		ID:         record.ID,
		Trigger:    string(record.Trigger),
		Mode:       string(record.Mode),
		StartedAt:  formatTime(record.StartedAt),
		FinishedAt: formatTime(record.FinishedAt),
		Outcome:    string(record.Outcome),
		Reason:     record.Reason,
		Generated:  topicStrings(record.Generated),
		Published:  topicStrings(record.Published),
		Failures:   failures,
	}
}

func fromSchema(entry cycleSchema) domain.CycleRecord {
	var failures []domain.PublishFailure
	for _, failure := range entry.Failures {
		failures = append(failures, domain.PublishFailure{Topic: domain.Topic(failure.Topic), Reason: failure.Reason})
	}

	return domain.CycleRecord{
		ID:         entry.ID,
		Trigger:    domain.Trigger(entry.Trigger),
		Mode:       domain.PublishMode(entry.Mode),
		StartedAt:  parseTime(entry.StartedAt),
		FinishedAt: parseTime(entry.FinishedAt),
		Outcome:    domain.CycleOutcome(entry.Outcome),
		Reason:     entry.Reason,
		Generated:  parseTopics(entry.Generated),
		Published:  parseTopics(entry.Published),
		Failures:   failures,
	}
}

func topicStrings(topics []domain.Topic) []string {
	values := make([]string, 0, len(topics))
	for _, topic := range topics {
		values = append(values, string(topic))
	}
	return values
}

func parseTopics(values []string) []domain.Topic {
	topics := make([]domain.Topic, 0, len(values))
	for _, value := range values {
		topics = append(topics, domain.Topic(value))
	}
	return topics
}

func parseTime(raw string) time.Time {
	if raw == "" {
		return time.Time{}
	}

	parsed, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}
	}

	return parsed
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}

	return value.Format(time.RFC3339)
}
