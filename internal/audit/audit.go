// Package audit emits one event per evaluation run to a configured sink.
// The trail is fire-and-forget: sink errors are logged and never fail or
// block an evaluation.
package audit

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/lucsky/cuid"
)

// Sink is a destination for audit events.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// Event summarises one evaluation run. No profile contents are recorded,
// only bucket counts and timing.
type Event struct {
	RunID         string `json:"run_id"`
	Timestamp     int64  `json:"timestamp"`
	Safe          int    `json:"safe"`
	CanBeModified int    `json:"can_be_modified"`
	Filtered      int    `json:"filtered"`
	ElapsedMs     int64  `json:"elapsed_ms"`
	PerAllergen   bool   `json:"per_allergen"`
}

// Recorder writes evaluation events to a sink under a fixed topic.
type Recorder struct {
	sink  Sink
	topic string
}

func NewRecorder(sink Sink, topic string) *Recorder {
	return &Recorder{sink: sink, topic: topic}
}

// Record emits one event for a finished run.
func (r *Recorder) Record(report *models.Report, elapsed time.Duration) {
	if r == nil || r.sink == nil {
		return
	}
	event := Event{
		RunID:         cuid.New(),
		Timestamp:     time.Now().Unix(),
		Safe:          len(report.Safe),
		CanBeModified: len(report.CanBeModified),
		Filtered:      len(report.Filtered),
		ElapsedMs:     elapsed.Milliseconds(),
		PerAllergen:   report.SafePerAllergen != nil,
	}
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("failed to marshal audit event: %v", err)
		return
	}
	if err := r.sink.WriteMessage(r.topic, msg); err != nil {
		log.Printf("failed to write audit event: %v", err)
	}
}

func (r *Recorder) Close() error {
	if r == nil || r.sink == nil {
		return nil
	}
	return r.sink.Close()
}

type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	output := fmt.Sprintf("[%s] %s\n", topic, string(msg))
	_, err := os.Stdout.Write([]byte(output))
	if err != nil {
		return fmt.Errorf("failed to write to stdout: %w", err)
	}
	_ = os.Stdout.Sync()
	return nil
}

func (c *ConsoleSink) Close() error { return nil }

// JSONSink appends newline-delimited events to date-partitioned files.
type JSONSink struct {
	basePath string
	folder   string
	files    map[string]*os.File
}

func NewJSONSink(basePath, folder string) *JSONSink {
	return &JSONSink{
		basePath: basePath,
		folder:   folder,
		files:    make(map[string]*os.File),
	}
}

func (j *JSONSink) WriteMessage(topic string, msg []byte) error {
	year, month, day := time.Now().Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)
	fullPath := filepath.Join(j.basePath, j.folder, topic, partitionPath)

	if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
		return err
	}

	fileKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	file, ok := j.files[fileKey]
	if !ok {
		var err error
		file, err = os.OpenFile(filepath.Join(fullPath, "data.json"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return err
		}
		j.files[fileKey] = file
	}

	if _, err := file.Write(msg); err != nil {
		return err
	}
	_, err := file.WriteString("\n")
	return err
}

func (j *JSONSink) Close() error {
	for _, file := range j.files {
		if err := file.Close(); err != nil {
			return err
		}
	}
	return nil
}

// FromConfig builds the configured audit recorder, or nil when auditing is
// disabled. Kafka takes precedence over the file formats.
func FromConfig(cfg *models.Config) (*Recorder, error) {
	if !cfg.AuditEnabled {
		return nil, nil
	}
	if cfg.KafkaEnabled {
		producer, err := NewSaramaSink(cfg.KafkaBrokerList)
		if err != nil {
			return nil, err
		}
		return NewRecorder(producer, cfg.AuditTopic), nil
	}
	switch cfg.AuditFormat {
	case "", "console":
		return NewRecorder(&ConsoleSink{}, cfg.AuditTopic), nil
	case "json":
		return NewRecorder(NewJSONSink(cfg.AuditPath, cfg.AuditFolder), cfg.AuditTopic), nil
	case "parquet":
		sink, err := NewParquetSink(cfg)
		if err != nil {
			return nil, err
		}
		return NewRecorder(sink, cfg.AuditTopic), nil
	default:
		return nil, fmt.Errorf("unsupported audit format: %s", cfg.AuditFormat)
	}
}
