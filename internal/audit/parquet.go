package audit

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/dinesafe/dinesafe/internal/cloudwriter"
	"github.com/dinesafe/dinesafe/internal/models"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

const eventSchema = `{
  "Tag": "name=event, repetitiontype=REQUIRED",
  "Fields": [
    {"Tag": "name=run_id, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=REQUIRED"},
    {"Tag": "name=timestamp, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=safe, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=can_be_modified, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=filtered, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=elapsed_ms, type=INT64, repetitiontype=REQUIRED"},
    {"Tag": "name=per_allergen, type=BOOLEAN, repetitiontype=REQUIRED"}
  ]
}`

// ParquetSink writes events to date-partitioned parquet files, locally or in
// S3 via the cloud writer.
type ParquetSink struct {
	basePath           string
	folder             string
	mu                 sync.Mutex
	writers            map[string]*writer.JSONWriter
	files              map[string]source.ParquetFile
	cloudWriterFactory cloudwriter.CloudWriterFactory
	cloudBucketName    string
}

func NewParquetSink(config *models.Config) (*ParquetSink, error) {
	p := &ParquetSink{
		basePath: config.AuditPath,
		folder:   config.AuditFolder,
		writers:  make(map[string]*writer.JSONWriter),
		files:    make(map[string]source.ParquetFile),
	}

	if config.CloudStorage.Provider != "" {
		switch config.CloudStorage.Provider {
		case "s3":
			factory, err := cloudwriter.NewS3WriterFactory(config.CloudStorage.Region)
			if err != nil {
				return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
			}
			p.cloudWriterFactory = factory
			p.cloudBucketName = config.CloudStorage.BucketName
		default:
			return nil, fmt.Errorf("unsupported cloud storage provider: %s", config.CloudStorage.Provider)
		}
	}

	return p, nil
}

func (p *ParquetSink) WriteMessage(topic string, msg []byte) error {
	year, month, day := time.Now().Date()
	partitionPath := fmt.Sprintf("year=%d/month=%02d/day=%02d", year, month, day)

	writerKey := fmt.Sprintf("%s_%s", topic, partitionPath)
	p.mu.Lock()
	defer p.mu.Unlock()

	pw, ok := p.writers[writerKey]
	if !ok {
		var err error
		pw, err = p.createNewWriter(writerKey, topic, partitionPath)
		if err != nil {
			return fmt.Errorf("failed to create new writer: %w", err)
		}
	}

	if err := pw.Write(string(msg)); err != nil {
		return fmt.Errorf("failed to write event: %w", err)
	}
	return nil
}

func (p *ParquetSink) createNewWriter(writerKey, topic, partitionPath string) (*writer.JSONWriter, error) {
	var fw source.ParquetFile
	var err error
	if p.cloudWriterFactory != nil {
		objectPath := filepath.Join(p.folder, topic, partitionPath, "data.parquet")
		cw, err := p.cloudWriterFactory.NewWriter(p.cloudBucketName, objectPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud file writer: %w", err)
		}
		fw = newCloudParquetFile(cw)
	} else {
		fullPath := filepath.Join(p.basePath, p.folder, topic, partitionPath)
		if err := os.MkdirAll(fullPath, os.ModePerm); err != nil {
			return nil, err
		}
		fw, err = local.NewLocalFileWriter(filepath.Join(fullPath, "data.parquet"))
		if err != nil {
			return nil, fmt.Errorf("failed to create local file writer: %w", err)
		}
	}

	pw, err := writer.NewJSONWriter(eventSchema, fw, 4)
	if err != nil {
		return nil, fmt.Errorf("failed to create parquet writer: %w", err)
	}

	p.writers[writerKey] = pw
	p.files[writerKey] = fw
	return pw, nil
}

func (p *ParquetSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var lastErr error
	for key, pw := range p.writers {
		if err := pw.WriteStop(); err != nil {
			lastErr = err
			log.Printf("Error closing writer for key %s: %v", key, err)
		}
		if f, ok := p.files[key]; ok {
			if err := f.Close(); err != nil {
				lastErr = err
				log.Printf("Error closing file for key %s: %v", key, err)
			}
		}
	}
	return lastErr
}

// cloudParquetFile adapts a CloudWriter to the parquet source interface.
// Cloud objects are write-once: reads and seeks from the end are unsupported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.CloudWriter
	offset      int64
}

func newCloudParquetFile(cw cloudwriter.CloudWriter) *cloudParquetFile {
	return &cloudParquetFile{cloudWriter: cw}
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error)   { return c, nil }
func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) { return c, nil }

func (c *cloudParquetFile) Seek(offset int64, whence int) (int64, error) {
	switch whence {
	case io.SeekStart:
		c.offset = offset
	case io.SeekCurrent:
		c.offset += offset
	case io.SeekEnd:
		return 0, fmt.Errorf("seek from end not supported for cloud storage")
	}
	return c.offset, nil
}

func (c *cloudParquetFile) Read(p []byte) (n int, err error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Write(p []byte) (n int, err error) {
	return c.cloudWriter.Write(p)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}
