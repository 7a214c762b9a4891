package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/dukhtravel-jpg/dukh-bot/internal/cloudwriter"
	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

// ParquetSink archives analytics events as parquet files, either on the
// local filesystem or uploaded to S3 on close. One file per topic per
// process run.
type ParquetSink struct {
	folder          string
	cloudFactory    cloudwriter.Factory
	cloudBucketName string

	mu      sync.Mutex
	writers map[string]*writer.ParquetWriter
	files   map[string]source.ParquetFile
}

func NewParquetSink(cfg *models.Config) (*ParquetSink, error) {
	p := &ParquetSink{
		folder:  cfg.OutputFolder,
		writers: make(map[string]*writer.ParquetWriter),
		files:   make(map[string]source.ParquetFile),
	}

	if cfg.CloudStorage {
		factory, err := cloudwriter.NewS3Factory()
		if err != nil {
			return nil, fmt.Errorf("failed to create cloud writer factory: %w", err)
		}
		p.cloudFactory = factory
		p.cloudBucketName = cfg.CloudBucketName
	}

	return p, nil
}

func (p *ParquetSink) WriteMessage(topic string, msg []byte) error {
	var event Event
	if err := json.Unmarshal(msg, &event); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	w, ok := p.writers[topic]
	if !ok {
		file, err := p.newFile(topic)
		if err != nil {
			return err
		}
		w, err = writer.NewParquetWriter(file, new(Event), 2)
		if err != nil {
			return fmt.Errorf("failed to create parquet writer for topic %s: %w", topic, err)
		}
		p.files[topic] = file
		p.writers[topic] = w
	}

	return w.Write(event)
}

func (p *ParquetSink) newFile(topic string) (source.ParquetFile, error) {
	name := fmt.Sprintf("%s_%d.parquet", topic, time.Now().Unix())

	if p.cloudFactory != nil {
		cw, err := p.cloudFactory.NewWriter(p.cloudBucketName, name)
		if err != nil {
			return nil, err
		}
		return &cloudParquetFile{cloudWriter: cw}, nil
	}

	if err := os.MkdirAll(p.folder, os.ModePerm); err != nil {
		return nil, err
	}
	return local.NewLocalFileWriter(filepath.Join(p.folder, name))
}

func (p *ParquetSink) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	for topic, w := range p.writers {
		if err := w.WriteStop(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("failed to finalize parquet for topic %s: %w", topic, err)
		}
		if err := p.files[topic].Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// cloudParquetFile adapts a cloudwriter to the parquet source interface.
// Cloud objects are write-only streams: reads and end-relative seeks are
// not supported.
type cloudParquetFile struct {
	cloudWriter cloudwriter.Writer
	offset      int64
}

func (c *cloudParquetFile) Write(data []byte) (int, error) {
	return c.cloudWriter.Write(data)
}

func (c *cloudParquetFile) Close() error {
	return c.cloudWriter.Close()
}

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

func (c *cloudParquetFile) Read(p []byte) (int, error) {
	return 0, fmt.Errorf("read not supported for cloud storage")
}

func (c *cloudParquetFile) Open(name string) (source.ParquetFile, error) {
	return c, nil
}

func (c *cloudParquetFile) Create(name string) (source.ParquetFile, error) {
	return c, nil
}
