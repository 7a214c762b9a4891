// Package analytics records what the bot did with each request. Every
// write is best-effort: a failing sink logs a warning and the user-facing
// path continues untouched.
package analytics

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/lucsky/cuid"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

const Topic = "bot_events"

// Event is one analytics record. Parquet tags serve the archive sink.
type Event struct {
	Timestamp   int64  `json:"timestamp" parquet:"name=timestamp,type=INT64"`
	EventType   string `json:"eventType" parquet:"name=eventType,type=BYTE_ARRAY,convertedtype=UTF8"`
	EventID     string `json:"eventId" parquet:"name=eventId,type=BYTE_ARRAY,convertedtype=UTF8"`
	UserID      string `json:"userId,omitempty" parquet:"name=userId,type=BYTE_ARRAY,convertedtype=UTF8"`
	RequestID   string `json:"requestId,omitempty" parquet:"name=requestId,type=BYTE_ARRAY,convertedtype=UTF8"`
	Strategy    string `json:"strategy,omitempty" parquet:"name=strategy,type=BYTE_ARRAY,convertedtype=UTF8"`
	RequestText string `json:"requestText,omitempty" parquet:"name=requestText,type=BYTE_ARRAY,convertedtype=UTF8"`
	VenueName   string `json:"venueName,omitempty" parquet:"name=venueName,type=BYTE_ARRAY,convertedtype=UTF8"`
	Detail      string `json:"detail,omitempty" parquet:"name=detail,type=BYTE_ARRAY,convertedtype=UTF8"`
	Fallback    bool   `json:"fallback,omitempty" parquet:"name=fallback,type=BOOLEAN"`
	Rating      int32  `json:"rating,omitempty" parquet:"name=rating,type=INT32"`
}

const (
	EventRequestReceived      = "request_received"
	EventRecommendationServed = "recommendation_served"
	EventDishNotFound         = "dish_not_found"
	EventRatingReceived       = "rating_received"
)

// Sink is where encoded events end up. Mirrors the message-oriented
// destinations the catalog of sinks below implements.
type Sink interface {
	WriteMessage(topic string, msg []byte) error
	Close() error
}

// Logger encodes events and fans them out to its sink, swallowing sink
// failures after a warning.
type Logger struct {
	sink Sink
}

func NewLogger(sink Sink) *Logger {
	return &Logger{sink: sink}
}

// Log records the event. Never returns an error: analytics must not be
// able to break a recommendation.
func (l *Logger) Log(event Event) {
	if l == nil || l.sink == nil {
		return
	}
	if event.Timestamp == 0 {
		event.Timestamp = time.Now().Unix()
	}
	if event.EventID == "" {
		event.EventID = cuid.New()
	}
	msg, err := json.Marshal(event)
	if err != nil {
		log.Printf("warning: failed to encode analytics event: %v", err)
		return
	}
	if err := l.sink.WriteMessage(Topic, msg); err != nil {
		log.Printf("warning: failed to write analytics event: %v", err)
	}
}

func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	return l.sink.Close()
}

// ConsoleSink prints events to stdout, the development default.
type ConsoleSink struct{}

func (c *ConsoleSink) WriteMessage(topic string, msg []byte) error {
	_, err := fmt.Fprintf(os.Stdout, "[%s] %s\n", topic, string(msg))
	return err
}

func (c *ConsoleSink) Close() error { return nil }

// FileSink appends one JSON line per event to a per-topic file.
type FileSink struct {
	basePath string
	files    map[string]*os.File
}

func NewFileSink(basePath string) *FileSink {
	return &FileSink{basePath: basePath, files: make(map[string]*os.File)}
}

func (f *FileSink) WriteMessage(topic string, msg []byte) error {
	file, ok := f.files[topic]
	if !ok {
		if err := os.MkdirAll(f.basePath, os.ModePerm); err != nil {
			return err
		}
		var err error
		file, err = os.OpenFile(
			filepath.Join(f.basePath, topic+".jsonl"),
			os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			return fmt.Errorf("failed to open file for topic %s: %w", topic, err)
		}
		f.files[topic] = file
	}
	_, err := file.Write(append(msg, '\n'))
	return err
}

func (f *FileSink) Close() error {
	for _, file := range f.files {
		file.Close()
	}
	return nil
}

// NewSink builds the configured analytics destination.
func NewSink(cfg *models.Config) (Sink, error) {
	switch cfg.AnalyticsDestination {
	case "", "console":
		return &ConsoleSink{}, nil
	case "file":
		return NewFileSink(cfg.OutputFolder), nil
	case "kafka":
		return NewKafkaSink(cfg)
	case "parquet":
		return NewParquetSink(cfg)
	default:
		return nil, fmt.Errorf("unsupported analytics destination: %s", cfg.AnalyticsDestination)
	}
}
