package analytics

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dukhtravel-jpg/dukh-bot/internal/models"
)

type memorySink struct {
	topics   []string
	messages [][]byte
	err      error
}

func (m *memorySink) WriteMessage(topic string, msg []byte) error {
	if m.err != nil {
		return m.err
	}
	m.topics = append(m.topics, topic)
	m.messages = append(m.messages, msg)
	return nil
}

func (m *memorySink) Close() error { return nil }

func TestLoggerFillsDefaults(t *testing.T) {
	sink := &memorySink{}
	l := NewLogger(sink)

	l.Log(Event{
		EventType: EventRequestReceived,
		UserID:    "42",
		RequestID: "req-1",
	})

	require.Len(t, sink.messages, 1)
	assert.Equal(t, Topic, sink.topics[0])

	var got Event
	require.NoError(t, json.Unmarshal(sink.messages[0], &got))
	assert.Equal(t, EventRequestReceived, got.EventType)
	assert.NotEmpty(t, got.EventID)
	assert.NotZero(t, got.Timestamp)
	assert.Equal(t, "42", got.UserID)
}

func TestLoggerKeepsExplicitIdentifiers(t *testing.T) {
	sink := &memorySink{}
	l := NewLogger(sink)

	l.Log(Event{EventType: EventRatingReceived, EventID: "fixed", Timestamp: 123, Rating: 5})

	var got Event
	require.NoError(t, json.Unmarshal(sink.messages[0], &got))
	assert.Equal(t, "fixed", got.EventID)
	assert.Equal(t, int64(123), got.Timestamp)
	assert.Equal(t, int32(5), got.Rating)
}

func TestLoggerSwallowsSinkErrors(t *testing.T) {
	l := NewLogger(&memorySink{err: errors.New("sink down")})

	// Must not panic or propagate.
	l.Log(Event{EventType: EventDishNotFound})
}

func TestLoggerNilSafe(t *testing.T) {
	var l *Logger
	l.Log(Event{EventType: EventRequestReceived})
	assert.NoError(t, l.Close())

	NewLogger(nil).Log(Event{EventType: EventRequestReceived})
}

func TestFileSinkWritesJSONLines(t *testing.T) {
	dir := t.TempDir()
	sink := NewFileSink(dir)
	defer sink.Close()

	require.NoError(t, sink.WriteMessage(Topic, []byte(`{"a":1}`)))
	require.NoError(t, sink.WriteMessage(Topic, []byte(`{"a":2}`)))

	data, err := os.ReadFile(filepath.Join(dir, Topic+".jsonl"))
	require.NoError(t, err)
	assert.Equal(t, "{\"a\":1}\n{\"a\":2}\n", string(data))
}

func TestNewSinkDefaultsToConsole(t *testing.T) {
	sink, err := NewSink(&models.Config{})
	require.NoError(t, err)
	assert.IsType(t, &ConsoleSink{}, sink)
}

func TestNewSinkUnknownDestination(t *testing.T) {
	_, err := NewSink(&models.Config{AnalyticsDestination: "telepathy"})
	assert.Error(t, err)
}
