package kafkaclient

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

// mockReader simulates the kafka-go Reader for unit testing.
type mockReader struct {
	messages   chan kafka.Message
	commitChan chan kafka.Message
	wg         sync.WaitGroup
}

func newMockReader() *mockReader {
	return &mockReader{
		messages:   make(chan kafka.Message, 10),
		commitChan: make(chan kafka.Message, 10),
	}
}

// StartSimulatingConsumption feeds count messages into the reader, then
// closes it.
func (mr *mockReader) StartSimulatingConsumption(count int) {
	mr.wg.Add(1)
	go func() {
		defer mr.wg.Done()
		defer close(mr.messages)
		for i := 0; i < count; i++ {
			mr.messages <- kafka.Message{
				Topic:     "test-topic",
				Partition: 0,
				Offset:    int64(i),
				Value:     []byte(fmt.Sprintf("mock-message-%d", i)),
			}
		}
	}()
}

func (mr *mockReader) ReadMessage(ctx context.Context) (kafka.Message, error) {
	select {
	case <-ctx.Done():
		return kafka.Message{}, ctx.Err()
	case msg, ok := <-mr.messages:
		if !ok {
			return kafka.Message{}, fmt.Errorf("kafka: reader closed")
		}
		return msg, nil
	}
}

func (mr *mockReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	for _, msg := range msgs {
		mr.commitChan <- msg
	}
	return nil
}

func (mr *mockReader) Close() error { return nil }

func TestKafkaConsumer_ConsumesAndStops(t *testing.T) {
	reader := newMockReader()
	consumer := &KafkaConsumer{
		reader:      reader,
		doneChan:    make(chan struct{}),
		messageChan: make(chan kafka.Message),
	}

	reader.StartSimulatingConsumption(3)
	consumer.StartConsuming(context.Background())

	var received []kafka.Message
	deadline := time.After(2 * time.Second)
	for len(received) < 3 {
		select {
		case msg, ok := <-consumer.Messages():
			if !ok {
				t.Fatalf("message channel closed early, got %d messages", len(received))
			}
			received = append(received, msg)
		case <-deadline:
			t.Fatalf("timed out waiting for messages, got %d", len(received))
		}
	}

	for i, msg := range received {
		if msg.Offset != int64(i) {
			t.Errorf("message %d has offset %d", i, msg.Offset)
		}
	}

	if err := consumer.CommitOffset(context.Background(), received[0]); err != nil {
		t.Fatalf("CommitOffset error: %v", err)
	}
	select {
	case committed := <-reader.commitChan:
		if committed.Offset != 0 {
			t.Errorf("committed offset %d; want 0", committed.Offset)
		}
	case <-time.After(time.Second):
		t.Fatal("commit never reached the reader")
	}

	consumer.Stop()
}

// mockWriter captures published messages.
type mockWriter struct {
	written []kafka.Message
	closed  bool
}

func (mw *mockWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	mw.written = append(mw.written, msgs...)
	return nil
}

func (mw *mockWriter) Close() error {
	mw.closed = true
	return nil
}

func TestProducer_Publish(t *testing.T) {
	writer := &mockWriter{}
	producer := &Producer{writer: writer}

	event := map[string]string{"address": "1215 Rue Bishop"}
	if err := producer.Publish(context.Background(), "10382", event); err != nil {
		t.Fatalf("Publish error: %v", err)
	}

	if len(writer.written) != 1 {
		t.Fatalf("expected 1 message, got %d", len(writer.written))
	}
	msg := writer.written[0]
	if string(msg.Key) != "10382" {
		t.Errorf("key = %q; want %q", msg.Key, "10382")
	}
	var decoded map[string]string
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload is not JSON: %v", err)
	}
	if decoded["address"] != "1215 Rue Bishop" {
		t.Errorf("unexpected payload: %v", decoded)
	}

	if err := producer.Close(); err != nil {
		t.Fatalf("Close error: %v", err)
	}
	if !writer.closed {
		t.Error("Close did not reach the writer")
	}
}

func TestProducer_PublishUnmarshalable(t *testing.T) {
	producer := &Producer{writer: &mockWriter{}}
	if err := producer.Publish(context.Background(), "k", func() {}); err == nil {
		t.Fatal("expected a marshal error for an unencodable event")
	}
}
