package events

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/companydesk/directory/internal/directory/models"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var jsonMarshal = json.Marshal

type EventType string

const (
	CompanyCreated  EventType = "company_created"
	CompanyUpdated  EventType = "company_updated"
	CompanyDeleted  EventType = "company_deleted"
	CountersUpdated EventType = "counters_updated"
)

type Event struct {
	Type     EventType
	Company  *models.Company  `json:",omitempty"`
	Counters *models.Counters `json:",omitempty"`
}

type KafkaWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Producer struct {
	writer    KafkaWriter
	events    chan Event
	logger    *zap.Logger
	closeChan chan struct{}
}

func NewProducer(brokers []string, logger *zap.Logger, topic string) (*Producer, error) {
	// Create topic if it doesn't exist
	conn, err := kafka.Dial("tcp", brokers[0])
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	topicConfigs := []kafka.TopicConfig{
		{
			Topic:             topic,
			NumPartitions:     3,
			ReplicationFactor: 1,
		},
	}

	err = conn.CreateTopics(topicConfigs...)
	if err != nil {
		logger.Warn("failed to create topic (may already exist)", zap.Error(err))
	}
	p := &Producer{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Balancer: &kafka.LeastBytes{},
			Topic:    topic,
		},
		events:    make(chan Event, 1000), // Buffered channel
		logger:    logger.Named("kafka_producer"),
		closeChan: make(chan struct{}),
	}

	go p.eventLoop()
	return p, nil
}

func (p *Producer) Produce(eventType EventType, company *models.Company) {
	select {
	case p.events <- Event{Type: eventType, Company: company}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(eventType)),
			zap.Uint("company_id", company.ID),
		)
	}
}

// ProduceCounters enqueues a counters_updated event for the singleton
// about-counting record.
func (p *Producer) ProduceCounters(counters *models.Counters) {
	select {
	case p.events <- Event{Type: CountersUpdated, Counters: counters}:
	default:
		p.logger.Warn("Kafka producer queue full, dropping event",
			zap.String("event_type", string(CountersUpdated)),
		)
	}
}

func (p *Producer) eventLoop() {
	for {
		select {
		case event := <-p.events:
			p.sendEvent(context.Background(), event)
		case <-p.closeChan:
			return
		}
	}
}

func (p *Producer) sendEvent(ctx context.Context, event Event) {
	value, err := jsonMarshal(event)
	if err != nil {
		p.logger.Error("Failed to serialize event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
		)
		return
	}
	err = p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(eventKey(event)),
		Value: value,
	})
	if err != nil {
		p.logger.Error("Failed to produce event",
			zap.Error(err),
			zap.String("event_type", string(event.Type)),
		)
		return
	}
}

// eventKey keys company events by row id so updates to the same company
// land in the same partition; counters events share one fixed key.
func eventKey(event Event) string {
	if event.Company != nil {
		return strconv.FormatUint(uint64(event.Company.ID), 10)
	}
	return "about_counting"
}

func (p *Producer) Close() {
	close(p.closeChan)
	if err := p.writer.Close(); err != nil {
		p.logger.Error("Failed to close Kafka writer", zap.Error(err))
	}
}
