package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"stock-trading-backend/internal/config"

	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const retryInterval = 2 * time.Second

// EnsureTopic creates the tick topic through the cluster controller. An
// already existing topic is not an error.
func EnsureTopic(cfg config.KafkaConfig) error {
	// Dial the Kafka broker to create a connection for administrative tasks
	conn, err := kafkaGo.Dial("tcp", cfg.BrokerURL)
	if err != nil {
		return fmt.Errorf("dial kafka: %w", err)
	}
	defer conn.Close()

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("get kafka controller: %w", err)
	}

	controllerConn, err := kafkaGo.Dial("tcp", net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port)))
	if err != nil {
		return fmt.Errorf("dial kafka controller: %w", err)
	}
	defer controllerConn.Close()

	err = controllerConn.CreateTopics(kafkaGo.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     1,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafkaGo.TopicAlreadyExists) {
		return fmt.Errorf("create topic %q: %w", cfg.Topic, err)
	}
	return nil
}

// WaitForTopic retries EnsureTopic until it succeeds or ctx ends; the broker
// is often still starting when the services come up.
func WaitForTopic(ctx context.Context, cfg config.KafkaConfig, logger *zap.Logger) error {
	for {
		err := EnsureTopic(cfg)
		if err == nil {
			return nil
		}
		logger.Warn("could not ensure kafka topic exists, retrying in 2 seconds", zap.Error(err))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryInterval):
		}
	}
}
