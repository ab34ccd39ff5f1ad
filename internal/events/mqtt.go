// internal/events/mqtt.go
package events

import (
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/tamzrod/inspection-station/internal/config"
)

const (
	connectTimeout = 10 * time.Second
	publishTimeout = 5 * time.Second
	quiesceMs      = 500
)

var (
	// ErrConnectionFailed is returned when the broker cannot be reached at startup.
	ErrConnectionFailed = errors.New("events: mqtt connection failed")

	// ErrPublishFailed is returned when a publish is not acknowledged.
	ErrPublishFailed = errors.New("events: mqtt publish failed")
)

// tokenPublisher is the part of the paho client used for publishing.
type tokenPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token
}

// MQTTPublisher publishes msgpack-encoded exchanges to
// <prefix>/<station>/exchange.
type MQTTPublisher struct {
	client tokenPublisher
	close  func()
	topic  string
	qos    byte
	retain bool
}

// Topic returns the exchange topic for a station.
func Topic(prefix, station string) string {
	return fmt.Sprintf("%s/%s/exchange", prefix, station)
}

// ConnectMQTT connects to the broker. Reconnects are left to paho.
func ConnectMQTT(cfg config.MQTTConfig, station string, log *zap.Logger) (*MQTTPublisher, error) {
	if log == nil {
		log = zap.NewNop()
	}

	opts := pahomqtt.NewClientOptions()
	opts.AddBroker(cfg.Broker)
	opts.SetClientID(cfg.ClientID)
	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	opts.SetCleanSession(true)
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(connectTimeout)
	opts.SetConnectionLostHandler(func(_ pahomqtt.Client, err error) {
		log.Warn("mqtt connection lost", zap.Error(err))
	})
	opts.SetOnConnectHandler(func(_ pahomqtt.Client) {
		log.Info("mqtt connected", zap.String("broker", cfg.Broker))
	})

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(connectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrConnectionFailed, connectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnectionFailed, err)
	}

	p := newMQTTPublisher(client, cfg, station)
	p.close = func() { client.Disconnect(quiesceMs) }
	return p, nil
}

func newMQTTPublisher(client tokenPublisher, cfg config.MQTTConfig, station string) *MQTTPublisher {
	return &MQTTPublisher{
		client: client,
		topic:  Topic(cfg.Prefix, station),
		qos:    cfg.QoS,
		retain: cfg.Retain,
	}
}

// Publish implements Publisher.
func (p *MQTTPublisher) Publish(x Exchange) error {
	payload, err := Encode(x)
	if err != nil {
		return fmt.Errorf("events: encode: %w", err)
	}

	token := p.client.Publish(p.topic, p.qos, p.retain, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, publishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *MQTTPublisher) Close() error {
	if p.close != nil {
		p.close()
	}
	return nil
}
