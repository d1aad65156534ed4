package stream

import (
	"context"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type MQTTSink struct {
	client  mqtt.Client
	topic   string
	qos     byte
	timeout time.Duration
}

type MQTTOption func(*MQTTSink)

func WithQoS(qos byte) MQTTOption {
	return func(m *MQTTSink) { m.qos = qos }
}

func WithPublishTimeout(d time.Duration) MQTTOption {
	return func(m *MQTTSink) { m.timeout = d }
}

func NewMQTTSink(client mqtt.Client, topic string, opts ...MQTTOption) *MQTTSink {
	m := &MQTTSink{
		client:  client,
		topic:   topic,
		qos:     1,
		timeout: 5 * time.Second,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// DialMQTT connects to broker (e.g. tcp://localhost:1883).
func DialMQTT(broker, clientID, topic string, opts ...MQTTOption) (*MQTTSink, error) {
	options := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second)
	client := mqtt.NewClient(options)

	token := client.Connect()
	if !token.WaitTimeout(10 * time.Second) {
		return nil, fmt.Errorf("mqtt connect %s: timed out", broker)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", broker, err)
	}
	return NewMQTTSink(client, topic, opts...), nil
}

func (m *MQTTSink) Publish(ctx context.Context, frame int, data []byte) error {
	token := m.client.Publish(m.topic, m.qos, false, EncodeMessage(frame, data))

	timeout := m.timeout
	if dl, ok := ctx.Deadline(); ok {
		timeout = min(timeout, time.Until(dl))
	}
	if !token.WaitTimeout(timeout) {
		return fmt.Errorf("mqtt publish to %s: timed out", m.topic)
	}
	return token.Error()
}

func (m *MQTTSink) Close() {
	m.client.Disconnect(250)
}
