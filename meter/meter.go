package meter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Reading is one quarter-hour energy sample published by the meter
// bridge, e.g. {"ts": "2025-01-08T10:15:00Z", "kwh": 0.42}.
type Reading struct {
	Ts  time.Time `json:"ts"`
	KWh float64   `json:"kwh"`
}

type OnReading func(r Reading)

// Meter subscribes to the quarter-hour readings an MQTT meter bridge
// publishes and hands them to a callback. A watchdog fires OnInactivity
// when the feed goes quiet for too long.
type Meter struct {
	mqttClient      mqtt.Client
	logger          *slog.Logger
	topic           string
	lastMessageTime ConcurrentTimer
	stopMonitorCh   chan struct{}
	OnReading       OnReading
	OnInactivity    func()
}

const inactivityLimit = 45 * time.Minute

func New(broker string, port int16, username string, password string, topic string) *Meter {
	logger := slog.Default().With("module", "meter")
	opts := mqtt.NewClientOptions()
	opts.AddBroker(fmt.Sprintf("tcp://%s:%d", broker, port))
	opts.SetClientID("fasce")
	opts.SetUsername(username)
	opts.SetPassword(password)
	opts.SetAutoReconnect(true)
	opts.OnConnect = func(client mqtt.Client) {
		logger.Info("meter MQTT connected")
	}
	opts.OnConnectionLost = func(client mqtt.Client, err error) {
		logger.Warn("meter MQTT connection lost", slog.Any("error", err))
	}

	mqttLogger := slog.Default().With("module", "mqtt")
	mqtt.CRITICAL = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.ERROR = newMqttLogger(mqttLogger, slog.LevelError)
	mqtt.WARN = newMqttLogger(mqttLogger, slog.LevelWarn)

	return &Meter{
		mqttClient:      mqtt.NewClient(opts),
		logger:          logger,
		topic:           topic,
		lastMessageTime: ConcurrentTimer{},
		stopMonitorCh:   make(chan struct{}),
	}
}

func (m *Meter) Connect() error {
	m.logger.Debug("connecting meter MQTT client")

	if token := m.mqttClient.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}

	m.inactivityWatchdog()

	token := m.mqttClient.Subscribe(m.topic, 0, func(client mqtt.Client, msg mqtt.Message) {
		m.lastMessageTime.Reset()

		var r Reading
		if err := json.Unmarshal(msg.Payload(), &r); err != nil {
			m.logger.Error("error when reading meter message", slog.Any("error", err))
			return
		}
		if m.OnReading != nil {
			m.OnReading(r)
		}
	})
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("subscribing to %s: %w", m.topic, token.Error())
	}

	return nil
}

func (m *Meter) Disconnect() {
	close(m.stopMonitorCh)
	m.mqttClient.Disconnect(250)
	m.logger.Info("meter MQTT disconnected")
}

func (m *Meter) inactivityWatchdog() {
	m.lastMessageTime.Reset()
	ticker := time.NewTicker(time.Minute)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-m.stopMonitorCh:
				return
			case <-ticker.C:
				if m.lastMessageTime.Elapsed() > inactivityLimit {
					m.logger.Warn("no meter readings received",
						slog.Duration("elapsed", m.lastMessageTime.Elapsed()))
					if m.OnInactivity != nil {
						m.OnInactivity()
					}
				}
			}
		}
	}()
}
