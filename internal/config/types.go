package config

import "time"

// Config holds all configuration for the application.
type Config struct {
	DBName        string
	MigrationsDir string
	Port          string
	Timezone      string
	Turso         TursoConfig
	Events        EventsConfig
	Slack         SlackConfig
	Redis         RedisConfig
	// NotifyShardSize is how many profiles one proximity worker scans.
	NotifyShardSize int
	// PaymentWebhookSecret authenticates payment status callbacks. Empty
	// disables the callback route.
	PaymentWebhookSecret string
}

type TursoConfig struct {
	PrimaryURL string
	AuthToken  string
}

// Transport selects how lifecycle events travel.
type Transport string

const (
	TransportInProcess Transport = "inprocess"
	TransportGCP       Transport = "gcp"
	TransportAMQP      Transport = "amqp"
)

type EventsConfig struct {
	Transport    Transport
	ProjectID    string
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string
}

type SlackConfig struct {
	Token     string
	ChannelID string
}

// Enabled reports whether a bot token and channel are configured.
func (s SlackConfig) Enabled() bool {
	return s.Token != "" && s.ChannelID != ""
}

type RedisConfig struct {
	Addr     string
	Password string
	TTL      time.Duration
}
