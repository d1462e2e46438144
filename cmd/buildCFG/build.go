package buildCFG

import (
	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/config"

	"eventattend/internal/mailer"
)

type ServerConfig struct {
	Port string
}

type StoreConfig struct {
	Path string
}

type RabbitConfig struct {
	URL      string
	Exchange string
	Queue    string
}

func BuildServerConfig(cfg *config.Config, log *zerolog.Logger) ServerConfig {
	port := cfg.GetString("server.port")
	if port == "" {
		port = "8080"
		log.Warn().Msg("server.port not set, defaulting to 8080")
	}
	return ServerConfig{Port: port}
}

func BuildStoreConfig(cfg *config.Config, log *zerolog.Logger) StoreConfig {
	path := cfg.GetString("store.path")
	if path == "" {
		path = "data/eventattend.db"
		log.Warn().Msgf("store.path not set, defaulting to %s", path)
	}
	return StoreConfig{Path: path}
}

// BuildRabbitConfig returns the notification broker settings. An empty URL
// means notifications are disabled.
func BuildRabbitConfig(cfg *config.Config, log *zerolog.Logger) RabbitConfig {
	rc := RabbitConfig{
		URL:      cfg.GetString("rabbit.url"),
		Exchange: cfg.GetString("rabbit.exchange"),
		Queue:    cfg.GetString("rabbit.queue"),
	}
	if rc.URL == "" {
		log.Info().Msg("rabbit.url not set, attendance notifications disabled")
		return rc
	}
	if rc.Exchange == "" {
		rc.Exchange = "attendance.notifications"
	}
	if rc.Queue == "" {
		rc.Queue = "attendance.notifications.mail"
	}
	return rc
}

func BuildSMTPConfig(cfg *config.Config, log *zerolog.Logger) mailer.SMTP {
	smtp := mailer.SMTP{
		Host:      cfg.GetString("smtp.host"),
		Port:      cfg.GetInt("smtp.port"),
		From:      cfg.GetString("smtp.from"),
		Password:  cfg.GetString("smtp.password"),
		Organizer: cfg.GetString("smtp.organizer"),
	}
	if smtp.Port == 0 {
		smtp.Port = 587
	}
	if smtp.Organizer == "" {
		log.Warn().Msg("smtp.organizer not set, notification emails will fail")
	}
	return smtp
}
