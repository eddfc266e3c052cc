package config

import "os"

type Config struct {
	SlackBotToken      string
	SlackSigningSecret string
	DatabasePath       string
	Port               string

	// NotifyOncePerWindow limits reminders to one per occurrence instead
	// of one per scheduler tick inside the window.
	NotifyOncePerWindow bool

	// RearmDaily reschedules a standup for the next day after it fires.
	RearmDaily bool
}

func Load() *Config {
	return &Config{
		SlackBotToken:       getEnv("SLACK_BOT_TOKEN", ""),
		SlackSigningSecret:  getEnv("SLACK_SIGNING_SECRET", ""),
		DatabasePath:        getEnv("DATABASE_PATH", "./standup.db"),
		Port:                getEnv("PORT", "3000"),
		NotifyOncePerWindow: getBoolEnv("NOTIFY_ONCE_PER_WINDOW", false),
		RearmDaily:          getBoolEnv("REARM_DAILY", false),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	switch os.Getenv(key) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
