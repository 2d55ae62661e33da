package config

import (
	"os"
	"strconv"
)

type Config struct {
	HTTPAddr     string
	DataDir      string
	ServiceName  string
	DelayEnabled bool
	DelaySeconds int
}

func Load() Config {
	return Config{
		HTTPAddr:     getenv("HTTP_ADDR", ":3000"),
		DataDir:      getenv("DATA_DIR", "./data"),
		ServiceName:  getenv("SERVICE_NAME", "techstore-api"),
		DelayEnabled: getenv("API_DELAY_ENABLED", "true") == "true",
		DelaySeconds: getint("API_DELAY_SECONDS", 3),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getint(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
