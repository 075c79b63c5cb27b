package config

import (
	"fmt"
	"time"
)

// HTTPConfig содержит настройки HTTP сервера.
type HTTPConfig struct {
	Host         string `yaml:"host" env:"RECIPES_HTTP_HOST" env-default:"0.0.0.0"`
	Port         int    `yaml:"port" env:"RECIPES_HTTP_PORT" env-default:"8080"`
	ReadTimeout  int    `yaml:"read_timeout" env:"RECIPES_HTTP_READ_TIMEOUT" env-default:"10"`
	WriteTimeout int    `yaml:"write_timeout" env:"RECIPES_HTTP_WRITE_TIMEOUT" env-default:"10"`
	IdleTimeout  int    `yaml:"idle_timeout" env:"RECIPES_HTTP_IDLE_TIMEOUT" env-default:"60"`
}

// GetAddress возвращает адрес, на котором слушает сервер.
func (h *HTTPConfig) GetAddress() string {
	return fmt.Sprintf("%s:%d", h.Host, h.Port)
}

// GetReadTimeout возвращает таймаут чтения запроса.
func (h *HTTPConfig) GetReadTimeout() time.Duration {
	return time.Duration(h.ReadTimeout) * time.Second
}

// GetWriteTimeout возвращает таймаут записи ответа.
func (h *HTTPConfig) GetWriteTimeout() time.Duration {
	return time.Duration(h.WriteTimeout) * time.Second
}

// GetIdleTimeout возвращает таймаут простоя соединения.
func (h *HTTPConfig) GetIdleTimeout() time.Duration {
	return time.Duration(h.IdleTimeout) * time.Second
}
