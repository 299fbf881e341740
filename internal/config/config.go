package config

import (
	"encoding/json"
	"os"
	"strconv"
	"time"
)

// Config representa a configuração completa da aplicação
type Config struct {
	Server   ServerConfig   `json:"server"`
	Tracker  TrackerConfig  `json:"tracker"`
	Recorder RecorderConfig `json:"recorder"`
	Redis    RedisConfig    `json:"redis"`
	Export   ExportConfig   `json:"export"`
}

// ServerConfig contém configurações do servidor HTTP/WebSocket
type ServerConfig struct {
	Port            int           `json:"port"`
	ReadTimeout     time.Duration `json:"readTimeout"`
	WriteTimeout    time.Duration `json:"writeTimeout"`
	ShutdownTimeout time.Duration `json:"shutdownTimeout"`
}

// TrackerConfig contém configurações da escuta de telemetria das luvas
type TrackerConfig struct {
	Host          string        `json:"host"`
	Ports         []int         `json:"ports"`
	BroadcastRate time.Duration `json:"broadcastRate"`
	Debug         bool          `json:"debug"`
}

// RecorderConfig contém configurações do gravador de movimento
type RecorderConfig struct {
	SampleRate time.Duration `json:"sampleRate"`
}

// RedisConfig contém configurações do Redis
type RedisConfig struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Password string `json:"password"`
	DB       int    `json:"db"`
	Prefix   string `json:"prefix"`
	Enabled  bool   `json:"enabled"`
}

// ExportConfig contém configurações da exportação de snapshots
type ExportConfig struct {
	Dir                string `json:"dir"`
	IncludeOrientation bool   `json:"includeOrientation"`
}

// Load carrega a configuração do arquivo ou usa valores padrão
func Load() (*Config, error) {
	config := getDefaultConfig()

	// Verificar se existe um arquivo de configuração
	if _, err := os.Stat("config.json"); err == nil {
		file, err := os.Open("config.json")
		if err != nil {
			return nil, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return nil, err
		}
	}

	// Sobrescrever com variáveis de ambiente, se existirem
	applyEnvironmentOverrides(&config)

	return &config, nil
}

// applyEnvironmentOverrides sobrescreve configurações com variáveis de ambiente
func applyEnvironmentOverrides(config *Config) {
	if v := os.Getenv("SERVER_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Server.Port = port
		}
	}
	if v := os.Getenv("GLOVE_HOST"); v != "" {
		config.Tracker.Host = v
	}
	if v := os.Getenv("GLOVE_BASE_PORT"); v != "" {
		if base, err := strconv.Atoi(v); err == nil {
			ports := make([]int, len(config.Tracker.Ports))
			for i := range ports {
				ports[i] = base + i
			}
			config.Tracker.Ports = ports
		}
	}
	if v := os.Getenv("GLOVE_DEBUG"); v != "" {
		config.Tracker.Debug = v == "1" || v == "true"
	}
	if v := os.Getenv("REDIS_HOST"); v != "" {
		config.Redis.Host = v
	}
	if v := os.Getenv("REDIS_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			config.Redis.Port = port
		}
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		config.Redis.Password = v
	}
	if v := os.Getenv("EXPORT_DIR"); v != "" {
		config.Export.Dir = v
	}
}
