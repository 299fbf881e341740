package config

import "time"

// getDefaultConfig retorna uma configuração padrão
func getDefaultConfig() Config {
	return Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Tracker: TrackerConfig{
			Host: "0.0.0.0",
			// Portas OSC convencionais das luvas StretchSense: três por mão
			Ports:         []int{9000, 9001, 9002, 9003, 9004, 9005},
			BroadcastRate: time.Second / 60,
			Debug:         false,
		},
		Recorder: RecorderConfig{
			SampleRate: time.Second / 60,
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			Password: "",
			DB:       0,
			Prefix:   "glove_tracker",
			Enabled:  true,
		},
		Export: ExportConfig{
			Dir:                "exports",
			IncludeOrientation: false,
		},
	}
}
