package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"glove_go/internal/config"
	"glove_go/internal/server"
	"glove_go/pkg/logger"
)

func main() {
	// Configurar diretório de logs
	logDir := filepath.Join(".", "logs")
	os.MkdirAll(logDir, 0755)

	// Inicializar logger
	logger.Init()
	logger.SetLevel(logger.INFO)
	logger.EnableFileLogging(logDir, "glove")
	defer logger.Sync()

	// Exibir banner de inicialização
	displayBanner()

	logger.Info("Iniciando Glove Tracker")

	// Carregar configurações
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Erro ao carregar configurações", err)
	}

	// Garantir que temos a taxa de amostragem correta para captura fluida
	if cfg.Recorder.SampleRate > 100*time.Millisecond {
		logger.Warn("Taxa de amostragem muito baixa. Definindo para ~60Hz")
		cfg.Recorder.SampleRate = time.Second / 60
	}

	logger.Infof("Configuração carregada: luvas em %s portas %v, Redis em %s:%d",
		cfg.Tracker.Host, cfg.Tracker.Ports, cfg.Redis.Host, cfg.Redis.Port)
	logger.Infof("Taxa de amostragem do gravador: %v", cfg.Recorder.SampleRate)

	// Criar e iniciar o servidor
	srv, err := server.NewServer(cfg)
	if err != nil {
		logger.Fatal("Erro ao criar servidor", err)
	}

	// Iniciar o servidor em uma goroutine separada
	go func() {
		logger.Infof("Servidor iniciado na porta %d", cfg.Server.Port)
		if err := srv.Start(); err != nil {
			logger.Fatal("Erro ao iniciar o servidor", err)
		}
	}()

	// Configurar captura de sinais para shutdown gracioso
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Desligando servidor...")

	// Criar contexto com timeout para o shutdown
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	// Desligar o servidor
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Erro durante o shutdown do servidor", err)
	}

	logger.Info("Servidor encerrado com sucesso")
}

// displayBanner exibe um banner de inicialização
func displayBanner() {
	banner := `
  ______ _______ _____  _    _ _______      _______  ______ _______ _______ _     _ _______  ______
 |  ____ |       |     |  \  /  |______        |    |_____/ |_____| |       |____/  |______ |_____/
 |_____| |_____  |_____|   \/   |______        |    |    \_ |     | |_____  |    \_ |______ |    \_  v1.0
                                                                         HAND POSE EDITION
 `
	fmt.Println(banner)
	fmt.Printf("Iniciando em %s\n\n", time.Now().Format("2006-01-02 15:04:05"))
}
