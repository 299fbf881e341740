package api

import (
	"net/http"
	"strings"

	"glove_go/internal/glove"
	"glove_go/internal/redis"
	"glove_go/pkg/logger"
)

// Router gerencia as rotas da API
type Router struct {
	handler     *Handler
	mux         *http.ServeMux
	basePath    string
	middlewares []Middleware
}

// NewRouter cria um novo router para a API
func NewRouter(gloveService *glove.Service, redisService *redis.Service, basePath string) *Router {
	handler := NewHandler(gloveService, redisService)

	// Normalizar base path
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	if basePath != "" && strings.HasSuffix(basePath, "/") {
		basePath = basePath[:len(basePath)-1]
	}

	// Configurar middlewares padrão
	middlewares := []Middleware{
		LoggingMiddleware,
		RecoveryMiddleware,
		CorsMiddleware,
	}

	return &Router{
		handler:     handler,
		mux:         http.NewServeMux(),
		basePath:    basePath,
		middlewares: middlewares,
	}
}

// Setup configura todas as rotas
func (r *Router) Setup() {
	// Rota para verificar status
	r.mux.Handle(r.path("/status"), http.HandlerFunc(r.handler.GetStatus))

	// Rota para obter a pose calibrada de uma mão
	r.mux.Handle(r.path("/snapshot/"), http.HandlerFunc(r.handler.GetSnapshot))

	// Rota para obter contadores de pacotes
	r.mux.Handle(r.path("/counts"), http.HandlerFunc(r.handler.GetCounts))

	// Rota para obter a trajetória recente da palma
	r.mux.Handle(r.path("/palm-history/"), http.HandlerFunc(r.handler.GetPalmHistory))

	// Rota para capturar a baseline de calibração
	r.mux.Handle(r.path("/calibrate"), http.HandlerFunc(r.handler.Calibrate))

	// Rotas do gravador
	r.mux.Handle(r.path("/recording/start"), http.HandlerFunc(r.handler.StartRecording))
	r.mux.Handle(r.path("/recording/stop"), http.HandlerFunc(r.handler.StopRecording))
	r.mux.Handle(r.path("/recording/info"), http.HandlerFunc(r.handler.GetRecordingInfo))

	// Rotas do reprodutor
	r.mux.Handle(r.path("/playback/start"), http.HandlerFunc(r.handler.StartPlayback))
	r.mux.Handle(r.path("/playback/stop"), http.HandlerFunc(r.handler.StopPlayback))
	r.mux.Handle(r.path("/playback/current"), http.HandlerFunc(r.handler.GetPlaybackFrame))

	// Rota para exportar o snapshot atual em CSV
	r.mux.Handle(r.path("/export"), http.HandlerFunc(r.handler.ExportSnapshot))

	logger.Infof("API configurada com base path: %s", r.basePath)
}

// Handler retorna o handler HTTP final com todos os middlewares aplicados
func (r *Router) Handler() http.Handler {
	return r.applyMiddleware(r.mux)
}

// AddMiddleware adiciona um novo middleware
func (r *Router) AddMiddleware(middleware Middleware) {
	r.middlewares = append(r.middlewares, middleware)
}

// path retorna o caminho completo para uma rota
func (r *Router) path(route string) string {
	if !strings.HasPrefix(route, "/") {
		route = "/" + route
	}
	return r.basePath + route
}

// applyMiddleware aplica todos os middlewares ao handler
func (r *Router) applyMiddleware(handler http.Handler) http.Handler {
	if len(r.middlewares) == 0 {
		return handler
	}

	return Chain(r.middlewares...)(handler)
}

// ServeHTTP implementa a interface http.Handler
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	handler := r.Handler()
	handler.ServeHTTP(w, req)
}
