package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/algoprep/grader/gradesrvc"
	"github.com/algoprep/grader/sandbox"
)

type HttpServer struct {
	gradeSrvc *gradesrvc.GradeService
	sandbox   *sandbox.Client
	router    *chi.Mux
	logger    *slog.Logger
}

func NewHttpServer(
	gradeSrvc *gradesrvc.GradeService,
	sandboxClient *sandbox.Client,
	allowedOrigins []string,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("grader", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		RequestHeaders:   true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	server := &HttpServer{
		gradeSrvc: gradeSrvc,
		sandbox:   sandboxClient,
		router:    router,
		logger:    slog.Default().With("module", "http"),
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/grade", httpserver.grade)
	r.Get("/health", httpserver.health)
}
