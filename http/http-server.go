package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v2"

	"github.com/hrsync/backend/auth"
	"github.com/hrsync/backend/conf"
	"github.com/hrsync/backend/detect"
	"github.com/hrsync/backend/hackerrank"
	"github.com/hrsync/backend/ledger"
	"github.com/hrsync/backend/syncsrvc"
)

type HttpServer struct {
	machine   *detect.Machine
	notifier  *detect.PushNotifier
	syncSrvc  *syncsrvc.SyncSrvc
	confStore *conf.Store
	history   *ledger.Ledger
	hrClient  *hackerrank.Client
	newStore  syncsrvc.StoreFactory
	jwtKey    []byte
	router    *chi.Mux
}

func NewHttpServer(
	machine *detect.Machine,
	notifier *detect.PushNotifier,
	syncSrvc *syncsrvc.SyncSrvc,
	confStore *conf.Store,
	history *ledger.Ledger,
	hrClient *hackerrank.Client,
	newStore syncsrvc.StoreFactory,
	jwtKey []byte,
) *HttpServer {
	router := chi.NewRouter()

	logger := httplog.NewLogger("hrsync", httplog.Options{
		LogLevel:         slog.LevelDebug,
		Concise:          true,
		MessageFieldName: "message",
	})

	router.Use(httplog.RequestLogger(logger))

	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://www.hackerrank.com", "http://localhost:3000"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           3000,
	}))

	if len(jwtKey) > 0 {
		router.Use(auth.GetJwtAuthMiddleware(jwtKey))
	}

	if newStore == nil {
		newStore = syncsrvc.GithubStoreFactory
	}

	server := &HttpServer{
		machine:   machine,
		notifier:  notifier,
		syncSrvc:  syncSrvc,
		confStore: confStore,
		history:   history,
		hrClient:  hrClient,
		newStore:  newStore,
		jwtKey:    jwtKey,
		router:    router,
	}

	server.routes()

	return server
}

func (httpserver *HttpServer) Start(address string) error {
	return http.ListenAndServe(address, httpserver.router)
}

// Handler exposes the router, for tests and for embedding in a server
// with graceful shutdown.
func (httpserver *HttpServer) Handler() http.Handler {
	return httpserver.router
}

func (httpserver *HttpServer) routes() {
	r := httpserver.router
	r.Post("/events/submit", httpserver.eventSubmit)
	r.Post("/events/mutation", httpserver.eventMutation)
	r.Get("/config", httpserver.configGet)
	r.Put("/config", httpserver.requireAuth(httpserver.configPut))
	r.Post("/config/test", httpserver.configTest)
	r.Get("/history", httpserver.historyList)
	r.Get("/languages", httpserver.languagesList)
	r.Post("/sync", httpserver.syncManual)
}

// requireAuth rejects requests without valid claims when a JWT key is
// configured. Without a key the service runs open, for local use.
func (httpserver *HttpServer) requireAuth(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if len(httpserver.jwtKey) > 0 && auth.ClaimsFromContext(r.Context()) == nil {
			http.Error(w, http.StatusText(http.StatusUnauthorized), http.StatusUnauthorized)
			return
		}
		h(w, r)
	}
}
