package server

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/config"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/handler"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/handler/auth"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/handler/chat"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/handler/tasks"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
)

// NewRouter builds the full route tree over a service context. Split out
// from Run so tests can drive it with httptest.
func NewRouter(svcCtx *svc.ServiceContext, quiet bool) chi.Router {
	r := chi.NewRouter()

	if !quiet {
		r.Use(chimw.Logger)
	}
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)
	r.Use(corsMiddleware())

	r.Get("/health", handler.HealthCheckHandler(svcCtx))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", auth.RegisterHandler(svcCtx))
		r.Post("/login", auth.LoginHandler(svcCtx))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.JWT(svcCtx.Config.Auth.AccessSecret))

		r.Post("/chat", chat.ChatHandler(svcCtx))
		r.Get("/conversations", chat.ListConversationsHandler(svcCtx))

		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", tasks.ListTasksHandler(svcCtx))
			r.Post("/", tasks.CreateTaskHandler(svcCtx))
			r.Get("/{id}", tasks.GetTaskHandler(svcCtx))
			r.Put("/{id}", tasks.UpdateTaskHandler(svcCtx))
			r.Delete("/{id}", tasks.DeleteTaskHandler(svcCtx))
		})
	})

	return r
}

// Run starts the HTTP server and blocks until ctx is cancelled, then shuts
// down gracefully.
func Run(ctx context.Context, cfg *config.Config) error {
	svcCtx, err := svc.NewServiceContext(cfg)
	if err != nil {
		return err
	}
	defer svcCtx.Close()

	httpServer := &http.Server{
		Addr:        cfg.Addr(),
		Handler:     NewRouter(svcCtx, false),
		IdleTimeout: 120 * time.Second,
	}

	logging.Infof("[server] Listening on http://%s", cfg.Addr())

	errCh := make(chan error, 1)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
	}

	logging.Infof("[server] Shutting down gracefully")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	return httpServer.Shutdown(shutdownCtx)
}

// corsMiddleware allows only localhost origins; the chat UI runs next to
// the server. Non-localhost origins get no CORS headers.
func corsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			if origin == "" || isLocalhostOrigin(origin) {
				w.Header().Set("Access-Control-Allow-Origin", origin)
				w.Header().Set("Access-Control-Allow-Credentials", "true")
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusOK)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1" ||
		strings.HasSuffix(host, ".localhost")
}
