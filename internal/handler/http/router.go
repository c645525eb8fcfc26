package http

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
)

type RouterConfig struct {
	AllowedOrigins []string
	// StorageDir is served under the path of StorageURL when set.
	StorageDir string
	StorageURL string
}

func NewRouter(logger *slog.Logger, cfg RouterConfig, companyHandler CompanyHandler, employeeHandler EmployeeHandler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowCredentials: false,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/health"))

	if cfg.StorageDir != "" {
		mountStorage(r, cfg.StorageURL, cfg.StorageDir)
	}

	r.Route("/company", func(r chi.Router) {
		r.Get("/", companyHandler.List)
		r.Post("/", companyHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", companyHandler.GetByID)
			r.Put("/", companyHandler.Update)
			r.Patch("/", companyHandler.Update)
			r.Delete("/", companyHandler.Delete)
		})
	})

	r.Route("/employee", func(r chi.Router) {
		r.Get("/", employeeHandler.List)
		r.Post("/", employeeHandler.Create)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", employeeHandler.GetByID)
			r.Put("/", employeeHandler.Update)
			r.Patch("/", employeeHandler.Update)
			r.Delete("/", employeeHandler.Delete)
		})
	})

	return r
}

// mountStorage serves dir read-only under the path component of baseURL.
func mountStorage(r chi.Router, baseURL, dir string) {
	prefix := baseURL
	if u, err := url.Parse(baseURL); err == nil {
		prefix = u.Path
	}
	prefix = "/" + strings.Trim(prefix, "/")
	if prefix == "/" {
		slog.Warn("storage base URL has no path, static files are not served", "base_url", baseURL)
		return
	}

	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(dir)))
	r.Get(prefix+"/*", fs.ServeHTTP)
}
