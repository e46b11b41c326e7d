package httpserver

import (
	"net/http"

	"aesgcm/internal/auth"
	"aesgcm/internal/httpserver/handlers"
	"aesgcm/internal/services/vector"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

const maxBodyBytes = 32 << 20

type Deps struct {
	Store     handlers.Store
	Cache     *vector.CipherCache
	JWTSecret []byte
	Log       *zap.SugaredLogger
}

func NewRouter(d Deps) http.Handler {
	lg := d.Log
	if lg == nil {
		lg = zap.NewNop().Sugar()
	}
	cache := d.Cache
	if cache == nil {
		cache = vector.NewCipherCache(128)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID, middleware.RealIP, middleware.Recoverer, middleware.Logger)
	r.Use(middleware.RequestSize(maxBodyBytes))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusOK) })
	r.Get("/v1/selftest", handlers.SelfTest(lg))

	r.Group(func(protected chi.Router) {
		protected.Use(auth.JWTAuth(d.JWTSecret))
		protected.Post("/v1/aes/encrypt", handlers.AESEncrypt(lg))
		protected.Post("/v1/aes/decrypt", handlers.AESDecrypt(lg))
		protected.Post("/v1/gcm/seal", handlers.GCMSeal(cache, lg))
		protected.Post("/v1/gcm/open", handlers.GCMOpen(cache, lg))
		protected.Post("/v1/vectors/gcm/generate", handlers.GenerateGCMVectors(d.Store, lg))
		protected.Post("/v1/vectors/gcm/validate", handlers.ValidateGCMVectors(d.Store, lg))
		protected.Post("/v1/vectors/aes/generate", handlers.GenerateAESVectors(d.Store, lg))
		protected.Post("/v1/vectors/gctr/generate", handlers.GenerateGCTRVector(d.Store, lg))
		protected.Get("/v1/logs", handlers.MyLogs(d.Store, lg))
		protected.Group(func(admin chi.Router) {
			admin.Use(auth.RequireRole(auth.RoleAdministrator))
			admin.Get("/v1/admin/cache", handlers.CacheStats(cache))
		})
	})
	return r
}
