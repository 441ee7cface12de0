package api

import (
	"github.com/gorilla/mux"

	"github.com/basedlist/directory/internal/config"
	"github.com/basedlist/directory/internal/db"
	"github.com/basedlist/directory/internal/ens"
	"github.com/basedlist/directory/internal/profiles"
	"github.com/basedlist/directory/internal/repository/sqlite"
	"github.com/basedlist/directory/internal/search"
)

// SetupRoutes wires repositories, the resolver and the handlers onto the
// router. The chain reader is injected so tests can substitute a double.
func SetupRoutes(cfg *config.Config, version, buildTime string, d *db.DB, chain ens.ChainReader) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(d, logger)

	// Domain services
	resolver := ens.NewResolver(chain, cfg.ParentDomain, logger)
	syncer := profiles.NewSyncer(repo, repo, cfg.ParentDomain, logger)
	searchSvc := search.New(repo, cfg.ParentDomain, cfg.SearchCacheTTL, cfg.SearchCacheSize, logger)

	// Create handlers
	systemHandler := &SystemHandler{}
	lookupHandler := NewLookupHandler(resolver, syncer)
	searchHandler := NewSearchHandler(searchSvc)
	buildersHandler := NewBuildersHandler(repo, repo)

	// Open endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// API v1
	apiV1 := r.PathPrefix("/v1").Subrouter()
	apiV1.HandleFunc("/ens/lookup", lookupHandler.Lookup).Methods("GET")
	apiV1.HandleFunc("/ens/search", searchHandler.Search).Methods("GET")
	apiV1.HandleFunc("/ens/profiles/{name}", buildersHandler.GetENSProfile).Methods("GET")
	apiV1.HandleFunc("/builders", buildersHandler.List).Methods("GET")

	return r
}
