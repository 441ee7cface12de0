package api

import (
	"net/http"

	"log/slog"

	"github.com/gorilla/mux"

	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/pkg/repository"
)

type BuildersHandler struct {
	builderRepo repository.BuilderProfileRepo
	ensRepo     repository.ENSProfileRepo
}

func NewBuildersHandler(br repository.BuilderProfileRepo, er repository.ENSProfileRepo) *BuildersHandler {
	return &BuildersHandler{builderRepo: br, ensRepo: er}
}

// List returns every builder profile, most recently updated first.
func (h *BuildersHandler) List(w http.ResponseWriter, r *http.Request) {
	noStore(w)

	builders, err := h.builderRepo.ListBuilders(r.Context())
	if err != nil {
		logger.Error("list builders", slog.Any("err", err))
		writeUnexpectedError(w, "Failed to fetch builders")
		return
	}
	if builders == nil {
		builders = []models.BuilderProfile{}
	}

	writeJSON(w, builders, http.StatusOK)
}

// GetENSProfile serves a cached ENS profile without touching the chain.
func (h *BuildersHandler) GetENSProfile(w http.ResponseWriter, r *http.Request) {
	noStore(w)

	name := mux.Vars(r)["name"]
	profile, err := h.ensRepo.GetENSProfileByName(r.Context(), name)
	if err != nil {
		logger.Error("get ens profile", slog.String("name", name), slog.Any("err", err))
		writeUnexpectedError(w, "Failed to fetch profile")
		return
	}
	if profile == nil {
		writeJSON(w, errorResponse{
			Message: "Profile not found: " + name,
			Error:   "PROFILE_NOT_FOUND",
			Details: "The requested name has not been resolved yet.",
		}, http.StatusNotFound)
		return
	}

	writeJSON(w, profile, http.StatusOK)
}
