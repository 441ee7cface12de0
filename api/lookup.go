package api

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"

	"github.com/basedlist/directory/internal/ens"
	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/internal/profiles"
)

type LookupHandler struct {
	resolver *ens.Resolver
	syncer   *profiles.Syncer
}

func NewLookupHandler(resolver *ens.Resolver, syncer *profiles.Syncer) *LookupHandler {
	return &LookupHandler{resolver: resolver, syncer: syncer}
}

type lookupResponse struct {
	Name        string              `json:"name"`
	Address     *string             `json:"address"`
	Avatar      string              `json:"avatar,omitempty"`
	Records     []models.TextRecord `json:"records"`
	ContentHash *string             `json:"contentHash"`
	Skills      []string            `json:"skills"`
}

// Lookup dispatches on the type discriminator: name lookups run the forward
// protocol and persist the result, address lookups run the reverse protocol
// and return without persisting.
func (h *LookupHandler) Lookup(w http.ResponseWriter, r *http.Request) {
	noStore(w)

	q := r.URL.Query()
	name := q.Get("name")
	address := q.Get("address")
	lookupType := q.Get("type")

	switch {
	case lookupType == "name" && name != "":
		h.lookupByName(w, r, name)
	case lookupType == "address" && address != "":
		h.lookupByAddress(w, r, address)
	default:
		writeJSON(w, errorResponse{
			Message: "Invalid request parameters",
			Error:   ens.CodeInvalidParameters,
			Details: "The request must include either a name or an address parameter, along with the corresponding type parameter.",
		}, http.StatusBadRequest)
	}
}

func (h *LookupHandler) lookupByName(w http.ResponseWriter, r *http.Request, name string) {
	resolved, err := h.resolver.ResolveName(r.Context(), name)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	// Persistence failure is swallowed inside Sync; the lookup still
	// answers with the resolved data.
	synced := h.syncer.Sync(r.Context(), resolved)

	resp := lookupResponse{
		Name:    resolved.Name,
		Avatar:  synced.Avatar,
		Records: resolved.Records,
		Skills:  resolved.Skills,
	}
	if resolved.Address != nil {
		hex := resolved.Address.Hex()
		resp.Address = &hex
	}
	if len(resolved.ContentHash) > 0 {
		encoded := hexutil.Encode(resolved.ContentHash)
		resp.ContentHash = &encoded
	}

	writeJSON(w, resp, http.StatusOK)
}

func (h *LookupHandler) lookupByAddress(w http.ResponseWriter, r *http.Request, address string) {
	resolved, err := h.resolver.ResolveAddress(r.Context(), address)
	if err != nil {
		writeLookupError(w, err)
		return
	}

	resp := lookupResponse{
		Name:    resolved.Name,
		Records: resolved.Records,
		Skills:  resolved.Skills,
	}
	if resolved.Address != nil {
		hex := resolved.Address.Hex()
		resp.Address = &hex
	}

	writeJSON(w, resp, http.StatusOK)
}
