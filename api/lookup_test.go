package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"github.com/basedlist/directory/api"
	"github.com/basedlist/directory/internal/config"
	dbpkg "github.com/basedlist/directory/internal/db"
	"github.com/basedlist/directory/internal/ens"
	"github.com/basedlist/directory/internal/namehash"
	sqlite "github.com/basedlist/directory/internal/repository/sqlite"
)

// fakeChain is a ChainReader double backed by maps.
type fakeChain struct {
	resolvers map[common.Hash]common.Address
	addrs     map[common.Hash]common.Address
	texts     map[common.Hash]map[string]string
}

func newFakeChain() *fakeChain {
	return &fakeChain{
		resolvers: make(map[common.Hash]common.Address),
		addrs:     make(map[common.Hash]common.Address),
		texts:     make(map[common.Hash]map[string]string),
	}
}

func (f *fakeChain) Resolver(ctx context.Context, node common.Hash) (common.Address, error) {
	return f.resolvers[node], nil
}

func (f *fakeChain) Addr(ctx context.Context, resolver common.Address, node common.Hash) (common.Address, error) {
	return f.addrs[node], nil
}

func (f *fakeChain) Text(ctx context.Context, resolver common.Address, node common.Hash, key string) (string, error) {
	return f.texts[node][key], nil
}

func (f *fakeChain) ContentHash(ctx context.Context, resolver common.Address, node common.Hash) ([]byte, error) {
	return nil, nil
}

func (f *fakeChain) register(name string, owner common.Address, texts map[string]string) {
	node := namehash.Hash(name)
	f.resolvers[node] = common.HexToAddress("0x1111111111111111111111111111111111111111")
	f.addrs[node] = owner
	f.texts[node] = texts
}

func setupServer(t *testing.T, chain ens.ChainReader) (*httptest.Server, *sqlite.SQLiteRepo, func()) {
	t.Helper()
	ctx := context.Background()
	d, err := dbpkg.New(ctx, "file::memory:?cache=shared")
	if err != nil {
		t.Fatalf("db.New: %v", err)
	}
	if err := sqlite.EnsureSchema(ctx, d); err != nil {
		d.Close()
		t.Fatalf("ensure schema: %v", err)
	}

	cfg := &config.Config{
		ParentDomain:    "base.eth",
		SearchCacheTTL:  time.Minute,
		SearchCacheSize: 16,
	}
	router := api.SetupRoutes(cfg, "test", "now", d, chain)
	repo := sqlite.New(d, nil)

	srv := httptest.NewServer(router)
	return srv, repo, func() { srv.Close(); d.Close() }
}

func decodeJSON(res *http.Response, v any) error {
	return json.NewDecoder(res.Body).Decode(v)
}

func getJSON(t *testing.T, url string, wantStatus int) map[string]any {
	t.Helper()
	res, err := http.Get(url)
	if err != nil {
		t.Fatalf("get %s: %v", url, err)
	}
	defer res.Body.Close()
	if res.StatusCode != wantStatus {
		t.Fatalf("status = %d, want %d (url %s)", res.StatusCode, wantStatus, url)
	}
	var body map[string]any
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return body
}

func TestLookupByNameEndToEnd(t *testing.T) {
	chain := newFakeChain()
	owner := common.HexToAddress("0xabcabcabcabcabcabcabcabcabcabcabcabcabca")
	chain.register("jesse.base.eth", owner, map[string]string{
		"description": "builder",
		"com.twitter": "jesse",
	})

	srv, repo, cleanup := setupServer(t, chain)
	defer cleanup()

	body := getJSON(t, srv.URL+"/v1/ens/lookup?type=name&name=jesse", http.StatusOK)

	if body["name"] != "jesse.base.eth" {
		t.Fatalf("name = %v", body["name"])
	}
	if body["address"] != owner.Hex() {
		t.Fatalf("address = %v, want %s", body["address"], owner.Hex())
	}
	records := body["records"].([]any)
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %v", records)
	}
	skills := body["skills"].([]any)
	if len(skills) != 0 {
		t.Fatalf("expected no skills without keyword match, got %v", skills)
	}

	ctx := context.Background()
	stored, err := repo.GetENSProfileByName(ctx, "jesse.base.eth")
	if err != nil || stored == nil {
		t.Fatalf("ens profile not persisted: %v", err)
	}
	builder, err := repo.FindBuilderByNameOrENS(ctx, "jesse.base.eth")
	if err != nil || builder == nil {
		t.Fatalf("builder profile not persisted: %v", err)
	}
	if builder.Name != "jesse" || builder.ENSName != "jesse.base.eth" {
		t.Fatalf("builder identity %q/%q", builder.Name, builder.ENSName)
	}
}

func TestLookupDomainNotFoundDoesNotPersist(t *testing.T) {
	srv, repo, cleanup := setupServer(t, newFakeChain())
	defer cleanup()

	body := getJSON(t, srv.URL+"/v1/ens/lookup?type=name&name=ghost", http.StatusNotFound)
	if body["error"] != "DOMAIN_NOT_FOUND" {
		t.Fatalf("error code = %v", body["error"])
	}

	stored, err := repo.GetENSProfileByName(context.Background(), "ghost.base.eth")
	if err != nil {
		t.Fatalf("get ens profile: %v", err)
	}
	if stored != nil {
		t.Fatalf("failed lookup must not persist, got %+v", stored)
	}
}

func TestLookupByAddress(t *testing.T) {
	chain := newFakeChain()
	addr := common.HexToAddress("0xd8da6bf26964af9d7eed9e03e53415d37aa96045")

	reverseNode := namehash.ReverseNode(addr)
	chain.resolvers[reverseNode] = common.HexToAddress("0x2222222222222222222222222222222222222222")
	chain.texts[reverseNode] = map[string]string{"name": "vitalik.base.eth"}
	chain.register("vitalik.base.eth", addr, map[string]string{"description": "ethereum"})

	srv, repo, cleanup := setupServer(t, chain)
	defer cleanup()

	body := getJSON(t, srv.URL+"/v1/ens/lookup?type=address&address="+addr.Hex(), http.StatusOK)
	if body["name"] != "vitalik.base.eth" {
		t.Fatalf("name = %v", body["name"])
	}
	if body["address"] != addr.Hex() {
		t.Fatalf("address = %v", body["address"])
	}

	// Address-mode lookups do not persist.
	stored, err := repo.GetENSProfileByName(context.Background(), "vitalik.base.eth")
	if err != nil {
		t.Fatalf("get ens profile: %v", err)
	}
	if stored != nil {
		t.Fatalf("address-mode lookup must not persist, got %+v", stored)
	}
}

func TestLookupInvalidAddress(t *testing.T) {
	srv, _, cleanup := setupServer(t, newFakeChain())
	defer cleanup()

	body := getJSON(t, srv.URL+"/v1/ens/lookup?type=address&address=0x123", http.StatusBadRequest)
	if body["error"] != "INVALID_ADDRESS" {
		t.Fatalf("error code = %v", body["error"])
	}
}

func TestLookupAddressNotFound(t *testing.T) {
	srv, _, cleanup := setupServer(t, newFakeChain())
	defer cleanup()

	body := getJSON(t, srv.URL+"/v1/ens/lookup?type=address&address=0xd8da6bf26964af9d7eed9e03e53415d37aa96045", http.StatusNotFound)
	if body["error"] != "ADDRESS_NOT_FOUND" {
		t.Fatalf("error code = %v", body["error"])
	}
}

func TestLookupInvalidParameters(t *testing.T) {
	srv, _, cleanup := setupServer(t, newFakeChain())
	defer cleanup()

	cases := []string{
		"/v1/ens/lookup",
		"/v1/ens/lookup?type=name",
		"/v1/ens/lookup?name=jesse",
		"/v1/ens/lookup?type=address&name=jesse",
	}
	for _, path := range cases {
		body := getJSON(t, srv.URL+path, http.StatusBadRequest)
		if body["error"] != "INVALID_PARAMETERS" {
			t.Fatalf("%s: error code = %v", path, body["error"])
		}
	}
}

func TestLookupResponseHasNoStoreHeaders(t *testing.T) {
	chain := newFakeChain()
	chain.register("jesse.base.eth", common.Address{}, map[string]string{"description": "builder"})

	srv, _, cleanup := setupServer(t, chain)
	defer cleanup()

	res, err := http.Get(srv.URL + "/v1/ens/lookup?type=name&name=jesse")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	defer res.Body.Close()
	if cc := res.Header.Get("Cache-Control"); cc != "no-store, max-age=0, must-revalidate" {
		t.Fatalf("Cache-Control = %q", cc)
	}
}
