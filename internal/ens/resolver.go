package ens

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/net/idna"

	"github.com/basedlist/directory/internal/models"
	"github.com/basedlist/directory/internal/namehash"
	"github.com/basedlist/directory/internal/records"
	"github.com/basedlist/directory/internal/skills"
)

// TextKeys is the fixed allow-list of text record keys queried on every
// forward resolution, in the order they appear in responses.
var TextKeys = []string{
	"name",
	"description",
	"url",
	"email",
	"avatar",
	"com.twitter",
	"com.github",
	"com.discord",
	"com.reddit",
	"org.telegram",
	"eth.ens.delegate",
	"com.linkedin",
	"website",
	"location",
	"keywords",
}

// ResolvedName is the ephemeral result of one resolution, produced per
// request and handed to the synchronizer.
type ResolvedName struct {
	Name        string
	Node        common.Hash
	Address     *common.Address
	Records     []models.TextRecord
	ContentHash []byte
	// Skills is the comma-split keywords record, surfaced in responses
	// under the legacy "skills" field.
	Skills []string
}

// Resolver runs the forward and reverse resolution protocols against an
// injected ChainReader.
type Resolver struct {
	chain        ChainReader
	parentDomain string
	logger       *slog.Logger
}

func NewResolver(chain ChainReader, parentDomain string, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{chain: chain, parentDomain: parentDomain, logger: logger}
}

// NormalizeName lower-cases and trims the input, appends the parent domain
// suffix when missing, and validates the result as a lookup-able name.
func NormalizeName(raw, parentDomain string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return "", fmt.Errorf("name is empty")
	}
	if suffix := "." + parentDomain; !strings.HasSuffix(name, suffix) {
		name += suffix
	}
	normalized, err := idna.Lookup.ToUnicode(name)
	if err != nil {
		return "", fmt.Errorf("normalize %q: %w", raw, err)
	}
	return normalized, nil
}

// ResolveName runs the forward protocol: registry.resolver(node), then
// addr/text/contenthash against the discovered resolver. A missing resolver
// is terminal; every later read is best effort.
func (r *Resolver) ResolveName(ctx context.Context, rawName string) (*ResolvedName, error) {
	normalized, err := NormalizeName(rawName, r.parentDomain)
	if err != nil {
		return nil, errInvalidParameters(err.Error())
	}

	node := namehash.Hash(normalized)

	resolverAddr, err := r.chain.Resolver(ctx, node)
	if err != nil {
		return nil, errProcessing("name lookup", err)
	}
	if resolverAddr == (common.Address{}) {
		return nil, errDomainNotFound(normalized)
	}

	res := &ResolvedName{Name: normalized, Node: node}

	owner, err := r.chain.Addr(ctx, resolverAddr, node)
	if err != nil {
		r.logger.Warn("addr lookup failed", slog.String("name", normalized), slog.Any("err", err))
	} else if owner != (common.Address{}) {
		res.Address = &owner
	}

	res.Records = r.fetchTextRecords(ctx, resolverAddr, node, normalized)

	contentHash, err := r.chain.ContentHash(ctx, resolverAddr, node)
	if err != nil {
		r.logger.Warn("contenthash lookup failed", slog.String("name", normalized), slog.Any("err", err))
	} else if len(contentHash) > 0 {
		res.ContentHash = contentHash
	}

	res.Skills = skills.FromKeywords(recordValue(res.Records, "keywords"))

	return res, nil
}

// ResolveAddress runs the reverse protocol and then re-runs the forward
// protocol on the discovered name to obtain the complete record set.
func (r *Resolver) ResolveAddress(ctx context.Context, address string) (*ResolvedName, error) {
	if !common.IsHexAddress(address) {
		return nil, errInvalidAddress()
	}
	addr := common.HexToAddress(address)

	reverseNode := namehash.ReverseNode(addr)

	resolverAddr, err := r.chain.Resolver(ctx, reverseNode)
	if err != nil {
		return nil, errProcessing("address lookup", err)
	}
	if resolverAddr == (common.Address{}) {
		return nil, errAddressNotFound(address)
	}

	name, err := r.chain.Text(ctx, resolverAddr, reverseNode, "name")
	if err != nil {
		return nil, errProcessing("address lookup", err)
	}
	if name == "" {
		return nil, errAddressNotFound(address)
	}

	res, err := r.ResolveName(ctx, name)
	if err != nil {
		return nil, err
	}

	// The reverse path reports the queried address and skips the content
	// hash, matching the address-mode response contract.
	res.Address = &addr
	res.ContentHash = nil
	return res, nil
}

// fetchTextRecords fans out over the key allow-list concurrently. Each read
// is independent; per-key failures are logged and the key omitted. The
// output keeps the fixed allow-list order regardless of arrival order.
func (r *Resolver) fetchTextRecords(ctx context.Context, resolverAddr common.Address, node common.Hash, name string) []models.TextRecord {
	values := make([]string, len(TextKeys))

	var wg sync.WaitGroup
	for i, key := range TextKeys {
		i, key := i, key
		wg.Add(1)
		go func() {
			defer wg.Done()
			value, err := r.chain.Text(ctx, resolverAddr, node, key)
			if err != nil {
				r.logger.Warn("text record fetch failed",
					slog.String("name", name),
					slog.String("key", key),
					slog.Any("err", err),
				)
				return
			}
			values[i] = value
		}()
	}
	wg.Wait()

	out := make([]models.TextRecord, 0, len(TextKeys))
	for i, key := range TextKeys {
		cleaned := records.CleanValue(values[i])
		if cleaned == "" {
			continue
		}
		out = append(out, models.TextRecord{Key: key, Value: cleaned, Type: "text"})
	}
	return out
}

func recordValue(recs []models.TextRecord, key string) string {
	for _, rec := range recs {
		if rec.Key == key {
			return rec.Value
		}
	}
	return ""
}
