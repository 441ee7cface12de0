// Package records cleans raw on-chain text record values and rewrites
// content-addressed URIs into fetchable gateway URLs.
package records

import (
	"log/slog"
	"regexp"
	"strings"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)

	// A bare base58/base32 CID without any scheme prefix.
	bareCID = regexp.MustCompile(`^[a-zA-Z0-9]{46,59}$`)
)

// CleanValue collapses any run of whitespace (including embedded newlines,
// which on-chain records are observed to contain mid-URL) into a single
// space and trims the result. Idempotent.
func CleanValue(value string) string {
	if value == "" {
		return ""
	}
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(value, " "))
}

// FormatContentURL rewrites scheme-prefixed content identifiers into URLs a
// browser can fetch. The value is cleaned first so stray whitespace does not
// break scheme detection. eip155 NFT references are detected but passed
// through unresolved; resolving the NFT image would need extra chain calls.
func FormatContentURL(raw string) string {
	url := CleanValue(raw)
	if url == "" {
		return ""
	}

	switch {
	case strings.HasPrefix(url, "ipfs://"):
		return "https://ipfs.io/ipfs/" + strings.TrimPrefix(url, "ipfs://")
	case strings.HasPrefix(url, "ar://"):
		return "https://arweave.net/" + strings.TrimPrefix(url, "ar://")
	case strings.HasPrefix(url, "eip155:"):
		slog.Warn("eip155 content reference passed through unresolved", slog.String("value", url))
		return url
	case strings.HasPrefix(url, "http://"), strings.HasPrefix(url, "https://"):
		return url
	case bareCID.MatchString(url):
		return "https://ipfs.io/ipfs/" + url
	}

	return url
}
