package records_test

import (
	"testing"

	"github.com/basedlist/directory/internal/records"
)

func TestCleanValue(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"hello", "hello"},
		{"  hello  ", "hello"},
		{"a\n\nb   c", "a b c"},
		{"https://example.com/\nimage.png", "https://example.com/ image.png"},
		{"\t one \r\n two ", "one two"},
	}
	for _, c := range cases {
		if got := records.CleanValue(c.in); got != c.want {
			t.Fatalf("CleanValue(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestCleanValueIdempotent(t *testing.T) {
	inputs := []string{"", "a\n\nb   c", " padded ", "already clean"}
	for _, in := range inputs {
		once := records.CleanValue(in)
		twice := records.CleanValue(once)
		if once != twice {
			t.Fatalf("CleanValue not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestFormatContentURL(t *testing.T) {
	bare := "bafkreifde5bqt2gcourzk4u7uexvegzqbmcfhmj7psle6hyllhlvwwlzhe"
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"ipfs://" + bare, "https://ipfs.io/ipfs/" + bare},
		{"ar://abc123", "https://arweave.net/abc123"},
		{"https://example.com", "https://example.com"},
		{"http://example.com/a.png", "http://example.com/a.png"},
		{bare, "https://ipfs.io/ipfs/" + bare},
		{"eip155:1/erc721:0x06012c8cf97bead5deae237070f9587f8e7a266d/771769", "eip155:1/erc721:0x06012c8cf97bead5deae237070f9587f8e7a266d/771769"},
		{"not a cid", "not a cid"},
	}
	for _, c := range cases {
		if got := records.FormatContentURL(c.in); got != c.want {
			t.Fatalf("FormatContentURL(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatContentURLCleansFirst(t *testing.T) {
	// Whitespace inside the scheme prefix must not defeat detection.
	got := records.FormatContentURL(" ipfs://abcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabc ")
	want := "https://ipfs.io/ipfs/abcabcabcabcabcabcabcabcabcabcabcabcabcabcabcabc"
	if got != want {
		t.Fatalf("got %q, want %q", got, want)
	}
}
