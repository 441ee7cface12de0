package models

// TextRecord is a single key/value pair resolved from an ENS resolver.
// Type is always "text" for records fetched through the text(node, key) call.
type TextRecord struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

// ENSProfile is the persisted shape of a resolved name, keyed by Name.
type ENSProfile struct {
	ID          int64        `json:"id,omitempty" db:"id"`
	Name        string       `json:"name" db:"name"`
	Address     string       `json:"address,omitempty" db:"address"`
	Avatar      string       `json:"avatar,omitempty" db:"avatar"`
	Records     []TextRecord `json:"records" db:"records"`
	ContentHash string       `json:"contentHash,omitempty" db:"content_hash"`
	Skills      []string     `json:"skills" db:"skills"`
	Created     int64        `json:"createdAt,omitempty" db:"created"`
	Updated     int64        `json:"updatedAt,omitempty" db:"updated"`
}

// Link is a named URL slot on a builder profile.
type Link struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// Socials holds the social handles surfaced on builder cards.
type Socials struct {
	Twitter string `json:"twitter"`
	GitHub  string `json:"github"`
}

// BuilderProfile is a directory entry derived from (and kept in sync with)
// an ENSProfile. Builder fields are recomputed wholesale on every sync; this
// subsystem never hand-edits them.
type BuilderProfile struct {
	ID           int64    `json:"id,omitempty" db:"id"`
	Name         string   `json:"name" db:"name"`
	ENSName      string   `json:"ensName,omitempty" db:"ens_name"`
	Bio          string   `json:"bio" db:"bio"`
	ProfileImage string   `json:"profileImage,omitempty" db:"profile_image"`
	Links        []Link   `json:"links" db:"links"`
	Socials      Socials  `json:"socials" db:"socials"`
	EthAddress   string   `json:"ethAddress,omitempty" db:"eth_address"`
	IsENSProfile bool     `json:"isENSProfile" db:"is_ens_profile"`
	Skills       []string `json:"skills" db:"skills"`
	Created      int64    `json:"createdAt,omitempty" db:"created"`
	Updated      int64    `json:"updatedAt,omitempty" db:"updated"`
}

// SearchResult is one autocomplete hit for the name search endpoint.
type SearchResult struct {
	Name        string  `json:"name"`
	DisplayName string  `json:"displayName"`
	Avatar      *string `json:"avatar"`
	Address     *string `json:"address"`
}
