package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Addr            string        `yaml:"addr"`
	APITimeout      time.Duration `yaml:"timeout"`
	DatabasePath    string        `yaml:"database_path"`
	RPCURL          string        `yaml:"rpc_url"`
	RegistryAddress string        `yaml:"registry_address"`
	ParentDomain    string        `yaml:"parent_domain"`
	RPCTimeout      time.Duration `yaml:"rpc_timeout"`
	SearchCacheTTL  time.Duration `yaml:"search_cache_ttl"`
	SearchCacheSize int           `yaml:"search_cache_size"`
}

// Base mainnet registry for basenames.
const defaultRegistryAddress = "0xb94704422c2a1e396835a571837aa5ae53285a95"

func LoadConfig(path string) (*Config, error) {
	cfg := &Config{
		Addr:            getEnv("BASEDLIST_ADDR", ":8080"),
		APITimeout:      15 * time.Second,
		DatabasePath:    getEnv("BASEDLIST_DATABASE_PATH", "basedlist.db"),
		RPCURL:          getEnv("BASEDLIST_RPC_URL", "https://mainnet.base.org"),
		RegistryAddress: getEnv("BASEDLIST_REGISTRY_ADDRESS", defaultRegistryAddress),
		ParentDomain:    getEnv("BASEDLIST_PARENT_DOMAIN", "base.eth"),
		RPCTimeout:      10 * time.Second,
		SearchCacheTTL:  5 * time.Minute,
		SearchCacheSize: 256,
	}
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		dec := yaml.NewDecoder(f)
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}

	return def
}
