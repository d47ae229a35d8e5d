package configs

// Config is the full configuration surface, loaded from a JSON file and
// overlaid with environment variables for secrets.
type Config struct {
	// AllowQuotaLimitedSources gates paid-tier adapters. Default true.
	AllowQuotaLimitedSources *bool `json:"allow_quota_limited_sources"`

	Sources  SourcesConfig  `json:"sources"`
	Database DatabaseConfig `json:"database"`
	AI       AIConfig       `json:"ai"`
	Server   ServerConfig   `json:"server"`
}

type SourcesConfig struct {
	// QuotaOverrides replaces the default 1000/day ceiling per source name.
	QuotaOverrides map[string]int `json:"quota_overrides"`

	// Priorities overrides the default capability→source try order.
	Priorities map[string][]string `json:"priorities"`

	// Network selects the chain for network-scoped providers (eth, bsc, ...).
	Network string `json:"network"`
	ChainID string `json:"chain_id"`

	BirdeyeAPIKey string `json:"birdeye_api_key"`
	RPCURL        string `json:"rpc_url"`
	ExplorerURL   string `json:"explorer_url"`
	TokenListURL  string `json:"token_list_url"`
}

type DatabaseConfig struct {
	// ConnStr is the Postgres connection string; empty disables persistence.
	ConnStr string `json:"conn_str"`
}

type AIConfig struct {
	APIKey    string `json:"api_key"`
	ModelType string `json:"model_type"`
}

type ServerConfig struct {
	Addr string `json:"addr"`
}

// AllowQuotaLimited resolves the gate with its default.
func (c *Config) AllowQuotaLimited() bool {
	if c.AllowQuotaLimitedSources == nil {
		return true
	}
	return *c.AllowQuotaLimitedSources
}
