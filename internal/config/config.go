package config

// Config holds all application configuration, grouped by concern.
type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Backend BackendConfig `mapstructure:"backend" validate:"required"`
	Sync    SyncConfig    `mapstructure:"sync" validate:"required"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port        int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Environment string `mapstructure:"environment" validate:"required,oneof=development staging production"`
}

// BackendConfig points at the curriculum backend this service syncs from.
type BackendConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// SyncConfig controls the curriculum cache and its refresh behavior.
// APIKeyHash is a bcrypt hash of the key that protects the sync endpoint;
// it may be empty only in development.
type SyncConfig struct {
	DataDir    string `mapstructure:"data_dir" validate:"required"`
	APIKeyHash string `mapstructure:"api_key_hash"`
	AutoSync   bool   `mapstructure:"auto_sync"`
	WatchCache bool   `mapstructure:"watch_cache"`
}
