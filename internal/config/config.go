// Package config handles configuration for the engine, including
// defaults, JSON overlay, and command-line flags.
package config

// Config holds runtime settings for the crypto-BOM engine.
//
// Fields:
//   - ProjectName / Description: identity of the inventory being managed.
//   - DefaultUser: user recorded on mutations when the caller gives none.
//   - SnapshotDir: directory for the file-backed snapshot repository.
//   - SnapshotKeep: how many snapshots Prune retains.
//   - SnapshotBackend: "file" or "s3".
//   - PolicyFile: optional TOML file overriding the built-in algorithm
//     and compliance tables.
//   - S3RootUser / S3RootPassword: credentials for the S3-compatible backend.
//   - S3Bucket / S3Region / S3BaseEndpoint: object storage settings.
type Config struct {
	ProjectName     string
	Description     string
	DefaultUser     string
	SnapshotDir     string
	SnapshotKeep    int
	SnapshotBackend string
	PolicyFile      string
	S3RootUser      string
	S3RootPassword  string
	S3Bucket        string
	S3Region        string
	S3BaseEndpoint  string
}

// LoadDefaults populates Config with sensible development defaults.
// NOTE: The S3 values are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.ProjectName = "default"
	c.Description = ""
	c.DefaultUser = "unknown"
	c.SnapshotDir = ".cbom_versions"
	c.SnapshotKeep = 10
	c.SnapshotBackend = "file"
	c.PolicyFile = ""
	c.S3RootUser = "admin"
	c.S3RootPassword = "secretpassword"
	c.S3Bucket = "cbom"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = "http://127.0.0.1:9000/"
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
