package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/cryptobom/internal/flagx"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It is an intermediate DTO used only for reading JSON
// configuration files; after unmarshalling, its fields are copied into
// the runtime Config struct.
type JsonConfig struct {
	ProjectName     *string `json:"project_name"`
	Description     *string `json:"description"`
	DefaultUser     *string `json:"default_user"`
	SnapshotDir     *string `json:"snapshot_dir"`
	SnapshotKeep    *int    `json:"snapshot_keep"`
	SnapshotBackend *string `json:"snapshot_backend"`
	PolicyFile      *string `json:"policy_file"`
	S3RootUser      *string `json:"s3_root_user"`
	S3RootPassword  *string `json:"s3_root_password"`
	S3Bucket        *string `json:"s3_bucket"`
	S3Region        *string `json:"s3_region"`
	S3BaseEndpoint  *string `json:"s3_base_endpoint"`
}

// parseJson loads configuration values from a JSON file into the
// provided Config instance.
//
// The file path comes from the -c or -config command-line flags; when
// neither is set, no JSON file is loaded. Only keys present in the file
// override the current values, so the JSON overlay composes with
// defaults and flags. An unreadable or invalid file panics, matching
// flag-parsing behavior.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.ProjectName != nil {
		config.ProjectName = *c.ProjectName
	}
	if c.Description != nil {
		config.Description = *c.Description
	}
	if c.DefaultUser != nil {
		config.DefaultUser = *c.DefaultUser
	}
	if c.SnapshotDir != nil {
		config.SnapshotDir = *c.SnapshotDir
	}
	if c.SnapshotKeep != nil {
		config.SnapshotKeep = *c.SnapshotKeep
	}
	if c.SnapshotBackend != nil {
		config.SnapshotBackend = *c.SnapshotBackend
	}
	if c.PolicyFile != nil {
		config.PolicyFile = *c.PolicyFile
	}
	if c.S3RootUser != nil {
		config.S3RootUser = *c.S3RootUser
	}
	if c.S3RootPassword != nil {
		config.S3RootPassword = *c.S3RootPassword
	}
	if c.S3Bucket != nil {
		config.S3Bucket = *c.S3Bucket
	}
	if c.S3Region != nil {
		config.S3Region = *c.S3Region
	}
	if c.S3BaseEndpoint != nil {
		config.S3BaseEndpoint = *c.S3BaseEndpoint
	}
}
