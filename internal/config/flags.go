package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/cryptobom/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-n string   project name
//	-u string   default user recorded on mutations
//	-d string   snapshot directory (file backend)
//	-k int      snapshots kept by prune
//	-s string   snapshot backend: "file" or "s3"
//	-t string   policy tables TOML file
//	-ru string  S3 root user
//	-rp string  S3 root password
//	-b string   S3 bucket name
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//
// The function first filters os.Args to only the flags it recognizes
// using flagx.FilterArgs, avoiding collisions with other components.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-n", "-u", "-d", "-k", "-s", "-t", "-ru", "-rp", "-b", "-g", "-e"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.ProjectName, "n", config.ProjectName, "project name")
	fs.StringVar(&config.DefaultUser, "u", config.DefaultUser, "default audit user")
	fs.StringVar(&config.SnapshotDir, "d", config.SnapshotDir, "snapshot directory")
	fs.IntVar(&config.SnapshotKeep, "k", config.SnapshotKeep, "snapshots kept by prune")
	fs.StringVar(&config.SnapshotBackend, "s", config.SnapshotBackend, "snapshot backend (file or s3)")
	fs.StringVar(&config.PolicyFile, "t", config.PolicyFile, "policy tables TOML file")
	fs.StringVar(&config.S3RootUser, "ru", config.S3RootUser, "S3 root user")
	fs.StringVar(&config.S3RootPassword, "rp", config.S3RootPassword, "S3 root password")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
