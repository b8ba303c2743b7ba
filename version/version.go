package version

// Version is overridden at build time with
// -ldflags "-X tsv2sql/version.Version=v1.2.0".
var Version = "dev"
