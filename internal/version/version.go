package version

// Set at build time with -ldflags "-X github.com/bnema/dx/internal/version.Version=...".
var Version = "dev"
