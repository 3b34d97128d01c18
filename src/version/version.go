package version

// Version is overridden at build time with -ldflags "-X whistler/src/version.Version=...".
var Version = "0.3.0-dev"

const (
	Title       = "whistler"
	Description = "Inventory and rename WSL distributions"
	License     = "BSD license"
	ProjectURL  = "https://github.com/nickna/WhistlerCLI"
)
