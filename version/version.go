package version

// Version is the version of the engine, set at build time with
// -ldflags "-X github.com/battlesnakeio/solo/version.Version=...".
var Version = "dev"
