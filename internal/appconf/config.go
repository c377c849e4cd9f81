// Package appconf holds application configuration: the runtime
// environment, the HTTP serving parameters, and loading of config files.
package appconf

// Config is the application-level configuration assembled from flags,
// environment variables, or a config file.
type Config struct {
	Port      int
	Env       Environment
	ApiKeys   []string
	Verbose   bool
	RateLimit int
}
