// Package models contains the data structures used throughout remote-cli-runner.
package models

// RemoteConfig holds the connection settings for the remote host.
// A RemoteConfig is only ever constructed fully populated; the config
// parser rejects anything less.
type RemoteConfig struct {
	Host string // hostname or IP of the remote host
	User string // login user
	Key  string // path to the private key file (existence not verified)
	Port int    // SSH port, defaults to 22
}
