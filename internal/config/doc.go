// Package config provides configuration loading, merging, and validation
// for the order desk client.
//
// Configuration is assembled from multiple sources in the following priority
// order (later sources override earlier non-zero fields):
//  1. Environment variables
//  2. Command-line flags
//  3. JSON config file
//
// Fields no source sets fall back to the defaults in config.go. The main
// entry point is [GetClientConfig].
package config
