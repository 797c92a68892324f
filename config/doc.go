// Package config provides unified configuration loading for agenteval:
// defaults, then a YAML file, then environment variable overrides, in
// that precedence order.
package config
