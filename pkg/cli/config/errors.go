package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration loading
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	ChangeTypeKey = "change_type"
	FlagKey       = "flag"
)
