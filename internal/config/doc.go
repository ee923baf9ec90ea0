// Package config loads the sugg configuration from
// ~/.config/sugg/config.toml.
//
// A missing file yields the defaults without error; an invalid file is
// an error. Paths may use ~ and are expanded after validation.
package config
