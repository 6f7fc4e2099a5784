// Package config loads wave settings from <dir>/config.yaml and WAVE_*
// environment variables using viper.
package config
