// Package config loads formschema command settings with Viper from a
// config.yaml in the working directory or $XDG_CONFIG_HOME/formschema, with
// FORMSCHEMA_* environment overrides.
package config
