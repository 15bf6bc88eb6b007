// Package config parses the command line into an immutable Config. Flags are
// parsed with pflag, collected through a viper instance, and validated with
// ozzo-validation. No environment variables or files are read.
package config
