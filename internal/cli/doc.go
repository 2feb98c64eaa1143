// Package cli provides command-line interface setup and configuration
// for the ankivoice application. It handles flag parsing, command
// creation, the interactive deck prompt, and configuration management
// using cobra and viper.
package cli
