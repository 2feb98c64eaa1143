// Package models lists the OpenAI models usable for speech synthesis
// with the configured API key.
package models
