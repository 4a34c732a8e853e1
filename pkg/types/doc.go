// Package types defines the asset, entity, and transaction model for the
// Tiernet ownership network, along with the seed configuration and the
// standard errors shared by the engines and the CLI.
package types
