// Package app contains application services that orchestrate use cases.
// Services depend on port interfaces, not concrete adapters.
package app
