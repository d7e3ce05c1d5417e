// Package service holds the typed API surface of the journal backend.
// Every service talks through the gateway, which owns credential injection,
// retry, and failure classification; services only map operations to
// endpoints and payloads.
package service

const logModule = "service"
