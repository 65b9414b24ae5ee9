// Package observe wires up telemetry for the adapter: an OpenTelemetry
// tracer and meter with selectable exporters, and the process logger.
//
// Exporters write to stderr or push over the network; stdout is reserved
// for the MCP protocol stream and must never carry telemetry.
package observe
