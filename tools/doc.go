// Package tools exposes the SocialFlow client as MCP tools.
//
// Each tool is a thin binding: decode typed input, call the client,
// shape typed output. Failures are rendered into an IsError tool result
// carrying the classified message, status, kind, suggestion, and any
// validation detail, so agent hosts never see a raw stack of wrapped
// errors.
package tools
