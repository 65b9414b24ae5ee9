package tools

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/socialflow-dev/socialflow-mcp/apierror"
)

// errorResult renders err into an IsError tool result. The handler
// returns a nil Go error so the host receives the envelope instead of a
// protocol-level failure.
func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: renderError(err)}},
	}
}

func renderError(err error) string {
	var ae *apierror.Error
	if !errors.As(err, &ae) {
		return err.Error()
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s (status %d, %s)", ae.Message, ae.Status, ae.Kind)
	if ae.Suggestion != "" {
		fmt.Fprintf(&b, "\nSuggestion: %s", ae.Suggestion)
	}
	if len(ae.ValidationErrors) > 0 {
		b.WriteString("\nValidation errors:")
		fields := make([]string, 0, len(ae.ValidationErrors))
		for field := range ae.ValidationErrors {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			fmt.Fprintf(&b, "\n  %s: %s", field, strings.Join(ae.ValidationErrors[field], "; "))
		}
	}
	if ae.Retryable {
		b.WriteString("\nThis error is retryable.")
	}
	return b.String()
}
