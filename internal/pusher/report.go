// ABOUTME: Human-readable report for a push outcome.
// ABOUTME: Prints captured streams, exit code, and a success or failure marker.
package pusher

import (
	"fmt"
	"io"
	"strings"
)

// Report markers.
const (
	SuccessMarker = "✅ Git push successful!"
	FailureMarker = "❌ Git push failed"
)

// Report writes the outcome of Push to w. When err is non-nil only the
// "Error:" line is written.
func Report(w io.Writer, res *Result, err error) error {
	_, writeErr := io.WriteString(w, Summarize(res, err))
	return writeErr
}

// Summarize renders the report as a string.
func Summarize(res *Result, err error) string {
	var b strings.Builder
	if err != nil {
		fmt.Fprintf(&b, "Error: %v\n", err)
		return b.String()
	}
	if res == nil {
		fmt.Fprintln(&b, "Error: no result")
		return b.String()
	}

	fmt.Fprintf(&b, "STDOUT: %s\n", trimTrailingNewlines(res.Stdout))
	fmt.Fprintf(&b, "STDERR: %s\n", trimTrailingNewlines(res.Stderr))
	fmt.Fprintf(&b, "Return code: %d\n", res.ExitCode)
	if res.Succeeded() {
		fmt.Fprintln(&b, SuccessMarker)
	} else {
		fmt.Fprintln(&b, FailureMarker)
	}
	return b.String()
}

func trimTrailingNewlines(s string) string {
	return strings.TrimRight(s, "\r\n")
}
