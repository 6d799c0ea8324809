package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/lakeviewhq/frontdesk/internal/elevenlabs"
	"github.com/lakeviewhq/frontdesk/internal/summarizer"
)

const reportTimeLayout = "2006-01-02 15:04:05 MST"

// buildReport renders the audit-log report for a conversation: status,
// localized start time, call duration and the full transcript dump.
func buildReport(conv *elevenlabs.Conversation, loc *time.Location) string {
	status := conv.Status
	if status == "" {
		status = "Unknown"
	}
	start := "Unknown"
	if conv.Metadata.StartTimeUnixSecs > 0 {
		start = time.Unix(conv.Metadata.StartTimeUnixSecs, 0).In(safeLocation(loc)).Format(reportTimeLayout)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Conversation Details (ID: %s):\n", conv.ConversationID)
	fmt.Fprintf(&sb, "Status: %s\n", status)
	fmt.Fprintf(&sb, "Start Time: %s\n", start)
	fmt.Fprintf(&sb, "Call Duration: %d seconds\n", conv.Metadata.CallDurationSecs)
	sb.WriteString("Transcript:\n")
	if len(conv.Transcript) == 0 {
		sb.WriteString("No transcript available.\n")
	} else {
		sb.WriteString(summarizer.RenderTranscript(conv.Transcript))
		sb.WriteString("\n")
	}
	return sb.String()
}

func safeLocation(loc *time.Location) *time.Location {
	if loc != nil {
		return loc
	}
	return time.UTC
}
