package analysis

import (
	"fmt"
	"strings"

	"github.com/nijaru/yt-forever/models"
)

// Prompt formatting is pure and deterministic: the task parameters are
// embedded in the instruction text, and whether the model honors them is
// outside this service's control.

func summaryPrompt(maxWords int) string {
	return fmt.Sprintf(
		"You are a helpful assistant that summarizes YouTube videos. Create a concise summary (maximum %d words).",
		maxWords,
	)
}

func tagsPrompt(maxTags int) string {
	return fmt.Sprintf(
		"You are a helpful assistant that generates relevant tags for YouTube videos. "+
			"Create a list of up to %d tags that best represent the main topics and themes in this video. "+
			"Return only a comma-separated list of tags with no additional text.",
		maxTags,
	)
}

func topicsPrompt() string {
	return "You are a helpful assistant that analyzes video transcripts. " +
		"Identify the main topics or segments in this transcript and when they occur. " +
		"Format your response as a JSON array of objects with 'topic', 'start_seconds', " +
		"and 'start_time' (in MM:SS format) fields. Do not include any explanatory text, just the JSON."
}

// Stricter reissue used when the first topics response does not parse.
func topicsStrictPrompt() string {
	return "You are a helpful assistant that analyzes video transcripts. " +
		"Your output should be ONLY a valid JSON array with no additional text."
}

func topicsStrictUserPrefix() string {
	return "Identify 3-7 main topics or segments in this transcript and when they occur. " +
		"Format your response ONLY as a JSON array of objects with 'topic', 'start_seconds', " +
		"and 'start_time' (in MM:SS format) fields.\n\n"
}

// formatTimedTranscript renders segments as one "[12.34s] text" line each,
// the shape the topics prompt expects.
func formatTimedTranscript(segments []models.TranscriptSegment) string {
	var sb strings.Builder
	for _, seg := range segments {
		fmt.Fprintf(&sb, "[%.2fs] %s\n", seg.Start, seg.Text)
	}
	return sb.String()
}
