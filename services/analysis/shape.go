package analysis

import (
	"encoding/json"
	"fmt"
	"strings"

	pkgerrors "github.com/pkg/errors"

	"github.com/nijaru/yt-forever/models"
)

// Shaping model output into DTOs is best-effort text extraction, not schema
// validation: the prompts ask for a shape, these helpers recover what they
// can from whatever came back.

// parseTags splits free-text tag output into an ordered list, capped at
// maxTags. Commas win over newlines when both are present.
func parseTags(raw string, maxTags int) []string {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "[")
	raw = strings.TrimSuffix(raw, "]")

	var parts []string
	if strings.Contains(raw, ",") {
		parts = strings.Split(raw, ",")
	} else {
		parts = strings.Split(raw, "\n")
	}

	tags := make([]string, 0, len(parts))
	for _, part := range parts {
		tag := strings.TrimSpace(part)
		tag = strings.TrimPrefix(tag, "- ")
		tag = strings.Trim(tag, `"'`)
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		tags = append(tags, tag)
		if maxTags > 0 && len(tags) == maxTags {
			break
		}
	}

	return tags
}

// rawTopic matches the field names the topics prompt asks the model for.
type rawTopic struct {
	Topic        string  `json:"topic"`
	StartSeconds float64 `json:"start_seconds"`
	StartTime    string  `json:"start_time"`
}

// parseTopics extracts the JSON array from the model output and maps it to
// Topic DTOs. Returns an error when no parseable array is present.
func parseTopics(raw string) ([]models.Topic, error) {
	jsonStr, err := extractJSONArray(raw)
	if err != nil {
		return nil, err
	}

	var rawTopics []rawTopic
	if err := json.Unmarshal([]byte(jsonStr), &rawTopics); err != nil {
		return nil, pkgerrors.Wrap(err, "unmarshaling topics array")
	}

	topics := make([]models.Topic, 0, len(rawTopics))
	for _, rt := range rawTopics {
		timestamp := rt.StartTime
		if timestamp == "" {
			timestamp = formatSecondsToMMSS(rt.StartSeconds)
		}
		topics = append(topics, models.Topic{
			Title:          rt.Topic,
			StartSeconds:   rt.StartSeconds,
			StartTimestamp: timestamp,
		})
	}

	return topics, nil
}

// extractJSONArray returns the substring between the first '[' and the last
// ']', tolerating explanatory text around the array.
func extractJSONArray(raw string) (string, error) {
	start := strings.Index(raw, "[")
	end := strings.LastIndex(raw, "]")
	if start < 0 || end <= start {
		return "", pkgerrors.New("no JSON array found in model output")
	}
	return raw[start : end+1], nil
}

func formatSecondsToMMSS(seconds float64) string {
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
