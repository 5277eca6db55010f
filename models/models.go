package models

// TranscriptSegment is a timed slice of spoken text from a video's captions.
// Segments are kept in fetch order, which is chronological.
type TranscriptSegment struct {
	Start    float64 `json:"start"`
	Duration float64 `json:"duration"`
	Text     string  `json:"text"`
}

// Topic is one entry of a topic/timestamp breakdown.
type Topic struct {
	Title          string  `json:"title"`
	StartSeconds   float64 `json:"start_seconds"`
	StartTimestamp string  `json:"start_timestamp"`
}

type TranscriptResponse struct {
	VideoID    string              `json:"video_id"`
	Transcript []TranscriptSegment `json:"transcript"`
}

type TextResponse struct {
	VideoID string `json:"video_id"`
	Text    string `json:"text"`
}

type SummaryResponse struct {
	VideoID string `json:"video_id"`
	Summary string `json:"summary"`
}

type TagsResponse struct {
	VideoID string   `json:"video_id"`
	Tags    []string `json:"tags"`
}

type TopicsResponse struct {
	VideoID string  `json:"video_id"`
	Topics  []Topic `json:"topics"`
}
