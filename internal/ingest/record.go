package ingest

import "time"

// Codec tags used on the wire.
const (
	CodecH264 = "h264"
	CodecHEVC = "hevc"
	CodecAV1  = "av1"
)

// RecordPayload carries the codec-specific fields of one frame.
type RecordPayload struct {
	Data       []byte   `json:"data"`
	Width      int      `json:"width"`
	Height     int      `json:"height"`
	IsKeyframe bool     `json:"is_keyframe"`
	PTS        int64    `json:"pts"`
	DTS        int64    `json:"dts"`
	Duration   int64    `json:"duration"`
	TimeBase   TimeBase `json:"time_base"`
}

// Record is the published unit. Exactly one codec sub-payload is set,
// selected by the Codec tag.
type Record struct {
	EntityPath string    `json:"entity_path"`
	Timestamp  time.Time `json:"timestamp"`
	Codec      string    `json:"codec"`

	H264 *RecordPayload `json:"h264,omitempty"`
	H265 *RecordPayload `json:"h265,omitempty"`
	AV1  *RecordPayload `json:"av1,omitempty"`
}
