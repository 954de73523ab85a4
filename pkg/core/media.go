package core

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/pion/sdp/v3"
)

type Media struct {
	Kind      string   `json:"kind,omitempty"`      // video or audio
	Direction string   `json:"direction,omitempty"` // sendonly, recvonly
	Codecs    []*Codec `json:"codecs,omitempty"`

	ID string `json:"id,omitempty"` // control URL for RTSP
}

func (m *Media) String() string {
	s := fmt.Sprintf("%s, %s", m.Kind, m.Direction)
	for _, codec := range m.Codecs {
		name := codec.String()
		if strings.Contains(s, name) {
			continue
		}
		s += ", " + name
	}
	return s
}

func UnmarshalMedia(md *sdp.MediaDescription) *Media {
	m := &Media{Kind: md.MediaName.Media}

	for _, attr := range md.Attributes {
		switch attr.Key {
		case DirectionSendonly, DirectionRecvonly, DirectionSendRecv:
			m.Direction = attr.Key
		case "control", "mid":
			m.ID = attr.Value
		}
	}

	for _, format := range md.MediaName.Formats {
		m.Codecs = append(m.Codecs, UnmarshalCodec(md, format))
	}

	return m
}

const sdpHeader = `v=0
o=- 0 0 IN IP4 0.0.0.0
s=-
t=0 0`

// UnmarshalSDP from RTSP DESCRIBE response. The announced directions follow
// the ONVIF streaming spec, where the camera's video is marked recvonly
// (from the camera's point of view), so direction is flipped here.
func UnmarshalSDP(rawSDP []byte) ([]*Media, error) {
	sd := &sdp.SessionDescription{}
	if err := sd.Unmarshal(rawSDP); err != nil {
		// fix SDP header for some cameras
		if i := bytes.Index(rawSDP, []byte("\nm=")); i > 0 {
			rawSDP = append([]byte(sdpHeader), rawSDP[i:]...)
			sd = &sdp.SessionDescription{}
			err = sd.Unmarshal(rawSDP)
		}
		if err != nil {
			return nil, err
		}
	}

	var medias []*Media

	for _, md := range sd.MediaDescriptions {
		media := UnmarshalMedia(md)

		// buggy SDP may put the fmtp for H264 on another track
		for _, codec := range media.Codecs {
			if codec.Name == CodecH264 && codec.FmtpLine == "" {
				codec.FmtpLine = findFmtpLine(codec.PayloadType, sd.MediaDescriptions)
			}
		}

		switch media.Direction {
		case DirectionRecvonly, "":
			media.Direction = DirectionSendonly
		case DirectionSendonly:
			media.Direction = DirectionRecvonly
		}

		medias = append(medias, media)
	}

	return medias, nil
}

func findFmtpLine(payloadType uint8, descriptions []*sdp.MediaDescription) string {
	s := strconv.Itoa(int(payloadType))
	for _, md := range descriptions {
		codec := UnmarshalCodec(md, s)
		if codec.FmtpLine != "" {
			return codec.FmtpLine
		}
	}
	return ""
}
