package rtsp

import (
	"fmt"
	"net/textproto"
	"strconv"
	"strings"
	"time"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/tcp"
)

func (c *Conn) Options() error {
	req := &tcp.Request{Method: MethodOptions, URL: c.URL}

	res, err := c.Do(req)
	if err != nil {
		return err
	}

	if val := res.Header.Get("Content-Base"); val != "" {
		c.URL, err = urlParse(val)
		if err != nil {
			return err
		}
	}

	return nil
}

func (c *Conn) Describe() error {
	req := &tcp.Request{
		Method: MethodDescribe,
		URL:    c.URL,
		Header: textproto.MIMEHeader{
			"Accept": {"application/sdp"},
		},
	}

	res, err := c.Do(req)
	if err != nil {
		return err
	}

	if val := res.Header.Get("Content-Base"); val != "" {
		c.URL, err = urlParse(val)
		if err != nil {
			return err
		}
	}

	c.SDP = string(res.Body) // for info

	c.Medias, err = core.UnmarshalSDP(res.Body)
	return err
}

// SetupMedia requests TCP-interleaved transport for the media and
// returns the data channel number the server settled on.
func (c *Conn) SetupMedia(media *core.Media) (byte, error) {
	var transport string

	// use media position as channel number
	for i, m := range c.Medias {
		if m == media {
			transport = fmt.Sprintf(
				// i   - RTP (data channel)
				// i+1 - RTCP (control channel)
				"RTP/AVP/TCP;unicast;interleaved=%d-%d", i*2, i*2+1,
			)
			break
		}
	}

	if transport == "" {
		return 0, fmt.Errorf("rtsp: wrong media: %v", media)
	}

	rawURL := media.ID // control
	if !strings.Contains(rawURL, "://") {
		rawURL = c.URL.String()
		if !strings.HasSuffix(rawURL, "/") && !strings.HasPrefix(media.ID, "/") {
			rawURL += "/"
		}
		rawURL += media.ID
	}
	trackURL, err := urlParse(rawURL)
	if err != nil {
		return 0, err
	}

	req := &tcp.Request{
		Method: MethodSetup,
		URL:    trackURL,
		Header: textproto.MIMEHeader{
			"Transport": {transport},
		},
	}

	res, err := c.Do(req)
	if err != nil {
		return 0, err
	}

	if c.session == "" {
		// Session: 7116520596809429228
		// Session: 216525287999;timeout=60
		if s := res.Header.Get("Session"); s != "" {
			if i := strings.IndexByte(s, ';'); i > 0 {
				c.session = s[:i]
				if i = strings.Index(s, "timeout="); i > 0 {
					if sec := core.Atoi(s[i+8:]); sec > 5 {
						c.keepalive = keepaliveDT(sec)
					}
				}
			} else {
				c.session = s
			}
		}
	}

	// we send our `interleaved`, but camera can answer with another

	// Transport: RTP/AVP/TCP;unicast;interleaved=10-11;ssrc=10117CB7
	// Transport: RTP/AVP/TCP;unicast;destination=192.168.1.111;source=192.168.1.222;interleaved=0
	s := core.Between(res.Header.Get("Transport"), "interleaved=", "-")
	if i := strings.IndexByte(s, ';'); i > 0 {
		s = s[:i]
	}
	ch, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("rtsp: wrong transport: %s", res.Header.Get("Transport"))
	}

	c.state = StateSetup

	return byte(ch), nil
}

func (c *Conn) Play() error {
	req := &tcp.Request{Method: MethodPlay, URL: c.URL}
	if err := c.Request(req); err != nil {
		return err
	}

	c.state = StatePlay

	if c.keepalive > 0 {
		c.keepaliveTS = time.Now().Add(c.keepalive)
	}

	return nil
}

func (c *Conn) Teardown() error {
	req := &tcp.Request{Method: MethodTeardown, URL: c.URL}
	return c.Request(req)
}

func (c *Conn) Close() error {
	if c.conn == nil {
		return nil
	}
	if c.state >= StateSetup {
		_ = c.Teardown()
	}
	c.state = StateNone
	conn := c.conn
	c.conn = nil
	return conn.Close()
}
