// Package onvif - minimal ONVIF client for the device and media services.
// Raw SOAP over a single HTTP POST per operation, responses scraped with
// regexps instead of a full XML stack - cameras routinely produce XML that
// schema-bound decoders choke on.
package onvif

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"html"
	"io"
	"net"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"
)

const PathDevice = "/onvif/device_service"

const Timeout = time.Second * 5

// Profile - one camera-side media configuration.
type Profile struct {
	Token string
	Name  string
}

type Client struct {
	user *url.Userinfo

	deviceURL string
	mediaURL  string
}

// NewClient connects to the device service at rawURL and discovers the
// media service address via GetCapabilities. Credentials are used for the
// WS-Security header on every request.
func NewClient(rawURL, username, password string) (*Client, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	if username != "" {
		u.User = url.UserPassword(username, password)
	}

	baseURL := "http://" + u.Host

	client := &Client{user: u.User}
	client.deviceURL = baseURL + GetPath(u.Path, PathDevice)

	b, err := client.Request(client.deviceURL,
		`<tds:GetCapabilities><tds:Category>Media</tds:Category></tds:GetCapabilities>`)
	if err != nil {
		return nil, err
	}

	s := FindTagValue(b, "Media.+?XAddr")
	client.mediaURL = baseURL + GetPath(s, "/onvif/media_service")

	return client, nil
}

var (
	profileTokenRE = regexp.MustCompile(`Profiles[^>]+token="([^"]+)`)
	profileNameRE  = regexp.MustCompile(`Profiles[^>]*>\s*<[a-z]+:Name>([^<]+)`)
)

// GetProfiles returns every media profile the camera reports, in the
// camera's order.
func (c *Client) GetProfiles() ([]Profile, error) {
	b, err := c.Request(c.mediaURL, `<trt:GetProfiles/>`)
	if err != nil {
		return nil, err
	}

	var profiles []Profile

	for _, m := range profileTokenRE.FindAllStringSubmatch(string(b), 32) {
		profiles = append(profiles, Profile{Token: m[1]})
	}

	for i, m := range profileNameRE.FindAllStringSubmatch(string(b), 32) {
		if i < len(profiles) {
			profiles[i].Name = m[1]
		}
	}

	return profiles, nil
}

// GetStreamURI requests the RTP-Unicast RTSP location for the profile.
// The URI comes back HTML-escaped and sometimes padded with whitespace.
func (c *Client) GetStreamURI(token string) (string, error) {
	b, err := c.Request(c.mediaURL, `<trt:GetStreamUri>
	<trt:StreamSetup>
		<tt:Stream>RTP-Unicast</tt:Stream>
		<tt:Transport><tt:Protocol>RTSP</tt:Protocol></tt:Transport>
	</trt:StreamSetup>
	<trt:ProfileToken>`+token+`</trt:ProfileToken>
</trt:GetStreamUri>`)
	if err != nil {
		return "", err
	}

	rawURL := FindTagValue(b, "Uri")
	rawURL = strings.TrimSpace(html.UnescapeString(rawURL))
	if rawURL == "" {
		return "", fmt.Errorf("onvif: no stream uri for token %q", token)
	}

	return rawURL, nil
}

// GetDeviceName for logging.
func (c *Client) GetDeviceName() (string, error) {
	b, err := c.Request(c.deviceURL, `<tds:GetDeviceInformation/>`)
	if err != nil {
		return "", err
	}
	return FindTagValue(b, "Manufacturer") + " " + FindTagValue(b, "Model"), nil
}

// Request posts one SOAP operation. The HTTP exchange is hand-rolled over a
// raw TCP conn because some cameras send broken responses the stdlib client
// rejects outright.
func (c *Client) Request(rawURL, operation string) ([]byte, error) {
	if rawURL == "" {
		return nil, errors.New("onvif: unsupported service")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, err
	}

	host := u.Host
	if u.Port() == "" {
		host += ":80"
	}

	conn, err := net.DialTimeout("tcp", host, Timeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	e := NewEnvelopeWithUser(c.user)
	e.Append(operation)
	buf := e.Bytes()

	req := &http.Request{
		Method:        "POST",
		URL:           u,
		Proto:         "HTTP/1.1",
		Header:        http.Header{"Content-Type": {"application/soap+xml;charset=utf-8"}},
		Body:          io.NopCloser(bytes.NewReader(buf)),
		ContentLength: int64(len(buf)),
		Close:         true,
	}

	_ = conn.SetWriteDeadline(time.Now().Add(Timeout))
	if err = req.Write(conn); err != nil {
		return nil, err
	}

	rd := bufio.NewReaderSize(conn, 16*1024)

	_ = conn.SetReadDeadline(time.Now().Add(Timeout))
	res, err := http.ReadResponse(rd, req)
	if err != nil {
		// some cameras skip the status line, salvage the XML if present
		if buf, err = io.ReadAll(rd); err != nil {
			return nil, err
		}
		if i := bytes.Index(buf, []byte("<?xml")); i > 0 {
			return buf[i:], nil
		}
		return nil, fmt.Errorf("onvif: broken response: %.100s", buf)
	}

	if res.StatusCode != http.StatusOK {
		return nil, errors.New("onvif: wrong response " + res.Status)
	}

	return io.ReadAll(res.Body)
}
