package rtsp

import (
	"bufio"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/camkit/camfeed/pkg/core"
	"github.com/camkit/camfeed/pkg/tcp"
	"github.com/pion/rtcp"
)

const (
	ProtoRTSP      = "RTSP/1.0"
	MethodOptions  = "OPTIONS"
	MethodDescribe = "DESCRIBE"
	MethodSetup    = "SETUP"
	MethodPlay     = "PLAY"
	MethodTeardown = "TEARDOWN"
)

type State byte

const (
	StateNone State = iota
	StateConn
	StateSetup
	StatePlay
)

var Timeout = time.Second * 10

// Conn is a TCP-interleaved RTSP client. The caller drives it:
// Dial > Options > Describe > SetupMedia... > Play, then pulls
// packets with ReadPacket until error or Close.
type Conn struct {
	UserAgent string
	URL       *url.URL
	Medias    []*core.Media
	SDP       string

	auth     *tcp.Auth
	conn     net.Conn
	reader   *bufio.Reader
	sequence int
	session  string
	state    State

	keepalive   time.Duration
	keepaliveTS time.Time

	reports map[byte]*rtcp.SenderReport

	recv int
}

func NewClient(uri string) (*Conn, error) {
	u, err := url.Parse(uri)
	if err != nil {
		return nil, err
	}

	if strings.IndexByte(u.Host, ':') < 0 {
		u.Host += ":554"
	}

	c := &Conn{URL: u}

	// remove UserInfo from URL
	c.auth = tcp.NewAuth(u.User)
	u.User = nil

	return c, nil
}

func (c *Conn) Dial() (err error) {
	c.conn, err = net.DialTimeout("tcp", c.URL.Host, Timeout)
	if err != nil {
		return
	}

	var tlsConf *tls.Config
	switch c.URL.Scheme {
	case "rtsps":
		tlsConf = &tls.Config{ServerName: c.URL.Hostname()}
	case "rtspx":
		c.URL.Scheme = "rtsps"
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}
	if tlsConf != nil {
		tlsConn := tls.Client(c.conn, tlsConf)
		if err = tlsConn.Handshake(); err != nil {
			return err
		}
		c.conn = tlsConn
	}

	c.reader = bufio.NewReaderSize(c.conn, core.BufferSize)
	c.session = ""
	c.sequence = 0
	c.state = StateConn

	return nil
}

// Request sends only the request, without waiting for a response.
func (c *Conn) Request(req *tcp.Request) error {
	if req.Proto == "" {
		req.Proto = ProtoRTSP
	}

	if req.Header == nil {
		req.Header = make(textproto.MIMEHeader)
	}

	c.sequence++
	req.Header.Set("CSeq", strconv.Itoa(c.sequence))

	c.auth.Write(req)

	if c.UserAgent != "" {
		req.Header.Set("User-Agent", c.UserAgent)
	}

	if c.session != "" {
		req.Header.Set("Session", c.session)
	}

	if req.Body != nil {
		req.Header.Set("Content-Length", strconv.Itoa(len(req.Body)))
	}

	if err := c.conn.SetWriteDeadline(time.Now().Add(Timeout)); err != nil {
		return err
	}

	return req.Write(c.conn)
}

// Do sends the request and reads the response, retrying once after
// a 401 challenge.
func (c *Conn) Do(req *tcp.Request) (*tcp.Response, error) {
	if err := c.Request(req); err != nil {
		return nil, err
	}

	if err := c.conn.SetReadDeadline(time.Now().Add(Timeout)); err != nil {
		return nil, err
	}

	res, err := tcp.ReadResponse(c.reader)
	if err != nil {
		return nil, err
	}

	if res.StatusCode == http.StatusUnauthorized {
		switch c.auth.Method {
		case tcp.AuthNone:
			return nil, errors.New("rtsp: user/pass not provided")
		case tcp.AuthUnknown:
			if c.auth.Read(res) {
				return c.Do(req)
			}
		default:
			return nil, errors.New("rtsp: wrong user/pass")
		}
	}

	if res.StatusCode != http.StatusOK {
		return res, fmt.Errorf("rtsp: wrong response on %s: %s", req.Method, res.Status)
	}

	return res, nil
}

// Recv returns total interleaved payload bytes read so far.
func (c *Conn) Recv() int {
	return c.recv
}
