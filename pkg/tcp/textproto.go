// Package tcp - text-based request/response protocol over TCP (RTSP flavour
// of HTTP/1.1), plus the client auth state machine.
package tcp

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
)

const EndLine = "\r\n"

// Request like http.Request, but with any proto
type Request struct {
	Method string
	URL    *url.URL
	Proto  string
	Header textproto.MIMEHeader
	Body   []byte
}

func (r *Request) String() string {
	s := r.Method + " " + r.URL.String() + " " + r.Proto + EndLine
	for k, v := range r.Header {
		s += k + ": " + v[0] + EndLine
	}
	s += EndLine
	if r.Body != nil {
		s += string(r.Body)
	}
	return s
}

func (r *Request) Write(w io.Writer) (err error) {
	_, err = w.Write([]byte(r.String()))
	return
}

// Response like http.Response, but with any proto
type Response struct {
	Status     string
	StatusCode int
	Proto      string
	Header     textproto.MIMEHeader
	Body       []byte
	Request    *Request
}

func (r Response) String() string {
	s := r.Proto + " " + r.Status + EndLine
	for k, v := range r.Header {
		s += k + ": " + v[0] + EndLine
	}
	s += EndLine
	if r.Body != nil {
		s += string(r.Body)
	}
	return s
}

func (r *Response) Write(w io.Writer) (err error) {
	_, err = w.Write([]byte(r.String()))
	return
}

func ReadResponse(r *bufio.Reader) (*Response, error) {
	tp := textproto.NewReader(r)

	line, err := tp.ReadLine()
	if err != nil {
		return nil, err
	}
	if line == "" {
		return nil, errors.New("tcp: empty response")
	}

	ss := strings.SplitN(line, " ", 3)
	if len(ss) != 3 {
		return nil, fmt.Errorf("tcp: malformed response: %s", line)
	}

	res := &Response{
		Status: ss[1] + " " + ss[2],
		Proto:  ss[0],
	}

	if res.StatusCode, err = strconv.Atoi(ss[1]); err != nil {
		return nil, err
	}

	if res.Header, err = tp.ReadMIMEHeader(); err != nil {
		return nil, err
	}

	if val := res.Header.Get("Content-Length"); val != "" {
		var n int
		if n, err = strconv.Atoi(val); err != nil {
			return nil, err
		}
		res.Body = make([]byte, n)
		if _, err = io.ReadFull(r, res.Body); err != nil {
			return nil, err
		}
	}

	return res, nil
}

func ReadRequest(r *bufio.Reader) (*Request, error) {
	tp := textproto.NewReader(r)

	line, err := tp.ReadLine()
	if err != nil {
		return nil, err
	}

	ss := strings.SplitN(line, " ", 3)
	if len(ss) != 3 {
		return nil, fmt.Errorf("tcp: malformed request: %s", line)
	}

	req := &Request{
		Method: ss[0],
		Proto:  ss[2],
	}

	if req.URL, err = url.Parse(ss[1]); err != nil {
		return nil, err
	}

	if req.Header, err = tp.ReadMIMEHeader(); err != nil {
		return nil, err
	}

	if val := req.Header.Get("Content-Length"); val != "" {
		var n int
		if n, err = strconv.Atoi(val); err != nil {
			return nil, err
		}
		req.Body = make([]byte, n)
		if _, err = io.ReadFull(r, req.Body); err != nil {
			return nil, err
		}
	}

	return req, nil
}
