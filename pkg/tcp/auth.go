package tcp

import (
	"crypto/md5"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"
)

// Auth - lazy Basic/Digest auth state for a request/response client.
// Method is selected from the first 401 WWW-Authenticate challenge.
type Auth struct {
	Method byte

	user   string
	pass   string
	header string

	realm string
	nonce string
	qop   string
}

const (
	AuthNone byte = iota
	AuthUnknown
	AuthBasic
	AuthDigest
)

func NewAuth(user *url.Userinfo) *Auth {
	a := new(Auth)
	a.user = user.Username()
	a.pass, _ = user.Password()
	if a.user != "" {
		a.Method = AuthUnknown
	}
	return a
}

// Read the WWW-Authenticate challenge. Returns true when the request
// should be retried with credentials.
func (a *Auth) Read(res *Response) bool {
	auth := res.Header.Get("WWW-Authenticate")
	if len(auth) < 6 {
		return false
	}

	switch auth[:6] {
	case "Basic ":
		a.header = "Basic " + B64(a.user, a.pass)
		a.Method = AuthBasic
		return true
	case "Digest":
		a.realm = Between(auth, `realm="`, `"`)
		a.nonce = Between(auth, `nonce="`, `"`)
		a.qop = Between(auth, `qop="`, `"`)
		a.Method = AuthDigest
		return true
	default:
		return false
	}
}

func (a *Auth) Write(req *Request) {
	if a == nil {
		return
	}

	switch a.Method {
	case AuthBasic:
		req.Header.Set("Authorization", a.header)
	case AuthDigest:
		uri := req.URL.String()
		ha1 := HexMD5(a.user, a.realm, a.pass)
		ha2 := HexMD5(req.Method, uri)

		var header string
		switch a.qop {
		case "auth":
			nc := "00000001"
			cnonce := HexMD5(uri)[:8]
			response := HexMD5(ha1, a.nonce, nc, cnonce, a.qop, ha2)
			header = fmt.Sprintf(
				`Digest username="%s", realm="%s", nonce="%s", uri="%s", qop=%s, nc=%s, cnonce="%s", response="%s"`,
				a.user, a.realm, a.nonce, uri, a.qop, nc, cnonce, response,
			)
		default:
			response := HexMD5(ha1, a.nonce, ha2)
			header = fmt.Sprintf(
				`Digest username="%s", realm="%s", nonce="%s", uri="%s", response="%s"`,
				a.user, a.realm, a.nonce, uri, response,
			)
		}

		req.Header.Set("Authorization", header)
	}
}

func Between(s, sub1, sub2 string) string {
	i := strings.Index(s, sub1)
	if i < 0 {
		return ""
	}
	s = s[i+len(sub1):]
	if i = strings.Index(s, sub2); i < 0 {
		return ""
	}
	return s[:i]
}

func HexMD5(s ...string) string {
	b := md5.Sum([]byte(strings.Join(s, ":")))
	return hex.EncodeToString(b[:])
}

func B64(s ...string) string {
	b := []byte(strings.Join(s, ":"))
	return base64.StdEncoding.EncodeToString(b)
}
