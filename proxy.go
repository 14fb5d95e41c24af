package captcha

import (
	"fmt"
	"strconv"
)

// ProxyType is the protocol a solving proxy speaks.
type ProxyType string

const (
	ProxyHTTP   ProxyType = "http"
	ProxyHTTPS  ProxyType = "https"
	ProxySocks4 ProxyType = "socks4"
	ProxySocks5 ProxyType = "socks5"
)

// Proxy configures a custom proxy for task kinds that support (or require)
// one. Providers serialize it into their own wire format.
type Proxy struct {
	Type     ProxyType
	Address  string
	Port     int
	Login    string
	Password string
}

// String renders the proxy in the "type:address:port[:login:password]" form
// used by Capsolver-style APIs. Credentials are included, so don't log it.
func (p Proxy) String() string {
	s := string(p.Type) + ":" + p.Address + ":" + strconv.Itoa(p.Port)
	if p.Login != "" && p.Password != "" {
		s += ":" + p.Login + ":" + p.Password
	}
	return s
}

// RuCaptchaType returns the proxy type string for RuCaptcha-style APIs,
// which treat https proxies as http.
func (p Proxy) RuCaptchaType() string {
	if p.Type == ProxyHTTPS {
		return string(ProxyHTTP)
	}
	return string(p.Type)
}

// Redacted renders the proxy endpoint without credentials, for logs.
func (p Proxy) Redacted() string {
	return fmt.Sprintf("%s:%s:%d", p.Type, p.Address, p.Port)
}
