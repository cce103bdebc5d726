package twitter

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"fmt"
	"sort"
	"strings"
)

const (
	SignatureMethod = "HMAC-SHA1"
	OAuthVersion    = "1.0"
)

// Credentials are the application and user secrets a request is signed with.
type Credentials struct {
	ConsumerKey       string `json:"consumer_key"`
	ConsumerSecret    string `json:"consumer_secret"`
	AccessToken       string `json:"access_token"`
	AccessTokenSecret string `json:"access_token_secret"`
}

func isUnreserved(c byte) bool {
	return 'A' <= c && c <= 'Z' ||
		'a' <= c && c <= 'z' ||
		'0' <= c && c <= '9' ||
		c == '-' || c == '.' || c == '_' || c == '~'
}

// PercentEncode escapes every byte outside the RFC 3986 unreserved set as %XX.
func PercentEncode(s string) string {
	const hex = "0123456789ABCDEF"

	var out strings.Builder
	out.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			out.WriteByte(c)
			continue
		}
		out.WriteByte('%')
		out.WriteByte(hex[c>>4])
		out.WriteByte(hex[c&15])
	}
	return out.String()
}

// Signer produces OAuth 1.0a HMAC-SHA1 signatures for a set of credentials.
type Signer struct {
	Credentials Credentials
}

func (s Signer) oauthParams(nonce, timestamp string) map[string]string {
	return map[string]string{
		"oauth_consumer_key":     s.Credentials.ConsumerKey,
		"oauth_nonce":            nonce,
		"oauth_signature_method": SignatureMethod,
		"oauth_timestamp":        timestamp,
		"oauth_token":            s.Credentials.AccessToken,
		"oauth_version":          OAuthVersion,
	}
}

func sortedKeys(params map[string]string) []string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ParameterString joins the encoded parameters sorted by name as `name=value&...`.
func ParameterString(params map[string]string) string {
	pairs := make([]string, 0, len(params))
	for _, k := range sortedKeys(params) {
		pairs = append(pairs, fmt.Sprintf("%s=%s", PercentEncode(k), PercentEncode(params[k])))
	}
	return strings.Join(pairs, "&")
}

// BaseString is the text the signature is computed over. `params` are the request
// parameters, the oauth parameters are added to them.
func (s Signer) BaseString(method, rawURL string, params map[string]string, nonce, timestamp string) string {
	all := s.oauthParams(nonce, timestamp)
	for k, v := range params {
		all[k] = v
	}
	return strings.Join([]string{
		strings.ToUpper(method),
		PercentEncode(rawURL),
		PercentEncode(ParameterString(all)),
	}, "&")
}

// SigningKey is the encoded consumer secret and token secret joined by "&".
func (s Signer) SigningKey() string {
	return PercentEncode(s.Credentials.ConsumerSecret) + "&" + PercentEncode(s.Credentials.AccessTokenSecret)
}

// Sign returns the base64 encoded oauth_signature of a request.
func (s Signer) Sign(method, rawURL string, params map[string]string, nonce, timestamp string) string {
	mac := hmac.New(sha1.New, []byte(s.SigningKey()))
	mac.Write([]byte(s.BaseString(method, rawURL, params, nonce, timestamp)))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// Header returns the value of the Authorization header of a request.
func (s Signer) Header(method, rawURL string, params map[string]string, nonce, timestamp string) string {
	oauth := s.oauthParams(nonce, timestamp)
	oauth["oauth_signature"] = s.Sign(method, rawURL, params, nonce, timestamp)

	fields := make([]string, 0, len(oauth))
	for _, k := range sortedKeys(oauth) {
		fields = append(fields, fmt.Sprintf(`%s="%s"`, PercentEncode(k), PercentEncode(oauth[k])))
	}
	return "OAuth " + strings.Join(fields, ", ")
}
