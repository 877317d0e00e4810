package liquid

import (
	"fmt"
	"net/http"

	"github.com/bytedance/sonic"
	"github.com/golang-jwt/jwt/v5"
	"resty.dev/v3"

	"lyquid/pkg/core"
)

// Header names sent with every request.
const (
	HeaderAPIVersion  = "X-Quoine-API-Version"
	HeaderAuth        = "X-Quoine-Auth"
	HeaderContentType = "Content-Type"
)

// AuthClaims is the payload of the X-Quoine-Auth token.
type AuthClaims struct {
	Path    string `json:"path"`
	Nonce   int64  `json:"nonce"`
	TokenID string `json:"token_id"`
	jwt.RegisteredClaims
}

// Protocol holds the Liquid specific wire rules: base URL, version header,
// signing and response parsing.
type Protocol struct{}

// NewProtocol creates a new Liquid protocol instance.
func NewProtocol() *Protocol {
	return &Protocol{}
}

// Name returns the protocol identifier "liquid".
func (p *Protocol) Name() string {
	return core.ExchangeName
}

// Version returns the API version sent in X-Quoine-API-Version.
func (p *Protocol) Version() string {
	return core.APIVersion
}

// BaseURL returns the production REST endpoint.
func (p *Protocol) BaseURL() string {
	return core.DefaultBaseURL
}

// Headers returns the headers sent with every request.
func (p *Protocol) Headers() map[string]string {
	return map[string]string{
		HeaderAPIVersion:  p.Version(),
		HeaderContentType: "application/json",
	}
}

// Sign returns the HS256 token binding path (including its query string) and
// nonce to the credentials' token id.
func (p *Protocol) Sign(path string, creds core.Credentials, nonce int64) (string, error) {
	if creds.TokenSecret == "" {
		return "", fmt.Errorf("token secret is required for signing")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, AuthClaims{
		Path:    path,
		Nonce:   nonce,
		TokenID: creds.TokenID,
	})
	return token.SignedString([]byte(creds.TokenSecret))
}

// VerifyToken parses a token produced by Sign and checks its signature.
func VerifyToken(tokenStr, secret string) (*AuthClaims, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	token, err := parser.ParseWithClaims(tokenStr, &AuthClaims{}, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse or verify: %w", err)
	}

	claims, ok := token.Claims.(*AuthClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	return claims, nil
}

// ParseResponse decodes a successful response body into v. Any non-2xx
// status becomes an HTTP error carrying status and raw body, and the body is
// not decoded.
func (p *Protocol) ParseResponse(resp *resty.Response, v any) error {
	if resp == nil {
		return fmt.Errorf("nil response")
	}
	return p.parse(resp.StatusCode(), resp.Bytes(), v)
}

func (p *Protocol) parse(status int, body []byte, v any) error {
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return core.NewHTTPError(status, body, errorMessage(body))
	}

	if len(body) == 0 {
		return nil
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return core.NewDecodeError(status, body, err)
	}
	return nil
}

type liquidAPIError struct {
	Message string `json:"message"`
	Errors  any    `json:"errors"`
}

// errorMessage extracts Liquid's error text from {"message": ...} or
// {"errors": {...}} bodies. It returns "" for anything else.
func errorMessage(body []byte) string {
	var apiErr liquidAPIError
	if err := sonic.Unmarshal(body, &apiErr); err != nil {
		return ""
	}
	if apiErr.Message != "" {
		return apiErr.Message
	}
	if apiErr.Errors != nil {
		if s, err := sonic.MarshalString(apiErr.Errors); err == nil {
			return s
		}
	}
	return ""
}
