// Package identity exchanges a Google ID token for the account it names.
package identity

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"Brandi/config"

	"github.com/tidwall/gjson"
	"google.golang.org/api/idtoken"
)

const DefaultTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidToken = errors.New("identity: token rejected")

// Identity is what sign-in needs from the provider.
type Identity struct {
	Email   string
	Name    string
	Subject string
}

type Provider interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewProvider picks the verifier named by google.verify_mode.
func NewProvider(conf *config.Config) Provider {
	g := conf.Google
	if g == nil {
		g = &config.Google{}
	}
	if g.VerifyMode == config.GoogleVerifyIDToken {
		return &IDTokenProvider{Audience: g.ClientID}
	}
	timeout := g.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	endpoint := g.TokenInfoURL
	if endpoint == "" {
		endpoint = DefaultTokenInfoURL
	}
	return &TokenInfoProvider{
		Endpoint: endpoint,
		Audience: g.ClientID,
		Client:   &http.Client{Timeout: timeout},
	}
}

// TokenInfoProvider asks Google's tokeninfo endpoint about the token. One call
// per sign-in, no retry.
type TokenInfoProvider struct {
	Endpoint string
	// Audience, when set, must equal the token's aud claim.
	Audience string
	Client   *http.Client
}

func (p *TokenInfoProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	u := p.Endpoint + "?id_token=" + url.QueryEscape(token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: tokeninfo request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("identity: read tokeninfo: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: tokeninfo status %d", ErrInvalidToken, resp.StatusCode)
	}

	res := gjson.ParseBytes(body)
	if p.Audience != "" && res.Get("aud").String() != p.Audience {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidToken)
	}
	id := &Identity{
		Email:   res.Get("email").String(),
		Name:    res.Get("name").String(),
		Subject: res.Get("sub").String(),
	}
	if id.Subject == "" || id.Email == "" {
		return nil, fmt.Errorf("%w: missing sub or email", ErrInvalidToken)
	}
	return id, nil
}

// IDTokenProvider checks the token signature locally against Google's certs.
type IDTokenProvider struct {
	Audience string
}

func (p *IDTokenProvider) Verify(ctx context.Context, token string) (*Identity, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}
	payload, err := idtoken.Validate(ctx, token, p.Audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	id := &Identity{Subject: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		id.Email = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		id.Name = v
	}
	if id.Subject == "" || id.Email == "" {
		return nil, fmt.Errorf("%w: missing sub or email", ErrInvalidToken)
	}
	return id, nil
}
