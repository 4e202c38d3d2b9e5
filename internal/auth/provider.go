package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/coreos/go-oidc/v3/oidc"

	"ticketly-gateway/internal/logger"
)

// TokenSet is the provider's response to a grant exchange.
type TokenSet struct {
	AccessToken  string `json:"access_token"`
	IDToken      string `json:"id_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

// IdentityAPI is the slice of the provider the session manager needs.
type IdentityAPI interface {
	PasswordGrant(ctx context.Context, email, password string) (*TokenSet, error)
	RefreshGrant(ctx context.Context, refreshToken string) (*TokenSet, error)
	Revoke(ctx context.Context, refreshToken string) error
}

// Provider talks to the OIDC identity provider. Token grants go through
// the discovered token endpoint; account management uses the provider's
// REST surface under the same issuer.
type Provider struct {
	issuer       string
	clientID     string
	clientSecret string
	client       *http.Client
	verifier     *oidc.IDTokenVerifier
	logger       *logger.Logger
}

func NewProvider(ctx context.Context, issuer, clientID, clientSecret string, httpClient *http.Client, log *logger.Logger) (*Provider, error) {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}

	oidcProvider, err := oidc.NewProvider(ctx, issuer)
	if err != nil {
		return nil, fmt.Errorf("failed to create OIDC provider: %w", err)
	}

	verifier := oidcProvider.Verifier(&oidc.Config{
		SkipClientIDCheck: true,
	})

	return &Provider{
		issuer:       strings.TrimRight(issuer, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		client:       httpClient,
		verifier:     verifier,
		logger:       log,
	}, nil
}

// VerifyIDToken checks an ID token against the provider's keys.
func (p *Provider) VerifyIDToken(ctx context.Context, rawToken string) error {
	if p.verifier == nil {
		return nil
	}
	_, err := p.verifier.Verify(ctx, rawToken)
	return err
}

func (p *Provider) grant(ctx context.Context, data url.Values) (*TokenSet, error) {
	tokenURL := p.issuer + "/protocol/openid-connect/token"
	data.Set("client_id", p.clientID)
	if p.clientSecret != "" {
		data.Set("client_secret", p.clientSecret)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to create token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Error("AUTH", fmt.Sprintf("Token request failed: %v", err))
		return nil, fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		p.logger.Warn("AUTH", fmt.Sprintf("Token exchange rejected: %s", resp.Status))
		return nil, fmt.Errorf("token exchange failed, status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var tokens TokenSet
	if err := json.NewDecoder(resp.Body).Decode(&tokens); err != nil {
		return nil, fmt.Errorf("failed to decode token response: %w", err)
	}
	return &tokens, nil
}

func (p *Provider) PasswordGrant(ctx context.Context, email, password string) (*TokenSet, error) {
	data := url.Values{}
	data.Set("grant_type", "password")
	data.Set("username", email)
	data.Set("password", password)
	data.Set("scope", "openid email profile")

	tokens, err := p.grant(ctx, data)
	if err != nil {
		return nil, err
	}
	if tokens.IDToken != "" {
		if err := p.VerifyIDToken(ctx, tokens.IDToken); err != nil {
			return nil, fmt.Errorf("invalid ID token: %w", err)
		}
	}
	return tokens, nil
}

func (p *Provider) RefreshGrant(ctx context.Context, refreshToken string) (*TokenSet, error) {
	data := url.Values{}
	data.Set("grant_type", "refresh_token")
	data.Set("refresh_token", refreshToken)
	return p.grant(ctx, data)
}

// Revoke invalidates a refresh token, ending the provider-side session.
func (p *Provider) Revoke(ctx context.Context, refreshToken string) error {
	data := url.Values{}
	data.Set("client_id", p.clientID)
	if p.clientSecret != "" {
		data.Set("client_secret", p.clientSecret)
	}
	data.Set("refresh_token", refreshToken)

	logoutURL := p.issuer + "/protocol/openid-connect/logout"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, logoutURL, strings.NewReader(data.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create logout request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("logout failed with status %d", resp.StatusCode)
	}
	return nil
}

// ---- account management ----

func (p *Provider) accountCall(ctx context.Context, method, path, bearer string, body interface{}, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode account request: %w", err)
		}
		reqBody = strings.NewReader(string(payload))
	}

	req, err := http.NewRequestWithContext(ctx, method, p.issuer+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create account request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("identity provider unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("account call failed, status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Register creates a new provider account.
func (p *Provider) Register(ctx context.Context, email, password, displayName string) error {
	body := map[string]string{
		"email":       email,
		"password":    password,
		"displayName": displayName,
	}
	return p.accountCall(ctx, http.MethodPost, "/accounts", "", body, nil)
}

// SendVerificationEmail asks the provider to (re)send the verification
// mail for the signed-in account.
func (p *Provider) SendVerificationEmail(ctx context.Context, accessToken string) error {
	return p.accountCall(ctx, http.MethodPost, "/accounts/send-verification", accessToken, nil, nil)
}

func (p *Provider) SendPasswordReset(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return p.accountCall(ctx, http.MethodPost, "/accounts/reset-password", "", body, nil)
}

func (p *Provider) ConfirmPasswordReset(ctx context.Context, code, newPassword string) error {
	body := map[string]string{"code": code, "newPassword": newPassword}
	return p.accountCall(ctx, http.MethodPost, "/accounts/reset-password/confirm", "", body, nil)
}

// SignInMethods lists how an email can sign in, for the login form's
// provider hints.
func (p *Provider) SignInMethods(ctx context.Context, email string) ([]string, error) {
	var out struct {
		Methods []string `json:"methods"`
	}
	path := "/accounts/sign-in-methods?email=" + url.QueryEscape(email)
	if err := p.accountCall(ctx, http.MethodGet, path, "", nil, &out); err != nil {
		return nil, err
	}
	return out.Methods, nil
}

func (p *Provider) UpdateDisplayName(ctx context.Context, accessToken, displayName string) error {
	body := map[string]string{"displayName": displayName}
	return p.accountCall(ctx, http.MethodPost, "/accounts/profile", accessToken, body, nil)
}
