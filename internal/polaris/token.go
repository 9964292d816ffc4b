package polaris

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// TokenScope is the OAuth scope requested for the bootstrap token.
const TokenScope = "PRINCIPAL_ROLE:ALL"

// ExchangeToken trades a credential pair for a bearer token via the OAuth
// token endpoint using the client_credentials grant. The id and secret also
// ride in a bearer-style Authorization header, which is what the Polaris
// quickstart endpoint expects alongside the form body. Any non-200 response
// yields an *APIError; callers must treat that as fatal since every
// management call needs the token.
func (c *Client) ExchangeToken(ctx context.Context, clientID, clientSecret string) (string, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {clientID},
		"client_secret": {clientSecret},
		"scope":         {TokenScope},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL(), strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("creating token request: %w", err)
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s:%s", clientID, clientSecret))
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("calling token endpoint: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var token tokenResponse
	if err := json.Unmarshal(body, &token); err != nil {
		return "", fmt.Errorf("decoding token response: %w", err)
	}
	return token.AccessToken, nil
}
