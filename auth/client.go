package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/LucasDG1/vraag-en-aanbod/logging"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sony/gobreaker"
)

// Client talks to a GoTrue-compatible auth provider over HTTP. All
// calls go through a circuit breaker so a dead provider fails fast
// instead of piling up requests.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	jwtSecret  []byte
}

// NewClient builds the provider client. When jwtSecret is non-empty,
// access tokens are verified locally against it; otherwise Verify falls
// back to the provider's /user endpoint.
func NewClient(baseURL, jwtSecret string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "AuthProviderCB",
		MaxRequests: 1,
		Timeout:     5 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures > 3
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logging.Logger.Infof("Event ID: CIRCUIT_BREAKER_STATE_CHANGE, Description: Circuit Breaker '%s' changed from '%s' to '%s'", name, from.String(), to.String())
		},
	})
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		breaker:    breaker,
		jwtSecret:  []byte(jwtSecret),
	}
}

type signUpRequest struct {
	Email    string            `json:"email"`
	Password string            `json:"password"`
	Data     map[string]string `json:"data,omitempty"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	User        struct {
		Email    string `json:"email"`
		Metadata struct {
			Name string `json:"name"`
		} `json:"user_metadata"`
	} `json:"user"`
}

func (c *Client) SignUp(ctx context.Context, email, password, name string) error {
	body := signUpRequest{
		Email:    email,
		Password: password,
		Data:     map[string]string{"name": name},
	}
	status, _, err := c.post(ctx, "/signup", body)
	if err != nil {
		return err
	}
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity || status == http.StatusConflict:
		return ErrAccountExists
	default:
		return fmt.Errorf("auth provider signup failed with status %d", status)
	}
}

func (c *Client) SignIn(ctx context.Context, email, password string) (Identity, string, error) {
	body := map[string]string{"email": email, "password": password}
	status, payload, err := c.post(ctx, "/token?grant_type=password", body)
	if err != nil {
		return Identity{}, "", err
	}
	if status == http.StatusBadRequest || status == http.StatusUnauthorized {
		return Identity{}, "", ErrInvalidCredentials
	}
	if status < 200 || status >= 300 {
		return Identity{}, "", fmt.Errorf("auth provider login failed with status %d", status)
	}

	var token tokenResponse
	if err := json.Unmarshal(payload, &token); err != nil {
		return Identity{}, "", fmt.Errorf("failed to decode auth provider response: %v", err)
	}
	identity := Identity{Email: token.User.Email, Name: token.User.Metadata.Name}
	return identity, token.AccessToken, nil
}

type tokenClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func (c *Client) Verify(ctx context.Context, token string) (Identity, error) {
	if len(c.jwtSecret) > 0 {
		return verifyWithSecret(token, c.jwtSecret)
	}

	status, payload, err := c.get(ctx, "/user", token)
	if err != nil {
		return Identity{}, err
	}
	if status == http.StatusUnauthorized || status == http.StatusForbidden {
		return Identity{}, ErrInvalidToken
	}
	if status < 200 || status >= 300 {
		return Identity{}, fmt.Errorf("auth provider lookup failed with status %d", status)
	}

	var identity struct {
		Email    string `json:"email"`
		Metadata struct {
			Name string `json:"name"`
		} `json:"user_metadata"`
	}
	if err := json.Unmarshal(payload, &identity); err != nil {
		return Identity{}, fmt.Errorf("failed to decode auth provider response: %v", err)
	}
	return Identity{Email: identity.Email, Name: identity.Metadata.Name}, nil
}

func verifyWithSecret(token string, secret []byte) (Identity, error) {
	claims := &tokenClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	})
	if err != nil || !parsed.Valid {
		return Identity{}, ErrInvalidToken
	}
	if claims.Email == "" {
		return Identity{}, ErrInvalidToken
	}
	return Identity{Email: claims.Email, Name: claims.Name}, nil
}

func (c *Client) post(ctx context.Context, path string, body interface{}) (int, []byte, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return 0, nil, err
	}
	return c.do(ctx, http.MethodPost, path, bytes.NewReader(encoded), "")
}

func (c *Client) get(ctx context.Context, path, bearer string) (int, []byte, error) {
	return c.do(ctx, http.MethodGet, path, nil, bearer)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, bearer string) (int, []byte, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		if bearer != "" {
			req.Header.Set("Authorization", "Bearer "+bearer)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		payload, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return providerResponse{status: resp.StatusCode, payload: payload}, nil
	})
	if err != nil {
		return 0, nil, fmt.Errorf("auth provider unreachable: %v", err)
	}
	resp := result.(providerResponse)
	return resp.status, resp.payload, nil
}

type providerResponse struct {
	status  int
	payload []byte
}
