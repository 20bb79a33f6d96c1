// Package authprovider реализует клиент Kakao OAuth: обмен кода авторизации
// на токен и получение профиля пользователя. Любой сбой на любом шаге
// приводит к ошибке целиком — сессия никогда не заполняется частично.
package authprovider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/magabrotheeeer/bpass-backend/internal/models"
)

// Адреса Kakao по умолчанию.
const (
	DefaultAuthorizeURL = "https://kauth.kakao.com/oauth/authorize"
	DefaultTokenURL     = "https://kauth.kakao.com/oauth/token"
	DefaultProfileURL   = "https://kapi.kakao.com/v2/user/me"
)

// Client выполняет обмены Kakao OAuth.
type Client struct {
	restAPIKey   string
	redirectURI  string
	authorizeURL string
	tokenURL     string
	profileURL   string
	httpClient   *http.Client
}

// Option настраивает клиент (используется тестами для подмены адресов).
type Option func(*Client)

// WithEndpoints подменяет адреса token и profile endpoint.
func WithEndpoints(tokenURL, profileURL string) Option {
	return func(c *Client) {
		c.tokenURL = tokenURL
		c.profileURL = profileURL
	}
}

// NewClient создаёт новый клиент Kakao OAuth.
func NewClient(restAPIKey, redirectURI string, opts ...Option) *Client {
	c := &Client{
		restAPIKey:   restAPIKey,
		redirectURI:  redirectURI,
		authorizeURL: DefaultAuthorizeURL,
		tokenURL:     DefaultTokenURL,
		profileURL:   DefaultProfileURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// AuthorizeURL возвращает адрес страницы согласия Kakao для редиректа.
func (c *Client) AuthorizeURL() string {
	params := url.Values{}
	params.Set("client_id", c.restAPIKey)
	params.Set("redirect_uri", c.redirectURI)
	params.Set("response_type", "code")
	return c.authorizeURL + "?" + params.Encode()
}

// ExchangeCode меняет код авторизации на access token.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", c.restAPIKey)
	form.Set("redirect_uri", c.redirectURI)
	form.Set("code", code)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", errors.New("token exchange failed: " + resp.Status)
	}

	var tokenResp tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", err
	}
	if tokenResp.AccessToken == "" {
		return "", errors.New("token exchange returned empty access token")
	}
	return tokenResp.AccessToken, nil
}

// FetchProfile получает профиль пользователя по access token.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*models.User, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.profileURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded;charset=utf-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.New("profile fetch failed: " + resp.Status)
	}

	var profile profileResponse
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, err
	}

	nickname := profile.KakaoAccount.Profile.Nickname
	if nickname == "" {
		nickname = profile.Properties.Nickname
	}
	if nickname == "" {
		nickname = "Kakao User"
	}

	return &models.User{
		ID:   strconv.FormatInt(profile.ID, 10),
		Name: nickname,
	}, nil
}
