package services

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"gemblog/internal/config"
	"gemblog/internal/metrics"
	"gemblog/internal/models"

	"github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"
)

// TokenVerifier resolves a GitHub personal access token to the identity it
// belongs to. It is independent of the admin login.
type TokenVerifier struct {
	baseURL *url.URL
	log     *slog.Logger
}

// NewTokenVerifier creates a TokenVerifier. An empty base URL means the
// public GitHub API.
func NewTokenVerifier(cfg config.Github, log *slog.Logger) (*TokenVerifier, error) {
	v := &TokenVerifier{log: log}
	if cfg.BaseURL != "" {
		raw := cfg.BaseURL
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return nil, err
		}
		v.baseURL = u
	}
	return v, nil
}

// Verify returns the identity for token, or nil when the token is empty,
// rejected, or the call fails. Failures are only logged.
func (v *TokenVerifier) Verify(ctx context.Context, token string) *models.Identity {
	if token == "" {
		metrics.TokenVerificationsTotal.WithLabelValues("skipped").Inc()
		return nil
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	client := github.NewClient(oauth2.NewClient(ctx, ts))
	if v.baseURL != nil {
		client.BaseURL = v.baseURL
	}

	user, _, err := client.Users.Get(ctx, "")
	if err != nil {
		v.log.Warn("token verification failed", slog.Any("err", err))
		metrics.TokenVerificationsTotal.WithLabelValues("error").Inc()
		return nil
	}

	metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()
	return &models.Identity{Login: user.GetLogin(), ID: user.GetID()}
}
