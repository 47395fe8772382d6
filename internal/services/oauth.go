package services

import (
	"context"
	"fmt"
	"os"

	"github.com/desertthunder/ytxl/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"
)

// OAuthClient holds the installed-app OAuth2 configuration read from a Google client secrets file.
type OAuthClient struct {
	config *oauth2.Config
}

// NewOAuthClient reads clientSecretsPath and requests the youtube scope.
//
// redirectURL overrides the first redirect URI of the file when set.
func NewOAuthClient(clientSecretsPath, redirectURL string) (*OAuthClient, error) {
	data, err := os.ReadFile(clientSecretsPath)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot read client secrets file '%s': %v", shared.ErrMissingCredentials, clientSecretsPath, err)
	}

	config, err := google.ConfigFromJSON(data, youtube.YoutubeScope)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrInvalidCredentials, err)
	}
	if redirectURL != "" {
		config.RedirectURL = redirectURL
	}

	return &OAuthClient{config: config}, nil
}

// Config returns the underlying [oauth2.Config].
func (o *OAuthClient) Config() *oauth2.Config {
	return o.config
}

// AuthURL returns the consent page URL; offline access yields a refresh token.
func (o *OAuthClient) AuthURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// TokenSource returns a refreshing [oauth2.TokenSource] seeded with token.
func (o *OAuthClient) TokenSource(ctx context.Context, token *oauth2.Token) oauth2.TokenSource {
	return o.config.TokenSource(ctx, token)
}
