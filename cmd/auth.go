package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/desertthunder/ytxl/internal/server"
	"github.com/desertthunder/ytxl/internal/services"
	"github.com/desertthunder/ytxl/internal/shared"
	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"
)

var authTimeout = 2 * time.Minute

// AuthLogin runs the OAuth2 installed-app flow and saves the token for later playlist changes.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	client, err := r.oauthClient()
	if err != nil {
		return err
	}

	token, err := r.doOAuth(ctx, client)
	if err != nil {
		return err
	}

	if err := shared.SaveToken(r.config.YouTube.TokenPath, token); err != nil {
		return err
	}

	r.writePlainln("✓ Authorization successful")
	r.writePlain("✓ Token saved to %s\n\n", r.config.YouTube.TokenPath)
	r.writePlain("You can now use: ytxl playlist add\n")
	return nil
}

// AuthStatus reports whether a usable token has been saved.
func (r *Runner) AuthStatus(ctx context.Context, cmd *cli.Command) error {
	token, err := shared.LoadToken(r.config.YouTube.TokenPath)
	if err != nil {
		r.writePlain("✗ Not authenticated (%v)\n", err)
		r.writePlain("Run 'ytxl auth login' to authorize.\n")
		return nil
	}

	r.writePlain("✓ Token found at %s\n", r.config.YouTube.TokenPath)
	switch {
	case token.Expiry.IsZero():
		r.writePlain("Expiry: none\n")
	case token.Valid():
		r.writePlain("Expires: %s\n", token.Expiry.Format(time.RFC3339))
	default:
		r.writePlain("Expired: %s\n", token.Expiry.Format(time.RFC3339))
	}
	if token.RefreshToken != "" {
		r.writePlain("Refresh token: present\n")
	} else {
		r.writePlain("Refresh token: missing (run 'ytxl auth login' again)\n")
	}
	return nil
}

func (r *Runner) oauthClient() (*services.OAuthClient, error) {
	return services.NewOAuthClient(r.config.YouTube.ClientSecretsPath, r.config.Server.RedirectURL())
}

// savedTokenService creates a user-authorized service from the saved token, without prompting.
func (r *Runner) savedTokenService(ctx context.Context) (services.Service, error) {
	client, err := r.oauthClient()
	if err != nil {
		return nil, err
	}

	token, err := shared.LoadToken(r.config.YouTube.TokenPath)
	if err != nil {
		return nil, fmt.Errorf("%w (run 'ytxl auth login')", err)
	}
	return r.tokenService(ctx, client, token)
}

// oauthService creates a user-authorized service, running the browser flow when no token has been saved.
func (r *Runner) oauthService(ctx context.Context) (services.Service, error) {
	client, err := r.oauthClient()
	if err != nil {
		return nil, err
	}

	token, err := shared.LoadToken(r.config.YouTube.TokenPath)
	if err != nil {
		if !errors.Is(err, shared.ErrNotAuthenticated) && !errors.Is(err, shared.ErrInvalidCredentials) {
			return nil, err
		}

		r.logger.Info("no saved token, starting authorization", "path", r.config.YouTube.TokenPath)
		if token, err = r.doOAuth(ctx, client); err != nil {
			return nil, err
		}
		if err := shared.SaveToken(r.config.YouTube.TokenPath, token); err != nil {
			r.logger.Warn("failed to save token", "error", err)
		}
	}
	return r.tokenService(ctx, client, token)
}

func (r *Runner) tokenService(ctx context.Context, client *services.OAuthClient, token *oauth2.Token) (services.Service, error) {
	return services.NewYouTubeService(ctx, services.YouTubeOpts{
		TokenSource:       client.TokenSource(ctx, token),
		RequestsPerSecond: r.config.YouTube.RequestsPerSecond,
	})
}

// doOAuth serves the callback, opens the consent page and waits for the authorization code exchange.
func (r *Runner) doOAuth(ctx context.Context, client *services.OAuthClient) (*oauth2.Token, error) {
	state, err := shared.GenerateState()
	if err != nil {
		return nil, fmt.Errorf("failed to generate state token: %w", err)
	}

	authURL := client.AuthURL(state)
	oauthHandler := server.NewOAuthHandler(client.Config(), state)
	router := server.NewBasicRouter()
	router.Use(server.RequestLogger(r.logger))
	router.Handler(oauthHandler)

	listener, err := server.Listen(r.config.Server.Addr(), router)
	if err != nil {
		return nil, err
	}
	r.logger.Infof("started OAuth callback server at %v", listener.Addr())

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := listener.Shutdown(shutdownCtx); err != nil {
			r.logger.Warn("error shutting down server", "error", err)
		}
	}()

	r.writePlain("→ Opening browser for YouTube authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", authTimeout)

	timeout := time.NewTimer(authTimeout)
	defer timeout.Stop()

	var result server.OAuthResult
	select {
	case result = <-oauthHandler.Result():
	case err := <-listener.Errors():
		return nil, fmt.Errorf("server error: %w", err)
	case <-timeout.C:
		return nil, fmt.Errorf("%w: authorization timed out after %v", shared.ErrTimeout, authTimeout)
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	if result.Error() != nil {
		return nil, fmt.Errorf("authorization failed: %w", result.Error())
	}
	if result.Token == nil {
		return nil, fmt.Errorf("%w: no token received", shared.ErrAuthFailed)
	}
	return result.Token, nil
}
