package youtube

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/youtube/v3"

	"github.com/kapu/socialintel-go/internal/util"
)

// OAuth runs the authorization code flow for read-only channel access.
type OAuth struct {
	config *oauth2.Config
	logger *zap.Logger
}

func NewOAuth(clientID, clientSecret, redirectURL string, logger *zap.Logger) *OAuth {
	return &OAuth{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{youtube.YoutubeReadonlyScope},
		},
		logger: util.OrNop(logger),
	}
}

// NewOAuthFromJSON builds the flow from a downloaded client credentials file.
func NewOAuthFromJSON(credentials []byte, logger *zap.Logger) (*OAuth, error) {
	config, err := google.ConfigFromJSON(credentials, youtube.YoutubeReadonlyScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials: %w", err)
	}
	return &OAuth{config: config, logger: util.OrNop(logger)}, nil
}

// WithEndpoint points the flow at a different authorization server.
func (o *OAuth) WithEndpoint(endpoint oauth2.Endpoint) *OAuth {
	o.config.Endpoint = endpoint
	return o
}

func (o *OAuth) AuthCodeURL(state string) string {
	return o.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for an access token.
func (o *OAuth) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := o.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve token: %w", err)
	}

	o.logger.Info("YouTube OAuth authorization complete",
		zap.Time("expiry", token.Expiry))

	return token, nil
}
