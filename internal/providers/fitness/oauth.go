package fitness

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/healthsync/healthsync/internal/utils"
)

// Exchange swaps an authorization code for access/refresh tokens against the
// configured redirect URI.
func (g *GoogleFit) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	const op = "GoogleFit.Exchange"

	if code == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "authorization code is required", nil)
	}

	tok, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "token exchange failed", err)
	}
	return tok, nil
}
