package fitness

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	fitnessapi "google.golang.org/api/fitness/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/healthsync/healthsync/internal/models"
	"github.com/healthsync/healthsync/internal/utils"
)

const (
	stepDataType   = "com.google.step_count.delta"
	stepDataSource = "derived:com.google.step_count.delta:com.google.android.gms:estimated_steps"
	dayMillis      = 86400000
)

// GoogleFit talks to the Google Fit aggregation API with caller-supplied
// OAuth tokens and handles the code-for-token exchange.
type GoogleFit struct {
	conf *oauth2.Config
}

func NewGoogleFit(clientID, clientSecret, redirectURL string) *GoogleFit {
	return &GoogleFit{
		conf: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  redirectURL,
			Endpoint:     google.Endpoint,
			Scopes:       []string{fitnessapi.FitnessActivityReadScope},
		},
	}
}

func (g *GoogleFit) FetchDailySteps(ctx context.Context, token models.TokenInfo, start, end time.Time) ([]models.DailySteps, error) {
	const op = "GoogleFit.FetchDailySteps"

	tok := &oauth2.Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	}
	if token.ExpiresAt > 0 {
		tok.Expiry = time.Unix(token.ExpiresAt, 0)
	}

	svc, err := fitnessapi.NewService(ctx, option.WithTokenSource(g.conf.TokenSource(ctx, tok)))
	if err != nil {
		return nil, utils.E(utils.CodeUnavailable, op, "fitness client init failed", err)
	}

	req := &fitnessapi.AggregateRequest{
		AggregateBy: []*fitnessapi.AggregateBy{{
			DataTypeName: stepDataType,
			DataSourceId: stepDataSource,
		}},
		BucketByTime:    &fitnessapi.BucketByTime{DurationMillis: dayMillis},
		StartTimeMillis: start.UnixMilli(),
		EndTimeMillis:   end.UnixMilli(),
	}

	resp, err := svc.Users.Dataset.Aggregate("me", req).Context(ctx).Do()
	if err != nil {
		return nil, classifyFitErr(op, err)
	}

	out := make([]models.DailySteps, 0, len(resp.Bucket))
	for _, bucket := range resp.Bucket {
		var steps int64
		for _, ds := range bucket.Dataset {
			for _, pt := range ds.Point {
				for _, v := range pt.Value {
					steps += v.IntVal
				}
			}
		}
		out = append(out, models.DailySteps{
			Date:  time.UnixMilli(bucket.StartTimeMillis).UTC().Format("2006-01-02"),
			Steps: steps,
		})
	}
	return out, nil
}

// classifyFitErr separates expired/revoked authorization from generic sensor
// API failures so callers can prompt a reconnect specifically.
func classifyFitErr(op string, err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && (gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden) {
		return utils.E(utils.CodeAuthExpired, op, "Google Fit authorization expired; reconnect the account", err)
	}
	return utils.E(utils.CodeUnavailable, op, "Google Fit API call failed", err)
}
