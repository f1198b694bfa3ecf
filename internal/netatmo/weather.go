package netatmo

import "context"

// WeatherService ties a TokenManager to station-data fetches. It inherits the
// single-owner rule of TokenManager.
type WeatherService struct {
	client *Client
	tokens *TokenManager
}

// NewWeatherService creates a service for credentials against client
func NewWeatherService(client *Client, credentials Credentials) *WeatherService {
	return &WeatherService{
		client: client,
		tokens: NewTokenManager(client, credentials),
	}
}

// Tokens exposes the underlying token manager
func (w *WeatherService) Tokens() *TokenManager {
	return w.tokens
}

// Snapshot fetches a fresh StationSnapshot, authenticating on first use and
// refreshing the access token when it has expired.
func (w *WeatherService) Snapshot(ctx context.Context) (*StationSnapshot, error) {
	token, err := w.accessToken(ctx)
	if err != nil {
		return nil, err
	}
	return w.client.FetchStationData(ctx, token)
}

// User fetches the account owner and unit preferences without requiring the
// outside and secondary modules.
func (w *WeatherService) User(ctx context.Context) (User, error) {
	token, err := w.accessToken(ctx)
	if err != nil {
		return User{}, err
	}
	return w.client.FetchUser(ctx, token)
}

func (w *WeatherService) accessToken(ctx context.Context) (string, error) {
	if !w.tokens.Authenticated() {
		if _, err := w.tokens.Authenticate(ctx); err != nil {
			return "", err
		}
	}
	return w.tokens.AccessToken(ctx)
}
