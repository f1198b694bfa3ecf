// Package netatmo provides a client for the Netatmo weather station cloud API.
//
// The package covers two concerns: the OAuth token lifecycle (password grant,
// lazy refresh, expiry tracking) and the normalization of station-data
// responses into a stable StationSnapshot shape with unit labels resolved.
//
// # Usage Example
//
//	client := netatmo.NewClient()
//	weather := netatmo.NewWeatherService(client, netatmo.Credentials{
//	    ClientID:     clientID,
//	    ClientSecret: clientSecret,
//	    Username:     username,
//	    Password:     password,
//	})
//
//	snapshot, err := weather.Snapshot(ctx)
//	if netatmo.IsNoStation(err) {
//	    // the account has no hardware
//	}
//
//	fmt.Println(snapshot.Outside.Dashboard.Format("Temperature"))
//
// # Token Lifecycle
//
// TokenManager.Authenticate performs the password grant. TokenManager.AccessToken
// returns the cached token while it is valid and refreshes it, replacing both
// access and refresh token, once it has expired. A failed refresh is returned
// to the caller; the stale token is never used.
//
// # Device Selection
//
// Only the first device of the account is used. The outside and secondary
// slots take the first module of type NAModule1 and NAModule4; the full module
// list is kept in StationSnapshot.Modules.
//
// # Thread Safety
//
// TokenManager and WeatherService assume a single owner and do no locking.
// Callers sharing one across goroutines must serialize access.
//
// # Error Handling
//
// Every error is a *Error with a Type (auth, data, transport, HTTP, parse,
// config). Transport errors wrap the original net/http error instead of
// returning it bare; it is kept in Err, so errors.As still reaches the
// *url.Error and errors.Is matches context.DeadlineExceeded. Nothing is retried.
package netatmo
