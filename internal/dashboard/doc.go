// Package dashboard provides the live Bubble Tea view used by
// `netatmo-weather watch`.
//
// The model refreshes its snapshot every Options.Interval and on demand ("r").
// A refresh is never started while another one is in flight, which keeps the
// underlying TokenManager single-owner. A failed refresh keeps the previous
// snapshot on screen together with the error box.
package dashboard
