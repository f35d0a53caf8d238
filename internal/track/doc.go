// Package track defines the release tracks a command or group may ship
// under (stable, beta, alpha) and the track sets used during resolution.
package track
