// Package osm implements the Geocoder and PlacesDirectory driven ports
// against the OpenStreetMap Nominatim API.
//
// Nominatim's usage policy allows at most one request per second, so
// every call goes through a token-bucket rate limiter. All requests
// carry an identifying User-Agent as the policy requires.
package osm
