// Package common provides shared constants used across the dlc-venc-go
// packages: the BLS12-381 scalar order and the protocol's domain
// separation tags.
//
// This is an internal package not intended for direct use by applications.
package common
