// Package common contains shared constants, sentinel errors and small helpers
// used by both the gophguard client and the profile store server.
package common

// ServiceTokenHeaderName is the gRPC metadata key used to carry the
// service token on outbound profile store requests.
const ServiceTokenHeaderName = "service_token"

// ProfileStoreIssuer is the issuer claim stamped into service tokens.
const ProfileStoreIssuer = "gophguard-client"
