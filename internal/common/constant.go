package common

// AuthorizationHeaderName is the HTTP header carrying the admin session token.
const AuthorizationHeaderName = "Authorization"

// BearerPrefix is the expected scheme prefix on the Authorization header.
const BearerPrefix = "Bearer "
