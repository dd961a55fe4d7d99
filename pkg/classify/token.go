package classify

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"

	"github.com/StricklySoft/stricklysoft-fault/pkg/fault"
)

const systemJWT = "jwt"

// Token classifies an error returned by golang-jwt token parsing or
// validation. Every JWT failure is an auth-kind fault; the specific
// sentinel that matched is recorded under "jwt.reason" so diagnostics can
// distinguish an expired token from a forged one without the fault type
// growing an auth taxonomy. If err is nil, Token returns nil.
//
// Example:
//
//	token, err := jwt.Parse(raw, keyFunc, parserOpts...)
//	if err != nil {
//	    return classify.Token(err, "validate access token failed")
//	}
func Token(err error, message string) *fault.Error {
	if err == nil {
		return nil
	}
	return classified(err, message, systemJWT, KindAuth, false).Ctx(map[string]any{
		"jwt.reason": tokenReason(err),
	})
}

// tokenReason names the first matching golang-jwt sentinel. The order
// checks the most specific sentinels first; ErrTokenInvalidClaims wraps
// several of the others in golang-jwt v5.
func tokenReason(err error) string {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return "expired"
	case errors.Is(err, jwt.ErrTokenNotValidYet):
		return "not_yet_valid"
	case errors.Is(err, jwt.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, jwt.ErrSignatureInvalid):
		return "signature_invalid"
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return "audience_mismatch"
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return "issuer_mismatch"
	case errors.Is(err, jwt.ErrTokenUnverifiable):
		return "unverifiable"
	case errors.Is(err, jwt.ErrTokenInvalidClaims):
		return "invalid_claims"
	default:
		return "invalid"
	}
}
