// Package jwt signs and verifies JSON Web Tokens with an RSA key pair
// (RS256). Asymmetric signing lets any holder of the public key verify
// tokens statelessly, without a shared secret or database lookup.
//
// # Usage
//
//	svc, err := jwt.New(privatePEM, publicPEM)
//	if err != nil {
//	    // key material unavailable: fatal at startup
//	}
//
//	signed, err := svc.Sign(claims)
//
//	var parsed AccessClaims
//	if err := svc.Parse(signed, &parsed); err != nil {
//	    switch {
//	    case errors.Is(err, jwt.ErrExpiredToken):
//	        // token aged out
//	    case errors.Is(err, jwt.ErrInvalidToken):
//	        // anything else: bad signature, wrong algorithm, garbage input
//	    }
//	}
//
// Verification-only consumers construct the service with NewVerifier and a
// public key alone.
//
// Decode is the deliberate exception to the verification rule: it reads
// claims without checking the signature, for flows (logout) that must accept
// expired tokens. Treat decoded claims as untrusted input.
package jwt
