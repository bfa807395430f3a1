// Package randtoken produces cryptographically secure, high-entropy opaque
// strings for single-use secrets such as password-reset and
// email-verification tokens.
//
//	token, err := randtoken.Generate(randtoken.DefaultByteLength)
//	if err != nil {
//	    // entropy failure is fatal; never substitute a weaker value
//	}
//
// Tokens are hex-encoded, so the returned string is twice the requested byte
// length. Requests below MinByteLength (128 bits) are rejected.
package randtoken
