package identity

// Status is the domain outcome of consuming a reset or verification token.
// It is distinct from the error return: a Status other than StatusOK is an
// expected end state of the flow, not a failure of the service.
type Status string

const (
	// StatusOK means the token was consumed and the mutation applied.
	StatusOK Status = "ok"
	// StatusShowForm means the reset token is valid but no new password
	// was supplied; the caller should render the password form.
	StatusShowForm Status = "show_form"
	// StatusExpired means the token matched a principal but its window
	// has passed. The token is left in place.
	StatusExpired Status = "expired"
	// StatusNotFound means no principal holds the token, or a concurrent
	// consumer already used it.
	StatusNotFound Status = "not_found"
)

// Acknowledgment is the enumeration-safe response to a reset or verification
// request. Its message is identical whether or not the address is known.
type Acknowledgment struct {
	Message string `json:"message"`
}

// TokenPair is what a successful login yields.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
