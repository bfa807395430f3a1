package identity

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// Router mounts the identity HTTP surface onto a chi router. The caller
// decides the mount point; paths below are relative to it.
//
//	r := chi.NewRouter()
//	r.Mount("/v1/auth", identity.Router(svc))
func Router(svc *Service) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", handleRegister(svc))
	r.Post("/login", handleLogin(svc))
	r.Post("/refresh", handleRefresh(svc))
	r.Get("/logout", handleLogout(svc))

	r.Post("/forgot-password", handleForgotPassword(svc))
	r.Get("/reset-password/{token}", handleResetPassword(svc))
	r.Post("/reset-password/{token}", handleResetPassword(svc))

	r.Post("/verify-email/{kind}", handleVerifyRequest(svc))
	r.Get("/verify-email/{kind}/{token}", handleVerifyConsume(svc))

	return r
}

// bearerToken pulls the token out of the Authorization header, empty when
// the header is missing or not a bearer scheme.
func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	return ""
}

func decodeBody(r *http.Request, dst any) bool {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

// isPrimaryKind maps the {kind} path segment; anything but "primary" and
// "backup" is a client error.
func isPrimaryKind(r *http.Request) (bool, bool) {
	switch chi.URLParam(r, "kind") {
	case "primary":
		return true, true
	case "backup":
		return false, true
	}
	return false, false
}

func handleRegister(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in NewPrincipal
		if !decodeBody(r, &in) {
			respondError(w, http.StatusBadRequest, "bad_request", "malformed request body")
			return
		}

		p, err := svc.Register(r.Context(), in)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusCreated, p)
	}
}

func handleLogin(svc *Service) http.HandlerFunc {
	type request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	type response struct {
		*TokenPair
		Principal *Principal `json:"principal"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in request
		if !decodeBody(r, &in) {
			respondError(w, http.StatusBadRequest, "bad_request", "malformed request body")
			return
		}

		pair, p, err := svc.Login(r.Context(), in.Email, in.Password)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, response{TokenPair: pair, Principal: p})
	}
}

func handleRefresh(svc *Service) http.HandlerFunc {
	type request struct {
		RefreshToken string `json:"refresh_token"`
	}
	type response struct {
		AccessToken string `json:"access_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			var in request
			if decodeBody(r, &in) {
				token = in.RefreshToken
			}
		}
		if token == "" {
			respondError(w, http.StatusUnauthorized, "unauthorized", "missing refresh token")
			return
		}

		access, err := svc.Refresh(r.Context(), token)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusOK, response{AccessToken: access})
	}
}

func handleLogout(svc *Service) http.HandlerFunc {
	type response struct {
		URL string `json:"url"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		url := svc.Logout(r.Context(), bearerToken(r))
		respondData(w, http.StatusOK, response{URL: url})
	}
}

func handleForgotPassword(svc *Service) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var in request
		if !decodeBody(r, &in) || in.Email == "" {
			respondError(w, http.StatusBadRequest, "bad_request", "email is required")
			return
		}

		ack, err := svc.RequestPasswordReset(r.Context(), in.Email)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusAccepted, ack)
	}
}

// handleResetPassword serves both halves of the flow: GET probes the token
// to decide whether to render the form, POST submits the new password.
func handleResetPassword(svc *Service) http.HandlerFunc {
	type request struct {
		NewPassword string `json:"new_password"`
	}
	type response struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		token := chi.URLParam(r, "token")

		var in request
		if r.Method == http.MethodPost {
			if !decodeBody(r, &in) || in.NewPassword == "" {
				respondError(w, http.StatusBadRequest, "bad_request", "new_password is required")
				return
			}
		}

		st, err := svc.ConsumePasswordReset(r.Context(), token, in.NewPassword)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondStatus(w, st, response{Message: "password updated"})
	}
}

func handleVerifyRequest(svc *Service) http.HandlerFunc {
	type request struct {
		Email string `json:"email"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		primary, ok := isPrimaryKind(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "bad_request", "kind must be primary or backup")
			return
		}

		var in request
		if !decodeBody(r, &in) || in.Email == "" {
			respondError(w, http.StatusBadRequest, "bad_request", "email is required")
			return
		}

		ack, err := svc.RequestEmailVerification(r.Context(), in.Email, primary)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondData(w, http.StatusAccepted, ack)
	}
}

func handleVerifyConsume(svc *Service) http.HandlerFunc {
	type response struct {
		Message string `json:"message"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		primary, ok := isPrimaryKind(r)
		if !ok {
			respondError(w, http.StatusBadRequest, "bad_request", "kind must be primary or backup")
			return
		}

		st, err := svc.ConsumeEmailVerification(r.Context(), chi.URLParam(r, "token"), primary)
		if err != nil {
			respondServiceError(w, err)
			return
		}
		respondStatus(w, st, response{Message: "email verified"})
	}
}
