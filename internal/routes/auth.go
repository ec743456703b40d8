package routes

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Nitesh-orv-5149/PopCornPics/internal/users"
	pkgdeps "github.com/Nitesh-orv-5149/PopCornPics/pkg/deps"
	pkghttpx "github.com/Nitesh-orv-5149/PopCornPics/pkg/httpx"
)

// SignUp handles POST /auth/signup. The verification token is returned in
// the response; delivering it by email is a collaborator concern.
func SignUp(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type signupReq struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req signupReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		token, err := d.Users.SignUp(r.Context(), req.Email, req.Password)
		if err != nil {
			if errors.Is(err, users.ErrEmailTaken) {
				pkghttpx.WriteError(w, r, pkghttpx.Conflict("email already registered", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.WriteFailed("sign up failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusCreated, map[string]any{
			"message":            "verification email sent, check your inbox before signing in",
			"verification_token": token,
		})
	}
}

// VerifyEmail handles POST /auth/verify.
func VerifyEmail(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type verifyReq struct {
			Email string `json:"email"`
			Token string `json:"token"`
		}
		var req verifyReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := d.Users.VerifyEmail(r.Context(), req.Email, req.Token); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.AuthFailed("verification failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "email verified"})
	}
}

// SignIn handles POST /auth/signin.
func SignIn(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type signinReq struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req signinReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		token, profile, err := d.Users.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			switch {
			case errors.Is(err, users.ErrNotVerified):
				pkghttpx.WriteError(w, r, pkghttpx.AuthFailed("email not verified, check your inbox", err))
			case errors.Is(err, users.ErrInvalidCredentials):
				pkghttpx.WriteError(w, r, pkghttpx.AuthFailed("invalid email or password", err))
			default:
				pkghttpx.WriteError(w, r, pkghttpx.Internal("sign in failed", err))
			}
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{
			"token":   token,
			"profile": profile,
		})
	}
}

// DeleteAccount handles DELETE /auth/account. Re-authentication by password
// is required; the profile document goes first, the identity second.
func DeleteAccount(d pkgdeps.ServerDeps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type deleteReq struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		var req deleteReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			pkghttpx.WriteError(w, r, pkghttpx.BadRequest("invalid json", err))
			return
		}
		if err := d.Users.DeleteAccount(r.Context(), req.Email, req.Password); err != nil {
			if errors.Is(err, users.ErrInvalidCredentials) || errors.Is(err, users.ErrNoAccount) {
				pkghttpx.WriteError(w, r, pkghttpx.AuthFailed("re-authentication failed", err))
				return
			}
			pkghttpx.WriteError(w, r, pkghttpx.WriteFailed("account deletion failed", err))
			return
		}
		pkghttpx.WriteJSON(w, http.StatusOK, map[string]any{"message": "account deleted"})
	}
}
