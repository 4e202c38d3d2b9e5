package gateway

import (
	"encoding/json"
	"net/http"

	"ticketly-gateway/internal/auth"
	"ticketly-gateway/internal/utils"
)

type credentials struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"displayName,omitempty"`
}

// handleLogin exchanges credentials with the identity provider and hands
// the token set back to the caller, who presents the access token on
// subsequent requests.
func (g *Gateway) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	tokens, err := g.provider.PasswordGrant(r.Context(), creds.Email, creds.Password)
	if err != nil {
		utils.WriteJSON(w, http.StatusUnauthorized, utils.ErrorResponse("sign-in failed", err.Error()))
		return
	}

	session, err := auth.SessionFromIDToken(tokens.IDToken)
	if err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("invalid provider response", err.Error()))
		return
	}

	view := map[string]interface{}{
		"tokens":  tokens,
		"session": session,
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("signed in", view))
}

func (g *Gateway) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("invalid request body", err.Error()))
		return
	}

	if err := g.provider.Register(r.Context(), creds.Email, creds.Password, creds.DisplayName); err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("registration failed", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusCreated, utils.SuccessResponse("account created, verification email sent", nil))
}

func (g *Gateway) handleLogout(w http.ResponseWriter, r *http.Request) {
	var body struct {
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" {
		utils.WriteJSON(w, http.StatusBadRequest, utils.ErrorResponse("refreshToken is required", ""))
		return
	}

	if err := g.provider.Revoke(r.Context(), body.RefreshToken); err != nil {
		utils.WriteJSON(w, http.StatusBadGateway, utils.ErrorResponse("sign-out failed", err.Error()))
		return
	}
	utils.WriteJSON(w, http.StatusOK, utils.SuccessResponse("signed out", nil))
}
