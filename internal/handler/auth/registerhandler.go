package auth

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

const minPasswordLength = 8

func RegisterHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.RegisterRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		if !strings.Contains(req.Email, "@") {
			httputil.ErrorWithCode(w, http.StatusBadRequest, "a valid email address is required")
			return
		}
		if len(req.Password) < minPasswordLength {
			httputil.ErrorWithCode(w, http.StatusBadRequest, "password must be at least 8 characters")
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			logging.Errorf("[auth] Failed to hash password: %v", err)
			httputil.InternalError(w, "")
			return
		}

		user, err := svcCtx.Users.Create(r.Context(), req.Email, req.Name, string(hash))
		if err != nil {
			httputil.StoreError(w, err)
			return
		}

		token, err := signToken(svcCtx.Config.Auth.AccessSecret, svcCtx.Config.Auth.AccessExpire, user)
		if err != nil {
			logging.Errorf("[auth] Failed to sign token: %v", err)
			httputil.InternalError(w, "")
			return
		}

		logging.Infof("[auth] Registered user %s", user.Email)
		httputil.OkJSON(w, &types.AuthResponse{
			Token: token,
			User:  types.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name},
		})
	}
}
