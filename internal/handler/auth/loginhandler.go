package auth

import (
	"errors"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/logging"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/store"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func LoginHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.LoginRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		user, err := svcCtx.Users.GetByEmail(r.Context(), req.Email)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				// Same response as a bad password, so emails can't be probed.
				httputil.Unauthorized(w, "invalid email or password")
				return
			}
			httputil.StoreError(w, err)
			return
		}

		if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
			httputil.Unauthorized(w, "invalid email or password")
			return
		}

		token, err := signToken(svcCtx.Config.Auth.AccessSecret, svcCtx.Config.Auth.AccessExpire, user)
		if err != nil {
			logging.Errorf("[auth] Failed to sign token: %v", err)
			httputil.InternalError(w, "")
			return
		}

		httputil.OkJSON(w, &types.AuthResponse{
			Token: token,
			User:  types.UserInfo{ID: user.ID, Email: user.Email, Name: user.Name},
		})
	}
}
