package handler

import (
	"net/http"
	"time"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func HealthCheckHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		httputil.OkJSON(w, &types.HealthResponse{
			Status:    "healthy",
			Name:      svcCtx.Config.Name,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	}
}
