package tasks

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func DeleteTaskHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GetTaskRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		deleted, err := svcCtx.Tasks.Delete(r.Context(), middleware.OwnerID(r.Context()), req.ID)
		if err != nil {
			httputil.StoreError(w, err)
			return
		}
		if !deleted {
			httputil.NotFound(w, "")
			return
		}
		httputil.OkJSON(w, &types.DeleteTaskResponse{Success: true})
	}
}
