package tasks

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func GetTaskHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.GetTaskRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		task, err := svcCtx.Tasks.Get(r.Context(), middleware.OwnerID(r.Context()), req.ID)
		if err != nil {
			httputil.StoreError(w, err)
			return
		}
		httputil.OkJSON(w, task)
	}
}
