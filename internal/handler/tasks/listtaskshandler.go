package tasks

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func ListTasksHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ListTasksRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		list, err := svcCtx.Tasks.List(r.Context(), middleware.OwnerID(r.Context()), req.Status)
		if err != nil {
			httputil.StoreError(w, err)
			return
		}
		httputil.OkJSON(w, &types.TaskListResponse{Tasks: list, Total: len(list)})
	}
}
