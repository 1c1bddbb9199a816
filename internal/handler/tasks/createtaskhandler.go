package tasks

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func CreateTaskHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.CreateTaskRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		task, err := svcCtx.Tasks.Create(r.Context(), middleware.OwnerID(r.Context()), req.Title, req.Description)
		if err != nil {
			httputil.StoreError(w, err)
			return
		}
		httputil.WriteJSON(w, http.StatusCreated, task)
	}
}
