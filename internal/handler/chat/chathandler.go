package chat

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/agent/orchestrator"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

// ChatHandler runs one conversation turn for the authenticated user. An
// omitted conversation_id starts a new conversation.
func ChatHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req types.ChatRequest
		if err := httputil.Parse(r, &req); err != nil {
			httputil.Error(w, err)
			return
		}

		res, err := svcCtx.Orchestrator.HandleMessage(r.Context(), &orchestrator.Request{
			OwnerID:        middleware.OwnerID(r.Context()),
			ConversationID: req.ConversationID,
			Message:        req.Message,
		})
		if err != nil {
			httputil.StoreError(w, err)
			return
		}

		httputil.OkJSON(w, &types.ChatResponse{
			Reply:          res.Reply,
			ConversationID: res.ConversationID,
			Error:          res.OracleErr,
		})
	}
}
