package chat

import (
	"net/http"

	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/httputil"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/middleware"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/svc"
	"github.com/Ali-Hamas/Todo-Chat-Bot/internal/types"
)

func ListConversationsHandler(svcCtx *svc.ServiceContext) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conversations, err := svcCtx.Conversations.ListByOwner(r.Context(), middleware.OwnerID(r.Context()))
		if err != nil {
			httputil.StoreError(w, err)
			return
		}
		httputil.OkJSON(w, &types.ConversationListResponse{
			Conversations: conversations,
			Total:         len(conversations),
		})
	}
}
