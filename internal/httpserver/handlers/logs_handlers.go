package handlers

import (
	"net/http"
	"strconv"

	"aesgcm/internal/auth"
	"aesgcm/internal/models"

	"go.uber.org/zap"
)

// MyLogs returns recent audit logs. Callers see their own entries;
// administrators can pass ?all=1 to see everyone's.
func MyLogs(st Store, lg *zap.SugaredLogger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims := auth.FromContext(r.Context())
		all := r.URL.Query().Get("all") == "1" && claims.HasRole(auth.RoleAdministrator)
		limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		logs, err := st.RecentLogs(r.Context(), claims.Subject, all, limit)
		if err != nil {
			lg.Errorw("list audit logs", "subject", claims.Subject, "err", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		respondJSON(w, logs)
	}
}

func audit(r *http.Request, st Store, lg *zap.SugaredLogger, action string, md map[string]any) {
	entry := models.AuditLog{
		Subject:  auth.Subject(r.Context()),
		Action:   action,
		Metadata: models.MarshalJSONB(md),
	}
	if err := st.RecordAudit(r.Context(), entry); err != nil {
		lg.Warnw("record audit", "action", action, "err", err)
	}
}
