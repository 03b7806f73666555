package worker

import (
	"github.com/spec-kit/clinic-portal/internal/audit"
)

// StartAuditWorker registers the audit trail's event subscriptions.
func StartAuditWorker(auditService *audit.Service) {
	if auditService == nil {
		return
	}
	auditService.RegisterHandlers()
}
