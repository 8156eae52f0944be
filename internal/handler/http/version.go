package http

import (
	"net/http"

	"github.com/MKhiriev/go-habit-sync/internal/utils"
	"github.com/MKhiriev/go-habit-sync/models"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.NewAppBuildInfo(serverVersion, "", ""), http.StatusOK)
}
