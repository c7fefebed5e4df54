package controllers

import (
	"net/http"

	"github.com/angelmondragon/storefront-backend/api/responses"
)

type HealthController struct {
	serviceName string
	env         string
}

func NewHealthController(serviceName, env string) *HealthController {
	return &HealthController{serviceName: serviceName, env: env}
}

func (h *HealthController) Live(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{"status": "ok"})
}

func (h *HealthController) Ready(w http.ResponseWriter, r *http.Request) {
	responses.WriteSuccess(w, map[string]string{
		"status":  "ready",
		"service": h.serviceName,
		"env":     h.env,
	})
}
