package recovery

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/2beens/musclerecovery/internal/telemetry/tracing"
	"github.com/2beens/musclerecovery/pkg"

	log "github.com/sirupsen/logrus"
)

type settingsManager interface {
	List(ctx context.Context) (map[string]float64, error)
	Update(ctx context.Context, settings map[string]float64) (map[string]float64, error)
}

type SettingsHandler struct {
	settings settingsManager
}

func NewSettingsHandler(settings settingsManager) *SettingsHandler {
	return &SettingsHandler{
		settings: settings,
	}
}

type settingsPayload struct {
	Settings map[string]float64 `json:"settings"`
}

type settingsResponse struct {
	OK       bool               `json:"ok,omitempty"`
	Settings map[string]float64 `json:"settings"`
}

// HandleList serves GET /recovery/settings
func (handler *SettingsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.settings.list")
	defer span.End()

	settings, err := handler.settings.List(ctx)
	if err != nil {
		log.Errorf("list recovery settings: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "recovery_settings_failed")
		return
	}

	handler.writeSettings(w, settingsResponse{Settings: settings})
}

// HandleUpdate serves PUT /recovery/settings with {"settings": {"<code>": <rest hours>}}
func (handler *SettingsHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.recovery.settings.update")
	defer span.End()

	var payload settingsPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		log.Debugf("recovery settings: bad payload: %s", err)
		pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_json")
		return
	}

	settings, err := handler.settings.Update(ctx, payload.Settings)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSettings):
			pkg.WriteJSONError(w, http.StatusBadRequest, "settings_required")
		case errors.Is(err, ErrUnknownMuscleCode):
			pkg.WriteJSONError(w, http.StatusBadRequest, "unknown_muscle_code")
		case errors.Is(err, ErrInvalidRestHours):
			pkg.WriteJSONError(w, http.StatusBadRequest, "invalid_rest_hours")
		default:
			log.Errorf("update recovery settings: %s", err)
			pkg.WriteJSONError(w, http.StatusInternalServerError, "recovery_settings_failed")
		}
		return
	}

	log.Infof("recovery settings updated: %v", payload.Settings)
	handler.writeSettings(w, settingsResponse{OK: true, Settings: settings})
}

func (handler *SettingsHandler) writeSettings(w http.ResponseWriter, resp settingsResponse) {
	respJson, err := json.Marshal(resp)
	if err != nil {
		log.Errorf("failed to marshal recovery settings: %s", err)
		pkg.WriteJSONError(w, http.StatusInternalServerError, "recovery_settings_failed")
		return
	}
	pkg.WriteResponseBytes(w, pkg.ContentType.JSON, respJson, http.StatusOK)
}
