package ui

import (
	"github.com/openlot/driveboard/internal/api"
	"github.com/openlot/driveboard/internal/appointment"
	"github.com/openlot/driveboard/internal/config"
)

// localDealerID is the dealer identifier used by the offline store.
const localDealerID = "local"

func newBackendClient(cfg *config.Config) appointment.Repository {
	return api.NewClient(cfg.API.BaseURL, cfg.API.DealerID, cfg.Timeout())
}

// dealerID returns the dealer the console operates for.
func (a *App) dealerID() string {
	if a.config.Offline() {
		return localDealerID
	}
	return a.config.API.DealerID
}
