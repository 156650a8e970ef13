package handler

import (
	"github.com/ezguapp/medalert/internal/service"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db            *gorm.DB
	accounts      *service.AccountService
	profiles      *service.ProfileService
	medications   *service.MedicationService
	doses         *service.DoseService
	hydration     *service.HydrationService
	notifications *service.NotificationService
	siteName      string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(db *gorm.DB, siteName string) *API {
	return &API{
		db:            db,
		accounts:      service.NewAccountService(db),
		profiles:      service.NewProfileService(db),
		medications:   service.NewMedicationService(db),
		doses:         service.NewDoseService(db),
		hydration:     service.NewHydrationService(db),
		notifications: service.NewNotificationService(db),
		siteName:      siteName,
	}
}

// DB exposes the underlying gorm instance.
func (a *API) DB() *gorm.DB {
	return a.db
}
