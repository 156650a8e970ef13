package handler

import (
	"net/http"
	"time"

	"github.com/ezguapp/medalert/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowHydration displays today's water counter, creating the day's record on
// first access. Users without physiological data are sent to complete their
// profile first.
func (a *API) ShowHydration(c *gin.Context) {
	userID, _ := currentUserID(c)

	profile, err := a.profiles.Get(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el perfil")
		return
	}
	if !profile.HydrationReady() {
		c.Redirect(http.StatusFound, "/perfil/completar")
		return
	}

	record, err := a.hydration.TodayRecord(userID, time.Now(), service.GoalForProfile(profile))
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar la hidratación")
		return
	}

	c.HTML(http.StatusOK, "hidratacion.html", gin.H{
		"title":    "Hidratación",
		"site":     a.siteName,
		"record":   record,
		"progress": service.Progress(record),
		"messages": takeFlashes(c),
	})
}

// AddCup adds one cup to today's counter. The record is created first when
// missing, then incremented atomically at the database.
func (a *API) AddCup(c *gin.Context) {
	userID, _ := currentUserID(c)
	now := time.Now()

	profile, err := a.profiles.Get(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el perfil")
		return
	}
	if !profile.HydrationReady() {
		c.Redirect(http.StatusFound, "/perfil/completar")
		return
	}

	if _, err := a.hydration.TodayRecord(userID, now, service.GoalForProfile(profile)); err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar la hidratación")
		return
	}

	record, err := a.hydration.AddCup(userID, now)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo registrar el vaso")
		return
	}

	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{
			"vasos_tomados": record.CupsTaken,
			"meta_vasos":    record.CupsGoal,
			"progreso":      service.Progress(record),
		})
		return
	}
	c.Redirect(http.StatusFound, "/hidratacion")
}
