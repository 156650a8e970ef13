package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/ezguapp/medalert/internal/db"
	"github.com/ezguapp/medalert/internal/service"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
)

// medicationView pairs a medication with its computed dose status for
// rendering.
type medicationView struct {
	Medication       db.Medication
	Status           *service.DoseStatus
	InstructionsHTML template.HTML
}

// Home renders the landing page for visitors and the dashboard for signed-in
// users: the medication list with dose windows plus today's hydration record.
func (a *API) Home(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.HTML(http.StatusOK, "home.html", gin.H{
			"title": a.siteName,
			"site":  a.siteName,
		})
		return
	}

	now := time.Now()

	medications, err := a.medications.List(userID)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "home.html", gin.H{
			"title": a.siteName,
			"site":  a.siteName,
			"error": "No se pudieron cargar los medicamentos",
		})
		return
	}

	views := make([]medicationView, 0, len(medications))
	for _, medication := range medications {
		status, err := a.doses.Status(userID, medication.ID, now)
		if err != nil {
			continue
		}
		views = append(views, medicationView{
			Medication:       medication,
			Status:           status,
			InstructionsHTML: renderInstructions(medication.Instructions),
		})
	}

	data := gin.H{
		"title":       a.siteName,
		"site":        a.siteName,
		"username":    sessions.Default(c).Get("username"),
		"medications": views,
		"messages":    takeFlashes(c),
	}

	// Today's hydration card only appears once the profile carries the
	// physiological data; otherwise the dashboard links to completion.
	profile, err := a.profiles.Get(userID)
	if err == nil && profile.HydrationReady() {
		record, err := a.hydration.TodayRecord(userID, now, service.GoalForProfile(profile))
		if err == nil {
			data["hydration"] = record
			data["progress"] = service.Progress(record)
		}
	}

	c.HTML(http.StatusOK, "home.html", data)
}
