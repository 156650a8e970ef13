package handler

import (
	"net/http"
	"time"

	"github.com/ezguapp/medalert/internal/service"
	"github.com/gin-gonic/gin"
)

// ShowProfile 渲染个人资料页面
func (a *API) ShowProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	profile, err := a.profiles.Get(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el perfil")
		return
	}

	sex := ""
	if profile.Sex != nil {
		sex = *profile.Sex
	}
	activity := ""
	if profile.ActivityLevel != nil {
		activity = *profile.ActivityLevel
	}

	c.HTML(http.StatusOK, "perfil.html", gin.H{
		"title":    "Perfil",
		"site":     a.siteName,
		"profile":  profile,
		"sex":      sex,
		"activity": activity,
		"messages": takeFlashes(c),
	})
}

// UpdateProfile saves the general profile form.
func (a *API) UpdateProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	input := service.ProfileInput{
		BirthDate:     parseDateField(c.PostForm("fecha_nacimiento")),
		Phone:         c.PostForm("telefono"),
		IsCaregiver:   c.PostForm("es_cuidador") == "on",
		WeightKg:      parseFloatField(c.PostForm("peso_kg")),
		HeightCm:      parseFloatField(c.PostForm("altura_cm")),
		Sex:           optionalString(c.PostForm("sexo")),
		ActivityLevel: optionalString(c.PostForm("nivel_actividad")),
	}

	if _, err := a.profiles.Update(userID, input); err != nil {
		addFlash(c, "No se pudo guardar el perfil")
		c.Redirect(http.StatusFound, "/perfil")
		return
	}

	addFlash(c, "Perfil actualizado")
	c.Redirect(http.StatusFound, "/perfil")
}

// ShowCompleteProfile 渲染补全生理数据的表单
func (a *API) ShowCompleteProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	profile, err := a.profiles.Get(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudo cargar el perfil")
		return
	}

	c.HTML(http.StatusOK, "perfil_completar.html", gin.H{
		"title":    "Completar perfil",
		"site":     a.siteName,
		"profile":  profile,
		"messages": takeFlashes(c),
	})
}

// CompleteProfile saves weight, height, sex and activity level, then sends
// the user to the hydration page the data unlocks.
func (a *API) CompleteProfile(c *gin.Context) {
	userID, _ := currentUserID(c)

	_, err := a.profiles.CompletePhysiology(
		userID,
		parseFloatField(c.PostForm("peso_kg")),
		parseFloatField(c.PostForm("altura_cm")),
		optionalString(c.PostForm("sexo")),
		optionalString(c.PostForm("nivel_actividad")),
	)
	if err != nil {
		addFlash(c, "Revisa los datos del formulario")
		c.Redirect(http.StatusFound, "/perfil/completar")
		return
	}

	c.Redirect(http.StatusFound, "/hidratacion")
}

func parseDateField(raw string) *time.Time {
	if raw == "" {
		return nil
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil
	}
	return &parsed
}
