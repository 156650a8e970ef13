package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"
	"time"

	"github.com/ezguapp/medalert/internal/service"
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderInstructions converts the free-text intake instructions to sanitized
// HTML so lists and emphasis survive without letting script through.
func renderInstructions(instructions string) template.HTML {
	if instructions == "" {
		return ""
	}
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(instructions), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(instructions))
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes()))
}

// ShowMedications lists the user's medications with their dose windows.
func (a *API) ShowMedications(c *gin.Context) {
	userID, _ := currentUserID(c)
	now := time.Now()

	medications, err := a.medications.List(userID)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "no se pudieron cargar los medicamentos")
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

	c.HTML(http.StatusOK, "medicamentos.html", gin.H{
		"title":       "Medicamentos",
		"site":        a.siteName,
		"medications": views,
		"messages":    takeFlashes(c),
	})
}

// CreateMedication handles the new-medication form. Numeric fields parse
// leniently: malformed frequency or duration becomes zero rather than an
// error, matching the forgiving behavior of the rest of the forms.
func (a *API) CreateMedication(c *gin.Context) {
	userID, _ := currentUserID(c)

	input := service.MedicationInput{
		Name:           c.PostForm("nombre"),
		Dose:           c.PostForm("dosis"),
		FrequencyHours: parseUintLenient(c.PostForm("frecuencia_horas")),
		DurationDays:   parseUintLenient(c.PostForm("duracion_dias")),
		Instructions:   c.PostForm("instrucciones"),
	}

	if _, err := a.medications.Create(userID, input); err != nil {
		if errors.Is(err, service.ErrMedicationInvalidInput) {
			addFlash(c, "Nombre y dosis son obligatorios")
		} else {
			addFlash(c, "No se pudo guardar el medicamento")
		}
	}
	c.Redirect(http.StatusFound, "/medicamentos")
}

// DeleteMedication removes one of the user's medications. An ID that does
// not exist or belongs to someone else is silently ignored.
func (a *API) DeleteMedication(c *gin.Context) {
	userID, _ := currentUserID(c)

	id, err := parseUintParam(c, "id")
	if err == nil {
		_ = a.medications.Delete(userID, id)
	}
	c.Redirect(http.StatusFound, "/medicamentos")
}

// RegisterDose appends an intake record and answers with the canonical JSON
// shape: remaining seconds until the next window plus the HH:MM it opens.
func (a *API) RegisterDose(c *gin.Context) {
	userID, _ := currentUserID(c)

	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "identificador inválido")
		return
	}

	status, err := a.doses.RegisterDose(userID, id, time.Now())
	if err != nil {
		if errors.Is(err, service.ErrMedicationNotFound) {
			respondError(c, http.StatusNotFound, "medicamento no encontrado")
			return
		}
		respondError(c, http.StatusInternalServerError, "no se pudo registrar la toma")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"remaining_seconds": status.RemainingSeconds,
		"proxima":           status.NextDueAt.Format("15:04"),
	})
}
