package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// PatientHandlers handles the patient registry
type PatientHandlers struct {
	logger  *logging.SafeLogger
	service *services.PatientService
}

// NewPatientHandlers creates a new patient handlers instance
func NewPatientHandlers(logger *logging.SafeLogger, service *services.PatientService) *PatientHandlers {
	return &PatientHandlers{logger: logger, service: service}
}

// Create godoc
// @Summary Cadastrar paciente
// @Description Cadastra um paciente; o CPF é validado e único
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param patient body models.CreatePatientRequest true "Dados do paciente"
// @Success 201 {object} models.Patient
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /patients [post]
func (h *PatientHandlers) Create(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_patient")
	defer span.End()

	var payload models.CreatePatientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	patient, err := h.service.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, patient)
}

// Get godoc
// @Summary Obter paciente
// @Description Obtém um paciente por ID
// @Tags Pacientes
// @Produce json
// @Param id path string true "ID do paciente"
// @Success 200 {object} models.Patient
// @Failure 404 {object} ErrorResponse
// @Router /patients/{id} [get]
func (h *PatientHandlers) Get(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "get_patient")
	defer span.End()

	patient, err := h.service.GetByID(ctx, c.Param("id"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// List godoc
// @Summary Listar pacientes
// @Description Lista pacientes; a busca por nome não diferencia acentos
// @Tags Pacientes
// @Produce json
// @Param search query string false "Termo de busca"
// @Success 200 {array} models.Patient
// @Router /patients [get]
func (h *PatientHandlers) List(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_patients")
	defer span.End()

	patients, err := h.service.List(ctx, c.Query("search"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, patients)
}

// Update godoc
// @Summary Atualizar paciente
// @Description Atualiza dados do paciente; o CPF é imutável
// @Tags Pacientes
// @Accept json
// @Produce json
// @Param id path string true "ID do paciente"
// @Param patient body models.UpdatePatientRequest true "Campos a atualizar"
// @Success 200 {object} models.Patient
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /patients/{id} [patch]
func (h *PatientHandlers) Update(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_patient")
	defer span.End()

	var payload models.UpdatePatientRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}

	patient, err := h.service.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
