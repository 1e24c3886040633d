package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/medsimples/app-cirurgias/internal/logging"
	"github.com/medsimples/app-cirurgias/internal/models"
	"github.com/medsimples/app-cirurgias/internal/services"
	"github.com/medsimples/app-cirurgias/internal/utils"
)

// ReferenceHandlers handles the hospital, health plan, procedure,
// supplier and collaborator registries. They share the same CRUD shape,
// so one handler set covers them all.
type ReferenceHandlers struct {
	logger        *logging.SafeLogger
	hospitals     *services.HospitalService
	healthPlans   *services.HealthPlanService
	procedures    *services.ProcedureService
	suppliers     *services.SupplierService
	collaborators *services.CollaboratorService
}

// NewReferenceHandlers creates a new reference handlers instance
func NewReferenceHandlers(logger *logging.SafeLogger,
	hospitals *services.HospitalService,
	healthPlans *services.HealthPlanService,
	procedures *services.ProcedureService,
	suppliers *services.SupplierService,
	collaborators *services.CollaboratorService) *ReferenceHandlers {
	return &ReferenceHandlers{
		logger:        logger,
		hospitals:     hospitals,
		healthPlans:   healthPlans,
		procedures:    procedures,
		suppliers:     suppliers,
		collaborators: collaborators,
	}
}

// CreateHospital godoc
// @Summary Cadastrar hospital
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param hospital body models.CreateHospitalRequest true "Dados do hospital"
// @Success 201 {object} models.Hospital
// @Failure 400 {object} ErrorResponse
// @Router /hospitals [post]
func (h *ReferenceHandlers) CreateHospital(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_hospital")
	defer span.End()

	var payload models.CreateHospitalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	hospital, err := h.hospitals.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, hospital)
}

// ListHospitals godoc
// @Summary Listar hospitais
// @Tags Cadastros
// @Produce json
// @Success 200 {array} models.Hospital
// @Router /hospitals [get]
func (h *ReferenceHandlers) ListHospitals(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_hospitals")
	defer span.End()

	hospitals, err := h.hospitals.List(ctx)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hospitals)
}

// UpdateHospital godoc
// @Summary Atualizar hospital
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param id path string true "ID do hospital"
// @Param hospital body models.UpdateHospitalRequest true "Campos a atualizar"
// @Success 200 {object} models.Hospital
// @Failure 404 {object} ErrorResponse
// @Router /hospitals/{id} [patch]
func (h *ReferenceHandlers) UpdateHospital(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_hospital")
	defer span.End()

	var payload models.UpdateHospitalRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	hospital, err := h.hospitals.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, hospital)
}

// CreateHealthPlan godoc
// @Summary Cadastrar convênio
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param plan body models.CreateHealthPlanRequest true "Dados do convênio"
// @Success 201 {object} models.HealthPlan
// @Failure 400 {object} ErrorResponse
// @Router /health-plans [post]
func (h *ReferenceHandlers) CreateHealthPlan(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_health_plan")
	defer span.End()

	var payload models.CreateHealthPlanRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	plan, err := h.healthPlans.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, plan)
}

// ListHealthPlans godoc
// @Summary Listar convênios
// @Tags Cadastros
// @Produce json
// @Success 200 {array} models.HealthPlan
// @Router /health-plans [get]
func (h *ReferenceHandlers) ListHealthPlans(c *gin.Context) {
	ctx, span := utils.TraceCacheGet(c.Request.Context(), "convenios:ativos")
	defer span.End()

	plans, err := h.healthPlans.List(ctx)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plans)
}

// UpdateHealthPlan godoc
// @Summary Atualizar convênio
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param id path string true "ID do convênio"
// @Param plan body models.UpdateHealthPlanRequest true "Campos a atualizar"
// @Success 200 {object} models.HealthPlan
// @Failure 404 {object} ErrorResponse
// @Router /health-plans/{id} [patch]
func (h *ReferenceHandlers) UpdateHealthPlan(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_health_plan")
	defer span.End()

	var payload models.UpdateHealthPlanRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	plan, err := h.healthPlans.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreateProcedure godoc
// @Summary Cadastrar procedimento
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param procedure body models.CreateProcedureRequest true "Dados do procedimento"
// @Success 201 {object} models.Procedure
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /procedures [post]
func (h *ReferenceHandlers) CreateProcedure(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_procedure")
	defer span.End()

	var payload models.CreateProcedureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	procedure, err := h.procedures.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, procedure)
}

// ListProcedures godoc
// @Summary Listar procedimentos
// @Description Lista o catálogo TUSS; a busca por nome ou código não diferencia acentos
// @Tags Cadastros
// @Produce json
// @Param search query string false "Termo de busca"
// @Success 200 {object} models.ProceduresResponse
// @Router /procedures [get]
func (h *ReferenceHandlers) ListProcedures(c *gin.Context) {
	ctx, span := utils.TraceCacheGet(c.Request.Context(), "procedimentos:catalogo")
	defer span.End()

	procedures, err := h.procedures.List(ctx, c.Query("search"))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, procedures)
}

// UpdateProcedure godoc
// @Summary Atualizar procedimento
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param code path string true "Código TUSS"
// @Param procedure body models.UpdateProcedureRequest true "Campos a atualizar"
// @Success 200 {object} models.Procedure
// @Failure 404 {object} ErrorResponse
// @Router /procedures/{code} [patch]
func (h *ReferenceHandlers) UpdateProcedure(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_procedure")
	defer span.End()

	var payload models.UpdateProcedureRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	procedure, err := h.procedures.Update(ctx, c.Param("code"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, procedure)
}

// CreateSupplier godoc
// @Summary Cadastrar fornecedor
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param supplier body models.CreateSupplierRequest true "Dados do fornecedor"
// @Success 201 {object} models.Supplier
// @Failure 400 {object} ErrorResponse
// @Router /suppliers [post]
func (h *ReferenceHandlers) CreateSupplier(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_supplier")
	defer span.End()

	var payload models.CreateSupplierRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	supplier, err := h.suppliers.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, supplier)
}

// ListSuppliers godoc
// @Summary Listar fornecedores
// @Tags Cadastros
// @Produce json
// @Success 200 {array} models.Supplier
// @Router /suppliers [get]
func (h *ReferenceHandlers) ListSuppliers(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_suppliers")
	defer span.End()

	suppliers, err := h.suppliers.List(ctx)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, suppliers)
}

// UpdateSupplier godoc
// @Summary Atualizar fornecedor
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param id path string true "ID do fornecedor"
// @Param supplier body models.UpdateSupplierRequest true "Campos a atualizar"
// @Success 200 {object} models.Supplier
// @Failure 404 {object} ErrorResponse
// @Router /suppliers/{id} [patch]
func (h *ReferenceHandlers) UpdateSupplier(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_supplier")
	defer span.End()

	var payload models.UpdateSupplierRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	supplier, err := h.suppliers.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, supplier)
}

// CreateCollaborator godoc
// @Summary Cadastrar colaborador
// @Description Cadastra um colaborador; médicos exigem CRM
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param collaborator body models.CreateCollaboratorRequest true "Dados do colaborador"
// @Success 201 {object} models.Collaborator
// @Failure 400 {object} ErrorResponse
// @Router /collaborators [post]
func (h *ReferenceHandlers) CreateCollaborator(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "create_collaborator")
	defer span.End()

	var payload models.CreateCollaboratorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	collaborator, err := h.collaborators.Create(ctx, &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusCreated, collaborator)
}

// ListCollaborators godoc
// @Summary Listar colaboradores
// @Tags Cadastros
// @Produce json
// @Param funcao query string false "Filtrar por função (medico, secretaria, administrador)"
// @Success 200 {array} models.Collaborator
// @Router /collaborators [get]
func (h *ReferenceHandlers) ListCollaborators(c *gin.Context) {
	ctx, span := utils.TraceBusinessLogic(c.Request.Context(), "list_collaborators")
	defer span.End()

	collaborators, err := h.collaborators.List(ctx, models.CollaboratorRole(c.Query("funcao")))
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, collaborators)
}

// UpdateCollaborator godoc
// @Summary Atualizar colaborador
// @Tags Cadastros
// @Accept json
// @Produce json
// @Param id path string true "ID do colaborador"
// @Param collaborator body models.UpdateCollaboratorRequest true "Campos a atualizar"
// @Success 200 {object} models.Collaborator
// @Failure 404 {object} ErrorResponse
// @Router /collaborators/{id} [patch]
func (h *ReferenceHandlers) UpdateCollaborator(c *gin.Context) {
	ctx, span := utils.TraceInputParsing(c.Request.Context(), "update_collaborator")
	defer span.End()

	var payload models.UpdateCollaboratorRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Dados inválidos: " + err.Error()})
		return
	}
	collaborator, err := h.collaborators.Update(ctx, c.Param("id"), &payload)
	if err != nil {
		writeServiceError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, collaborator)
}
