package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gofrs/uuid"

	"hospitaldir/internal/models"
	"hospitaldir/internal/service"
)

// POST /api/hospitals
func (h *Handler) CreateHospital(c *gin.Context) {
	const op = "handler.CreateHospital"

	log := h.log.With(slog.String("op", op))

	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	if hospital.Name == "" || hospital.City == "" {
		newErrorResponse(c, http.StatusBadRequest, "name and city are required")

		return
	}

	if hospital.Rating < 0 || hospital.Rating > 5 {
		newErrorResponse(c, http.StatusBadRequest, "rating must be between 0 and 5")

		return
	}

	created, err := h.serviceLayer.CreateHospital(c.Request.Context(), hospital)
	if err != nil {
		log.Error("failed to create hospital", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to create hospital")

		return
	}

	log.Info("hospital created", slog.String("hospital_id", created.ID.String()))

	c.JSON(http.StatusCreated, created)
}

// GET /api/hospitals/all
func (h *Handler) GetAllHospitals(c *gin.Context) {
	const op = "handler.GetAllHospitals"

	log := h.log.With(slog.String("op", op))

	hospitals, err := h.serviceLayer.ListHospitals(c.Request.Context())
	if err != nil {
		log.Error("failed to list hospitals", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to list hospitals")

		return
	}

	if hospitals == nil {
		hospitals = []models.Hospital{}
	}

	c.JSON(http.StatusOK, hospitals)
}

// GET /api/hospitals/city?city=<city>
func (h *Handler) GetHospitalsByCity(c *gin.Context) {
	const op = "handler.GetHospitalsByCity"

	log := h.log.With(slog.String("op", op))

	city := c.Query("city")
	if city == "" {
		newErrorResponse(c, http.StatusBadRequest, "city is required")

		return
	}

	hospitals, err := h.serviceLayer.ListHospitalsByCity(c.Request.Context(), city)
	if err != nil {
		log.Error("failed to list hospitals by city", slog.String("city", city), slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to list hospitals")

		return
	}

	if hospitals == nil {
		hospitals = []models.Hospital{}
	}

	c.JSON(http.StatusOK, hospitals)
}

// GET /api/hospitals/:id
func (h *Handler) GetHospital(c *gin.Context) {
	const op = "handler.GetHospital"

	log := h.log.With(slog.String("op", op))

	hospitalID, ok := hospitalIDParam(c)
	if !ok {
		return
	}

	hospital, err := h.serviceLayer.GetHospital(c.Request.Context(), hospitalID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "hospital not found")

			return
		}

		log.Error("failed to get hospital", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to get hospital")

		return
	}

	c.JSON(http.StatusOK, hospital)
}

// PUT /api/hospitals/:id
func (h *Handler) UpdateHospital(c *gin.Context) {
	const op = "handler.UpdateHospital"

	log := h.log.With(slog.String("op", op))

	hospitalID, ok := hospitalIDParam(c)
	if !ok {
		return
	}

	var hospital models.Hospital
	if err := c.ShouldBindJSON(&hospital); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	if hospital.Rating < 0 || hospital.Rating > 5 {
		newErrorResponse(c, http.StatusBadRequest, "rating must be between 0 and 5")

		return
	}

	updated, err := h.serviceLayer.UpdateHospital(c.Request.Context(), hospitalID, hospital)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "hospital not found")

			return
		}

		log.Error("failed to update hospital", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to update hospital")

		return
	}

	log.Info("hospital updated", slog.String("hospital_id", hospitalID.String()))

	c.JSON(http.StatusOK, updated)
}

// DELETE /api/hospitals/:id
func (h *Handler) DeleteHospital(c *gin.Context) {
	const op = "handler.DeleteHospital"

	log := h.log.With(slog.String("op", op))

	hospitalID, ok := hospitalIDParam(c)
	if !ok {
		return
	}

	if err := h.serviceLayer.DeleteHospital(c.Request.Context(), hospitalID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "hospital not found")

			return
		}

		log.Error("failed to delete hospital", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to delete hospital")

		return
	}

	log.Info("hospital deleted", slog.String("hospital_id", hospitalID.String()))

	c.Status(http.StatusNoContent)
}

// POST /api/hospitals/:id/details
func (h *Handler) AddHospitalDetails(c *gin.Context) {
	const op = "handler.AddHospitalDetails"

	log := h.log.With(slog.String("op", op))

	hospitalID, ok := hospitalIDParam(c)
	if !ok {
		return
	}

	var details models.HospitalDetails
	if err := c.ShouldBindJSON(&details); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	updated, err := h.serviceLayer.AddHospitalDetails(c.Request.Context(), hospitalID, details)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			newErrorResponse(c, http.StatusNotFound, "hospital not found")

			return
		}

		log.Error("failed to add hospital details", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to add hospital details")

		return
	}

	log.Info("hospital details added", slog.String("hospital_id", hospitalID.String()))

	c.JSON(http.StatusOK, updated)
}

func hospitalIDParam(c *gin.Context) (uuid.UUID, bool) {
	hospitalID, err := uuid.FromString(c.Param("id"))
	if err != nil {
		newErrorResponse(c, http.StatusBadRequest, "invalid hospital id")

		return uuid.Nil, false
	}

	return hospitalID, true
}
