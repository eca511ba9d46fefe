package handlers

import (
	"net/http"
	"strconv"
	"time"

	"conf_sched/internal/models"
	"conf_sched/internal/response"
	"conf_sched/internal/schedule"
	"conf_sched/internal/storage"

	"github.com/gin-gonic/gin"
)

type CreateSectionRequest struct {
	Name      string `json:"name" binding:"required"`
	Room      string `json:"room" binding:"required"`
	Capacity  int    `json:"capacity"`
	Type      string `json:"type" binding:"required"`
	StartTime string `json:"start_time" binding:"required"` // RFC3339
	EndTime   string `json:"end_time" binding:"required"`   // RFC3339
}

// CreateSectionHandler обрабатывает создание секции
// @Summary		Создание секции
// @Description	Создаёт секцию конференции; день для даты секции находится или создаётся лениво, фиксированные типы получают слот на всё время секции
// @Tags			sections
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Param			section	body		CreateSectionRequest	true	"Данные секции"
// @Success		201	{object}	models.Section	"Созданная секция"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_SECTION_TYPE, INVALID_TIME_RANGE, DATE_OUT_OF_RANGE)"
// @Failure		404	{object}	response.ErrorResponse	"Конференция не найдена (CONFERENCE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences/{id}/sections [post]
func CreateSectionHandler(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
		})
		return
	}

	var req CreateSectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	if !models.ValidSectionTypes[req.Type] {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SECTION_TYPE",
			Message: "Недопустимый тип секции",
		})
		return
	}

	startTime, err := time.Parse(time.RFC3339, req.StartTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверный формат start_time, ожидается RFC3339",
		})
		return
	}
	endTime, err := time.Parse(time.RFC3339, req.EndTime)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверный формат end_time, ожидается RFC3339",
		})
		return
	}
	if !startTime.Before(endTime) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_TIME_RANGE",
			Message: "Начало секции должно быть раньше окончания",
		})
		return
	}

	var conference models.Conference
	if err := storage.DB.First(&conference, conferenceID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "CONFERENCE_NOT_FOUND",
			Message: "Конференция не найдена",
		})
		return
	}

	// Дата секции обязана попадать в диапазон дат конференции.
	sectionDate := time.Date(startTime.Year(), startTime.Month(), startTime.Day(), 0, 0, 0, 0, time.UTC)
	confStart := time.Date(conference.StartDate.Year(), conference.StartDate.Month(), conference.StartDate.Day(), 0, 0, 0, 0, time.UTC)
	confEnd := time.Date(conference.EndDate.Year(), conference.EndDate.Month(), conference.EndDate.Day(), 0, 0, 0, 0, time.UTC)
	if sectionDate.Before(confStart) || sectionDate.After(confEnd) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "DATE_OUT_OF_RANGE",
			Message: "Дата секции вне диапазона дат конференции",
		})
		return
	}

	// Ленивое создание дня: находим день для (конференция, дата), при отсутствии
	// создаём с порядком по той же формуле, что у генератора дней.
	var day models.Day
	err = storage.DB.Where("conference_id = ? AND date = ?", conference.ID, sectionDate).First(&day).Error
	if err != nil {
		order := schedule.DayOrder(conference.StartDate, sectionDate)
		day = models.Day{
			ConferenceID: conference.ID,
			Date:         sectionDate,
			Order:        order,
			DisplayName:  "Day " + strconv.Itoa(order),
		}
		if err := storage.DB.Create(&day).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка создания дня конференции",
				Details: err.Error(),
			})
			return
		}
	}

	section := models.Section{
		ConferenceID: conference.ID,
		DayID:        &day.ID,
		Name:         req.Name,
		Room:         req.Room,
		Capacity:     req.Capacity,
		StartTime:    startTime,
		EndTime:      endTime,
		Type:         req.Type,
	}
	if err := storage.DB.Create(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания секции",
			Details: err.Error(),
		})
		return
	}

	// Фиксированная секция сразу получает один слот на всё своё время.
	if section.IsFixed() {
		slot := models.TimeSlot{
			SectionID: section.ID,
			StartTime: section.StartTime,
			EndTime:   section.EndTime,
		}
		if err := storage.DB.Create(&slot).Error; err != nil {
			c.JSON(http.StatusInternalServerError, response.ErrorResponse{
				Code:    "DB_ERROR",
				Message: "Ошибка создания фиксированного слота",
				Details: err.Error(),
			})
			return
		}
		section.TimeSlots = []models.TimeSlot{slot}
	}

	InvalidateScheduleCache(conference.ID)

	c.JSON(http.StatusCreated, section)
}

// DeleteSectionHandler обрабатывает удаление секции
// @Summary		Удаление секции
// @Description	Удаляет секцию вместе со слотами; если на дне не осталось других секций, день тоже удаляется
// @Tags			sections
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID секции"
// @Success		200	{object}	response.SuccessResponse	"Секция удалена"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_SECTION_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Секция не найдена (SECTION_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/sections/{id} [delete]
func DeleteSectionHandler(c *gin.Context) {
	sectionID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_SECTION_ID",
			Message: "Неверный идентификатор секции",
		})
		return
	}

	var section models.Section
	if err := storage.DB.First(&section, sectionID).Error; err != nil {
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "SECTION_NOT_FOUND",
			Message: "Секция не найдена",
		})
		return
	}

	// Unscoped: слоты и дни удаляются жёстко, см. комментарий в models.TimeSlot.
	if err := storage.DB.Unscoped().Where("section_id = ?", section.ID).Delete(&models.TimeSlot{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления слотов секции",
			Details: err.Error(),
		})
		return
	}
	if err := storage.DB.Delete(&section).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка удаления секции",
			Details: err.Error(),
		})
		return
	}

	// Каскадная чистка: день без оставшихся секций удаляется.
	if section.DayID != nil {
		var siblings int64
		storage.DB.Model(&models.Section{}).Where("day_id = ?", *section.DayID).Count(&siblings)
		if siblings == 0 {
			storage.DB.Unscoped().Delete(&models.Day{}, *section.DayID)
		}
	}

	InvalidateScheduleCache(section.ConferenceID)

	c.JSON(http.StatusOK, gin.H{"message": "Секция удалена"})
}
