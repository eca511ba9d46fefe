package handlers

import (
	"net/http"
	"strconv"
	"time"

	"conf_sched/internal/models"
	"conf_sched/internal/response"
	"conf_sched/internal/storage"
	"conf_sched/internal/ws"

	"github.com/gin-gonic/gin"
)

// dateLayout — формат дат конференции в запросах API.
const dateLayout = "2006-01-02"

type CreateConferenceRequest struct {
	Name      string `json:"name" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	EndDate   string `json:"end_date" binding:"required"`   // YYYY-MM-DD
}

// CreateConferenceHandler обрабатывает создание конференции
// @Summary		Создание конференции
// @Description	Создаёт конференцию с диапазоном дат проведения
// @Tags			conferences
// @Accept			json
// @Produce		json
// @Param			conference	body		CreateConferenceRequest	true	"Данные конференции"
// @Success		201	{object}	models.Conference	"Созданная конференция"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_DATE_RANGE)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences [post]
func CreateConferenceHandler(c *gin.Context) {
	var req CreateConferenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	startDate, err := time.Parse(dateLayout, req.StartDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверный формат даты начала, ожидается YYYY-MM-DD",
		})
		return
	}
	endDate, err := time.Parse(dateLayout, req.EndDate)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Неверный формат даты окончания, ожидается YYYY-MM-DD",
		})
		return
	}
	if endDate.Before(startDate) {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DATE_RANGE",
			Message: "Дата окончания раньше даты начала",
		})
		return
	}

	conference := models.Conference{
		Name:      req.Name,
		StartDate: startDate,
		EndDate:   endDate,
		Status:    models.ConferenceStatusDraft,
	}
	if err := storage.DB.Create(&conference).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания конференции",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, conference)
}

// GetConferenceHandler обрабатывает запрос конференции по ID
// @Summary		Получение конференции
// @Description	Возвращает конференцию по идентификатору
// @Tags			conferences
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Success		200	{object}	models.Conference	"Конференция"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_CONFERENCE_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Конференция не найдена (CONFERENCE_NOT_FOUND)"
// @Router			/api/conferences/{id} [get]
func GetConferenceHandler(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
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

	c.JSON(http.StatusOK, conference)
}

// PublishScheduleHandler обрабатывает публикацию расписания
// @Summary		Публикация расписания
// @Description	Переводит конференцию в статус published и уведомляет зрителей
// @Tags			schedule
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Success		200	{object}	models.Conference	"Конференция со статусом published"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_CONFERENCE_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Конференция не найдена (CONFERENCE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences/{id}/publish [post]
func PublishScheduleHandler(c *gin.Context) {
	conferenceIDStr := c.Param("id")
	conferenceID, err := strconv.Atoi(conferenceIDStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
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

	now := time.Now()
	conference.Status = models.ConferenceStatusPublished
	conference.PublishedAt = &now
	if err := storage.DB.Save(&conference).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка публикации расписания",
			Details: err.Error(),
		})
		return
	}

	InvalidateScheduleCache(uint(conferenceID))

	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType:    "schedule_published",
		ConferenceID: conferenceIDStr,
		Data: map[string]interface{}{
			"conference_id": conference.ID,
			"published_at":  now,
		},
	})

	c.JSON(http.StatusOK, conference)
}
