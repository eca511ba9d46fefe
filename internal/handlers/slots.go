package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"conf_sched/internal/models"
	"conf_sched/internal/response"
	"conf_sched/internal/schedule"
	"conf_sched/internal/storage"
	"conf_sched/internal/ws"

	"github.com/gin-gonic/gin"
)

type AssignRequest struct {
	SectionID uint `json:"section_id" binding:"required"`
}

type ConfirmAssignRequest struct {
	SectionID         uint `json:"section_id" binding:"required"`
	ConfirmedDuration int  `json:"confirmed_duration" binding:"required"`
}

// AssignedResponse — успешный результат назначения доклада.
type AssignedResponse struct {
	TimeSlot       *models.TimeSlot     `json:"time_slot"`
	Presentation   *models.Presentation `json:"presentation"`
	ActualDuration int                  `json:"actual_duration,omitempty"`
}

// AssignPresentationHandler обрабатывает назначение доклада в секцию
// @Summary		Назначение доклада в секцию
// @Description	Размещает доклад в следующее свободное окно секции; при нехватке места возвращает 409 с деталями урезания
// @Tags			slots
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID доклада"
// @Param			body	body		AssignRequest	true	"Целевая секция"
// @Success		201	{object}	AssignedResponse	"Созданный слот"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_PRESENTATION_ID, VALIDATION_ERROR, INVALID_DURATION, SECTION_FIXED)"
// @Failure		404	{object}	response.ErrorResponse	"Доклад или секция не найдены (NOT_FOUND)"
// @Failure		409	{object}	response.ConfirmationRequiredResponse	"Требуется подтверждение урезания, либо нет места (NO_CAPACITY), либо конкурентный конфликт (CONFLICT)"
// @Router			/api/presentations/{id}/assign [post]
func AssignPresentationHandler(c *gin.Context) {
	presentationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PRESENTATION_ID",
			Message: "Неверный идентификатор доклада",
		})
		return
	}

	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
		})
		return
	}

	engine := schedule.NewEngine(storage.DB)
	outcome, err := engine.AssignPresentation(uint(presentationID), req.SectionID)
	if err != nil {
		respondAssignError(c, err)
		return
	}

	// Урезание — ожидаемая ветка: слот не создан, клиент решает сам.
	if outcome.RequiresConfirmation {
		c.JSON(http.StatusConflict, response.ConfirmationRequiredResponse{
			RequiresConfirmation: true,
			TruncationInfo: response.TruncationInfo{
				OriginalDuration:  outcome.OriginalDuration,
				AvailableDuration: outcome.AvailableDuration,
				AvailableMinutes:  outcome.AvailableMinutes,
			},
		})
		return
	}

	notifySlotAssigned(outcome)

	c.JSON(http.StatusCreated, AssignedResponse{
		TimeSlot:     outcome.TimeSlot,
		Presentation: outcome.Presentation,
	})
}

// ConfirmAssignmentHandler обрабатывает назначение с подтверждённой длительностью
// @Summary		Назначение доклада с урезанной длительностью
// @Description	Повторяет назначение с длительностью из отчёта об урезании; при гонке за остаток секции возвращает NO_CAPACITY
// @Tags			slots
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID доклада"
// @Param			body	body		ConfirmAssignRequest	true	"Секция и подтверждённая длительность"
// @Success		201	{object}	AssignedResponse	"Созданный слот с фактической длительностью"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_PRESENTATION_ID, VALIDATION_ERROR, INVALID_DURATION, SECTION_FIXED)"
// @Failure		404	{object}	response.ErrorResponse	"Доклад или секция не найдены (NOT_FOUND)"
// @Failure		409	{object}	response.ErrorResponse	"Нет места (NO_CAPACITY) или конкурентный конфликт (CONFLICT)"
// @Router			/api/presentations/{id}/assign/confirm [post]
func ConfirmAssignmentHandler(c *gin.Context) {
	presentationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PRESENTATION_ID",
			Message: "Неверный идентификатор доклада",
		})
		return
	}

	var req ConfirmAssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Необходимо указать section_id и confirmed_duration",
			Details: err.Error(),
		})
		return
	}

	engine := schedule.NewEngine(storage.DB)
	outcome, err := engine.AssignPresentationWithDuration(uint(presentationID), req.SectionID, req.ConfirmedDuration)
	if err != nil {
		respondAssignError(c, err)
		return
	}

	notifySlotAssigned(outcome)

	c.JSON(http.StatusCreated, AssignedResponse{
		TimeSlot:       outcome.TimeSlot,
		Presentation:   outcome.Presentation,
		ActualDuration: req.ConfirmedDuration,
	})
}

// UnassignPresentationHandler обрабатывает снятие доклада с расписания
// @Summary		Снятие доклада с расписания
// @Description	Удаляет единственный слот доклада; соседние слоты не пересчитываются
// @Tags			slots
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID доклада"
// @Success		200	{object}	response.SuccessResponse	"Слот удалён"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (INVALID_PRESENTATION_ID)"
// @Failure		404	{object}	response.ErrorResponse	"Слот для доклада не найден (SLOT_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/presentations/{id}/slot [delete]
func UnassignPresentationHandler(c *gin.Context) {
	presentationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_PRESENTATION_ID",
			Message: "Неверный идентификатор доклада",
		})
		return
	}

	engine := schedule.NewEngine(storage.DB)
	slot, err := engine.UnassignPresentation(uint(presentationID))
	if err != nil {
		if errors.Is(err, schedule.ErrNotFound) {
			c.JSON(http.StatusNotFound, response.ErrorResponse{
				Code:    "SLOT_NOT_FOUND",
				Message: "Слот для этого доклада не найден",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка снятия доклада с расписания",
			Details: err.Error(),
		})
		return
	}

	if conferenceID, ok := conferenceOfSection(slot.SectionID); ok {
		InvalidateScheduleCache(conferenceID)
		ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
			EventType:    "slot_unassigned",
			ConferenceID: strconv.Itoa(int(conferenceID)),
			Data: map[string]interface{}{
				"presentation_id": presentationID,
				"section_id":      slot.SectionID,
			},
		})
	}

	c.JSON(http.StatusOK, gin.H{"message": "Доклад снят с расписания"})
}

// respondAssignError транслирует ошибки движка назначения в ответы API.
func respondAssignError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, schedule.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorResponse{
			Code:    "NOT_FOUND",
			Message: "Доклад или секция не найдены",
		})
	case errors.Is(err, schedule.ErrInvalidDuration):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_DURATION",
			Message: "Длительность должна быть положительной",
		})
	case errors.Is(err, schedule.ErrSectionFixed):
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "SECTION_FIXED",
			Message: "Секция является фиксированным событием и не принимает доклады",
		})
	case errors.Is(err, schedule.ErrNoCapacity):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "NO_CAPACITY",
			Message: "В секции не осталось свободного времени",
		})
	case errors.Is(err, schedule.ErrConflict):
		c.JSON(http.StatusConflict, response.ErrorResponse{
			Code:    "CONFLICT",
			Message: "Конкурентное назначение, повторите запрос",
		})
	default:
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка назначения доклада",
			Details: err.Error(),
		})
	}
}

// notifySlotAssigned сбрасывает кэш обзора и рассылает событие о новом слоте.
func notifySlotAssigned(outcome *schedule.AssignOutcome) {
	if outcome.TimeSlot == nil {
		return
	}
	InvalidateScheduleCache(outcome.Presentation.ConferenceID)
	ws.HubInstance.BroadcastWSMessage(ws.WSMessage{
		EventType:    "slot_assigned",
		ConferenceID: strconv.Itoa(int(outcome.Presentation.ConferenceID)),
		Data: map[string]interface{}{
			"presentation_id": outcome.Presentation.ID,
			"section_id":      outcome.TimeSlot.SectionID,
			"start_time":      outcome.TimeSlot.StartTime,
			"end_time":        outcome.TimeSlot.EndTime,
		},
	})
}

// conferenceOfSection возвращает конференцию-владельца секции.
func conferenceOfSection(sectionID uint) (uint, bool) {
	var section models.Section
	if err := storage.DB.First(&section, sectionID).Error; err != nil {
		return 0, false
	}
	return section.ConferenceID, true
}
