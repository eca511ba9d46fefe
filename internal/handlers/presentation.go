package handlers

import (
	"net/http"
	"strconv"

	"conf_sched/internal/models"
	"conf_sched/internal/response"
	"conf_sched/internal/storage"

	"github.com/gin-gonic/gin"
)

// AuthorRequest — автор доклада в запросе создания. Вид привязки определяет,
// какие поля обязательны: internal — speaker_id, presenter — presenter_id,
// freeform — name и email.
type AuthorRequest struct {
	Kind        string `json:"kind" binding:"required"`
	SpeakerID   *uint  `json:"speaker_id"`
	PresenterID *uint  `json:"presenter_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Affiliation string `json:"affiliation"`
}

type CreatePresentationRequest struct {
	Title         string          `json:"title" binding:"required"`
	Abstract      string          `json:"abstract"`
	FinalDuration int             `json:"final_duration" binding:"required,gt=0"`
	CategoryID    *uint           `json:"category_id"`
	Authors       []AuthorRequest `json:"authors"`
}

// CreatePresentationHandler обрабатывает создание доклада
// @Summary		Создание доклада
// @Description	Создаёт доклад конференции с длительностью и авторами
// @Tags			presentations
// @Accept			json
// @Produce		json
// @Param			id	path		string	true	"ID конференции"
// @Param			presentation	body		CreatePresentationRequest	true	"Данные доклада"
// @Success		201	{object}	models.Presentation	"Созданный доклад"
// @Failure		400	{object}	response.ErrorResponse	"Ошибка валидации (VALIDATION_ERROR, INVALID_AUTHOR_KIND)"
// @Failure		404	{object}	response.ErrorResponse	"Конференция не найдена (CONFERENCE_NOT_FOUND)"
// @Failure		500	{object}	response.ErrorResponse	"Ошибка сервера (DB_ERROR)"
// @Router			/api/conferences/{id}/presentations [post]
func CreatePresentationHandler(c *gin.Context) {
	conferenceID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "INVALID_CONFERENCE_ID",
			Message: "Неверный идентификатор конференции",
		})
		return
	}

	var req CreatePresentationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.ErrorResponse{
			Code:    "VALIDATION_ERROR",
			Message: "Ошибка валидации данных",
			Details: err.Error(),
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

	authors := make([]models.Author, 0, len(req.Authors))
	for _, a := range req.Authors {
		switch a.Kind {
		case models.AuthorKindInternal:
			if a.SpeakerID == nil {
				c.JSON(http.StatusBadRequest, response.ErrorResponse{
					Code:    "INVALID_AUTHOR_KIND",
					Message: "Для автора вида internal требуется speaker_id",
				})
				return
			}
		case models.AuthorKindPresenter:
			if a.PresenterID == nil {
				c.JSON(http.StatusBadRequest, response.ErrorResponse{
					Code:    "INVALID_AUTHOR_KIND",
					Message: "Для автора вида presenter требуется presenter_id",
				})
				return
			}
		case models.AuthorKindFreeform:
			if a.Name == "" || a.Email == "" {
				c.JSON(http.StatusBadRequest, response.ErrorResponse{
					Code:    "INVALID_AUTHOR_KIND",
					Message: "Для автора вида freeform требуются name и email",
				})
				return
			}
		default:
			c.JSON(http.StatusBadRequest, response.ErrorResponse{
				Code:    "INVALID_AUTHOR_KIND",
				Message: "Недопустимый вид автора: " + a.Kind,
			})
			return
		}
		authors = append(authors, models.Author{
			Kind:        a.Kind,
			SpeakerID:   a.SpeakerID,
			PresenterID: a.PresenterID,
			Name:        a.Name,
			Email:       a.Email,
			Affiliation: a.Affiliation,
		})
	}

	presentation := models.Presentation{
		ConferenceID:  conference.ID,
		CategoryID:    req.CategoryID,
		Title:         req.Title,
		Abstract:      req.Abstract,
		FinalDuration: req.FinalDuration,
		Authors:       authors,
	}
	if err := storage.DB.Create(&presentation).Error; err != nil {
		c.JSON(http.StatusInternalServerError, response.ErrorResponse{
			Code:    "DB_ERROR",
			Message: "Ошибка создания доклада",
			Details: err.Error(),
		})
		return
	}

	c.JSON(http.StatusCreated, presentation)
}
