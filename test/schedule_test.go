package test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"testing"
	"time"

	"conf_sched/internal/handlers"
	"conf_sched/internal/models"
	"conf_sched/internal/storage"
	"conf_sched/internal/ws"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func setupTestServer() *httptest.Server {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load("../.env")
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectTestingDatabase()
	storage.DB.Exec("TRUNCATE TABLE conferences, days, sections, time_slots, categories, presentations, authors, speakers, presenters RESTART IDENTITY CASCADE;")

	if err := storage.DB.AutoMigrate(
		&models.Conference{}, &models.Day{}, &models.Section{}, &models.TimeSlot{},
		&models.Category{}, &models.Presentation{}, &models.Author{},
		&models.Speaker{}, &models.Presenter{},
	); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	go ws.HubInstance.Run()

	r := gin.Default()

	conferences := r.Group("/api/conferences")
	{
		conferences.POST("", handlers.CreateConferenceHandler)
		conferences.GET("/:id", handlers.GetConferenceHandler)
		conferences.GET("/:id/schedule", handlers.GetScheduleOverviewHandler)
		conferences.GET("/:id/unscheduled", handlers.GetUnscheduledPresentationsHandler)
		conferences.POST("/:id/publish", handlers.PublishScheduleHandler)
		conferences.POST("/:id/sections", handlers.CreateSectionHandler)
		conferences.POST("/:id/presentations", handlers.CreatePresentationHandler)
		conferences.GET("/:id/ws", ws.ScheduleWebSocketHandler)
	}

	presentations := r.Group("/api/presentations")
	{
		presentations.POST("/:id/assign", handlers.AssignPresentationHandler)
		presentations.POST("/:id/assign/confirm", handlers.ConfirmAssignmentHandler)
		presentations.DELETE("/:id/slot", handlers.UnassignPresentationHandler)
	}

	r.DELETE("/api/sections/:id", handlers.DeleteSectionHandler)

	return httptest.NewServer(r)
}

func postJSON(t *testing.T, url string, body interface{}) *http.Response {
	payload, err := json.Marshal(body)
	assert.NoError(t, err, "Ошибка сериализации запроса")
	res, err := http.Post(url, "application/json", bytes.NewReader(payload))
	assert.NoError(t, err, "Ошибка HTTP запроса "+url)
	return res
}

func decodeBody(t *testing.T, res *http.Response) map[string]interface{} {
	defer res.Body.Close()
	var body map[string]interface{}
	err := json.NewDecoder(res.Body).Decode(&body)
	assert.NoError(t, err, "Ошибка разбора ответа")
	return body
}

func TestScheduleFlow(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	// 1. Создаем конференцию на три дня.
	res := postJSON(t, ts.URL+"/api/conferences", map[string]interface{}{
		"name":       "Тестовая конференция",
		"start_date": "2024-07-15",
		"end_date":   "2024-07-17",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Конференция не создана")
	conference := decodeBody(t, res)
	conferenceID := int(conference["ID"].(float64))
	log.Println("Тестовая конференция создана, ID:", conferenceID)

	confURL := ts.URL + "/api/conferences/" + strconv.Itoa(conferenceID)

	// 2. Подключаемся к WS до первых назначений.
	wsURL := "ws" + ts.URL[4:] + "/api/conferences/" + strconv.Itoa(conferenceID) + "/ws"
	wsConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	assert.NoError(t, err, "Ошибка подключения к WS")
	defer wsConn.Close()

	// 3. Создаем секцию на час в первый день конференции.
	res = postJSON(t, confURL+"/sections", map[string]interface{}{
		"name":       "Секция А",
		"room":       "Зал 1",
		"capacity":   100,
		"type":       "presentation",
		"start_time": "2024-07-15T09:00:00Z",
		"end_time":   "2024-07-15T10:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Секция не создана")
	section := decodeBody(t, res)
	sectionID := int(section["ID"].(float64))
	log.Println("Тестовая секция создана, ID:", sectionID)

	// Проверяем ленивое создание дня с правильным порядком.
	var day models.Day
	err = storage.DB.Where("conference_id = ?", conferenceID).First(&day).Error
	assert.NoError(t, err, "День не был создан лениво")
	assert.Equal(t, 1, day.Order, "Порядок дня должен считаться от начала конференции")
	assert.Equal(t, "Day 1", day.DisplayName)

	// 4. Создаем три доклада: 30, 40 и 30 минут.
	var presentationIDs []int
	for i, duration := range []int{30, 40, 30} {
		res = postJSON(t, confURL+"/presentations", map[string]interface{}{
			"title":          fmt.Sprintf("Доклад %d", i+1),
			"final_duration": duration,
			"authors": []map[string]interface{}{
				{"kind": "freeform", "name": fmt.Sprintf("Автор %d", i+1), "email": fmt.Sprintf("author%d@example.com", i+1)},
			},
		})
		assert.Equal(t, http.StatusCreated, res.StatusCode, "Доклад не создан")
		body := decodeBody(t, res)
		presentationIDs = append(presentationIDs, int(body["ID"].(float64)))
	}

	assignBody := map[string]interface{}{"section_id": sectionID}

	// 5. Первый доклад (30 минут) встает в начало секции.
	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[0])+"/assign", assignBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Первый доклад не назначен")
	assigned := decodeBody(t, res)
	slot := assigned["time_slot"].(map[string]interface{})
	assert.Contains(t, slot["StartTime"].(string), "09:00:00", "Пустая секция: слот с начала секции")
	assert.Contains(t, slot["EndTime"].(string), "09:30:00")

	// WS: событие о назначении.
	wsConn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, wsMessage, err := wsConn.ReadMessage()
	assert.NoError(t, err, "Ошибка чтения WS сообщения")
	var wsMsg map[string]interface{}
	assert.NoError(t, json.Unmarshal(wsMessage, &wsMsg))
	assert.Equal(t, "slot_assigned", wsMsg["event_type"], "Неверный тип WS события")

	// 6. Второй доклад (40 минут) не помещается в остаток — требуется подтверждение.
	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[1])+"/assign", assignBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode, "Ожидался 409 с требованием подтверждения")
	confirmation := decodeBody(t, res)
	assert.Equal(t, true, confirmation["requires_confirmation"])
	truncation := confirmation["truncation_info"].(map[string]interface{})
	assert.Equal(t, float64(40), truncation["original_duration"])
	assert.Equal(t, float64(30), truncation["available_duration"])
	assert.Equal(t, float64(30), truncation["available_minutes"])

	// Слот при этом не создан.
	var slotCount int64
	storage.DB.Model(&models.TimeSlot{}).Count(&slotCount)
	assert.Equal(t, int64(1), slotCount, "Урезание не должно создавать слот до подтверждения")

	// 7. Подтверждаем урезанную длительность — слот занимает остаток ровно до границы.
	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[1])+"/assign/confirm", map[string]interface{}{
		"section_id":         sectionID,
		"confirmed_duration": 30,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Подтверждённое назначение не прошло")
	confirmed := decodeBody(t, res)
	slot = confirmed["time_slot"].(map[string]interface{})
	assert.Contains(t, slot["StartTime"].(string), "09:30:00")
	assert.Contains(t, slot["EndTime"].(string), "10:00:00", "Слот должен закончиться точно на границе секции")
	assert.Equal(t, float64(30), confirmed["actual_duration"])

	// 8. Третий доклад не помещается вовсе — секция занята целиком.
	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[2])+"/assign", assignBody)
	assert.Equal(t, http.StatusConflict, res.StatusCode)
	failure := decodeBody(t, res)
	assert.Equal(t, "NO_CAPACITY", failure["code"], "Полная секция должна давать NO_CAPACITY")

	// 9. Обзор расписания: три дня, секция в первом дне, статистика 2 из 3.
	res, err = http.Get(confURL + "/schedule")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Ошибка получения обзора расписания")
	overview := decodeBody(t, res)

	days := overview["days"].([]interface{})
	assert.Equal(t, 3, len(days), "Диапазон дат должен дать три дня")
	firstDay := days[0].(map[string]interface{})
	assert.Equal(t, "2024-07-15", firstDay["date"])
	assert.Equal(t, 1, int(firstDay["order"].(float64)))
	assert.Equal(t, 1, len(firstDay["sections"].([]interface{})), "Секция должна попасть в свой день")
	secondDay := days[1].(map[string]interface{})
	assert.Equal(t, 0, len(secondDay["sections"].([]interface{})), "Пустой день — пустой список секций")

	stats := overview["statistics"].(map[string]interface{})
	assert.Equal(t, float64(3), stats["total_presentations"])
	assert.Equal(t, float64(2), stats["scheduled_presentations"])
	assert.Equal(t, float64(1), stats["unscheduled_presentations"])
	assert.Equal(t, float64(67), stats["scheduling_progress"], "2/3 округляется до 67")

	// 10. Нераспределённые доклады: остался только третий.
	res, err = http.Get(confURL + "/unscheduled")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	var groups []map[string]interface{}
	json.NewDecoder(res.Body).Decode(&groups)
	res.Body.Close()
	assert.Equal(t, 1, len(groups), "Одна группа нераспределённых докладов")
	unscheduled := groups[0]["presentations"].([]interface{})
	assert.Equal(t, 1, len(unscheduled))
	assert.Equal(t, float64(presentationIDs[2]), unscheduled[0].(map[string]interface{})["id"])

	// 11. Снимаем второй доклад — освобождается хвост секции.
	req, _ := http.NewRequest("DELETE", ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[1])+"/slot", nil)
	res, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Доклад не снят с расписания")
	res.Body.Close()

	// Повторное снятие — 404, слота больше нет.
	req, _ = http.NewRequest("DELETE", ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[1])+"/slot", nil)
	res, err = http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, res.StatusCode, "Повторное снятие должно давать 404")
	res.Body.Close()

	// 12. Освобождённое окно доступно: третий доклад встает с корректного фронтира.
	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationIDs[2])+"/assign", assignBody)
	assert.Equal(t, http.StatusCreated, res.StatusCode, "Назначение в освобождённое окно не прошло")
	reassigned := decodeBody(t, res)
	slot = reassigned["time_slot"].(map[string]interface{})
	assert.Contains(t, slot["StartTime"].(string), "09:30:00", "Фронтир после снятия — окончание оставшегося слота")

	// 13. Публикация расписания.
	res = postJSON(t, confURL+"/publish", nil)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Публикация не прошла")
	published := decodeBody(t, res)
	assert.Equal(t, "published", published["Status"], "Статус конференции должен стать published")
}

func TestFixedSectionRejectsAssignment(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	res := postJSON(t, ts.URL+"/api/conferences", map[string]interface{}{
		"name":       "Конференция с перерывом",
		"start_date": "2024-09-02",
		"end_date":   "2024-09-02",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	conference := decodeBody(t, res)
	conferenceID := int(conference["ID"].(float64))
	confURL := ts.URL + "/api/conferences/" + strconv.Itoa(conferenceID)

	// Фиксированная секция-перерыв сразу получает слот на всё своё время.
	res = postJSON(t, confURL+"/sections", map[string]interface{}{
		"name":       "Обед",
		"room":       "Фойе",
		"type":       "lunch",
		"start_time": "2024-09-02T13:00:00Z",
		"end_time":   "2024-09-02T14:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	section := decodeBody(t, res)
	sectionID := int(section["ID"].(float64))

	var fixedSlots int64
	storage.DB.Model(&models.TimeSlot{}).Where("section_id = ?", sectionID).Count(&fixedSlots)
	assert.Equal(t, int64(1), fixedSlots, "Фиксированная секция должна получить спан-слот при создании")

	res = postJSON(t, confURL+"/presentations", map[string]interface{}{
		"title":          "Случайный доклад",
		"final_duration": 20,
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	presentation := decodeBody(t, res)
	presentationID := int(presentation["ID"].(float64))

	res = postJSON(t, ts.URL+"/api/presentations/"+strconv.Itoa(presentationID)+"/assign", map[string]interface{}{
		"section_id": sectionID,
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	failure := decodeBody(t, res)
	assert.Equal(t, "SECTION_FIXED", failure["code"], "Фиксированная секция не принимает доклады")
}

func TestDeleteSectionCleansUpDay(t *testing.T) {
	ts := setupTestServer()
	defer ts.Close()

	res := postJSON(t, ts.URL+"/api/conferences", map[string]interface{}{
		"name":       "Конференция на день",
		"start_date": "2024-10-01",
		"end_date":   "2024-10-01",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	conference := decodeBody(t, res)
	conferenceID := int(conference["ID"].(float64))
	confURL := ts.URL + "/api/conferences/" + strconv.Itoa(conferenceID)

	res = postJSON(t, confURL+"/sections", map[string]interface{}{
		"name":       "Единственная секция",
		"room":       "Зал 2",
		"type":       "presentation",
		"start_time": "2024-10-01T10:00:00Z",
		"end_time":   "2024-10-01T12:00:00Z",
	})
	assert.Equal(t, http.StatusCreated, res.StatusCode)
	section := decodeBody(t, res)
	sectionID := int(section["ID"].(float64))

	var dayCount int64
	storage.DB.Model(&models.Day{}).Where("conference_id = ?", conferenceID).Count(&dayCount)
	assert.Equal(t, int64(1), dayCount)

	req, _ := http.NewRequest("DELETE", ts.URL+"/api/sections/"+strconv.Itoa(sectionID), nil)
	res, err := http.DefaultClient.Do(req)
	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, res.StatusCode, "Секция не удалена")
	res.Body.Close()

	storage.DB.Model(&models.Day{}).Where("conference_id = ?", conferenceID).Count(&dayCount)
	assert.Equal(t, int64(0), dayCount, "День без секций должен удаляться каскадно")
}
