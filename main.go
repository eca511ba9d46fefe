package main

import (
	"fmt"
	"log"
	"os"

	_ "conf_sched/docs"
	"conf_sched/internal/handlers"
	"conf_sched/internal/models"
	"conf_sched/internal/storage"
	"conf_sched/internal/tasks"
	"conf_sched/internal/ws"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @Title	Планировщик расписания конференций
func main() {
	key := os.Getenv("ENV_CHEK")
	if key == "" {
		fmt.Println("Подключение к .env")
		err := godotenv.Load()
		if err != nil {
			log.Fatal("Ошибка получения .env")
		}
	}

	storage.ConnectDatabase()

	if err := storage.DB.AutoMigrate(
		&models.Conference{}, &models.Day{}, &models.Section{}, &models.TimeSlot{},
		&models.Category{}, &models.Presentation{}, &models.Author{},
		&models.Speaker{}, &models.Presenter{},
	); err != nil {
		log.Fatal("Ошибка при миграции... ", err.Error())
	}

	storage.InitRedis()

	tasks.InitScheduler()

	go ws.HubInstance.Run()

	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

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

	if err := r.Run(":8080"); err != nil {
		log.Fatal("Ошибка запуска сервера...", err.Error())
	}
}
