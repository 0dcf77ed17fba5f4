package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"tasknotes/internal/services"
)

type Handler interface {
	HandleGetCaptcha(c *gin.Context)
	HandleLogin(c *gin.Context)
	HandleRefresh(c *gin.Context)
	HandleRegister(c *gin.Context)
	HandleLogout(c *gin.Context)
	HandleAuthMiddleware(c *gin.Context)

	HandleCreateTask(c *gin.Context)
	HandleGetTasks(c *gin.Context)
	HandleGetTaskStats(c *gin.Context)
	HandleUpdateTask(c *gin.Context)
	HandleDeleteTask(c *gin.Context)

	HandleCreateNote(c *gin.Context)
	HandleGetNotes(c *gin.Context)
	HandleDeleteNote(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	auth    services.AuthService
	captcha services.CaptchaService
	tasks   services.TaskService
	notes   services.NoteService
}

func New(
	logger zerolog.Logger,
	authService services.AuthService,
	captchaService services.CaptchaService,
	taskService services.TaskService,
	noteService services.NoteService,
) Handler {
	return &handlerImpl{
		logger:  logger,
		auth:    authService,
		captcha: captchaService,
		tasks:   taskService,
		notes:   noteService,
	}
}
