package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hospitaldir/internal/auth"
	"hospitaldir/internal/models"
	"hospitaldir/internal/service"
)

type Handler struct {
	serviceLayer service.Service
	tokens       *auth.TokenManager
	log          *slog.Logger
}

type errorResponse struct {
	Message string `json:"message"`
}

type authResponse struct {
	Token string      `json:"token"`
	User  models.User `json:"user"`
}

func newErrorResponse(c *gin.Context, statusCode int, errMessage string) {
	c.AbortWithStatusJSON(statusCode, errorResponse{Message: errMessage})
}

func NewHandler(srvc service.Service, tokens *auth.TokenManager, lgr *slog.Logger) *Handler {
	return &Handler{
		serviceLayer: srvc,
		tokens:       tokens,
		log:          lgr,
	}
}

func (h *Handler) InitRoutes() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"http://localhost:3001"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := router.Group("/api")
	{
		api.GET("/health", h.Health)

		users := api.Group("/users")
		{
			users.POST("/register", h.Register)
			users.POST("/login", h.Login)
		}

		hospitals := api.Group("/hospitals")
		{
			hospitals.GET("/all", h.GetAllHospitals)
			hospitals.GET("/city", h.GetHospitalsByCity)
			hospitals.GET("/:id", h.GetHospital)

			admin := hospitals.Group("")
			admin.Use(AuthMiddleware(h.tokens), RequireRole(models.RoleAdmin))
			{
				admin.POST("", h.CreateHospital)
				admin.PUT("/:id", h.UpdateHospital)
				admin.DELETE("/:id", h.DeleteHospital)
				admin.POST("/:id/details", h.AddHospitalDetails)
			}
		}
	}

	return router
}

// GET /api/health
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Server is running"})
}

// POST /api/users/register
func (h *Handler) Register(c *gin.Context) {
	const op = "handler.Register"

	log := h.log.With(slog.String("op", op))

	var req struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusBadRequest, "invalid request body")

		return
	}

	if req.Username == "" {
		newErrorResponse(c, http.StatusBadRequest, "empty username")

		return
	}

	if ok := IsValidEmail(req.Email); !ok {
		newErrorResponse(c, http.StatusBadRequest, "not valid email")

		return
	}

	if req.Password == "" {
		newErrorResponse(c, http.StatusBadRequest, "empty password")

		return
	}

	token, user, err := h.serviceLayer.Register(c.Request.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrIdentityExists) {
			newErrorResponse(c, http.StatusBadRequest, err.Error())

			return
		}

		log.Error("failed to register user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to register")

		return
	}

	log.Info("user registered", slog.String("user_id", user.ID.String()))

	c.JSON(http.StatusCreated, authResponse{Token: token, User: user})
}

// POST /api/users/login
func (h *Handler) Login(c *gin.Context) {
	const op = "handler.Login"

	log := h.log.With(slog.String("op", op))

	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		log.Error("failed to read request body", slog.Any("error", err))

		newErrorResponse(c, http.StatusUnauthorized, "invalid credentials")

		return
	}

	token, user, err := h.serviceLayer.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			newErrorResponse(c, http.StatusUnauthorized, err.Error())

			return
		}

		log.Error("failed to login user", slog.Any("error", err))

		newErrorResponse(c, http.StatusInternalServerError, "failed to login")

		return
	}

	log.Info("user logged in", slog.String("user_id", user.ID.String()))

	c.JSON(http.StatusOK, authResponse{Token: token, User: user})
}

func IsValidEmail(email string) bool {
	if email == "" {
		return false
	}

	_, err := mail.ParseAddress(email)

	return err == nil
}
