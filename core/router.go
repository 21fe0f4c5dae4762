package core

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, users UserRepository, accounts *AccountService, tokens *TokenService, limiter *LoginLimiter) *gin.Engine {
	r := gin.Default()

	r.Use(CORSMiddleware())

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public directory: displayName/email projection of every user.
		api.GET("/auth", func(c *gin.Context) {
			entries, err := users.ListDirectory(c.Request.Context())
			if err != nil {
				log.Printf("directory listing failed: %v", err)
				respondNO(c, http.StatusInternalServerError, msgServerError)
				return
			}
			c.JSON(http.StatusOK, entries)
		})

		// Signup.
		api.POST("/auth/reg", func(c *gin.Context) {
			var req struct {
				Nombre string `json:"nombre"`
				Email  string `json:"email"`
				Pass   string `json:"pass"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondNO(c, http.StatusBadRequest, msgSignupMissing)
				return
			}

			res, err := accounts.Signup(c.Request.Context(), req.Nombre, req.Email, req.Pass)
			switch {
			case errors.Is(err, ErrMissingFields):
				respondNO(c, http.StatusBadRequest, msgSignupMissing)
			case errors.Is(err, ErrDuplicateEmail):
				respondNO(c, http.StatusConflict, msgDuplicateEmail)
			case err != nil:
				log.Printf("signup failed: %v", err)
				respondNO(c, http.StatusInternalServerError, msgServerError)
			default:
				c.JSON(http.StatusOK, gin.H{"result": "OK", "token": res.Token, "usuario": res.User})
			}
		})

		// Login.
		api.POST("/auth", func(c *gin.Context) {
			var req struct {
				Email string `json:"email"`
				Pass  string `json:"pass"`
			}
			if err := c.ShouldBindJSON(&req); err != nil {
				respondNO(c, http.StatusBadRequest, msgLoginMissing)
				return
			}

			if !limiter.Allow(c.Request.Context(), req.Email) {
				respondNO(c, http.StatusTooManyRequests, msgTooManyAttempts)
				return
			}

			res, err := accounts.Login(c.Request.Context(), req.Email, req.Pass)
			switch {
			case errors.Is(err, ErrMissingFields):
				respondNO(c, http.StatusBadRequest, msgLoginMissing)
			case errors.Is(err, ErrUnknownEmail):
				respondNO(c, http.StatusConflict, msgUnknownEmail)
			case errors.Is(err, ErrPasswordMismatch):
				respondNO(c, http.StatusUnauthorized, msgWrongPassword)
			case err != nil:
				log.Printf("login failed: %v", err)
				respondNO(c, http.StatusInternalServerError, msgServerError)
			default:
				c.JSON(http.StatusOK, gin.H{"result": "OK", "token": res.Token, "usuario": res.User})
			}
		})

		// The authenticated principal's own record.
		api.GET("/auth/me", AuthRequired(tokens), func(c *gin.Context) {
			p, ok := CurrentPrincipal(c)
			if !ok {
				respondKO(c, http.StatusUnauthorized, msgTokenInvalid)
				return
			}

			u, err := users.FindByID(c.Request.Context(), p.ID)
			if err != nil {
				if errors.Is(err, ErrNotFound) {
					respondNO(c, http.StatusNotFound, msgUserNotFound)
					return
				}
				log.Printf("me lookup failed: %v", err)
				respondNO(c, http.StatusInternalServerError, msgServerError)
				return
			}
			c.JSON(http.StatusOK, u)
		})

		// Protected CRUD pass-throughs to the store.
		user := api.Group("/user", AuthRequired(tokens))
		{
			user.GET("", func(c *gin.Context) {
				all, err := users.FindAll(c.Request.Context())
				if err != nil {
					log.Printf("user listing failed: %v", err)
					respondNO(c, http.StatusInternalServerError, msgServerError)
					return
				}
				c.JSON(http.StatusOK, all)
			})

			user.GET("/:id", func(c *gin.Context) {
				u, err := users.FindByID(c.Request.Context(), c.Param("id"))
				if err != nil {
					if errors.Is(err, ErrNotFound) {
						respondNO(c, http.StatusNotFound, msgUserNotFound)
						return
					}
					log.Printf("user lookup failed: %v", err)
					respondNO(c, http.StatusInternalServerError, msgServerError)
					return
				}
				c.JSON(http.StatusOK, u)
			})

			user.POST("", func(c *gin.Context) {
				var doc map[string]any
				if err := c.ShouldBindJSON(&doc); err != nil || len(doc) == 0 {
					respondNO(c, http.StatusBadRequest, msgInvalidBody)
					return
				}
				saved, err := users.InsertRaw(c.Request.Context(), doc)
				if err != nil {
					log.Printf("user insert failed: %v", err)
					respondNO(c, http.StatusInternalServerError, msgServerError)
					return
				}
				c.JSON(http.StatusOK, saved)
			})

			user.PUT("/:id", func(c *gin.Context) {
				var fields map[string]any
				if err := c.ShouldBindJSON(&fields); err != nil || len(fields) == 0 {
					respondNO(c, http.StatusBadRequest, msgInvalidBody)
					return
				}
				n, err := users.UpdateFields(c.Request.Context(), c.Param("id"), fields)
				if err != nil {
					if errors.Is(err, ErrNotFound) {
						respondNO(c, http.StatusNotFound, msgUserNotFound)
						return
					}
					log.Printf("user update failed: %v", err)
					respondNO(c, http.StatusInternalServerError, msgServerError)
					return
				}
				c.JSON(http.StatusOK, gin.H{"n": n, "ok": 1})
			})

			user.DELETE("/:id", func(c *gin.Context) {
				n, err := users.Remove(c.Request.Context(), c.Param("id"))
				if err != nil {
					if errors.Is(err, ErrNotFound) {
						respondNO(c, http.StatusNotFound, msgUserNotFound)
						return
					}
					log.Printf("user remove failed: %v", err)
					respondNO(c, http.StatusInternalServerError, msgServerError)
					return
				}
				c.JSON(http.StatusOK, gin.H{"n": n, "ok": 1})
			})
		}
	}

	return r
}
