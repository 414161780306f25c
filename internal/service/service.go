package service

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gitlab.com/dirk.krummacker/relationship-service/internal/errs"
	"gitlab.com/dirk.krummacker/relationship-service/internal/model"
	pkgmodel "gitlab.com/dirk.krummacker/relationship-service/pkg/model"
	"go.uber.org/zap"
)

// Birthdays is the birthday information of contacts as the HTTP layer sees it.
type Birthdays interface {
	UpdateBirthdayInformation(ctx context.Context, in pkgmodel.BirthdayUpdate) (*model.Contact, error)
	BirthdayInformation(ctx context.Context, accountId, contactId int64) (*model.BirthdayInformation, error)
}

// Pinger checks a backing resource.
type Pinger interface {
	Ping(ctx context.Context) error
}

type api struct {
	birthdays Birthdays
	db        Pinger
	logger    *zap.Logger
}

// SetupHttpRouter initializes the REST API router and registers all endpoints. HTTP request
// logging can be switched off for benchmarks.
func SetupHttpRouter(birthdays Birthdays, db Pinger, logger *zap.Logger, requestLogging bool) *gin.Engine {
	var router *gin.Engine
	if requestLogging {
		router = gin.Default()
	} else {
		logger.Info("turning off HTTP request logging")
		router = gin.New()
		router.Use(gin.Recovery())
	}
	a := &api{birthdays: birthdays, db: db, logger: logger}
	router.PUT("/contacts/:id/birthday", a.updateBirthdayByContactID)
	router.GET("/contacts/:id/birthday", a.findBirthdayByContactID)
	router.GET("/healthz", a.health)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return router
}

// updateBirthdayByContactID replaces the birthday information of the contact whose ID value
// matches the id parameter of the request URL, and responds with the updated contact. The contact
// id in the URL takes precedence over one in the JSON.
//
// Example REST API calls:
//
//	> curl http://localhost:8080/contacts/29/birthday --request "PUT" --include --header "Content-Type: application/json" --data '{"account_id": 3, "author_id": 7, "is_date_known": true, "day": 10, "month": 10, "year": 1980, "add_reminder": true}'
//	> curl http://localhost:8080/contacts/29/birthday --request "PUT" --include --header "Content-Type: application/json" --data '{"account_id": 3, "author_id": 7, "is_date_known": true, "is_age_based": true, "age": 46}'
//	> curl http://localhost:8080/contacts/29/birthday --request "PUT" --include --header "Content-Type: application/json" --data '{"account_id": 3, "author_id": 7, "is_date_known": false}'
func (a *api) updateBirthdayByContactID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var submitted pkgmodel.BirthdayUpdate
	if errBind := c.BindJSON(&submitted); errBind != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid JSON"})
		return
	}
	submitted.ContactId = &id

	contact, err := a.birthdays.UpdateBirthdayInformation(c.Request.Context(), submitted)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, contact)
}

// findBirthdayByContactID responds with the contact whose ID value matches the id parameter of the
// request URL, together with its birthday special date and reminder. The URL parameter
// 'account_id' is mandatory.
//
// Example REST API call:
//
//	> curl "http://localhost:8080/contacts/29/birthday?account_id=3"
func (a *api) findBirthdayByContactID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	accountId, errConv := strconv.ParseInt(c.Query("account_id"), 10, 64)
	if errConv != nil || accountId < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "invalid account_id parameter"})
		return
	}

	info, err := a.birthdays.BirthdayInformation(c.Request.Context(), accountId, id)
	if err != nil {
		a.abortWithError(c, err)
		return
	}
	c.IndentedJSON(http.StatusOK, info)
}

// health responds with OK as long as the database is reachable.
func (a *api) health(c *gin.Context) {
	if err := a.db.Ping(c.Request.Context()); err != nil {
		a.logger.Warn("health check failed", zap.Error(err))
		c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"message": "database unavailable"})
		return
	}
	c.IndentedJSON(http.StatusOK, gin.H{"message": "ok"})
}

// parseID reads the numeric id parameter of the request URL. It answers with NOT FOUND if the
// parameter is not a positive number.
func parseID(c *gin.Context) (int64, bool) {
	id, errConv := strconv.ParseInt(c.Param("id"), 10, 64)
	if errConv != nil || id < 1 {
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "invalid id parameter"})
		return 0, false
	}
	return id, true
}

// abortWithError maps the errors of the birthday service to HTTP responses.
func (a *api) abortWithError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrInvalidRequest):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": err.Error()})
	case errors.Is(err, errs.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"message": "contact not found"})
	default:
		a.logger.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "internal error"})
	}
}
