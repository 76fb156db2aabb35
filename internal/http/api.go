package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"annonces-api/internal/domain"
	"annonces-api/internal/service"
)

const (
	identityKey      = "identity"
	deleteRequestKey = "deleteRequest"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	users       service.UserService
	postings    service.PostingService
	logger      *logrus.Logger
	basePath    string
	corsOrigins []string
}

// Options holds optional router settings.
type Options struct {
	BasePath    string
	CORSOrigins []string
}

func NewHandler(users service.UserService, postings service.PostingService, logger *logrus.Logger, opts Options) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		users:       users,
		postings:    postings,
		logger:      logger,
		basePath:    strings.TrimRight(opts.BasePath, "/"),
		corsOrigins: opts.CORSOrigins,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(corsMiddleware(h.corsOrigins), requestLogger(h.logger))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"result": true})
	})

	api := router.Group(h.basePath)
	{
		api.GET("/offres/:token", h.withIdentity, h.listOffers)
		api.GET("/demandes/:token", h.withIdentity, h.listRequests)
		api.GET("/mesAnnonces/:token", h.withIdentity, h.listOwn)
		api.POST("/publier/:token", h.withIdentity, h.createPosting)
		api.DELETE("/supprime/:token", h.bindDeleteRequest, h.withIdentity, h.deletePosting)
	}
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	config := cors.DefaultConfig()
	config.AllowMethods = []string{"GET", "POST", "DELETE", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Accept"}
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		config.AllowAllOrigins = true
	} else {
		config.AllowOrigins = origins
	}
	return cors.New(config)
}

func requestLogger(logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		// the route template is logged rather than the path so tokens stay out of logs
		logger.WithFields(logrus.Fields{
			"method":  c.Request.Method,
			"route":   c.FullPath(),
			"status":  c.Writer.Status(),
			"latency": time.Since(start).String(),
		}).Debug("request served")
	}
}

// withIdentity resolves the :token path segment into the caller's identity.
func (h *Handler) withIdentity(c *gin.Context) {
	identity, err := h.users.Resolve(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.fail(c, err)
		c.Abort()
		return
	}
	c.Set(identityKey, identity)
	c.Next()
}

func identityFrom(c *gin.Context) domain.Identity {
	v, _ := c.Get(identityKey)
	identity, _ := v.(domain.Identity)
	return identity
}

// fail writes the error envelope. Every outcome is reported with status 200.
func (h *Handler) fail(c *gin.Context, err error) {
	var storeErr *service.StoreError
	if errors.As(err, &storeErr) {
		h.logger.WithError(storeErr.Err).WithField("route", c.FullPath()).Warn("store failure")
	}
	c.JSON(http.StatusOK, gin.H{"result": false, "error": err.Error()})
}

func (h *Handler) listOffers(c *gin.Context) {
	postings, err := h.postings.ListOffers(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "annonces": publicPostingResponses(postings)})
}

func (h *Handler) listRequests(c *gin.Context) {
	postings, err := h.postings.ListRequests(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "annonces": publicPostingResponses(postings)})
}

func (h *Handler) listOwn(c *gin.Context) {
	postings, err := h.postings.ListOwn(c.Request.Context(), identityFrom(c))
	if err != nil {
		h.fail(c, err)
		return
	}

	resp := make([]PostingRecordResponse, len(postings))
	for i := range postings {
		resp[i] = ownPostingResponse(postings[i])
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "annonces": resp})
}

type createPostingRequest struct {
	Type         string   `json:"type"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	MaxDuration  string   `json:"tempsMax"`
	Experience   string   `json:"experience"`
	Availability string   `json:"disponibilite"`
	City         string   `json:"ville"`
	Sectors      []string `json:"secteurActivite"`
}

func (h *Handler) createPosting(c *gin.Context) {
	var req createPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, err)
		return
	}

	posting, err := h.postings.Create(c.Request.Context(), identityFrom(c), service.CreatePostingInput{
		Type:         domain.PostingType(req.Type),
		Title:        req.Title,
		Description:  req.Description,
		MaxDuration:  req.MaxDuration,
		Experience:   req.Experience,
		Availability: req.Availability,
		City:         req.City,
		Sectors:      req.Sectors,
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "annonce": createdPostingResponse(*posting)})
}

type deletePostingRequest struct {
	PostingID string `json:"annonceId"`
}

// bindDeleteRequest rejects bodies without annonceId before any lookup happens.
func (h *Handler) bindDeleteRequest(c *gin.Context) {
	var req deletePostingRequest
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.PostingID) == "" {
		h.fail(c, service.ErrMissingFields)
		c.Abort()
		return
	}
	c.Set(deleteRequestKey, req)
	c.Next()
}

func (h *Handler) deletePosting(c *gin.Context) {
	v, _ := c.Get(deleteRequestKey)
	req, _ := v.(deletePostingRequest)

	if err := h.postings.Delete(c.Request.Context(), identityFrom(c), req.PostingID); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"result": true, "message": service.DeletedMessage})
}
