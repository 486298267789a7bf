package server

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/planora/inquiry-backend/internal/ai"
	"github.com/planora/inquiry-backend/internal/handler"
	"github.com/planora/inquiry-backend/internal/profile"
	"github.com/planora/inquiry-backend/internal/repository"
	"github.com/planora/inquiry-backend/internal/service"
	"github.com/planora/inquiry-backend/internal/storage"
	"gorm.io/gorm"
)

// Options carries the optional external collaborators. Any of them may be
// empty; the matching feature degrades instead of failing startup.
type Options struct {
	FirebaseProjectID string
	GCSBucket         string
	GeminiAPIKey      string
}

type Server struct {
	e           *echo.Echo
	inquiryRepo repository.InquiryRepository
	sha         string
	build       string
}

func New(db *gorm.DB, opts Options, sha, buildTime string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())
	e.Use(middleware.Logger())
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		AllowOriginFunc:  allowOrigin,
	}))

	inquiryRepo := repository.NewInquiryRepository(db)
	inquirySvc := service.NewInquiryService(inquiryRepo)

	var profiles profile.Resolver = profile.NewStaticResolver(nil)
	if opts.FirebaseProjectID != "" {
		if fr, err := profile.NewFirebaseResolver(context.Background(), opts.FirebaseProjectID); err != nil {
			e.Logger.Warnf("firebase profile resolver unavailable: %v", err)
		} else {
			profiles = fr
		}
	}
	inquiryHandler := handler.NewInquiryHandler(inquirySvc, profiles)

	var attachmentStore *storage.AttachmentStore
	if opts.GCSBucket != "" {
		store, err := storage.NewAttachmentStore(context.Background(), opts.GCSBucket)
		if err != nil {
			e.Logger.Warnf("attachment store unavailable: %v", err)
		} else {
			attachmentStore = store
		}
	}
	attachmentHandler := handler.NewAttachmentHandler(inquirySvc, attachmentStore)

	var suggestClient *ai.SuggestClient
	if opts.GeminiAPIKey != "" {
		suggestClient = ai.NewSuggestClient()
	}
	suggestHandler := handler.NewSuggestHandler(inquirySvc, suggestClient)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{
			"ok":         "true",
			"git_sha":    sha,
			"build_time": buildTime,
		})
	})

	e.GET("/inquiries/:userId", inquiryHandler.List)
	e.POST("/inquiries", inquiryHandler.Create)
	e.POST("/inquiries/:inquiryId/messages", inquiryHandler.AppendMessage)
	e.GET("/inquiries/:inquiryId/messages", inquiryHandler.ListMessages)
	e.PATCH("/inquiries/:inquiryId/status", inquiryHandler.UpdateStatus)
	e.POST("/inquiries/:inquiryId/attachments", attachmentHandler.Upload)
	e.POST("/inquiries/:inquiryId/suggest-reply", suggestHandler.SuggestReply)

	return &Server{e: e, inquiryRepo: inquiryRepo, sha: sha, build: buildTime}
}

// allowOrigin admits local development hosts and the deployed frontend.
func allowOrigin(origin string) (bool, error) {
	u, err := url.Parse(strings.ToLower(origin))
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return false, nil
	}
	host := u.Hostname()
	if host == "localhost" || host == "127.0.0.1" {
		return true, nil
	}
	return strings.HasSuffix(host, "vercel.app"), nil
}

func (s *Server) Start(addr string) error {
	return s.e.Start(addr)
}

func (s *Server) SetDB(db *gorm.DB) {
	if s.inquiryRepo != nil {
		s.inquiryRepo.SetDB(db)
	}
}
