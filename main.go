package main

import (
	"context"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	chathttp "github.com/embedchat/embedchat/adapters/http"
	"github.com/embedchat/embedchat/adapters/llm"
	"github.com/embedchat/embedchat/config"
	"github.com/embedchat/embedchat/domain"
	"github.com/embedchat/embedchat/usecase"
	"github.com/embedchat/embedchat/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	var completer domain.Completer
	switch cfg.Provider {
	case config.ProviderGemini:
		completer, err = llm.NewGeminiClient(context.Background(), cfg)
		if err != nil {
			log.Fatal(err)
		}
	default:
		completer = llm.NewOpenAIClient(cfg)
	}

	relay := usecase.NewRelay(completer, cfg.MaxTurns)
	handler := chathttp.NewChatHandler(relay, cfg.JWTSecret)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.Secure())
	e.Use(middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(20))) // 20 requests per second per IP

	// The widget can be embedded on any page, so CORS stays open.
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.POST, echo.OPTIONS},
		AllowHeaders: []string{
			echo.HeaderOrigin,
			echo.HeaderContentType,
			echo.HeaderAccept,
			echo.HeaderAuthorization,
		},
	}))

	e.Use(middleware.BodyLimit("1MB"))

	api := e.Group("/api")
	api.GET("/health", handler.HealthCheck)

	if handler.AuthEnabled() {
		api.POST("/auth/token", handler.GenerateToken)
		api.POST("/chat", handler.Chat, handler.JWTMiddleware)
	} else {
		api.POST("/chat", handler.Chat)
	}

	if staticFS := web.StaticFS(); staticFS != nil {
		e.GET("/*", echo.WrapHandler(http.FileServer(http.FS(staticFS))))
	}

	log.Printf("Starting relay on %s (provider: %s, model: %s)", cfg.Addr(), cfg.Provider, cfg.Model)
	log.Println("Available endpoints:")
	log.Println("  GET  /api/health     - Health check")
	log.Println("  POST /api/chat       - Conversation exchange")
	if handler.AuthEnabled() {
		log.Println("  POST /api/auth/token - Widget session token")
	}
	log.Println("  GET  /               - Embedded widget demo page")
	log.Fatal(e.Start(cfg.Addr()))
}
