package config

import (
	transferHandler "VoiceTransfer/internal/api/transfer/handler"
	transferService "VoiceTransfer/internal/api/transfer/service"
	"VoiceTransfer/internal/middleware"
	"VoiceTransfer/pkg/interpreter"
	"VoiceTransfer/pkg/redis"
	"VoiceTransfer/pkg/speech"
	"VoiceTransfer/pkg/utils"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ServerOption func(*Server) error

type Server struct {
	engine      *fiber.App
	log         *logrus.Logger
	middleware  middleware.Middleware
	validator   *validator.Validate
	utils       utils.IUtils
	handlers    []handler
	redisServer redis.IRedis
	interpreter interpreter.IInterpreter
	speaker     speech.ISpeaker
}

type handler interface {
	Start(srv fiber.Router)
}

func NewServer(options ...ServerOption) (*Server, error) {
	server := &Server{}

	for _, option := range options {
		if err := option(server); err != nil {
			return nil, fmt.Errorf("failed to apply option: %w", err)
		}
	}

	if server.engine == nil {
		return nil, fmt.Errorf("fiber app is required")
	}
	if server.log == nil {
		return nil, fmt.Errorf("logger is required")
	}

	return server, nil
}

func WithFiber(fiberApp *fiber.App) ServerOption {
	return func(s *Server) error {
		s.engine = fiberApp
		return nil
	}
}

func WithLogger(logger *logrus.Logger) ServerOption {
	return func(s *Server) error {
		s.log = logger
		return nil
	}
}

func WithValidator(validator *validator.Validate) ServerOption {
	return func(s *Server) error {
		s.validator = validator
		return nil
	}
}

func WithRedisServer(redisServer redis.IRedis) ServerOption {
	return func(s *Server) error {
		s.redisServer = redisServer
		return nil
	}
}

func WithMiddleware() ServerOption {
	return func(s *Server) error {
		if s.log == nil {
			return fmt.Errorf("logger must be initialized before middleware")
		}
		s.middleware = middleware.New(s.log)
		return nil
	}
}

func WithInterpreter() ServerOption {
	return func(s *Server) error {
		client, err := interpreter.New()
		if err != nil {
			if s.log != nil {
				s.log.Errorf("Failed to create interpreter client: %v", err)
			}
			return fmt.Errorf("failed to create interpreter client: %w", err)
		}
		s.interpreter = client
		return nil
	}
}

func WithSpeaker() ServerOption {
	return func(s *Server) error {
		s.speaker = speech.NewSpeaker(speech.NewTTSService())
		return nil
	}
}

func WithUtils() ServerOption {
	return func(s *Server) error {
		s.utils = utils.New()
		return nil
	}
}

func (s *Server) RegisterHandler() {
	// Transfer Domain
	transferServices := transferService.New(s.log, s.interpreter, s.redisServer, s.speaker, s.utils, transferService.DefaultConfig())
	transferHandlers := transferHandler.New(s.log, s.validator, s.middleware, transferServices)

	s.setupHealthCheck()
	s.handlers = append(s.handlers, transferHandlers)
}

func (s *Server) Run() error {
	router := s.engine.Group("/api/v1")
	s.engine.Use(s.middleware.NewRequestIDMiddleware())
	s.engine.Use(middleware.LoggerConfig())

	for _, h := range s.handlers {
		h.Start(router)
	}

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "3000"
	}

	return s.engine.Listen(fmt.Sprintf(":%s", port))
}

func (s *Server) setupHealthCheck() {
	s.engine.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"message": "Server is Healthy!",
		})
	})
}
