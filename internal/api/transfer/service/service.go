package transferService

import (
	"context"
	"os"
	"strconv"
	"time"

	"VoiceTransfer/internal/api/transfer"
	"VoiceTransfer/internal/entity"
	"VoiceTransfer/pkg/interpreter"
	redisPkg "VoiceTransfer/pkg/redis"
	"VoiceTransfer/pkg/retry"
	"VoiceTransfer/pkg/speech"
	"VoiceTransfer/pkg/utils"

	"github.com/sirupsen/logrus"
)

type ITransferService interface {
	ProcessCommand(ctx context.Context, req transfer.ProcessCommandRequest) (*transfer.ProcessResult, error)
	SubmitTransfer(ctx context.Context, data entity.TransferFormData) (*transfer.SubmitTransferResponse, error)
	GetHistory(ctx context.Context, sessionID string) (*transfer.HistoryResponse, error)
	GetAudio(ctx context.Context, audioID string) ([]byte, error)
}

type Config struct {
	Cooldown                time.Duration
	FieldPacing             time.Duration
	TrailingRelease         time.Duration
	RateLimitWindow         time.Duration
	RateLimitMax            int64
	CacheTTL                time.Duration
	MaxConfirmationAttempts int
	ManualApprovalCeiling   float64
}

func DefaultConfig() Config {
	cfg := Config{
		Cooldown:                time.Second,
		FieldPacing:             300 * time.Millisecond,
		TrailingRelease:         500 * time.Millisecond,
		RateLimitWindow:         60 * time.Second,
		RateLimitMax:            10,
		CacheTTL:                300 * time.Second,
		MaxConfirmationAttempts: 3,
		ManualApprovalCeiling:   10000,
	}

	if v, err := strconv.Atoi(os.Getenv("RATE_LIMIT_MAX")); err == nil && v > 0 {
		cfg.RateLimitMax = int64(v)
	}
	if v, err := strconv.ParseFloat(os.Getenv("MANUAL_APPROVAL_CEILING"), 64); err == nil && v > 0 {
		cfg.ManualApprovalCeiling = v
	}

	return cfg
}

type transferService struct {
	log         *logrus.Logger
	interpreter interpreter.IInterpreter
	store       redisPkg.IRedis
	speaker     speech.ISpeaker
	utils       utils.IUtils
	sessions    *sessionRegistry
	retryPolicy retry.Policy
	config      Config
}

func New(
	log *logrus.Logger,
	itp interpreter.IInterpreter,
	store redisPkg.IRedis,
	speaker speech.ISpeaker,
	utilsInstance utils.IUtils,
	config Config,
) ITransferService {
	return &transferService{
		log:         log,
		interpreter: itp,
		store:       store,
		speaker:     speaker,
		utils:       utilsInstance,
		sessions:    newSessionRegistry(),
		retryPolicy: retry.DefaultPolicy(),
		config:      config,
	}
}
