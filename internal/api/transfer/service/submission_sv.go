package transferService

import (
	"context"
	"strconv"
	"time"

	"VoiceTransfer/internal/api/transfer"
	"VoiceTransfer/internal/entity"
	contextPkg "VoiceTransfer/pkg/context"
	"VoiceTransfer/pkg/log"
	"VoiceTransfer/pkg/validation"
)

func (s *transferService) SubmitTransfer(ctx context.Context, data entity.TransferFormData) (*transfer.SubmitTransferResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	sessionID := contextPkg.GetSessionID(ctx)

	result := validation.ValidateTransferRequest(data)
	if !result.IsValid {
		log.Audit("transfer_rejected", log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"errors":     result.Errors,
		})
		return nil, transfer.ErrInvalidSubmission
	}

	sanitized := result.Sanitized
	amount, _ := strconv.ParseFloat(sanitized.Amount, 64)
	if amount > s.config.ManualApprovalCeiling {
		log.Audit("large_transfer_attempt", log.Fields{
			"request_id": requestID,
			"session_id": sessionID,
			"amount":     sanitized.Amount,
			"currency":   sanitized.Currency,
		})
		return nil, transfer.ErrLargeTransfer
	}

	reference := s.utils.NewTransferReference(time.Now())

	log.Audit("transfer_created", log.Fields{
		"request_id": requestID,
		"session_id": sessionID,
		"reference":  reference,
		"amount":     sanitized.Amount,
		"currency":   sanitized.Currency,
		"bank":       sanitized.BankName,
	})

	return &transfer.SubmitTransferResponse{
		Success:   true,
		Reference: reference,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}, nil
}
