package transfer

import "VoiceTransfer/pkg/response"

var (
	ErrEmptyCommand        = response.NewError(400, "empty command")
	ErrInvalidContentType  = response.NewError(400, "invalid content type")
	ErrRateLimited         = response.NewError(429, "rate limit exceeded")
	ErrUpstreamUnavailable = response.NewError(503, "language service unreachable")
	ErrParseFailure        = response.NewError(500, "failed to parse interpreter response")
	ErrFieldValidation     = response.NewError(400, "extracted field failed validation")
	ErrFieldNotFound       = response.NewError(404, "field not recognized")
	ErrProcessingFailed    = response.NewError(500, "failed to process voice command")
	ErrSessionNotFound     = response.NewError(404, "session not found")
	ErrAudioNotFound       = response.NewError(404, "audio not found")
	ErrInvalidSubmission   = response.NewError(400, "invalid transfer data")
	ErrLargeTransfer       = response.NewError(403, "large transfers require manual approval")
)
