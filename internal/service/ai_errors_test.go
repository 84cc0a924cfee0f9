package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/pkg/llm"
)

func TestClassifyModelError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   string
		wantStatus int
	}{
		{
			name:       "429 status code",
			err:        &llm.APIError{StatusCode: 429, Status: "RESOURCE_EXHAUSTED", Message: "quota exceeded"},
			wantCode:   apperrors.CodeRateLimited,
			wantStatus: 429,
		},
		{
			name:       "resource exhausted without status code",
			err:        errors.New("rpc failed: RESOURCE_EXHAUSTED"),
			wantCode:   apperrors.CodeRateLimited,
			wantStatus: 429,
		},
		{
			name:       "quota keyword",
			err:        errors.New("Quota exceeded for model"),
			wantCode:   apperrors.CodeRateLimited,
			wantStatus: 429,
		},
		{
			name:       "503 status code",
			err:        &llm.APIError{StatusCode: 503, Status: "UNAVAILABLE", Message: "try later"},
			wantCode:   apperrors.CodeServiceUnavailable,
			wantStatus: 503,
		},
		{
			name:       "model overloaded text",
			err:        errors.New("the model is overloaded"),
			wantCode:   apperrors.CodeServiceUnavailable,
			wantStatus: 503,
		},
		{
			name:       "400 invalid argument",
			err:        &llm.APIError{StatusCode: 400, Status: "INVALID_ARGUMENT", Message: "bad payload"},
			wantCode:   apperrors.CodeBadRequest,
			wantStatus: 400,
		},
		{
			name:       "safety rejection",
			err:        &llm.APIError{StatusCode: 200, Status: "SAFETY", Message: "blocked"},
			wantCode:   apperrors.CodeBadRequest,
			wantStatus: 400,
		},
		{
			name:       "401 unauthorized",
			err:        &llm.APIError{StatusCode: 401, Message: "unauthorized"},
			wantCode:   apperrors.CodeAuth,
			wantStatus: 403,
		},
		{
			name:       "403 permission denied",
			err:        &llm.APIError{StatusCode: 403, Status: "PERMISSION_DENIED", Message: "nope"},
			wantCode:   apperrors.CodeAuth,
			wantStatus: 403,
		},
		{
			name:       "invalid api key text",
			err:        errors.New("API key not valid"),
			wantCode:   apperrors.CodeAuth,
			wantStatus: 403,
		},
		{
			name:       "anything else",
			err:        errors.New("connection reset by peer"),
			wantCode:   apperrors.CodeInternal,
			wantStatus: 500,
		},
		{
			name: "rate limit beats auth when both match",
			err:  &llm.APIError{StatusCode: 429, Message: "quota exceeded for this API key"},
			// rate-limit is checked first in the fixed priority order
			wantCode:   apperrors.CodeRateLimited,
			wantStatus: 429,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			appErr := classifyModelError(tt.err)

			assert.Equal(t, tt.wantCode, appErr.Code)
			assert.Equal(t, tt.wantStatus, appErr.Status)
			assert.NotEmpty(t, appErr.Message)
			assert.NotContains(t, appErr.Message, tt.err.Error(), "raw upstream text must not be the client message")
		})
	}
}

func TestRetriable(t *testing.T) {
	assert.True(t, retriable(classifyModelError(&llm.APIError{StatusCode: 429})))
	assert.True(t, retriable(classifyModelError(&llm.APIError{StatusCode: 503})))
	assert.True(t, retriable(classifyModelError(errors.New("boom"))))
	assert.False(t, retriable(classifyModelError(&llm.APIError{StatusCode: 400})))
	assert.False(t, retriable(classifyModelError(&llm.APIError{StatusCode: 403})))
}
