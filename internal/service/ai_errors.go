package service

import (
	"errors"
	"strings"

	"ai-storevision-be/internal/pkg/apperrors"
	"ai-storevision-be/pkg/llm"
)

// Canned user-facing messages, one per failure class. Raw upstream error
// text never leaves the server.
const (
	msgRateLimited        = "Limite de requisições de IA atingido. Aguarde alguns instantes e tente novamente."
	msgUnavailable        = "O serviço de IA está temporariamente indisponível. Tente novamente em instantes."
	msgBadRequest         = "A solicitação foi rejeitada pelo serviço de IA. Verifique o conteúdo enviado."
	msgAuth               = "Falha de autenticação com o serviço de IA. Verifique as credenciais configuradas."
	msgInternal           = "Erro interno ao consultar o serviço de IA."
	msgAnalysisFallback   = "A análise foi concluída, mas o resultado não pôde ser estruturado."
	msgImageNotSupported  = "O provedor de IA configurado não gera imagens."
	msgEmptyImageResponse = "O serviço de IA não retornou nenhuma imagem."
)

// classifyModelError maps an upstream failure to exactly one taxonomy
// class, checked in fixed priority order: rate limit, unavailability,
// bad request / safety, auth, then the internal catch-all.
func classifyModelError(err error) *apperrors.AppError {
	status := 0
	detail := err.Error()

	var apiErr *llm.APIError
	if errors.As(err, &apiErr) {
		status = apiErr.StatusCode
		detail = apiErr.Status + " " + apiErr.Message
	}
	upper := strings.ToUpper(detail)

	switch {
	case status == 429 ||
		strings.Contains(upper, "RESOURCE_EXHAUSTED") ||
		strings.Contains(upper, "QUOTA"):
		return apperrors.New(apperrors.CodeRateLimited, 429, msgRateLimited, err)

	case status == 503 ||
		strings.Contains(upper, "UNAVAILABLE") ||
		strings.Contains(upper, "OVERLOADED"):
		return apperrors.New(apperrors.CodeServiceUnavailable, 503, msgUnavailable, err)

	case status == 400 ||
		strings.Contains(upper, "INVALID_ARGUMENT") ||
		strings.Contains(upper, "SAFETY"):
		return apperrors.New(apperrors.CodeBadRequest, 400, msgBadRequest, err)

	case status == 401 || status == 403 ||
		strings.Contains(upper, "PERMISSION_DENIED") ||
		strings.Contains(upper, "API KEY"):
		return apperrors.New(apperrors.CodeAuth, 403, msgAuth, err)

	default:
		return apperrors.New(apperrors.CodeInternal, 500, msgInternal, err)
	}
}

// retriable reports whether trying the secondary model is worthwhile.
// Rejections (safety, auth) would fail identically.
func retriable(appErr *apperrors.AppError) bool {
	switch appErr.Code {
	case apperrors.CodeRateLimited, apperrors.CodeServiceUnavailable, apperrors.CodeInternal:
		return true
	}
	return false
}
