package util

import "errors"

var (
	ErrCandidateNotFound  = errors.New("candidato não encontrado")
	ErrAssessmentNotFound = errors.New("avaliação não encontrada")
	ErrSubjectNotFound    = errors.New("matéria não encontrada")
	ErrInvalidSubmission  = errors.New("submissão inválida")
	ErrInvalidCredentials = errors.New("email ou senha incorretos")
	ErrInactiveUser       = errors.New("usuário inativo")
	ErrBrandingNotFound   = errors.New("configuração de branding não encontrada")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrFeatureDisabled    = errors.New("feature disabled for this client")
)
