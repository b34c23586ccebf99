package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo código + mensagem prontos para resposta
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError converte erros de banco/infra em mensagens amigáveis,
// sem vazar detalhes internos. context identifica a operação em curso.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "Ocorreu um erro no servidor",
		}
	}

	errStr := err.Error()
	errStrLower := strings.ToLower(errStr)

	// 1. Erros básicos do GORM
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: getNotFoundMessage(context),
		}
	}

	// 2. Erros do PostgreSQL

	// 2-1. Unique constraint violation (23505)
	if strings.Contains(errStrLower, "duplicate key") || strings.Contains(errStrLower, "unique constraint") {
		return parseDuplicateKeyError(errStr)
	}

	// 2-2. Foreign key constraint violation (23503)
	if strings.Contains(errStrLower, "foreign key constraint") {
		return parseForeignKeyError(errStr, context)
	}

	// 2-3. Not null constraint violation (23502)
	if strings.Contains(errStrLower, "null value") && strings.Contains(errStrLower, "violates not-null constraint") {
		return parseNotNullError(errStr)
	}

	// 2-4. Check constraint violation (23514)
	if strings.Contains(errStrLower, "check constraint") {
		return parseCheckConstraintError(errStr)
	}

	// 3. Erros de rede/conexão
	if strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") {
		return ErrorInfo{
			Code:    InternalExternalAPI,
			Message: "Falha na conexão com um serviço externo. Tente novamente em instantes",
		}
	}

	// 4. Erro interno genérico
	return ErrorInfo{
		Code:    InternalServerError,
		Message: getDefaultErrorMessage(context),
	}
}

func parseDuplicateKeyError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "cnpj") {
		return ErrorInfo{
			Code:    RegistrationCNPJExists,
			Message: "Este CNPJ já está cadastrado",
		}
	}

	if strings.Contains(errLower, "slug") {
		return ErrorInfo{
			Code:    BusinessSlugExists,
			Message: "Este identificador de negócio já está em uso",
		}
	}

	if strings.Contains(errLower, "email") {
		return ErrorInfo{
			Code:    AuthEmailAlreadyExists,
			Message: "Este e-mail já está em uso",
		}
	}

	if strings.Contains(errLower, "pkey") || strings.Contains(errLower, "primary key") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "Registro já existente. Tente novamente",
		}
	}

	return ErrorInfo{
		Code:    ResourceAlreadyExists,
		Message: "Registro já existente",
	}
}

func parseForeignKeyError(errStr string, context string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "still referenced") || strings.Contains(errLower, "is still referenced by") {
		if strings.Contains(context, "business") || strings.Contains(context, "negocio") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Não é possível excluir: há dados vinculados a este negócio",
			}
		}
		if strings.Contains(context, "user") || strings.Contains(context, "usuario") {
			return ErrorInfo{
				Code:    ResourceConflict,
				Message: "Não é possível excluir: há dados vinculados a este usuário",
			}
		}
		return ErrorInfo{
			Code:    ResourceConflict,
			Message: "Não é possível excluir: há dados vinculados",
		}
	}

	if strings.Contains(errLower, "owner_id") || strings.Contains(errLower, "user_id") || strings.Contains(errLower, "fk_users") {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: "Usuário inexistente",
		}
	}
	if strings.Contains(errLower, "business_id") || strings.Contains(errLower, "fk_businesses") {
		return ErrorInfo{
			Code:    BusinessNotFound,
			Message: "Negócio inexistente",
		}
	}
	if strings.Contains(errLower, "plan_id") || strings.Contains(errLower, "fk_subscription_plans") {
		return ErrorInfo{
			Code:    PlanNotFound,
			Message: "Plano inexistente",
		}
	}

	return ErrorInfo{
		Code:    ResourceNotFound,
		Message: "Registro referenciado não encontrado",
	}
}

func parseNotNullError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "email") {
		return ErrorInfo{Code: ValidationRequired, Message: "O e-mail é obrigatório"}
	}
	if strings.Contains(errLower, "password") {
		return ErrorInfo{Code: ValidationRequired, Message: "A senha é obrigatória"}
	}
	if strings.Contains(errLower, "cnpj") {
		return ErrorInfo{Code: ValidationRequired, Message: "O CNPJ é obrigatório"}
	}
	if strings.Contains(errLower, "name") || strings.Contains(errLower, "nome") {
		return ErrorInfo{Code: ValidationRequired, Message: "O nome é obrigatório"}
	}

	return ErrorInfo{
		Code:    ValidationRequired,
		Message: "Há campos obrigatórios não preenchidos",
	}
}

func parseCheckConstraintError(errStr string) ErrorInfo {
	errLower := strings.ToLower(errStr)

	if strings.Contains(errLower, "rating") {
		return ErrorInfo{
			Code:    ReviewInvalidRating,
			Message: "A nota deve estar entre 1 e 5",
		}
	}

	return ErrorInfo{
		Code:    ValidationInvalidInput,
		Message: "Os dados informados não são válidos",
	}
}

func getNotFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "registration") || strings.Contains(contextLower, "cadastro") {
		return "Cadastro não encontrado"
	}
	if strings.Contains(contextLower, "business") || strings.Contains(contextLower, "negocio") {
		return "Negócio não encontrado"
	}
	if strings.Contains(contextLower, "user") || strings.Contains(contextLower, "usuario") {
		return "Usuário não encontrado"
	}
	if strings.Contains(contextLower, "review") || strings.Contains(contextLower, "avaliacao") {
		return "Avaliação não encontrada"
	}
	if strings.Contains(contextLower, "plan") || strings.Contains(contextLower, "plano") {
		return "Plano não encontrado"
	}

	return "Registro não encontrado"
}

// ParseAndRespond interpreta o erro e responde na mesma chamada
func ParseAndRespond(c interface{ JSON(int, interface{}) }, statusCode int, err error, context string) {
	errorInfo := ParseError(err, context)
	c.JSON(statusCode, ErrorResponse{
		Error:   errorInfo.Code,
		Message: errorInfo.Message,
	})
}

func getDefaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "cadastro") || strings.Contains(contextLower, "submit") {
		return "Erro ao salvar o cadastro. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "update") || strings.Contains(contextLower, "atualiza") {
		return "Erro ao atualizar. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "exclu") {
		return "Erro ao excluir. Tente novamente em instantes"
	}
	if strings.Contains(contextLower, "approve") || strings.Contains(contextLower, "aprova") {
		return "Erro ao aprovar o cadastro. Tente novamente em instantes"
	}

	return "Ocorreu um erro no servidor. Tente novamente em instantes"
}
