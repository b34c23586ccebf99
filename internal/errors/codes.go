package errors

// Códigos de erro no formato CATEGORIA_DETALHE.
// O frontend mapeia mensagens a partir destes códigos.

const (
	// ==================== Autenticação (AUTH_) ====================
	AuthUnauthorized       = "AUTH_UNAUTHORIZED"        // login necessário
	AuthInvalidCredentials = "AUTH_INVALID_CREDENTIALS" // e-mail/senha incorretos
	AuthTokenExpired       = "AUTH_TOKEN_EXPIRED"       // token expirado
	AuthTokenInvalid       = "AUTH_TOKEN_INVALID"       // token inválido
	AuthTokenRevoked       = "AUTH_TOKEN_REVOKED"       // token revogado (logout)
	AuthEmailAlreadyExists = "AUTH_EMAIL_EXISTS"        // e-mail já cadastrado
	AuthOAuthFailed        = "AUTH_OAUTH_FAILED"        // falha no login federado

	// ==================== Autorização (AUTHZ_) ====================
	AuthzForbidden    = "AUTHZ_FORBIDDEN"      // sem permissão de acesso
	AuthzAccessDenied = "AUTHZ_ACCESS_DENIED"  // sem permissão para a operação
	AuthzRoleNotFound = "AUTHZ_ROLE_NOT_FOUND" // papel ausente no token
	AuthzAdminOnly    = "AUTHZ_ADMIN_ONLY"     // somente administradores
	AuthzOwnerOnly    = "AUTHZ_OWNER_ONLY"     // somente o dono do recurso

	// ==================== Validação (VALIDATION_) ====================
	ValidationInvalidInput  = "VALIDATION_INVALID_INPUT"  // entrada inválida
	ValidationInvalidID     = "VALIDATION_INVALID_ID"     // identificador inválido
	ValidationInvalidFormat = "VALIDATION_INVALID_FORMAT" // formato inválido
	ValidationInvalidRange  = "VALIDATION_INVALID_RANGE"  // fora do intervalo
	ValidationRequired      = "VALIDATION_REQUIRED"       // campo obrigatório

	// ==================== Recursos (RESOURCE_) ====================
	ResourceNotFound      = "RESOURCE_NOT_FOUND"      // recurso inexistente
	ResourceAlreadyExists = "RESOURCE_ALREADY_EXISTS" // já existe
	ResourceConflict      = "RESOURCE_CONFLICT"       // conflito

	// ==================== Cadastro de negócios (REGISTRATION_) ====================
	RegistrationNotFound       = "REGISTRATION_NOT_FOUND"        // cadastro inexistente
	RegistrationInvalidForm    = "REGISTRATION_INVALID_FORM"     // formulário com erros
	RegistrationCNPJExists     = "REGISTRATION_CNPJ_EXISTS"      // CNPJ já cadastrado
	RegistrationCheckFailed    = "REGISTRATION_CHECK_FAILED"     // verificação indisponível
	RegistrationLimitReached   = "REGISTRATION_LIMIT_REACHED"    // limite do plano atingido
	RegistrationAlreadyDecided = "REGISTRATION_ALREADY_DECIDED"  // já aprovado ou negado
	RegistrationDocumentTooBig = "REGISTRATION_DOCUMENT_TOO_BIG" // documento acima do limite

	// ==================== Negócios ativos (BUSINESS_) ====================
	BusinessNotFound   = "BUSINESS_NOT_FOUND"   // negócio inexistente
	BusinessInactive   = "BUSINESS_INACTIVE"    // negócio desativado
	BusinessSlugExists = "BUSINESS_SLUG_EXISTS" // slug em uso

	// ==================== Avaliações (REVIEW_) ====================
	ReviewNotFound      = "REVIEW_NOT_FOUND"      // avaliação inexistente
	ReviewInvalidRating = "REVIEW_INVALID_RATING" // nota fora de 1-5
	ReviewInvalidText   = "REVIEW_INVALID_TEXT"   // comentário reprovado
	ReviewImmutable     = "REVIEW_IMMUTABLE"      // avaliações não podem ser editadas

	// ==================== Planos (PLAN_) ====================
	PlanNotFound          = "PLAN_NOT_FOUND"           // plano inexistente
	PlanAlreadySubscribed = "PLAN_ALREADY_SUBSCRIBED"  // já assinante do plano
	PlanSubscriptionError = "PLAN_SUBSCRIPTION_FAILED" // falha na assinatura

	// ==================== Upload (UPLOAD_) ====================
	UploadInvalidFileType = "UPLOAD_INVALID_FILE_TYPE" // tipo de arquivo não permitido
	UploadFileTooLarge    = "UPLOAD_FILE_TOO_LARGE"    // arquivo acima do limite
	UploadTooManyFiles    = "UPLOAD_TOO_MANY_FILES"    // quantidade acima do limite
	UploadFailed          = "UPLOAD_FAILED"            // falha no upload

	// ==================== Erros internos (INTERNAL_) ====================
	InternalServerError   = "INTERNAL_SERVER_ERROR"   // erro do servidor
	InternalDatabaseError = "INTERNAL_DATABASE_ERROR" // erro de banco de dados
	InternalExternalAPI   = "INTERNAL_EXTERNAL_API"   // erro em API externa
	InternalConfigError   = "INTERNAL_CONFIG_ERROR"   // erro de configuração
)
