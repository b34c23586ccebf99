package validator

import (
	"regexp"
	"strings"

	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/pkg/util"
)

// Categorias aceitas no cadastro de negócios
var Categories = []string{
	"restaurante",
	"comercio",
	"servicos",
	"artesanato",
	"beleza",
	"educacao",
	"saude",
	"esportes",
	"outros",
}

// hourPattern HH:MM com hora 0-23 e minuto 0-59
var hourPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// RegistrationInput payload do formulário de cadastro.
// ImageCount é a quantidade de arquivos anexados; os bytes em si
// passam pelo normalizador de mídia em etapa posterior.
type RegistrationInput struct {
	Nome         string
	CNPJ         string
	Descricao    string
	Categoria    string
	Endereco     model.Address
	TelefoneFixo string
	Celular      string
	Horario      model.OperatingHours
	ImageCount   int
	Documento    string
}

// Result resultado da validação: mensagem por campo reprovado
type Result struct {
	Errors  map[string]string
	IsValid bool
}

// ValidateRegistration valida todos os campos do formulário e devolve
// uma mensagem por campo reprovado. Todas as regras são verificadas,
// sem curto-circuito. A unicidade do CNPJ é verificada fora daqui (e
// somente quando o dígito verificador passa).
func ValidateRegistration(input RegistrationInput) Result {
	errs := make(map[string]string)

	// 1. Nome
	if len(strings.TrimSpace(input.Nome)) < 5 {
		errs["nome"] = "O nome deve ter pelo menos 5 caracteres"
	}

	// 2. CNPJ (somente dígito verificador; unicidade é etapa assíncrona)
	if strings.TrimSpace(input.CNPJ) == "" {
		errs["cnpj"] = "O CNPJ é obrigatório"
	} else if !util.ValidateCNPJ(input.CNPJ) {
		errs["cnpj"] = "CNPJ inválido"
	}

	// 3. Descrição: pelo menos 2 palavras
	if countTokens(input.Descricao) < 2 {
		errs["descricao"] = "A descrição deve ter pelo menos 2 palavras"
	}

	// 4. Categoria: valor do conjunto fixo
	if !isValidCategory(input.Categoria) {
		errs["categoria"] = "Selecione uma categoria válida"
	}

	// 5. Endereço: campos estruturados obrigatórios (complemento é opcional)
	if strings.TrimSpace(input.Endereco.Rua) == "" ||
		strings.TrimSpace(input.Endereco.Numero) == "" ||
		strings.TrimSpace(input.Endereco.Bairro) == "" ||
		strings.TrimSpace(input.Endereco.Cidade) == "" ||
		strings.TrimSpace(input.Endereco.Estado) == "" {
		errs["endereco"] = "Preencha o endereço completo"
	}

	// 6. Telefone fixo: exatamente 10 dígitos
	if !util.IsValidLandline(input.TelefoneFixo) {
		errs["telefone"] = "Informe um telefone fixo válido com DDD"
	}

	// 7. Celular: opcional, mas se presente deve ter 11 dígitos
	if strings.TrimSpace(input.Celular) != "" && !util.IsValidMobile(input.Celular) {
		errs["celular"] = "Informe um celular válido com DDD"
	}

	// 8. Horários de funcionamento
	validateHours(input.Horario, errs)

	// 9. Imagens: pelo menos uma
	if input.ImageCount < 1 {
		errs["imagens"] = "Envie pelo menos uma imagem do negócio"
	}

	// 10. Comprovante de conformidade
	if !isValidDocument(input.Documento) {
		errs["documento"] = "Anexe o comprovante de regularidade fiscal"
	}

	return Result{
		Errors:  errs,
		IsValid: len(errs) == 0,
	}
}

func countTokens(s string) int {
	return len(strings.Fields(s))
}

func isValidCategory(categoria string) bool {
	for _, c := range Categories {
		if categoria == c {
			return true
		}
	}
	return false
}

// isValidDocument exige um nome de arquivo real, não um placeholder
func isValidDocument(doc string) bool {
	doc = strings.TrimSpace(doc)
	if doc == "" {
		return false
	}
	lower := strings.ToLower(doc)
	if lower == "nenhum arquivo selecionado" || lower == "undefined" || lower == "null" {
		return false
	}
	return strings.Contains(doc, ".")
}

// validateHours valida cada grupo de dias e o intervalo de almoço.
// Grupo nulo significa fechado; pelo menos um grupo precisa estar
// aberto.
func validateHours(h model.OperatingHours, errs map[string]string) {
	if h.Semana == nil && h.Sabado == nil && h.Domingo == nil {
		errs["horario"] = "Informe o horário de funcionamento de pelo menos um dia"
		return
	}

	weekOK := false
	if h.Semana != nil {
		weekOK = validateWindow(*h.Semana, "horario_semana", errs)
	}
	if h.Sabado != nil {
		validateWindow(*h.Sabado, "horario_sabado", errs)
	}
	if h.Domingo != nil {
		validateWindow(*h.Domingo, "horario_domingo", errs)
	}

	if h.Almoco != nil {
		if h.Semana == nil {
			errs["almoco"] = "O intervalo de almoço só se aplica ao horário da semana"
			return
		}
		if !validateWindow(*h.Almoco, "almoco", errs) {
			return
		}
		// o intervalo precisa caber dentro do horário da semana
		if weekOK {
			almocoStart := minuteOfDay(h.Almoco.Abre)
			almocoEnd := minuteOfDay(h.Almoco.Fecha)
			weekStart := minuteOfDay(h.Semana.Abre)
			weekEnd := minuteOfDay(h.Semana.Fecha)
			if almocoStart < weekStart || almocoEnd > weekEnd {
				errs["almoco"] = "O intervalo de almoço deve estar dentro do horário de funcionamento"
			}
		}
	}
}

// validateWindow valida formato HH:MM e fechamento após abertura
func validateWindow(w model.TimeWindow, field string, errs map[string]string) bool {
	if !hourPattern.MatchString(w.Abre) || !hourPattern.MatchString(w.Fecha) {
		errs[field] = "Informe horários no formato HH:MM"
		return false
	}
	if minuteOfDay(w.Fecha) <= minuteOfDay(w.Abre) {
		errs[field] = "O horário de fechamento deve ser depois do de abertura"
		return false
	}
	return true
}

func minuteOfDay(hhmm string) int {
	parts := strings.SplitN(hhmm, ":", 2)
	hours := 0
	minutes := 0
	for _, c := range parts[0] {
		hours = hours*10 + int(c-'0')
	}
	for _, c := range parts[1] {
		minutes = minutes*10 + int(c-'0')
	}
	return hours*60 + minutes
}
