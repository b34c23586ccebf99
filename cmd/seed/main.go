package main

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"

	"github.com/economia-solidaria/backend/config"
	"github.com/economia-solidaria/backend/internal/app/model"
	"github.com/economia-solidaria/backend/internal/app/repository"
	"github.com/economia-solidaria/backend/internal/db"
	"github.com/economia-solidaria/backend/pkg/util"
	"github.com/xuri/excelize/v2"
)

// Importa a base municipal de alvarás para a vitrine, como listagens
// sem dono (managed=false) e inativas até que o responsável reivindique
// o negócio pelo fluxo de cadastro.
//
// Layout esperado da planilha (primeira linha é o cabeçalho):
//
//	0: CNPJ
//	1: Razão social / nome fantasia
//	2: Atividade (descrição)
//	3: Categoria
//	4: Logradouro
//	5: Número
//	6: Bairro
//	7: Cidade
//	8: UF
//	9: Telefone fixo
func main() {
	if len(os.Args) < 2 {
		log.Fatal("Usage: go run cmd/seed/main.go <xlsx_file_path>")
	}

	filePath := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	businessRepo := repository.NewBusinessRepository(db.GetDB())

	fmt.Printf("Reading XLSX file: %s\n", filePath)
	businesses, err := readBusinessesFromXLSX(filePath)
	if err != nil {
		log.Fatal("Failed to read XLSX:", err)
	}

	fmt.Printf("Total businesses to import: %d\n", len(businesses))

	fmt.Print("Do you want to proceed with the import? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Import cancelled.")
		return
	}

	batchSize := 500
	fmt.Printf("Starting bulk import with batch size: %d\n", batchSize)
	if err := businessRepo.CreateInBatches(businesses, batchSize); err != nil {
		log.Fatal("Failed to bulk create businesses:", err)
	}

	fmt.Println("Import completed successfully!")
	fmt.Printf("Total businesses imported: %d\n", len(businesses))
}

func readBusinessesFromXLSX(filePath string) ([]model.Business, error) {
	f, err := excelize.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XLSX file: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return nil, fmt.Errorf("no sheets found in XLSX file")
	}

	fmt.Printf("Reading sheet: %s\n", sheetName)

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to read rows: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("no data found in XLSX file")
	}

	var businesses []model.Business
	seenCNPJ := make(map[string]bool)
	skippedCount := 0
	invalidCNPJCount := 0

	for i, row := range rows {
		if i == 0 {
			fmt.Printf("Headers: %v\n", row)
			continue
		}

		if len(row) < 9 {
			skippedCount++
			continue
		}

		cnpj := util.NormalizeTaxID(strings.TrimSpace(row[0]))
		name := strings.TrimSpace(row[1])
		description := strings.TrimSpace(row[2])
		category := strings.TrimSpace(strings.ToLower(row[3]))
		rua := strings.TrimSpace(row[4])
		numero := strings.TrimSpace(row[5])
		bairro := strings.TrimSpace(row[6])
		cidade := strings.TrimSpace(row[7])
		estado := strings.ToUpper(strings.TrimSpace(row[8]))

		landline := ""
		if len(row) > 9 {
			landline = util.DigitsOnly(row[9])
		}

		// campos mínimos para uma listagem útil
		if name == "" || cidade == "" || estado == "" {
			skippedCount++
			continue
		}

		// nome precisa parecer um nome de negócio de verdade
		if !isValidBusinessName(name) {
			skippedCount++
			continue
		}

		// CNPJ com dígito verificador válido é obrigatório
		if !util.ValidateCNPJ(cnpj) {
			invalidCNPJCount++
			skippedCount++
			continue
		}

		// a base municipal tem linhas repetidas por renovação de alvará
		if seenCNPJ[cnpj] {
			skippedCount++
			continue
		}
		seenCNPJ[cnpj] = true

		if category == "" {
			category = "outros"
		}

		businesses = append(businesses, model.Business{
			Name:        name,
			CNPJ:        cnpj,
			Description: description,
			Category:    category,
			Address: model.Address{
				Rua:    rua,
				Numero: numero,
				Bairro: bairro,
				Cidade: cidade,
				Estado: estado,
			},
			Landline: landline,
			OwnerID:  nil, // sem dono até ser reivindicado
			Managed:  false,
			Status:   model.BusinessStatusInactive,
		})

		if len(businesses)%1000 == 0 {
			fmt.Printf("Processed %d businesses...\n", len(businesses))
		}
	}

	fmt.Printf("\nSummary:\n")
	fmt.Printf("  Total rows: %d\n", len(rows)-1)
	fmt.Printf("  Valid businesses: %d\n", len(businesses))
	fmt.Printf("  Skipped rows: %d\n", skippedCount)
	fmt.Printf("  Rows with invalid CNPJ: %d\n", invalidCNPJCount)

	return businesses, nil
}

// isValidBusinessName descarta linhas de baixa qualidade da base municipal
func isValidBusinessName(name string) bool {
	nameRunes := []rune(name)
	if len(nameRunes) < 3 {
		return false
	}

	// somente números não é nome
	numOnlyReg := regexp.MustCompile(`^[0-9]+$`)
	if numOnlyReg.MatchString(name) {
		return false
	}

	// somente pontuação/símbolos também não
	specialOnlyReg := regexp.MustCompile(`^[\p{P}\p{S}\s]+$`)
	if specialOnlyReg.MatchString(name) {
		return false
	}

	return true
}
