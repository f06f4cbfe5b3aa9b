package services

import (
	"bytes"
	"context"
	"embed"
	"encoding/csv"
	"fmt"
	"html/template"
	"strconv"
	"time"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
)

//go:embed templates/*.html
var reportTemplates embed.FS

var reportFuncs = template.FuncMap{
	"money": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
	"date":  func(t *time.Time) string { return t.Format("2006-01-02 15:04") },
}

type ReportService struct {
	contractRepo repository.ContractRepository
	now          func() time.Time
}

func NewReportService(contractRepo repository.ContractRepository) *ReportService {
	return &ReportService{contractRepo: contractRepo, now: time.Now}
}

type statementData struct {
	Title       string
	GeneratedAt string
	Contract    models.ContractResponse
	Outstanding float64
}

// RenderContractStatement renders the HTML statement of a contract
func (s *ReportService) RenderContractStatement(ctx context.Context, contractID uint) ([]byte, error) {
	contract, err := s.contractRepo.FindByIDWithDetails(ctx, contractID)
	if err != nil {
		return nil, notFound(err, "contract", contractID)
	}

	resp := contract.ToResponse()
	title := fmt.Sprintf("Contract #%d", contract.ID)
	if resp.Category != "" {
		title = fmt.Sprintf("%s: %s", title, resp.Category)
	}
	data := statementData{
		Title:       title,
		GeneratedAt: s.now().Format("2006-01-02 15:04"),
		Contract:    resp,
		Outstanding: totalOf(contract.Charges) - contract.PaidTotal(),
	}
	return renderTemplate("contract_statement.html", data)
}

// ContractStatementPDF renders the statement and converts it with wkhtmltopdf
func (s *ReportService) ContractStatementPDF(ctx context.Context, contractID uint) (*bytes.Buffer, error) {
	html, err := s.RenderContractStatement(ctx, contractID)
	if err != nil {
		return nil, err
	}
	return generatePDF(html)
}

// ContractChargesCSV lists the charges of a contract
func (s *ReportService) ContractChargesCSV(ctx context.Context, contractID uint) (*bytes.Buffer, error) {
	contract, err := s.contractRepo.FindByIDWithDetails(ctx, contractID)
	if err != nil {
		return nil, notFound(err, "contract", contractID)
	}

	b := &bytes.Buffer{}
	w := csv.NewWriter(b)

	header := []string{"Installment", "Charge Date", "Amount", "Currency", "Status", "Paid At"}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	currency := ""
	if contract.Expense != nil {
		currency = contract.Expense.Currency
	}
	for _, ch := range contract.Charges {
		paidAt := ""
		if ch.PaidAt != nil {
			paidAt = ch.PaidAt.Format(time.RFC3339)
		}
		record := []string{
			strconv.Itoa(ch.InstallmentNumber()),
			models.FormatDate(ch.ChargeDate),
			strconv.FormatFloat(ch.Amount, 'f', 2, 64),
			currency,
			ch.Status,
			paidAt,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return b, nil
}

func renderTemplate(name string, data interface{}) ([]byte, error) {
	tmpl, err := template.New(name).Funcs(reportFuncs).ParseFS(reportTemplates, "templates/"+name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute template: %w", err)
	}
	return buf.Bytes(), nil
}

// generatePDF converts rendered HTML to PDF
func generatePDF(html []byte) (*bytes.Buffer, error) {
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("failed to create pdf generator: %w", err)
	}

	pdfg.Dpi.Set(300)
	pdfg.Orientation.Set(wkhtmltopdf.OrientationPortrait)
	pdfg.Grayscale.Set(false)

	page := wkhtmltopdf.NewPageReader(bytes.NewReader(html))
	pdfg.AddPage(page)

	if err := pdfg.Create(); err != nil {
		return nil, fmt.Errorf("failed to create pdf: %w", err)
	}

	return pdfg.Buffer(), nil
}

func totalOf(charges []models.Charge) float64 {
	var total float64
	for _, ch := range charges {
		total += ch.Amount
	}
	return total
}
