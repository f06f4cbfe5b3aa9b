package services

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"github.com/chenmq77/duckiki/internal/models"
	"github.com/chenmq77/duckiki/internal/repository"
	"github.com/chenmq77/duckiki/internal/roi"
	"github.com/chenmq77/duckiki/internal/storage"
)

// SnapshotFile is the published name of the read-only snapshot
const SnapshotFile = "summary.json"

// Snapshot is the consolidated read-only view of the dashboard
type Snapshot struct {
	SnapshotID  string                    `json:"snapshotId"`
	ROI         roi.Snapshot              `json:"roi"`
	Expenses    []models.ExpenseResponse  `json:"expenses"`
	Activities  []models.ActivityResponse `json:"activities"`
	LastUpdated time.Time                 `json:"lastUpdated"`
}

// PublishResult describes a published snapshot
type PublishResult struct {
	FilePath        string    `json:"file_path"`
	ArchivePath     string    `json:"archive_path,omitempty"`
	Timestamp       time.Time `json:"timestamp"`
	ExpensesCount   int       `json:"expenses_count"`
	ActivitiesCount int       `json:"activities_count"`
	ROIPercentage   float64   `json:"roi_percentage"`
}

type ExportService struct {
	repos   *repository.Repositories
	roiSvc  *ROIService
	storage *storage.LocalStorage
	now     func() time.Time
}

func NewExportService(repos *repository.Repositories, roiSvc *ROIService, store *storage.LocalStorage) *ExportService {
	return &ExportService{repos: repos, roiSvc: roiSvc, storage: store, now: time.Now}
}

// Snapshot gathers the ROI summary with every expense and activity
func (s *ExportService) Snapshot(ctx context.Context) (*Snapshot, error) {
	summary, err := s.roiSvc.Summary(ctx)
	if err != nil {
		return nil, err
	}
	expenses, err := s.repos.Expense.FindAllWithDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	activities, err := s.repos.Activity.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load activities: %w", err)
	}

	snap := &Snapshot{
		SnapshotID:  uuid.NewString(),
		ROI:         *summary,
		Expenses:    make([]models.ExpenseResponse, len(expenses)),
		Activities:  make([]models.ActivityResponse, len(activities)),
		LastUpdated: s.now().UTC(),
	}
	for i := range expenses {
		snap.Expenses[i] = expenses[i].ToResponse()
	}
	for i := range activities {
		snap.Activities[i] = activities[i].ToResponse()
	}
	return snap, nil
}

// PublishJSON writes the snapshot to summary.json and keeps a dated copy
func (s *ExportService) PublishJSON(ctx context.Context) (*PublishResult, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	path, err := s.storage.Publish(SnapshotFile, data)
	if err != nil {
		return nil, err
	}
	archive, err := s.storage.Archive(data, SnapshotFile, "archive")
	if err != nil {
		return nil, err
	}

	return &PublishResult{
		FilePath:        "/" + path,
		ArchivePath:     archive,
		Timestamp:       snap.LastUpdated,
		ExpensesCount:   len(snap.Expenses),
		ActivitiesCount: len(snap.Activities),
		ROIPercentage:   snap.ROI.Paid.ROIPercentage,
	}, nil
}

func (s *ExportService) ExportCSV(ctx context.Context) ([]byte, string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	buf := new(bytes.Buffer)
	writer := csv.NewWriter(buf)

	// Header
	_ = writer.Write([]string{"Gym ROI report", snap.LastUpdated.Format("2006-01-02 15:04")})
	_ = writer.Write([]string{""})

	// ROI section
	_ = writer.Write([]string{"ROI", "Paid", "Planned"})
	for _, row := range roiRows(snap.ROI) {
		_ = writer.Write(row)
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Expenses"})
	_ = writer.Write(expenseHeader)
	for _, e := range snap.Expenses {
		_ = writer.Write(expenseRow(e))
	}
	_ = writer.Write([]string{""})

	_ = writer.Write([]string{"Activities"})
	_ = writer.Write(activityHeader)
	for _, a := range snap.Activities {
		_ = writer.Write(activityRow(a))
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("gym_roi_%s.csv", snap.LastUpdated.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func (s *ExportService) ExportXLSX(ctx context.Context) ([]byte, string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "ROI"
	_ = f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Size: 12},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})

	_ = f.SetSheetRow(sheet, "A1", &[]string{"Metric", "Paid", "Planned"})
	_ = f.SetCellStyle(sheet, "A1", "C1", headerStyle)
	for i, row := range roiRows(snap.ROI) {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		_ = f.SetSheetRow(sheet, cell, &row)
	}

	writeTable(f, "Expenses", expenseHeader, len(snap.Expenses), func(i int) []string {
		return expenseRow(snap.Expenses[i])
	}, headerStyle)
	writeTable(f, "Activities", activityHeader, len(snap.Activities), func(i int) []string {
		return activityRow(snap.Activities[i])
	}, headerStyle)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("gym_roi_%s.xlsx", snap.LastUpdated.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func writeTable(f *excelize.File, sheet string, header []string, n int, row func(int) []string, style int) {
	_, _ = f.NewSheet(sheet)
	_ = f.SetSheetRow(sheet, "A1", &header)
	last, _ := excelize.CoordinatesToCellName(len(header), 1)
	_ = f.SetCellStyle(sheet, "A1", last, style)
	for i := 0; i < n; i++ {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		r := row(i)
		_ = f.SetSheetRow(sheet, cell, &r)
	}
}

func (s *ExportService) ExportPDF(ctx context.Context) ([]byte, string, error) {
	snap, err := s.Snapshot(ctx)
	if err != nil {
		return nil, "", err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.Cell(40, 10, "Gym ROI report")
	pdf.Ln(12)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(60, 10, "Metric")
	pdf.Cell(40, 10, "Paid")
	pdf.Cell(40, 10, "Planned")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 10)
	for _, row := range roiRows(snap.ROI) {
		pdf.Cell(60, 8, row[0])
		pdf.Cell(40, 8, row[1])
		pdf.Cell(40, 8, row[2])
		pdf.Ln(6)
	}
	pdf.Ln(6)

	pdf.SetFont("Arial", "B", 12)
	pdf.Cell(40, 10, "Expenses")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	for _, e := range snap.Expenses {
		pdf.Cell(25, 6, e.Date)
		pdf.Cell(30, 6, e.Type)
		pdf.Cell(60, 6, e.Category)
		pdf.Cell(30, 6, fmt.Sprintf("%.2f %s", e.Amount, e.Currency))
		pdf.Ln(5)
	}

	buf := new(bytes.Buffer)
	if err := pdf.Output(buf); err != nil {
		return nil, "", err
	}

	filename := fmt.Sprintf("gym_roi_%s.pdf", snap.LastUpdated.Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

var (
	expenseHeader  = []string{"ID", "Date", "Type", "Category", "Amount", "Currency", "Installment", "Parent", "Note"}
	activityHeader = []string{"ID", "Date", "Type", "Distance", "Class", "Intensity", "Duration", "Weight", "Note"}
)

func roiRows(s roi.Snapshot) [][]string {
	money := func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) }
	return [][]string{
		{"Activities", strconv.Itoa(s.TotalActivities), strconv.Itoa(s.TotalActivities)},
		{"Weighted total", money(s.WeightedTotal), money(s.WeightedTotal)},
		{"Market reference price", money(s.MarketReferencePrice), money(s.MarketReferencePrice)},
		{"Total expense", money(s.Paid.TotalExpense), money(s.Planned.TotalExpense)},
		{"Average cost", money(s.Paid.AverageCost), money(s.Planned.AverageCost)},
		{"Money saved", money(s.Paid.MoneySaved), money(s.Planned.MoneySaved)},
		{"ROI %", money(s.Paid.ROIPercentage), money(s.Planned.ROIPercentage)},
		{"Break-even progress %", money(s.Paid.BreakEvenProgress), money(s.Planned.BreakEvenProgress)},
		{"Remaining to break even", money(s.Paid.RemainingToBreakEven), money(s.Planned.RemainingToBreakEven)},
	}
}

func expenseRow(e models.ExpenseResponse) []string {
	installment := ""
	if e.InstallmentNumber != nil {
		installment = strconv.Itoa(*e.InstallmentNumber)
	} else if e.ContractInfo != nil {
		installment = fmt.Sprintf("%d/%d paid", e.ContractInfo.PaidPeriods, e.ContractInfo.TotalPeriods)
	}
	parent := ""
	if e.ParentCategory != nil {
		parent = *e.ParentCategory
	}
	return []string{
		strconv.FormatUint(uint64(e.ID), 10),
		e.Date,
		e.Type,
		e.Category,
		strconv.FormatFloat(e.Amount, 'f', 2, 64),
		e.Currency,
		installment,
		parent,
		deref(e.Note),
	}
}

func activityRow(a models.ActivityResponse) []string {
	opt := func(p *int) string {
		if p == nil {
			return ""
		}
		return strconv.Itoa(*p)
	}
	return []string{
		strconv.FormatUint(uint64(a.ID), 10),
		a.Date,
		a.Type,
		opt(a.Distance),
		deref(a.ClassName),
		deref(a.Intensity),
		opt(a.DurationMinutes),
		strconv.FormatFloat(a.CalculatedWeight, 'f', 4, 64),
		deref(a.Note),
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
