package services

import (
	"bytes"
	"strings"

	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"gorm.io/gorm"
)

// csvTimeLayout matches the timestamp format spreadsheets expect.
const csvTimeLayout = "2006-01-02 15:04:05"

var csvHeader = []string{
	"number", "client", "phone", "service", "status",
	"quote", "payment", "notes", "createdAt", "updatedAt",
}

type ExportService struct {
	db *gorm.DB
}

func NewExportService(db *gorm.DB) *ExportService {
	return &ExportService{
		db: db,
	}
}

// CSV exports all transactions, most recently touched first, as UTF-8 CSV
// with a byte-order marker for spreadsheet compatibility.
func (s *ExportService) CSV() ([]byte, error) {
	var transactions []models.Transaction
	err := s.db.Order("updated_at DESC").Find(&transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get transactions")
	}

	return BuildCSV(transactions), nil
}

// BuildCSV renders the fixed-column CSV. Every field is double-quoted;
// embedded quotes are doubled, so commas and newlines inside fields are
// safe.
func BuildCSV(transactions []models.Transaction) []byte {
	var buf bytes.Buffer
	buf.WriteString("\uFEFF")
	writeCSVRow(&buf, csvHeader)

	for _, txn := range transactions {
		writeCSVRow(&buf, []string{
			txn.Number,
			txn.Client,
			txn.Phone,
			txn.Service,
			string(txn.Status),
			txn.Quote,
			txn.Payment,
			txn.Notes,
			txn.CreatedAt.Format(csvTimeLayout),
			txn.UpdatedAt.Format(csvTimeLayout),
		})
	}

	return buf.Bytes()
}

func writeCSVRow(buf *bytes.Buffer, fields []string) {
	for i, field := range fields {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteByte('"')
		buf.WriteString(strings.ReplaceAll(field, `"`, `""`))
		buf.WriteByte('"')
	}
	buf.WriteByte('\n')
}
