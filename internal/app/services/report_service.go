package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/pkg"
	"gorm.io/gorm"
)

const dailyReportTxnLimit = 20

type ReportService struct {
	db *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{
		db: db,
	}
}

type statusCount struct {
	Status models.TransactionStatus
	Count  int64
}

func (s *ReportService) statusHistogram() (map[models.TransactionStatus]int64, error) {
	var rows []statusCount
	err := s.db.Model(&models.Transaction{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count transactions by status")
	}

	histogram := make(map[models.TransactionStatus]int64, len(rows))
	for _, row := range rows {
		histogram[row.Status] = row.Count
	}
	return histogram, nil
}

// Stats is the all-time dashboard summary.
func (s *ReportService) Stats() (*models.Stats, error) {
	stats := &models.Stats{}

	if err := s.db.Model(&models.Transaction{}).Count(&stats.Total).Error; err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count transactions")
	}

	weekAgo := time.Now().AddDate(0, 0, -7)
	err := s.db.Model(&models.Transaction{}).
		Where("created_at >= ?", weekAgo).
		Count(&stats.RecentWeek).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count recent transactions")
	}

	byStatus, err := s.statusHistogram()
	if err != nil {
		return nil, err
	}
	stats.ByStatus = byStatus

	err = s.db.Model(&models.Transaction{}).
		Select("service, COUNT(*) as count").
		Group("service").
		Order("count DESC").
		Limit(5).
		Scan(&stats.TopServices).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count services")
	}

	return stats, nil
}

// Daily builds the report for one calendar day: creation/update/completion
// counts for that day, the message count, a status histogram over ALL
// transactions, the day's quoted total, and up to 20 transactions touching
// that day ordered by recency.
func (s *ReportService) Daily(dateStr string) (*models.DailyReport, error) {
	day, start, end, err := pkg.ParseReportDate(dateStr)
	if err != nil {
		return nil, errors.NewBadRequestError("Invalid date, expected YYYY-MM-DD")
	}

	report := &models.DailyReport{Date: day, QuotedTotal: decimal.Zero}

	err = s.db.Model(&models.Transaction{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&report.NewCount).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count created transactions")
	}

	err = s.db.Model(&models.Transaction{}).
		Where("updated_at >= ? AND updated_at < ?", start, end).
		Where("created_at < ?", start).
		Count(&report.UpdatedCount).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count updated transactions")
	}

	err = s.db.Model(&models.Transaction{}).
		Where("updated_at >= ? AND updated_at < ?", start, end).
		Where("status IN ?", models.CompletedStatuses).
		Count(&report.CompletedCount).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count completed transactions")
	}

	err = s.db.Model(&models.MessageLogEntry{}).
		Where("created_at >= ? AND created_at < ?", start, end).
		Count(&report.MessagesCount).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to count messages")
	}

	byStatus, err := s.statusHistogram()
	if err != nil {
		return nil, err
	}
	report.ByStatus = byStatus

	err = s.db.
		Where("(created_at >= ? AND created_at < ?) OR (updated_at >= ? AND updated_at < ?)", start, end, start, end).
		Order("updated_at DESC").
		Limit(dailyReportTxnLimit).
		Find(&report.Transactions).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to get transactions")
	}

	var created []models.Transaction
	err = s.db.Select("quote").
		Where("created_at >= ? AND created_at < ?", start, end).
		Find(&created).Error
	if err != nil {
		return nil, errors.NewInternalServerError(err, "Failed to sum quotes")
	}
	report.QuotedTotal = sumQuotes(created)

	return report, nil
}

// sumQuotes totals the quotes that parse as numbers. Quotes are free text,
// so non-numeric values are skipped rather than rejected.
func sumQuotes(transactions []models.Transaction) decimal.Decimal {
	total := decimal.Zero
	for _, txn := range transactions {
		if txn.Quote == "" {
			continue
		}
		amount, err := decimal.NewFromString(txn.Quote)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return total
}
