package services_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
)

func TestReportDaily(t *testing.T) {
	ts := newTestServices(t)

	reportDay := time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	inDay := reportDay.Add(10 * time.Hour)
	dayBefore := reportDay.AddDate(0, 0, -1).Add(10 * time.Hour)

	// Created on the report day, numeric quote.
	createdToday := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Created Today",
		Phone:   "0551111111",
		Service: "service a",
		Quote:   "1500",
	}, models.TransactionOriginAdmin)
	setTimestamps(t, ts, createdToday.ID, inDay, inDay)

	// Also created on the report day, decimal quote.
	decimalQuote := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Decimal Quote",
		Phone:   "0552222222",
		Service: "service a",
		Quote:   "250.50",
	}, models.TransactionOriginAdmin)
	setTimestamps(t, ts, decimalQuote.ID, inDay, inDay)

	// Created that day with a free-text quote; skipped by the total.
	textQuote := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Text Quote",
		Phone:   "0553333333",
		Service: "service b",
		Quote:   "to be discussed",
	}, models.TransactionOriginAdmin)
	setTimestamps(t, ts, textQuote.ID, inDay, inDay)

	// Created earlier, completed on the report day.
	completed := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Completed Today",
		Phone:   "0554444444",
		Service: "service b",
	}, models.TransactionOriginAdmin)
	_, err := ts.transactions.Update(completed.ID.String(), &models.TransactionUpdateRequest{
		Status: statusPtr(models.TransactionStatusApproved),
	}, "")
	require.NoError(t, err)
	setTimestamps(t, ts, completed.ID, dayBefore, inDay)

	// Untouched on the report day.
	outside := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Outside",
		Phone:   "0555555555",
		Service: "service c",
		Quote:   "9999",
	}, models.TransactionOriginAdmin)
	setTimestamps(t, ts, outside.ID, dayBefore, dayBefore)

	// One rendered message on the report day.
	_, err = ts.messages.Render(createdToday.ID.String(), models.TemplateTypeStatus, "admin")
	require.NoError(t, err)
	require.NoError(t, ts.db.Model(&models.MessageLogEntry{}).
		Where("1 = 1").
		UpdateColumn("created_at", inDay).Error)

	report, err := ts.reports.Daily("2025-06-10")
	require.NoError(t, err)

	assert.Equal(t, "2025-06-10", report.Date)
	assert.EqualValues(t, 3, report.NewCount)
	assert.EqualValues(t, 1, report.UpdatedCount, "only records created before the day count as updated")
	assert.EqualValues(t, 1, report.CompletedCount)
	assert.EqualValues(t, 1, report.MessagesCount)
	assert.Equal(t, "1750.5", report.QuotedTotal.String(), "free-text quotes are skipped, not rejected")
	assert.Len(t, report.Transactions, 4, "transactions touching the day, recency first")
	assert.EqualValues(t, 5, sumHistogram(report.ByStatus), "the histogram covers all transactions")
}

func sumHistogram(byStatus map[models.TransactionStatus]int64) int64 {
	var total int64
	for _, count := range byStatus {
		total += count
	}
	return total
}

func TestReportDailyInvalidDate(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.reports.Daily("10-06-2025")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestReportStats(t *testing.T) {
	ts := newTestServices(t)

	for _, service := range []string{"visa processing", "visa processing", "license renewal"} {
		mustCreate(t, ts, &models.TransactionCreateRequest{
			Client:  "Client",
			Phone:   "0551234567",
			Service: service,
		}, models.TransactionOriginAdmin)
	}

	stats, err := ts.reports.Stats()
	require.NoError(t, err)

	assert.EqualValues(t, 3, stats.Total)
	assert.EqualValues(t, 3, stats.RecentWeek)
	assert.EqualValues(t, 3, stats.ByStatus[models.TransactionStatusNew])
	require.NotEmpty(t, stats.TopServices)
	assert.Equal(t, "visa processing", stats.TopServices[0].Service)
	assert.EqualValues(t, 2, stats.TopServices[0].Count)
}
