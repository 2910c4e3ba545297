package services_test

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
)

func strPtr(s string) *string {
	return &s
}

func statusPtr(s models.TransactionStatus) *models.TransactionStatus {
	return &s
}

func mustCreate(t *testing.T, ts *testServices, req *models.TransactionCreateRequest, origin models.TransactionOrigin) *models.Transaction {
	t.Helper()
	txn, err := ts.transactions.Create(req, origin)
	require.NoError(t, err)
	return txn
}

func setTimestamps(t *testing.T, ts *testServices, id uuid.UUID, createdAt, updatedAt time.Time) {
	t.Helper()
	err := ts.db.Model(&models.Transaction{}).
		Where("id = ?", id).
		UpdateColumns(map[string]interface{}{
			"created_at": createdAt,
			"updated_at": updatedAt,
		}).Error
	require.NoError(t, err)
}

func TestTransactionCreateAdmin(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Al-Amal Trading",
		Phone:   "0551234567",
		Service: "commercial registration",
	}, models.TransactionOriginAdmin)

	assert.True(t, strings.HasPrefix(txn.Number, "TXN-"), "number %q should carry the TXN prefix", txn.Number)
	assert.Equal(t, models.TransactionStatusNew, txn.Status)
	assert.Equal(t, models.TransactionOriginAdmin, txn.Origin)
	assert.NotEqual(t, uuid.Nil, txn.ID)

	notifications, err := ts.notifications.List(false)
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	assert.Equal(t, models.NotificationTypeNewTxn, notifications[0].Type)
	assert.Contains(t, notifications[0].Message, txn.Number)
	assert.Contains(t, notifications[0].Message, "Al-Amal Trading")
	assert.False(t, notifications[0].IsRead)
}

func TestTransactionCreateClientRequest(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Fahad",
		Phone:   "0509876543",
		Service: "license renewal",
	}, models.TransactionOriginClient)

	assert.True(t, strings.HasPrefix(txn.Number, "REQ-"), "number %q should carry the REQ prefix", txn.Number)
	assert.Equal(t, models.TransactionStatusAwaitingQuote, txn.Status)
	assert.Equal(t, models.TransactionOriginClient, txn.Origin)
}

func TestTransactionCreateExplicitNumberConflict(t *testing.T) {
	ts := newTestServices(t)

	first := mustCreate(t, ts, &models.TransactionCreateRequest{
		Number:  "TXN-1",
		Client:  "Client A",
		Phone:   "0551111111",
		Service: "service a",
	}, models.TransactionOriginAdmin)
	assert.Equal(t, "TXN-1", first.Number)

	_, err := ts.transactions.Create(&models.TransactionCreateRequest{
		Number:  "TXN-1",
		Client:  "Client B",
		Phone:   "0552222222",
		Service: "service b",
	}, models.TransactionOriginAdmin)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 409, appErr.StatusCode)

	var count int64
	require.NoError(t, ts.db.Model(&models.Transaction{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "the conflicting create must not persist anything")
}

func TestTransactionNumberCollisionRetry(t *testing.T) {
	ts := newTestServices(t)

	// Rapid creates land in the same millisecond and force the
	// collision-retry path for every number after the first.
	seen := map[string]bool{}
	var numbers []string
	for i := 0; i < 5; i++ {
		txn := mustCreate(t, ts, &models.TransactionCreateRequest{
			Client:  "Client",
			Phone:   "0551234567",
			Service: "service",
		}, models.TransactionOriginAdmin)
		assert.False(t, seen[txn.Number], "duplicate number %q", txn.Number)
		seen[txn.Number] = true
		numbers = append(numbers, txn.Number)
	}

	// A retried number must not extend another number's digit run: where
	// one reference starts with another, the remainder has to be a
	// delimited suffix, never more digits.
	for i, a := range numbers {
		for j, b := range numbers {
			if i == j || !strings.HasPrefix(b, a) {
				continue
			}
			rest := b[len(a):]
			assert.True(t, strings.HasPrefix(rest, "-"),
				"number %q is an ambiguous extension of %q", b, a)
		}
	}
}

func TestTransactionCreateValidation(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.transactions.Create(&models.TransactionCreateRequest{
		Client: "missing phone and service",
	}, models.TransactionOriginAdmin)

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestTransactionUpdateAuditsEachChangedField(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Al-Amal Trading",
		Phone:   "0551234567",
		Service: "commercial registration",
	}, models.TransactionOriginAdmin)

	_, err := ts.transactions.Update(txn.ID.String(), &models.TransactionUpdateRequest{
		Status: statusPtr(models.TransactionStatusAwaitingPayment),
		Quote:  strPtr("1500"),
		Client: strPtr("Al-Amal Trading"), // unchanged, must not audit
	}, "sara")
	require.NoError(t, err)

	entries, err := ts.audit.GetByTxn(txn.ID.String())
	require.NoError(t, err)
	require.Len(t, entries, 2)

	fields := map[string]models.AuditLogEntry{}
	for _, entry := range entries {
		require.NotNil(t, entry.Field)
		fields[*entry.Field] = entry
		assert.Equal(t, models.AuditActionUpdate, entry.Action)
		assert.Equal(t, "sara", entry.UserID)
	}

	statusEntry, ok := fields["status"]
	require.True(t, ok)
	assert.Equal(t, "new", *statusEntry.OldValue)
	assert.Equal(t, "awaiting payment", *statusEntry.NewValue)

	quoteEntry, ok := fields["quote"]
	require.True(t, ok)
	assert.Equal(t, "", *quoteEntry.OldValue)
	assert.Equal(t, "1500", *quoteEntry.NewValue)
}

func TestTransactionUpdateStatusChangeNotification(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)

	_, err := ts.transactions.Update(txn.ID.String(), &models.TransactionUpdateRequest{
		Status: statusPtr(models.TransactionStatusApproved),
		Notes:  strPtr("ministry cleared"),
	}, "")
	require.NoError(t, err)

	notifications, err := ts.notifications.List(false)
	require.NoError(t, err)

	var statusChanges []models.Notification
	for _, n := range notifications {
		if n.Type == models.NotificationTypeStatusChange {
			statusChanges = append(statusChanges, n)
		}
	}
	require.Len(t, statusChanges, 1, "exactly one status_change per status transition")
	assert.Contains(t, statusChanges[0].Message, txn.Number)
	assert.Contains(t, statusChanges[0].Message, "approved")
}

func TestTransactionUpdateWithoutStatusChange(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)

	_, err := ts.transactions.Update(txn.ID.String(), &models.TransactionUpdateRequest{
		Notes:  strPtr("called the client"),
		Status: statusPtr(models.TransactionStatusNew), // same status, no notification
	}, "")
	require.NoError(t, err)

	notifications, err := ts.notifications.List(false)
	require.NoError(t, err)
	for _, n := range notifications {
		assert.NotEqual(t, models.NotificationTypeStatusChange, n.Type)
	}
}

func TestTransactionUpdateNoChangesStillBumpsUpdatedAt(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)

	before := txn.UpdatedAt
	time.Sleep(20 * time.Millisecond)

	updated, err := ts.transactions.Update(txn.ID.String(), &models.TransactionUpdateRequest{
		Notes: strPtr(txn.Notes),
	}, "")
	require.NoError(t, err)
	assert.True(t, updated.UpdatedAt.After(before), "any update call counts as activity")

	entries, err := ts.audit.GetByTxn(txn.ID.String())
	require.NoError(t, err)
	assert.Empty(t, entries, "an unchanged field must not produce an audit entry")
}

func TestTransactionUpdateInvalidStatus(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)

	bogus := models.TransactionStatus("done")
	_, err := ts.transactions.Update(txn.ID.String(), &models.TransactionUpdateRequest{
		Status: &bogus,
	}, "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestTransactionUpdateNotFound(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.transactions.Update(uuid.NewString(), &models.TransactionUpdateRequest{
		Notes: strPtr("whatever"),
	}, "")

	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}

func TestTransactionDeleteWritesSnapshotAndIsIdempotent(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
		Notes:   "keep this in the snapshot",
	}, models.TransactionOriginAdmin)
	id := txn.ID.String()

	require.NoError(t, ts.transactions.Delete(id, "admin"))

	_, err := ts.transactions.GetByID(id)
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	entries, err := ts.audit.GetByTxn(id)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	entry := entries[0]
	assert.Equal(t, models.AuditActionDelete, entry.Action)
	assert.Nil(t, entry.Field)
	assert.Nil(t, entry.NewValue)
	require.NotNil(t, entry.OldValue)

	var snapshot models.Transaction
	require.NoError(t, json.Unmarshal([]byte(*entry.OldValue), &snapshot))
	assert.Equal(t, txn.Number, snapshot.Number)
	assert.Equal(t, "keep this in the snapshot", snapshot.Notes)

	// Retrying the delete is a no-op, not an error, and adds no audit entry.
	require.NoError(t, ts.transactions.Delete(id, "admin"))
	entries, err = ts.audit.GetByTxn(id)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestTransactionLookup(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Al-Amal Trading",
		Phone:   "0551234567",
		Service: "commercial registration",
		Quote:   "1500",
	}, models.TransactionOriginAdmin)

	view, err := ts.transactions.Lookup(&models.ClientLookupRequest{
		Number: txn.Number,
		Phone:  "0551234567",
	})
	require.NoError(t, err)
	assert.Equal(t, txn.Number, view.Number)
	assert.Equal(t, "1500", view.Quote)
	assert.Empty(t, view.Client, "the public view must not expose the client name")

	tests := []struct {
		name string
		req  models.ClientLookupRequest
	}{
		{"wrong phone", models.ClientLookupRequest{Number: txn.Number, Phone: "0559999999"}},
		{"wrong number", models.ClientLookupRequest{Number: "TXN-0", Phone: "0551234567"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ts.transactions.Lookup(&tt.req)
			var appErr *apperrors.AppError
			require.ErrorAs(t, err, &appErr)
			assert.Equal(t, 404, appErr.StatusCode)
			assert.Equal(t, "No matching transaction found", appErr.Message)
		})
	}
}

func TestTransactionSearch(t *testing.T) {
	ts := newTestServices(t)

	oldest := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "ACME Corp",
		Phone:   "0551111111",
		Service: "visa processing",
	}, models.TransactionOriginAdmin)
	middle := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Bin Saleh Est",
		Phone:   "0552222222",
		Service: "license renewal",
	}, models.TransactionOriginAdmin)
	newest := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "acme subsidiaries",
		Phone:   "0553333333",
		Service: "visa processing",
	}, models.TransactionOriginAdmin)

	base := time.Now().Add(-time.Hour)
	setTimestamps(t, ts, oldest.ID, base, base)
	setTimestamps(t, ts, middle.ID, base, base.Add(time.Minute))
	setTimestamps(t, ts, newest.ID, base, base.Add(2*time.Minute))

	all, err := ts.transactions.Search("", "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, newest.Number, all[0].Number)
	assert.Equal(t, middle.Number, all[1].Number)
	assert.Equal(t, oldest.Number, all[2].Number)

	matches, err := ts.transactions.Search("ACME", "")
	require.NoError(t, err)
	require.Len(t, matches, 2, "matching is case-insensitive on both sides")
	assert.Equal(t, newest.Number, matches[0].Number)

	_, err = ts.transactions.Update(middle.ID.String(), &models.TransactionUpdateRequest{
		Status: statusPtr(models.TransactionStatusApproved),
	}, "")
	require.NoError(t, err)

	approved, err := ts.transactions.Search("", models.TransactionStatusApproved)
	require.NoError(t, err)
	require.Len(t, approved, 1)
	assert.Equal(t, middle.Number, approved[0].Number)
}
