package services_test

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
)

func TestShareLinkIssueIsIdempotent(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)

	first, err := ts.shareLinks.Issue(txn.ID.String())
	require.NoError(t, err)
	assert.Len(t, first.Code, 6)

	second, err := ts.shareLinks.Issue(txn.ID.String())
	require.NoError(t, err)
	assert.Equal(t, first.Code, second.Code, "repeated issuance returns the same code")

	var count int64
	require.NoError(t, ts.db.Model(&models.ShareLink{}).Where("txn_id = ?", txn.ID.String()).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestShareLinkIssueUnknownTransaction(t *testing.T) {
	ts := newTestServices(t)

	_, err := ts.shareLinks.Issue(uuid.NewString())
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)

	_, err = ts.shareLinks.Issue("not-a-uuid")
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 400, appErr.StatusCode)
}

func TestShareLinkResolve(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Al-Amal Trading",
		Phone:   "0551234567",
		Service: "commercial registration",
	}, models.TransactionOriginAdmin)

	link, err := ts.shareLinks.Issue(txn.ID.String())
	require.NoError(t, err)

	view, err := ts.shareLinks.Resolve(link.Code)
	require.NoError(t, err)
	assert.Equal(t, txn.Number, view.Number)
	assert.Equal(t, "Al-Amal Trading", view.Client, "the tracking page shows the client name")
	require.NotNil(t, view.CreatedAt)
}

func TestShareLinkResolveFailures(t *testing.T) {
	ts := newTestServices(t)

	txn := mustCreate(t, ts, &models.TransactionCreateRequest{
		Client:  "Client",
		Phone:   "0551234567",
		Service: "service",
	}, models.TransactionOriginAdmin)
	link, err := ts.shareLinks.Issue(txn.ID.String())
	require.NoError(t, err)

	t.Run("malformed code", func(t *testing.T) {
		_, err := ts.shareLinks.Resolve("ab")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("unknown code", func(t *testing.T) {
		_, err := ts.shareLinks.Resolve("ZZZZZZ")
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})

	t.Run("expired code", func(t *testing.T) {
		expired := time.Now().Add(-time.Hour)
		require.NoError(t, ts.db.Model(&models.ShareLink{}).
			Where("code = ?", link.Code).
			Update("expires_at", expired).Error)

		_, err := ts.shareLinks.Resolve(link.Code)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)

		require.NoError(t, ts.db.Model(&models.ShareLink{}).
			Where("code = ?", link.Code).
			Update("expires_at", nil).Error)
	})

	t.Run("dangling code after deletion", func(t *testing.T) {
		require.NoError(t, ts.transactions.Delete(txn.ID.String(), "admin"))

		_, err := ts.shareLinks.Resolve(link.Code)
		var appErr *apperrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 404, appErr.StatusCode)
	})
}
