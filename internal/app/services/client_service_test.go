package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "github.com/tadbir/muamalat-core/internal/app/errors"
	"github.com/tadbir/muamalat-core/internal/app/models"
	"github.com/tadbir/muamalat-core/internal/app/services"
	"github.com/tadbir/muamalat-core/internal/infrastructures"
)

func TestClientRegisterUpsertsByPhone(t *testing.T) {
	db := newTestDB(t)
	clients := services.NewClientService(db, infrastructures.NewValidator())

	first, err := clients.Register(&models.ClientRegisterRequest{
		Name:  "Fahad",
		Phone: "0551234567",
	})
	require.NoError(t, err)

	second, err := clients.Register(&models.ClientRegisterRequest{
		Name:  "Fahad Al-Otaibi",
		Phone: "0551234567",
		Email: "fahad@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID, "re-registering the same phone updates, not duplicates")
	assert.Equal(t, "Fahad Al-Otaibi", second.Name)
	assert.Equal(t, "fahad@example.com", second.Email)

	list, err := clients.List()
	require.NoError(t, err)
	assert.Len(t, list, 1)

	found, err := clients.GetByPhone("0551234567")
	require.NoError(t, err)
	assert.Equal(t, "Fahad Al-Otaibi", found.Name)

	_, err = clients.GetByPhone("0559999999")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, 404, appErr.StatusCode)
}
