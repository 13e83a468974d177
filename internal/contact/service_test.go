package contact_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/betawi/internal/contact"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	require.NoError(t, seed.Load(ctx, st))

	svc := contact.NewService(st.Contacts)

	households, err := svc.List(ctx, new(contact.TypeHousehold))
	require.NoError(t, err)
	require.Len(t, households, 2)
	assert.Equal(t, 2, households[0].ID)
	assert.Equal(t, 4, households[1].ID)

	created, err := svc.Create(ctx, contact.Params{
		Name:  "Noor Family",
		Type:  contact.TypeHousehold,
		Phone: "+251955000000",
		Email: "noor.family@email.com",
		City:  "Addis Ababa",
	})
	require.NoError(t, err)
	assert.Equal(t, 5, created.ID)

	_, err = svc.Create(ctx, contact.Params{Name: "Noor Family", Type: contact.TypeHousehold, Phone: "+251955000000", Email: "not-an-email"})
	require.ErrorIs(t, err, errs.ErrValidation)

	updated, err := svc.Update(ctx, 5, contact.Params{
		Name:  "Noor Family",
		Type:  contact.TypeHousehold,
		Phone: "+251955000001",
		Email: "noor.family@email.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "+251955000001", updated.Phone)
	assert.Empty(t, updated.City)

	require.NoError(t, svc.Delete(ctx, 5))

	_, err = svc.Get(ctx, 5)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
