package booking_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/errs"
	"github.com/MrJamesThe3rd/betawi/internal/seed"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

// patchFrom makes a mocked Update apply the patch to a booking in the given status.
func patchFrom(current booking.Status) func(context.Context, int, func(*booking.Booking) error) (*booking.Booking, error) {
	return func(_ context.Context, id int, patch func(*booking.Booking) error) (*booking.Booking, error) {
		b := &booking.Booking{ID: id, Status: current}
		if err := patch(b); err != nil {
			return nil, err
		}

		return b, nil
	}
}

func TestService_Create(t *testing.T) {
	type testCase struct {
		name      string
		params    booking.CreateParams
		setupMock func(m *booking.MockRepository)
		want      func(t *testing.T, b *booking.Booking)
		wantErr   error
	}

	stored := func(m *booking.MockRepository) {
		m.EXPECT().
			Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, b *booking.Booking) error {
				b.ID = 6
				return nil
			})
	}

	eat := time.FixedZone("EAT", 3*60*60)

	valid := booking.CreateParams{
		HouseholdID: 1,
		HelperID:    2,
		ServiceType: "Cleaning",
		StartDate:   time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 2, 2, 0, 0, 0, 0, time.UTC),
		Location:    "Addis Ababa",
	}

	tests := []testCase{
		{
			name:   "Success",
			params: valid,
			setupMock: func(m *booking.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, b *booking.Booking) error {
						b.ID = 6
						return nil
					})
			},
		},
		{
			name:      "DefaultServiceType",
			params:    booking.CreateParams{HouseholdID: 1, HelperID: 2, StartDate: valid.StartDate, EndDate: valid.EndDate},
			setupMock: stored,
			want: func(t *testing.T, b *booking.Booking) {
				assert.Equal(t, booking.DefaultServiceType, b.ServiceType)
			},
		},
		{
			name: "DatesStoredAsUTCMidnight",
			params: booking.CreateParams{
				HouseholdID: 1,
				HelperID:    2,
				ServiceType: "Cooking",
				StartDate:   time.Date(2025, 2, 1, 22, 15, 0, 0, eat),
				EndDate:     time.Date(2025, 2, 3, 8, 0, 0, 0, eat),
			},
			setupMock: stored,
			want: func(t *testing.T, b *booking.Booking) {
				assert.Equal(t, time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), b.StartDate)
				assert.Equal(t, time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC), b.EndDate)
			},
		},
		{
			name:      "SameDay",
			params:    booking.CreateParams{HouseholdID: 1, HelperID: 2, StartDate: valid.StartDate, EndDate: valid.StartDate.Add(3 * time.Hour)},
			setupMock: stored,
		},
		{
			name:    "EndBeforeStart",
			params:  booking.CreateParams{HouseholdID: 1, HelperID: 2, StartDate: valid.EndDate, EndDate: valid.StartDate},
			wantErr: errs.ErrValidation,
		},
		{
			name:    "MissingHelper",
			params:  booking.CreateParams{HouseholdID: 1, StartDate: valid.StartDate, EndDate: valid.EndDate},
			wantErr: errs.ErrValidation,
		},
		{
			name:   "RepoError",
			params: valid,
			setupMock: func(m *booking.MockRepository) {
				m.EXPECT().
					Create(gomock.Any(), gomock.Any()).
					Return(errors.New("db error"))
			},
			wantErr: errors.New("db error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := booking.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := booking.NewService(repo)
			got, err := svc.Create(context.Background(), tt.params)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.Nil(t, got)

				if errors.Is(tt.wantErr, errs.ErrValidation) {
					assert.ErrorIs(t, err, errs.ErrValidation)
				}

				return
			}

			require.NoError(t, err)
			assert.Equal(t, 6, got.ID)
			assert.Equal(t, booking.StatusPending, got.Status)

			if tt.want != nil {
				tt.want(t, got)
			}
		})
	}
}

func TestService_Transition(t *testing.T) {
	type testCase struct {
		name    string
		from    booking.Status
		to      booking.Status
		wantErr error
	}

	tests := []testCase{
		{name: "PendingToApproved", from: booking.StatusPending, to: booking.StatusApproved},
		{name: "ApprovedToCompleted", from: booking.StatusApproved, to: booking.StatusCompleted},
		{name: "PendingToCompleted", from: booking.StatusPending, to: booking.StatusCompleted, wantErr: errs.ErrInvalidTransition},
		{name: "CompletedToApproved", from: booking.StatusCompleted, to: booking.StatusApproved, wantErr: errs.ErrInvalidTransition},
		{name: "ApprovedToPending", from: booking.StatusApproved, to: booking.StatusPending, wantErr: errs.ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := booking.NewMockRepository(ctrl)
			repo.EXPECT().
				Update(gomock.Any(), 1, gomock.Any()).
				DoAndReturn(patchFrom(tt.from))

			svc := booking.NewService(repo)
			got, err := svc.Transition(context.Background(), 1, tt.to)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.to, got.Status)
		})
	}
}

func TestService_TransitionUnknownStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := booking.NewService(booking.NewMockRepository(ctrl))

	_, err := svc.Transition(context.Background(), 1, booking.Status("Cancelled"))
	assert.ErrorIs(t, err, errs.ErrValidation)
}

func TestService_SeededStore(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	require.NoError(t, seed.Load(ctx, st))

	svc := booking.NewService(st.Bookings)

	approved, err := svc.List(ctx, booking.ListFilter{Status: new(booking.StatusApproved)})
	require.NoError(t, err)
	require.Len(t, approved, 2)
	assert.Equal(t, 1, approved[0].ID)
	assert.Equal(t, 4, approved[1].ID)

	forHousehold, err := svc.List(ctx, booking.ListFilter{HouseholdID: new(1)})
	require.NoError(t, err)
	assert.Len(t, forHousehold, 2)

	_, err = svc.Approve(ctx, 2)
	require.ErrorIs(t, err, errs.ErrInvalidTransition)

	b, err := svc.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCompleted, b.Status)

	b, err = svc.Approve(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusApproved, b.Status)

	b, err = svc.Complete(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, booking.StatusCompleted, b.Status)

	_, err = svc.Approve(ctx, 99)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}
