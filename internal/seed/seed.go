// Package seed loads the demo dataset the console ships with.
package seed

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/contact"
	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/message"
	"github.com/MrJamesThe3rd/betawi/internal/review"
	"github.com/MrJamesThe3rd/betawi/internal/store"
)

const city = "Addis Ababa"

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func at(d time.Time, hour, minute int) time.Time {
	return d.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

type creator[T any] interface {
	Create(ctx context.Context, item *T) error
}

func load[T any](ctx context.Context, c creator[T], items []T) error {
	for i := range items {
		if err := c.Create(ctx, &items[i]); err != nil {
			return err
		}
	}

	return nil
}

// Load writes the demo records with their fixed IDs into an empty store.
func Load(ctx context.Context, s *store.Store) error {
	steps := []struct {
		name string
		run  func() error
	}{
		{store.HelpersName, func() error { return load(ctx, s.Helpers, Helpers()) }},
		{store.HouseholdsName, func() error { return load(ctx, s.Households, Households()) }},
		{store.BookingsName, func() error { return load(ctx, s.Bookings, Bookings()) }},
		{store.ContractsName, func() error { return load(ctx, s.Contracts, Contracts()) }},
		{store.TransactionsName, func() error { return load(ctx, s.Transactions, Transactions()) }},
		{store.AccountsName, func() error { return load(ctx, s.Accounts, Accounts()) }},
		{store.ReviewsName, func() error { return load(ctx, s.Reviews, Reviews()) }},
		{store.ConversationsName, func() error { return load(ctx, s.Conversations, Conversations()) }},
		{store.MessagesName, func() error { return load(ctx, s.Messages, Messages()) }},
		{store.ContactsName, func() error { return load(ctx, s.Contacts, Contacts()) }},
	}

	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("seeding %s: %w", step.name, err)
		}
	}

	slog.Info("demo data loaded", "helpers", s.Helpers.Len(), "households", s.Households.Len(), "bookings", s.Bookings.Len())

	return nil
}

func Helpers() []helper.Helper {
	return []helper.Helper{
		{
			ID: 1, Name: "Amara Hassan", Age: 28, Type: helper.TypeLiveIn,
			MedicalInfo: "No allergies", Strengths: "Cooking, Childcare", Weaknesses: "Limited English",
			FaydaID: "FY001", KebeleID: "KB001", Verified: true,
			Picture: "/ethiopian-woman-helper-smiling.jpg",
		},
		{
			ID: 2, Name: "Fatima Ali", Age: 32, Type: helper.TypePartTime,
			MedicalInfo: "Asthma", Strengths: "Cleaning, Laundry", Weaknesses: "Heavy lifting",
			FaydaID: "FY002", KebeleID: "KB002", Verified: true,
			Picture: "/ethiopian-woman-professional-portrait.jpg",
		},
		{
			ID: 3, Name: "Zainab Ibrahim", Age: 25, Type: helper.TypeOnDemand,
			MedicalInfo: "None", Strengths: "Childcare, Teaching", Weaknesses: "Cooking",
			FaydaID: "FY003", KebeleID: "KB001", Verified: false,
			Picture: "/young-ethiopian-woman-caregiver.jpg",
		},
		{
			ID: 4, Name: "Leila Ahmed", Age: 35, Type: helper.TypeNanny,
			MedicalInfo: "None", Strengths: "Childcare, Cooking", Weaknesses: "None",
			FaydaID: "FY004", KebeleID: "KB003", Verified: true,
			Picture: "/ethiopian-woman-nanny-experienced.jpg",
		},
	}
}

func Households() []household.Household {
	return []household.Household{
		{
			ID: 1, Name: "Ahmed Family", Children: 2, ChildrenAges: "5, 8",
			TotalResidents: 5, MaleCount: 2, FemaleCount: 3,
			HouseType: "Condominium", RoomSize: "3 Bedroom", NumberOfRooms: 3,
			HouseSize: household.HouseSizeMedium, PaymentStatus: household.PaymentPaid, Verified: true,
		},
		{
			ID: 2, Name: "Mohamed Family", Children: 1, ChildrenAges: "3",
			TotalResidents: 4, MaleCount: 2, FemaleCount: 2,
			HouseType: "Villa", RoomSize: "4 Bedroom", NumberOfRooms: 4,
			HouseSize: household.HouseSizeLarge, PaymentStatus: household.PaymentPending, Verified: true,
		},
		{
			ID: 3, Name: "Noor Family", Children: 3, ChildrenAges: "2, 6, 10",
			TotalResidents: 6, MaleCount: 3, FemaleCount: 3,
			HouseType: "Condominium", RoomSize: "2 Bedroom", NumberOfRooms: 2,
			HouseSize: household.HouseSizeSmall, PaymentStatus: household.PaymentPaid, Verified: false,
		},
		{
			ID: 4, Name: "Hassan Family", Children: 0, ChildrenAges: "N/A",
			TotalResidents: 2, MaleCount: 1, FemaleCount: 1,
			HouseType: "Villa", RoomSize: "5 Bedroom", NumberOfRooms: 5,
			HouseSize: household.HouseSizeLarge, PaymentStatus: household.PaymentPaid, Verified: true,
		},
	}
}

func Bookings() []booking.Booking {
	return []booking.Booking{
		{ID: 1, HouseholdID: 1, HelperID: 1, ServiceType: "Childcare", StartDate: day(2025, 1, 15), EndDate: day(2025, 1, 20), Status: booking.StatusApproved, Location: city},
		{ID: 2, HouseholdID: 2, HelperID: 2, ServiceType: "Cleaning", StartDate: day(2025, 1, 10), EndDate: day(2025, 1, 10), Status: booking.StatusCompleted, Location: city},
		{ID: 3, HouseholdID: 3, HelperID: 3, ServiceType: "Cooking", StartDate: day(2025, 1, 18), EndDate: day(2025, 1, 25), Status: booking.StatusPending, Location: city},
		{ID: 4, HouseholdID: 4, HelperID: 4, ServiceType: "Nanny", StartDate: day(2025, 1, 20), EndDate: day(2025, 2, 20), Status: booking.StatusApproved, Location: city},
		{ID: 5, HouseholdID: 1, HelperID: 2, ServiceType: "Laundry", StartDate: day(2025, 1, 12), EndDate: day(2025, 1, 12), Status: booking.StatusCompleted, Location: city},
	}
}

func Contracts() []contract.Contract {
	return []contract.Contract{
		{
			ID: 1, HelperID: 1, HouseholdID: 1, ServiceType: "Childcare",
			StartDate: day(2025, 1, 15), EndDate: day(2025, 6, 15), MonthlyRate: 3000, Status: contract.StatusActive,
			Terms:           "Full-time childcare, 5 days a week, 8 hours per day",
			PaymentSchedule: "Monthly, due on the 1st of each month",
		},
		{
			ID: 2, HelperID: 2, HouseholdID: 2, ServiceType: "Cleaning",
			StartDate: day(2025, 1, 10), EndDate: day(2025, 12, 31), MonthlyRate: 1500, Status: contract.StatusActive,
			Terms:           "Weekly cleaning service, 3 hours per session",
			PaymentSchedule: "Monthly, due on the 5th of each month",
		},
		{
			ID: 3, HelperID: 3, HouseholdID: 3, ServiceType: "Cooking",
			StartDate: day(2024, 12, 1), EndDate: day(2025, 1, 31), MonthlyRate: 2000, Status: contract.StatusCompleted,
			Terms:           "Daily meal preparation, lunch and dinner",
			PaymentSchedule: "Monthly, due on the 10th of each month",
		},
		{
			ID: 4, HelperID: 4, HouseholdID: 4, ServiceType: "Nanny",
			StartDate: day(2025, 2, 1), EndDate: day(2025, 8, 1), MonthlyRate: 4000, Status: contract.StatusPending,
			Terms:           "Full-time nanny, 6 days a week, includes meal preparation",
			PaymentSchedule: "Monthly, due on the 1st of each month",
		},
	}
}

func Transactions() []ledger.Transaction {
	return []ledger.Transaction{
		{ID: 1, Type: ledger.TypeIncome, HelperID: 1, From: "Amara Hassan", Amount: 5000, Commission: 500, Date: day(2025, 1, 15), Status: ledger.StatusCompleted, Description: "Childcare service payment"},
		{ID: 2, Type: ledger.TypePayout, HelperID: 1, From: "Amara Hassan", Amount: 4500, Date: day(2025, 1, 14), Status: ledger.StatusCompleted, Description: "Monthly payout to helper"},
		{ID: 3, Type: ledger.TypeIncome, HelperID: 2, From: "Fatima Ali", Amount: 3000, Commission: 300, Date: day(2025, 1, 13), Status: ledger.StatusCompleted, Description: "Cleaning service payment"},
		{ID: 4, Type: ledger.TypePayout, HelperID: 2, From: "Fatima Ali", Amount: 2700, Date: day(2025, 1, 12), Status: ledger.StatusCompleted, Description: "Monthly payout to helper"},
		{ID: 5, Type: ledger.TypeIncome, HelperID: 3, From: "Zainab Ibrahim", Amount: 2500, Commission: 250, Date: day(2025, 1, 11), Status: ledger.StatusPending, Description: "Cooking service payment"},
	}
}

func Accounts() []account.HelperAccount {
	return []account.HelperAccount{
		{ID: 1, HelperID: 1, Name: "Amara Hassan", TotalEarnings: 45000, TotalCommission: 4500, PendingPayout: 5000, LastPayout: day(2025, 1, 14), BankAccount: "****1234", Status: account.StatusActive},
		{ID: 2, HelperID: 2, Name: "Fatima Ali", TotalEarnings: 32000, TotalCommission: 3200, PendingPayout: 3000, LastPayout: day(2025, 1, 12), BankAccount: "****5678", Status: account.StatusActive},
		{ID: 3, HelperID: 3, Name: "Zainab Ibrahim", TotalEarnings: 18000, TotalCommission: 1800, PendingPayout: 2500, LastPayout: day(2025, 1, 10), BankAccount: "****9012", Status: account.StatusActive},
		{ID: 4, HelperID: 4, Name: "Leila Ahmed", TotalEarnings: 52000, TotalCommission: 5200, PendingPayout: 0, LastPayout: day(2025, 1, 15), BankAccount: "****3456", Status: account.StatusActive},
	}
}

func Reviews() []review.Review {
	return []review.Review{
		{ID: 1, HouseholdID: 1, HelperID: 1, Rating: 5, Comment: "Excellent service! Very professional and caring with the children.", Date: day(2025, 1, 15), Status: review.StatusResolved},
		{ID: 2, HouseholdID: 2, HelperID: 2, Rating: 4, Comment: "Good cleaning service, but arrived 15 minutes late.", Date: day(2025, 1, 14), Status: review.StatusPending},
		{ID: 3, HouseholdID: 3, HelperID: 3, Rating: 3, Comment: "Service was okay, but communication could be better.", Date: day(2025, 1, 13), Status: review.StatusFlagged},
		{ID: 4, HouseholdID: 4, HelperID: 4, Rating: 5, Comment: "Outstanding nanny! The children love her and she's very responsible.", Date: day(2025, 1, 12), Status: review.StatusResolved},
		{ID: 5, HouseholdID: 1, HelperID: 2, Rating: 2, Comment: "Not satisfied with the laundry service. Some items were damaged.", Date: day(2025, 1, 11), Status: review.StatusFlagged},
	}
}

// Conversations keeps each unread counter equal to the unread messages in the thread.
func Conversations() []message.Conversation {
	d := day(2025, 1, 15)

	return []message.Conversation{
		{ID: 1, HouseholdID: 1, HelperID: 1, LastMessage: "I will arrive at 9 AM tomorrow", LastMessageTime: at(d, 14, 30)},
		{ID: 2, HouseholdID: 2, HelperID: 2, LastMessage: "The cleaning is complete", LastMessageTime: at(d, 13, 45)},
		{ID: 3, HouseholdID: 3, HelperID: 3, LastMessage: "Can we reschedule the cooking service?", LastMessageTime: at(d, 12, 20), Unread: 1},
		{ID: 4, HouseholdID: 4, HelperID: 4, LastMessage: "The children are doing great!", LastMessageTime: at(d, 11, 0)},
	}
}

func Messages() []message.Message {
	d := day(2025, 1, 15)

	return []message.Message{
		{ID: 1, ConversationID: 1, Sender: "Amara Hassan", Recipient: "Ahmed Family", Body: "I will arrive at 9 AM tomorrow for the childcare service.", SentAt: at(d, 14, 30), Read: true},
		{ID: 2, ConversationID: 2, Sender: "Fatima Ali", Recipient: "Mohamed Family", Body: "The cleaning is complete. Everything is ready for your arrival.", SentAt: at(d, 13, 45), Read: true},
		{ID: 3, ConversationID: 3, Sender: "Zainab Ibrahim", Recipient: "Noor Family", Body: "Can we reschedule the cooking service to next week?", SentAt: at(d, 12, 20), Read: false},
		{ID: 4, ConversationID: 4, Sender: "Leila Ahmed", Recipient: "Hassan Family", Body: "The children are doing great! They had a wonderful day.", SentAt: at(d, 11, 0), Read: true},
	}
}

func Contacts() []contact.Contact {
	return []contact.Contact{
		{
			ID: 1, Name: "Amara Hassan", Type: contact.TypeHelper, Phone: "+251911234567", Email: "amara@betawi.com",
			Address: "Bole, Addis Ababa", City: city, EmergencyContact: "Fatima Hassan", EmergencyPhone: "+251911234568",
		},
		{
			ID: 2, Name: "Ahmed Family", Type: contact.TypeHousehold, Phone: "+251922345678", Email: "ahmed.family@email.com",
			Address: "Kazanchis, Addis Ababa", City: city,
		},
		{
			ID: 3, Name: "Fatima Ali", Type: contact.TypeHelper, Phone: "+251933456789", Email: "fatima@betawi.com",
			Address: "Nifas Silk, Addis Ababa", City: city, EmergencyContact: "Ali Ahmed", EmergencyPhone: "+251933456790",
		},
		{
			ID: 4, Name: "Mohamed Family", Type: contact.TypeHousehold, Phone: "+251944567890", Email: "mohamed.family@email.com",
			Address: "Bole Medhanealem, Addis Ababa", City: city,
		},
	}
}
