package store

import (
	"github.com/MrJamesThe3rd/betawi/internal/account"
	"github.com/MrJamesThe3rd/betawi/internal/audit"
	"github.com/MrJamesThe3rd/betawi/internal/booking"
	"github.com/MrJamesThe3rd/betawi/internal/contact"
	"github.com/MrJamesThe3rd/betawi/internal/contract"
	"github.com/MrJamesThe3rd/betawi/internal/helper"
	"github.com/MrJamesThe3rd/betawi/internal/household"
	"github.com/MrJamesThe3rd/betawi/internal/ledger"
	"github.com/MrJamesThe3rd/betawi/internal/message"
	"github.com/MrJamesThe3rd/betawi/internal/review"
)

// Collection names double as the audit trail's collection keys.
const (
	HelpersName       = "helpers"
	HouseholdsName    = "households"
	BookingsName      = "bookings"
	ContractsName     = "contracts"
	TransactionsName  = "transactions"
	AccountsName      = "accounts"
	ReviewsName       = "reviews"
	ConversationsName = "conversations"
	MessagesName      = "messages"
	ContactsName      = "contacts"
)

// Store groups one collection per entity type.
type Store struct {
	Helpers       *Collection[helper.Helper]
	Households    *Collection[household.Household]
	Bookings      *Collection[booking.Booking]
	Contracts     *Collection[contract.Contract]
	Transactions  *Collection[ledger.Transaction]
	Accounts      *Collection[account.HelperAccount]
	Reviews       *Collection[review.Review]
	Conversations *Collection[message.Conversation]
	Messages      *Collection[message.Message]
	Contacts      *Collection[contact.Contact]
}

// New builds an empty store. recorder may be nil to disable auditing.
func New(recorder audit.Recorder) *Store {
	return &Store{
		Helpers:       NewCollection(HelpersName, func(h *helper.Helper) *int { return &h.ID }, recorder),
		Households:    NewCollection(HouseholdsName, func(h *household.Household) *int { return &h.ID }, recorder),
		Bookings:      NewCollection(BookingsName, func(b *booking.Booking) *int { return &b.ID }, recorder),
		Contracts:     NewCollection(ContractsName, func(c *contract.Contract) *int { return &c.ID }, recorder),
		Transactions:  NewCollection(TransactionsName, func(t *ledger.Transaction) *int { return &t.ID }, recorder),
		Accounts:      NewCollection(AccountsName, func(a *account.HelperAccount) *int { return &a.ID }, recorder),
		Reviews:       NewCollection(ReviewsName, func(r *review.Review) *int { return &r.ID }, recorder),
		Conversations: NewCollection(ConversationsName, func(c *message.Conversation) *int { return &c.ID }, recorder),
		Messages:      NewCollection(MessagesName, func(m *message.Message) *int { return &m.ID }, recorder),
		Contacts:      NewCollection(ContactsName, func(c *contact.Contact) *int { return &c.ID }, recorder),
	}
}

// Collections lists the audit collection keys in a stable order.
func Collections() []string {
	return []string{
		HelpersName, HouseholdsName, BookingsName, ContractsName, TransactionsName,
		AccountsName, ReviewsName, ConversationsName, MessagesName, ContactsName,
	}
}
