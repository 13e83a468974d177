package household

type HouseSize string

const (
	HouseSizeSmall  HouseSize = "Small"
	HouseSizeMedium HouseSize = "Medium"
	HouseSizeLarge  HouseSize = "Large"
)

type PaymentStatus string

const (
	PaymentPaid    PaymentStatus = "Paid"
	PaymentPending PaymentStatus = "Pending"
)

// Household is a client family unit that books helper services.
type Household struct {
	ID             int
	Name           string
	Children       int
	ChildrenAges   string
	TotalResidents int
	MaleCount      int
	FemaleCount    int
	HouseType      string
	RoomSize       string
	NumberOfRooms  int
	HouseSize      HouseSize
	PaymentStatus  PaymentStatus
	Verified       bool
}

func (h Household) CurrentStatus() PaymentStatus { return h.PaymentStatus }
