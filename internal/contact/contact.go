package contact

type Type string

const (
	TypeHelper    Type = "Helper"
	TypeHousehold Type = "Household"
)

// Contact is the address-book entry for a helper or a household.
type Contact struct {
	ID               int
	Name             string
	Type             Type
	Phone            string
	Email            string
	Address          string
	City             string
	EmergencyContact string
	EmergencyPhone   string
}

func (c Contact) Kind() Type { return c.Type }
