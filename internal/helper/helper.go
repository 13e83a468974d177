package helper

// Type is the engagement model a helper is registered for.
type Type string

const (
	TypeLiveIn   Type = "Live-in"
	TypePartTime Type = "Part-time"
	TypeOnDemand Type = "On-demand"
	TypeNanny    Type = "Nanny"
)

// Helper is a service worker registered on the platform.
type Helper struct {
	ID          int
	Name        string
	Age         int
	Type        Type
	MedicalInfo string
	Strengths   string
	Weaknesses  string
	FaydaID     string
	KebeleID    string
	Picture     string
	Verified    bool
}

func (h Helper) Kind() Type { return h.Type }
