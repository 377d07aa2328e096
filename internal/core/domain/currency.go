package domain

// AuxSlot indexes the three auxiliary currencies carried by every line.
type AuxSlot int

const (
	AuxOperational AuxSlot = iota
	AuxReporting1
	AuxReporting2
)

// AuxSlotCount is the number of auxiliary currencies.
const AuxSlotCount = 3

func (s AuxSlot) String() string {
	switch s {
	case AuxOperational:
		return "operational"
	case AuxReporting1:
		return "reporting1"
	case AuxReporting2:
		return "reporting2"
	}
	return "unknown"
}

// Valid reports whether s is one of the three slots.
func (s AuxSlot) Valid() bool {
	return s >= AuxOperational && s <= AuxReporting2
}

// AuxiliaryCurrencies holds the globally configured auxiliary currency codes,
// indexed by AuxSlot. An empty code means the slot is not configured.
type AuxiliaryCurrencies [AuxSlotCount]string

// SlotFor returns the slot whose currency equals code.
func (a AuxiliaryCurrencies) SlotFor(code string) (AuxSlot, bool) {
	if code == "" {
		return 0, false
	}
	for i, c := range a {
		if c == code {
			return AuxSlot(i), true
		}
	}
	return 0, false
}
