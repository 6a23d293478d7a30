package models

// Sector codes used for tax scoping and staff visibility isolation.
const (
	SectorRooms        = "rooms"
	SectorRestaurant   = "restaurant"
	SectorBar          = "bar"
	SectorHousekeeping = "housekeeping"
	SectorActivities   = "activities"
	SectorFrontOffice  = "front_office"
	SectorBackOffice   = "back_office"
)

// BillableSectors are the sectors charges, orders and expenses post against.
var BillableSectors = []string{
	SectorRooms,
	SectorRestaurant,
	SectorBar,
	SectorHousekeeping,
	SectorActivities,
}

// AllSectors covers every department code, billable or not.
var AllSectors = []string{
	SectorRooms,
	SectorRestaurant,
	SectorBar,
	SectorHousekeeping,
	SectorActivities,
	SectorFrontOffice,
	SectorBackOffice,
}

func IsKnownSector(code string) bool {
	for _, s := range AllSectors {
		if s == code {
			return true
		}
	}
	return false
}

func IsBillableSector(code string) bool {
	for _, s := range BillableSectors {
		if s == code {
			return true
		}
	}
	return false
}
