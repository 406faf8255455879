package geography

import (
	"cargo-route-service/internal/domain"
	"sync"
)

// KocaeliDepotName is the terminal point of every route in the built-in table.
const KocaeliDepotName = "Umuttepe (KOÜ)"

// Road distances in km between the Kocaeli districts, in kocaeliLocations order.
var kocaeliMatrix = [][]float64{
	// İzmit Gebze Darıca Çayırova Dilovası Körfez Derince Gölcük Karamürsel Kandıra Kartepe Başiskele
	{0, 45, 52, 50, 35, 18, 12, 20, 38, 45, 12, 8},
	{45, 0, 8, 6, 15, 28, 35, 55, 65, 90, 55, 50},
	{52, 8, 0, 4, 18, 32, 40, 60, 68, 95, 60, 55},
	{50, 6, 4, 0, 16, 30, 38, 58, 66, 93, 58, 53},
	{35, 15, 18, 16, 0, 18, 25, 45, 52, 80, 45, 40},
	{18, 28, 32, 30, 18, 0, 8, 22, 30, 60, 28, 22},
	{12, 35, 40, 38, 25, 8, 0, 18, 35, 55, 22, 15},
	{20, 55, 60, 58, 45, 22, 18, 0, 20, 65, 32, 25},
	{38, 65, 68, 66, 52, 30, 35, 20, 0, 80, 50, 42},
	{45, 90, 95, 93, 80, 60, 55, 65, 80, 0, 35, 40},
	{12, 55, 60, 58, 45, 28, 22, 32, 50, 35, 0, 10},
	{8, 50, 55, 53, 40, 22, 15, 25, 42, 40, 10, 0},
}

var kocaeliLocations = []Location{
	{Name: "İzmit", Coordinates: domain.Coordinates{Lat: 40.7654, Lon: 29.9408}, DepotDistance: 5},
	{Name: "Gebze", Coordinates: domain.Coordinates{Lat: 40.8027, Lon: 29.4307}, DepotDistance: 48},
	{Name: "Darıca", Coordinates: domain.Coordinates{Lat: 40.7694, Lon: 29.3753}, DepotDistance: 55},
	{Name: "Çayırova", Coordinates: domain.Coordinates{Lat: 40.8261, Lon: 29.3711}, DepotDistance: 53},
	{Name: "Dilovası", Coordinates: domain.Coordinates{Lat: 40.7847, Lon: 29.5375}, DepotDistance: 38},
	{Name: "Körfez", Coordinates: domain.Coordinates{Lat: 40.7539, Lon: 29.7644}, DepotDistance: 20},
	{Name: "Derince", Coordinates: domain.Coordinates{Lat: 40.7553, Lon: 29.8147}, DepotDistance: 14},
	{Name: "Gölcük", Coordinates: domain.Coordinates{Lat: 40.7167, Lon: 29.8333}, DepotDistance: 22},
	{Name: "Karamürsel", Coordinates: domain.Coordinates{Lat: 40.6917, Lon: 29.6167}, DepotDistance: 40},
	{Name: "Kandıra", Coordinates: domain.Coordinates{Lat: 41.0694, Lon: 30.1528}, DepotDistance: 42},
	{Name: "Kartepe", Coordinates: domain.Coordinates{Lat: 40.7500, Lon: 30.0333}, DepotDistance: 8},
	{Name: "Başiskele", Coordinates: domain.Coordinates{Lat: 40.7167, Lon: 29.9167}, DepotDistance: 6},
}

var kocaeliDepot = domain.Depot{
	Name:        KocaeliDepotName,
	Coordinates: domain.Coordinates{Lat: 40.8225, Lon: 29.9250},
}

var kocaeli = sync.OnceValue(func() *Table {
	t, err := NewTable(kocaeliDepot, kocaeliLocations, kocaeliMatrix)
	if err != nil {
		panic("geography: built-in Kocaeli table is invalid: " + err.Error())
	}
	return t
})

// Kocaeli returns the built-in district table. The same instance is
// returned on every call.
func Kocaeli() *Table { return kocaeli() }
