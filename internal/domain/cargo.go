package domain

import (
	"fmt"
	"time"
)

type CargoStatus string

const (
	CargoPending   CargoStatus = "pending"
	CargoInTransit CargoStatus = "in_transit"
	CargoDelivered CargoStatus = "delivered"
	CargoCancelled CargoStatus = "cancelled"
)

// ParseCargoStatus validates a status string coming from an API caller.
func ParseCargoStatus(s string) (CargoStatus, error) {
	switch st := CargoStatus(s); st {
	case CargoPending, CargoInTransit, CargoDelivered, CargoCancelled:
		return st, nil
	}
	return "", fmt.Errorf("parse cargo status: unknown status %q", s)
}

// Represents one shippable cargo record waiting at a station.
// Several Cargo records may share a station; the router never splits a
// station's combined weight across vehicles.
type Cargo struct {
	CargoID     int
	StationName string
	Weight      float64
	Quantity    int
	SenderID    int
	SenderName  string
	Status      CargoStatus
	TargetDate  *time.Time
}

// TotalWeight is the weight this record contributes to its station.
func (c Cargo) TotalWeight() float64 { return c.Weight * float64(c.Quantity) }

// AggregatedDemand is the indivisible per-station total built for one solve.
type AggregatedDemand struct {
	StationName string
	TotalWeight float64
	CargoIDs    []int
}
