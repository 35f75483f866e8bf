// internal/game/model.go
//
// Data transfer objects returned by the game API.
//
// The JSON shape mirrors the API exactly (camelCase keys, RFC 3339 times,
// UUID strings), so a value decoded from the API re-encodes to the same
// document.  List fields are never nil after normalize(); they encode as []
// rather than null.

package game

import (
	"time"

	"github.com/google/uuid"
)

//
// Universe
//

// Resource is a resource kind defined by a universe (metal, crystal, ...).
type Resource struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
}

// BuildingCost is the amount of one resource a building level costs.
type BuildingCost struct {
	Building uuid.UUID `json:"building"`
	Resource uuid.UUID `json:"resource"`
	Cost     int       `json:"cost"`
}

// Building is a building kind defined by a universe.
type Building struct {
	ID        uuid.UUID      `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	Costs     []BuildingCost `json:"costs"`
}

// UniverseSummary is the identity part of a universe.
type UniverseSummary struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// Universe is the full universe document.
type Universe struct {
	ID        uuid.UUID  `json:"id"`
	Name      string     `json:"name"`
	CreatedAt time.Time  `json:"createdAt"`
	Resources []Resource `json:"resources"`
	Buildings []Building `json:"buildings"`
}

// Summary returns the id and name only.
func (u Universe) Summary() UniverseSummary {
	return UniverseSummary{ID: u.ID, Name: u.Name}
}

func (u *Universe) normalize() {
	if u.Resources == nil {
		u.Resources = []Resource{}
	}
	if u.Buildings == nil {
		u.Buildings = []Building{}
	}
	for i := range u.Buildings {
		if u.Buildings[i].Costs == nil {
			u.Buildings[i].Costs = []BuildingCost{}
		}
	}
}

//
// Planet
//

// PlanetResource is the stock of one resource on a planet.
type PlanetResource struct {
	Planet    uuid.UUID `json:"planet"`
	Resource  uuid.UUID `json:"resource"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PlanetProduction is the hourly yield of one resource.  Building is nil for
// the planet's base production.
type PlanetProduction struct {
	Planet     uuid.UUID  `json:"planet"`
	Building   *uuid.UUID `json:"building,omitempty"`
	Resource   uuid.UUID  `json:"resource"`
	Production int        `json:"production"`
}

// PlanetStorage is the storage capacity for one resource.
type PlanetStorage struct {
	Planet   uuid.UUID `json:"planet"`
	Resource uuid.UUID `json:"resource"`
	Storage  int       `json:"storage"`
}

// PlanetBuilding is the level reached by one building on a planet.
type PlanetBuilding struct {
	Planet    uuid.UUID `json:"planet"`
	Building  uuid.UUID `json:"building"`
	Level     int       `json:"level"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BuildingAction is an upgrade in progress.
type BuildingAction struct {
	ID           uuid.UUID `json:"id"`
	Planet       uuid.UUID `json:"planet"`
	Building     uuid.UUID `json:"building"`
	CurrentLevel int       `json:"currentLevel"`
	DesiredLevel int       `json:"desiredLevel"`
	CreatedAt    time.Time `json:"createdAt"`
	CompletedAt  time.Time `json:"completedAt"`
}

// Planet is the full planet document.
type Planet struct {
	ID        uuid.UUID `json:"id"`
	Player    uuid.UUID `json:"player"`
	Name      string    `json:"name"`
	Homeworld bool      `json:"homeworld"`
	CreatedAt time.Time `json:"createdAt"`

	Resources       []PlanetResource   `json:"resources"`
	Productions     []PlanetProduction `json:"productions"`
	Storages        []PlanetStorage    `json:"storages"`
	Buildings       []PlanetBuilding   `json:"buildings"`
	BuildingActions []BuildingAction   `json:"buildingActions"`
}

func (p *Planet) normalize() {
	if p.Resources == nil {
		p.Resources = []PlanetResource{}
	}
	if p.Productions == nil {
		p.Productions = []PlanetProduction{}
	}
	if p.Storages == nil {
		p.Storages = []PlanetStorage{}
	}
	if p.Buildings == nil {
		p.Buildings = []PlanetBuilding{}
	}
	if p.BuildingActions == nil {
		p.BuildingActions = []BuildingAction{}
	}
}

// buildingActionRequest is the body of a create call.
type buildingActionRequest struct {
	Planet   uuid.UUID `json:"planet"`
	Building uuid.UUID `json:"building"`
}
