package domain

// Room is one bookable suite/room type shown on the public site.
// Amenities and SuiteAmenities are weak label references into Amenity.Name;
// renaming an amenity does not cascade here.
type Room struct {
	ID              int64
	Name            string
	Capacity        string
	Description     string
	PriceLowSeason  float64
	PriceHighSeason float64
	Amenities       []string
	SuiteAmenities  []string
	Featured        bool
	ImageName       *string // primary image reference; nil resolves to the placeholder
	DisplayOrder    int
	Images          []RoomImage
}

// RoomImage is a secondary photo attached to a room.
type RoomImage struct {
	ID           int64
	RoomID       int64
	ImagePath    string
	Caption      *string
	DisplayOrder int
}

type AmenityCategory string

const (
	AmenitySuite  AmenityCategory = "suite"
	AmenityCommon AmenityCategory = "common"
)

type Amenity struct {
	ID           int64
	Name         string
	Icon         string // emoji or symbol name; see ParseIcon
	Category     AmenityCategory
	DisplayOrder int
}

type GalleryImage struct {
	ID           int64
	ImagePath    string
	Category     string // free grouping key ("pousada", "praia")
	DisplayOrder int
}

// LoadState is the content service lifecycle state.
type LoadState int

const (
	StateUninitialized LoadState = iota
	StateLoading
	StateReady
	StateError
)

func (s LoadState) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "uninitialized"
	}
}

// ContentSnapshot is the read-only view handed to presentation consumers.
// Slices are copies; holding a snapshot across reloads is safe but stale.
type ContentSnapshot struct {
	Rooms         []Room
	Amenities     []Amenity
	GalleryImages []GalleryImage
	State         LoadState
}

// RoomPatch carries partial room updates. Nil fields are left untouched.
type RoomPatch struct {
	Name            *string
	Capacity        *string
	Description     *string
	PriceLowSeason  *float64
	PriceHighSeason *float64
	Amenities       *[]string
	SuiteAmenities  *[]string
	Featured        *bool
	ImageName       *string
	DisplayOrder    *int
}

type AmenityPatch struct {
	Name         *string
	Icon         *string
	Category     *AmenityCategory
	DisplayOrder *int
}

type GalleryImagePatch struct {
	ImagePath    *string
	Category     *string
	DisplayOrder *int
}
