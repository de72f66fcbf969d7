package shared

import "pousada_manicaca/internal/domain"

func pstr(s string) *string { return &s }

// DefaultRooms is the compiled-in content the site launched with; cmd/seed
// loads it into an empty database.
func DefaultRooms() []domain.Room {
	return []domain.Room{
		{
			Name:            "Suíte Master",
			Capacity:        "2 adultos + 1 criança",
			Description:     "Suíte ampla com varanda e vista para o mar.",
			PriceLowSeason:  350,
			PriceHighSeason: 480,
			Amenities:       []string{"Wi-Fi", "Ar-condicionado", "TV", "Frigobar"},
			SuiteAmenities:  []string{"Varanda com vista para o mar"},
			Featured:        true,
			ImageName:       pstr("room-master.jpg"),
			DisplayOrder:    0,
		},
		{
			Name:            "Suíte Família",
			Capacity:        "4 adultos",
			Description:     "Dois ambientes, ideal para famílias.",
			PriceLowSeason:  420,
			PriceHighSeason: 560,
			Amenities:       []string{"Wi-Fi", "Ar-condicionado", "TV"},
			SuiteAmenities:  []string{"Dois ambientes"},
			ImageName:       pstr("room-family.jpg"),
			DisplayOrder:    1,
		},
		{
			Name:            "Suíte Standard",
			Capacity:        "2 adultos",
			Description:     "Conforto e simplicidade a poucos passos da praia.",
			PriceLowSeason:  250,
			PriceHighSeason: 340,
			Amenities:       []string{"Wi-Fi", "Ventilador de teto", "TV"},
			ImageName:       pstr("room-standard.jpg"),
			DisplayOrder:    2,
		},
	}
}

func DefaultAmenities() []domain.Amenity {
	return []domain.Amenity{
		{Name: "Wi-Fi", Icon: "wifi", Category: domain.AmenityCommon, DisplayOrder: 0},
		{Name: "Café da manhã", Icon: "coffee", Category: domain.AmenityCommon, DisplayOrder: 1},
		{Name: "Acesso à praia", Icon: "waves", Category: domain.AmenityCommon, DisplayOrder: 2},
		{Name: "Estacionamento", Icon: "car", Category: domain.AmenityCommon, DisplayOrder: 3},
		{Name: "Ar-condicionado", Icon: "snowflake", Category: domain.AmenitySuite, DisplayOrder: 4},
		{Name: "TV", Icon: "tv", Category: domain.AmenitySuite, DisplayOrder: 5},
	}
}

func DefaultGallery() []domain.GalleryImage {
	return []domain.GalleryImage{
		{ImagePath: "pousada-front.jpg", Category: "pousada", DisplayOrder: 0},
		{ImagePath: "hero-beach.jpg", Category: "praia", DisplayOrder: 0},
		{ImagePath: "beach-sunset.jpg", Category: "praia", DisplayOrder: 1},
	}
}
