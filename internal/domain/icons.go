package domain

import "strings"

// Icon is the closed set of renderable amenity symbols. Amenity.Icon may be
// an emoji or a symbol name; ParseIcon normalizes it, falling back to
// IconDefault for anything unrecognized.
type Icon string

const (
	IconDefault Icon = "sparkles"
	IconWifi    Icon = "wifi"
	IconTV      Icon = "tv"
	IconSun     Icon = "sun"
	IconHome    Icon = "home"
	IconCoffee  Icon = "coffee"
	IconWaves   Icon = "waves"
	IconWind    Icon = "wind"
	IconUtensil Icon = "utensils"
	IconCar     Icon = "car"
	IconSnow    Icon = "snowflake"
)

var iconNames = map[string]Icon{
	"wifi":      IconWifi,
	"tv":        IconTV,
	"sun":       IconSun,
	"home":      IconHome,
	"coffee":    IconCoffee,
	"waves":     IconWaves,
	"wind":      IconWind,
	"utensils":  IconUtensil,
	"car":       IconCar,
	"snowflake": IconSnow,
}

var iconEmoji = map[string]Icon{
	"📶": IconWifi,
	"📺": IconTV,
	"☀️": IconSun,
	"🏠": IconHome,
	"☕": IconCoffee,
	"🌊": IconWaves,
	"🌬️": IconWind,
	"🍽️": IconUtensil,
	"🚗": IconCar,
	"❄️": IconSnow,
}

func ParseIcon(raw string) Icon {
	raw = strings.TrimSpace(raw)
	if ic, ok := iconEmoji[raw]; ok {
		return ic
	}
	if ic, ok := iconNames[strings.ToLower(raw)]; ok {
		return ic
	}
	return IconDefault
}

// Symbol resolves the amenity's icon reference to a renderable symbol.
func (a Amenity) Symbol() Icon { return ParseIcon(a.Icon) }
