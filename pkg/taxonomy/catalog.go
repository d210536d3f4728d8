package taxonomy

import (
	"github.com/inspectd/faultserve/internal/utils"
)

// Section is an authored catalog section: a canonical key, display title,
// accepted alias slugs, and its ordered fault phrases. Phrase order is
// meaningful; the ranker uses it as the final tie-break.
type Section struct {
	Key     string   `toml:"key"`
	Title   string   `toml:"title"`
	Aliases []string `toml:"aliases"`
	Phrases []string `toml:"phrases"`
}

// catalogFile is the shape of an external TOML catalog.
type catalogFile struct {
	Sections []Section `toml:"section"`
}

// LoadCatalogFile reads authored catalog content from a TOML file so the
// taxonomy can be updated without a rebuild.
func LoadCatalogFile(path string) ([]Section, error) {
	var file catalogFile
	if err := utils.LoadTOMLFile(path, &file); err != nil {
		return nil, err
	}
	return file.Sections, nil
}

// BuiltinSections returns the compiled-in inspection catalog.
func BuiltinSections() []Section {
	return []Section{
		{
			Key:   "tyres",
			Title: "Tyres",
			Aliases: []string{
				"tires", "wheels-and-tyres", "front-tyres", "rear-tyres",
				"nearside-front-tyres", "offside-front-tyres",
				"nearside-rear-tyres", "offside-rear-tyres", "spare-tyre",
			},
			Phrases: []string{
				"Tyre worn below legal limit",
				"Tyre wear on inner edge",
				"Tyre wear on outer edge",
				"Uneven tyre wear across tread",
				"Nail in tyre",
				"Puncture in tyre",
				"Tyre perished",
				"Sidewall damage",
				"Sidewall bulge",
				"Tyre pressure low",
				"Valve perished",
				"Tread depth at advisory level",
				"Wrong tyre size fitted",
				"Tyre fouling on arch",
			},
		},
		{
			Key:     "brakes",
			Title:   "Brakes",
			Aliases: []string{"braking-system", "front-brakes", "rear-brakes"},
			Phrases: []string{
				"Brake pads worn",
				"Brake pads low",
				"Brake discs corroded",
				"Brake discs lipped",
				"Brake discs scored",
				"Brake pipe corroded",
				"Brake hose perished",
				"Brake fluid contaminated",
				"Brake binding",
				"Brake judder under braking",
				"Handbrake travel excessive",
				"Caliper seized",
			},
		},
		{
			Key:     "steering",
			Title:   "Steering",
			Aliases: []string{"steering-system"},
			Phrases: []string{
				"Track rod end worn",
				"Steering rack leaking",
				"Power steering fluid low",
				"Steering wheel play excessive",
				"Tracking out of alignment",
				"Column universal joint worn",
			},
		},
		{
			Key:     "suspension",
			Title:   "Suspension",
			Aliases: []string{"front-suspension", "rear-suspension"},
			Phrases: []string{
				"Coil spring broken",
				"Shock absorber leaking",
				"Drop link worn",
				"Anti-roll bar bush worn",
				"Lower arm bush perished",
				"Wheel bearing noisy",
				"Top mount worn",
			},
		},
		{
			Key:     "exhaust",
			Title:   "Exhaust",
			Aliases: []string{"exhaust-system"},
			Phrases: []string{
				"Exhaust blowing",
				"Exhaust mounting broken",
				"Exhaust corroded",
				"Catalyst rattling",
				"Exhaust fume leak into cabin",
			},
		},
		{
			Key:     "lights",
			Title:   "Lights",
			Aliases: []string{"lamps", "exterior-lights", "lighting"},
			Phrases: []string{
				"Headlamp aim too high",
				"Headlamp aim too low",
				"Headlamp lens misted",
				"Brake light bulb blown",
				"Indicator bulb blown",
				"Number plate light out",
				"Fog light not working",
			},
		},
		{
			Key:     "wipers-washers",
			Title:   "Wipers and Washers",
			Aliases: []string{"wipers", "washers", "wiper-blades"},
			Phrases: []string{
				"Front wiper blade smearing",
				"Front wiper blade split",
				"Rear wiper blade perished",
				"Washer jets blocked",
				"Washer fluid low",
				"Wiper linkage worn",
			},
		},
		{
			Key:     "battery",
			Title:   "Battery and Charging",
			Aliases: []string{"battery-and-charging", "charging-system"},
			Phrases: []string{
				"Battery low on charge",
				"Battery terminal corroded",
				"Battery not holding charge",
				"Battery clamp loose",
				"Alternator output low",
			},
		},
		{
			Key:     "engine",
			Title:   "Engine Bay",
			Aliases: []string{"engine-bay", "under-bonnet"},
			Phrases: []string{
				"Oil leak from rocker cover",
				"Oil level low",
				"Coolant level low",
				"Coolant leak from radiator",
				"Auxiliary belt perished",
				"Engine mounting worn",
				"Misfire under load",
			},
		},
		{
			Key:     "bodywork",
			Title:   "Bodywork",
			Aliases: []string{"body", "panels", "exterior"},
			Phrases: []string{
				"Corrosion on sill",
				"Corrosion on wheel arch",
				"Door mirror glass cracked",
				"Windscreen chipped in driver's line of sight",
				"Bonnet catch stiff",
				"Bumper cracked",
			},
		},
	}
}
