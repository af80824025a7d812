package registry

func init() {
	Register(Character{
		ID:      "solar-ranger",
		Title:   "Solar Ranger",
		Tagline: "Desert survival expert with heat resistance",
		Hint:    "Solar Ranger: heat resistant with solar power",
		Glyph:   '☼',
		Body:    "214",
		Accent:  "45",
	})
	Register(Character{
		ID:      "sand-ranger",
		Title:   "Forest Runner",
		Tagline: "Agile explorer with nature adaptation",
		Hint:    "Forest Runner: agile nature specialist",
		Glyph:   '♣',
		Body:    "70",
		Accent:  "137",
	})
	Register(Character{
		ID:      "ice-sentinel",
		Title:   "Ice Sentinel",
		Tagline: "Cold weather specialist with endurance",
		Hint:    "Ice Sentinel: cold weather endurance expert",
		Glyph:   '❄',
		Body:    "153",
		Accent:  "39",
	})
}
