package domain

// Names of the built-in models.
const (
	CasinoModel  = "casino"
	WeatherModel = "weather"
)

// DishonestCasino returns the classic two-die casino model: a fair die and a
// loaded die that rolls a six half of the time.
func DishonestCasino() *Definition {
	faces := []string{"1", "2", "3", "4", "5", "6"}
	fair := make(map[string]float64, len(faces))
	loaded := make(map[string]float64, len(faces))
	for _, f := range faces {
		fair[f] = 1.0 / 6
		loaded[f] = 0.1
	}
	loaded["6"] = 0.5

	return &Definition{
		Name:        CasinoModel,
		Description: "A casino that occasionally swaps a fair die for a loaded one.",
		States:      []string{"FAIR", "LOADED"},
		Symbols:     faces,
		Initial:     map[string]float64{"FAIR": 0.5, "LOADED": 0.5},
		Transition: map[string]map[string]float64{
			"FAIR":   {"FAIR": 0.95, "LOADED": 0.05},
			"LOADED": {"FAIR": 0.05, "LOADED": 0.95},
		},
		Emission: map[string]map[string]float64{
			"FAIR":   fair,
			"LOADED": loaded,
		},
	}
}

// WeatherSensor returns the Antarctic station model: weather observed only
// through a heat sensor reporting HOT or COLD.
func WeatherSensor() *Definition {
	return &Definition{
		Name:        WeatherModel,
		Description: "Station weather inferred from a buried heat sensor.",
		States:      []string{"SUNNY", "CLOUDY", "BLIZZARD"},
		Symbols:     []string{"HOT", "COLD"},
		Initial:     map[string]float64{"SUNNY": 0.7, "CLOUDY": 0.2, "BLIZZARD": 0.1},
		Transition: map[string]map[string]float64{
			"SUNNY":    {"SUNNY": 0.7, "CLOUDY": 0.2, "BLIZZARD": 0.1},
			"CLOUDY":   {"SUNNY": 0.3, "CLOUDY": 0.4, "BLIZZARD": 0.3},
			"BLIZZARD": {"SUNNY": 0.2, "CLOUDY": 0.3, "BLIZZARD": 0.5},
		},
		Emission: map[string]map[string]float64{
			"SUNNY":    {"HOT": 0.9, "COLD": 0.1},
			"CLOUDY":   {"HOT": 0.4, "COLD": 0.6},
			"BLIZZARD": {"HOT": 0.05, "COLD": 0.95},
		},
	}
}

// Builtins returns fresh copies of every built-in model.
func Builtins() []*Definition {
	return []*Definition{DishonestCasino(), WeatherSensor()}
}
