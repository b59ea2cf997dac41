package systems

import "strings"

// Band is a named range of rainfall intensity.
type Band struct {
	Max   float64 // Inclusive upper bound, mm/hour
	Title string
	Desc  string
}

// Name returns the title without its range suffix.
func (b Band) Name() string {
	if i := strings.Index(b.Title, " ("); i >= 0 {
		return b.Title[:i]
	}
	return b.Title
}

// Bands lists the intensity bands in ascending order.
var Bands = []Band{
	{0.1, "Summer Mist (< 0.1 mm)", "Small like a cooling mist in a summer amusement park."},
	{0.2, "Drizzle (< 0.2 mm)", "Bearable drizzle, no umbrella needed."},
	{1, "Light Rain (0.2 ~ 1 mm)", "Need an umbrella."},
	{10, "Moderate Rain (1 ~ 10 mm)", "Puddles start forming on the ground."},
	{20, "Heavy Rain (10 ~ 20 mm)", "Rain sound is obvious, hard to hear speaking. Feet get wet even with an umbrella."},
	{30, "Pouring Rain (20 ~ 30 mm)", "Visibility poor even with fast wipers. Body gets wet with umbrella. Low areas start to flood."},
	{50, "Intense Rain (30 ~ 50 mm)", "Like pouring a bucket. Obvious large-scale water accumulation on roads."},
	{80, "Torrential Rain (50 ~ 80 mm)", "Like a waterfall. Umbrella useless. Driving visibility very poor. Exceeds city drainage capacity."},
	{999, "Extreme Rain (> 80 mm)", "Oppressive and suffocating. Sky feels like it's falling. High risk of flooding and landslides."},
}

// BandFor returns the first band whose upper bound is at least v.
// Anything past the last bound reads as the last band.
func BandFor(v float64) Band {
	for _, b := range Bands {
		if v <= b.Max {
			return b
		}
	}
	return Bands[len(Bands)-1]
}
