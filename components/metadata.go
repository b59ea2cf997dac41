package components

// String returns the display name for an Axis.
func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "z"
}

// String returns the display name for a Heading.
func (h Heading) String() string {
	names := HeadingNames()
	if int(h) < len(names) {
		return names[h]
	}
	return "Unknown"
}

// HeadingNames returns the display names for all headings.
// The order matches the Heading constants.
func HeadingNames() []string {
	return []string{"+X", "-X", "+Z", "-Z"}
}

// String returns the display name for a Kind.
func (k Kind) String() string {
	if k == KindVehicle {
		return "vehicle"
	}
	return "pedestrian"
}
