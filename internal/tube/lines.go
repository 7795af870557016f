package tube

// Line gives positional meaning to the status feed: the record at index i
// describes Lines[i]. The order comes from the upstream feed and must not be
// changed.
type Line struct {
	Name  string
	Color string
}

var Lines = []Line{
	{Name: "Bakerloo", Color: "brown"},
	{Name: "Central", Color: "red"},
	{Name: "Circle", Color: "yellow"},
	{Name: "District", Color: "green"},
	{Name: "Hammersmith and City", Color: "pink"},
	{Name: "Jubilee", Color: "grey"},
	{Name: "Metropolitan", Color: "magenta"},
	{Name: "Northern", Color: "black"},
	{Name: "Piccadilly", Color: "dark blue"},
	{Name: "Victoria", Color: "light blue"},
	{Name: "Waterloo and City", Color: "turquoise"},
}
