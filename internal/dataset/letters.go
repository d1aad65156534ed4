package dataset

// LetterFrequency is the relative frequency of letters in English text.
var LetterFrequency = []DataPoint{
	{Category: "A", Value: 0.08167},
	{Category: "B", Value: 0.01492},
	{Category: "C", Value: 0.02782},
	{Category: "D", Value: 0.04253},
	{Category: "E", Value: 0.12702},
	{Category: "F", Value: 0.02288},
	{Category: "G", Value: 0.02015},
	{Category: "H", Value: 0.06094},
	{Category: "I", Value: 0.06966},
	{Category: "J", Value: 0.00153},
	{Category: "K", Value: 0.00772},
	{Category: "L", Value: 0.04025},
	{Category: "M", Value: 0.02406},
	{Category: "N", Value: 0.06749},
	{Category: "O", Value: 0.07507},
	{Category: "P", Value: 0.01929},
	{Category: "Q", Value: 0.00095},
	{Category: "R", Value: 0.05987},
	{Category: "S", Value: 0.06327},
	{Category: "T", Value: 0.09056},
	{Category: "U", Value: 0.02758},
	{Category: "V", Value: 0.00978},
	{Category: "W", Value: 0.0236},
	{Category: "X", Value: 0.0015},
	{Category: "Y", Value: 0.01974},
	{Category: "Z", Value: 0.00074},
}

// Letters returns the English letter frequency dataset.
func Letters() *Dataset {
	return New(LetterFrequency)
}
