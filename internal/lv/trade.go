package lv

// FallbackTrade is assigned to positions whose identifier prefix is not in
// the known prefix table, including empty or malformed identifiers.
const FallbackTrade = "Sonstiges"

// tradePrefixLength is the number of leading identifier characters that
// encode the trade, e.g. "06.08" in "06.08.01.0140".
const tradePrefixLength = 5

// tradePrefixes maps the structural prefix of a position identifier to the
// trade (Gewerk) it belongs to. The numbering scheme comes from the
// estimating system and is stable across projects.
var tradePrefixes = map[string]string{
	"01.01": "Baustelleneinrichtung",
	"02.01": "Rohbau",
	"03.04": "Gerüstbau",
	"05.02": "Dachdeckung",
	"06.08": "Elektro",
	"07.01": "Sanitär",
	"07.02": "Heizung",
	"07.03": "Lüftung",
	"08.01": "Trockenbau",
	"09.01": "Fliesenarbeiten",
	"09.04": "Malerarbeiten",
}

// ClassifyTrade returns the trade name for a position identifier. The trade
// is a pure function of the identifier's first five characters; it is never
// stored, always recomputed. Identifiers that are empty, shorter than the
// prefix, or carry an unknown prefix classify as FallbackTrade.
func ClassifyTrade(positionID string) string {
	if len(positionID) < tradePrefixLength {
		return FallbackTrade
	}
	if trade, ok := tradePrefixes[positionID[:tradePrefixLength]]; ok {
		return trade
	}
	return FallbackTrade
}

// KnownTrades returns all trade names in the prefix table. Used by handlers
// to offer the set of assignable trades.
func KnownTrades() []string {
	trades := make([]string, 0, len(tradePrefixes))
	for _, trade := range tradePrefixes {
		trades = append(trades, trade)
	}
	return trades
}
