package market

// DefaultSymbol is what a new streaming connection watches until it asks
// for something else.
const DefaultSymbol = "AAPL"

// DefaultAllowList is the closed set of symbols a client may select.
var DefaultAllowList = []string{"AAPL", "GOOGL", "MSFT", "AMZN", "TSLA", "NVDA", "META"}

// AllowList answers membership for client symbol selections.
type AllowList map[string]struct{}

func NewAllowList(symbols []string) AllowList {
	al := make(AllowList, len(symbols))
	for _, s := range symbols {
		al[s] = struct{}{}
	}
	return al
}

// Match reports whether raw client input names an allowed symbol. The
// comparison is exact: case and surrounding whitespace must match.
func (al AllowList) Match(raw string) (string, bool) {
	_, ok := al[raw]
	return raw, ok
}
