package merchant

import "github.com/boltpappu0224/finance-tracker/internal/model"

// SeedCatalog returns the static merchant catalog the registry is
// constructed from. The catalog itself is immutable configuration; only the
// per-record frequency counters mutate after construction.
func SeedCatalog() []model.MerchantRecord {
	return []model.MerchantRecord{
		{
			Name:     "Zomato",
			Aliases:  []string{"ZOMATO", "zomato.com", "Zomato Food"},
			Category: "food_dining",
			Icon:     "🍔",
			Website:  "zomato.com",
		},
		{
			Name:     "Swiggy",
			Aliases:  []string{"SWIGGY", "swiggy.in", "Swiggy Delivery"},
			Category: "food_dining",
			Icon:     "🍕",
			Website:  "swiggy.in",
		},
		{
			Name:     "Amazon",
			Aliases:  []string{"AMAZON", "amazon.in", "Amazon Prime"},
			Category: "shopping",
			Icon:     "📦",
			Website:  "amazon.in",
		},
		{
			Name:     "Flipkart",
			Aliases:  []string{"FLIPKART", "flipkart.com", "FK"},
			Category: "shopping",
			Icon:     "🛍️",
			Website:  "flipkart.com",
		},
		{
			Name:     "Uber",
			Aliases:  []string{"UBER", "UBER TRIP", "UBER EATS"},
			Category: "transportation",
			Icon:     "🚗",
			Website:  "uber.com",
		},
		{
			Name:     "Ola",
			Aliases:  []string{"OLA", "OLA CABS", "OLA RIDE"},
			Category: "transportation",
			Icon:     "🚕",
			Website:  "olarides.com",
		},
		{
			Name:     "Netflix",
			Aliases:  []string{"NETFLIX", "netflix.com"},
			Category: "entertainment",
			Icon:     "🎬",
			Website:  "netflix.com",
		},
		{
			Name:     "Spotify",
			Aliases:  []string{"SPOTIFY", "spotify.com"},
			Category: "entertainment",
			Icon:     "🎵",
			Website:  "spotify.com",
		},
		{
			Name:     "BigBasket",
			Aliases:  []string{"BIGBASKET", "bigbasket.com"},
			Category: "groceries",
			Icon:     "🛒",
			Website:  "bigbasket.com",
		},
		{
			Name:     "DMart",
			Aliases:  []string{"DMART", "D MART"},
			Category: "groceries",
			Icon:     "🏪",
		},
		{
			Name:     "JioMart",
			Aliases:  []string{"JIOMART", "Jio Mart"},
			Category: "groceries",
			Icon:     "🛍️",
			Website:  "jiomart.com",
		},
		{
			Name:     "BookMyShow",
			Aliases:  []string{"BOOKMYSHOW", "bms", "Movie Tickets"},
			Category: "entertainment",
			Icon:     "🎫",
			Website:  "bookmyshow.com",
		},
		{
			Name:     "MakeMyTrip",
			Aliases:  []string{"MAKEMYTRIP", "mmt", "Flight Booking"},
			Category: "travel",
			Icon:     "✈️",
			Website:  "makemytrip.com",
		},
		{
			Name:     "OYO",
			Aliases:  []string{"OYO HOTELS", "Hotel Booking"},
			Category: "travel",
			Icon:     "🏨",
			Website:  "oyo.com",
		},
		{
			Name:     "FASTag",
			Aliases:  []string{"FASTAG", "Toll"},
			Category: "transportation",
			Icon:     "🛣️",
		},
		{
			Name:     "IndiGo Airlines",
			Aliases:  []string{"INDIGO", "6E", "Flight"},
			Category: "travel",
			Icon:     "✈️",
			Website:  "goindigo.in",
		},
	}
}
