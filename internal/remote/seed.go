package remote

import (
	"time"

	"github.com/alex-user-go/tourguide/internal/catalog"
)

func seedHotels() []catalog.Hotel {
	return []catalog.Hotel{
		{ID: "H001", Name: "Hyatt Regency", City: "casablanca", Address: "Place des Nations Unies", Stars: 5, Rating: 4.6, PricePerNight: 1850, Currency: "MAD", Amenities: []string{"pool", "spa", "wifi"}, RoomsAvailable: 12},
		{ID: "H002", Name: "Hotel Kenzi Tower", City: "casablanca", Address: "Boulevard Zerktouni", Stars: 5, Rating: 4.4, PricePerNight: 1500, Currency: "MAD", Amenities: []string{"gym", "wifi"}, RoomsAvailable: 8},
		{ID: "H003", Name: "Ibis Casa Voyageurs", City: "casablanca", Address: "Place de la Gare", Stars: 3, Rating: 3.9, PricePerNight: 520, Currency: "MAD", Amenities: []string{"wifi"}, RoomsAvailable: 20},
		{ID: "H004", Name: "Le Casablanca Hotel", City: "casablanca", Address: "Boulevard de la Corniche", Stars: 5, Rating: 4.8, PricePerNight: 2400, Currency: "MAD", Amenities: []string{"pool", "spa", "sea view"}, RoomsAvailable: 3},
		{ID: "H005", Name: "La Mamounia", City: "marrakech", Address: "Avenue Bab Jdid", Stars: 5, Rating: 4.9, PricePerNight: 6500, Currency: "MAD", Amenities: []string{"pool", "spa", "garden"}, RoomsAvailable: 2},
		{ID: "H006", Name: "Riad Kniza", City: "marrakech", Address: "Derb l'Hotel, Medina", Stars: 4, Rating: 4.7, PricePerNight: 2100, Currency: "MAD", Amenities: []string{"hammam", "wifi"}, RoomsAvailable: 5},
		{ID: "H007", Name: "Hotel Islane", City: "marrakech", Address: "Avenue Mohammed V", Stars: 3, Rating: 4.0, PricePerNight: 650, Currency: "MAD", Amenities: []string{"terrace", "wifi"}, RoomsAvailable: 0},
		{ID: "H008", Name: "Sofitel Rabat Jardin des Roses", City: "rabat", Address: "Souissi", Stars: 5, Rating: 4.6, PricePerNight: 2300, Currency: "MAD", Amenities: []string{"pool", "garden", "spa"}, RoomsAvailable: 9},
		{ID: "H009", Name: "Hotel Belere", City: "rabat", Address: "Avenue Moulay Youssef", Stars: 4, Rating: 4.1, PricePerNight: 980, Currency: "MAD", Amenities: []string{"wifi", "restaurant"}, RoomsAvailable: 14},
		{ID: "H010", Name: "Riad Fes", City: "fes", Address: "Derb Ben Slimane, Zerbtana", Stars: 5, Rating: 4.7, PricePerNight: 2600, Currency: "MAD", Amenities: []string{"pool", "hammam"}, RoomsAvailable: 4},
		{ID: "H011", Name: "Hotel Sahrai", City: "fes", Address: "Dhar El Mehraz", Stars: 5, Rating: 4.5, PricePerNight: 2200, Currency: "MAD", Amenities: []string{"pool", "spa", "view"}, RoomsAvailable: 7},
		{ID: "H012", Name: "El Minzah", City: "tangier", Address: "Rue de la Liberte", Stars: 5, Rating: 4.3, PricePerNight: 1700, Currency: "MAD", Amenities: []string{"pool", "bar"}, RoomsAvailable: 6},
		{ID: "H013", Name: "Hilton Tanger City Center", City: "tangier", Address: "Place du Maghreb Arabe", Stars: 5, Rating: 4.4, PricePerNight: 1450, Currency: "MAD", Amenities: []string{"gym", "pool", "wifi"}, RoomsAvailable: 18},
		{ID: "H014", Name: "Sofitel Agadir Thalassa", City: "agadir", Address: "Baie des Palmiers", Stars: 5, Rating: 4.5, PricePerNight: 2000, Currency: "MAD", Amenities: []string{"beach", "spa", "pool"}, RoomsAvailable: 10},
	}
}

func seedRestaurants() []catalog.Restaurant {
	return []catalog.Restaurant{
		{ID: "R001", Name: "Rick's Cafe", City: "casablanca", Cuisine: "international", PriceRange: "$$$", Rating: 4.5, Seats: 60},
		{ID: "R002", Name: "La Sqala", City: "casablanca", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.4, Seats: 80},
		{ID: "R003", Name: "Le Cabestan", City: "casablanca", Cuisine: "seafood", PriceRange: "$$$", Rating: 4.6, Seats: 50},
		{ID: "R004", Name: "Al Mounia", City: "casablanca", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.2, Seats: 40},
		{ID: "R005", Name: "Nomad", City: "marrakech", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.5, Seats: 70},
		{ID: "R006", Name: "Le Jardin", City: "marrakech", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.3, Seats: 90},
		{ID: "R007", Name: "Dar Naji", City: "rabat", Cuisine: "moroccan", PriceRange: "$", Rating: 4.1, Seats: 45},
		{ID: "R008", Name: "Le Dhow", City: "rabat", Cuisine: "international", PriceRange: "$$", Rating: 4.0, Seats: 120},
		{ID: "R009", Name: "The Ruined Garden", City: "fes", Cuisine: "moroccan", PriceRange: "$$", Rating: 4.6, Seats: 35},
		{ID: "R010", Name: "Le Saveur du Poisson", City: "tangier", Cuisine: "seafood", PriceRange: "$", Rating: 4.4, Seats: 25},
	}
}

func seedArticles() []catalog.Article {
	day := func(y int, m time.Month, d int) time.Time {
		return time.Date(y, m, d, 9, 0, 0, 0, time.UTC)
	}
	return []catalog.Article{
		{ID: "N001", Title: "Grand Stade Hassan II reaches final phase", Summary: "Work on the 115,000 seat stadium near Casablanca enters its last stage.", Category: "stadiums", PublishedAt: day(2025, time.March, 2)},
		{ID: "N002", Title: "New high-speed rail timetable", Summary: "Al Boraq adds services between Tangier, Rabat and Casablanca.", Category: "transport", PublishedAt: day(2025, time.February, 18)},
		{ID: "N003", Title: "Marrakech stadium renovation completed", Summary: "The Grand Stade de Marrakech reopens with upgraded stands.", Category: "stadiums", PublishedAt: day(2025, time.January, 27)},
		{ID: "N004", Title: "Fan zones announced in six host cities", Summary: "Public screening areas will open in every host city.", Category: "events", PublishedAt: day(2025, time.March, 10)},
		{ID: "N005", Title: "Hotel capacity expands in Agadir", Summary: "Three new resorts add over 900 rooms along the bay.", Category: "travel", PublishedAt: day(2025, time.February, 5)},
		{ID: "N006", Title: "Fes medina walking routes", Summary: "Signposted routes guide visitors between landmarks.", Category: "travel", PublishedAt: day(2025, time.January, 12)},
	}
}
