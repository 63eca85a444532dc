package corpus

import "github.com/poiesic/addrect/core"

// SampleReferences returns the built-in reference data used for development,
// demos, and tests. Each record mirrors the stored reference schema.
// A fresh slice is returned on every call so callers may mutate freely.
func SampleReferences() []*core.ReferenceRecord {
	return []*core.ReferenceRecord{
		// United States
		{VendorName: "Apple Store", Address: "189 The Grove Dr", City: "Los Angeles", Postcode: "90036", Country: "US"},
		{VendorName: "Starbucks", Address: "1912 Pike Pl", City: "Seattle", Postcode: "98101", Country: "US"},
		{VendorName: "Walmart", Address: "5001 E Ray Rd", City: "Phoenix", Postcode: "85044", Country: "US"},
		{VendorName: "Target", Address: "7100 Santa Monica Blvd", City: "West Hollywood", Postcode: "90046", Country: "US"},
		{VendorName: "Whole Foods", Address: "4 Union Square S", City: "New York", Postcode: "10003", Country: "US"},
		{VendorName: "Home Depot", Address: "3838 N Central Ave", City: "Phoenix", Postcode: "85012", Country: "US"},
		{VendorName: "Best Buy", Address: "1015 N San Fernando Blvd", City: "Burbank", Postcode: "91504", Country: "US"},
		// France
		{VendorName: "Galeries Lafayette", Address: "40 Boulevard Haussmann", City: "Paris", Postcode: "75009", Country: "FR"},
		{VendorName: "Carrefour", Address: "1 Rue Jean Mermoz", City: "Paris", Postcode: "75008", Country: "FR"},
		{VendorName: "Fnac", Address: "136 Rue de Rennes", City: "Paris", Postcode: "75006", Country: "FR"},
		{VendorName: "Boulangerie Paul", Address: "49 Rue de Rivoli", City: "Paris", Postcode: "75001", Country: "FR"},
		{VendorName: "Monoprix", Address: "52 Avenue des Champs-Elysees", City: "Paris", Postcode: "75008", Country: "FR"},
		{VendorName: "Decathlon", Address: "26 Avenue de la Grande Armee", City: "Paris", Postcode: "75017", Country: "FR"},
		{VendorName: "Sephora", Address: "70 Avenue des Champs-Elysees", City: "Paris", Postcode: "75008", Country: "FR"},
		// Germany
		{VendorName: "KaDeWe", Address: "Tauentzienstrasse 21-24", City: "Berlin", Postcode: "10789", Country: "DE"},
		{VendorName: "Aldi", Address: "Brunnenstrasse 27", City: "Berlin", Postcode: "10119", Country: "DE"},
		{VendorName: "Lidl", Address: "Skalitzer Strasse 80", City: "Berlin", Postcode: "10997", Country: "DE"},
		{VendorName: "MediaMarkt", Address: "Alexanderplatz 1", City: "Berlin", Postcode: "10178", Country: "DE"},
		{VendorName: "Rossmann", Address: "Friedrichstrasse 141", City: "Berlin", Postcode: "10117", Country: "DE"},
		{VendorName: "dm", Address: "Kurfuerstendamm 227", City: "Berlin", Postcode: "10719", Country: "DE"},
		{VendorName: "Edeka", Address: "Schoenhauser Allee 36", City: "Berlin", Postcode: "10435", Country: "DE"},
		// Canada
		{VendorName: "Tim Hortons", Address: "55 Bloor St W", City: "Toronto", Postcode: "M4W 1A5", Country: "CA"},
		{VendorName: "Shoppers Drug Mart", Address: "700 Bay St", City: "Toronto", Postcode: "M5G 1Z6", Country: "CA"},
		{VendorName: "Canadian Tire", Address: "839 Yonge St", City: "Toronto", Postcode: "M4W 2H2", Country: "CA"},
		{VendorName: "Loblaws", Address: "60 Carlton St", City: "Toronto", Postcode: "M5B 1J2", Country: "CA"},
		{VendorName: "Roots", Address: "100 Bloor St W", City: "Toronto", Postcode: "M5S 1M5", Country: "CA"},
		{VendorName: "Hudson's Bay", Address: "176 Yonge St", City: "Toronto", Postcode: "M5C 2L7", Country: "CA"},
		{VendorName: "MEC", Address: "300 Queen St W", City: "Toronto", Postcode: "M5V 2A2", Country: "CA"},
	}
}

// OCRCase is a known-good correction scenario: the vendor name is intact and
// the address carries realistic OCR corruption.
type OCRCase struct {
	VendorName      string
	OCRAddress      string
	ExpectedAddress string
	ExpectedCity    string
	Description     string
}

// OCRCases returns corruption scenarios covering common OCR confusions,
// one per country in the sample data.
func OCRCases() []OCRCase {
	return []OCRCase{
		{
			VendorName:      "Apple Store",
			OCRAddress:      "1B9 The Gr0ve Dr",
			ExpectedAddress: "189 The Grove Dr",
			ExpectedCity:    "Los Angeles",
			Description:     "US: 8->B, o->0 confusion",
		},
		{
			VendorName:      "Galeries Lafayette",
			OCRAddress:      "40 Bou1evard Haussrnann",
			ExpectedAddress: "40 Boulevard Haussmann",
			ExpectedCity:    "Paris",
			Description:     "France: l->1, m->rn confusion",
		},
		{
			VendorName:      "KaDeWe",
			OCRAddress:      "Tauentzienstra8e 2l-24",
			ExpectedAddress: "Tauentzienstrasse 21-24",
			ExpectedCity:    "Berlin",
			Description:     "Germany: ss->8, 1->l confusion",
		},
		{
			VendorName:      "Tim Hortons",
			OCRAddress:      "55 B1oor St VV",
			ExpectedAddress: "55 Bloor St W",
			ExpectedCity:    "Toronto",
			Description:     "Canada: l->1, W->VV confusion",
		},
		{
			VendorName:      "Walmart",
			OCRAddress:      "5OO1 E Ray Rd",
			ExpectedAddress: "5001 E Ray Rd",
			ExpectedCity:    "Phoenix",
			Description:     "US: 0->O confusion",
		},
	}
}
