package ingest

// defaultNoiseWords is the closed non-ingredient vocabulary. A segment
// containing any of these words is label boilerplate (addresses, contact
// info, units, regulatory text), not an ingredient name.
var defaultNoiseWords = []string{
	// address / company boilerplate
	"ltd", "llc", "inc", "corp", "gmbh", "co",
	"street", "ave", "avenue", "road", "blvd", "boulevard", "suite", "floor",
	"city", "state", "zip", "country", "usa", "uk",
	"distributed", "manufactured", "imported", "packed",
	// contact boilerplate
	"tel", "phone", "fax", "email", "contact", "call", "visit", "website",
	"customer", "service", "questions", "comments", "inquiries",
	// units of measure
	"ml", "oz", "fl", "mg", "kg", "lb", "gal", "liter", "litre",
	// regulatory / usage boilerplate
	"warning", "caution", "directions", "instructions", "usage",
	"expiry", "expiration", "batch", "lot", "barcode",
	"dermatologist", "tested", "approved", "certified", "patent",
	"recyclable", "registered", "trademark",
}
