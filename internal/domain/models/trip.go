package models

// TripQuery holds the equality constraints honored by trip listing and counting.
type TripQuery struct {
	Package     string
	BookingDate string
}

// TripSummary is one row of the scheduled trip listing.
type TripSummary struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	BookingDate  string `json:"booking_date"`
	Package      string `json:"package"`
	PackageName  string `json:"package_name"`
	Resource     string `json:"resource"`
	ResourceName string `json:"resource_name"`
	Capacity     int    `json:"capacity"`
	Quantity     int    `json:"quantity"`
	Available    int    `json:"available"`
	OverCapacity bool   `json:"over_capacity"`
}

// TripBooking is a constituent booking of a trip, annotated with a 1-based idx.
type TripBooking struct {
	Idx           int           `json:"idx"`
	Name          string        `json:"name"`
	BookingName   string        `json:"booking_name"`
	Email         string        `json:"email"`
	ContactNumber string        `json:"contact_number"`
	Status        BookingStatus `json:"status"`
	Quantity      int           `json:"quantity"`
}

// TripVariation is the summed quantity of one variation across a trip.
type TripVariation struct {
	Idx       int    `json:"idx"`
	Variation string `json:"variation"`
	Quantity  int    `json:"quantity"`
}

// TripDetail is the full reconstruction of one (package, booking_date) trip.
// Participants carry "idx" and "booking" next to their declared fields.
type TripDetail struct {
	TripSummary
	Bookings          []TripBooking   `json:"bookings"`
	Participants      []Participant   `json:"participants"`
	VariationQuantity []TripVariation `json:"variation_quantity"`
}

// TripID builds the synthetic "{package}-{booking_date}" identifier.
func TripID(pkg, bookingDate string) string {
	return pkg + "-" + bookingDate
}
