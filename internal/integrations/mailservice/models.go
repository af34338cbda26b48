package mailservice

// NotifyRequest тело запроса к почтовому шлюзу
type NotifyRequest struct {
	Action       string  `json:"action"`
	BookingID    string  `json:"booking_id"`
	PropertyName string  `json:"property_name"`
	StartDate    string  `json:"start_date"`
	EndDate      string  `json:"end_date"`
	Adults       int     `json:"adults"`
	Children     int     `json:"children"`
	GuestName    string  `json:"guest_name"`
	GuestEmail   string  `json:"guest_email"`
	GuestPhone   string  `json:"guest_phone,omitempty"`
	Message      string  `json:"message,omitempty"`
	GrandTotal   float64 `json:"grand_total,omitempty"`
	Currency     string  `json:"currency,omitempty"`
}

// NotifyResponse тело ответа почтового шлюза
type NotifyResponse struct {
	Sent   bool   `json:"sent"`
	Detail string `json:"detail,omitempty"`
}
