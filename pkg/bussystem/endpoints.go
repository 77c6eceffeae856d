package bussystem

// Upstream endpoint paths, relative to the dealer base URL.
const (
	EndpointGetPoints     = "get_points.php"
	EndpointGetRoutes     = "get_routes.php"
	EndpointGetFreeSeats  = "get_free_seats.php"
	EndpointGetDiscount   = "get_discount.php"
	EndpointGetBaggage    = "get_baggage.php"
	EndpointNewOrder      = "new_order.php"
	EndpointBuyTicket     = "buy_ticket.php"
	EndpointCancelTicket  = "cancel_ticket.php"
	EndpointGetOrder      = "get_order.php"
	EndpointSMSValidation = "sms_validation.php"
)
