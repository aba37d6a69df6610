package gateway

// Gateways bundles one gateway per backend resource over a shared Client.
type Gateways struct {
	Auth           AuthGateway
	Advertisements AdvertisementGateway
	Categories     CategoryGateway
	Users          UserGateway
	Favourites     FavouriteGateway
	Compares       CompareGateway
	Orders         OrderGateway
	Checkout       CheckoutGateway
	Contact        ContactGateway
	Settings       SettingsGateway
}

func NewGateways(client *Client) *Gateways {
	return &Gateways{
		Auth:           NewAuthGateway(client),
		Advertisements: NewAdvertisementGateway(client),
		Categories:     NewCategoryGateway(client),
		Users:          NewUserGateway(client),
		Favourites:     NewFavouriteGateway(client),
		Compares:       NewCompareGateway(client),
		Orders:         NewOrderGateway(client),
		Checkout:       NewCheckoutGateway(client),
		Contact:        NewContactGateway(client),
		Settings:       NewSettingsGateway(client),
	}
}
