package model

type UserRegistered struct {
	Username string
}

func (e UserRegistered) Type() string { return "UserRegistered" }

type UserLoggedIn struct {
	Username string
	Remember bool
}

func (e UserLoggedIn) Type() string { return "UserLoggedIn" }

type UserLoggedOut struct {
	Username string
}

func (e UserLoggedOut) Type() string { return "UserLoggedOut" }

type OrderPlaced struct {
	OrderID   string
	ItemCount int
	Total     int64
}

func (e OrderPlaced) Type() string { return "OrderPlaced" }

type CartCleared struct{}

func (e CartCleared) Type() string { return "CartCleared" }
