package dto

// RoomInput describes one hall in a replacement inventory.
type RoomInput struct {
	RoomNo  int `json:"roomNo" validate:"required,min=1"`
	Desks   int `json:"desks" validate:"required,min=1"`
	Columns int `json:"columns" validate:"required,min=1"`
}

// ReplaceRoomsRequest swaps the whole ordered room inventory.
type ReplaceRoomsRequest struct {
	Rooms []RoomInput `json:"rooms" validate:"required,min=1,dive"`
}
