package model

// Room represents a hostel room with a denormalized occupancy counter.
// Occupied is maintained exclusively by the occupancy service; clients
// never write it directly.
type Room struct {
	ID       uint `json:"id" gorm:"primarykey"`
	Number   int  `json:"number" gorm:"unique;not null"`
	Capacity int  `json:"capacity" gorm:"not null"`
	Occupied int  `json:"occupied" gorm:"not null;default:0"`
}

// HasVacancy reports whether another student can be assigned to the room.
func (r *Room) HasVacancy() bool {
	return r.Occupied < r.Capacity
}
