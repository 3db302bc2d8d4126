package turf

import "time"

// SlotDuration is the fixed length of every bookable slot.
const SlotDuration = time.Hour

type Turf struct {
	ID           int    `db:"id" json:"id" example:"1"`
	Name         string `db:"name" json:"name" example:"Green Field"`
	Location     string `db:"location" json:"location" example:"Downtown"`
	PricePerSlot int    `db:"price_per_slot" json:"price_per_slot" example:"1500"`
}

type Slot struct {
	ID        int       `db:"id" json:"id"`
	TurfID    int       `db:"turf_id" json:"turf_id"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	IsBooked  bool      `db:"is_booked" json:"is_booked"`
}

// SlotView is the wire form of a slot pushed to clients. The end of the
// slot is derived by the client as start + SlotDuration.
type SlotView struct {
	ID     int    `json:"id" example:"7"`
	Start  string `json:"start" example:"2024-05-01T18:00:00Z"`
	Booked bool   `json:"booked" example:"false"`
}

func (s Slot) View() SlotView {
	return SlotView{
		ID:     s.ID,
		Start:  s.StartTime.UTC().Format(time.RFC3339),
		Booked: s.IsBooked,
	}
}

// Views always returns a non-nil slice so an empty list encodes as [].
func Views(slots []Slot) []SlotView {
	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, s.View())
	}
	return views
}

type CreateTurfRequest struct {
	Name         string `json:"name" validate:"required,max=128"`
	Location     string `json:"location" validate:"required,max=128"`
	PricePerSlot int    `json:"price_per_slot" validate:"gte=0"`
}

type CreateSlotRequest struct {
	StartTime time.Time `json:"start_time" validate:"required"`
}

type TurfListResponse struct {
	Turfs []Turf `json:"turfs"`
}

type TurfResponse struct {
	Turf *Turf `json:"turf"`
}

type SlotListResponse struct {
	Slots []SlotView `json:"slots"`
}
