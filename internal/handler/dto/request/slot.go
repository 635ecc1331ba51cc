package request

type ListSlotsQuery struct {
	// Date lists a single day (YYYY-MM-DD); otherwise Week selects the week
	// relative to the current one.
	Date string `form:"date" binding:"omitempty,datetime=2006-01-02"`
	Week int    `form:"week" binding:"omitempty,min=-52,max=52"`
}

type GenerateScheduleRequest struct {
	Week int `json:"week" binding:"omitempty,min=0,max=52"`
}
