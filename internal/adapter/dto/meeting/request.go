package meeting

// CalendarIntegrationRequest selects action items to push to the calendar
type CalendarIntegrationRequest struct {
	MeetingID   uint   `json:"meeting_id"`
	ActionItems []uint `json:"action_items" validate:"required,min=1"`
}

// UpdateActionItemRequest toggles the completed flag of an action item
type UpdateActionItemRequest struct {
	Completed *bool `json:"completed" validate:"required"`
}
