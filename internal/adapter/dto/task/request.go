package task

// ListActionItemsRequest represents query parameters for listing action items
type ListActionItemsRequest struct {
	Status   string `query:"status" validate:"omitempty,oneof=pending in_progress completed cancelled failed"`
	Assignee string `query:"assignee"`
}
