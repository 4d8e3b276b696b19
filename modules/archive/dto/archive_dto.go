package dto

// ArchiveRequest asks for a calendar export to be archived.
type ArchiveRequest struct {
	Year  int `json:"year" validate:"required"`
	Month int `json:"month" validate:"required,min=1,max=12"`
}

// ArchiveTaskPayload is the queued task body for a scheduled archival run. A
// zero year/month means "the previous month at execution time".
type ArchiveTaskPayload struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// ArchiveResponse reports where the export was stored.
type ArchiveResponse struct {
	Key string `json:"key"`
}
