package exportrecords

type Input struct {
	Collection string `json:"collection"`
	Format     string `json:"format,omitempty"` // "csv" or "json", config default when empty
}

type Output struct {
	Success     bool   `json:"success"`
	Message     string `json:"message"`
	Filename    string `json:"filename"`
	Content     string `json:"content"`
	RecordCount int    `json:"recordCount"`
}
